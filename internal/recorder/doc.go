// Package recorder persists session transcripts to SQLite.
//
// Only the transcript is recorded: the input lines a session consumed
// and the output blocks they produced, keyed by session token and
// seq. The table data itself is never persisted; a fresh session
// always starts from an empty table, and replay reproduces state by
// re-running the recorded inputs.
//
// Writes are idempotent: re-recording an existing (session, seq) pair
// is a no-op, so a crashed recording can be resumed safely.
package recorder
