// Package transcript models a recorded interpreter session.
//
// A transcript is the full, ordered record of one session: every
// input line the command loop consumed, stamped with its logical
// sequence number, together with the exact output block that line
// produced. Transcripts are the common currency of the recorder, the
// replay command, and the conformance harness's golden files.
//
// MarshalCanonical serializes a transcript to canonical JSON (sorted
// keys, no HTML escaping, NFC-normalized strings) so that golden
// comparisons and replay diffs are byte-stable across runs and
// platforms.
package transcript
