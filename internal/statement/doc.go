// Package statement turns input lines into typed commands.
//
// Two grammars live side by side: the statement grammar (insert,
// select) and dot-prefixed meta-commands (.exit, .btree, .constants).
// Parsing happens exactly once; downstream stages consume the tagged
// Statement and MetaCommand values and never re-inspect the raw text.
//
// Parse and validation failures are typed errors whose Error() string
// is the exact line the interpreter prints for that failure. The
// messages are part of the external contract and are asserted
// byte-for-byte by the conformance harness, so they must never be
// reworded.
package statement
