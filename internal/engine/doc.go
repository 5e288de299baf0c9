// Package engine implements the statement executor and the command
// loop that drives it.
//
// ARCHITECTURE:
//
// Single-threaded read-dispatch-print cycle:
// A Session reads one line at a time, routes it to the meta-command
// handler or through parse -> validate -> execute, writes the line's
// full output block, and flushes before the next read. There is no
// concurrency: the table is mutated only by the executor, on the same
// goroutine that reads input.
//
// The loop has exactly two terminal states: an .exit meta-command or
// exhaustion of the input stream. Termination is surfaced as a value
// rather than buried inside command handling, so both paths are
// observable and testable independently of parsing.
//
// Every processed line is stamped with a monotonic seq from the
// session's logical clock and handed to any registered observers as a
// transcript entry. The recorder and the conformance harness both
// attach through that hook; the engine itself never writes anywhere
// but its output writer.
//
// All parse, validation, and meta-command failures are recoverable at
// the line level: the session prints the condition's message and
// keeps reading. Nothing in this package terminates the process.
package engine
