// Package harness provides conformance testing for the interpreter.
//
// The harness loads scripted-session scenarios, drives a fresh
// session over each script, and validates the exact output against
// the scenario's expectations. Because the interpreter's contract is
// byte-exact output, assertions compare whole lines verbatim.
//
// # Scenario Format
//
// Scenarios are YAML files:
//
//	name: insert_select_round_trip
//	description: "A stored row comes back verbatim"
//	session: test-session-default
//	script:
//	  - insert 1 user1 person1@example.com
//	  - select
//	  - .exit
//	assertions:
//	  - type: output_exact
//	    lines:
//	      - Executed.
//	      - (1, user1, person1@example.com)
//	      - Executed.
//	  - type: row_count
//	    count: 1
//	  - type: termination
//	    value: exit
//
// Scenario files are validated against an embedded CUE schema before
// they run, so malformed scenarios fail loudly rather than silently
// asserting nothing.
//
// # Assertion Types
//
//   - output_contains: one exact line appears somewhere in the output
//   - output_exact: the whole output stream, line for line
//   - output_count: an exact line appears exactly N times
//   - row_count: the table holds N rows when the script ends
//   - termination: how the session ended ("exit" or "eof")
//
// # Deterministic Testing
//
// Sessions run with a fixed session token and the engine's logical
// clock, so the canonical transcript of a scenario is identical on
// every run. RunWithGolden compares that transcript against a golden
// file via goldie; regenerate with:
//
//	go test ./internal/harness -update
package harness
