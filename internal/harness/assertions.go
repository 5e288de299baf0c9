package harness

import (
	"fmt"
	"strings"

	"github.com/roach88/linestore/internal/engine"
)

// AssertionError describes one failed expectation with enough
// context to debug it without re-running the scenario.
type AssertionError struct {
	Type     string
	Expected string
	Actual   string
	Output   []string
}

func (e *AssertionError) Error() string {
	var buf strings.Builder
	fmt.Fprintf(&buf, "%s failed\n", e.Type)
	fmt.Fprintf(&buf, "  expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  actual: %s\n", e.Actual)
	fmt.Fprintf(&buf, "  full output:\n")
	for i, line := range e.Output {
		fmt.Fprintf(&buf, "    [%d] %s\n", i+1, line)
	}
	return buf.String()
}

// evaluate checks one assertion against a completed run.
func evaluate(a Assertion, r *Result) error {
	switch a.Type {
	case "output_contains":
		return assertOutputContains(a, r)
	case "output_exact":
		return assertOutputExact(a, r)
	case "output_count":
		return assertOutputCount(a, r)
	case "row_count":
		return assertRowCount(a, r)
	case "termination":
		return assertTermination(a, r)
	}
	return fmt.Errorf("unknown assertion type %q", a.Type)
}

// assertOutputContains checks that one exact line appears somewhere
// in the output. Lines match whole, never by substring: the contract
// is byte-exact.
func assertOutputContains(a Assertion, r *Result) error {
	for _, line := range r.OutputLines() {
		if line == a.Line {
			return nil
		}
	}
	return &AssertionError{
		Type:     "output_contains",
		Expected: fmt.Sprintf("line %q", a.Line),
		Actual:   "not present in output",
		Output:   r.OutputLines(),
	}
}

func assertOutputExact(a Assertion, r *Result) error {
	got := r.OutputLines()
	if len(got) != len(a.Lines) {
		return &AssertionError{
			Type:     "output_exact",
			Expected: fmt.Sprintf("%d lines", len(a.Lines)),
			Actual:   fmt.Sprintf("%d lines", len(got)),
			Output:   got,
		}
	}
	for i := range got {
		if got[i] != a.Lines[i] {
			return &AssertionError{
				Type:     "output_exact",
				Expected: fmt.Sprintf("line %d = %q", i+1, a.Lines[i]),
				Actual:   fmt.Sprintf("line %d = %q", i+1, got[i]),
				Output:   got,
			}
		}
	}
	return nil
}

func assertOutputCount(a Assertion, r *Result) error {
	count := 0
	for _, line := range r.OutputLines() {
		if line == a.Line {
			count++
		}
	}
	if count != a.Count {
		return &AssertionError{
			Type:     "output_count",
			Expected: fmt.Sprintf("%d occurrences of %q", a.Count, a.Line),
			Actual:   fmt.Sprintf("%d occurrences", count),
			Output:   r.OutputLines(),
		}
	}
	return nil
}

func assertRowCount(a Assertion, r *Result) error {
	if r.Rows != a.Count {
		return &AssertionError{
			Type:     "row_count",
			Expected: fmt.Sprintf("%d rows", a.Count),
			Actual:   fmt.Sprintf("%d rows", r.Rows),
			Output:   r.OutputLines(),
		}
	}
	return nil
}

func assertTermination(a Assertion, r *Result) error {
	got := "eof"
	if r.Termination == engine.TerminatedByExit {
		got = "exit"
	}
	if got != a.Value {
		return &AssertionError{
			Type:     "termination",
			Expected: a.Value,
			Actual:   got,
			Output:   r.OutputLines(),
		}
	}
	return nil
}
