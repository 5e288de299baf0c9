package harness

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/roach88/linestore/internal/engine"
	"github.com/roach88/linestore/internal/transcript"
)

// Result is the outcome of one scenario run.
type Result struct {
	// Pass is true when every assertion held.
	Pass bool `json:"pass"`

	// Termination says how the session ended.
	Termination engine.Termination `json:"-"`

	// Output is the raw byte stream the session wrote, exactly as a
	// front end would have seen it.
	Output string `json:"output"`

	// Transcript is the per-line record of the session, used for
	// golden comparison and replay.
	Transcript *transcript.Transcript `json:"-"`

	// Rows is the table's row count when the script ended.
	Rows int `json:"rows"`

	// Errors lists failed assertions. Empty when Pass is true.
	Errors []string `json:"errors,omitempty"`
}

// AddError records a failed assertion and fails the result.
func (r *Result) AddError(msg string) {
	r.Errors = append(r.Errors, msg)
	r.Pass = false
}

// Run executes a scenario against a fresh session and evaluates its
// assertions.
//
// Every run is isolated and deterministic: new empty table, fixed
// session token, logical clock starting at zero. The same scenario
// always yields a byte-identical transcript.
func Run(scenario *Scenario) (*Result, error) {
	tr := &transcript.Transcript{Session: scenario.SessionToken()}
	session := engine.NewSession(scenario.SessionToken(),
		engine.WithObserver(func(e transcript.Entry) {
			tr.Entries = append(tr.Entries, e)
		}))

	input := strings.Join(scenario.Script, "\n") + "\n"
	var out bytes.Buffer
	term, err := session.Run(context.Background(), strings.NewReader(input), &out)
	if err != nil {
		return nil, fmt.Errorf("run scenario %s: %w", scenario.Name, err)
	}

	result := &Result{
		Pass:        true,
		Termination: term,
		Output:      out.String(),
		Transcript:  tr,
		Rows:        session.Executor().Table().NumRows(),
	}

	for i, assertion := range scenario.Assertions {
		if err := evaluate(assertion, result); err != nil {
			result.AddError(fmt.Sprintf("assertion %d: %v", i+1, err))
		}
	}
	return result, nil
}

// OutputLines splits the raw output stream into lines, dropping the
// final empty element produced by the trailing newline.
func (r *Result) OutputLines() []string {
	if r.Output == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(r.Output, "\n"), "\n")
}
