package harness

import (
	_ "embed"
	"fmt"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"gopkg.in/yaml.v3"
)

//go:embed schema.cue
var schemaCUE string

// DefaultSessionToken is used when a scenario doesn't pin one.
// A fixed default keeps golden transcripts deterministic.
const DefaultSessionToken = "test-session-default"

// Scenario defines one scripted conformance session.
type Scenario struct {
	// Name uniquely identifies this scenario. Golden files are named
	// after it.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description,omitempty"`

	// Session is an optional fixed session token. Defaults to
	// DefaultSessionToken for deterministic golden comparison.
	Session string `yaml:"session,omitempty"`

	// Script is the input, one command per element, fed to the
	// session in order.
	Script []string `yaml:"script"`

	// Assertions validate the output stream, the final row count,
	// and the termination state.
	Assertions []Assertion `yaml:"assertions,omitempty"`
}

// Assertion is one expectation on a scenario's outcome.
type Assertion struct {
	// Type is one of output_contains, output_exact, output_count,
	// row_count, termination.
	Type string `yaml:"type"`

	// Line is the exact output line (output_contains, output_count).
	Line string `yaml:"line,omitempty"`

	// Lines is the exact full output stream (output_exact).
	Lines []string `yaml:"lines,omitempty"`

	// Count is the expected occurrence or row count
	// (output_count, row_count).
	Count int `yaml:"count,omitempty"`

	// Value is the expected termination state, "exit" or "eof"
	// (termination).
	Value string `yaml:"value,omitempty"`
}

// SessionToken returns the scenario's fixed token or the default.
func (s *Scenario) SessionToken() string {
	if s.Session != "" {
		return s.Session
	}
	return DefaultSessionToken
}

// LoadScenario reads, schema-validates, and parses a scenario file.
//
// The raw YAML is unified with the embedded CUE schema first, so type
// mismatches and unknown assertion types are reported with the file
// path instead of surfacing later as a scenario that asserts nothing.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}

	if err := validateSchema(data); err != nil {
		return nil, fmt.Errorf("scenario %s: %w", path, err)
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, fmt.Errorf("parse scenario %s: %w", path, err)
	}

	if scenario.Name == "" {
		return nil, fmt.Errorf("scenario %s: name is required", path)
	}
	if len(scenario.Script) == 0 {
		return nil, fmt.Errorf("scenario %s: script is empty", path)
	}

	return &scenario, nil
}

// validateSchema unifies the decoded YAML with #Scenario.
func validateSchema(data []byte) error {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("parse yaml: %w", err)
	}

	ctx := cuecontext.New()
	schema := ctx.CompileString(schemaCUE)
	if err := schema.Err(); err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}

	def := schema.LookupPath(cue.ParsePath("#Scenario"))
	if err := def.Err(); err != nil {
		return fmt.Errorf("lookup schema definition: %w", err)
	}

	unified := def.Unify(ctx.Encode(raw))
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return fmt.Errorf("schema validation: %w", err)
	}
	return nil
}
