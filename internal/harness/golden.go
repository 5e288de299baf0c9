package harness

import (
	"testing"

	"github.com/sebdah/goldie/v2"
)

// RunWithGolden executes a scenario and compares its canonical
// transcript against testdata/golden/{scenario.Name}.golden.
//
// The transcript serializes via canonical JSON, so the comparison is
// byte-exact and stable across runs. To regenerate golden files:
//
//	go test ./internal/harness -update
//
// Returns an error if the scenario fails to run; golden mismatch is
// reported as a test failure through goldie.
func RunWithGolden(t *testing.T, scenario *Scenario) error {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return err
	}

	data, err := result.Transcript.MarshalCanonical()
	if err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenario.Name, data)
	return nil
}
