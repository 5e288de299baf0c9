package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const passingScenario = `name: passing
script:
  - insert 1 user1 person1@example.com
  - select
  - .exit
assertions:
  - type: output_exact
    lines:
      - Executed.
      - (1, user1, person1@example.com)
      - Executed.
  - type: termination
    value: exit
`

const failingScenario = `name: failing
script:
  - select
assertions:
  - type: row_count
    count: 5
`

func writeScenario(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
}

func TestVerifyAllPassing(t *testing.T) {
	tmpDir := t.TempDir()
	writeScenario(t, tmpDir, "passing.yaml", passingScenario)

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewVerifyCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{tmpDir})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, buf.String(), "PASS  passing")
	assert.Contains(t, buf.String(), "1 passed, 0 failed, 1 total")
}

func TestVerifyFailingScenario(t *testing.T) {
	tmpDir := t.TempDir()
	writeScenario(t, tmpDir, "failing.yaml", failingScenario)

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewVerifyCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{tmpDir})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, buf.String(), "FAIL  failing")
}

func TestVerifyMixedResults(t *testing.T) {
	tmpDir := t.TempDir()
	writeScenario(t, tmpDir, "a_passing.yaml", passingScenario)
	writeScenario(t, tmpDir, "b_failing.yaml", failingScenario)

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewVerifyCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{tmpDir})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, buf.String(), "1 passed, 1 failed, 2 total")
}

func TestVerifyFilter(t *testing.T) {
	tmpDir := t.TempDir()
	writeScenario(t, tmpDir, "passing.yaml", passingScenario)
	writeScenario(t, tmpDir, "failing.yaml", failingScenario)

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewVerifyCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{tmpDir, "--filter", "passing*"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, buf.String(), "1 passed, 0 failed, 1 total")
}

func TestVerifyJSONOutput(t *testing.T) {
	tmpDir := t.TempDir()
	writeScenario(t, tmpDir, "passing.yaml", passingScenario)

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "json"}
	cmd := NewVerifyCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{tmpDir})

	require.NoError(t, cmd.Execute())

	var result VerifyResult
	require.NoError(t, json.Unmarshal(buf.Bytes(), &result))
	assert.Equal(t, 1, result.Passed)
	assert.Equal(t, 0, result.Failed)
	require.Len(t, result.Scenarios, 1)
	assert.Equal(t, "passing", result.Scenarios[0].Name)
	assert.True(t, result.Scenarios[0].Pass)
}

func TestVerifyNonExistentDir(t *testing.T) {
	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewVerifyCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"/nonexistent/scenarios"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "scenarios directory not found")
}

func TestVerifyEmptyDir(t *testing.T) {
	tmpDir := t.TempDir()

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewVerifyCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{tmpDir})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "no scenarios found")
}

func TestVerifyMalformedScenario(t *testing.T) {
	tmpDir := t.TempDir()
	writeScenario(t, tmpDir, "broken.yaml", "script: [1, 2, 3]\n")

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewVerifyCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{tmpDir})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "failed to load scenario")
}
