package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/linestore/internal/recorder"
	"github.com/roach88/linestore/internal/testutil"
)

func TestReplRoundTrip(t *testing.T) {
	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewReplCommand(rootOpts)
	cmd.SetIn(strings.NewReader(testutil.Script(
		"insert 1 user1 person1@example.com",
		"select",
		".exit",
	)))
	cmd.SetOut(buf)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{})

	require.NoError(t, cmd.Execute())
	assert.Equal(t, "Executed.\n(1, user1, person1@example.com)\nExecuted.\n", buf.String())
}

func TestReplErrorsDoNotTerminate(t *testing.T) {
	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewReplCommand(rootOpts)
	cmd.SetIn(strings.NewReader(testutil.Script(
		"insert -1 a b",
		"garbage",
		".unknown",
		"select",
		".exit",
	)))
	cmd.SetOut(buf)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{})

	require.NoError(t, cmd.Execute())
	want := strings.Join([]string{
		"ID must be positive.",
		"Unrecognized keyword at start of 'garbage'.",
		"Unrecognized command '.unknown'.",
		"Executed.",
	}, "\n") + "\n"
	assert.Equal(t, want, buf.String())
}

func TestReplTerminatesOnEOF(t *testing.T) {
	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewReplCommand(rootOpts)
	cmd.SetIn(strings.NewReader(testutil.Script("select")))
	cmd.SetOut(buf)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{})

	require.NoError(t, cmd.Execute())
	assert.Equal(t, "Executed.\n", buf.String())
}

func TestReplPromptFlag(t *testing.T) {
	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewReplCommand(rootOpts)
	cmd.SetIn(strings.NewReader(testutil.Script(".exit")))
	cmd.SetOut(buf)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--prompt"})

	require.NoError(t, cmd.Execute())
	assert.Equal(t, "db > ", buf.String())
}

func TestReplRecordRequiresDatabase(t *testing.T) {
	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewReplCommand(rootOpts)
	cmd.SetIn(strings.NewReader(""))
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"--record"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "--record requires --db")
}

func TestReplRecordingRoundTrip(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "sessions.db")

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewReplCommand(rootOpts)
	cmd.SetIn(strings.NewReader(testutil.Script(
		"insert 1 user1 person1@example.com",
		"select",
		".exit",
	)))
	cmd.SetOut(buf)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--record", "--db", dbPath})

	require.NoError(t, cmd.Execute())

	rec, err := recorder.Open(dbPath)
	require.NoError(t, err)
	defer rec.Close()

	tokens, err := rec.ListSessions(context.Background())
	require.NoError(t, err)
	require.Len(t, tokens, 1)

	transcript, err := rec.LoadSession(context.Background(), tokens[0])
	require.NoError(t, err)
	require.Len(t, transcript.Entries, 3)
	assert.Equal(t, "insert 1 user1 person1@example.com", transcript.Entries[0].Input)
	assert.Equal(t, []string{"Executed."}, transcript.Entries[0].Output)
	assert.Equal(t, ".exit", transcript.Entries[2].Input)
	assert.Equal(t, []string{}, transcript.Entries[2].Output)
}

func TestExecRunsScriptFile(t *testing.T) {
	tmpDir := t.TempDir()
	scriptPath := filepath.Join(tmpDir, "seed.txt")
	require.NoError(t, os.WriteFile(scriptPath, []byte(testutil.Script(
		"insert 2 user2 person2@example.com",
		"insert 1 user1 person1@example.com",
		"select",
		".exit",
	)), 0644))

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewExecCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{scriptPath})

	require.NoError(t, cmd.Execute())
	// Rows come back in insertion order, not key order.
	want := strings.Join([]string{
		"Executed.",
		"Executed.",
		"(2, user2, person2@example.com)",
		"(1, user1, person1@example.com)",
		"Executed.",
	}, "\n") + "\n"
	assert.Equal(t, want, buf.String())
}

func TestExecMissingScriptFile(t *testing.T) {
	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewExecCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"/nonexistent/seed.txt"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "failed to open script")
}

func TestReplUsesInjectedTokenGenerator(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "sessions.db")

	rootOpts := &RootOptions{Format: "text"}
	opts := &ReplOptions{
		RootOptions:    rootOpts,
		Record:         true,
		Database:       dbPath,
		TokenGenerator: testutil.NewFixedTokenGenerator("session-fixed"),
	}
	cmd := NewReplCommand(rootOpts)
	cmd.SetIn(strings.NewReader(testutil.Script("select", ".exit")))
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	require.NoError(t, runSession(opts, cmd, cmd.InOrStdin()))

	rec, err := recorder.Open(dbPath)
	require.NoError(t, err)
	defer rec.Close()

	tokens, err := rec.ListSessions(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"session-fixed"}, tokens)
}
