package cli

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/linestore/internal/engine"
	"github.com/roach88/linestore/internal/recorder"
)

// ReplayOptions holds flags for the replay command.
type ReplayOptions struct {
	*RootOptions
	Database string
	Session  string // optional - specific session only
}

// ReplaySessionResult holds the replay result for a single session.
type ReplaySessionResult struct {
	Session       string `json:"session"`
	Entries       int    `json:"entries"`
	Deterministic bool   `json:"deterministic"`
	Mismatch      string `json:"mismatch,omitempty"`
}

// ReplayResult holds the overall replay result.
type ReplayResult struct {
	Sessions         []ReplaySessionResult `json:"sessions"`
	TotalSessions    int                   `json:"total_sessions"`
	AllDeterministic bool                  `json:"all_deterministic"`
}

// NewReplayCommand creates the replay command.
func NewReplayCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ReplayOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "replay",
		Short: "Re-run recorded sessions and verify their output reproduces",
		Long: `Replay recorded session transcripts and verify determinism.

For every recorded session (or one, with --session), the recorded
inputs are re-run through a fresh interpreter and the produced output
is compared byte-for-byte against the recorded output.

Exit codes:
  0 - All sessions replay deterministically
  1 - A replayed session produced different output
  2 - Command error (database not found, unknown session, etc.)

Examples:
  linestore replay --db ./sessions.db
  linestore replay --db ./sessions.db --session 01890a5d-ac96-774b-bcce-b302099a8057
  linestore replay --db ./sessions.db --format json`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReplay(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to the transcript database (required)")
	_ = cmd.MarkFlagRequired("db")
	cmd.Flags().StringVar(&opts.Session, "session", "", "replay a specific session only")

	return cmd
}

func runReplay(opts *ReplayOptions, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	rec, err := recorder.Open(opts.Database)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open transcript database", err)
	}
	defer rec.Close()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	tokens := []string{opts.Session}
	if opts.Session == "" {
		tokens, err = rec.ListSessions(ctx)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to list sessions", err)
		}
		if len(tokens) == 0 {
			return NewExitError(ExitCommandError, "no recorded sessions")
		}
	}

	result := ReplayResult{AllDeterministic: true}
	for _, token := range tokens {
		sessionResult, err := replaySession(ctx, rec, token)
		if err != nil {
			return WrapExitError(ExitCommandError, fmt.Sprintf("failed to replay session %s", token), err)
		}
		result.Sessions = append(result.Sessions, sessionResult)
		result.TotalSessions++
		if !sessionResult.Deterministic {
			result.AllDeterministic = false
		}
	}

	if opts.Format == "json" {
		if err := formatter.JSON(result); err != nil {
			return err
		}
	} else {
		for _, s := range result.Sessions {
			status := "ok"
			if !s.Deterministic {
				status = "MISMATCH"
			}
			formatter.Printf("%s  %s (%d entries)\n", status, s.Session, s.Entries)
			if s.Mismatch != "" {
				formatter.Printf("      %s\n", s.Mismatch)
			}
		}
	}

	if !result.AllDeterministic {
		return NewExitError(ExitFailure, "replay produced different output")
	}
	return nil
}

// replaySession re-runs one recorded session's inputs through a fresh
// engine and compares the output stream against the recording.
func replaySession(ctx context.Context, rec *recorder.Recorder, token string) (ReplaySessionResult, error) {
	recorded, err := rec.LoadSession(ctx, token)
	if err != nil {
		return ReplaySessionResult{}, err
	}

	inputs := make([]string, 0, len(recorded.Entries))
	for _, e := range recorded.Entries {
		inputs = append(inputs, e.Input)
	}

	session := engine.NewSession(token)
	var out bytes.Buffer
	input := ""
	if len(inputs) > 0 {
		input = strings.Join(inputs, "\n") + "\n"
	}
	if _, err := session.Run(ctx, strings.NewReader(input), &out); err != nil {
		return ReplaySessionResult{}, err
	}

	result := ReplaySessionResult{
		Session:       token,
		Entries:       len(recorded.Entries),
		Deterministic: true,
	}

	want := strings.Join(recorded.Lines(), "\n")
	if want != "" {
		want += "\n"
	}
	if got := out.String(); got != want {
		result.Deterministic = false
		result.Mismatch = firstDifference(want, got)
	}
	return result, nil
}

// firstDifference reports the first line where two output streams
// diverge.
func firstDifference(want, got string) string {
	wantLines := strings.Split(want, "\n")
	gotLines := strings.Split(got, "\n")
	for i := 0; i < len(wantLines) && i < len(gotLines); i++ {
		if wantLines[i] != gotLines[i] {
			return fmt.Sprintf("line %d: recorded %q, replayed %q", i+1, wantLines[i], gotLines[i])
		}
	}
	return fmt.Sprintf("recorded %d lines, replayed %d lines", len(wantLines), len(gotLines))
}
