package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/linestore/internal/engine"
	"github.com/roach88/linestore/internal/recorder"
	"github.com/roach88/linestore/internal/transcript"
)

// ReplOptions holds flags for the repl command.
type ReplOptions struct {
	*RootOptions
	Record   bool
	Database string
	Prompt   bool

	// TokenGenerator allows overriding the session token generator
	// (for testing). If nil, defaults to UUIDv7Generator.
	TokenGenerator engine.SessionTokenGenerator
}

// NewReplCommand creates the repl command.
func NewReplCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ReplOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Read commands from stdin until .exit or end of input",
		Long: `Start the command loop over standard input.

Each line is a statement (insert, select) or a dot-prefixed
meta-command (.exit, .btree, .constants). The loop answers every line
with its exact output block and terminates on .exit or end of input.

With --record, the session transcript (inputs and outputs, not the
table data) is appended to a SQLite log for later replay.

Examples:
  linestore repl
  linestore repl --prompt
  echo 'select' | linestore repl
  linestore repl --record --db ./sessions.db`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSession(opts, cmd, cmd.InOrStdin())
		},
	}

	cmd.Flags().BoolVar(&opts.Record, "record", false, "record the session transcript")
	cmd.Flags().StringVar(&opts.Database, "db", "", "path to the transcript database (required with --record)")
	cmd.Flags().BoolVar(&opts.Prompt, "prompt", false, "print a prompt before each line (interactive use)")

	return cmd
}

// runSession drives one interpreter session over r. Shared by repl
// and exec.
func runSession(opts *ReplOptions, cmd *cobra.Command, r io.Reader) error {
	setupLogging(opts.RootOptions)

	gen := opts.TokenGenerator
	if gen == nil {
		gen = engine.UUIDv7Generator{}
	}
	token := gen.Generate()
	slog.Debug("starting session", "token", token)

	var sessionOpts []engine.SessionOption
	if opts.Prompt {
		sessionOpts = append(sessionOpts, engine.WithPrompt("db > "))
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if opts.Record {
		if opts.Database == "" {
			return NewExitError(ExitCommandError, "--record requires --db")
		}
		rec, err := recorder.Open(opts.Database)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to open transcript database", err)
		}
		defer func() {
			if closeErr := rec.Close(); closeErr != nil {
				slog.Error("error closing transcript database", "error", closeErr)
			}
		}()
		if err := rec.BeginSession(ctx, token); err != nil {
			return WrapExitError(ExitCommandError, "failed to begin session", err)
		}
		sessionOpts = append(sessionOpts, engine.WithObserver(func(e transcript.Entry) {
			if err := rec.RecordEntry(ctx, token, e); err != nil {
				// Recording trouble must not disturb the loop's
				// contract output; surface it on stderr only.
				slog.Error("failed to record entry", "seq", e.Seq, "error", err)
			}
		}))
		slog.Debug("recording session", "db", opts.Database)
	}

	session := engine.NewSession(token, sessionOpts...)
	term, err := session.Run(ctx, r, cmd.OutOrStdout())
	if err != nil {
		return WrapExitError(ExitCommandError, "session failed", err)
	}

	switch term {
	case engine.TerminatedByExit:
		slog.Debug("session terminated by .exit", "token", token)
	case engine.TerminatedByEOF:
		slog.Debug("session terminated by end of input", "token", token)
	}
	return nil
}

// NewExecCommand creates the exec command.
func NewExecCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ReplOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "exec <script-file>",
		Short: "Run commands from a script file",
		Long: `Run a newline-separated command script against a fresh session.

Output is identical to piping the file into repl. With --record, the
session transcript is appended to the SQLite log.

Examples:
  linestore exec ./seed.sql
  linestore exec ./seed.sql --record --db ./sessions.db`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExec(opts, args[0], cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.Record, "record", false, "record the session transcript")
	cmd.Flags().StringVar(&opts.Database, "db", "", "path to the transcript database (required with --record)")

	return cmd
}

func runExec(opts *ReplOptions, path string, cmd *cobra.Command) error {
	f, err := os.Open(path)
	if err != nil {
		return WrapExitError(ExitCommandError, fmt.Sprintf("failed to open script %s", path), err)
	}
	defer f.Close()
	return runSession(opts, cmd, f)
}
