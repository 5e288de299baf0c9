package engine

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/roach88/linestore/internal/statement"
	"github.com/roach88/linestore/internal/transcript"
)

// Termination says which of the loop's two terminal states ended a
// session.
type Termination int

const (
	// TerminatedByExit means an .exit meta-command was processed.
	TerminatedByExit Termination = iota
	// TerminatedByEOF means the input stream was exhausted.
	TerminatedByEOF
)

// maxLineBytes bounds a single input line. Generous: the longest
// valid statement is well under 1 KiB, but over-long lines must still
// be read whole so their rejection message reports the full line.
const maxLineBytes = 1 << 20

// Observer receives one transcript entry per processed line.
// Observers run synchronously on the session goroutine.
type Observer func(transcript.Entry)

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithObserver attaches an observer. The recorder and the harness
// both attach through this hook.
func WithObserver(fn Observer) SessionOption {
	return func(s *Session) {
		s.observers = append(s.observers, fn)
	}
}

// WithPrompt makes the session write prompt before each read. The
// contract output is prompt-free; this exists for interactive use
// only and is off by default.
func WithPrompt(prompt string) SessionOption {
	return func(s *Session) {
		s.prompt = prompt
	}
}

// Session is one run of the command loop: a private executor and
// table, a logical clock, and a correlation token.
type Session struct {
	token     string
	executor  *Executor
	clock     *Clock
	observers []Observer
	prompt    string
}

// NewSession creates a session with an empty table.
func NewSession(token string, opts ...SessionOption) *Session {
	s := &Session{
		token:    token,
		executor: NewExecutor(),
		clock:    NewClock(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Token returns the session's correlation token.
func (s *Session) Token() string { return s.token }

// Executor returns the session's executor.
func (s *Session) Executor() *Executor { return s.executor }

// ProcessLine runs one input line through the meta-command handler or
// the parse -> validate -> execute pipeline. It returns the line's
// complete output block and whether the session should terminate.
//
// Every failure class (unrecognized keyword, syntax error, validation
// error, unknown meta-command) yields its message as the whole output
// block; none of them terminate the session.
func (s *Session) ProcessLine(line string) (output []string, exit bool) {
	defer func() {
		s.observe(transcript.Entry{Seq: s.clock.Next(), Input: line, Output: output})
	}()

	if strings.HasPrefix(line, ".") {
		cmd := statement.ParseMeta(line)
		if cmd.Kind == statement.MetaExit {
			// .exit produces no output line before terminating.
			return nil, true
		}
		return s.executor.ExecuteMeta(cmd), false
	}

	stmt, err := statement.Parse(line)
	if err != nil {
		return []string{err.Error()}, false
	}
	lines, err := s.executor.Execute(stmt)
	if err != nil {
		return []string{err.Error()}, false
	}
	return lines, false
}

// Run drives the read-dispatch-print cycle over r, writing output to
// w. Each line's output block is fully written and flushed before the
// next line is read. Run returns which terminal state ended the loop.
//
// The context is checked between lines; a blocking read itself is not
// interruptible.
func (s *Session) Run(ctx context.Context, r io.Reader, w io.Writer) (Termination, error) {
	out := bufio.NewWriter(w)
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	for {
		if err := ctx.Err(); err != nil {
			return TerminatedByEOF, fmt.Errorf("session cancelled: %w", err)
		}

		if s.prompt != "" {
			if _, err := out.WriteString(s.prompt); err != nil {
				return TerminatedByEOF, fmt.Errorf("write prompt: %w", err)
			}
			if err := out.Flush(); err != nil {
				return TerminatedByEOF, fmt.Errorf("flush prompt: %w", err)
			}
		}

		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return TerminatedByEOF, fmt.Errorf("read input: %w", err)
			}
			return TerminatedByEOF, nil
		}
		line := strings.TrimSuffix(scanner.Text(), "\r")

		output, exit := s.ProcessLine(line)
		for _, ln := range output {
			if _, err := out.WriteString(ln + "\n"); err != nil {
				return TerminatedByEOF, fmt.Errorf("write output: %w", err)
			}
		}
		if err := out.Flush(); err != nil {
			return TerminatedByEOF, fmt.Errorf("flush output: %w", err)
		}
		if exit {
			return TerminatedByExit, nil
		}
	}
}

func (s *Session) observe(e transcript.Entry) {
	if e.Output == nil {
		e.Output = []string{}
	}
	for _, fn := range s.observers {
		fn(e)
	}
}
