package recorder

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/roach88/linestore/internal/transcript"
)

//go:embed schema.sql
var schemaSQL string

// Schema version tracking:
// 1 - Initial schema (sessions + entries)
const currentSchemaVersion = 1

// Recorder is the SQLite-backed session transcript log.
// Uses WAL mode so recorded sessions can be read while one is being
// written.
type Recorder struct {
	db *sql.DB
}

// Open creates or opens the transcript database at the given path.
// Pass ":memory:" for an ephemeral database (tests).
//
// The database is configured with:
//   - WAL mode for concurrent reads during writes
//   - NORMAL synchronous mode
//   - 5-second busy timeout
//   - foreign key enforcement
//
// Idempotent: safe to call on an existing database.
func Open(path string) (*Recorder, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open transcript db: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("connect transcript db: %w", err)
	}

	// SQLite allows one writer; a single pooled connection avoids
	// SQLITE_BUSY under the session loop's synchronous writes.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}
	if err := applySchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	return &Recorder{db: db}, nil
}

// Close closes the database connection.
func (r *Recorder) Close() error {
	if r.db == nil {
		return nil
	}
	return r.db.Close()
}

func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("execute %q: %w", pragma, err)
		}
	}
	return nil
}

func applySchema(db *sql.DB) error {
	if _, err := db.Exec(schemaSQL); err != nil {
		return fmt.Errorf("execute schema: %w", err)
	}
	if _, err := db.Exec(fmt.Sprintf("PRAGMA user_version = %d", currentSchemaVersion)); err != nil {
		return fmt.Errorf("set user_version: %w", err)
	}
	return nil
}

// BeginSession registers a session token. Idempotent.
func (r *Recorder) BeginSession(ctx context.Context, token string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO sessions (token) VALUES (?)
		ON CONFLICT(token) DO NOTHING
	`, token)
	if err != nil {
		return fmt.Errorf("begin session %s: %w", token, err)
	}
	return nil
}

// RecordEntry appends one transcript entry for a session.
// Idempotent on (session, seq): re-recording is silently ignored, so
// a resumed recording never duplicates entries.
func (r *Recorder) RecordEntry(ctx context.Context, token string, e transcript.Entry) error {
	output, err := json.Marshal(e.Output)
	if err != nil {
		return fmt.Errorf("record entry: %w", err)
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO entries (session_token, seq, input, output)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(session_token, seq) DO NOTHING
	`, token, e.Seq, e.Input, string(output))
	if err != nil {
		return fmt.Errorf("record entry %s/%d: %w", token, e.Seq, err)
	}
	return nil
}

// LoadSession reads a session's full transcript in seq order.
// Returns an error if the token is unknown.
func (r *Recorder) LoadSession(ctx context.Context, token string) (*transcript.Transcript, error) {
	var exists int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM sessions WHERE token = ?`, token).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("load session %s: %w", token, err)
	}
	if exists == 0 {
		return nil, fmt.Errorf("load session %s: unknown session token", token)
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT seq, input, output
		FROM entries
		WHERE session_token = ?
		ORDER BY seq ASC
	`, token)
	if err != nil {
		return nil, fmt.Errorf("query entries: %w", err)
	}
	defer rows.Close()

	t := &transcript.Transcript{Session: token}
	for rows.Next() {
		var (
			seq    int64
			input  string
			output string
		)
		if err := rows.Scan(&seq, &input, &output); err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		var lines []string
		if err := json.Unmarshal([]byte(output), &lines); err != nil {
			return nil, fmt.Errorf("decode output for seq %d: %w", seq, err)
		}
		t.Append(seq, input, lines)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate entries: %w", err)
	}
	return t, nil
}

// ListSessions returns all recorded session tokens. UUIDv7 tokens
// sort by creation time, so the default ordering is chronological.
func (r *Recorder) ListSessions(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT token FROM sessions ORDER BY token ASC`)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	tokens := []string{}
	for rows.Next() {
		var token string
		if err := rows.Scan(&token); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		tokens = append(tokens, token)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sessions: %w", err)
	}
	return tokens, nil
}
