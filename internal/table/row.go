package table

import (
	"errors"
	"fmt"
)

// ErrTooLong is returned by the Username and Email constructors when
// the value exceeds the column's byte limit.
var ErrTooLong = errors.New("value exceeds column size")

// Username is a username column value, at most UsernameSize bytes.
// The zero value is the empty username.
type Username struct {
	s string
}

// NewUsername validates and wraps a raw username.
// The bound is inclusive: exactly UsernameSize bytes is accepted.
// Length is measured in bytes, not runes.
func NewUsername(s string) (Username, error) {
	if len(s) > UsernameSize {
		return Username{}, fmt.Errorf("username %d bytes: %w", len(s), ErrTooLong)
	}
	return Username{s: s}, nil
}

func (u Username) String() string { return u.s }

// Email is an email column value, at most EmailSize bytes.
// The zero value is the empty email.
type Email struct {
	s string
}

// NewEmail validates and wraps a raw email.
// The bound is inclusive: exactly EmailSize bytes is accepted.
func NewEmail(s string) (Email, error) {
	if len(s) > EmailSize {
		return Email{}, fmt.Errorf("email %d bytes: %w", len(s), ErrTooLong)
	}
	return Email{s: s}, nil
}

func (e Email) String() string { return e.s }

// Row is one record of the fixed schema. A Row can only be built from
// validated column values, so any Row in hand satisfies the length
// bounds by construction.
type Row struct {
	ID       uint32
	Username Username
	Email    Email
}

// String renders the row in its canonical output form:
// a parenthesized, comma-space-separated triple with no quoting.
func (r Row) String() string {
	return fmt.Sprintf("(%d, %s, %s)", r.ID, r.Username, r.Email)
}
