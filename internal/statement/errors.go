package statement

import "fmt"

// UnrecognizedError reports a line whose leading token matches no
// known statement keyword. Line is the full input line.
type UnrecognizedError struct {
	Line string
}

func (e *UnrecognizedError) Error() string {
	return fmt.Sprintf("Unrecognized keyword at start of '%s'.", e.Line)
}

// SyntaxError reports a recognized keyword with a malformed argument
// list (wrong argument count for insert).
type SyntaxError struct{}

func (e *SyntaxError) Error() string {
	return "Syntax error. Could not parse statement."
}

// ValidationError reports a well-formed insert that violates a field
// constraint. Its message is the full output for the offending line.
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string { return e.msg }

var (
	errNegativeID    = &ValidationError{msg: "ID must be positive."}
	errStringTooLong = &ValidationError{msg: "String is too long."}
)
