package syntax

import "fmt"

// ErrorCode describes a pattern syntax failure.
type ErrorCode string

const (
	// ErrMissingParen reports a '(' that is never closed.
	ErrMissingParen ErrorCode = "missing closing )"

	// ErrUnexpectedParen reports a ')' with no matching '('.
	ErrUnexpectedParen ErrorCode = "unexpected )"

	// ErrMissingOperand reports an operator with too few operands.
	ErrMissingOperand ErrorCode = "missing argument to operator"

	// ErrTrailingExpression reports operands left over after the last operator.
	ErrTrailingExpression ErrorCode = "malformed trailing expression"

	// ErrEmptyGroup reports "()".
	ErrEmptyGroup ErrorCode = "empty group"

	// ErrTrailingBackslash reports a pattern ending in an unfinished escape.
	ErrTrailingBackslash ErrorCode = "trailing backslash at end of expression"
)

// String returns the code's message.
func (c ErrorCode) String() string {
	return string(c)
}

// Error lets a bare ErrorCode be used as an errors.Is target.
func (c ErrorCode) Error() string {
	return string(c)
}

// SyntaxError is returned when a pattern cannot be compiled.
// Pos is the byte offset in Pattern where the problem was detected,
// or -1 when it is not tied to a single position.
type SyntaxError struct {
	Code    ErrorCode
	Pattern string
	Pos     int
}

// Error implements the error interface
func (e *SyntaxError) Error() string {
	if e.Pos >= 0 {
		return fmt.Sprintf("error parsing regexp: %s at offset %d: `%s`", e.Code, e.Pos, e.Pattern)
	}
	return fmt.Sprintf("error parsing regexp: %s: `%s`", e.Code, e.Pattern)
}

// Unwrap returns the error code so errors.Is(err, ErrMissingOperand) works.
func (e *SyntaxError) Unwrap() error {
	return e.Code
}

// Is reports whether target is a SyntaxError with the same code.
func (e *SyntaxError) Is(target error) bool {
	t, ok := target.(*SyntaxError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// NewError builds a SyntaxError.
func NewError(code ErrorCode, pattern string, pos int) *SyntaxError {
	return &SyntaxError{Code: code, Pattern: pattern, Pos: pos}
}
