package lazy

import "fmt"

// Error types for Lazy DFA operations

// ErrCacheFull indicates that the DFA state cache has reached its maximum size.
// The matcher reacts by clearing the cache and rebuilding states on demand,
// so this error never escapes a match.
var ErrCacheFull = &DFAError{
	Kind:    CacheFull,
	Message: "DFA state cache is full",
}

// ErrInvalidConfig indicates that the provided configuration is invalid.
// This is typically caught during DFA construction.
var ErrInvalidConfig = &DFAError{
	Kind:    InvalidConfig,
	Message: "invalid DFA configuration",
}

// ErrorKind classifies DFA errors into categories
type ErrorKind uint8

const (
	// CacheFull indicates the state cache reached its size limit
	CacheFull ErrorKind = iota

	// InvalidConfig indicates configuration validation failed
	InvalidConfig

	// InvariantViolation indicates a corrupted state cache. Errors of this
	// kind are only ever used as panic values.
	InvariantViolation
)

// String returns a human-readable error kind name
func (k ErrorKind) String() string {
	switch k {
	case CacheFull:
		return "CacheFull"
	case InvalidConfig:
		return "InvalidConfig"
	case InvariantViolation:
		return "InvariantViolation"
	default:
		return fmt.Sprintf("UnknownErrorKind(%d)", k)
	}
}

// DFAError represents an error that occurred during DFA operations
type DFAError struct {
	Kind    ErrorKind
	Message string
	Cause   error // Optional underlying error
}

// Error implements the error interface
func (e *DFAError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying error (for errors.Is/As)
func (e *DFAError) Unwrap() error {
	return e.Cause
}

// Is implements error comparison for errors.Is
func (e *DFAError) Is(target error) bool {
	t, ok := target.(*DFAError)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

func invariant(format string, args ...any) {
	panic(&DFAError{
		Kind:    InvariantViolation,
		Message: "lazy: " + fmt.Sprintf(format, args...),
	})
}
