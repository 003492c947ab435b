// Package nfa provides the Thompson NFA arena, its fragment combinators and
// the epsilon-closure engine used by the lazy DFA.
//
// Every node has at most two outgoing edges. Nodes refer to each other by
// arena index, so the loops introduced by '*' and '+' are plain integers and
// need no ownership bookkeeping.
package nfa

import (
	"errors"
	"fmt"
)

// Common NFA errors
var (
	// ErrInvalidNode indicates an NFA node ID outside the arena was encountered
	ErrInvalidNode = errors.New("invalid NFA node")

	// ErrEdgeOverflow indicates a third outgoing edge was requested for a node
	ErrEdgeOverflow = errors.New("node already has two outgoing edges")

	// ErrRetiredNode indicates a live edge points at a recycled slot
	ErrRetiredNode = errors.New("edge targets a retired node")
)

// CompileError wraps compilation errors that are not pattern syntax errors.
// Syntax problems are reported as *syntax.SyntaxError instead.
type CompileError struct {
	Pattern string
	Err     error
}

// Error implements the error interface
func (e *CompileError) Error() string {
	if e.Pattern != "" {
		return fmt.Sprintf("NFA compilation failed for pattern %q: %v", e.Pattern, e.Err)
	}
	return fmt.Sprintf("NFA compilation failed: %v", e.Err)
}

// Unwrap returns the underlying error
func (e *CompileError) Unwrap() error {
	return e.Err
}

// BuildError represents an error during NFA construction via the Builder API
type BuildError struct {
	Message string
	NodeID  NodeID
	Err     error
}

// Error implements the error interface
func (e *BuildError) Error() string {
	if e.NodeID != InvalidNode {
		return fmt.Sprintf("NFA build error at node %d: %s", e.NodeID, e.Message)
	}
	return fmt.Sprintf("NFA build error: %s", e.Message)
}

// Unwrap returns the underlying sentinel, if any
func (e *BuildError) Unwrap() error {
	return e.Err
}

// InvariantError describes a corrupted arena. It is never returned; the
// engine panics with it because no caller can recover from it.
type InvariantError struct {
	Op  string
	Err error
}

// Error implements the error interface
func (e *InvariantError) Error() string {
	return fmt.Sprintf("nfa: internal invariant violated in %s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error
func (e *InvariantError) Unwrap() error {
	return e.Err
}

func invariant(op string, err error) {
	panic(&InvariantError{Op: op, Err: err})
}
