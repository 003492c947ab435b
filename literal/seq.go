// Package literal extracts required literal sets from postfix token streams.
//
// A required literal set for a pattern is a set of strings such that every
// text the pattern accepts contains at least one of them. A text containing
// none of them can be rejected without running the automaton, which is what
// the prefilter package does with the set.
//
// Key concepts:
//   - A Literal is a concrete byte sequence (UTF-8 encoded runes)
//   - A Seq is a set of alternative literals, e.g. from /foo|bar/
//   - Minimize drops literals made redundant by a shorter member
package literal

import (
	"bytes"
	"slices"
)

// Literal is a byte sequence taken from a pattern.
//
// Example:
//   - Pattern /x*hello/ → Literal{[]byte("hello")}
type Literal struct {
	Bytes []byte
}

// NewLiteral creates a new Literal from the given byte sequence.
func NewLiteral(b []byte) Literal {
	return Literal{Bytes: b}
}

// Len returns the length of the literal in bytes.
func (l Literal) Len() int {
	return len(l.Bytes)
}

// String returns a string representation of the literal for debugging purposes.
func (l Literal) String() string {
	return "literal{" + string(l.Bytes) + "}"
}

// Seq is a set of alternative literals.
//
// Example:
//
//	seq := literal.NewSeq(
//	    literal.NewLiteral([]byte("foo")),
//	    literal.NewLiteral([]byte("bar")),
//	)
//	fmt.Println(seq.Len()) // 2
type Seq struct {
	literals []Literal
}

// NewSeq creates a new sequence from the given literals.
func NewSeq(lits ...Literal) *Seq {
	return &Seq{
		literals: lits,
	}
}

// Len returns the number of literals in the sequence. A nil Seq is empty.
func (s *Seq) Len() int {
	if s == nil {
		return 0
	}
	return len(s.literals)
}

// Get returns the literal at the specified index.
// Panics if index is out of bounds.
func (s *Seq) Get(i int) Literal {
	return s.literals[i]
}

// IsEmpty returns true if the sequence has no literals.
func (s *Seq) IsEmpty() bool {
	return s == nil || len(s.literals) == 0
}

// Bytes returns the literal byte sequences, sharing storage with the Seq.
func (s *Seq) Bytes() [][]byte {
	if s == nil {
		return nil
	}
	out := make([][]byte, len(s.literals))
	for i, lit := range s.literals {
		out[i] = lit.Bytes
	}
	return out
}

// MinLen returns the length of the shortest literal, or 0 for an empty Seq.
func (s *Seq) MinLen() int {
	if s.IsEmpty() {
		return 0
	}
	m := len(s.literals[0].Bytes)
	for _, lit := range s.literals[1:] {
		m = min(m, len(lit.Bytes))
	}
	return m
}

// Clone returns a deep copy of the sequence.
func (s *Seq) Clone() *Seq {
	if s == nil {
		return nil
	}
	cloned := make([]Literal, len(s.literals))
	for i, lit := range s.literals {
		cloned[i] = Literal{Bytes: bytes.Clone(lit.Bytes)}
	}
	return &Seq{literals: cloned}
}

// Minimize removes duplicate and redundant literals.
//
// For a required set, a literal L is redundant when another member S is a
// substring of L: every text containing L also contains S. The result is
// ordered by length, shortest first, ties in their original order.
//
// Example:
//
//	seq := literal.NewSeq(
//	    literal.NewLiteral([]byte("foobar")),
//	    literal.NewLiteral([]byte("oba")),
//	    literal.NewLiteral([]byte("baz")),
//	)
//	seq.Minimize()
//	// seq holds "oba", "baz"
func (s *Seq) Minimize() {
	if s.IsEmpty() {
		return
	}

	slices.SortStableFunc(s.literals, func(a, b Literal) int {
		return len(a.Bytes) - len(b.Bytes)
	})

	kept := s.literals[:0]
	for _, cur := range s.literals {
		redundant := false
		for _, k := range kept {
			if bytes.Contains(cur.Bytes, k.Bytes) {
				redundant = true
				break
			}
		}
		if !redundant {
			kept = append(kept, cur)
		}
	}
	clear(s.literals[len(kept):])
	s.literals = kept
}
