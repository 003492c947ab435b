package literal

import (
	"bytes"
	"unicode/utf8"

	"github.com/coregx/thompson/syntax"
)

// ExtractorConfig configures literal extraction limits.
//
// These limits keep extraction cheap for patterns with large finite
// languages, such as (a|b)(a|b)(a|b)(a|b)(a|b):
//   - MaxLiterals: caps the size of any set tracked for a subexpression
//   - MaxLiteralLen: caps the byte length of a tracked literal
//
// Example:
//
//	config := literal.ExtractorConfig{
//	    MaxLiterals:   16,
//	    MaxLiteralLen: 32,
//	}
//	extractor := literal.New(config)
type ExtractorConfig struct {
	// MaxLiterals limits the number of literals in a set. Default: 64.
	MaxLiterals int

	// MaxLiteralLen limits the length of each literal in bytes. Default: 64.
	MaxLiteralLen int
}

// DefaultConfig returns the default extractor configuration.
func DefaultConfig() ExtractorConfig {
	return ExtractorConfig{
		MaxLiterals:   64,
		MaxLiteralLen: 64,
	}
}

// Extractor computes required literal sets.
//
// It folds the postfix token stream bottom-up. For every subexpression it
// tracks two facts:
//   - exact: the whole language, when it is finite and within limits
//   - required: a set such that every accepted string contains a member
//
// The rules per operator:
//   - literal r: exact = required = {r}, nothing for U+FFFD
//   - concat: cross product of exact languages when small enough,
//     otherwise the better of the two required sets
//   - union: union of both sides, nothing if either side has nothing
//   - '+': the operand's required set
//   - '*', '?': nothing required, since the empty string is accepted
//
// Example:
//
//	tokens, _ := syntax.Normalize("x*(foo|bar)y*")
//	seq := literal.New(literal.DefaultConfig()).Required(tokens)
//	// seq = ["foo", "bar"]
type Extractor struct {
	config ExtractorConfig
}

// New creates a new Extractor with the given configuration.
func New(config ExtractorConfig) *Extractor {
	return &Extractor{config: config}
}

// facts describes one subexpression during the fold.
type facts struct {
	exact    [][]byte // nil: infinite or over limits
	required [][]byte // nil: nothing required
}

// Required returns the minimized required literal set for a postfix token
// stream, or nil when no literal is required (for example "a*", "a|b*" or
// the empty pattern). Malformed streams yield nil; the NFA compiler reports
// them.
func (e *Extractor) Required(tokens []syntax.Token) *Seq {
	stack := make([]facts, 0, len(tokens)/2+1)
	for _, tok := range tokens {
		if len(stack) < tok.Kind.Arity() {
			return nil
		}
		switch tok.Kind {
		case syntax.Literal:
			stack = append(stack, e.literal(tok.Rune))
		case syntax.Concat:
			r, l := stack[len(stack)-1], stack[len(stack)-2]
			stack = append(stack[:len(stack)-2], e.concat(l, r))
		case syntax.Union:
			r, l := stack[len(stack)-1], stack[len(stack)-2]
			stack = append(stack[:len(stack)-2], e.union(l, r))
		case syntax.Plus:
			top := stack[len(stack)-1]
			stack[len(stack)-1] = facts{required: top.required}
		case syntax.Quest:
			top := stack[len(stack)-1]
			stack[len(stack)-1] = e.withExact(e.addSet(top.exact, [][]byte{{}}), nil)
		case syntax.Star:
			stack[len(stack)-1] = facts{}
		default:
			return nil
		}
	}
	if len(stack) != 1 || stack[0].required == nil {
		return nil
	}

	required := stack[0].required
	lits := make([]Literal, len(required))
	for i, b := range required {
		lits[i] = NewLiteral(b)
	}
	seq := NewSeq(lits...)
	seq.Minimize()
	return seq
}

// literal gives nothing for U+FFFD: the matchers read every invalid UTF-8
// byte as U+FFFD, so no byte string is required to match it.
func (e *Extractor) literal(r rune) facts {
	if r == utf8.RuneError {
		return facts{}
	}
	return e.withExact([][]byte{utf8.AppendRune(nil, r)}, nil)
}

func (e *Extractor) concat(l, r facts) facts {
	if cross := e.crossSet(l.exact, r.exact); cross != nil {
		return e.withExact(cross, better(l.required, r.required))
	}
	return facts{required: better(l.required, r.required)}
}

func (e *Extractor) union(l, r facts) facts {
	if exact := e.addSet(l.exact, r.exact); exact != nil {
		return e.withExact(exact, nil)
	}
	if l.required == nil || r.required == nil {
		return facts{}
	}
	return facts{required: e.addSet(l.required, r.required)}
}

// withExact records a finite language. Its members are the required set
// unless one of them is empty; then fallback is used.
func (e *Extractor) withExact(exact, fallback [][]byte) facts {
	if exact == nil {
		return facts{required: fallback}
	}
	for _, b := range exact {
		if len(b) == 0 {
			return facts{exact: exact, required: fallback}
		}
	}
	return facts{exact: exact, required: exact}
}

// crossSet concatenates every member of a with every member of b.
// Returns nil if either side is unknown or the result is over limits.
func (e *Extractor) crossSet(a, b [][]byte) [][]byte {
	if a == nil || b == nil || len(a)*len(b) > e.config.MaxLiterals {
		return nil
	}
	out := make([][]byte, 0, len(a)*len(b))
	for _, x := range a {
		for _, y := range b {
			if len(x)+len(y) > e.config.MaxLiteralLen {
				return nil
			}
			lit := make([]byte, 0, len(x)+len(y))
			lit = append(append(lit, x...), y...)
			out = appendUnique(out, lit)
		}
	}
	return out
}

// addSet returns the union of a and b without duplicates, or nil if either
// side is unknown or the result is over limits.
func (e *Extractor) addSet(a, b [][]byte) [][]byte {
	if a == nil || b == nil || len(a)+len(b) > e.config.MaxLiterals {
		return nil
	}
	out := make([][]byte, 0, len(a)+len(b))
	for _, x := range a {
		out = appendUnique(out, x)
	}
	for _, y := range b {
		out = appendUnique(out, y)
	}
	return out
}

// better picks the more selective required set: the one whose shortest
// literal is longer, then the smaller one.
func better(a, b [][]byte) [][]byte {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	}
	if ma, mb := minLen(a), minLen(b); ma != mb {
		if ma > mb {
			return a
		}
		return b
	}
	if len(b) < len(a) {
		return b
	}
	return a
}

func minLen(set [][]byte) int {
	m := len(set[0])
	for _, b := range set[1:] {
		m = min(m, len(b))
	}
	return m
}

func appendUnique(set [][]byte, lit []byte) [][]byte {
	for _, b := range set {
		if bytes.Equal(b, lit) {
			return set
		}
	}
	return append(set, lit)
}
