// Package prefilter rejects texts that cannot match before the automaton
// runs.
//
// A prefilter is built from a pattern's required literal set (see package
// literal): every accepted text contains at least one member, so a text
// containing none of them is rejected with a single fast scan.
//
// The builder selects the strategy from the literal set:
//   - Single 1-byte literal → Memchr (SWAR byte search)
//   - Single longer literal → Memmem (rare byte scan + verify)
//   - Two 1-byte literals → Memchr2
//   - Several literals → Aho-Corasick automaton
//
// Example usage:
//
//	tokens, _ := syntax.Normalize("x*(foo|bar)y*")
//	seq := literal.New(literal.DefaultConfig()).Required(tokens)
//	pf := prefilter.NewBuilder(seq).Build()
//	pf.IsMatchString("xxbaz") // false: neither foo nor bar occurs
package prefilter

import (
	"github.com/coregx/thompson/literal"
	"github.com/coregx/thompson/simd"
)

// Strategy names returned by Prefilter.Kind
const (
	KindMemchr      = "memchr"
	KindMemchr2     = "memchr2"
	KindMemmem      = "memmem"
	KindAhoCorasick = "aho-corasick"
)

// Prefilter scans a text for the required literals of a pattern.
//
// IsMatch returning false proves the pattern cannot accept the text.
// Returning true proves nothing; the automaton decides.
//
// Prefilters are immutable after construction and safe for concurrent use.
type Prefilter interface {
	// IsMatch reports whether haystack contains any of the literals.
	IsMatch(haystack []byte) bool

	// IsMatchString is IsMatch for strings.
	IsMatchString(haystack string) bool

	// Kind names the strategy, one of the Kind constants.
	Kind() string
}

// Builder constructs a prefilter from a required literal set.
//
// Example:
//
//	pf := prefilter.NewBuilder(seq).Build()
//	if pf != nil && !pf.IsMatch(text) {
//	    return false
//	}
type Builder struct {
	literals *literal.Seq
}

// NewBuilder creates a new prefilter builder. seq may be nil.
func NewBuilder(seq *literal.Seq) *Builder {
	return &Builder{literals: seq}
}

// Build selects and constructs the prefilter.
//
// Returns nil if there are no literals, if any literal is empty (an empty
// required literal is contained in every text), or if the Aho-Corasick
// automaton cannot be built.
func (b *Builder) Build() Prefilter {
	seq := b.literals
	if seq.IsEmpty() || seq.MinLen() == 0 {
		return nil
	}

	if seq.Len() == 1 {
		lit := seq.Get(0)
		if len(lit.Bytes) == 1 {
			return newMemchr(lit.Bytes[0])
		}
		return newMemmem(lit.Bytes)
	}
	if seq.Len() == 2 && seq.Get(0).Len() == 1 && seq.Get(1).Len() == 1 {
		return newMemchr2(seq.Get(0).Bytes[0], seq.Get(1).Bytes[0])
	}

	pf, err := newAhoCorasick(seq.Bytes())
	if err != nil {
		return nil
	}
	return pf
}

// memchrPrefilter wraps simd.Memchr as a Prefilter.
//
// Example patterns:
//
//	/x*a+/   → search for 'a'
//	/(ab)*c/ → search for 'c'
type memchrPrefilter struct {
	needle byte
}

func newMemchr(needle byte) Prefilter {
	return &memchrPrefilter{needle: needle}
}

// IsMatch implements Prefilter.IsMatch.
func (p *memchrPrefilter) IsMatch(haystack []byte) bool {
	return simd.Memchr(haystack, p.needle) >= 0
}

// IsMatchString implements Prefilter.IsMatchString.
func (p *memchrPrefilter) IsMatchString(haystack string) bool {
	return simd.MemchrString(haystack, p.needle) >= 0
}

// Kind implements Prefilter.Kind.
func (p *memchrPrefilter) Kind() string {
	return KindMemchr
}

// memchr2Prefilter wraps simd.Memchr2 as a Prefilter.
//
// Example patterns:
//
//	/x*(a|b)y*/ → search for 'a' or 'b'
type memchr2Prefilter struct {
	needle1, needle2 byte
}

func newMemchr2(needle1, needle2 byte) Prefilter {
	return &memchr2Prefilter{needle1: needle1, needle2: needle2}
}

// IsMatch implements Prefilter.IsMatch.
func (p *memchr2Prefilter) IsMatch(haystack []byte) bool {
	return simd.Memchr2(haystack, p.needle1, p.needle2) >= 0
}

// IsMatchString implements Prefilter.IsMatchString.
func (p *memchr2Prefilter) IsMatchString(haystack string) bool {
	return simd.Memchr2String(haystack, p.needle1, p.needle2) >= 0
}

// Kind implements Prefilter.Kind.
func (p *memchr2Prefilter) Kind() string {
	return KindMemchr2
}

// memmemPrefilter wraps simd.Memmem as a Prefilter.
//
// Example patterns:
//
//	/hello/        → search for "hello"
//	/x*(ab)+y*/    → search for "ab"
type memmemPrefilter struct {
	needle []byte
	str    string
}

// newMemmem copies needle so the prefilter does not alias the literal set.
func newMemmem(needle []byte) Prefilter {
	return &memmemPrefilter{
		needle: append([]byte(nil), needle...),
		str:    string(needle),
	}
}

// IsMatch implements Prefilter.IsMatch.
func (p *memmemPrefilter) IsMatch(haystack []byte) bool {
	return simd.Memmem(haystack, p.needle) >= 0
}

// IsMatchString implements Prefilter.IsMatchString.
func (p *memmemPrefilter) IsMatchString(haystack string) bool {
	return simd.MemmemString(haystack, p.str) >= 0
}

// Kind implements Prefilter.Kind.
func (p *memmemPrefilter) Kind() string {
	return KindMemmem
}
