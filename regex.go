// Package thompson provides a full-match regular expression engine built on
// Thompson NFAs and a lazily constructed DFA.
//
// A pattern is normalized to postfix order, compiled to a Thompson NFA, and
// matched by determinizing the NFA on demand: every DFA state discovered
// while matching is interned in a splay-tree cache, and its transitions are
// memoised, so repeated matching against the same pattern gets cheaper as
// the cache warms up. The pattern's required literals feed a prefilter that
// rejects most non-matching texts before the automaton runs.
//
// Syntax:
//   - any character is a literal, except the metacharacters below
//   - '|' alternation, '*' zero or more, '+' one or more, '?' optional
//   - '(' ')' grouping; an empty group is an error
//   - '\' makes the next character a literal
//
// Matching is full-string: MatchString(s) is true iff the whole of s is in
// the pattern's language. There is no substring search, no anchors, no
// character classes and no capture groups.
//
// Basic usage:
//
//	re, err := thompson.Compile("ab?c")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	re.MatchString("ac")   // true
//	re.MatchString("abbc") // false
//
// Advanced usage:
//
//	config := thompson.DefaultConfig()
//	config.MaxDFAStates = 256 // smaller cache, cleared when full
//	re, err := thompson.CompileWithConfig("(a|b)*abb", config)
package thompson

import (
	"io"
	"sync"

	"golang.org/x/sys/cpu"

	"github.com/coregx/thompson/meta"
	"github.com/coregx/thompson/syntax"
)

// Regex represents a compiled regular expression.
//
// A Regex is safe to use concurrently from multiple goroutines: searches
// serialize on a lock around the DFA cache. Workers that match at a high
// rate should each take a Clone, which has a private cache.
//
// Example:
//
//	re := thompson.MustCompile("(foo|bar)+")
//	if re.MatchString("foobar") {
//	    println("matched!")
//	}
type Regex struct {
	pattern string

	// the lock and the engine it guards sit on their own cache line
	_      cpu.CacheLinePad
	mu     sync.Mutex
	engine *meta.Engine
	_      cpu.CacheLinePad
}

// Regexp is an alias for Regex, for code written against the standard
// library's naming.
type Regexp = Regex

// Config controls compilation. See meta.Config for the fields.
type Config = meta.Config

// Stats holds matching statistics. See meta.Stats for the fields.
type Stats = meta.Stats

// SyntaxError describes a malformed pattern. Compile returns it unwrapped.
type SyntaxError = syntax.SyntaxError

// Compile compiles a regular expression pattern.
// Returns a *SyntaxError if the pattern is malformed.
//
// Example:
//
//	re, err := thompson.Compile("(a|b)*abb")
//	if err != nil {
//	    log.Fatal(err)
//	}
func Compile(pattern string) (*Regex, error) {
	return CompileWithConfig(pattern, DefaultConfig())
}

// MustCompile compiles a regular expression pattern and panics if it fails.
//
// This is useful for patterns known to be valid at compile time.
//
// Example:
//
//	var keyword = thompson.MustCompile("(if|else|for)")
func MustCompile(pattern string) *Regex {
	re, err := Compile(pattern)
	if err != nil {
		panic("thompson: Compile(`" + pattern + "`): " + err.Error())
	}
	return re
}

// CompileWithConfig compiles a pattern with custom configuration.
//
// Example:
//
//	config := thompson.DefaultConfig()
//	config.EnableDFA = false // PikeVM only, no state cache
//	re, err := thompson.CompileWithConfig("(a|b|c)*", config)
func CompileWithConfig(pattern string, config Config) (*Regex, error) {
	engine, err := meta.CompileWithConfig(pattern, config)
	if err != nil {
		return nil, err
	}

	return &Regex{
		engine:  engine,
		pattern: pattern,
	}, nil
}

// DefaultConfig returns the default configuration for compilation.
func DefaultConfig() Config {
	return meta.DefaultConfig()
}

// QuoteMeta returns a string that escapes all metacharacters inside the
// argument text; the returned string is a pattern matching exactly the
// literal text.
//
// Example:
//
//	escaped := thompson.QuoteMeta("a+b")
//	// escaped = `a\+b`
//	re := thompson.MustCompile(escaped)
//	re.MatchString("a+b") // true
func QuoteMeta(s string) string {
	const special = `\|*+?()`

	n := 0
	for i := 0; i < len(s); i++ {
		if isSpecial(s[i], special) {
			n++
		}
	}
	if n == 0 {
		return s
	}

	buf := make([]byte, len(s)+n)
	j := 0
	for i := 0; i < len(s); i++ {
		if isSpecial(s[i], special) {
			buf[j] = '\\'
			j++
		}
		buf[j] = s[i]
		j++
	}
	return string(buf)
}

// isSpecial returns true if c is in the special characters string.
func isSpecial(c byte, special string) bool {
	for i := 0; i < len(special); i++ {
		if c == special[i] {
			return true
		}
	}
	return false
}

// Match reports whether the whole of b is matched by the pattern.
// Invalid UTF-8 reads as utf8.RuneError, one byte at a time.
//
// Example:
//
//	re := thompson.MustCompile("a+")
//	re.Match([]byte("aaa"))  // true
//	re.Match([]byte("aaab")) // false
func (r *Regex) Match(b []byte) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.engine.IsMatch(b)
}

// MatchString reports whether the whole of s is matched by the pattern.
//
// Example:
//
//	re := thompson.MustCompile("a|b")
//	re.MatchString("a")  // true
//	re.MatchString("ab") // false, no substring search
func (r *Regex) MatchString(s string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.engine.IsMatchString(s)
}

// String returns the source text used to compile the regular expression.
func (r *Regex) String() string {
	return r.pattern
}

// NumStates returns the number of DFA states currently cached.
func (r *Regex) NumStates() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.engine.NumStates()
}

// Stats returns a snapshot of the matching statistics.
func (r *Regex) Stats() Stats {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.engine.Stats()
}

// ResetStats resets the engine counters. The DFA cache is kept.
func (r *Regex) ResetStats() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.engine.ResetStats()
}

// Strategy returns the execution strategy selected for this pattern.
func (r *Regex) Strategy() meta.Strategy {
	return r.engine.Strategy()
}

// Clone returns a copy of the Regex with a private DFA cache, starting from
// the states cached so far. The compiled NFA is shared.
func (r *Regex) Clone() *Regex {
	r.mu.Lock()
	defer r.mu.Unlock()
	return &Regex{
		pattern: r.pattern,
		engine:  r.engine.Clone(),
	}
}

// NFA returns a printable dump of the compiled automaton.
func (r *Regex) NFA() string {
	return r.engine.NFA().String()
}

// WriteNFADOT writes the compiled NFA as a Graphviz digraph.
//
// Example:
//
//	re := thompson.MustCompile("(a|b)*c")
//	re.WriteNFADOT(os.Stdout) // pipe into: dot -Tsvg
func (r *Regex) WriteNFADOT(w io.Writer) error {
	return r.engine.WriteNFADOT(w)
}

// WriteDFADOT writes the DFA states discovered so far, with their memoised
// transitions, as a Graphviz digraph. Returns meta.ErrNoDFA when the DFA is
// disabled.
func (r *Regex) WriteDFADOT(w io.Writer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.engine.WriteDFADOT(w)
}
