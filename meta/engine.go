package meta

import (
	"errors"
	"io"

	"github.com/coregx/thompson/dfa/lazy"
	"github.com/coregx/thompson/literal"
	"github.com/coregx/thompson/nfa"
	"github.com/coregx/thompson/prefilter"
)

// ErrNoDFA is returned by WriteDFADOT when the engine runs without a DFA
var ErrNoDFA = errors.New("thompson: engine has no lazy DFA")

// Engine is the meta-engine that orchestrates the matchers for one pattern.
//
// The Engine:
//  1. Compiles the pattern to an NFA and extracts its required literals
//  2. Selects the strategy (NFA, DFA, or both)
//  3. Builds the prefilter (if literals are available)
//  4. Routes each search to the selected matcher
//
// Thread safety: an Engine is NOT safe for concurrent use, since the lazy
// DFA mutates its cache while matching. Guard it with a lock or give each
// goroutine its own Clone. The NFA, literals and prefilter are immutable and
// shared between clones.
//
// Example:
//
//	engine, err := meta.Compile("(foo|bar)+")
//	if err != nil {
//	    return err
//	}
//	engine.IsMatchString("foobar") // true
type Engine struct {
	// Statistics (useful for debugging and tuning)
	stats Stats

	pattern   string
	nfa       *nfa.NFA
	dfa       *lazy.DFA
	pikevm    *nfa.PikeVM
	literals  *literal.Seq
	prefilter prefilter.Prefilter
	strategy  Strategy
	config    Config

	// fellBack is set once UseBoth has abandoned the DFA
	fellBack bool
}

// Stats tracks execution statistics for performance analysis.
type Stats struct {
	// NFASearches counts PikeVM searches
	NFASearches uint64

	// DFASearches counts lazy DFA searches
	DFASearches uint64

	// PrefilterRejects counts texts the engine rejected with the prefilter
	// before running the PikeVM. DFA-side rejections are in DFA.PrefilterSkips.
	PrefilterRejects uint64

	// DFAFallbacks counts switches from the DFA to the PikeVM (0 or 1)
	DFAFallbacks uint64

	// DFA holds the lazy DFA's own counters. Zero for UseNFA.
	DFA lazy.Stats
}

// Pattern returns the source pattern
func (e *Engine) Pattern() string {
	return e.pattern
}

// Strategy returns the execution strategy selected for this engine.
//
// Example:
//
//	engine, _ := meta.CompileWithConfig("a*", meta.DefaultConfig().WithDFA(false))
//	println(engine.Strategy()) // UseNFA
func (e *Engine) Strategy() Strategy {
	return e.strategy
}

// Config returns the configuration the engine was compiled with
func (e *Engine) Config() Config {
	return e.config
}

// NFA returns the compiled automaton
func (e *Engine) NFA() *nfa.NFA {
	return e.nfa
}

// DFA returns the lazy DFA, or nil for UseNFA
func (e *Engine) DFA() *lazy.DFA {
	return e.dfa
}

// WriteNFADOT writes the NFA as a Graphviz digraph
func (e *Engine) WriteNFADOT(w io.Writer) error {
	return e.nfa.WriteDOT(w)
}

// WriteDFADOT writes the states determinized so far as a Graphviz digraph.
// Returns ErrNoDFA for UseNFA.
func (e *Engine) WriteDFADOT(w io.Writer) error {
	if e.dfa == nil {
		return ErrNoDFA
	}
	return e.dfa.WriteDOT(w)
}

// Literals returns the required literal set, or nil if none was found
func (e *Engine) Literals() *literal.Seq {
	return e.literals
}

// Prefilter returns the prefilter, or nil if none is used
func (e *Engine) Prefilter() prefilter.Prefilter {
	return e.prefilter
}

// FellBack reports whether the engine has abandoned the DFA for the NFA
func (e *Engine) FellBack() bool {
	return e.fellBack
}

// NumStates returns the number of DFA states currently cached, 0 without a DFA
func (e *Engine) NumStates() int {
	if e.dfa == nil {
		return 0
	}
	return e.dfa.Cache().Size()
}

// Stats returns a snapshot of the execution statistics.
func (e *Engine) Stats() Stats {
	s := e.stats
	if e.dfa != nil {
		s.DFA = e.dfa.Stats()
	}
	return s
}

// ResetStats resets the engine's own counters. The DFA counters are kept.
func (e *Engine) ResetStats() {
	e.stats = Stats{}
}

// Clone returns an engine with private matcher state: a copy of the DFA
// cache and a fresh PikeVM. The NFA, literals and prefilter are shared.
func (e *Engine) Clone() *Engine {
	c := *e
	if e.dfa != nil {
		c.dfa = e.dfa.Clone()
	}
	if e.pikevm != nil {
		c.pikevm = nfa.NewPikeVM(e.nfa)
	}
	return &c
}
