// Package lazy implements a Lazy DFA (Deterministic Finite Automaton) engine
// for regex matching.
//
// The Lazy DFA constructs DFA states on-demand during matching, rather than
// building the complete DFA upfront. A DFA state is the set of NFA nodes that
// are active after reading some prefix of the input. States are interned in a
// splay tree cache and their outgoing transitions are memoised, so every
// (state, rune) pair is determinized at most once while it stays cached.
//
// This provides:
//   - Fast matching: O(n) per string once the visited states are cached
//   - Bounded memory: the cache is cleared and rebuilt when it hits MaxStates
//   - Early exit: the empty node set is a dead state that can never accept
//
// Matching is full-string: a text matches iff the whole text is in the
// pattern's language.
//
// Example usage:
//
//	n, err := nfa.Compile("(a|b)*c")
//	if err != nil {
//	    return err
//	}
//	dfa, err := lazy.New(n, lazy.DefaultConfig())
//	if err != nil {
//	    return err
//	}
//	dfa.IsMatchString("abbac") // true
//	dfa.IsMatchString("abba")  // false
package lazy

import (
	"slices"
	"unicode/utf8"

	"github.com/coregx/thompson/nfa"
	"github.com/coregx/thompson/prefilter"
)

// DFA is a Lazy DFA engine that performs on-demand determinization.
//
// The DFA maintains:
//   - An NFA (the source automaton, immutable and shareable)
//   - A cache of determinized states
//   - A closure engine with its own visit stamps
//   - An optional prefilter that rejects texts lacking a required literal
//
// Thread safety: Not thread-safe. Each goroutine should use its own DFA
// instance (see Clone). The NFA and prefilter are shared between clones.
type DFA struct {
	nfa       *nfa.NFA
	cache     *Cache
	closure   *nfa.Closure
	config    Config
	prefilter prefilter.Prefilter

	// start is the interned closure of the NFA start node, or InvalidState
	// when it has to be (re)computed after a cache clear.
	start StateID

	// scratch holds the node set under construction by step
	scratch []nfa.NodeID

	searches        uint64
	prefilterSkips  uint64
	deadExits       uint64
	determinized    uint64
	memoisedFollows uint64
}

// New creates a Lazy DFA over n without a prefilter.
// Returns an error if config is invalid.
func New(n *nfa.NFA, config Config) (*DFA, error) {
	return NewBuilder(n, config).Build()
}

// IsMatchString reports whether the whole of text is accepted.
//
// Each rune is consumed by following a memoised transition when one exists,
// or by one subset construction step otherwise. The scan stops early once
// the dead state is reached.
func (d *DFA) IsMatchString(text string) bool {
	d.searches++
	if d.prefilter != nil && !d.prefilter.IsMatchString(text) {
		d.prefilterSkips++
		return false
	}

	cur := d.startState()
	for _, r := range text {
		cur = d.next(cur, r)
		if d.cache.State(cur).IsDead() {
			d.deadExits++
			return false
		}
	}
	return d.cache.State(cur).IsMatch()
}

// IsMatch reports whether the whole of text is accepted.
// text is decoded as UTF-8; invalid bytes read as utf8.RuneError.
func (d *DFA) IsMatch(text []byte) bool {
	d.searches++
	if d.prefilter != nil && !d.prefilter.IsMatch(text) {
		d.prefilterSkips++
		return false
	}

	cur := d.startState()
	for i := 0; i < len(text); {
		r, size := utf8.DecodeRune(text[i:])
		i += size
		cur = d.next(cur, r)
		if d.cache.State(cur).IsDead() {
			d.deadExits++
			return false
		}
	}
	return d.cache.State(cur).IsMatch()
}

// startState returns the state for the closure of the NFA start node,
// interning it on first use and after every cache clear.
func (d *DFA) startState() StateID {
	if d.start != InvalidState {
		return d.start
	}
	set := d.closure.Of(d.nfa.Start())
	id, _ := d.intern(set, d.closure.ContainsTerminal(set))
	d.start = id
	return id
}

// next returns the successor of cur on input r.
func (d *DFA) next(cur StateID, r rune) StateID {
	if to, ok := d.cache.State(cur).Transition(r); ok {
		d.memoisedFollows++
		return to
	}

	set := d.step(d.cache.State(cur).NFAStates(), r)
	to, cleared := d.intern(set, d.closure.ContainsTerminal(set))
	d.determinized++
	if cleared {
		// cur no longer exists; the transition is rediscovered later.
		return to
	}
	// Intern may have grown the arena, so fetch cur again.
	d.cache.State(cur).AddTransition(r, to)
	return to
}

// step performs one subset construction step: it follows every rune edge
// out of set that accepts r and returns the sorted epsilon-closure of all
// targets, computed in a single closure pass.
//
// The returned slice is scratch space owned by the DFA.
func (d *DFA) step(set []nfa.NodeID, r rune) []nfa.NodeID {
	d.closure.Seed()
	next := d.scratch[:0]
	for _, id := range set {
		a, b := d.nfa.Node(id).Edges()
		if a.Accepts(r) {
			next = d.closure.Add(a.To, next)
		}
		if b.Accepts(r) {
			next = d.closure.Add(b.To, next)
		}
	}
	slices.Sort(next)
	d.scratch = next
	return next
}

// intern interns set, clearing the cache first if it is full. It reports
// whether a clear happened, in which case every StateID held by the caller
// is stale.
func (d *DFA) intern(set []nfa.NodeID, isMatch bool) (StateID, bool) {
	id, err := d.cache.Intern(set, isMatch)
	if err == nil {
		return id, false
	}

	d.cache.Clear()
	d.start = InvalidState
	id, err = d.cache.Intern(set, isMatch)
	if err != nil {
		invariant("intern into a cleared cache failed: %v", err)
	}
	return id, true
}

// NFA returns the automaton this DFA determinizes
func (d *DFA) NFA() *nfa.NFA {
	return d.nfa
}

// Cache returns the DFA's state cache
func (d *DFA) Cache() *Cache {
	return d.cache
}

// Config returns the configuration the DFA was built with
func (d *DFA) Config() Config {
	return d.config
}

// Prefilter returns the prefilter, or nil if none is used
func (d *DFA) Prefilter() prefilter.Prefilter {
	return d.prefilter
}

// Clone returns a DFA with a private copy of the state cache. The NFA and
// prefilter are shared. Counters start from the source's values.
func (d *DFA) Clone() *DFA {
	return &DFA{
		nfa:             d.nfa,
		cache:           d.cache.Clone(),
		closure:         nfa.NewClosure(d.nfa),
		config:          d.config,
		prefilter:       d.prefilter,
		start:           d.start,
		searches:        d.searches,
		prefilterSkips:  d.prefilterSkips,
		deadExits:       d.deadExits,
		determinized:    d.determinized,
		memoisedFollows: d.memoisedFollows,
	}
}

// Stats holds matching counters for a DFA
type Stats struct {
	// Searches is the number of IsMatch/IsMatchString calls
	Searches uint64

	// PrefilterSkips counts texts rejected by the prefilter alone
	PrefilterSkips uint64

	// DeadStateExits counts scans that stopped early in the dead state
	DeadStateExits uint64

	// Determinized counts subset construction steps
	Determinized uint64

	// MemoisedFollows counts transitions taken from the memo tables
	MemoisedFollows uint64

	// States is the number of states currently cached
	States int

	// CacheHits and CacheMisses count Intern lookups
	CacheHits   uint64
	CacheMisses uint64

	// CacheClears counts how often the cache overflowed and was cleared
	CacheClears int

	// Rotations counts splay tree rotations
	Rotations uint64

	// TreeDepth is the current height of the splay tree
	TreeDepth int
}

// Stats returns a snapshot of the DFA's counters.
func (d *DFA) Stats() Stats {
	hits, misses, _ := d.cache.Stats()
	return Stats{
		Searches:        d.searches,
		PrefilterSkips:  d.prefilterSkips,
		DeadStateExits:  d.deadExits,
		Determinized:    d.determinized,
		MemoisedFollows: d.memoisedFollows,
		States:          d.cache.Size(),
		CacheHits:       hits,
		CacheMisses:     misses,
		CacheClears:     d.cache.ClearCount(),
		Rotations:       d.cache.Rotations(),
		TreeDepth:       d.cache.Depth(),
	}
}
