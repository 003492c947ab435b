package nfa

import (
	"unicode/utf8"
)

// PikeVM simulates the NFA directly by stepping the whole set of active
// nodes over the input in lockstep.
//
// It needs no state cache: memory is bounded by the NFA size and time is
// O(len(text) * nfa.Len()). The lazy DFA memoises exactly these steps, so
// the PikeVM serves as the engine of last resort and as a reference for it.
//
// Thread safety: a PikeVM owns its scratch sets and closure stamps and is
// NOT safe for concurrent use. The NFA may be shared between PikeVMs.
type PikeVM struct {
	nfa     *NFA
	closure *Closure

	// cur and next are swapped after every step
	cur  []NodeID
	next []NodeID
}

// NewPikeVM creates a new PikeVM for the given NFA
func NewPikeVM(n *NFA) *PikeVM {
	return &PikeVM{
		nfa:     n,
		closure: NewClosure(n),
		cur:     make([]NodeID, 0, n.Len()),
		next:    make([]NodeID, 0, n.Len()),
	}
}

// NFA returns the automaton being simulated
func (p *PikeVM) NFA() *NFA {
	return p.nfa
}

// IsMatch reports whether the whole of haystack is accepted.
// Invalid UTF-8 decodes to utf8.RuneError one byte at a time.
func (p *PikeVM) IsMatch(haystack []byte) bool {
	p.reset()
	for len(haystack) > 0 {
		r, size := utf8.DecodeRune(haystack)
		if !p.step(r) {
			return false
		}
		haystack = haystack[size:]
	}
	return p.closure.ContainsTerminal(p.cur)
}

// IsMatchString is IsMatch for strings.
func (p *PikeVM) IsMatchString(haystack string) bool {
	p.reset()
	for _, r := range haystack {
		if !p.step(r) {
			return false
		}
	}
	return p.closure.ContainsTerminal(p.cur)
}

// reset loads the closure of the start node into cur.
func (p *PikeVM) reset() {
	p.closure.Seed()
	p.cur = p.closure.Add(p.nfa.start, p.cur[:0])
}

// step advances every active node over r. Returns false once no node is
// active, after which no input can lead to acceptance.
func (p *PikeVM) step(r rune) bool {
	p.closure.Seed()
	next := p.next[:0]
	for _, id := range p.cur {
		a, b := p.nfa.nodes[id].Edges()
		if a.Accepts(r) {
			next = p.closure.Add(a.To, next)
		}
		if b.Accepts(r) {
			next = p.closure.Add(b.To, next)
		}
	}
	p.cur, p.next = next, p.cur
	return len(p.cur) > 0
}
