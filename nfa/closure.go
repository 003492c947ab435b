package nfa

import (
	"fmt"
	"slices"
)

// Closure computes epsilon-closures over an NFA.
//
// Visited nodes are tracked with generation stamps: Seed starts a new pass by
// bumping the generation, and a node counts as visited in the current pass
// iff its stamp equals the generation. Starting a pass is O(1), no set has
// to be cleared.
//
// The stamps live here rather than in the NFA so the NFA stays immutable.
// A Closure is not safe for concurrent use; each matcher owns one.
type Closure struct {
	nfa    *NFA
	stamps []uint32
	gen    uint32
	stack  []NodeID
}

// NewClosure creates a closure engine for the given NFA
func NewClosure(n *NFA) *Closure {
	return &Closure{
		nfa:    n,
		stamps: make([]uint32, n.Len()),
		stack:  make([]NodeID, 0, 16),
	}
}

// Seed begins a new closure pass. Nodes added during earlier passes become
// unvisited again.
func (c *Closure) Seed() {
	c.gen++
	if c.gen == 0 {
		// Wrapped around: stale stamps could collide with the new generation.
		clear(c.stamps)
		c.gen = 1
	}
}

// Generation returns the current pass counter
func (c *Closure) Generation() uint32 {
	return c.gen
}

// Visited reports whether id was reached in the current pass
func (c *Closure) Visited(id NodeID) bool {
	c.check(id)
	return c.stamps[id] == c.gen
}

// Add appends to set every node reachable from seed through zero or more
// epsilon edges and not yet visited in the current pass, and returns the
// extended set. Only epsilon edges are followed. The traversal is a
// depth-first walk over an explicit work list.
func (c *Closure) Add(seed NodeID, set []NodeID) []NodeID {
	c.check(seed)
	if c.stamps[seed] == c.gen {
		return set
	}
	c.stamps[seed] = c.gen

	stack := append(c.stack[:0], seed)
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		set = append(set, cur)

		node := &c.nfa.nodes[cur]
		for _, e := range [2]Edge{node.a, node.b} {
			if !e.IsEpsilon() {
				continue
			}
			c.check(e.To)
			if c.stamps[e.To] != c.gen {
				c.stamps[e.To] = c.gen
				stack = append(stack, e.To)
			}
		}
	}
	c.stack = stack
	return set
}

// Of returns the sorted epsilon-closure of a single node.
func (c *Closure) Of(seed NodeID) []NodeID {
	c.Seed()
	set := c.Add(seed, nil)
	slices.Sort(set)
	return set
}

// OfSet returns the sorted epsilon-closure of several seeds, computed in a
// single pass so shared nodes appear once.
func (c *Closure) OfSet(seeds []NodeID) []NodeID {
	c.Seed()
	var set []NodeID
	for _, s := range seeds {
		set = c.Add(s, set)
	}
	slices.Sort(set)
	return set
}

// ContainsTerminal reports whether any node of set is accepting.
func (c *Closure) ContainsTerminal(set []NodeID) bool {
	for _, id := range set {
		if c.nfa.IsTerminal(id) {
			return true
		}
	}
	return false
}

func (c *Closure) check(id NodeID) {
	if int(id) >= len(c.stamps) {
		invariant("closure", fmt.Errorf("node %d of %d: %w", id, len(c.stamps), ErrInvalidNode))
	}
}
