package lazy

import (
	"fmt"

	"github.com/coregx/thompson/internal/conv"
	"github.com/coregx/thompson/internal/sparse"
	"github.com/coregx/thompson/nfa"
)

// Cache interns NFA node sets into DFA states.
//
// States live in an arena and are indexed by StateID. The arena doubles as a
// splay tree ordered by CompareNodeSets: every successful lookup or insert
// rotates the touched state to the root, so the states a match keeps
// revisiting (loop states of '*' and '+') stay near the top.
//
// Memory management:
//   - States are never evicted individually
//   - When the cache is full it is cleared entirely and rebuilt on demand
//   - Clearing keeps the arena's allocated memory
//
// A Cache is not safe for concurrent use.
type Cache struct {
	// states is the arena; a StateID is an index into it
	states []State

	// root of the splay tree, InvalidState when empty
	root StateID

	// maxStates is the capacity limit
	maxStates uint32

	// clearCount tracks how many times the cache has been cleared
	clearCount int

	// Statistics for cache performance tuning
	hits      uint64 // lookups that found an existing state
	misses    uint64 // lookups that allocated a new state
	rotations uint64
}

// NewCache creates a new state cache with the given maximum capacity
func NewCache(maxStates uint32) *Cache {
	return &Cache{
		states:    make([]State, 0, min(maxStates, 64)),
		root:      InvalidState,
		maxStates: maxStates,
	}
}

// Intern returns the state for the given sorted node set, allocating it if
// the set has not been seen before. Interning equal sets returns the same
// ID. isMatch is only used when a new state is allocated.
//
// Returns (InvalidState, ErrCacheFull) if a new state is needed and the
// cache is at capacity.
func (c *Cache) Intern(set []nfa.NodeID, isMatch bool) (StateID, error) {
	last, cmp := c.search(set)
	if cmp == 0 && last != InvalidState {
		c.hits++
		c.splay(last)
		return last, nil
	}

	if conv.IntToUint32(len(c.states)) >= c.maxStates {
		return InvalidState, ErrCacheFull
	}

	id := StateID(conv.IntToUint32(len(c.states)))
	c.states = append(c.states, newState(id, set, isMatch))
	c.misses++

	switch {
	case last == InvalidState:
		if c.root != InvalidState {
			invariant("search ended without a parent in a non-empty tree")
		}
		c.root = id
	case cmp < 0:
		if c.states[last].left != InvalidState {
			invariant("state %d already has a left child", last)
		}
		c.states[last].left = id
		c.states[id].parent = last
	default:
		if c.states[last].right != InvalidState {
			invariant("state %d already has a right child", last)
		}
		c.states[last].right = id
		c.states[id].parent = last
	}

	c.splay(id)
	return id, nil
}

// Get looks up the state for a sorted node set without inserting.
// A hit is splayed to the root like any other access.
func (c *Cache) Get(set []nfa.NodeID) (StateID, bool) {
	last, cmp := c.search(set)
	if cmp != 0 || last == InvalidState {
		return InvalidState, false
	}
	c.hits++
	c.splay(last)
	return last, true
}

// search walks from the root. It returns the matching state with cmp == 0,
// or the last state visited and the side (cmp < 0: left, cmp > 0: right)
// where set would be attached. On an empty tree it returns InvalidState.
func (c *Cache) search(set []nfa.NodeID) (last StateID, cmp int) {
	last = InvalidState
	cur := c.root
	for cur != InvalidState {
		last = cur
		cmp = CompareNodeSets(set, c.states[cur].nfaStates)
		switch {
		case cmp < 0:
			cur = c.states[cur].left
		case cmp > 0:
			cur = c.states[cur].right
		default:
			return cur, 0
		}
	}
	return last, cmp
}

// rotate lifts x above its parent, preserving the in-order sequence.
func (c *Cache) rotate(x StateID) {
	p := c.states[x].parent
	if p == InvalidState {
		return
	}
	g := c.states[p].parent
	c.rotations++

	// Reattach x where p hung from g.
	if g != InvalidState {
		switch p {
		case c.states[g].left:
			c.states[g].left = x
		case c.states[g].right:
			c.states[g].right = x
		default:
			invariant("state %d is not a child of its parent %d", p, g)
		}
	} else {
		c.root = x
	}
	c.states[x].parent = g

	switch x {
	case c.states[p].left:
		// zig: x's right subtree moves under p
		inner := c.states[x].right
		c.states[p].left = inner
		if inner != InvalidState {
			c.states[inner].parent = p
		}
		c.states[x].right = p
	case c.states[p].right:
		// zag: x's left subtree moves under p
		inner := c.states[x].left
		c.states[p].right = inner
		if inner != InvalidState {
			c.states[inner].parent = p
		}
		c.states[x].left = p
	default:
		invariant("state %d is not a child of its parent %d", x, p)
	}
	c.states[p].parent = x
}

// splay moves x to the root with zig, zig-zig and zig-zag steps.
func (c *Cache) splay(x StateID) {
	for {
		p := c.states[x].parent
		if p == InvalidState {
			break
		}
		g := c.states[p].parent
		if g != InvalidState {
			sameSide := (c.states[g].left == p) == (c.states[p].left == x)
			if sameSide {
				c.rotate(p) // zig-zig
			} else {
				c.rotate(x) // zig-zag
			}
		}
		c.rotate(x)
	}
	c.root = x
}

// State returns the state with the given ID.
// Returns nil if the ID is invalid. The pointer is only valid until the
// next Intern, which may grow the arena.
func (c *Cache) State(id StateID) *State {
	if id == InvalidState || int(id) >= len(c.states) {
		return nil
	}
	return &c.states[id]
}

// Root returns the current root of the splay tree
func (c *Cache) Root() StateID {
	return c.root
}

// Size returns the current number of states in the cache
func (c *Cache) Size() int {
	return len(c.states)
}

// IsFull returns true if the cache has reached its maximum capacity
func (c *Cache) IsFull() bool {
	return conv.IntToUint32(len(c.states)) >= c.maxStates
}

// Walk calls fn for every state in ascending node-set order until fn
// returns false.
func (c *Cache) Walk(fn func(*State) bool) {
	stack := make([]StateID, 0, 32)
	cur := c.root
	for cur != InvalidState || len(stack) > 0 {
		for cur != InvalidState {
			stack = append(stack, cur)
			cur = c.states[cur].left
		}
		cur = stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !fn(&c.states[cur]) {
			return
		}
		cur = c.states[cur].right
	}
}

// Depth returns the height of the splay tree (0 when empty).
func (c *Cache) Depth() int {
	if c.root == InvalidState {
		return 0
	}
	type frame struct {
		id    StateID
		depth int
	}
	maxDepth := 0
	stack := []frame{{c.root, 1}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		maxDepth = max(maxDepth, f.depth)
		s := &c.states[f.id]
		if s.left != InvalidState {
			stack = append(stack, frame{s.left, f.depth + 1})
		}
		if s.right != InvalidState {
			stack = append(stack, frame{s.right, f.depth + 1})
		}
	}
	return maxDepth
}

// Validate checks the tree structure:
//   - the root has no parent
//   - every child points back to its parent
//   - every state is reachable exactly once from the root
//   - an in-order walk yields strictly increasing node sets
func (c *Cache) Validate() error {
	if c.root == InvalidState {
		if len(c.states) != 0 {
			return fmt.Errorf("empty tree holds %d states", len(c.states))
		}
		return nil
	}
	if c.states[c.root].parent != InvalidState {
		return fmt.Errorf("root %d has parent %d", c.root, c.states[c.root].parent)
	}

	seen := sparse.NewSparseSet(conv.IntToUint32(len(c.states)))
	stack := []StateID{c.root}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if int(id) >= len(c.states) {
			return fmt.Errorf("link to state %d outside arena of %d", id, len(c.states))
		}
		if !seen.Insert(uint32(id)) {
			return fmt.Errorf("state %d reachable twice", id)
		}
		s := &c.states[id]
		for _, child := range [2]StateID{s.left, s.right} {
			if child == InvalidState {
				continue
			}
			if int(child) < len(c.states) && c.states[child].parent != id {
				return fmt.Errorf("state %d has parent %d, want %d", child, c.states[child].parent, id)
			}
			stack = append(stack, child)
		}
	}
	if seen.Len() != len(c.states) {
		return fmt.Errorf("%d of %d states reachable from root", seen.Len(), len(c.states))
	}

	var prev *State
	var err error
	c.Walk(func(s *State) bool {
		if prev != nil && CompareNodeSets(prev.nfaStates, s.nfaStates) >= 0 {
			err = fmt.Errorf("in-order violation: state %d %v before state %d %v",
				prev.id, prev.nfaStates, s.id, s.nfaStates)
			return false
		}
		prev = s
		return true
	})
	return err
}

// Stats returns cache hit/miss statistics.
// Returns (hits, misses, hitRate).
//
// Hit rate = hits / (hits + misses)
func (c *Cache) Stats() (hits, misses uint64, hitRate float64) {
	hits = c.hits
	misses = c.misses
	total := hits + misses
	if total > 0 {
		hitRate = float64(hits) / float64(total)
	}
	return hits, misses, hitRate
}

// Rotations returns the number of tree rotations performed
func (c *Cache) Rotations() uint64 {
	return c.rotations
}

// ResetStats resets hit/miss counters (useful for benchmarking)
func (c *Cache) ResetStats() {
	c.hits = 0
	c.misses = 0
	c.rotations = 0
}

// Clear removes all states but keeps the arena's memory and increments the
// clear counter. Statistics accumulate across clears.
//
// After calling this, all previously returned StateIDs are stale.
func (c *Cache) Clear() {
	clear(c.states)
	c.states = c.states[:0]
	c.root = InvalidState
	c.clearCount++
}

// ClearCount returns how many times the cache has been cleared.
func (c *Cache) ClearCount() int {
	return c.clearCount
}

// Clone returns a deep copy of the cache. Node sets are shared, since
// they are never modified; transition tables are copied.
func (c *Cache) Clone() *Cache {
	states := make([]State, len(c.states), cap(c.states))
	copy(states, c.states)
	for i := range states {
		tr := make(map[rune]StateID, len(states[i].transitions))
		for r, next := range states[i].transitions {
			tr[r] = next
		}
		states[i].transitions = tr
	}
	return &Cache{
		states:     states,
		root:       c.root,
		maxStates:  c.maxStates,
		clearCount: c.clearCount,
		hits:       c.hits,
		misses:     c.misses,
		rotations:  c.rotations,
	}
}
