package nfa

import (
	"fmt"

	"github.com/coregx/thompson/internal/conv"
)

// Fragment is a partially built automaton with a single entry and a single
// exit node. The exit node is terminal until a combinator consumes the
// fragment. Fragments are transient: node IDs inside a consumed fragment
// must not be retained, because concatenation fusion may recycle them.
type Fragment struct {
	Start NodeID
	End   NodeID
}

// Builder owns the node arena and assembles fragments with Thompson's
// combinators. Slots retired by fused concatenation go to a recycling pool
// and are handed out again by the next allocation.
type Builder struct {
	nodes   []Node
	recycle []NodeID
	fuse    bool
}

// NewBuilder creates a new NFA builder with default capacity
func NewBuilder() *Builder {
	return NewBuilderWithCapacity(16)
}

// NewBuilderWithCapacity creates a new NFA builder with specified initial capacity
func NewBuilderWithCapacity(capacity int) *Builder {
	return &Builder{
		nodes: make([]Node, 0, capacity),
	}
}

// SetFusion selects how Concat joins fragments. With fusion off (the
// default) the left exit gets an epsilon edge to the right entry. With
// fusion on the right entry is spliced into the left exit's slot, saving a
// node and an epsilon hop.
func (b *Builder) SetFusion(fuse bool) {
	b.fuse = fuse
}

// Len returns the current arena size, including recycled slots
func (b *Builder) Len() int {
	return len(b.nodes)
}

// Pooled returns how many retired slots are waiting for reuse
func (b *Builder) Pooled() int {
	return len(b.recycle)
}

// newNode allocates a node, preferring a recycled slot.
func (b *Builder) newNode(terminal bool) NodeID {
	if n := len(b.recycle); n > 0 {
		id := b.recycle[n-1]
		b.recycle = b.recycle[:n-1]
		b.nodes[id] = Node{terminal: terminal}
		return id
	}
	id := NodeID(conv.IntToUint32(len(b.nodes)))
	b.nodes = append(b.nodes, Node{terminal: terminal})
	return id
}

// retire discards a slot's contents and returns it to the pool.
func (b *Builder) retire(id NodeID) {
	b.nodes[id] = Node{retired: true}
	b.recycle = append(b.recycle, id)
}

// addEdge fills the first free edge slot of a node.
func (b *Builder) addEdge(from NodeID, e Edge) {
	n := &b.nodes[from]
	switch {
	case !n.a.IsSet():
		n.a = e
	case !n.b.IsSet():
		n.b = e
	default:
		invariant("addEdge", fmt.Errorf("node %d: %w", from, ErrEdgeOverflow))
	}
}

// demote clears the accepting flag of a consumed fragment's exit.
func (b *Builder) demote(id NodeID) {
	b.nodes[id].terminal = false
}

// Empty returns a fragment matching only the empty string: a single node
// that is both entry and accepting exit.
func (b *Builder) Empty() Fragment {
	id := b.newNode(true)
	return Fragment{Start: id, End: id}
}

// Unit returns the basic fragment start --r--> end.
func (b *Builder) Unit(r rune) Fragment {
	start := b.newNode(false)
	end := b.newNode(true)
	b.addEdge(start, RuneEdge(r, end))
	return Fragment{Start: start, End: end}
}

// Concat returns a fragment matching left followed by right.
func (b *Builder) Concat(left, right Fragment) Fragment {
	// An exit that is also an entry cannot be spliced away.
	if b.fuse && right.Start != right.End && left.Start != left.End {
		b.nodes[left.End] = b.nodes[right.Start]
		b.demote(left.End)
		b.retire(right.Start)
		return Fragment{Start: left.Start, End: right.End}
	}

	b.addEdge(left.End, Epsilon(right.Start))
	b.demote(left.End)
	return Fragment{Start: left.Start, End: right.End}
}

// Union returns a fragment matching either operand (a|b).
func (b *Builder) Union(left, right Fragment) Fragment {
	start := b.newNode(false)
	end := b.newNode(true)

	b.addEdge(start, Epsilon(left.Start))
	b.addEdge(start, Epsilon(right.Start))
	b.addEdge(left.End, Epsilon(end))
	b.addEdge(right.End, Epsilon(end))

	b.demote(left.End)
	b.demote(right.End)
	return Fragment{Start: start, End: end}
}

// Optional returns a fragment matching the operand zero or one time (a?).
// The entry reaches both the operand and the exit.
func (b *Builder) Optional(f Fragment) Fragment {
	start := b.newNode(false)
	end := b.newNode(true)

	b.addEdge(start, Epsilon(f.Start))
	b.addEdge(start, Epsilon(end))
	b.addEdge(f.End, Epsilon(end))

	b.demote(f.End)
	return Fragment{Start: start, End: end}
}

// Positive returns a fragment matching the operand one or more times (a+).
func (b *Builder) Positive(f Fragment) Fragment {
	start := b.newNode(false)
	end := b.newNode(true)

	b.addEdge(start, Epsilon(f.Start))
	b.addEdge(f.End, Epsilon(f.Start))
	b.addEdge(f.End, Epsilon(end))

	b.demote(f.End)
	return Fragment{Start: start, End: end}
}

// Kleene returns a fragment matching the operand zero or more times (a*).
// It is a positive closure plus a skip edge from entry to exit.
func (b *Builder) Kleene(f Fragment) Fragment {
	p := b.Positive(f)
	b.addEdge(p.Start, Epsilon(p.End))
	return p
}

// Validate checks that the arena is well-formed:
// - the fragment endpoints are live nodes
// - every edge targets a live node inside the arena
// - only the fragment exit is accepting
func (b *Builder) Validate(f Fragment) error {
	for _, id := range [2]NodeID{f.Start, f.End} {
		if int(id) >= len(b.nodes) {
			return &BuildError{Message: "fragment endpoint out of bounds", NodeID: id, Err: ErrInvalidNode}
		}
		if b.nodes[id].retired {
			return &BuildError{Message: "fragment endpoint is retired", NodeID: id, Err: ErrRetiredNode}
		}
	}

	for i := range b.nodes {
		n := &b.nodes[i]
		id := NodeID(conv.IntToUint32(i))
		if n.retired {
			continue
		}
		if n.terminal && id != f.End {
			return &BuildError{Message: "unexpected accepting node", NodeID: id}
		}
		for _, e := range [2]Edge{n.a, n.b} {
			if !e.IsSet() {
				continue
			}
			if int(e.To) >= len(b.nodes) {
				return &BuildError{
					Message: fmt.Sprintf("invalid edge target %d", e.To),
					NodeID:  id,
					Err:     ErrInvalidNode,
				}
			}
			if b.nodes[e.To].retired {
				return &BuildError{
					Message: fmt.Sprintf("edge to retired node %d", e.To),
					NodeID:  id,
					Err:     ErrRetiredNode,
				}
			}
		}
	}
	return nil
}

// Build validates the arena and freezes it into an NFA whose entry and
// accepting exit are the given fragment's endpoints. The builder must not
// be used afterwards.
func (b *Builder) Build(f Fragment) (*NFA, error) {
	if err := b.Validate(f); err != nil {
		return nil, err
	}

	nfa := &NFA{
		nodes:    b.nodes,
		start:    f.Start,
		end:      f.End,
		alphabet: collectAlphabet(b.nodes),
		recycled: len(b.recycle),
	}
	b.nodes = nil
	b.recycle = nil
	return nfa, nil
}
