package nfa

import (
	"fmt"
	"sort"
	"strings"
)

// NodeID is the arena index of an NFA node.
type NodeID uint32

// InvalidNode represents an invalid/uninitialized node ID
const InvalidNode NodeID = 0xFFFFFFFF

// EdgeKind identifies the type of an outgoing edge.
type EdgeKind uint8

const (
	// EdgeNone marks an unused edge slot
	EdgeNone EdgeKind = iota

	// EdgeEpsilon is traversed without consuming input
	EdgeEpsilon

	// EdgeRune consumes exactly one rune equal to Label
	EdgeRune
)

// String returns a human-readable representation of the EdgeKind
func (k EdgeKind) String() string {
	switch k {
	case EdgeNone:
		return "None"
	case EdgeEpsilon:
		return "Epsilon"
	case EdgeRune:
		return "Rune"
	default:
		return fmt.Sprintf("Unknown(%d)", k)
	}
}

// Edge is one outgoing transition of a node.
type Edge struct {
	Kind  EdgeKind
	Label rune
	To    NodeID
}

// Epsilon returns an epsilon edge to the given node.
func Epsilon(to NodeID) Edge {
	return Edge{Kind: EdgeEpsilon, To: to}
}

// RuneEdge returns an edge consuming r.
func RuneEdge(r rune, to NodeID) Edge {
	return Edge{Kind: EdgeRune, Label: r, To: to}
}

// IsSet reports whether the slot holds an edge.
func (e Edge) IsSet() bool {
	return e.Kind != EdgeNone
}

// IsEpsilon reports whether the edge is an epsilon transition.
func (e Edge) IsEpsilon() bool {
	return e.Kind == EdgeEpsilon
}

// Accepts reports whether the edge consumes r.
func (e Edge) Accepts(r rune) bool {
	return e.Kind == EdgeRune && e.Label == r
}

func (e Edge) String() string {
	switch e.Kind {
	case EdgeEpsilon:
		return fmt.Sprintf("ε->%d", e.To)
	case EdgeRune:
		return fmt.Sprintf("%q->%d", e.Label, e.To)
	default:
		return "-"
	}
}

// Node is a single NFA node. Thompson construction guarantees an
// out-degree of at most two, so edges live inline.
type Node struct {
	terminal bool

	// a and b are the two optional outgoing edges; a is always filled first
	a, b Edge

	// retired is set while the slot sits in the builder's recycling pool
	retired bool
}

// IsTerminal returns true if the node is accepting
func (n *Node) IsTerminal() bool {
	return n.terminal
}

// Edges returns both edge slots. Unused slots have Kind EdgeNone.
func (n *Node) Edges() (a, b Edge) {
	return n.a, n.b
}

// OutDegree returns the number of edges in use.
func (n *Node) OutDegree() int {
	switch {
	case n.b.IsSet():
		return 2
	case n.a.IsSet():
		return 1
	default:
		return 0
	}
}

// NFA is a compiled Thompson NFA. It is immutable after construction and
// safe to share between goroutines.
type NFA struct {
	nodes []Node
	start NodeID
	end   NodeID

	// alphabet is the sorted set of rune labels used by any edge
	alphabet []rune

	// recycled counts slots that were retired and not reused
	recycled int
}

// Start returns the start node
func (n *NFA) Start() NodeID {
	return n.start
}

// End returns the accepting node of the outermost fragment
func (n *NFA) End() NodeID {
	return n.end
}

// Node returns the node with the given ID.
// Returns nil if the ID is out of range.
func (n *NFA) Node(id NodeID) *Node {
	if int(id) >= len(n.nodes) {
		return nil
	}
	return &n.nodes[id]
}

// Len returns the size of the arena, including retired slots
func (n *NFA) Len() int {
	return len(n.nodes)
}

// Recycled returns the number of arena slots left unused by concatenation fusion
func (n *NFA) Recycled() int {
	return n.recycled
}

// IsTerminal returns true if the given node is accepting
func (n *NFA) IsTerminal(id NodeID) bool {
	if node := n.Node(id); node != nil {
		return node.terminal
	}
	return false
}

// Alphabet returns the sorted distinct runes labelling any edge.
// The returned slice must not be modified.
func (n *NFA) Alphabet() []rune {
	return n.alphabet
}

// String returns a human-readable representation of the NFA
func (n *NFA) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "NFA{nodes: %d, start: %d, end: %d}\n", len(n.nodes), n.start, n.end)
	for i := range n.nodes {
		node := &n.nodes[i]
		if node.retired {
			continue
		}
		mark := " "
		if node.terminal {
			mark = "*"
		}
		fmt.Fprintf(&sb, "%s%4d: %s %s\n", mark, i, node.a, node.b)
	}
	return sb.String()
}

func collectAlphabet(nodes []Node) []rune {
	seen := make(map[rune]struct{})
	for i := range nodes {
		for _, e := range [2]Edge{nodes[i].a, nodes[i].b} {
			if e.Kind == EdgeRune {
				seen[e.Label] = struct{}{}
			}
		}
	}
	alphabet := make([]rune, 0, len(seen))
	for r := range seen {
		alphabet = append(alphabet, r)
	}
	sort.Slice(alphabet, func(i, j int) bool { return alphabet[i] < alphabet[j] })
	return alphabet
}
