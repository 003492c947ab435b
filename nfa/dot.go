package nfa

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
)

// WriteDOT writes the NFA as a Graphviz digraph. Accepting nodes are double
// circles, epsilon edges are labelled ε and retired slots are left out.
//
// Example:
//
//	n, _ := nfa.Compile("ab*")
//	n.WriteDOT(os.Stdout) // pipe into: dot -Tpng -o nfa.png
func (n *NFA) WriteDOT(w io.Writer) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, "digraph NFA {")
	fmt.Fprintln(bw, "    rankdir=LR;")

	for i := range n.nodes {
		node := &n.nodes[i]
		if node.retired {
			continue
		}
		shape := "circle"
		if node.terminal {
			shape = "doublecircle"
		}
		fmt.Fprintf(bw, "    n%d [shape=%s];\n", i, shape)
		for _, e := range [2]Edge{node.a, node.b} {
			if !e.IsSet() {
				continue
			}
			fmt.Fprintf(bw, "    n%d -> n%d [label=%s];\n", i, e.To, dotLabel(e))
		}
	}
	fmt.Fprintf(bw, "    _start [shape=point]; _start -> n%d;\n", n.start)
	fmt.Fprintln(bw, "}")
	return bw.Flush()
}

func dotLabel(e Edge) string {
	if e.IsEpsilon() {
		return `"ε"`
	}
	return strconv.Quote(string(e.Label))
}
