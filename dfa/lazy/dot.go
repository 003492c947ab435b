package lazy

import (
	"bufio"
	"fmt"
	"io"
	"slices"
	"strconv"
)

// WriteDOT writes the part of the DFA determinized so far as a Graphviz
// digraph: every cached state and every memoised transition. The dead state
// is drawn dashed. Nothing is determinized to produce the graph.
func (d *DFA) WriteDOT(w io.Writer) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, "digraph DFA {")
	fmt.Fprintln(bw, "    rankdir=LR;")

	d.cache.Walk(func(s *State) bool {
		shape := "circle"
		if s.isMatch {
			shape = "doublecircle"
		}
		style := ""
		if s.IsDead() {
			style = ", style=dashed"
		}
		fmt.Fprintf(bw, "    q%d [shape=%s%s, tooltip=%q];\n", s.id, shape, style, fmt.Sprint(s.nfaStates))

		runes := make([]rune, 0, len(s.transitions))
		for r := range s.transitions {
			runes = append(runes, r)
		}
		slices.Sort(runes)
		for _, r := range runes {
			fmt.Fprintf(bw, "    q%d -> q%d [label=%s];\n", s.id, s.transitions[r], strconv.Quote(string(r)))
		}
		return true
	})

	if d.start != InvalidState {
		fmt.Fprintf(bw, "    _start [shape=point]; _start -> q%d;\n", d.start)
	}
	fmt.Fprintln(bw, "}")
	return bw.Flush()
}
