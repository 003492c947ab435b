package lazy

import (
	"bytes"
	"strings"
	"testing"
)

func TestWriteDOT(t *testing.T) {
	d, err := CompilePatternWithConfig("ab", DefaultConfig().WithPrefilter(false))
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := d.WriteDOT(&buf); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(buf.String(), "_start") {
		t.Errorf("empty DFA should have no start arrow:\n%s", buf.String())
	}

	d.IsMatchString("ab")
	d.IsMatchString("ax")

	buf.Reset()
	if err := d.WriteDOT(&buf); err != nil {
		t.Fatal(err)
	}
	out := buf.String()

	checks := []struct {
		substr string
		count  int
	}{
		{"digraph DFA {", 1},
		{"[shape=circle", 3},
		{"[shape=doublecircle", 1},
		{"style=dashed", 1},
		{`[label="a"]`, 1},
		{`[label="b"]`, 1},
		{`[label="x"]`, 1},
		{"_start -> q", 1},
	}
	for _, c := range checks {
		if got := strings.Count(out, c.substr); got != c.count {
			t.Errorf("count(%q) = %d, want %d\n%s", c.substr, got, c.count, out)
		}
	}
}
