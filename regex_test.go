package thompson

import (
	"errors"
	"strings"
	"testing"

	"github.com/coregx/thompson/meta"
	"github.com/coregx/thompson/syntax"
)

func TestMatchString(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		input   string
		want    bool
	}{
		// union
		{"union left", "a|b", "a", true},
		{"union right", "a|b", "b", true},
		{"union neither", "a|b", "c", false},

		// closure
		{"star empty", "a*", "", true},
		{"star many", "a*", "aaaa", true},
		{"plus empty", "a+", "", false},
		{"plus one", "a+", "a", true},

		// concatenation and optional
		{"optional absent", "ab?c", "ac", true},
		{"optional present", "ab?c", "abc", true},
		{"optional twice", "ab?c", "abbc", false},

		// full-string semantics
		{"no substring", "a", "ab", false},
		{"no prefix", "b", "ab", false},
		{"empty pattern", "", "", true},
		{"empty pattern text", "", "a", false},

		{"group star", "(ab)*", "ababab", true},
		{"group star partial", "(ab)*", "aba", false},
		{"nested", "((a|b)c)+", "acbc", true},
		{"nested wrong", "((a|b)c)+", "acb", false},
		{"classic", "(a|b)*abb", "aababb", true},
		{"classic miss", "(a|b)*abb", "aababa", false},
		{"escaped star", `a\*`, "a*", true},
		{"escaped star as text", `a\*`, "aa", false},
		{"escaped backslash", `\\+`, `\\\`, true},
		{"dot is literal", "a.b", "a.b", true},
		{"dot is not wildcard", "a.b", "axb", false},
		{"unicode", "(ü|ö)+ber", "üöber", true},
		{"out of alphabet", "(a|b)*", "abz", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			re := MustCompile(tt.pattern)
			if got := re.MatchString(tt.input); got != tt.want {
				t.Errorf("MatchString(%q, %q) = %v, want %v", tt.pattern, tt.input, got, tt.want)
			}
			if got := re.Match([]byte(tt.input)); got != tt.want {
				t.Errorf("Match(%q, %q) = %v, want %v", tt.pattern, tt.input, got, tt.want)
			}
		})
	}
}

func TestCompileSyntaxError(t *testing.T) {
	tests := []struct {
		pattern string
		code    syntax.ErrorCode
	}{
		{"(a", syntax.ErrMissingParen},
		{"a)", syntax.ErrUnexpectedParen},
		{"*a", syntax.ErrMissingOperand},
		{"a|", syntax.ErrMissingOperand},
		{"()", syntax.ErrEmptyGroup},
		{`a\`, syntax.ErrTrailingBackslash},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			re, err := Compile(tt.pattern)
			if re != nil {
				t.Errorf("Compile(%q) returned a Regex alongside an error", tt.pattern)
			}
			se, ok := err.(*SyntaxError)
			if !ok {
				t.Fatalf("Compile(%q) error = %T %v, want *SyntaxError", tt.pattern, err, err)
			}
			if se.Code != tt.code {
				t.Errorf("Code = %q, want %q", se.Code, tt.code)
			}
			if !errors.Is(err, tt.code) {
				t.Errorf("errors.Is(err, %q) = false", tt.code)
			}
		})
	}
}

func TestMustCompilePanics(t *testing.T) {
	defer func() {
		r := recover()
		msg, ok := r.(string)
		if !ok {
			t.Fatalf("recovered %T, want string", r)
		}
		if !strings.HasPrefix(msg, "thompson: Compile(`(a`): ") {
			t.Errorf("panic message = %q", msg)
		}
	}()
	MustCompile("(a")
}

func TestCompileWithConfig(t *testing.T) {
	config := DefaultConfig()
	config.EnableDFA = false
	re, err := CompileWithConfig("(a|b)*c", config)
	if err != nil {
		t.Fatal(err)
	}
	if re.Strategy() != meta.UseNFA {
		t.Errorf("Strategy() = %v, want UseNFA", re.Strategy())
	}
	if !re.MatchString("abac") {
		t.Error("abac should match")
	}

	config = DefaultConfig()
	config.MaxDFAStates = 0
	if _, err := CompileWithConfig("a", config); err == nil {
		t.Error("invalid config should fail")
	}
}

// TestDeterminism checks that results do not depend on what the cache holds.
func TestDeterminism(t *testing.T) {
	inputs := []string{"", "a", "ab", "abb", "aabb", "babb", "abab", "bbbabb", "c", "abbc"}

	for _, states := range []uint32{1, 2, 3, 10000} {
		config := DefaultConfig()
		config.MaxDFAStates = states
		re, err := CompileWithConfig("(a|b)*abb", config)
		if err != nil {
			t.Fatal(err)
		}
		first := make([]bool, len(inputs))
		for i, in := range inputs {
			first[i] = re.MatchString(in)
		}
		// Replay in reverse and interleaved order.
		for round := 0; round < 3; round++ {
			for i := len(inputs) - 1; i >= 0; i-- {
				if got := re.MatchString(inputs[i]); got != first[i] {
					t.Errorf("MaxDFAStates=%d round %d: MatchString(%q) = %v, first %v", states, round, inputs[i], got, first[i])
				}
			}
		}
	}
}

// TestPrefilterKeepsResults compares every configuration against the
// prefilter-free DFA, including texts with invalid UTF-8.
func TestPrefilterKeepsResults(t *testing.T) {
	tests := []struct {
		pattern string
		input   string
		want    bool
	}{
		{"a\uFFFDb", "a\xffb", true},
		{"a\uFFFDb", "a\uFFFDb", true},
		{"a\uFFFDb", "axb", false},
		{"\uFFFD", "\xff", true},
		{"\uFFFD", "\xff\xff", false},
		{"(\uFFFD|x)+", "\xff\xff", true},
		{"(\uFFFD|x)+", "\xffyx", false},
		{"x*\uFFFDfoo", "xx\x80foo", true},
		{"(foo|bar)\uFFFD", "bar\xc3", true},
	}

	configs := map[string]Config{
		"default":          DefaultConfig(),
		"no prefilter":     DefaultConfig().WithPrefilter(false),
		"nfa":              DefaultConfig().WithDFA(false),
		"nfa no prefilter": DefaultConfig().WithDFA(false).WithPrefilter(false),
	}

	for _, tt := range tests {
		for name, config := range configs {
			re, err := CompileWithConfig(tt.pattern, config)
			if err != nil {
				t.Fatalf("%s: Compile(%q): %v", name, tt.pattern, err)
			}
			if got := re.MatchString(tt.input); got != tt.want {
				t.Errorf("%s: MatchString(%q, %q) = %v, want %v", name, tt.pattern, tt.input, got, tt.want)
			}
			if got := re.Match([]byte(tt.input)); got != tt.want {
				t.Errorf("%s: Match(%q, %q) = %v, want %v", name, tt.pattern, tt.input, got, tt.want)
			}
		}
	}
}

func TestRegexAccessors(t *testing.T) {
	re := MustCompile("x*(foo|bar)y*")
	if re.String() != "x*(foo|bar)y*" {
		t.Errorf("String() = %q", re.String())
	}
	if re.NumStates() != 0 {
		t.Errorf("NumStates() = %d before matching, want 0", re.NumStates())
	}
	if !strings.Contains(re.NFA(), "->") {
		t.Errorf("NFA() = %q, want an edge dump", re.NFA())
	}

	re.MatchString("xfoo")
	re.MatchString("xbaz")
	re.Match([]byte("bary"))

	s := re.Stats()
	if s.DFASearches != 3 {
		t.Errorf("DFASearches = %d, want 3", s.DFASearches)
	}
	if s.DFA.PrefilterSkips != 1 {
		t.Errorf("PrefilterSkips = %d, want 1", s.DFA.PrefilterSkips)
	}
	if re.NumStates() == 0 {
		t.Error("NumStates() should be positive after matching")
	}

	re.ResetStats()
	if s := re.Stats(); s.DFASearches != 0 {
		t.Errorf("DFASearches after ResetStats = %d, want 0", s.DFASearches)
	}
}

func TestClone(t *testing.T) {
	re := MustCompile("(a|b)*c")
	re.MatchString("abc")
	before := re.NumStates()

	c := re.Clone()
	if c.String() != re.String() {
		t.Errorf("clone String() = %q", c.String())
	}
	if c.NumStates() != before {
		t.Errorf("clone NumStates() = %d, want %d", c.NumStates(), before)
	}
	c.MatchString("bbbbbbbbx")
	c.MatchString("ababababc")
	if re.NumStates() != before {
		t.Errorf("source NumStates() = %d after matching on clone, want %d", re.NumStates(), before)
	}
}

func TestQuoteMeta(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"abc", "abc"},
		{"a+b", `a\+b`},
		{"(a|b)*?", `\(a\|b\)\*\?`},
		{`\`, `\\`},
		{"a.b", "a.b"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := QuoteMeta(tt.in)
			if got != tt.want {
				t.Fatalf("QuoteMeta(%q) = %q, want %q", tt.in, got, tt.want)
			}
			re := MustCompile(got)
			if !re.MatchString(tt.in) {
				t.Errorf("MustCompile(%q).MatchString(%q) = false", got, tt.in)
			}
		})
	}
}

func BenchmarkMatchString(b *testing.B) {
	re := MustCompile("(a|b)*abb")
	input := strings.Repeat("ab", 64) + "abb"
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		re.MatchString(input)
	}
}

func BenchmarkMatchStringPrefilterReject(b *testing.B) {
	re := MustCompile("x*(foo|bar)y*")
	input := strings.Repeat("x", 256)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		re.MatchString(input)
	}
}
