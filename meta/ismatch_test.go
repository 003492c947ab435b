package meta

import (
	"testing"
)

// matchConfigs covers every strategy, with and without prefilter and fusion.
func matchConfigs() map[string]Config {
	thrash := DefaultConfig().WithMaxDFAStates(2)
	thrash.MaxCacheClears = 1
	return map[string]Config{
		"dfa":          DefaultConfig(),
		"dfa-fused":    DefaultConfig().WithFuseConcat(true),
		"dfa-no-pf":    DefaultConfig().WithPrefilter(false),
		"dfa-tiny":     DefaultConfig().WithMaxDFAStates(1),
		"nfa":          DefaultConfig().WithDFA(false),
		"nfa-no-pf":    DefaultConfig().WithDFA(false).WithPrefilter(false),
		"both-thrash":  thrash,
		"both-default": func() Config { c := DefaultConfig(); c.MaxCacheClears = 100; return c }(),
	}
}

func TestIsMatchAllStrategies(t *testing.T) {
	tests := []struct {
		pattern string
		input   string
		want    bool
	}{
		{"a|b", "a", true},
		{"a|b", "b", true},
		{"a|b", "c", false},
		{"a*", "", true},
		{"a*", "aaaa", true},
		{"a+", "", false},
		{"a+", "a", true},
		{"ab?c", "ac", true},
		{"ab?c", "abc", true},
		{"ab?c", "abbc", false},
		{"a", "ab", false},
		{"", "", true},
		{"", "x", false},
		{"x*(foo|bar)y*", "xxbary", true},
		{"x*(foo|bar)y*", "xxbazy", false},
		{"(a|b)*a(a|b)(a|b)", "bbbabb", true},
		{"(a|b)*a(a|b)(a|b)", "bbbbab", false},
		{"hello", "hello", true},
		{"hello", "hell", false},
		{`a\*b`, "a*b", true},
		{`a\*b`, "aab", false},
		{"(ab)+", "ababab", true},
		{"(ab)+", "ababa", false},
		{"ж+", "жжж", true},
	}

	for name, config := range matchConfigs() {
		t.Run(name, func(t *testing.T) {
			for _, tt := range tests {
				e, err := CompileWithConfig(tt.pattern, config)
				if err != nil {
					t.Fatalf("CompileWithConfig(%q): %v", tt.pattern, err)
				}
				if got := e.IsMatchString(tt.input); got != tt.want {
					t.Errorf("IsMatchString(%q, %q) = %v, want %v", tt.pattern, tt.input, got, tt.want)
				}
				if got := e.IsMatch([]byte(tt.input)); got != tt.want {
					t.Errorf("IsMatch(%q, %q) = %v, want %v", tt.pattern, tt.input, got, tt.want)
				}
			}
		})
	}
}

func TestIsMatchFallback(t *testing.T) {
	config := DefaultConfig().WithMaxDFAStates(2)
	config.MaxCacheClears = 1

	e, err := CompileWithConfig("(a|b)*a(a|b)(a|b)", config)
	if err != nil {
		t.Fatal(err)
	}
	if e.FellBack() {
		t.Fatal("engine fell back before any search")
	}

	if !e.IsMatchString("abababaab") {
		t.Error("first search should match")
	}
	if !e.FellBack() {
		t.Fatalf("engine should fall back after %d clears", e.Stats().DFA.CacheClears)
	}

	// Later searches run on the PikeVM and stay correct.
	if e.IsMatchString("abababbbb") {
		t.Error("abababbbb should not match")
	}
	if !e.IsMatchString("aaa") {
		t.Error("aaa should match")
	}

	s := e.Stats()
	if s.DFAFallbacks != 1 {
		t.Errorf("DFAFallbacks = %d, want 1", s.DFAFallbacks)
	}
	if s.DFASearches != 1 || s.NFASearches != 2 {
		t.Errorf("searches = dfa %d nfa %d, want 1 2", s.DFASearches, s.NFASearches)
	}
}

func TestIsMatchNoFallbackForUseDFA(t *testing.T) {
	e, err := CompileWithConfig("(a|b)*a(a|b)(a|b)", DefaultConfig().WithMaxDFAStates(2))
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 5; i++ {
		e.IsMatchString("abababaab")
	}
	if e.FellBack() {
		t.Error("UseDFA must never fall back")
	}
	if e.Stats().DFA.CacheClears == 0 {
		t.Error("expected cache clears with MaxDFAStates = 2")
	}
}

func TestIsMatchNFAPrefilterRejects(t *testing.T) {
	e, err := CompileWithConfig("x*(foo|bar)y*", DefaultConfig().WithDFA(false))
	if err != nil {
		t.Fatal(err)
	}
	if e.IsMatchString("xxbazyy") {
		t.Error("xxbazyy should not match")
	}
	if e.IsMatch([]byte("xxbaz")) {
		t.Error("xxbaz should not match")
	}
	if got := e.Stats().PrefilterRejects; got != 2 {
		t.Errorf("PrefilterRejects = %d, want 2", got)
	}
}
