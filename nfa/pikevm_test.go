package nfa

import (
	"testing"
)

func TestPikeVMIsMatch(t *testing.T) {
	tests := []struct {
		pattern string
		input   string
		want    bool
	}{
		{"", "", true},
		{"", "a", false},
		{"a", "a", true},
		{"a", "ab", false},
		{"a|b", "b", true},
		{"a|b", "c", false},
		{"a*", "", true},
		{"a*", "aaaa", true},
		{"a+", "", false},
		{"a+", "a", true},
		{"ab?c", "ac", true},
		{"ab?c", "abc", true},
		{"ab?c", "abbc", false},
		{"(ab)*", "abab", true},
		{"(ab)*", "aba", false},
		{"(a|b)*abb", "babaabb", true},
		{"(a|b)*abb", "babaab", false},
		{"héllo", "héllo", true},
		{"é+", "ééé", true},
	}

	for _, fuse := range []bool{false, true} {
		compiler := NewCompiler(CompilerConfig{FuseConcat: fuse})
		for _, tt := range tests {
			n, err := compiler.Compile(tt.pattern)
			if err != nil {
				t.Fatalf("Compile(%q): %v", tt.pattern, err)
			}
			vm := NewPikeVM(n)
			if got := vm.IsMatchString(tt.input); got != tt.want {
				t.Errorf("fuse=%v IsMatchString(%q, %q) = %v, want %v", fuse, tt.pattern, tt.input, got, tt.want)
			}
			if got := vm.IsMatch([]byte(tt.input)); got != tt.want {
				t.Errorf("fuse=%v IsMatch(%q, %q) = %v, want %v", fuse, tt.pattern, tt.input, got, tt.want)
			}
		}
	}
}

func TestPikeVMInvalidUTF8(t *testing.T) {
	n, err := Compile("a\uFFFDb")
	if err != nil {
		t.Fatal(err)
	}
	vm := NewPikeVM(n)
	if !vm.IsMatch([]byte{'a', 0xff, 'b'}) {
		t.Error("invalid byte should read as U+FFFD")
	}
	if !vm.IsMatchString("a\xffb") {
		t.Error("invalid byte in string should read as U+FFFD")
	}
}

func TestPikeVMReuse(t *testing.T) {
	n, err := Compile("(a|b)*c")
	if err != nil {
		t.Fatal(err)
	}
	vm := NewPikeVM(n)
	if vm.NFA() != n {
		t.Error("NFA() should return the simulated automaton")
	}
	inputs := []string{"abc", "x", "ababc", "", "c", "abca"}
	want := []bool{true, false, true, false, true, false}
	for round := 0; round < 3; round++ {
		for i, in := range inputs {
			if got := vm.IsMatchString(in); got != want[i] {
				t.Errorf("round %d: IsMatchString(%q) = %v, want %v", round, in, got, want[i])
			}
		}
	}
}

func BenchmarkPikeVM(b *testing.B) {
	n, err := Compile("(a|b)*abb")
	if err != nil {
		b.Fatal(err)
	}
	vm := NewPikeVM(n)
	input := "abababababababababababababababababb"
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		vm.IsMatchString(input)
	}
}
