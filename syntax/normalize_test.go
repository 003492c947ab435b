package syntax

import (
	"errors"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		pattern string
		want    string
	}{
		{pattern: "", want: ""},
		{pattern: "a", want: "a"},
		{pattern: "ab", want: "ab."},
		{pattern: "abc", want: "abc.."},
		{pattern: "a|b", want: "ab|"},
		{pattern: "a|b|c", want: "abc||"},
		{pattern: "ab|c", want: "ab.c|"},
		{pattern: "a|bc", want: "abc.|"},
		{pattern: "a*", want: "a*"},
		{pattern: "a+b", want: "a+b."},
		{pattern: "ab*", want: "ab*."},
		{pattern: "ab?c", want: "ab?c.."},
		{pattern: "(a|b)*c", want: "ab|*c."},
		{pattern: "a(b|c)*", want: "abc|*."},
		{pattern: "(ab)(cd)", want: "ab.cd.."},
		{pattern: "a**", want: "a**"},
		{pattern: "((a))", want: "a"},
		{pattern: `a\*`, want: `a\*.`},
		{pattern: `\(\)`, want: `\(\).`},
		{pattern: "a.b", want: `a\.b..`},
		{pattern: "日本", want: "日本."},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			tokens, err := Normalize(tt.pattern)
			if err != nil {
				t.Fatalf("Normalize(%q) error: %v", tt.pattern, err)
			}
			if got := Postfix(tokens); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.pattern, got, tt.want)
			}
		})
	}
}

func TestNormalizeErrors(t *testing.T) {
	tests := []struct {
		pattern string
		code    ErrorCode
		pos     int
	}{
		{pattern: "(a", code: ErrMissingParen, pos: 0},
		{pattern: "a(b(c)", code: ErrMissingParen, pos: 1},
		{pattern: "a)", code: ErrUnexpectedParen, pos: 1},
		{pattern: ")", code: ErrUnexpectedParen, pos: 0},
		{pattern: "()", code: ErrEmptyGroup, pos: 1},
		{pattern: "a()b", code: ErrEmptyGroup, pos: 2},
		{pattern: `ab\`, code: ErrTrailingBackslash, pos: 2},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			_, err := Normalize(tt.pattern)
			if err == nil {
				t.Fatalf("Normalize(%q) expected error, got nil", tt.pattern)
			}
			var se *SyntaxError
			if !errors.As(err, &se) {
				t.Fatalf("Normalize(%q) error type = %T, want *SyntaxError", tt.pattern, err)
			}
			if se.Code != tt.code {
				t.Errorf("Code = %q, want %q", se.Code, tt.code)
			}
			if se.Pos != tt.pos {
				t.Errorf("Pos = %d, want %d", se.Pos, tt.pos)
			}
			if !errors.Is(err, tt.code) {
				t.Errorf("errors.Is(err, %q) = false", tt.code)
			}
		})
	}
}

func TestNormalizeImplicitConcatPositions(t *testing.T) {
	tokens := MustNormalize("ab")
	if len(tokens) != 3 {
		t.Fatalf("len(tokens) = %d, want 3", len(tokens))
	}
	concat := tokens[2]
	if concat.Kind != Concat {
		t.Fatalf("tokens[2].Kind = %v, want Concat", concat.Kind)
	}
	if concat.Pos != 1 {
		t.Errorf("implicit concat Pos = %d, want 1", concat.Pos)
	}
}

func TestNormalizeMultibytePositions(t *testing.T) {
	tokens := MustNormalize("é|x")
	if tokens[0].Rune != 'é' || tokens[0].Pos != 0 {
		t.Errorf("tokens[0] = %+v, want literal é at 0", tokens[0])
	}
	// 'é' is two bytes, so '|' sits at offset 2 and 'x' at 3.
	if tokens[1].Rune != 'x' || tokens[1].Pos != 3 {
		t.Errorf("tokens[1] = %+v, want literal x at 3", tokens[1])
	}
	if tokens[2].Kind != Union || tokens[2].Pos != 2 {
		t.Errorf("tokens[2] = %+v, want Union at 2", tokens[2])
	}
}

func TestKindPriority(t *testing.T) {
	if !(Union.Priority() < Concat.Priority() && Concat.Priority() < Star.Priority()) {
		t.Errorf("priorities out of order: | %d, . %d, * %d",
			Union.Priority(), Concat.Priority(), Star.Priority())
	}
	if Plus.Priority() != Star.Priority() || Quest.Priority() != Star.Priority() {
		t.Error("postfix closures should share a priority")
	}
	if Literal.IsOperator() {
		t.Error("Literal.IsOperator() = true")
	}
	if Union.Arity() != 2 || Star.Arity() != 1 || Literal.Arity() != 0 {
		t.Error("unexpected arity")
	}
}

func TestSyntaxErrorMessage(t *testing.T) {
	err := NewError(ErrMissingParen, "(a", 0)
	want := "error parsing regexp: missing closing ) at offset 0: `(a`"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}

	err = NewError(ErrTrailingExpression, "ab", -1)
	want = "error parsing regexp: malformed trailing expression: `ab`"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}

	if !errors.Is(err, &SyntaxError{Code: ErrTrailingExpression}) {
		t.Error("errors.Is should match a SyntaxError with the same code")
	}
	if errors.Is(err, &SyntaxError{Code: ErrMissingOperand}) {
		t.Error("errors.Is should not match a different code")
	}
}
