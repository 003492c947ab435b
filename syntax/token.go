// Package syntax turns infix pattern text into a postfix token stream.
//
// The accepted grammar is deliberately small: single-rune literals, the
// binary union operator '|', implicit concatenation, the postfix closures
// '*', '+' and '?', and grouping with parentheses. A backslash makes the
// following rune a literal, so `a\*` matches the two-rune string "a*".
//
// Normalize runs an operator-precedence (shunting-yard) pass and inserts an
// explicit Concat token wherever two operands would otherwise be adjacent:
//
//	tokens, err := syntax.Normalize("ab|c*")
//	if err != nil {
//	    return err
//	}
//	fmt.Println(syntax.Postfix(tokens)) // ab.c*|
package syntax

import (
	"fmt"
	"strings"
)

// Kind identifies the type of a token.
type Kind uint8

const (
	// Literal matches exactly one rune.
	Literal Kind = iota

	// Concat joins the two preceding operands.
	Concat

	// Union matches either of the two preceding operands.
	Union

	// Star matches the preceding operand zero or more times.
	Star

	// Plus matches the preceding operand one or more times.
	Plus

	// Quest matches the preceding operand zero or one time.
	Quest

	// openGroup only ever lives on the operator stack.
	openGroup
)

// String returns a human-readable representation of the Kind
func (k Kind) String() string {
	switch k {
	case Literal:
		return "Literal"
	case Concat:
		return "Concat"
	case Union:
		return "Union"
	case Star:
		return "Star"
	case Plus:
		return "Plus"
	case Quest:
		return "Quest"
	case openGroup:
		return "OpenGroup"
	default:
		return fmt.Sprintf("Unknown(%d)", k)
	}
}

// Priority returns the binding strength of an operator kind.
// Union binds loosest, the postfix closures bind tightest.
// Literals and the group marker have priority 0.
func (k Kind) Priority() int {
	switch k {
	case Union:
		return 1
	case Concat:
		return 2
	case Star, Plus, Quest:
		return 3
	default:
		return 0
	}
}

// IsOperator reports whether the kind consumes operands.
func (k Kind) IsOperator() bool {
	return k != Literal && k != openGroup
}

// Arity returns how many operands the operator consumes.
func (k Kind) Arity() int {
	switch k {
	case Concat, Union:
		return 2
	case Star, Plus, Quest:
		return 1
	default:
		return 0
	}
}

// Token is one element of a postfix stream.
type Token struct {
	Kind Kind

	// Rune is the literal value; only meaningful for Literal tokens.
	Rune rune

	// Pos is the byte offset of the source character.
	// Implicit Concat tokens carry the offset of the operand they precede.
	Pos int
}

// String renders the token the way it would appear in a pattern.
// Concat is rendered as '.', escaped metacharacters keep their backslash.
func (t Token) String() string {
	switch t.Kind {
	case Literal:
		if isMeta(t.Rune) {
			return `\` + string(t.Rune)
		}
		return string(t.Rune)
	case Concat:
		return "."
	case Union:
		return "|"
	case Star:
		return "*"
	case Plus:
		return "+"
	case Quest:
		return "?"
	default:
		return "("
	}
}

// Postfix renders a token stream as a single string.
func Postfix(tokens []Token) string {
	var sb strings.Builder
	for _, t := range tokens {
		sb.WriteString(t.String())
	}
	return sb.String()
}

// isMeta reports whether r has a meaning of its own in a pattern.
func isMeta(r rune) bool {
	switch r {
	case '|', '*', '+', '?', '(', ')', '\\', '.':
		return true
	}
	return false
}
