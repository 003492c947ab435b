package syntax

// Normalize converts an infix pattern into postfix token order.
//
// Operator priorities: '|' = 1, implicit concatenation = 2, '*', '+', '?' = 3.
// An incoming operator pops the operator stack while the top has strictly
// greater priority, so operators of equal priority are pushed and the stack
// resolves them on drain.
//
// Normalize only checks the grouping structure. Operators lacking operands
// (e.g. "|a" or "*") pass through and are rejected by the NFA builder.
//
// Example:
//
//	tokens, _ := syntax.Normalize("a(b|c)*")
//	fmt.Println(syntax.Postfix(tokens)) // abc|*.
func Normalize(pattern string) ([]Token, error) {
	n := normalizer{
		pattern: pattern,
		out:     make([]Token, 0, 2*len(pattern)),
		ops:     make([]Token, 0, 8),
	}
	return n.run()
}

// MustNormalize is like Normalize but panics on error.
// Intended for tests and package-level fixtures.
func MustNormalize(pattern string) []Token {
	tokens, err := Normalize(pattern)
	if err != nil {
		panic(err)
	}
	return tokens
}

type normalizer struct {
	pattern string
	out     []Token
	ops     []Token

	// expectConcat is set when the previous token ended an operand:
	// a literal, ')' or a postfix closure.
	expectConcat bool
}

func (n *normalizer) run() ([]Token, error) {
	escaped := false
	escapePos := -1
	prevOpen := false

	for i, r := range n.pattern {
		if escaped {
			n.operand(Token{Kind: Literal, Rune: r, Pos: i})
			escaped = false
			prevOpen = false
			continue
		}

		switch r {
		case '\\':
			escaped = true
			escapePos = i
			prevOpen = false
			continue

		case '(':
			if n.expectConcat {
				n.pushOperator(Token{Kind: Concat, Pos: i})
			}
			n.ops = append(n.ops, Token{Kind: openGroup, Pos: i})
			n.expectConcat = false

		case ')':
			if prevOpen {
				return nil, NewError(ErrEmptyGroup, n.pattern, i)
			}
			if err := n.closeGroup(i); err != nil {
				return nil, err
			}
			n.expectConcat = true

		case '|':
			n.pushOperator(Token{Kind: Union, Pos: i})
			n.expectConcat = false

		case '*':
			n.pushOperator(Token{Kind: Star, Pos: i})
			n.expectConcat = true

		case '+':
			n.pushOperator(Token{Kind: Plus, Pos: i})
			n.expectConcat = true

		case '?':
			n.pushOperator(Token{Kind: Quest, Pos: i})
			n.expectConcat = true

		default:
			n.operand(Token{Kind: Literal, Rune: r, Pos: i})
		}
		prevOpen = r == '('
	}

	if escaped {
		return nil, NewError(ErrTrailingBackslash, n.pattern, escapePos)
	}

	for len(n.ops) > 0 {
		top := n.pop()
		if top.Kind == openGroup {
			return nil, NewError(ErrMissingParen, n.pattern, top.Pos)
		}
		n.out = append(n.out, top)
	}

	return n.out, nil
}

// operand emits a literal, inserting a Concat first when one is implied.
func (n *normalizer) operand(t Token) {
	if n.expectConcat {
		n.pushOperator(Token{Kind: Concat, Pos: t.Pos})
	}
	n.out = append(n.out, t)
	n.expectConcat = true
}

// pushOperator moves every stacked operator of strictly greater priority
// to the output, then pushes op. Group markers have priority 0 and are
// never popped here.
func (n *normalizer) pushOperator(op Token) {
	prio := op.Kind.Priority()
	for len(n.ops) > 0 && n.ops[len(n.ops)-1].Kind.Priority() > prio {
		n.out = append(n.out, n.pop())
	}
	n.ops = append(n.ops, op)
}

// closeGroup pops operators up to and including the matching '('.
func (n *normalizer) closeGroup(pos int) error {
	for len(n.ops) > 0 {
		top := n.pop()
		if top.Kind == openGroup {
			return nil
		}
		n.out = append(n.out, top)
	}
	return NewError(ErrUnexpectedParen, n.pattern, pos)
}

func (n *normalizer) pop() Token {
	top := n.ops[len(n.ops)-1]
	n.ops = n.ops[:len(n.ops)-1]
	return top
}
