package nfa

import (
	"github.com/coregx/thompson/syntax"
)

// CompilerConfig configures NFA compilation behavior
type CompilerConfig struct {
	// FuseConcat splices concatenated fragments together instead of linking
	// them with an epsilon edge. Both produce the same language; fusion
	// gives a smaller arena.
	FuseConcat bool
}

// DefaultCompilerConfig returns a compiler configuration with sensible defaults
func DefaultCompilerConfig() CompilerConfig {
	return CompilerConfig{
		FuseConcat: false,
	}
}

// Compiler turns postfix token streams into Thompson NFAs
type Compiler struct {
	config CompilerConfig
}

// NewCompiler creates a new NFA compiler with the given configuration
func NewCompiler(config CompilerConfig) *Compiler {
	return &Compiler{config: config}
}

// NewDefaultCompiler creates a new NFA compiler with default configuration
func NewDefaultCompiler() *Compiler {
	return NewCompiler(DefaultCompilerConfig())
}

// Compile normalizes and compiles a pattern string into an NFA.
// Syntax problems are returned as *syntax.SyntaxError.
func (c *Compiler) Compile(pattern string) (*NFA, error) {
	tokens, err := syntax.Normalize(pattern)
	if err != nil {
		return nil, err
	}
	return c.CompileTokens(pattern, tokens)
}

// CompileTokens builds an NFA from a postfix token stream. pattern is only
// used in error messages.
func (c *Compiler) CompileTokens(pattern string, tokens []syntax.Token) (*NFA, error) {
	b := NewBuilderWithCapacity(2 * len(tokens))
	b.SetFusion(c.config.FuseConcat)

	frag, err := c.fold(b, pattern, tokens)
	if err != nil {
		return nil, err
	}

	nfa, err := b.Build(frag)
	if err != nil {
		return nil, &CompileError{Pattern: pattern, Err: err}
	}
	return nfa, nil
}

// fold evaluates the postfix stream over an operand stack of fragments.
func (c *Compiler) fold(b *Builder, pattern string, tokens []syntax.Token) (Fragment, error) {
	if len(tokens) == 0 {
		return b.Empty(), nil
	}

	stack := make([]Fragment, 0, len(tokens)/2+1)
	pop := func() Fragment {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		return f
	}

	for _, tok := range tokens {
		if len(stack) < tok.Kind.Arity() {
			return Fragment{}, syntax.NewError(syntax.ErrMissingOperand, pattern, tok.Pos)
		}

		switch tok.Kind {
		case syntax.Literal:
			stack = append(stack, b.Unit(tok.Rune))
		case syntax.Concat:
			right := pop()
			left := pop()
			stack = append(stack, b.Concat(left, right))
		case syntax.Union:
			right := pop()
			left := pop()
			stack = append(stack, b.Union(left, right))
		case syntax.Quest:
			stack = append(stack, b.Optional(pop()))
		case syntax.Plus:
			stack = append(stack, b.Positive(pop()))
		case syntax.Star:
			stack = append(stack, b.Kleene(pop()))
		default:
			return Fragment{}, syntax.NewError(syntax.ErrTrailingExpression, pattern, tok.Pos)
		}
	}

	if len(stack) != 1 {
		return Fragment{}, syntax.NewError(syntax.ErrTrailingExpression, pattern, -1)
	}
	return stack[0], nil
}

// Compile compiles a pattern with the default configuration.
func Compile(pattern string) (*NFA, error) {
	return NewDefaultCompiler().Compile(pattern)
}
