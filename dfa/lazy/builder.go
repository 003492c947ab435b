package lazy

import (
	"github.com/coregx/thompson/literal"
	"github.com/coregx/thompson/nfa"
	"github.com/coregx/thompson/prefilter"
	"github.com/coregx/thompson/syntax"
)

// Builder constructs a Lazy DFA from an NFA with optional prefilter integration.
//
// The builder performs the initial setup:
//  1. Validate the configuration
//  2. Build a prefilter from the pattern's required literals, if enabled
//  3. Create an empty cache and closure engine
//
// The start state and everything after it are determinized lazily during
// matching.
type Builder struct {
	nfa      *nfa.NFA
	config   Config
	literals *literal.Seq
}

// NewBuilder creates a new DFA builder for the given NFA
func NewBuilder(n *nfa.NFA, config Config) *Builder {
	return &Builder{
		nfa:    n,
		config: config,
	}
}

// WithLiterals supplies the pattern's required literals: every accepted
// text contains at least one of them. They feed the prefilter.
func (b *Builder) WithLiterals(seq *literal.Seq) *Builder {
	b.literals = seq
	return b
}

// Build constructs and returns a Lazy DFA ready for matching.
// Returns error if configuration is invalid.
func (b *Builder) Build() (*DFA, error) {
	if err := b.config.Validate(); err != nil {
		return nil, err
	}

	var pf prefilter.Prefilter
	if b.config.UsePrefilter {
		pf = b.buildPrefilter()
	}

	return &DFA{
		nfa:       b.nfa,
		cache:     NewCache(b.config.MaxStates),
		closure:   nfa.NewClosure(b.nfa),
		config:    b.config,
		prefilter: pf,
		start:     InvalidState,
		scratch:   make([]nfa.NodeID, 0, b.nfa.Len()),
	}, nil
}

// buildPrefilter selects a prefilter for the required literals.
// Returns nil if there are none or one of them is shorter than
// MinPrefilterLen.
func (b *Builder) buildPrefilter() prefilter.Prefilter {
	if b.literals.IsEmpty() {
		return nil
	}
	for i := 0; i < b.literals.Len(); i++ {
		if b.literals.Get(i).Len() < b.config.MinPrefilterLen {
			return nil
		}
	}
	return prefilter.NewBuilder(b.literals).Build()
}

// CompilePattern is a convenience function to compile a pattern directly to
// a Lazy DFA with default configuration, including the prefilter.
//
// Example:
//
//	dfa, err := lazy.CompilePattern("(foo|bar)+")
//	if err != nil {
//	    return err
//	}
//	dfa.IsMatchString("foobarfoo") // true
func CompilePattern(pattern string) (*DFA, error) {
	return CompilePatternWithConfig(pattern, DefaultConfig())
}

// CompilePatternWithConfig compiles a pattern with a custom DFA configuration.
// The NFA is built with the default compiler configuration.
func CompilePatternWithConfig(pattern string, config Config) (*DFA, error) {
	tokens, err := syntax.Normalize(pattern)
	if err != nil {
		return nil, err
	}
	n, err := nfa.NewDefaultCompiler().CompileTokens(pattern, tokens)
	if err != nil {
		return nil, err
	}
	seq := literal.New(literal.DefaultConfig()).Required(tokens)
	return NewBuilder(n, config).WithLiterals(seq).Build()
}
