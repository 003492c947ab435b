package meta

import (
	"github.com/coregx/thompson/dfa/lazy"
	"github.com/coregx/thompson/literal"
	"github.com/coregx/thompson/nfa"
	"github.com/coregx/thompson/prefilter"
	"github.com/coregx/thompson/syntax"
)

// Compile compiles a pattern with the default configuration.
//
// Example:
//
//	engine, err := meta.Compile("ab?c")
//	if err != nil {
//	    return err
//	}
//	engine.IsMatchString("ac") // true
func Compile(pattern string) (*Engine, error) {
	return CompileWithConfig(pattern, DefaultConfig())
}

// CompileWithConfig compiles a pattern with a custom configuration.
//
// Syntax problems are returned as *syntax.SyntaxError, unwrapped. An
// invalid configuration is reported as *ConfigError.
func CompileWithConfig(pattern string, config Config) (*Engine, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	tokens, err := syntax.Normalize(pattern)
	if err != nil {
		return nil, err
	}

	compiler := nfa.NewCompiler(nfa.CompilerConfig{FuseConcat: config.FuseConcat})
	n, err := compiler.CompileTokens(pattern, tokens)
	if err != nil {
		return nil, err
	}

	extractor := literal.New(literal.ExtractorConfig{
		MaxLiterals:   config.MaxLiterals,
		MaxLiteralLen: config.MaxLiteralLen,
	})
	seq := extractor.Required(tokens)

	e := &Engine{
		pattern:  pattern,
		nfa:      n,
		literals: seq,
		strategy: SelectStrategy(config),
		config:   config,
	}

	if e.strategy != UseNFA {
		e.dfa, err = lazy.NewBuilder(n, lazyConfig(config)).WithLiterals(seq).Build()
		if err != nil {
			return nil, err
		}
		e.prefilter = e.dfa.Prefilter()
	} else if config.EnablePrefilter {
		e.prefilter = buildPrefilter(seq, config.MinLiteralLen)
	}

	if e.strategy != UseDFA {
		e.pikevm = nfa.NewPikeVM(n)
	}
	return e, nil
}

// lazyConfig maps the engine configuration onto the lazy DFA's.
func lazyConfig(config Config) lazy.Config {
	return lazy.DefaultConfig().
		WithMaxStates(config.MaxDFAStates).
		WithPrefilter(config.EnablePrefilter).
		WithMinPrefilterLen(config.MinLiteralLen)
}

// buildPrefilter builds the prefilter the PikeVM runs behind, using the same
// rule as the lazy DFA: every literal must be at least minLen bytes.
func buildPrefilter(seq *literal.Seq, minLen int) prefilter.Prefilter {
	if seq.IsEmpty() || seq.MinLen() < minLen {
		return nil
	}
	return prefilter.NewBuilder(seq).Build()
}
