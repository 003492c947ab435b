// Package meta implements the engine orchestrator behind the public API.
//
// The meta-engine coordinates the compilation pipeline and the matchers:
//   - syntax: infix pattern to postfix tokens
//   - nfa: Thompson NFA, plus the PikeVM used without a DFA
//   - literal: required literals, which feed the prefilter
//   - dfa/lazy: lazy DFA with a splay-tree state cache
//
// Strategy selection is driven by the configuration: the lazy DFA is the
// default, the PikeVM runs when the DFA is disabled or keeps thrashing its
// cache.
package meta

import (
	"fmt"
)

// Config controls meta-engine behavior and performance characteristics.
//
// Configuration options affect:
//   - Strategy selection (which engine to use)
//   - Cache sizes (DFA state cache)
//   - Literal extraction limits and prefilter enablement
//   - NFA construction (concatenation fusion)
//
// Example:
//
//	config := meta.DefaultConfig()
//	config.EnableDFA = false // Force NFA-only execution
//	engine, err := meta.CompileWithConfig("(a|b)*c", config)
type Config struct {
	// EnableDFA enables the Lazy DFA engine.
	// When false, only the NFA (PikeVM) is used.
	// Default: true
	EnableDFA bool

	// EnablePrefilter enables literal-based prefiltering.
	// When false, no prefilter is used even if literals are available.
	// Default: true
	EnablePrefilter bool

	// MaxDFAStates sets the maximum number of DFA states to cache.
	// When the cache is full it is cleared and determinization continues.
	// Default: 10000
	MaxDFAStates uint32

	// MaxCacheClears is the number of cache clears the DFA may go through
	// before the engine abandons it for the NFA. Zero never abandons the DFA.
	// Default: 0
	MaxCacheClears int

	// MinLiteralLen is the minimum length of every required literal for the
	// prefilter to be used. Shorter literals match too often to pay off.
	// Default: 1
	MinLiteralLen int

	// MaxLiterals limits the number of literals tracked per subexpression
	// during extraction.
	// Default: 64
	MaxLiterals int

	// MaxLiteralLen limits the byte length of an extracted literal.
	// Default: 64
	MaxLiteralLen int

	// FuseConcat splices concatenated NFA fragments instead of linking them
	// with an epsilon edge. Both give the same language.
	// Default: false
	FuseConcat bool
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() Config {
	return Config{
		EnableDFA:       true,
		EnablePrefilter: true,
		MaxDFAStates:    10000,
		MaxCacheClears:  0,
		MinLiteralLen:   1,
		MaxLiterals:     64,
		MaxLiteralLen:   64,
		FuseConcat:      false,
	}
}

// Validate checks if the configuration is valid.
// Returns an error describing the first invalid field.
//
// Example:
//
//	config := meta.DefaultConfig()
//	config.MaxDFAStates = 0
//	if err := config.Validate(); err != nil {
//	    log.Fatal(err) // invalid config: MaxDFAStates: must be between 1 and 1,000,000
//	}
func (c Config) Validate() error {
	if c.EnableDFA {
		if c.MaxDFAStates < 1 || c.MaxDFAStates > 1_000_000 {
			return &ConfigError{
				Field:   "MaxDFAStates",
				Message: "must be between 1 and 1,000,000",
			}
		}
		if c.MaxCacheClears < 0 {
			return &ConfigError{
				Field:   "MaxCacheClears",
				Message: "must not be negative",
			}
		}
	}

	if c.EnablePrefilter {
		if c.MinLiteralLen < 1 || c.MinLiteralLen > 64 {
			return &ConfigError{
				Field:   "MinLiteralLen",
				Message: "must be between 1 and 64",
			}
		}
	}

	if c.MaxLiterals < 1 || c.MaxLiterals > 1_000 {
		return &ConfigError{
			Field:   "MaxLiterals",
			Message: "must be between 1 and 1,000",
		}
	}
	if c.MaxLiteralLen < 1 || c.MaxLiteralLen > 1_024 {
		return &ConfigError{
			Field:   "MaxLiteralLen",
			Message: "must be between 1 and 1,024",
		}
	}

	return nil
}

// WithMaxDFAStates returns a copy of the config with the DFA cache bound set
func (c Config) WithMaxDFAStates(n uint32) Config {
	c.MaxDFAStates = n
	return c
}

// WithPrefilter returns a copy of the config with prefiltering enabled or not
func (c Config) WithPrefilter(enabled bool) Config {
	c.EnablePrefilter = enabled
	return c
}

// WithDFA returns a copy of the config with the lazy DFA enabled or not
func (c Config) WithDFA(enabled bool) Config {
	c.EnableDFA = enabled
	return c
}

// WithFuseConcat returns a copy of the config with concatenation fusion set
func (c Config) WithFuseConcat(fuse bool) Config {
	c.FuseConcat = fuse
	return c
}

// ConfigError represents an invalid configuration parameter.
type ConfigError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return fmt.Sprintf("thompson: invalid config: %s: %s", e.Field, e.Message)
}
