package lazy

// Config configures the behavior of the Lazy DFA engine.
//
// The DFA state cache normally lives as long as the compiled pattern. The
// MaxStates bound keeps pathological patterns from growing it without limit.
type Config struct {
	// MaxStates is the maximum number of DFA states to cache.
	// When this limit is reached the cache is cleared and states are
	// rebuilt on demand. Results never change, only speed does.
	//
	// Default: 10,000 states
	//
	// Tuning guidelines:
	//   - Simple patterns: 100-1,000 states sufficient
	//   - Patterns like (a|b)*a(a|b)(a|b)(a|b): grows as 2^k, raise the limit
	MaxStates uint32

	// UsePrefilter enables the required-literal prefilter.
	// When true and a prefilter is supplied, texts that contain none of the
	// pattern's required literals are rejected without running the DFA.
	//
	// Default: true
	UsePrefilter bool

	// MinPrefilterLen is the shortest required literal worth scanning for.
	// If any required literal is shorter, no prefilter is built: a short
	// literal occurs in almost every text and the scan would only add cost.
	//
	// Default: 1
	MinPrefilterLen int
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() Config {
	return Config{
		MaxStates:       10_000,
		UsePrefilter:    true,
		MinPrefilterLen: 1,
	}
}

// Validate checks if the configuration is valid.
// Returns an error if any parameter is out of acceptable range.
func (c *Config) Validate() error {
	if c.MaxStates == 0 {
		return &DFAError{
			Kind:    InvalidConfig,
			Message: "MaxStates must be > 0",
		}
	}
	if c.MinPrefilterLen < 0 {
		return &DFAError{
			Kind:    InvalidConfig,
			Message: "MinPrefilterLen must be >= 0",
		}
	}
	return nil
}

// WithMaxStates returns a new config with the specified max states
func (c Config) WithMaxStates(maxStates uint32) Config {
	c.MaxStates = maxStates
	return c
}

// WithPrefilter returns a new config with prefilter enabled/disabled
func (c Config) WithPrefilter(enabled bool) Config {
	c.UsePrefilter = enabled
	return c
}

// WithMinPrefilterLen returns a new config with the given minimum literal length
func (c Config) WithMinPrefilterLen(n int) Config {
	c.MinPrefilterLen = n
	return c
}
