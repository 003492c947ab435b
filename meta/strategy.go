package meta

// Strategy represents the execution strategy for matching.
//
// The meta-engine chooses between:
//   - UseNFA: PikeVM exclusively, no state cache
//   - UseDFA: lazy DFA, clearing its cache whenever it fills up
//   - UseBoth: lazy DFA until it has cleared its cache MaxCacheClears
//     times, PikeVM from then on
//
// Every strategy answers the same question with the same result; they differ
// in memory use and speed only.
type Strategy int

const (
	// UseNFA uses only the PikeVM.
	// Selected when EnableDFA is false.
	UseNFA Strategy = iota

	// UseDFA uses the lazy DFA for every search.
	// Selected when EnableDFA is true and MaxCacheClears is zero.
	UseDFA

	// UseBoth uses the lazy DFA and falls back to the PikeVM once the DFA
	// cache has been cleared more than MaxCacheClears times.
	// Selected when EnableDFA is true and MaxCacheClears is positive.
	UseBoth
)

// String returns a human-readable representation of the Strategy.
func (s Strategy) String() string {
	switch s {
	case UseNFA:
		return "UseNFA"
	case UseDFA:
		return "UseDFA"
	case UseBoth:
		return "UseBoth"
	default:
		return "Unknown"
	}
}

// SelectStrategy picks the execution strategy for a configuration.
func SelectStrategy(config Config) Strategy {
	switch {
	case !config.EnableDFA:
		return UseNFA
	case config.MaxCacheClears > 0:
		return UseBoth
	default:
		return UseDFA
	}
}
