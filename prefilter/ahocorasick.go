package prefilter

import (
	"github.com/coregx/ahocorasick"
)

// ahoCorasickPrefilter searches for several literals at once.
//
// Example patterns:
//
//	/x*(foo|bar)y*/ → search for "foo" or "bar"
//	/(a|b)c/        → search for "ac" or "bc"
type ahoCorasickPrefilter struct {
	auto *ahocorasick.Automaton
}

func newAhoCorasick(literals [][]byte) (Prefilter, error) {
	builder := ahocorasick.NewBuilder()
	for _, lit := range literals {
		builder.AddPattern(lit)
	}
	auto, err := builder.Build()
	if err != nil {
		return nil, err
	}
	return &ahoCorasickPrefilter{auto: auto}, nil
}

// IsMatch implements Prefilter.IsMatch.
func (p *ahoCorasickPrefilter) IsMatch(haystack []byte) bool {
	return p.auto.IsMatch(haystack)
}

// IsMatchString implements Prefilter.IsMatchString.
// The automaton only reads byte slices, so the text is copied.
func (p *ahoCorasickPrefilter) IsMatchString(haystack string) bool {
	return p.auto.IsMatch([]byte(haystack))
}

// Kind implements Prefilter.Kind.
func (p *ahoCorasickPrefilter) Kind() string {
	return KindAhoCorasick
}
