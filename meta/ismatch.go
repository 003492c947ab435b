package meta

// IsMatch reports whether the whole of haystack is in the pattern's
// language. Invalid UTF-8 reads as utf8.RuneError, one byte at a time.
//
// This method never fails. The DFA cache may be cleared along the way, which
// changes speed but never the result.
func (e *Engine) IsMatch(haystack []byte) bool {
	if e.useNFA() {
		e.stats.NFASearches++
		if e.prefilter != nil && !e.prefilter.IsMatch(haystack) {
			e.stats.PrefilterRejects++
			return false
		}
		return e.pikevm.IsMatch(haystack)
	}

	e.stats.DFASearches++
	matched := e.dfa.IsMatch(haystack)
	e.checkFallback()
	return matched
}

// IsMatchString is IsMatch for strings.
func (e *Engine) IsMatchString(haystack string) bool {
	if e.useNFA() {
		e.stats.NFASearches++
		if e.prefilter != nil && !e.prefilter.IsMatchString(haystack) {
			e.stats.PrefilterRejects++
			return false
		}
		return e.pikevm.IsMatchString(haystack)
	}

	e.stats.DFASearches++
	matched := e.dfa.IsMatchString(haystack)
	e.checkFallback()
	return matched
}

func (e *Engine) useNFA() bool {
	return e.strategy == UseNFA || e.fellBack
}

// checkFallback abandons the DFA once it has cleared its cache more often
// than the configuration allows. Only UseBoth falls back.
func (e *Engine) checkFallback() {
	if e.strategy != UseBoth || e.fellBack {
		return
	}
	if e.dfa.Cache().ClearCount() > e.config.MaxCacheClears {
		e.fellBack = true
		e.stats.DFAFallbacks++
	}
}
