package simd

import "math/bits"

// Memmem returns the index of the first instance of needle in haystack,
// or -1 if needle is not present in haystack. An empty needle matches at 0.
//
// Equivalent to bytes.Index. The search scans for the needle's rarest byte
// (see ByteRank) with the SWAR memchr and verifies each candidate.
//
// Example:
//
//	pos := simd.Memmem([]byte("aaaaaabaaaa"), []byte("aab"))
//	// pos == 4
func Memmem(haystack, needle []byte) int {
	return memmem(haystack, needle)
}

// MemmemString is Memmem for strings. Equivalent to strings.Index.
func MemmemString(haystack, needle string) int {
	return memmem(haystack, needle)
}

func memmem[T Haystack](haystack, needle T) int {
	m, n := len(needle), len(haystack)
	switch {
	case m == 0:
		return 0
	case m > n:
		return -1
	case m == 1:
		return memchr(haystack, needle[0])
	}

	rare, offset := rarestByte(needle)
	// The rare byte of a match at p sits at p+offset, so candidates past
	// last+offset cannot start a match.
	last := n - m
	from := offset
	for from <= last+offset {
		// Bounded scan: candidates are only looked for in [from, last+offset].
		idx := memchrFrom(haystack, rare, from, last+offset+1)
		if idx < 0 {
			return -1
		}
		start := idx - offset
		if equalAt(haystack, needle, start) {
			return start
		}
		from = idx + 1
	}
	return -1
}

// memchrFrom searches haystack[from:end] for needle and returns an absolute
// index, or -1.
func memchrFrom[T Haystack](haystack T, needle byte, from, end int) int {
	mask := uint64(needle) * lo8
	i := from
	for ; i+8 <= end; i += 8 {
		if z := zeroBytes(load64(haystack, i) ^ mask); z != 0 {
			return i + bits.TrailingZeros64(z)/8
		}
	}
	for ; i < end; i++ {
		if haystack[i] == needle {
			return i
		}
	}
	return -1
}

// equalAt reports whether needle occurs in haystack at start.
func equalAt[T Haystack](haystack, needle T, start int) bool {
	for j := 0; j < len(needle); j++ {
		if haystack[start+j] != needle[j] {
			return false
		}
	}
	return true
}

// rarestByte returns the needle byte with the lowest ByteRank and its index.
// Ties go to the later position.
func rarestByte[T Haystack](needle T) (byte, int) {
	best, idx := needle[0], 0
	for i := 1; i < len(needle); i++ {
		if ByteRank(needle[i]) <= ByteRank(best) {
			best, idx = needle[i], i
		}
	}
	return best, idx
}
