// Package simd provides byte and substring search using SWAR (SIMD Within A
// Register): eight bytes are tested per step with uint64 arithmetic.
//
// Every function has a []byte and a string form sharing one implementation,
// so callers can search either without converting.
package simd

import "math/bits"

// Haystack is the set of types the search functions accept.
type Haystack interface {
	~string | ~[]byte
}

const (
	lo8 = uint64(0x0101010101010101)
	hi8 = uint64(0x8080808080808080)
)

// Memchr returns the index of the first instance of needle in haystack,
// or -1 if needle is not present in haystack.
//
// Equivalent to bytes.IndexByte.
func Memchr(haystack []byte, needle byte) int {
	return memchr(haystack, needle)
}

// MemchrString is Memchr for strings. Equivalent to strings.IndexByte.
func MemchrString(haystack string, needle byte) int {
	return memchr(haystack, needle)
}

// Memchr2 returns the index of the first instance of either needle1 or
// needle2 in haystack, or -1 if neither is present.
func Memchr2(haystack []byte, needle1, needle2 byte) int {
	return memchr2(haystack, needle1, needle2)
}

// Memchr2String is Memchr2 for strings.
func Memchr2String(haystack string, needle1, needle2 byte) int {
	return memchr2(haystack, needle1, needle2)
}

// load64 reads eight bytes at i as a little-endian word.
func load64[T Haystack](s T, i int) uint64 {
	_ = s[i+7]
	return uint64(s[i]) | uint64(s[i+1])<<8 | uint64(s[i+2])<<16 | uint64(s[i+3])<<24 |
		uint64(s[i+4])<<32 | uint64(s[i+5])<<40 | uint64(s[i+6])<<48 | uint64(s[i+7])<<56
}

// zeroBytes marks every zero byte of v with its high bit.
//
// Borrows can set marks above a true zero byte, never below it, so the
// lowest mark is always exact.
func zeroBytes(v uint64) uint64 {
	return (v - lo8) & ^v & hi8
}

func memchr[T Haystack](haystack T, needle byte) int {
	n := len(haystack)
	mask := uint64(needle) * lo8

	i := 0
	for ; i+8 <= n; i += 8 {
		if z := zeroBytes(load64(haystack, i) ^ mask); z != 0 {
			return i + bits.TrailingZeros64(z)/8
		}
	}
	for ; i < n; i++ {
		if haystack[i] == needle {
			return i
		}
	}
	return -1
}

func memchr2[T Haystack](haystack T, needle1, needle2 byte) int {
	n := len(haystack)
	mask1 := uint64(needle1) * lo8
	mask2 := uint64(needle2) * lo8

	i := 0
	for ; i+8 <= n; i += 8 {
		chunk := load64(haystack, i)
		if z := zeroBytes(chunk^mask1) | zeroBytes(chunk^mask2); z != 0 {
			return i + bits.TrailingZeros64(z)/8
		}
	}
	for ; i < n; i++ {
		if b := haystack[i]; b == needle1 || b == needle2 {
			return i
		}
	}
	return -1
}
