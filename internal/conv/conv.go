// Package conv provides checked integer narrowing.
//
// Arena sizes and node IDs are stored as uint32. A conversion that would
// overflow means a pattern exceeded internal limits, which is a programming
// error, so these helpers panic instead of returning an error.
package conv

import "math"

// IntToUint32 converts n to uint32.
// Panics if n < 0 or n > math.MaxUint32.
func IntToUint32(n int) uint32 {
	// Compare as uint so 32-bit platforms can represent MaxUint32.
	if n < 0 || uint(n) > math.MaxUint32 {
		panic("integer overflow: int value out of uint32 range")
	}
	return uint32(n)
}
