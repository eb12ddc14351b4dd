// Package pow2 provides power-of-two sizing helpers for bucket arrays.
package pow2

// Is reports whether n is a power of two. Zero and negatives are not.
//
// Example:
//
//	Is(16) = true
//	Is(17) = false
//	Is(0)  = false
func Is(n int) bool {
	return n > 0 && n&(n-1) == 0
}

// Ceil returns the smallest power of two >= n. Values <= 1 return 1.
//
// Example:
//
//	Ceil(13) = 16
//	Ceil(16) = 16
//	Ceil(17) = 32
func Ceil(n int) int {
	if n <= 1 {
		return 1
	}
	if Is(n) {
		return n
	}
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}
