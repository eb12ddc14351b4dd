// Package bounds provides overflow-checked int arithmetic for sizing
// calculations, so slot-count times element-size math can fail cleanly
// instead of wrapping.
package bounds

import "math"

// Mul returns a*b and reports whether the product stayed in int range.
// Both operands are expected to be non-negative; negative inputs report
// failure.
func Mul(a, b int) (int, bool) {
	if a < 0 || b < 0 {
		return 0, false
	}
	if a == 0 || b == 0 {
		return 0, true
	}
	if a > math.MaxInt/b {
		return 0, false
	}
	return a * b, true
}
