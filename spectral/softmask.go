// SPDX-License-Identifier: EPL-2.0

package spectral

import (
	"fmt"
	"math"
)

// smallest normal float64
const tiny = 2.2250738585072014e-308

// softmask returns a^p / (a^p + b^p), or 0 when both inputs are zero.
// Inputs are scaled by max(a, b) first so large magnitudes cannot overflow.
func softmask(a, b, power float64) float64 {
	z := max(a, b)
	if z < tiny {
		return 0
	}

	x := math.Pow(a/z, power)
	y := math.Pow(b/z, power)

	return x / (x + y)
}

// SoftMask computes softmask element-wise over two equally shaped,
// non-negative matrices. Every value of the result is in [0,1].
func SoftMask(a, b [][]float64, power float64) ([][]float64, error) {
	if len(a) != len(b) {
		return nil, fmt.Errorf("%w: %d and %d frames", ErrShapeMismatch, len(a), len(b))
	}

	mask := make([][]float64, len(a))
	for t := range a {
		if len(a[t]) != len(b[t]) {
			return nil, fmt.Errorf("%w: frame %d has %d and %d bins", ErrShapeMismatch, t, len(a[t]), len(b[t]))
		}

		mask[t] = make([]float64, len(a[t]))
		for f := range a[t] {
			mask[t][f] = softmask(a[t][f], b[t][f], power)
		}
	}

	return mask, nil
}
