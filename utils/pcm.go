// SPDX-License-Identifier: EPL-2.0

package utils

import "math"

// PCMScale is the full-scale magnitude of a signed PCM sample of bitDepth bits.
func PCMScale(bitDepth int) float64 {
	return float64(int64(1) << (bitDepth - 1))
}

// FloatToPCM converts a sample in [-1,1] to a signed integer of bitDepth bits.
// Values are rounded and clamped, so 1.0 maps to the positive maximum.
func FloatToPCM(x float64, bitDepth int) int32 {
	scale := PCMScale(bitDepth)

	v := math.Round(x * scale)
	if v > scale-1 {
		v = scale - 1
	} else if v < -scale {
		v = -scale
	}

	return int32(v)
}

// PCMToFloat converts a signed integer sample of bitDepth bits to [-1,1).
func PCMToFloat(v int, bitDepth int) float32 {
	return float32(float64(v) / PCMScale(bitDepth))
}
