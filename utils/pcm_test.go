// SPDX-License-Identifier: EPL-2.0

package utils

import (
	"math"
	"testing"
)

func TestFloatToPCM(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    float64
		bitDepth int
		want     int32
	}{
		{"zero", 0.0, 16, 0},
		{"max positive", 1.0, 16, math.MaxInt16},
		{"max negative", -1.0, 16, math.MinInt16},
		{"half positive", 0.5, 16, 16384},
		{"half negative", -0.5, 16, -16384},
		{"small positive rounds", 0.001, 16, 33},
		{"clamp over max", 1.5, 16, math.MaxInt16},
		{"clamp under min", -100.0, 16, math.MinInt16},
		{"24-bit max", 1.0, 24, 1<<23 - 1},
		{"24-bit min", -1.0, 24, -(1 << 23)},
		{"24-bit half", 0.5, 24, 1 << 22},
		{"32-bit max", 1.0, 32, math.MaxInt32},
		{"32-bit min", -1.0, 32, math.MinInt32},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := FloatToPCM(tt.input, tt.bitDepth)
			if got != tt.want {
				t.Errorf("FloatToPCM(%v, %d) = %v, want %v", tt.input, tt.bitDepth, got, tt.want)
			}
		})
	}
}

// TestFloatToPCMMonotonic tests that conversion never decreases
func TestFloatToPCMMonotonic(t *testing.T) {
	t.Parallel()

	prev := FloatToPCM(-1.0, 16)
	for f := -0.99; f <= 1.0; f += 0.01 {
		curr := FloatToPCM(f, 16)
		if curr < prev {
			t.Errorf("FloatToPCM not monotonic: f=%v gives %v, previous %v", f, curr, prev)
		}
		prev = curr
	}
}

func TestPCMRoundTrip(t *testing.T) {
	t.Parallel()

	for _, depth := range []int{16, 24, 32} {
		for _, v := range []float64{-1, -0.75, -0.1, 0, 0.1, 0.33, 0.9} {
			back := float64(PCMToFloat(int(FloatToPCM(v, depth)), depth))
			if math.Abs(back-v) > 1.0/PCMScale(16) {
				t.Errorf("depth %d: round trip of %v gave %v", depth, v, back)
			}
		}
	}
}

func BenchmarkFloatToPCM(b *testing.B) {
	samples := make([]float64, 8000)
	out := make([]int32, len(samples))
	for i := range samples {
		samples[i] = math.Sin(float64(i) * 0.1)
	}

	b.ReportAllocs()

	for range b.N {
		for j, s := range samples {
			out[j] = FloatToPCM(s, 16)
		}
	}
}

func TestFloatToPCM_ZeroAllocs(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping allocation test in short mode")
	}

	allocs := testing.AllocsPerRun(1000, func() {
		_ = FloatToPCM(0.5, 24)
	})

	if allocs > 0 {
		t.Errorf("FloatToPCM allocated %v times, want 0", allocs)
	}
}
