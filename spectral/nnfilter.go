// SPDX-License-Identifier: EPL-2.0

package spectral

import (
	"cmp"
	"math"
	"slices"

	"gonum.org/v1/gonum/floats"
)

// FilterOptions controls the neighbourhood of NNFilter.
type FilterOptions struct {
	// Width excludes frames closer than Width hops from being neighbours.
	Width int
	// Radius bounds the search to frames at most Radius hops away.
	// Zero searches the whole signal.
	Radius int
	// Neighbors is the number of most similar frames aggregated per frame.
	// Zero picks min(n, 2*ceil(sqrt(n))) for n candidate frames.
	Neighbors int
}

type neighbour struct {
	index int
	dist  int
	sim   float64
}

// similarity caches cosine similarities between frames at distance
// 1..span, each pair computed once.
type similarity struct {
	mag   [][]float64
	norms []float64
	span  int
	band  [][]float64 // band[i][d-1] = sim(i, i+d)
}

func newSimilarity(mag [][]float64, span int) *similarity {
	s := &similarity{
		mag:   mag,
		norms: make([]float64, len(mag)),
		span:  span,
		band:  make([][]float64, len(mag)),
	}

	for i, frame := range mag {
		s.norms[i] = floats.Norm(frame, 2)
	}

	for i := range mag {
		n := min(span, len(mag)-1-i)
		s.band[i] = make([]float64, max(n, 0))
		for d := 1; d <= n; d++ {
			s.band[i][d-1] = s.cosine(i, i+d)
		}
	}

	return s
}

func (s *similarity) cosine(i, j int) float64 {
	if s.norms[i] == 0 || s.norms[j] == 0 {
		return 0
	}
	return floats.Dot(s.mag[i], s.mag[j]) / (s.norms[i] * s.norms[j])
}

func (s *similarity) at(i, j int) float64 {
	if j < i {
		i, j = j, i
	}
	return s.band[i][j-i-1]
}

func autoNeighbors(n int) int {
	return min(n, 2*int(math.Ceil(math.Sqrt(float64(n)))))
}

// median sorts v in place and returns its median.
func median(v []float64) float64 {
	slices.Sort(v)
	n := len(v)
	if n%2 == 1 {
		return v[n/2]
	}
	return (v[n/2-1] + v[n/2]) / 2
}

// NNFilter estimates the background of a magnitude spectrogram mag[t][f].
//
// For frame i the candidates are the frames j with Width <= |i-j| <= Radius,
// ranked by cosine similarity (ties go to the nearer frame, then the earlier
// one). Each bin of the result is the median of that bin over the chosen
// neighbours, clamped to the frame's own magnitude. Frames without
// candidates keep their magnitude.
func NNFilter(mag [][]float64, opts FilterOptions) [][]float64 {
	numFrames := len(mag)
	width := max(opts.Width, 1)
	radius := opts.Radius
	if radius <= 0 || radius > numFrames-1 {
		radius = max(numFrames-1, 0)
	}

	sims := newSimilarity(mag, radius)
	out := make([][]float64, numFrames)

	var candidates []neighbour
	var values []float64

	for i := range numFrames {
		candidates = candidates[:0]
		for j := max(i-radius, 0); j <= min(i+radius, numFrames-1); j++ {
			d := i - j
			if d < 0 {
				d = -d
			}
			if d < width {
				continue
			}
			candidates = append(candidates, neighbour{index: j, dist: d, sim: sims.at(i, j)})
		}

		if len(candidates) == 0 {
			out[i] = slices.Clone(mag[i])
			continue
		}

		slices.SortFunc(candidates, func(a, b neighbour) int {
			if c := cmp.Compare(b.sim, a.sim); c != 0 {
				return c
			}
			if c := cmp.Compare(a.dist, b.dist); c != 0 {
				return c
			}
			return cmp.Compare(a.index, b.index)
		})

		k := opts.Neighbors
		if k <= 0 {
			k = autoNeighbors(len(candidates))
		}
		k = min(k, len(candidates))
		chosen := candidates[:k]

		bg := make([]float64, len(mag[i]))
		values = slices.Grow(values[:0], k)[:k]
		for f := range bg {
			for n, c := range chosen {
				values[n] = mag[c.index][f]
			}
			bg[f] = min(mag[i][f], median(values))
		}
		out[i] = bg
	}

	return out
}
