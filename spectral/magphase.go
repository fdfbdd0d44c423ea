// SPDX-License-Identifier: EPL-2.0

package spectral

import (
	"fmt"
	"math/cmplx"
)

// MagPhase splits spec into magnitudes and unit phase factors so that
// spec = mag * phase. Bins with zero magnitude get a phase of 1.
func MagPhase(spec *Spectrogram) ([][]float64, [][]complex128) {
	mag := make([][]float64, len(spec.Frames))
	phase := make([][]complex128, len(spec.Frames))

	for t, frame := range spec.Frames {
		mag[t] = make([]float64, len(frame))
		phase[t] = make([]complex128, len(frame))

		for f, c := range frame {
			m := cmplx.Abs(c)
			mag[t][f] = m
			if m == 0 {
				phase[t][f] = 1
				continue
			}
			phase[t][f] = c / complex(m, 0)
		}
	}

	return mag, phase
}

// Compose rebuilds a spectrogram from mask * mag * phase. The result takes
// its frame layout from like.
func Compose(like *Spectrogram, mask, mag [][]float64, phase [][]complex128) (*Spectrogram, error) {
	if len(mask) != len(mag) || len(mag) != len(phase) {
		return nil, fmt.Errorf("%w: %d, %d and %d frames", ErrShapeMismatch, len(mask), len(mag), len(phase))
	}

	out := &Spectrogram{
		Frames:    make([][]complex128, len(mag)),
		FrameSize: like.FrameSize,
		HopSize:   like.HopSize,
		Length:    like.Length,
	}

	for t := range mag {
		if len(mask[t]) != len(mag[t]) || len(mag[t]) != len(phase[t]) {
			return nil, fmt.Errorf("%w: frame %d", ErrShapeMismatch, t)
		}

		frame := make([]complex128, len(mag[t]))
		for f, m := range mag[t] {
			frame[f] = complex(mask[t][f]*m, 0) * phase[t][f]
		}
		out.Frames[t] = frame
	}

	return out, nil
}
