// SPDX-License-Identifier: EPL-2.0

package spectral

import (
	"fmt"

	"github.com/mjibson/go-dsp/window"
	"gonum.org/v1/gonum/dsp/fourier"
)

// Spectrogram is a complex STFT, Frames[t][f].
type Spectrogram struct {
	Frames    [][]complex128
	FrameSize int
	HopSize   int
	// Length is the number of samples of the analysed signal.
	Length int
}

func (s *Spectrogram) NumFrames() int { return len(s.Frames) }
func (s *Spectrogram) NumBins() int   { return s.FrameSize/2 + 1 }

// Hann returns a periodic Hann window of n points.
func Hann(n int) []float64 {
	return window.Hann(n + 1)[:n]
}

func checkSizes(frameSize, hopSize int) error {
	if frameSize < 2 {
		return fmt.Errorf("%w: got %d", ErrInvalidFrameSize, frameSize)
	}
	if hopSize <= 0 || hopSize >= frameSize {
		return fmt.Errorf("%w: got %d for frame size %d", ErrInvalidHopSize, hopSize, frameSize)
	}
	return nil
}

// STFT computes the centered short-time Fourier transform of signal.
func STFT(signal []float64, frameSize, hopSize int) (*Spectrogram, error) {
	if err := checkSizes(frameSize, hopSize); err != nil {
		return nil, err
	}

	pad := frameSize / 2
	numFrames := 1 + (len(signal)+2*pad-frameSize)/hopSize
	// hops wider than half a frame need extra frames to reach the tail
	for (numFrames-1)*hopSize+frameSize <= pad+len(signal) {
		numFrames++
	}

	padded := make([]float64, max(len(signal)+2*pad, (numFrames-1)*hopSize+frameSize))
	copy(padded[pad:], signal)

	win := Hann(frameSize)
	fft := fourier.NewFFT(frameSize)

	spec := &Spectrogram{
		Frames:    make([][]complex128, numFrames),
		FrameSize: frameSize,
		HopSize:   hopSize,
		Length:    len(signal),
	}

	frame := make([]float64, frameSize)
	for t := range numFrames {
		start := t * hopSize
		for i, w := range win {
			frame[i] = padded[start+i] * w
		}
		spec.Frames[t] = fft.Coefficients(nil, frame)
	}

	return spec, nil
}

// ISTFT inverts spec to spec.Length samples.
func ISTFT(spec *Spectrogram) ([]float64, error) {
	return ISTFTLength(spec, spec.Length)
}

// ISTFTLength inverts spec and trims or zero pads the result to length
// samples.
func ISTFTLength(spec *Spectrogram, length int) ([]float64, error) {
	frameSize, hopSize := spec.FrameSize, spec.HopSize
	if err := checkSizes(frameSize, hopSize); err != nil {
		return nil, err
	}

	bins := spec.NumBins()
	numFrames := spec.NumFrames()
	pad := frameSize / 2

	total := frameSize + hopSize*max(numFrames-1, 0)
	out := make([]float64, total)
	envelope := make([]float64, total)

	win := Hann(frameSize)
	fft := fourier.NewFFT(frameSize)
	frame := make([]float64, frameSize)
	scale := 1 / float64(frameSize)

	for t, coeffs := range spec.Frames {
		if len(coeffs) != bins {
			return nil, fmt.Errorf("%w: frame %d has %d bins, want %d", ErrShapeMismatch, t, len(coeffs), bins)
		}

		fft.Sequence(frame, coeffs)

		start := t * hopSize
		for i, w := range win {
			out[start+i] += frame[i] * scale * w
			envelope[start+i] += w * w
		}
	}

	for i, e := range envelope {
		if e > tiny {
			out[i] /= e
		}
	}

	signal := make([]float64, length)
	if pad < len(out) {
		copy(signal, out[pad:])
	}

	return signal, nil
}
