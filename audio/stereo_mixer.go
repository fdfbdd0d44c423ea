// SPDX-License-Identifier: EPL-2.0

package audio

import "fmt"

type sample interface {
	~float32 | ~float64
}

// mixFrame folds one interleaved frame into a left/right pair.
// Mono is duplicated, stereo passes through, and wider layouts average the
// even-indexed channels into left and the odd-indexed channels into right.
func mixFrame[T sample](frame []T) (T, T) {
	switch len(frame) {
	case 0:
		return 0, 0
	case 1:
		return frame[0], frame[0]
	case 2:
		return frame[0], frame[1]
	}

	var left, right T
	var nl, nr int
	for ch, v := range frame {
		if ch&1 == 0 {
			left += v
			nl++
		} else {
			right += v
			nr++
		}
	}

	return left / T(nl), right / T(nr)
}

// StereoMixer normalizes any channel layout of a Source to two channels.
type StereoMixer struct {
	src Source
	tmp []float32
}

func NewStereoMixer(src Source) *StereoMixer {
	return &StereoMixer{
		src: src,
		tmp: make([]float32, 4096),
	}
}

func (m *StereoMixer) SampleRate() int { return m.src.SampleRate() }
func (m *StereoMixer) Channels() int   { return 2 }
func (m *StereoMixer) BufSize() int    { return m.src.BufSize() }
func (m *StereoMixer) Close() error {
	err := m.src.Close()
	if err != nil {
		return fmt.Errorf("%w", err)
	}

	return nil
}

func (m *StereoMixer) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}
	if len(dst)%2 != 0 {
		return 0, ErrInvalidDstSize
	}

	channels := m.src.Channels()
	if channels == 2 {
		return m.src.ReadSamples(dst)
	}
	if channels <= 0 {
		return 0, fmt.Errorf("%w: source reports %d channels", ErrDecode, channels)
	}

	frames := len(dst) / 2
	needed := frames * channels

	// Grow tmp if needed, never shrink
	if cap(m.tmp) < needed {
		m.tmp = make([]float32, max(needed, 8192))
	}
	m.tmp = m.tmp[:needed]

	n, err := m.src.ReadSamples(m.tmp)
	if n == 0 {
		return 0, err
	}
	if n%channels != 0 {
		return 0, fmt.Errorf("%w: %d samples is not a whole number of %d-channel frames",
			ErrDecode, n, channels)
	}
	got := n / channels

	switch channels {
	case 1:
		for f := range got {
			v := m.tmp[f]
			dst[f<<1] = v
			dst[f<<1+1] = v
		}
	default:
		for f := range got {
			base := f * channels
			dst[f<<1], dst[f<<1+1] = mixFrame(m.tmp[base : base+channels])
		}
	}

	return got * 2, err
}
