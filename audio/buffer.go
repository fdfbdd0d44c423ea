// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"math"
	"time"
)

// Buffer is a fully decoded, planar audio signal.
// Data is indexed as Data[channel][sample]; every channel must hold the same
// number of samples.
type Buffer struct {
	SampleRate int
	Data       [][]float64
}

// NewBuffer allocates a zeroed buffer.
func NewBuffer(sampleRate, channels, samples int) *Buffer {
	data := make([][]float64, channels)
	for ch := range data {
		data[ch] = make([]float64, samples)
	}

	return &Buffer{SampleRate: sampleRate, Data: data}
}

func (b *Buffer) Channels() int { return len(b.Data) }

// Len returns the number of samples per channel.
func (b *Buffer) Len() int {
	if len(b.Data) == 0 {
		return 0
	}
	return len(b.Data[0])
}

func (b *Buffer) Duration() time.Duration {
	if b.SampleRate <= 0 {
		return 0
	}
	return time.Duration(float64(b.Len()) / float64(b.SampleRate) * float64(time.Second))
}

// Validate checks that b can be treated as audio: a positive sample rate, at
// least one channel, equal channel lengths, finite samples and at least one
// sample. Shape problems wrap ErrDecode, a zero-length signal is ErrEmptySignal.
func (b *Buffer) Validate() error {
	if b == nil {
		return fmt.Errorf("%w: nil buffer", ErrDecode)
	}

	if b.SampleRate <= 0 {
		return fmt.Errorf("%w: invalid sample rate %d", ErrDecode, b.SampleRate)
	}

	if len(b.Data) == 0 {
		return fmt.Errorf("%w: no channels", ErrDecode)
	}

	n := len(b.Data[0])
	for ch, samples := range b.Data {
		if len(samples) != n {
			return fmt.Errorf("%w: channel %d has %d samples, want %d", ErrDecode, ch, len(samples), n)
		}

		for i, v := range samples {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return fmt.Errorf("%w: non-finite sample at channel %d index %d", ErrDecode, ch, i)
			}
		}
	}

	if n == 0 {
		return ErrEmptySignal
	}

	return nil
}

// Clone returns a deep copy of b.
func (b *Buffer) Clone() *Buffer {
	out := &Buffer{SampleRate: b.SampleRate, Data: make([][]float64, len(b.Data))}
	for ch, samples := range b.Data {
		out.Data[ch] = append([]float64(nil), samples...)
	}

	return out
}

// Stereo returns a new two channel copy of b. Mono is duplicated, stereo is
// copied and wider layouts are folded down the same way StereoMixer does it.
func (b *Buffer) Stereo() *Buffer {
	n := b.Len()
	out := NewBuffer(b.SampleRate, 2, n)

	switch b.Channels() {
	case 0:
		return out
	case 1:
		copy(out.Data[0], b.Data[0])
		copy(out.Data[1], b.Data[0])
	case 2:
		copy(out.Data[0], b.Data[0])
		copy(out.Data[1], b.Data[1])
	default:
		frame := make([]float64, b.Channels())
		for i := range n {
			for ch := range frame {
				frame[ch] = b.Data[ch][i]
			}
			out.Data[0][i], out.Data[1][i] = mixFrame(frame)
		}
	}

	return out
}
