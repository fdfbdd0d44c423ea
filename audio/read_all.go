// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"
)

const defaultReadSize = 4096

// ReadAll drains src into a planar Buffer.
//
// The source is read with chunks sized from src.BufSize(), rounded down to a
// whole number of frames. A stream that ends in the middle of a frame is
// reported as ErrDecode. ReadAll does not close src.
func ReadAll(src Source) (*Buffer, error) {
	channels := src.Channels()
	if channels <= 0 {
		return nil, fmt.Errorf("%w: source reports %d channels", ErrDecode, channels)
	}

	size := src.BufSize()
	if size <= 0 {
		size = defaultReadSize
	}
	size -= size % channels
	if size == 0 {
		size = channels
	}

	buf := make([]float32, size)
	var interleaved []float32

	for {
		n, err := src.ReadSamples(buf)
		if n > 0 {
			interleaved = append(interleaved, buf[:n]...)
		}

		if err == io.EOF {
			break
		}

		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrDecode, err)
		}

		if n == 0 {
			// A source that makes no progress without reporting EOF is
			// treated as finished.
			break
		}
	}

	if len(interleaved)%channels != 0 {
		return nil, fmt.Errorf("%w: %d samples is not a whole number of %d channel frames",
			ErrDecode, len(interleaved), channels)
	}

	frames := len(interleaved) / channels
	out := NewBuffer(src.SampleRate(), channels, frames)
	for f := range frames {
		base := f * channels
		for ch := range channels {
			out.Data[ch][f] = float64(interleaved[base+ch])
		}
	}

	return out, nil
}

// BufferSource streams a Buffer as a Source.
type BufferSource struct {
	buf *Buffer
	pos int
}

func NewBufferSource(buf *Buffer) *BufferSource {
	return &BufferSource{buf: buf}
}

func (s *BufferSource) SampleRate() int { return s.buf.SampleRate }
func (s *BufferSource) Channels() int   { return s.buf.Channels() }
func (s *BufferSource) BufSize() int    { return defaultReadSize }
func (s *BufferSource) Close() error    { return nil }

// Reset rewinds the source to the first frame.
func (s *BufferSource) Reset() { s.pos = 0 }

func (s *BufferSource) ReadSamples(dst []float32) (int, error) {
	channels := s.buf.Channels()
	if channels == 0 || s.pos >= s.buf.Len() {
		return 0, io.EOF
	}

	if len(dst) == 0 {
		return 0, nil
	}

	if len(dst) < channels {
		return 0, ErrInvalidDstSize
	}

	frames := min(len(dst)/channels, s.buf.Len()-s.pos)
	for f := range frames {
		for ch := range channels {
			dst[f*channels+ch] = float32(s.buf.Data[ch][s.pos+f])
		}
	}
	s.pos += frames

	if s.pos >= s.buf.Len() {
		return frames * channels, io.EOF
	}

	return frames * channels, nil
}
