// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"

	"github.com/ik5/stemsep/utils"
)

// Resampler streams from src to a target sample rate using Catmull-Rom
// interpolation over a four frame history. Channel count is preserved.
// When downsampling a one-pole low-pass is applied to incoming frames.
type Resampler struct {
	src      Source
	dstRate  int
	step     float64 // source frames advanced per output frame
	channels int

	// hist[0..3] hold source frames index-1 .. index+2
	hist  [4][]float32
	index int     // source index held in hist[1]
	frac  float64 // position between hist[1] and hist[2]
	count int     // real frames pulled from src so far
	last  int     // index of the final source frame, -1 while unknown

	in     []float32
	inPos  int
	inLen  int
	srcEOF bool

	started bool
	done    bool

	lowpass bool
	alpha   float32
	state   []float32
	warm    bool
}

func NewResampler(src Source, dstRate int) *Resampler {
	channels := max(src.Channels(), 1)
	step := float64(src.SampleRate()) / float64(dstRate)

	r := &Resampler{
		src:      src,
		dstRate:  dstRate,
		step:     step,
		channels: channels,
		last:     -1,
		in:       make([]float32, max(src.BufSize()-src.BufSize()%channels, channels*1024)),
		lowpass:  step > 1.0,
		alpha:    0.5,
		state:    make([]float32, channels),
	}

	for i := range r.hist {
		r.hist[i] = make([]float32, channels)
	}

	return r
}

func (r *Resampler) SampleRate() int { return r.dstRate }
func (r *Resampler) Channels() int   { return r.channels }
func (r *Resampler) BufSize() int    { return r.src.BufSize() }

func (r *Resampler) Close() error {
	err := r.src.Close()
	if err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}

// load copies the next source frame into dst. It reports false once the
// source is exhausted.
func (r *Resampler) load(dst []float32) (bool, error) {
	for r.inPos >= r.inLen {
		if r.srcEOF {
			return false, nil
		}

		n, err := r.src.ReadSamples(r.in)
		r.inLen = n - n%r.channels
		r.inPos = 0

		if err == io.EOF {
			r.srcEOF = true
		} else if err != nil {
			return false, fmt.Errorf("%w", err)
		}

		if r.inLen == 0 && !r.srcEOF {
			// no progress without EOF, stop rather than spin
			r.srcEOF = true
		}
	}

	copy(dst, r.in[r.inPos:r.inPos+r.channels])
	r.inPos += r.channels
	r.count++

	if r.lowpass {
		if !r.warm {
			copy(r.state, dst)
			r.warm = true
		}
		for c := range r.channels {
			dst[c] = r.alpha*dst[c] + (1-r.alpha)*r.state[c]
			r.state[c] = dst[c]
		}
	}

	return true, nil
}

// fill loads hist[k] or repeats hist[k-1] when the source has ended.
func (r *Resampler) fill(k int) error {
	ok, err := r.load(r.hist[k])
	if err != nil {
		return err
	}
	if !ok {
		copy(r.hist[k], r.hist[k-1])
		if r.last < 0 {
			r.last = r.count - 1
		}
	}
	return nil
}

func (r *Resampler) prime() error {
	r.started = true

	ok, err := r.load(r.hist[1])
	if err != nil {
		return err
	}
	if !ok {
		r.done = true
		return io.EOF
	}
	copy(r.hist[0], r.hist[1])

	if err := r.fill(2); err != nil {
		return err
	}
	return r.fill(3)
}

func (r *Resampler) advance() error {
	r.hist[0], r.hist[1], r.hist[2], r.hist[3] = r.hist[1], r.hist[2], r.hist[3], r.hist[0]
	r.index++
	return r.fill(3)
}

// ReadSamples produces dst samples at the target rate.
// dst length should be a multiple of the channel count.
func (r *Resampler) ReadSamples(dst []float32) (int, error) {
	if len(dst)%r.channels != 0 {
		return 0, ErrInvalidDstSize
	}
	if r.done {
		return 0, io.EOF
	}

	if !r.started {
		if err := r.prime(); err != nil {
			return 0, err
		}
	}

	frames := len(dst) / r.channels
	written := 0

	for written < frames {
		for r.frac >= 1.0 {
			r.frac -= 1.0
			if err := r.advance(); err != nil {
				return written * r.channels, err
			}
		}

		if r.last >= 0 && (r.index > r.last || (r.index == r.last && r.frac > 0)) {
			r.done = true
			break
		}

		t := float32(r.frac)
		out := dst[written*r.channels : (written+1)*r.channels]
		for c := range out {
			out[c] = utils.CubicInterpolate(r.hist[0][c], r.hist[1][c], r.hist[2][c], r.hist[3][c], t)
		}

		written++
		r.frac += r.step
	}

	if r.done {
		if written == 0 {
			return 0, io.EOF
		}
		return written * r.channels, io.EOF
	}

	return written * r.channels, nil
}
