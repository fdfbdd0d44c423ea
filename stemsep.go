// SPDX-License-Identifier: EPL-2.0

package stemsep

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/ik5/stemsep/audio"
	"github.com/ik5/stemsep/formats/aiff"
	"github.com/ik5/stemsep/formats/mp3"
	"github.com/ik5/stemsep/formats/vorbis"
	"github.com/ik5/stemsep/formats/wav"
	"github.com/ik5/stemsep/separator"
	"github.com/ik5/stemsep/stems"
)

var ErrUnknownFormat = audio.ErrUnknownFormat

// NewRegistry returns a registry with every bundled decoder registered under
// its file extensions.
func NewRegistry() *audio.Registry {
	r := audio.NewRegistry()

	r.Register("wav", wav.Decoder{})
	r.Register("mp3", mp3.Decoder{})
	r.Register("ogg", vorbis.Decoder{})
	r.Register("oga", vorbis.Decoder{})
	r.Register("aiff", aiff.Decoder{})
	r.Register("aif", aiff.Decoder{})

	return r
}

// Options tunes the convenience pipeline. The zero value decodes with
// NewRegistry, keeps the source sample rate and separates with the default
// separator.
type Options struct {
	// Registry resolves formats, nil means NewRegistry().
	Registry *audio.Registry
	// SampleRate resamples the decoded signal when positive and different
	// from the source rate.
	SampleRate int
	// Backend performs the separation, nil means separator.New(separator.DefaultConfig()).
	Backend separator.Backend
}

func (o Options) registry() *audio.Registry {
	if o.Registry != nil {
		return o.Registry
	}
	return NewRegistry()
}

func (o Options) backend() (separator.Backend, error) {
	if o.Backend != nil {
		return o.Backend, nil
	}

	sep, err := separator.New(separator.DefaultConfig())
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}
	return sep, nil
}

// Decode reads r as format into a two channel buffer.
//
// The decoded stream is resampled when opts.SampleRate asks for it and
// folded to stereo with audio.StereoMixer. Decoder failures wrap
// audio.ErrDecode, an unregistered format returns ErrUnknownFormat.
func Decode(r io.Reader, format string, opts Options) (*audio.Buffer, error) {
	dec, ok := opts.registry().Get(format)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}

	src, err := dec.Decode(r)
	if err != nil {
		if errors.Is(err, audio.ErrDecode) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", audio.ErrDecode, err)
	}
	defer src.Close()

	var pipeline audio.Source = src
	if opts.SampleRate > 0 && opts.SampleRate != src.SampleRate() {
		pipeline = audio.NewResampler(pipeline, opts.SampleRate)
	}
	pipeline = audio.NewStereoMixer(pipeline)

	buf, err := audio.ReadAll(pipeline)
	if err != nil {
		return nil, err
	}

	return buf, nil
}

// SeparateReader decodes r as format and separates it into stems.
//
// Parameters:
//   - r: the encoded audio stream
//   - format: a registry key such as "wav", "mp3" or "ogg"
//   - opts: pipeline options, the zero value is fine
//
// Returns the stems, or an error wrapping ErrUnknownFormat,
// separator.ErrDecode or separator.ErrEmptySignal. A backend that returns
// no stems yields stems.ErrNoResult.
func SeparateReader(r io.Reader, format string, opts Options) (*separator.Result, error) {
	backend, err := opts.backend()
	if err != nil {
		return nil, err
	}

	buf, err := Decode(r, format, opts)
	if err != nil {
		return nil, err
	}

	res, err := backend.Separate(buf)
	if err != nil {
		return nil, fmt.Errorf("separating: %w", err)
	}
	if res == nil || res.Vocals == nil || res.Instrumental == nil {
		return nil, fmt.Errorf("separating: %w", stems.ErrNoResult)
	}

	return res, nil
}

// SeparateFile is SeparateReader for a file, with the format taken from the
// file extension.
func SeparateFile(path string, opts Options) (*separator.Result, error) {
	format, _, err := opts.registry().Lookup(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}
	defer f.Close()

	return SeparateReader(f, format, opts)
}
