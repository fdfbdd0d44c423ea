// SPDX-License-Identifier: EPL-2.0

package separator

import (
	"fmt"
	"slices"

	"github.com/ik5/stemsep/audio"
	"github.com/ik5/stemsep/spectral"
)

// Result holds the two stems. Both have the sample rate, channel count and
// length of the normalized input.
type Result struct {
	Vocals       *audio.Buffer
	Instrumental *audio.Buffer
}

// Masks are the soft masks applied per channel, indexed [channel][frame][bin].
// Channels may share backing arrays when the input was mono.
type Masks struct {
	Vocal        [][][]float64
	Instrumental [][][]float64
}

// Backend separates a decoded signal into stems.
type Backend interface {
	Separate(buf *audio.Buffer) (*Result, error)
}

// Separator is the spectral masking Backend.
type Separator struct {
	cfg Config
}

var _ Backend = (*Separator)(nil)

func New(cfg Config) (*Separator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Separator{cfg: cfg}, nil
}

func (s *Separator) Config() Config { return s.cfg }

// Separate runs the default configuration over buf.
func Separate(buf *audio.Buffer) (*Result, error) {
	return (&Separator{cfg: DefaultConfig()}).Separate(buf)
}

func (s *Separator) Separate(buf *audio.Buffer) (*Result, error) {
	res, _, err := s.Analyze(buf)
	return res, err
}

// Analyze is Separate that also returns the masks it applied.
func (s *Separator) Analyze(buf *audio.Buffer) (*Result, *Masks, error) {
	if err := buf.Validate(); err != nil {
		return nil, nil, err
	}

	stereo := buf.Stereo()
	n := stereo.Len()

	res := &Result{
		Vocals:       audio.NewBuffer(stereo.SampleRate, 2, n),
		Instrumental: audio.NewBuffer(stereo.SampleRate, 2, n),
	}
	masks := &Masks{
		Vocal:        make([][][]float64, 2),
		Instrumental: make([][][]float64, 2),
	}

	for ch, samples := range stereo.Data {
		if ch > 0 && slices.Equal(samples, stereo.Data[0]) {
			copy(res.Vocals.Data[ch], res.Vocals.Data[0])
			copy(res.Instrumental.Data[ch], res.Instrumental.Data[0])
			masks.Vocal[ch] = masks.Vocal[0]
			masks.Instrumental[ch] = masks.Instrumental[0]
			continue
		}

		out, err := s.channel(samples)
		if err != nil {
			return nil, nil, fmt.Errorf("channel %d: %w", ch, err)
		}

		copy(res.Vocals.Data[ch], out.vocals)
		copy(res.Instrumental.Data[ch], out.instrumental)
		masks.Vocal[ch] = out.vocalMask
		masks.Instrumental[ch] = out.instrumentalMask
	}

	return res, masks, nil
}

type channelResult struct {
	vocals, instrumental        []float64
	vocalMask, instrumentalMask [][]float64
}

func (s *Separator) channel(samples []float64) (*channelResult, error) {
	cfg := s.cfg

	spec, err := spectral.STFT(samples, cfg.FrameSize, cfg.HopSize)
	if err != nil {
		return nil, err
	}

	mag, phase := spectral.MagPhase(spec)
	bg := spectral.NNFilter(mag, spectral.FilterOptions{
		Width:     cfg.Width,
		Radius:    cfg.Radius,
		Neighbors: cfg.Neighbors,
	})

	// NNFilter already clamps bg to mag, so the residual is non-negative
	residual := make([][]float64, len(mag))
	scaledResidual := make([][]float64, len(mag))
	scaledBg := make([][]float64, len(mag))
	for t := range mag {
		residual[t] = make([]float64, len(mag[t]))
		scaledResidual[t] = make([]float64, len(mag[t]))
		scaledBg[t] = make([]float64, len(mag[t]))
		for f := range mag[t] {
			r := mag[t][f] - bg[t][f]
			residual[t][f] = r
			scaledResidual[t][f] = cfg.MarginInstrumental * r
			scaledBg[t][f] = cfg.MarginVocal * bg[t][f]
		}
	}

	instrumentalMask, err := spectral.SoftMask(bg, scaledResidual, cfg.Power)
	if err != nil {
		return nil, err
	}
	vocalMask, err := spectral.SoftMask(residual, scaledBg, cfg.Power)
	if err != nil {
		return nil, err
	}

	vocals, err := resynthesize(spec, vocalMask, mag, phase)
	if err != nil {
		return nil, err
	}
	instrumental, err := resynthesize(spec, instrumentalMask, mag, phase)
	if err != nil {
		return nil, err
	}

	return &channelResult{
		vocals:           vocals,
		instrumental:     instrumental,
		vocalMask:        vocalMask,
		instrumentalMask: instrumentalMask,
	}, nil
}

func resynthesize(spec *spectral.Spectrogram, mask, mag [][]float64, phase [][]complex128) ([]float64, error) {
	masked, err := spectral.Compose(spec, mask, mag, phase)
	if err != nil {
		return nil, err
	}

	return spectral.ISTFT(masked)
}
