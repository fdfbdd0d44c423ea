package audio

import (
	"errors"
	"io"
	"math"
	"testing"

	"github.com/ik5/stemsep/internal/audiotest"
)

func TestMixFrame(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		frame       []float32
		left, right float32
	}{
		{"empty", nil, 0, 0},
		{"mono", []float32{0.3}, 0.3, 0.3},
		{"stereo", []float32{0.1, -0.2}, 0.1, -0.2},
		{"three", []float32{0.2, 0.4, 0.6}, 0.4, 0.4},
		{"5.1", []float32{0.6, 0, 0, 0.6, 0, 0}, 0.2, 0.2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			l, r := mixFrame(tt.frame)
			if math.Abs(float64(l-tt.left)) > 1e-6 || math.Abs(float64(r-tt.right)) > 1e-6 {
				t.Errorf("mixFrame(%v) = (%v, %v), want (%v, %v)", tt.frame, l, r, tt.left, tt.right)
			}
		})
	}
}

func TestStereoMixer_MonoDuplicates(t *testing.T) {
	t.Parallel()

	mixer := NewStereoMixer(audiotest.NewSineSource(8000, 1, 500, 300))
	if mixer.Channels() != 2 {
		t.Fatalf("Channels() = %d, want 2", mixer.Channels())
	}

	buf, err := ReadAll(mixer)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}

	if buf.Len() != 500 {
		t.Fatalf("Len() = %d, want 500", buf.Len())
	}
	for i := range buf.Len() {
		if buf.Data[0][i] != buf.Data[1][i] {
			t.Fatalf("frame %d: left %v != right %v", i, buf.Data[0][i], buf.Data[1][i])
		}
	}
}

func TestStereoMixer_StereoPassthrough(t *testing.T) {
	t.Parallel()

	src := audiotest.NewToneSource(8000, 2, 300, 500)
	want := src.Samples()

	buf, err := ReadAll(NewStereoMixer(src))
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}

	for ch := range 2 {
		for i := range want[ch] {
			if buf.Data[ch][i] != want[ch][i] {
				t.Fatalf("Data[%d][%d] = %v, want %v", ch, i, buf.Data[ch][i], want[ch][i])
			}
		}
	}
}

func TestStereoMixer_Multichannel(t *testing.T) {
	t.Parallel()

	src := audiotest.NewMockSource(8000, 4, 100, func(sample, channel int) float32 {
		return float32(channel) * 0.1
	})

	buf, err := ReadAll(NewStereoMixer(src))
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}

	// left averages channels 0 and 2, right averages 1 and 3
	if math.Abs(buf.Data[0][0]-0.1) > 1e-6 || math.Abs(buf.Data[1][0]-0.2) > 1e-6 {
		t.Errorf("frame 0 = (%v, %v), want (0.1, 0.2)", buf.Data[0][0], buf.Data[1][0])
	}
}

func TestStereoMixer_OddDst(t *testing.T) {
	t.Parallel()

	mixer := NewStereoMixer(audiotest.NewSilentSource(8000, 1, 10))
	if _, err := mixer.ReadSamples(make([]float32, 3)); !errors.Is(err, ErrInvalidDstSize) {
		t.Errorf("ReadSamples() error = %v, want ErrInvalidDstSize", err)
	}
}

func TestStereoMixer_EOF(t *testing.T) {
	t.Parallel()

	mixer := NewStereoMixer(audiotest.NewSilentSource(8000, 1, 0))
	n, err := mixer.ReadSamples(make([]float32, 8))
	if n != 0 || err != io.EOF {
		t.Errorf("ReadSamples() = (%d, %v), want (0, EOF)", n, err)
	}
}

func TestStereoMixer_PartialFrame(t *testing.T) {
	t.Parallel()

	for _, channels := range []int{4, 5} {
		dst := make([]float32, 16)
		_, err := NewStereoMixer(&partialSource{channels: channels}).ReadSamples(dst)
		if !errors.Is(err, ErrDecode) {
			t.Errorf("%d channels: ReadSamples() error = %v, want ErrDecode", channels, err)
		}
	}

	// the mixer and ReadAll agree on a truncated multichannel stream
	if _, err := ReadAll(NewStereoMixer(&partialSource{channels: 5})); !errors.Is(err, ErrDecode) {
		t.Errorf("ReadAll(mixer) error = %v, want ErrDecode", err)
	}
}
