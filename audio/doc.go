// SPDX-License-Identifier: EPL-2.0

// Package audio holds the signal types shared by the decoders and the
// separator.
//
// A Source streams interleaved float32 samples:
//
//	type Source interface {
//	    SampleRate() int
//	    Channels() int
//	    ReadSamples(dst []float32) (int, error)
//	    BufSize() int
//	    Close() error
//	}
//
// Sources chain. A decoded file can be converted to another rate with
// NewResampler and folded to two channels with NewStereoMixer before
// ReadAll collects it into a planar Buffer:
//
//	src := audio.NewStereoMixer(audio.NewResampler(decoded, 44100))
//	buf, err := audio.ReadAll(src)
//
// Buffer is the in-memory form the separator works on. Data is indexed
// as Data[channel][sample] and Validate reports malformed buffers with
// ErrDecode and zero-length ones with ErrEmptySignal.
//
// Registry maps lower-cased file extensions to Decoders.
package audio
