// SPDX-License-Identifier: EPL-2.0

// Package wav reads and writes WAV files.
//
// Decoding goes through github.com/go-audio/wav and accepts integer PCM at
// 16, 24 or 32 bits, any channel count and any sample rate. Input that cannot
// seek is buffered in memory first.
//
//	src, err := wav.Decoder{}.Decode(file)
//	if errors.Is(err, wav.ErrNotWavFile) {
//	    // not RIFF/WAVE
//	}
//
// # Writing
//
// WritePCM encodes a planar audio.Buffer as interleaved 16 or 24-bit PCM
// with a canonical 44 byte header. Samples are rounded and clamped to the
// integer range, so stems that overshoot [-1,1] slightly do not wrap:
//
//	err := wav.WritePCM(out, stem, 16)
//
// WriteWAV16 is kept for callers that already hold mono int16 PCM.
package wav
