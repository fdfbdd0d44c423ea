// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/ik5/stemsep/audio"
	"github.com/ik5/stemsep/utils"
)

const headerSize = 44

// header builds the canonical 44 byte RIFF/WAVE header for integer PCM.
func header(sampleRate, channels, bitDepth, frames int) []byte {
	bytesPerSample := bitDepth / 8
	blockAlign := channels * bytesPerSample
	dataSize := uint32(frames * blockAlign)

	h := make([]byte, headerSize)

	copy(h[0:4], "RIFF")
	binary.LittleEndian.PutUint32(h[4:8], 36+dataSize)
	copy(h[8:12], "WAVE")

	copy(h[12:16], "fmt ")
	binary.LittleEndian.PutUint32(h[16:20], 16) // PCM fmt chunk size
	binary.LittleEndian.PutUint16(h[20:22], formatPCM)
	binary.LittleEndian.PutUint16(h[22:24], uint16(channels))
	binary.LittleEndian.PutUint32(h[24:28], uint32(sampleRate))
	binary.LittleEndian.PutUint32(h[28:32], uint32(sampleRate*blockAlign))
	binary.LittleEndian.PutUint16(h[32:34], uint16(blockAlign))
	binary.LittleEndian.PutUint16(h[34:36], uint16(bitDepth))

	copy(h[36:40], "data")
	binary.LittleEndian.PutUint32(h[40:44], dataSize)

	return h
}

// WritePCM writes buf as an interleaved little-endian PCM WAV file.
// bitDepth must be 16 or 24. Samples outside [-1,1] are clamped.
func WritePCM(w io.Writer, buf *audio.Buffer, bitDepth int) error {
	if bitDepth != 16 && bitDepth != 24 {
		return fmt.Errorf("%w: cannot write %d-bit", ErrUnsupportedBitDepth, bitDepth)
	}

	channels := buf.Channels()
	if channels == 0 || buf.SampleRate <= 0 {
		return fmt.Errorf("%w: %d channels at %d Hz", ErrUnsupportedWavLayout, channels, buf.SampleRate)
	}

	frames := buf.Len()
	if _, err := w.Write(header(buf.SampleRate, channels, bitDepth, frames)); err != nil {
		return fmt.Errorf("%w", err)
	}

	// Write in chunks of whole frames
	const chunkFrames = 4096
	bytesPerSample := bitDepth / 8
	out := make([]byte, min(frames, chunkFrames)*channels*bytesPerSample)

	for start := 0; start < frames; start += chunkFrames {
		end := min(start+chunkFrames, frames)
		p := out[:(end-start)*channels*bytesPerSample]

		off := 0
		for i := start; i < end; i++ {
			for ch := range channels {
				v := utils.FloatToPCM(buf.Data[ch][i], bitDepth)
				if bytesPerSample == 2 {
					binary.LittleEndian.PutUint16(p[off:], uint16(int16(v)))
				} else {
					p[off] = byte(v)
					p[off+1] = byte(v >> 8)
					p[off+2] = byte(v >> 16)
				}
				off += bytesPerSample
			}
		}

		if _, err := w.Write(p); err != nil {
			return fmt.Errorf("%w", err)
		}
	}

	return nil
}

// WriteWAV16 writes a mono 16-bit PCM WAV at sampleRate.  samples must be int16 PCM.
func WriteWAV16(w io.Writer, sampleRate int, samples []int16) error {
	if _, err := w.Write(header(sampleRate, 1, 16, len(samples))); err != nil {
		return fmt.Errorf("%w", err)
	}

	p := make([]byte, len(samples)*2)
	for i, s := range samples {
		binary.LittleEndian.PutUint16(p[i*2:], uint16(s))
	}

	if _, err := w.Write(p); err != nil {
		return fmt.Errorf("%w", err)
	}

	return nil
}
