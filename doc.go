// SPDX-License-Identifier: EPL-2.0

// Package stemsep splits music into a vocal and an instrumental stem.
//
// The package wires the decoders, the streaming audio pipeline and the
// spectral masking separator into a few convenience calls. Finer control is
// available from the subpackages.
//
// # Supported Formats
//
// NewRegistry knows the following file extensions:
//   - wav: PCM 16/24/32-bit via formats/wav
//   - mp3 via formats/mp3
//   - ogg, oga: Ogg Vorbis via formats/vorbis
//   - aiff, aif: PCM 16/24/32-bit via formats/aiff
//
// # Quick Start
//
//	res, err := stemsep.SeparateFile("song.mp3", stemsep.Options{})
//	if err != nil {
//	    return err
//	}
//
//	files, err := stems.Encode(res, stems.EncodeOptions{BitDepth: 16})
//	if err != nil {
//	    return err
//	}
//	// files["vocals.wav"], files["instrumental.wav"]
//
// # Pipeline
//
// SeparateFile decodes the input, optionally resamples it, folds it to two
// channels and collects it into an audio.Buffer before handing it to the
// Backend:
//
//	decoder -> [audio.Resampler] -> audio.StereoMixer -> audio.ReadAll -> Backend
//
// The default Backend is separator.Separator with separator.DefaultConfig.
//
// # Jobs
//
// Job runs one separation off the caller's goroutine and exposes its State
// (Idle, Running, Done or Failed). Run honours context cancellation and
// deadlines; the separation itself cannot be interrupted, so a cancelled
// job stops waiting and discards the result.
package stemsep
