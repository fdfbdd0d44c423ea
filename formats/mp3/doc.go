// SPDX-License-Identifier: EPL-2.0

// Package mp3 decodes MPEG-1/2 Layer III audio with github.com/hajimehoshi/go-mp3.
//
// The decoder always yields two interleaved channels; mono MP3 files are
// already duplicated by go-mp3.
package mp3
