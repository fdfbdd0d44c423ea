// SPDX-License-Identifier: EPL-2.0

// Package aiff decodes AIFF files through github.com/go-audio/aiff.
//
// Big-endian integer PCM at 16, 24 and 32 bits is supported with any channel
// count. The go-audio decoder needs to seek, so plain readers are buffered in
// memory before decoding.
package aiff
