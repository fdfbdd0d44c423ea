// SPDX-License-Identifier: EPL-2.0

package audio

import "errors"

var (
	ErrInvalidDstSize = errors.New("dst size must be multiple of channels")

	// ErrDecode reports input that cannot be interpreted as a rectangular
	// buffer of finite audio samples.
	ErrDecode = errors.New("cannot decode audio samples")

	// ErrEmptySignal reports a buffer without any samples.
	ErrEmptySignal = errors.New("empty audio signal")

	// ErrUnknownFormat is returned when no decoder is registered for a format.
	ErrUnknownFormat = errors.New("unknown audio format")
)
