// SPDX-License-Identifier: EPL-2.0

package separator

import (
	"errors"

	"github.com/ik5/stemsep/audio"
)

var (
	// ErrDecode reports input that is not a rectangular, finite sample buffer.
	ErrDecode = audio.ErrDecode

	// ErrEmptySignal reports input without samples.
	ErrEmptySignal = audio.ErrEmptySignal

	ErrInvalidConfig = errors.New("invalid separator configuration")
)
