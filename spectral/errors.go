// SPDX-License-Identifier: EPL-2.0

package spectral

import "errors"

var (
	ErrInvalidFrameSize = errors.New("frame size must be at least 2")
	ErrInvalidHopSize   = errors.New("hop size must be positive and smaller than the frame size")
	ErrShapeMismatch    = errors.New("spectrogram shapes do not match")
)
