// SPDX-License-Identifier: EPL-2.0

// Package separator splits a music signal into a vocal and an instrumental
// estimate by spectral masking.
//
// The input is normalized to two channels, analysed with an STFT and each
// frame's repeating background is estimated with a nearest-neighbour
// median filter over similar frames. What the background does not explain
// is treated as the vocal foreground. Two soft masks are derived from the
// background and the residual and applied to the mixture before
// resynthesis:
//
//	res, err := separator.Separate(buf)
//	if err != nil {
//	    return err
//	}
//	vocals, instrumental := res.Vocals, res.Instrumental
//
// The masks are computed independently, so vocals + instrumental is not
// required to add up to the input.
package separator
