// SPDX-License-Identifier: EPL-2.0

// Package spectral implements the short-time Fourier analysis used by the
// separator.
//
// STFT frames are centered: the signal is zero padded by FrameSize/2 on both
// sides, so a signal of n samples yields 1+n/HopSize frames. A periodic Hann
// window is applied before the real FFT and ISTFT divides the windowed
// overlap-add by the squared window envelope, which makes
//
//	ISTFT(STFT(x))
//
// reproduce x up to floating point error.
//
// Spectrograms are stored frame-major: Frames[t][f] holds bin f of frame t,
// with FrameSize/2+1 bins per frame.
//
// NNFilter estimates the repeating background of a magnitude spectrogram by
// replacing each frame with the per-bin median of its most similar frames.
// SoftMask turns a pair of magnitude estimates into a Wiener-like mask.
package spectral
