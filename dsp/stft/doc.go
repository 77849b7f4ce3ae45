// Package stft provides a streaming short-time Fourier transform and its
// overlap-add inverse.
//
// An [Analyzer] frames a sample stream, applies a periodic Hann window and
// transforms each frame. A [Synthesizer] inverts each spectrum, applies the
// same window again, overlap-adds the frames and rescales by [Gain]. For
// frame lengths that are an integer multiple (at least 3) of the shift the
// Hann-squared window sums to a constant, and the first N synthesized
// samples reproduce the N analysed samples.
package stft
