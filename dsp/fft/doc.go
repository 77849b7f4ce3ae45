// Package fft implements the spectral transform pair used by the STFT engine
// and the cepstrum codec, together with the conjugate-symmetry helpers for
// real signals.
//
// Normalization is fixed: [Transform.Forward] divides the unnormalized DFT by
// L/2 and [Transform.Inverse] divides the unnormalized inverse DFT by 2, so
// Inverse(Forward(x)) == x. A unit-amplitude sinusoid on an exact bin shows
// up with magnitude 1 in that bin and in its mirror.
//
// Power-of-two lengths from 8 up run on an algo-fft plan; other even lengths
// use gonum's mixed-radix complex FFT.
package fft
