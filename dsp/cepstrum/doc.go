// Package cepstrum encodes the spectral envelope of an STFT frame as a short
// vector of real cepstral coefficients and decodes it back to a smoothed
// log-power spectrum.
//
// The cepstrum is the forward transform of the dB log-power spectrum after
// an optional band limit (the cutoff ratio). Keeping only the first few
// coefficients and restoring the log spectrum from them acts as a low-pass
// lifter: the result follows the envelope and drops the harmonic fine
// structure.
package cepstrum
