package fft

import (
	"fmt"
	"math/cmplx"
)

// Half returns bins [0, L/2] of a spectrum of even length L. The remaining
// bins of a real signal's spectrum are conjugates of these and are dropped.
// No bin is rescaled.
func Half(spectrum []complex128) []complex128 {
	n := len(spectrum)/2 + 1
	if len(spectrum) == 0 {
		n = 0
	}

	out := make([]complex128, n)
	copy(out, spectrum)

	return out
}

// Mirror rebuilds a full spectrum of length 2*(len(half)-1) from a half
// spectrum. Bins (L/2, L) are the conjugates of bins (0, L/2) in reverse
// order; the DC and Nyquist bins are copied unchanged, so
// Mirror(Half(s)) == s for any conjugate-symmetric s.
func Mirror(half []complex128) ([]complex128, error) {
	if len(half) < 2 {
		return nil, fmt.Errorf("%w: half spectrum needs at least 2 bins, got %d", ErrLengthMismatch, len(half))
	}

	n := 2 * (len(half) - 1)
	out := make([]complex128, n)
	copy(out, half)
	for i := 1; i < len(half)-1; i++ {
		out[n-i] = cmplx.Conj(half[i])
	}

	return out, nil
}

// Cutoff band-limits spectrum to length C = L/ratio by keeping DC, the C/2
// lowest positive-frequency bins and their C/2-1 negative-frequency
// partners from the end of spectrum.
//
// When ratio > 1 the new Nyquist bin C/2 is stored as the real magnitude
// |spectrum[L-C/2]|: this keeps a conjugate-symmetric input symmetric while
// preserving the bin's power. Cutoff(s, 1) is an exact copy of s.
func Cutoff(spectrum []complex128, ratio int) ([]complex128, error) {
	l := len(spectrum)
	if ratio < 1 || ratio > l || l%ratio != 0 {
		return nil, fmt.Errorf("%w: %d for spectrum length %d", ErrInvalidRatio, ratio, l)
	}

	c := l / ratio
	cut := make([]complex128, c)
	if ratio == 1 {
		copy(cut, spectrum)
		return cut, nil
	}

	cut[0] = spectrum[0]
	for i := 1; i <= c/2; i++ {
		cut[i] = spectrum[i]
		cut[c-i] = spectrum[l-i]
	}
	if c%2 == 0 && c >= 2 {
		cut[c/2] = complex(cmplx.Abs(spectrum[l-c/2]), 0)
	}

	return cut, nil
}
