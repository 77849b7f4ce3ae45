// Package spectrum provides per-bin helpers over complex spectra produced by
// the transform stage: power, magnitude, phase, real/imaginary extraction
// and floored log-power in decibels.
//
// The package intentionally does not implement FFT itself.
package spectrum
