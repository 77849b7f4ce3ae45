package fft

import "errors"

// Errors returned by transform construction and spectrum reshaping.
var (
	ErrInvalidLength  = errors.New("fft: invalid transform length")
	ErrLengthMismatch = errors.New("fft: buffer length mismatch")
	ErrInvalidRatio   = errors.New("fft: invalid cutoff ratio")
)
