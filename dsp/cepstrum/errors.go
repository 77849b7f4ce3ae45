package cepstrum

import "errors"

// Errors returned by the codec.
var (
	ErrInvalidOrder   = errors.New("cepstrum: invalid order")
	ErrLengthMismatch = errors.New("cepstrum: length mismatch")
)
