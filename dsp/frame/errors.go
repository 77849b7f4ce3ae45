package frame

import "errors"

// Errors returned by frame constructors and reported through Err.
var (
	ErrInvalidLength = errors.New("frame: invalid frame length")
	ErrInvalidShift  = errors.New("frame: invalid frame shift")
	ErrNilSource     = errors.New("frame: nil source")
	ErrFrameLength   = errors.New("frame: frame length mismatch")
)
