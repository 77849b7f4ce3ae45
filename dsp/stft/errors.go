package stft

import "errors"

// ErrSpectrumLength is reported by [Synthesizer.Err] when an input spectrum
// does not have the length implied by the frame length.
var ErrSpectrumLength = errors.New("stft: spectrum length mismatch")
