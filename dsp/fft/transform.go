package fft

import "fmt"

// Transform is the forward/inverse spectral transform for one frame length.
// A Transform is not safe for concurrent use; independent pipelines should
// each own one.
type Transform struct {
	length  int
	backend backend
}

// NewTransform returns a Transform for frames of the given length, which
// must be positive and even.
func NewTransform(length int) (*Transform, error) {
	if length <= 0 || length%2 != 0 {
		return nil, fmt.Errorf("%w: %d (must be positive and even)", ErrInvalidLength, length)
	}

	b, err := newBackend(length)
	if err != nil {
		return nil, err
	}

	return &Transform{length: length, backend: b}, nil
}

// Len returns the transform length.
func (t *Transform) Len() int {
	return t.length
}

// Forward returns the spectrum of a real frame, every bin divided by L/2.
func (t *Transform) Forward(frame []float64) ([]complex128, error) {
	if len(frame) != t.length {
		return nil, fmt.Errorf("%w: expected %d samples, got %d", ErrLengthMismatch, t.length, len(frame))
	}

	buf := make([]complex128, t.length)
	for i, x := range frame {
		buf[i] = complex(x, 0)
	}

	return t.forwardInPlace(buf)
}

// ForwardComplex is Forward for complex input. x is left unchanged.
func (t *Transform) ForwardComplex(x []complex128) ([]complex128, error) {
	if len(x) != t.length {
		return nil, fmt.Errorf("%w: expected %d bins, got %d", ErrLengthMismatch, t.length, len(x))
	}

	buf := make([]complex128, t.length)
	copy(buf, x)

	return t.forwardInPlace(buf)
}

func (t *Transform) forwardInPlace(buf []complex128) ([]complex128, error) {
	out := make([]complex128, t.length)
	if err := t.backend.forward(out, buf); err != nil {
		return nil, err
	}

	half := float64(t.length / 2)
	for i, c := range out {
		out[i] = complex(real(c)/half, imag(c)/half)
	}

	return out, nil
}

// Inverse returns the unnormalized inverse DFT of spectrum with every bin
// divided by 2. spectrum is left unchanged.
func (t *Transform) Inverse(spectrum []complex128) ([]complex128, error) {
	if len(spectrum) != t.length {
		return nil, fmt.Errorf("%w: expected %d bins, got %d", ErrLengthMismatch, t.length, len(spectrum))
	}

	src := make([]complex128, t.length)
	copy(src, spectrum)
	out := make([]complex128, t.length)
	if err := t.backend.inverse(out, src); err != nil {
		return nil, err
	}

	for i := range out {
		out[i] *= 0.5
	}

	return out, nil
}

// InverseReal returns the real part of Inverse(spectrum).
func (t *Transform) InverseReal(spectrum []complex128) ([]float64, error) {
	seq, err := t.Inverse(spectrum)
	if err != nil {
		return nil, err
	}

	out := make([]float64, len(seq))
	for i, c := range seq {
		out[i] = real(c)
	}

	return out, nil
}
