package fft

import (
	"fmt"

	algofft "github.com/MeKo-Christian/algo-fft"
	"gonum.org/v1/gonum/dsp/fourier"
)

// backend computes unnormalized DFTs of a fixed length.
type backend interface {
	forward(dst, src []complex128) error
	inverse(dst, src []complex128) error
}

// planBackend wraps an algo-fft plan. algo-fft normalizes its inverse by
// 1/n, which inverse undoes.
type planBackend struct {
	plan *algofft.Plan[complex128]
	n    float64
}

func newPlanBackend(n int) (*planBackend, error) {
	plan, err := algofft.NewPlan64(n)
	if err != nil {
		return nil, fmt.Errorf("fft: failed to create FFT plan: %w", err)
	}
	return &planBackend{plan: plan, n: float64(n)}, nil
}

func (b *planBackend) forward(dst, src []complex128) error {
	if err := b.plan.Forward(dst, src); err != nil {
		return fmt.Errorf("fft: forward FFT failed: %w", err)
	}
	return nil
}

func (b *planBackend) inverse(dst, src []complex128) error {
	if err := b.plan.Inverse(dst, src); err != nil {
		return fmt.Errorf("fft: inverse FFT failed: %w", err)
	}
	scale := complex(b.n, 0)
	for i := range dst {
		dst[i] *= scale
	}
	return nil
}

// gonumBackend handles even lengths that are not powers of two, and the
// tiny power-of-two lengths below minPlanLength.
type gonumBackend struct {
	fft *fourier.CmplxFFT
}

func newGonumBackend(n int) *gonumBackend {
	return &gonumBackend{fft: fourier.NewCmplxFFT(n)}
}

func (b *gonumBackend) forward(dst, src []complex128) error {
	b.fft.Coefficients(dst, src)
	return nil
}

func (b *gonumBackend) inverse(dst, src []complex128) error {
	b.fft.Sequence(dst, src)
	return nil
}

const minPlanLength = 8

func newBackend(n int) (backend, error) {
	if n >= minPlanLength && isPowerOf2(n) {
		return newPlanBackend(n)
	}
	return newGonumBackend(n), nil
}

func isPowerOf2(n int) bool {
	return n > 0 && n&(n-1) == 0
}
