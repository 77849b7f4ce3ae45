package window

import (
	"fmt"
	"math"
)

// OverlapEnvelope returns the sum of copies of coeffs placed shift samples
// apart, evaluated over one hop in steady state. A window is
// constant-overlap-add at shift when every value of the envelope is equal.
func OverlapEnvelope(coeffs []float64, shift int) ([]float64, error) {
	if err := validateLength(len(coeffs)); err != nil {
		return nil, err
	}
	if shift <= 0 || shift > len(coeffs) {
		return nil, fmt.Errorf("window overlap shift must be in [1, %d]: %d", len(coeffs), shift)
	}

	env := make([]float64, shift)
	for i := range env {
		for j := i; j < len(coeffs); j += shift {
			env[i] += coeffs[j]
		}
	}

	return env, nil
}

// IsCOLA reports whether coeffs satisfies constant-overlap-add at shift
// within tol, together with the mean envelope level.
func IsCOLA(coeffs []float64, shift int, tol float64) (bool, float64, error) {
	env, err := OverlapEnvelope(coeffs, shift)
	if err != nil {
		return false, 0, err
	}

	lo, hi, sum := math.Inf(1), math.Inf(-1), 0.0
	for _, v := range env {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
		sum += v
	}

	return hi-lo <= tol, sum / float64(len(env)), nil
}

// Squared returns coeffs[i]^2, the effective taper of an analysis/synthesis
// pair that both use coeffs.
func Squared(coeffs []float64) []float64 {
	out := make([]float64, len(coeffs))
	for i, c := range coeffs {
		out[i] = c * c
	}
	return out
}
