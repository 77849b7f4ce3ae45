package feature

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Accumulator computes the same mean and covariance as Mean and Covariance
// one vector at a time, without keeping the vectors. It keeps the running
// mean and the sum of squared deviations from it, so a large common offset
// does not cancel the spread.
type Accumulator struct {
	dim   int
	count int
	mean  *mat.VecDense
	m2    *mat.SymDense
	delta *mat.VecDense
}

// NewAccumulator returns an Accumulator for vectors of length dim.
func NewAccumulator(dim int) *Accumulator {
	a := &Accumulator{dim: dim}
	a.Reset()
	return a
}

// Update adds one vector.
func (a *Accumulator) Update(v []float64) error {
	if a.dim <= 0 {
		return ErrEmpty
	}
	if len(v) != a.dim {
		return fmt.Errorf("%w: got %d values, want %d", ErrRagged, len(v), a.dim)
	}

	a.count++
	n := float64(a.count)
	a.delta.SubVec(mat.NewVecDense(a.dim, append([]float64(nil), v...)), a.mean)
	a.mean.AddScaledVec(a.mean, 1/n, a.delta)
	// (x-mean_old)(x-mean_new)^T == (n-1)/n * delta delta^T
	a.m2.SymRankOne(a.m2, (n-1)/n, a.delta)
	return nil
}

// Count returns the number of vectors added since the last Reset.
func (a *Accumulator) Count() int {
	return a.count
}

// Mean returns the running mean.
func (a *Accumulator) Mean() ([]float64, error) {
	if a.count == 0 {
		return nil, ErrEmpty
	}
	out := make([]float64, a.dim)
	for i := range out {
		out[i] = a.mean.AtVec(i)
	}
	return out, nil
}

// Covariance returns the running population covariance (divisor n).
func (a *Accumulator) Covariance() (*mat.SymDense, error) {
	if a.count == 0 {
		return nil, ErrEmpty
	}

	cov := mat.NewSymDense(a.dim, nil)
	cov.ScaleSym(1/float64(a.count), a.m2)
	return cov, nil
}

// Reset clears all accumulated vectors.
func (a *Accumulator) Reset() {
	a.count = 0
	if a.dim <= 0 {
		return
	}
	a.mean = mat.NewVecDense(a.dim, nil)
	a.m2 = mat.NewSymDense(a.dim, nil)
	a.delta = mat.NewVecDense(a.dim, nil)
}
