// Package feature summarizes sequences of fixed-length feature vectors,
// such as per-frame cepstral coefficients, by their mean and population
// covariance.
package feature

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// Errors returned for malformed input.
var (
	ErrEmpty  = errors.New("feature: no vectors")
	ErrRagged = errors.New("feature: vectors differ in length")
)

// matrix packs vectors as the rows of a dense matrix.
func matrix(vectors [][]float64) (*mat.Dense, error) {
	if len(vectors) == 0 || len(vectors[0]) == 0 {
		return nil, ErrEmpty
	}

	dim := len(vectors[0])
	data := make([]float64, 0, len(vectors)*dim)
	for i, v := range vectors {
		if len(v) != dim {
			return nil, fmt.Errorf("%w: vector %d has %d values, want %d", ErrRagged, i, len(v), dim)
		}
		data = append(data, v...)
	}

	return mat.NewDense(len(vectors), dim, data), nil
}

// Mean returns the element-wise mean of vectors.
func Mean(vectors [][]float64) ([]float64, error) {
	m, err := matrix(vectors)
	if err != nil {
		return nil, err
	}

	_, dim := m.Dims()
	out := make([]float64, dim)
	for j := range out {
		out[j] = stat.Mean(mat.Col(nil, j, m), nil)
	}
	return out, nil
}

// Covariance returns the population covariance of vectors (divisor n, not
// n-1). A single vector has zero covariance.
func Covariance(vectors [][]float64) (*mat.SymDense, error) {
	m, err := matrix(vectors)
	if err != nil {
		return nil, err
	}

	n, dim := m.Dims()
	if n == 1 {
		return mat.NewSymDense(dim, nil), nil
	}

	var cov mat.SymDense
	stat.CovarianceMatrix(&cov, m, nil)
	cov.ScaleSym(float64(n-1)/float64(n), &cov)
	return &cov, nil
}

// Rows flattens a symmetric matrix into row slices, for tabular output.
func Rows(s mat.Symmetric) [][]float64 {
	n := s.SymmetricDim()
	out := make([][]float64, n)
	for i := range out {
		out[i] = make([]float64, n)
		for j := range out[i] {
			out[i][j] = s.At(i, j)
		}
	}
	return out
}
