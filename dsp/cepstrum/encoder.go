package cepstrum

import (
	"fmt"
	"iter"

	"github.com/cwbudde/algo-stft/dsp/stream"
)

// Encoder maps a stream of spectra to a stream of cepstral vectors.
type Encoder struct {
	spectra stream.Source[[]complex128]
	codec   *Codec
	order   int
	zeroth  bool
	err     error
}

// NewEncoder returns an Encoder producing order-coefficient vectors.
// The order is checked here, so later failures can only come from
// mis-sized spectra.
func NewEncoder(spectra stream.Source[[]complex128], codec *Codec, order int, includeZeroth bool) (*Encoder, error) {
	if limit := codec.MaxOrder(includeZeroth); order <= 0 || order > limit {
		return nil, fmt.Errorf("%w: %d must be in [1, %d]", ErrInvalidOrder, order, limit)
	}
	return &Encoder{spectra: spectra, codec: codec, order: order, zeroth: includeZeroth}, nil
}

// Next returns the vector of the next spectrum.
func (e *Encoder) Next() (Vector, bool) {
	if e.err != nil {
		return Vector{}, false
	}
	s, ok := e.spectra.Next()
	if !ok {
		return Vector{}, false
	}
	v, err := e.codec.Vector(s, e.order, e.zeroth)
	if err != nil {
		e.err = err
		return Vector{}, false
	}
	return v, true
}

// Err returns the error that stopped the stream, if any.
func (e *Encoder) Err() error {
	if e.err != nil {
		return e.err
	}
	return stream.Err(e.spectra)
}

// All exposes the remaining vectors as a range-over-func sequence.
func (e *Encoder) All() iter.Seq[Vector] {
	return stream.All[Vector](e)
}
