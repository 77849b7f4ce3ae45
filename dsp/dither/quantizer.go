package dither

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/cwbudde/algo-stft/dsp/core"
)

// Quantizer maps normalized samples in [-1, 1] to signed integer PCM
// codes of a fixed bit depth, optionally adding dither noise before
// rounding. Full scale maps to ±(2^(bits-1)-1); results are limited to
// [-2^(bits-1), 2^(bits-1)-1].
type Quantizer struct {
	bitDepth        int
	ditherType      DitherType
	ditherAmplitude float64
	rng             *rand.Rand

	peak    float64
	limitLo float64
	limitHi float64
}

// NewQuantizer creates a Quantizer for bitDepth-bit output. Without
// options it rounds to the nearest code and adds no noise.
func NewQuantizer(bitDepth int, opts ...Option) (*Quantizer, error) {
	if bitDepth < minBitDepth || bitDepth > maxBitDepth {
		return nil, fmt.Errorf("%w: bit depth must be in [%d, %d]: %d", ErrInvalid, minBitDepth, maxBitDepth, bitDepth)
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	q := &Quantizer{
		bitDepth:        bitDepth,
		ditherType:      cfg.ditherType,
		ditherAmplitude: cfg.ditherAmplitude,
		rng:             cfg.rng,
	}
	if q.rng == nil {
		q.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	half := math.Exp2(float64(bitDepth - 1))
	q.peak = half - 1
	q.limitLo = -half
	q.limitHi = half - 1

	return q, nil
}

// Quantize returns the integer code for input. Inputs outside [-1, 1]
// are clipped before scaling.
func (q *Quantizer) Quantize(input float64) int {
	scaled := core.Clamp(input, -1, 1)*q.peak + q.noise()
	return int(core.Clamp(math.Round(scaled), q.limitLo, q.limitHi))
}

// QuantizeBlock quantizes src into dst and returns dst[:len(src)]. dst is
// grown when its capacity is too small.
func (q *Quantizer) QuantizeBlock(dst []int, src []float64) []int {
	if cap(dst) < len(src) {
		dst = make([]int, len(src))
	}
	dst = dst[:len(src)]
	for i, x := range src {
		dst[i] = q.Quantize(x)
	}
	return dst
}

func (q *Quantizer) noise() float64 {
	switch q.ditherType {
	case DitherRectangular:
		return q.ditherAmplitude * (q.rng.Float64() - 0.5)
	case DitherTriangular:
		return q.ditherAmplitude * (q.rng.Float64() - q.rng.Float64())
	default:
		return 0
	}
}

// BitDepth returns the target bit depth.
func (q *Quantizer) BitDepth() int { return q.bitDepth }

// DitherType returns the dither noise type.
func (q *Quantizer) DitherType() DitherType { return q.ditherType }

// DitherAmplitude returns the dither noise amplitude in LSB.
func (q *Quantizer) DitherAmplitude() float64 { return q.ditherAmplitude }
