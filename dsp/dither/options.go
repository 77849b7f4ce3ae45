package dither

import (
	"fmt"
	"math"
	"math/rand/v2"
)

const (
	defaultDitherType      = DitherNone
	defaultDitherAmplitude = 1.0
	minBitDepth            = 2
	maxBitDepth            = 32
)

type config struct {
	ditherType      DitherType
	ditherAmplitude float64
	rng             *rand.Rand
}

func defaultConfig() config {
	return config{
		ditherType:      defaultDitherType,
		ditherAmplitude: defaultDitherAmplitude,
	}
}

// Option configures a [Quantizer].
type Option func(*config) error

// WithDitherType sets the dither noise PDF (default [DitherNone]).
func WithDitherType(dt DitherType) Option {
	return func(cfg *config) error {
		if !dt.Valid() {
			return fmt.Errorf("%w: dither type %d", ErrInvalid, dt)
		}
		cfg.ditherType = dt
		return nil
	}
}

// WithDitherAmplitude scales the dither noise in LSB (default 1.0, must be >= 0).
func WithDitherAmplitude(amp float64) Option {
	return func(cfg *config) error {
		if amp < 0 || math.IsNaN(amp) || math.IsInf(amp, 0) {
			return fmt.Errorf("%w: amplitude must be >= 0 and finite: %f", ErrInvalid, amp)
		}
		cfg.ditherAmplitude = amp
		return nil
	}
}

// WithSeed makes the dither noise reproducible.
func WithSeed(seed uint64) Option {
	return WithRNG(rand.New(rand.NewPCG(seed, 0)))
}

// WithRNG sets the random number generator used for dither noise.
func WithRNG(rng *rand.Rand) Option {
	return func(cfg *config) error {
		cfg.rng = rng
		return nil
	}
}
