// Package signal generates deterministic test signals as sample streams.
package signal

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/cwbudde/algo-stft/dsp/stream"
)

// Generator creates unbounded deterministic signals at one sample rate.
// Bound them with stream.Take.
type Generator struct {
	sampleRate float64
	seed       int64
}

// Option configures a Generator.
type Option func(*Generator)

// WithSeed sets deterministic random seed for noise generation.
func WithSeed(seed int64) Option {
	return func(g *Generator) {
		g.seed = seed
	}
}

// NewGenerator creates a generator for the given sample rate.
func NewGenerator(sampleRate float64, opts ...Option) (*Generator, error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("signal: sample rate must be > 0: %f", sampleRate)
	}

	g := &Generator{sampleRate: sampleRate, seed: 1}
	for _, opt := range opts {
		if opt != nil {
			opt(g)
		}
	}
	return g, nil
}

// SampleRate returns the generator sample rate in Hz.
func (g *Generator) SampleRate() float64 {
	return g.sampleRate
}

// Sine returns amplitude*sin(2*pi*freqHz*n/sampleRate).
func (g *Generator) Sine(freqHz, amplitude float64) stream.Source[float64] {
	step := 2 * math.Pi * freqHz / g.sampleRate
	n := 0
	return stream.Func[float64](func() (float64, bool) {
		x := amplitude * math.Sin(step*float64(n))
		n++
		return x, true
	})
}

// Harmonics returns a tone with count harmonics of f0, harmonic h at
// amplitude/h. Harmonics at or above Nyquist are left out, so the envelope
// of its spectrum falls off by 6 dB per octave up to the last partial.
func (g *Generator) Harmonics(f0, amplitude float64, count int) (stream.Source[float64], error) {
	if f0 <= 0 || count <= 0 {
		return nil, fmt.Errorf("signal: harmonics need f0 > 0 and count > 0: %f, %d", f0, count)
	}

	var steps []float64
	for h := 1; h <= count && float64(h)*f0 < g.sampleRate/2; h++ {
		steps = append(steps, 2*math.Pi*float64(h)*f0/g.sampleRate)
	}

	n := 0
	return stream.Func[float64](func() (float64, bool) {
		x := 0.0
		for i, step := range steps {
			x += amplitude / float64(i+1) * math.Sin(step*float64(n))
		}
		n++
		return x, true
	}), nil
}

// WhiteNoise returns deterministic white noise in [-amplitude, amplitude].
func (g *Generator) WhiteNoise(amplitude float64) (stream.Source[float64], error) {
	if amplitude < 0 {
		return nil, fmt.Errorf("signal: noise amplitude must be >= 0: %f", amplitude)
	}
	rng := rand.New(rand.NewSource(g.seed))
	return stream.Func[float64](func() (float64, bool) {
		return (rng.Float64()*2 - 1) * amplitude, true
	}), nil
}

// Normalize scales data to target peak amplitude and returns a new slice.
func Normalize(data []float64, targetPeak float64) ([]float64, error) {
	if targetPeak < 0 {
		return nil, fmt.Errorf("signal: normalize target peak must be >= 0: %f", targetPeak)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("signal: normalize input must not be empty")
	}

	maxAbs := 0.0
	for _, v := range data {
		maxAbs = math.Max(maxAbs, math.Abs(v))
	}

	out := make([]float64, len(data))
	if maxAbs == 0 || targetPeak == 0 {
		return out, nil
	}

	scale := targetPeak / maxAbs
	for i, v := range data {
		out[i] = v * scale
	}
	return out, nil
}
