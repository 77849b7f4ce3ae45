package stft

type config struct {
	half bool
}

// Option configures an Analyzer or Synthesizer.
type Option func(*config)

// WithHalfSpectrum makes an Analyzer emit only bins [0, L/2] and a
// Synthesizer accept them, rebuilding the remaining bins by conjugate
// symmetry.
func WithHalfSpectrum() Option {
	return func(c *config) { c.half = true }
}

func applyOptions(opts []Option) config {
	var c config
	for _, opt := range opts {
		if opt != nil {
			opt(&c)
		}
	}
	return c
}

// Gain is the amplitude correction applied after overlap-add so that a
// Hann-analysed, Hann-synthesized stream comes back at unit level. The
// frame-length/shift ratio is an integer quotient.
func Gain(frameLength, frameShift int) float64 {
	return 4 / 1.5 / float64(frameLength/frameShift)
}
