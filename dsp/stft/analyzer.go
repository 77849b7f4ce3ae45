package stft

import (
	"iter"

	"github.com/cwbudde/algo-stft/dsp/fft"
	"github.com/cwbudde/algo-stft/dsp/frame"
	"github.com/cwbudde/algo-stft/dsp/stream"
	"github.com/cwbudde/algo-stft/dsp/window"
)

// Analyzer turns a sample stream into a stream of spectra, one per frame.
type Analyzer struct {
	src    stream.Source[float64]
	framer *frame.Framer
	tr     *fft.Transform
	win    []float64
	half   bool
	err    error
}

// NewAnalyzer returns an Analyzer over samples. frameLength must be positive
// and even; frameShift must be in [1, frameLength].
func NewAnalyzer(samples stream.Source[float64], frameLength, frameShift int, opts ...Option) (*Analyzer, error) {
	cfg := applyOptions(opts)

	framer, err := frame.NewFramer(samples, frameLength, frameShift)
	if err != nil {
		return nil, err
	}

	tr, err := fft.NewTransform(frameLength)
	if err != nil {
		return nil, err
	}

	win, err := window.Hann(frameLength, window.WithPeriodic())
	if err != nil {
		return nil, err
	}

	return &Analyzer{
		src:    samples,
		framer: framer,
		tr:     tr,
		win:    win,
		half:   cfg.half,
	}, nil
}

// Next returns the spectrum of the next frame: frameLength bins, or
// frameLength/2+1 with WithHalfSpectrum.
func (a *Analyzer) Next() ([]complex128, bool) {
	if a.err != nil {
		return nil, false
	}

	fr, ok := a.framer.Next()
	if !ok {
		return nil, false
	}

	windowed, err := window.ApplyCoefficients(fr, a.win)
	if err != nil {
		a.err = err
		return nil, false
	}

	spec, err := a.tr.Forward(windowed)
	if err != nil {
		a.err = err
		return nil, false
	}

	if a.half {
		return fft.Half(spec), true
	}
	return spec, true
}

// Err returns the error that stopped the stream, if any.
func (a *Analyzer) Err() error {
	if a.err != nil {
		return a.err
	}
	return stream.Err(a.src)
}

// All exposes the remaining spectra as a range-over-func sequence.
func (a *Analyzer) All() iter.Seq[[]complex128] {
	return stream.All[[]complex128](a)
}

// Analyze runs an Analyzer over a slice of samples.
func Analyze(samples []float64, frameLength, frameShift int, opts ...Option) ([][]complex128, error) {
	a, err := NewAnalyzer(stream.FromSlice(samples), frameLength, frameShift, opts...)
	if err != nil {
		return nil, err
	}
	return stream.Collect[[]complex128](a)
}
