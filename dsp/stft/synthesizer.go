package stft

import (
	"fmt"
	"iter"

	"github.com/cwbudde/algo-stft/dsp/fft"
	"github.com/cwbudde/algo-stft/dsp/frame"
	"github.com/cwbudde/algo-stft/dsp/stream"
	"github.com/cwbudde/algo-stft/dsp/window"
)

// Synthesizer turns a stream of spectra back into samples.
//
// The overlap-add output lags the analysed input by frameLength-frameShift
// samples; the Synthesizer drops that lead-in so output sample i lines up
// with input sample i. F spectra yield F*frameShift samples.
type Synthesizer struct {
	spectra stream.Source[[]complex128]
	ola     *frame.OverlapAdder
	tr      *fft.Transform
	win     []float64
	gain    float64
	bins    int
	half    bool
	skip    int
	err     error
}

// NewSynthesizer returns a Synthesizer over spectra. The frame shape
// constraints are the same as for NewAnalyzer.
func NewSynthesizer(spectra stream.Source[[]complex128], frameLength, frameShift int, opts ...Option) (*Synthesizer, error) {
	cfg := applyOptions(opts)

	if err := frame.ValidateShape(frameLength, frameShift); err != nil {
		return nil, err
	}
	if spectra == nil {
		return nil, frame.ErrNilSource
	}

	tr, err := fft.NewTransform(frameLength)
	if err != nil {
		return nil, err
	}

	win, err := window.Hann(frameLength, window.WithPeriodic())
	if err != nil {
		return nil, err
	}

	s := &Synthesizer{
		spectra: spectra,
		tr:      tr,
		win:     win,
		gain:    Gain(frameLength, frameShift),
		bins:    frameLength,
		half:    cfg.half,
		skip:    frameLength - frameShift,
	}
	if s.half {
		s.bins = frameLength/2 + 1
	}

	s.ola, err = frame.NewOverlapAdder(stream.Func[[]float64](s.nextFrame), frameShift)
	if err != nil {
		return nil, err
	}

	return s, nil
}

// nextFrame converts the next spectrum into a windowed frame.
func (s *Synthesizer) nextFrame() ([]float64, bool) {
	if s.err != nil {
		return nil, false
	}

	spec, ok := s.spectra.Next()
	if !ok {
		return nil, false
	}

	if len(spec) != s.bins {
		s.err = fmt.Errorf("%w: got %d bins, want %d", ErrSpectrumLength, len(spec), s.bins)
		return nil, false
	}

	if s.half {
		full, err := fft.Mirror(spec)
		if err != nil {
			s.err = err
			return nil, false
		}
		spec = full
	}

	seq, err := s.tr.InverseReal(spec)
	if err != nil {
		s.err = err
		return nil, false
	}

	fr, err := window.ApplyCoefficients(seq, s.win)
	if err != nil {
		s.err = err
		return nil, false
	}

	return fr, true
}

// Next returns the next output sample.
func (s *Synthesizer) Next() (float64, bool) {
	for s.skip > 0 {
		if _, ok := s.ola.Next(); !ok || s.err != nil {
			return 0, false
		}
		s.skip--
	}

	x, ok := s.ola.Next()
	if s.err != nil {
		// The overlap-adder flushes its tail when the frames stop; after a
		// bad spectrum that tail is not valid output.
		return 0, false
	}
	return x * s.gain, ok
}

// Err returns the error that stopped the stream, if any.
func (s *Synthesizer) Err() error {
	if s.err != nil {
		return s.err
	}
	if err := s.ola.Err(); err != nil {
		return err
	}
	return stream.Err(s.spectra)
}

// All exposes the remaining samples as a range-over-func sequence.
func (s *Synthesizer) All() iter.Seq[float64] {
	return stream.All[float64](s)
}

// Synthesize runs a Synthesizer over a slice of spectra.
func Synthesize(spectra [][]complex128, frameLength, frameShift int, opts ...Option) ([]float64, error) {
	s, err := NewSynthesizer(stream.FromSlice(spectra), frameLength, frameShift, opts...)
	if err != nil {
		return nil, err
	}
	return stream.Collect[float64](s)
}
