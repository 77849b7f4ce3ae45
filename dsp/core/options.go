package core

import (
	"errors"
	"fmt"
)

// Errors returned by Params.Validate.
var (
	ErrFrameShape  = errors.New("core: invalid frame length/shift")
	ErrCutoffRatio = errors.New("core: invalid cutoff ratio")
	ErrOrder       = errors.New("core: invalid cepstral order")
)

// Params is the fixed parameter set of one analysis pipeline.
// SampleRate is metadata carried for callers; no stage inspects it.
type Params struct {
	SampleRate    float64
	FrameLength   int
	FrameShift    int
	CutoffRatio   int
	Order         int
	IncludeZeroth bool
}

// Option mutates a Params.
type Option func(*Params)

// DefaultParams returns a 1024/256 Hann STFT with a 24-coefficient
// cepstrum including the zeroth term.
func DefaultParams() Params {
	return Params{
		SampleRate:    48000,
		FrameLength:   1024,
		FrameShift:    256,
		CutoffRatio:   1,
		Order:         24,
		IncludeZeroth: true,
	}
}

// WithSampleRate sets the sample rate metadata.
func WithSampleRate(sampleRate float64) Option {
	return func(p *Params) {
		if sampleRate > 0 {
			p.SampleRate = sampleRate
		}
	}
}

// WithFrameLength sets the frame length.
func WithFrameLength(n int) Option {
	return func(p *Params) { p.FrameLength = n }
}

// WithFrameShift sets the hop between frames.
func WithFrameShift(n int) Option {
	return func(p *Params) { p.FrameShift = n }
}

// WithCutoffRatio sets the cepstrum band-limiting ratio.
func WithCutoffRatio(n int) Option {
	return func(p *Params) { p.CutoffRatio = n }
}

// WithOrder sets the number of cepstral coefficients kept.
func WithOrder(n int) Option {
	return func(p *Params) { p.Order = n }
}

// WithZeroth selects whether the log-energy coefficient is kept.
func WithZeroth(include bool) Option {
	return func(p *Params) { p.IncludeZeroth = include }
}

// NewParams applies opts to the defaults and validates the result.
// Invalid parameters are reported, never clamped.
func NewParams(opts ...Option) (Params, error) {
	p := DefaultParams()
	for _, opt := range opts {
		if opt != nil {
			opt(&p)
		}
	}
	return p, p.Validate()
}

// CepstrumLength returns the number of bins left after the cutoff ratio is
// applied, FrameLength/CutoffRatio.
func (p Params) CepstrumLength() int {
	if p.CutoffRatio <= 0 {
		return 0
	}
	return p.FrameLength / p.CutoffRatio
}

// MaxOrder returns the largest valid Order for the current frame length,
// cutoff ratio and zeroth-coefficient choice.
func (p Params) MaxOrder() int {
	n := p.CepstrumLength()
	if !p.IncludeZeroth {
		n--
	}
	return max(n, 0)
}

// Validate reports the first violated precondition.
func (p Params) Validate() error {
	if p.FrameLength <= 0 || p.FrameLength%2 != 0 {
		return fmt.Errorf("%w: frame length %d must be positive and even", ErrFrameShape, p.FrameLength)
	}
	if p.FrameShift <= 0 || p.FrameShift > p.FrameLength {
		return fmt.Errorf("%w: frame shift %d must be in [1, %d]", ErrFrameShape, p.FrameShift, p.FrameLength)
	}
	if p.CutoffRatio < 1 || p.CutoffRatio > p.FrameLength || p.FrameLength%p.CutoffRatio != 0 {
		return fmt.Errorf("%w: %d must divide frame length %d", ErrCutoffRatio, p.CutoffRatio, p.FrameLength)
	}
	if c := p.CepstrumLength(); c < 2 || c%2 != 0 {
		return fmt.Errorf("%w: %d leaves %d bins, need an even count >= 2", ErrCutoffRatio, p.CutoffRatio, c)
	}
	if p.Order <= 0 || p.Order > p.MaxOrder() {
		return fmt.Errorf("%w: %d must be in [1, %d]", ErrOrder, p.Order, p.MaxOrder())
	}
	return nil
}
