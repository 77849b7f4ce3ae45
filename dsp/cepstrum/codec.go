package cepstrum

import (
	"fmt"

	"github.com/cwbudde/algo-stft/dsp/fft"
	"github.com/cwbudde/algo-stft/dsp/spectrum"
)

// Vector is a truncated cepstrum. IncludesZeroth records whether Coeffs[0]
// is the zeroth (log-energy) coefficient or the first quefrency bin.
type Vector struct {
	Coeffs         []float64
	IncludesZeroth bool
}

// Order returns the number of coefficients held.
func (v Vector) Order() int { return len(v.Coeffs) }

// Codec converts full STFT spectra of one frame length into cepstral
// vectors and back. A Codec caches transforms and is not safe for
// concurrent use.
type Codec struct {
	frameLength int
	ratio       int
	length      int
	transforms  map[int]*fft.Transform
}

// NewCodec returns a Codec for spectra of frameLength bins, band-limited to
// frameLength/cutoffRatio bins before the log. cutoffRatio must divide
// frameLength and leave an even bin count of at least 2.
func NewCodec(frameLength, cutoffRatio int) (*Codec, error) {
	if frameLength <= 0 || frameLength%2 != 0 {
		return nil, fmt.Errorf("%w: frame length %d (must be positive and even)", fft.ErrInvalidLength, frameLength)
	}
	if cutoffRatio < 1 || cutoffRatio > frameLength || frameLength%cutoffRatio != 0 {
		return nil, fmt.Errorf("%w: %d for frame length %d", fft.ErrInvalidRatio, cutoffRatio, frameLength)
	}

	c := &Codec{
		frameLength: frameLength,
		ratio:       cutoffRatio,
		length:      frameLength / cutoffRatio,
		transforms:  make(map[int]*fft.Transform),
	}
	if c.length < 2 || c.length%2 != 0 {
		return nil, fmt.Errorf("%w: %d leaves %d bins, need an even count >= 2", fft.ErrInvalidRatio, cutoffRatio, c.length)
	}
	if _, err := c.transform(c.length); err != nil {
		return nil, err
	}

	return c, nil
}

// FrameLength returns the expected spectrum length.
func (c *Codec) FrameLength() int { return c.frameLength }

// Len returns the cepstrum length, FrameLength()/cutoffRatio.
func (c *Codec) Len() int { return c.length }

// MaxOrder returns the largest order Vector accepts.
func (c *Codec) MaxOrder(includeZeroth bool) int {
	if includeZeroth {
		return c.length
	}
	return c.length - 1
}

func (c *Codec) transform(n int) (*fft.Transform, error) {
	if t, ok := c.transforms[n]; ok {
		return t, nil
	}
	t, err := fft.NewTransform(n)
	if err != nil {
		return nil, err
	}
	c.transforms[n] = t
	return t, nil
}

func (c *Codec) checkSpectrum(s []complex128) error {
	if len(s) != c.frameLength {
		return fmt.Errorf("%w: spectrum has %d bins, want %d", ErrLengthMismatch, len(s), c.frameLength)
	}
	return nil
}

// LogPowerSpectrum returns the band-limited dB power spectrum of s, with
// exact silence floored so every value is finite.
func (c *Codec) LogPowerSpectrum(s []complex128) ([]float64, error) {
	if err := c.checkSpectrum(s); err != nil {
		return nil, err
	}

	cut, err := fft.Cutoff(s, c.ratio)
	if err != nil {
		return nil, err
	}

	return spectrum.PowerDB(cut), nil
}

// Coefficients returns the full real cepstrum of s, Len() values.
func (c *Codec) Coefficients(s []complex128) ([]float64, error) {
	logspec, err := c.LogPowerSpectrum(s)
	if err != nil {
		return nil, err
	}

	t, err := c.transform(c.length)
	if err != nil {
		return nil, err
	}
	ceps, err := t.Forward(logspec)
	if err != nil {
		return nil, err
	}

	return spectrum.Real(ceps), nil
}

// Vector returns order coefficients of the cepstrum of s, starting at the
// zeroth coefficient when includeZeroth is set and at the first otherwise.
func (c *Codec) Vector(s []complex128, order int, includeZeroth bool) (Vector, error) {
	if limit := c.MaxOrder(includeZeroth); order <= 0 || order > limit {
		return Vector{}, fmt.Errorf("%w: %d must be in [1, %d]", ErrInvalidOrder, order, limit)
	}

	ceps, err := c.Coefficients(s)
	if err != nil {
		return Vector{}, err
	}

	start := 1
	if includeZeroth {
		start = 0
	}

	return Vector{
		Coeffs:         append([]float64(nil), ceps[start:start+order]...),
		IncludesZeroth: includeZeroth,
	}, nil
}

// RestoreLogSpectrum rebuilds a targetLength-point dB log spectrum from v.
// Coefficient i is written to quefrency bins i and targetLength-i, every
// other bin is zero, and the result is the real part of the inverse
// transform. Without the zeroth coefficient the restored spectrum has zero
// mean. When the vector reaches past targetLength/2 the later coefficients
// overwrite the mirrored positions of the earlier ones.
func (c *Codec) RestoreLogSpectrum(v Vector, targetLength int) ([]float64, error) {
	if targetLength < 2 || targetLength%2 != 0 {
		return nil, fmt.Errorf("%w: target length %d must be even and >= 2", ErrLengthMismatch, targetLength)
	}

	n := v.Order()
	limit := targetLength
	if !v.IncludesZeroth {
		limit--
	}
	if n > limit {
		return nil, fmt.Errorf("%w: %d coefficients do not fit %d bins", ErrLengthMismatch, n, targetLength)
	}

	quef := make([]complex128, targetLength)
	if v.IncludesZeroth {
		if n > 0 {
			quef[0] = complex(v.Coeffs[0], 0)
		}
		for i := 1; i < n; i++ {
			quef[i] = complex(v.Coeffs[i], 0)
			quef[targetLength-i] = quef[i]
		}
	} else {
		for i, x := range v.Coeffs {
			quef[i+1] = complex(x, 0)
			quef[targetLength-i-1] = quef[i+1]
		}
	}

	t, err := c.transform(targetLength)
	if err != nil {
		return nil, err
	}
	return t.InverseReal(quef)
}

// Envelope returns the log spectrum restored from the first order
// coefficients (zeroth included) of s, on the Len()-point grid.
func (c *Codec) Envelope(s []complex128, order int) ([]float64, error) {
	v, err := c.Vector(s, order, true)
	if err != nil {
		return nil, err
	}
	return c.RestoreLogSpectrum(v, c.length)
}
