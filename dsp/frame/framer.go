package frame

import (
	"fmt"
	"iter"

	"github.com/cwbudde/algo-stft/dsp/buffer"
	"github.com/cwbudde/algo-stft/dsp/stream"
)

// Framer emits the most recent frameLength samples after every frameShift
// samples read from its source.
//
// The source is followed by frameLength-1 zero samples so that every input
// sample appears in at least one frame. A trailing partial hop is dropped:
// for N input samples the framer yields (N+frameLength-1)/frameShift frames.
type Framer struct {
	src     stream.Source[float64]
	ring    *buffer.Ring
	shift   int
	pad     int
	pending int
	done    bool
}

// NewFramer returns a Framer over src.
// frameLength and frameShift must be positive and frameShift must not exceed
// frameLength.
func NewFramer(src stream.Source[float64], frameLength, frameShift int) (*Framer, error) {
	if err := ValidateShape(frameLength, frameShift); err != nil {
		return nil, err
	}
	if src == nil {
		return nil, ErrNilSource
	}

	return &Framer{
		src:   src,
		ring:  buffer.NewRing(frameLength),
		shift: frameShift,
		pad:   frameLength - 1,
	}, nil
}

// ValidateShape checks the frameLength/frameShift pair shared by all framing
// and synthesis stages.
func ValidateShape(frameLength, frameShift int) error {
	if frameLength <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidLength, frameLength)
	}
	if frameShift <= 0 || frameShift > frameLength {
		return fmt.Errorf("%w: shift %d must be in [1, %d]", ErrInvalidShift, frameShift, frameLength)
	}
	return nil
}

// FrameLength returns the length of every emitted frame.
func (f *Framer) FrameLength() int { return f.ring.Len() }

// FrameShift returns the hop between consecutive frames.
func (f *Framer) FrameShift() int { return f.shift }

// Next returns the next frame. The returned slice is owned by the caller.
func (f *Framer) Next() ([]float64, bool) {
	if f.done {
		return nil, false
	}

	for {
		x, ok := f.src.Next()
		if !ok {
			if f.pad == 0 {
				f.done = true
				return nil, false
			}
			x = 0
			f.pad--
		}

		f.ring.Push(x)
		f.pending++
		if f.pending == f.shift {
			f.pending = 0
			return f.ring.Snapshot(), true
		}
	}
}

// All exposes the remaining frames as a range-over-func sequence.
func (f *Framer) All() iter.Seq[[]float64] {
	return stream.All[[]float64](f)
}

// Count returns the number of frames a Framer yields for n input samples.
func Count(n, frameLength, frameShift int) int {
	if n < 0 || frameShift <= 0 {
		return 0
	}
	return (n + frameLength - 1) / frameShift
}
