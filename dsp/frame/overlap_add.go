package frame

import (
	"fmt"
	"iter"

	"github.com/cwbudde/algo-stft/dsp/buffer"
	"github.com/cwbudde/algo-stft/dsp/stream"
)

// OverlapAdder rebuilds a sample stream from frames placed frameShift apart.
//
// Each output sample is the sum of every frame sample covering it. A sample
// is emitted as soon as no later frame can touch it; after the last frame the
// remaining frameLength-frameShift buffered samples are flushed. F frames of
// length L therefore produce F*frameShift + L - frameShift samples.
//
// Exact reconstruction of an analysed stream additionally requires the
// analysis/synthesis window pair to be constant-overlap-add at frameShift.
type OverlapAdder struct {
	frames stream.Source[[]float64]
	shift  int
	ring   *buffer.Ring

	// out holds finalized samples not yet returned by Next.
	out   []float64
	pos   int
	ended bool
	err   error
}

// NewOverlapAdder returns an OverlapAdder over frames. The frame length is
// taken from the first frame; every later frame must have the same length.
func NewOverlapAdder(frames stream.Source[[]float64], frameShift int) (*OverlapAdder, error) {
	if frameShift <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidShift, frameShift)
	}
	if frames == nil {
		return nil, ErrNilSource
	}

	return &OverlapAdder{
		frames: frames,
		shift:  frameShift,
	}, nil
}

// Err returns the contract violation that stopped the stream, if any.
func (o *OverlapAdder) Err() error {
	if o.err != nil {
		return o.err
	}
	return stream.Err(o.frames)
}

// Next returns the next finalized output sample.
func (o *OverlapAdder) Next() (float64, bool) {
	for o.pos >= len(o.out) {
		if o.ended || o.err != nil {
			return 0, false
		}
		o.pull()
	}

	x := o.out[o.pos]
	o.pos++
	return x, true
}

// All exposes the remaining samples as a range-over-func sequence.
func (o *OverlapAdder) All() iter.Seq[float64] {
	return stream.All[float64](o)
}

// pull consumes one frame, or flushes the tail once the frames run out.
func (o *OverlapAdder) pull() {
	o.out = o.out[:0]
	o.pos = 0

	fr, ok := o.frames.Next()
	if !ok {
		o.ended = true
		if o.ring == nil {
			return
		}
		for i := range o.ring.Len() - o.shift {
			o.out = append(o.out, o.ring.At(i))
		}
		return
	}

	if o.ring == nil {
		if len(fr) < o.shift {
			o.err = fmt.Errorf("%w: frame length %d shorter than shift %d", ErrInvalidShift, len(fr), o.shift)
			return
		}
		o.ring = buffer.NewRing(len(fr))
		o.out = make([]float64, 0, o.shift)
	}

	n := o.ring.Len()
	if len(fr) != n {
		o.err = fmt.Errorf("%w: got %d, want %d", ErrFrameLength, len(fr), n)
		return
	}

	// Positions [0, n-shift) hold contributions of earlier frames; positions
	// [n-shift, n) were emitted on the previous hop and are free again.
	overlap := n - o.shift
	for i := range overlap {
		o.ring.Add(i, fr[i])
	}
	for i := overlap; i < n; i++ {
		o.ring.Set(i, fr[i])
	}

	for i := range o.shift {
		o.out = append(o.out, o.ring.At(i))
	}
	o.ring.Advance(o.shift)
}
