package dither

import (
	"errors"
	"math"
	"testing"
)

func TestNewQuantizerValidation(t *testing.T) {
	tests := []struct {
		name string
		bits int
		opts []Option
	}{
		{"zero bits", 0, nil},
		{"one bit", 1, nil},
		{"too many bits", 33, nil},
		{"bad dither type", 16, []Option{WithDitherType(DitherType(99))}},
		{"negative amplitude", 16, []Option{WithDitherAmplitude(-1)}},
		{"NaN amplitude", 16, []Option{WithDitherAmplitude(math.NaN())}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewQuantizer(tt.bits, tt.opts...)
			if !errors.Is(err, ErrInvalid) {
				t.Errorf("error = %v, want ErrInvalid", err)
			}
		})
	}
}

func TestNewQuantizerDefaults(t *testing.T) {
	q, err := NewQuantizer(16, nil)
	if err != nil {
		t.Fatal(err)
	}
	if q.BitDepth() != 16 {
		t.Errorf("BitDepth() = %d, want 16", q.BitDepth())
	}
	if q.DitherType() != DitherNone {
		t.Errorf("DitherType() = %v, want none", q.DitherType())
	}
	if q.DitherAmplitude() != 1 {
		t.Errorf("DitherAmplitude() = %v, want 1", q.DitherAmplitude())
	}
}

func TestQuantizeRounding(t *testing.T) {
	tests := []struct {
		bits int
		in   float64
		want int
	}{
		{16, 0, 0},
		{16, 1, 32767},
		{16, -1, -32767},
		{16, 2, 32767},
		{16, -2, -32767},
		{16, 0.5, 16384},
		{8, 1, 127},
		{8, -1, -127},
		{8, 0.25, 32},
		{24, 1, 8388607},
		{32, -1, -2147483647},
	}
	for _, tt := range tests {
		q, err := NewQuantizer(tt.bits)
		if err != nil {
			t.Fatal(err)
		}
		if got := q.Quantize(tt.in); got != tt.want {
			t.Errorf("bits=%d Quantize(%v) = %d, want %d", tt.bits, tt.in, got, tt.want)
		}
	}
}

func TestQuantizeDitherStaysWithinLimits(t *testing.T) {
	for _, dt := range []DitherType{DitherRectangular, DitherTriangular} {
		q, err := NewQuantizer(8, WithDitherType(dt), WithDitherAmplitude(4), WithSeed(7))
		if err != nil {
			t.Fatal(err)
		}
		for _, x := range []float64{-1, 1} {
			for range 1000 {
				got := q.Quantize(x)
				if got < -128 || got > 127 {
					t.Fatalf("%v: Quantize(%v) = %d outside [-128, 127]", dt, x, got)
				}
			}
		}
	}
}

func TestQuantizeTriangularDitherIsUnbiased(t *testing.T) {
	q, err := NewQuantizer(16, WithDitherType(DitherTriangular), WithSeed(42))
	if err != nil {
		t.Fatal(err)
	}

	// A constant a quarter LSB above zero rounds to 0 without dither; with
	// TPDF dither the average code tracks the input.
	in := 0.25 / 32767
	const n = 200000
	var sum float64
	spread := map[int]bool{}
	for range n {
		c := q.Quantize(in)
		sum += float64(c)
		spread[c] = true
	}
	mean := sum / n
	if math.Abs(mean-0.25) > 0.01 {
		t.Errorf("mean code = %.4f, want 0.25", mean)
	}
	for c := range spread {
		if c < -1 || c > 2 {
			t.Errorf("code %d outside TPDF support [-1, 2]", c)
		}
	}
}

func TestQuantizeSeedIsReproducible(t *testing.T) {
	src := []float64{0.1, -0.2, 0.3, 0.4, -0.5}
	a, _ := NewQuantizer(16, WithDitherType(DitherTriangular), WithSeed(3))
	b, _ := NewQuantizer(16, WithDitherType(DitherTriangular), WithSeed(3))

	got := a.QuantizeBlock(nil, src)
	want := b.QuantizeBlock(make([]int, 0, 16), src)
	if len(got) != len(src) {
		t.Fatalf("len = %d, want %d", len(got), len(src))
	}
	for i := range got {
		if got[i] != want[i] {
			t.Errorf("[%d] got=%d want=%d", i, got[i], want[i])
		}
	}
}
