package dither

import (
	"errors"
	"testing"
)

func TestDitherTypeString(t *testing.T) {
	tests := []struct {
		dt   DitherType
		want string
	}{
		{DitherNone, "none"},
		{DitherRectangular, "rectangular"},
		{DitherTriangular, "triangular"},
		{DitherType(99), "DitherType(99)"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.dt.String(); got != tt.want {
				t.Errorf("DitherType(%d).String() = %q, want %q", tt.dt, got, tt.want)
			}
		})
	}
}

func TestParseType(t *testing.T) {
	tests := []struct {
		in   string
		want DitherType
	}{
		{"", DitherNone},
		{"none", DitherNone},
		{"Off", DitherNone},
		{"rectangular", DitherRectangular},
		{"RPDF", DitherRectangular},
		{"triangular", DitherTriangular},
		{" tpdf ", DitherTriangular},
	}
	for _, tt := range tests {
		got, err := ParseType(tt.in)
		if err != nil {
			t.Fatalf("ParseType(%q): %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ParseType(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}

	if _, err := ParseType("gaussian"); !errors.Is(err, ErrInvalid) {
		t.Errorf("ParseType(gaussian) error = %v, want ErrInvalid", err)
	}
}
