// Package dither converts normalized float samples to integer PCM codes
// with optional rectangular or triangular dither noise.
package dither

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalid reports an unknown dither type, bit depth or amplitude.
var ErrInvalid = errors.New("dither: invalid parameter")

// DitherType selects the probability distribution used for dither noise.
type DitherType int

const (
	// DitherNone applies no dither (plain rounding).
	DitherNone DitherType = iota
	// DitherRectangular uses a uniform PDF one LSB wide.
	DitherRectangular
	// DitherTriangular uses a triangular PDF (TPDF) two LSB wide.
	DitherTriangular

	ditherTypeCount
)

var ditherTypeNames = [ditherTypeCount]string{"none", "rectangular", "triangular"}

// String returns the name of the dither type.
func (dt DitherType) String() string {
	if dt.Valid() {
		return ditherTypeNames[dt]
	}
	return fmt.Sprintf("DitherType(%d)", dt)
}

// Valid reports whether dt is a known dither type.
func (dt DitherType) Valid() bool {
	return dt >= 0 && dt < ditherTypeCount
}

// ParseType maps a case-insensitive name ("none", "rectangular",
// "triangular", or the short forms "rpdf" and "tpdf") to a DitherType.
func ParseType(name string) (DitherType, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "none", "off":
		return DitherNone, nil
	case "rectangular", "rpdf":
		return DitherRectangular, nil
	case "triangular", "tpdf":
		return DitherTriangular, nil
	}
	return DitherNone, fmt.Errorf("%w: dither type %q", ErrInvalid, name)
}
