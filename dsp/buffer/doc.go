// Package buffer provides the fixed-size circular buffer used by the framing
// and overlap-add stages. A Ring is an array plus a modulo cursor: it never
// reallocates after construction, and all indices passed to its methods are
// relative to the cursor.
package buffer
