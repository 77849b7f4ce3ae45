package buffer

// Ring is a fixed-length circular buffer of float64 samples.
//
// Position 0 is the slot at the cursor. For a ring that is filled with Push,
// position 0 holds the oldest sample and position Len()-1 the newest.
type Ring struct {
	data   []float64
	cursor int
}

// NewRing returns a zero-filled Ring of the given length.
// Non-positive lengths yield an empty ring on which every method is a no-op.
func NewRing(length int) *Ring {
	if length < 0 {
		length = 0
	}
	return &Ring{data: make([]float64, length)}
}

// Len returns the ring length.
func (r *Ring) Len() int {
	return len(r.data)
}

// Cursor returns the absolute index of position 0.
func (r *Ring) Cursor() int {
	return r.cursor
}

func (r *Ring) index(pos int) int {
	return (r.cursor + pos) % len(r.data)
}

// Push overwrites the slot at the cursor and advances the cursor by one.
func (r *Ring) Push(x float64) {
	if len(r.data) == 0 {
		return
	}
	r.data[r.cursor] = x
	r.cursor = (r.cursor + 1) % len(r.data)
}

// At returns the sample at position pos.
func (r *Ring) At(pos int) float64 {
	return r.data[r.index(pos)]
}

// Set stores x at position pos.
func (r *Ring) Set(pos int, x float64) {
	r.data[r.index(pos)] = x
}

// Add accumulates x into position pos and returns the new value.
func (r *Ring) Add(pos int, x float64) float64 {
	i := r.index(pos)
	r.data[i] += x
	return r.data[i]
}

// Advance moves the cursor forward by n slots.
func (r *Ring) Advance(n int) {
	if len(r.data) == 0 {
		return
	}
	r.cursor = (r.cursor + n) % len(r.data)
}

// CopyTo copies the ring contents in position order into dst and returns the
// number of samples copied, which is min(len(dst), Len()).
func (r *Ring) CopyTo(dst []float64) int {
	n := min(len(dst), len(r.data))
	head := copy(dst[:n], r.data[r.cursor:])
	copy(dst[head:n], r.data[:r.cursor])
	return n
}

// Snapshot returns a newly allocated copy of the ring in position order.
func (r *Ring) Snapshot() []float64 {
	out := make([]float64, len(r.data))
	r.CopyTo(out)
	return out
}

// Reset zeroes the ring and rewinds the cursor.
func (r *Ring) Reset() {
	for i := range r.data {
		r.data[i] = 0
	}
	r.cursor = 0
}
