package stream

import "iter"

// Source yields elements one at a time in stream order.
// Next returns false once the source is exhausted; after that every further
// call must also return false.
type Source[T any] interface {
	Next() (T, bool)
}

// Failer is implemented by sources that can stop because of a contract
// violation. Err returns nil when the source ended normally.
type Failer interface {
	Err() error
}

// Err returns the error recorded by src, if src implements [Failer].
func Err[T any](src Source[T]) error {
	if f, ok := src.(Failer); ok {
		return f.Err()
	}
	return nil
}

// SliceSource adapts a slice as a [Source]. Elements are returned without
// copying.
type SliceSource[T any] struct {
	items []T
	pos   int
}

// FromSlice returns a Source over items.
func FromSlice[T any](items []T) *SliceSource[T] {
	return &SliceSource[T]{items: items}
}

// Next returns the next slice element.
func (s *SliceSource[T]) Next() (T, bool) {
	if s.pos >= len(s.items) {
		var zero T
		return zero, false
	}
	v := s.items[s.pos]
	s.pos++
	return v, true
}

// Remaining returns the number of elements not yet consumed.
func (s *SliceSource[T]) Remaining() int {
	return len(s.items) - s.pos
}

// Func adapts a generator function as a [Source].
type Func[T any] func() (T, bool)

// Next calls f.
func (f Func[T]) Next() (T, bool) {
	return f()
}

// Take limits src to at most n elements.
func Take[T any](src Source[T], n int) Source[T] {
	return Func[T](func() (T, bool) {
		if n <= 0 {
			var zero T
			return zero, false
		}
		n--
		return src.Next()
	})
}

// All exposes src as a range-over-func sequence. Breaking out of the loop
// leaves the remaining elements unconsumed.
func All[T any](src Source[T]) iter.Seq[T] {
	return func(yield func(T) bool) {
		for {
			v, ok := src.Next()
			if !ok || !yield(v) {
				return
			}
		}
	}
}

// Collect drains src into a slice and returns the error reported by src,
// if any.
func Collect[T any](src Source[T]) ([]T, error) {
	var out []T
	for v := range All(src) {
		out = append(out, v)
	}
	return out, Err(src)
}
