// Package frame slices a sample stream into overlapping fixed-length frames
// and reassembles a sample stream from such frames by overlap-add.
//
// Both stages are pull-based: they consume their upstream [stream.Source]
// only as far as needed to produce the next element, and each owns exactly
// one circular buffer of one frame length.
//
//	f, _ := frame.NewFramer(stream.FromSlice(samples), 1024, 256)
//	for fr := range f.All() {
//		_ = fr // fr is a fresh []float64 of length 1024
//	}
package frame
