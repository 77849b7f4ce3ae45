package cepstrum

import "testing"

func BenchmarkVector(b *testing.B) {
	c, err := NewCodec(1024, 1)
	if err != nil {
		b.Fatal(err)
	}
	s := voicedSpectrum(b, 1024)
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := c.Vector(s, 24, true); err != nil {
			b.Fatal(err)
		}
	}
}
