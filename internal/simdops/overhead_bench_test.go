package simdops

import (
	"testing"

	"github.com/tphakala/simd/f64"
)

// Wavelet filters are short (2-8 taps), so the indirect call through the Ops
// struct must not dominate the dot product itself. These benchmarks compare
// direct package calls against the Ops indirection at filter-sized and
// bulk-sized operands.

func benchSlices(n int) (a, b []float64) {
	a = make([]float64, n)
	b = make([]float64, n)
	for i := range a {
		a[i] = float64(i) * 0.01
		b[i] = float64(i) * 0.02
	}
	return a, b
}

func BenchmarkDotProductDirect8(b *testing.B) {
	x, y := benchSlices(8)
	b.ReportAllocs()
	for b.Loop() {
		_ = f64.DotProductUnsafe(x, y)
	}
}

func BenchmarkDotProductIndirect8(b *testing.B) {
	ops := For[float64]()
	x, y := benchSlices(8)
	b.ReportAllocs()
	for b.Loop() {
		_ = ops.DotProductUnsafe(x, y)
	}
}

func BenchmarkDotProductDirect1024(b *testing.B) {
	x, y := benchSlices(1024)
	b.ReportAllocs()
	for b.Loop() {
		_ = f64.DotProductUnsafe(x, y)
	}
}

func BenchmarkDotProductIndirect1024(b *testing.B) {
	ops := For[float64]()
	x, y := benchSlices(1024)
	b.ReportAllocs()
	for b.Loop() {
		_ = ops.DotProductUnsafe(x, y)
	}
}

func BenchmarkConvolveValidIndirect(b *testing.B) {
	ops := For[float64]()
	signal, _ := benchSlices(4096)
	kernel, _ := benchSlices(8)
	dst := make([]float64, len(signal)-len(kernel)+1)
	b.ReportAllocs()
	for b.Loop() {
		ops.ConvolveValid(dst, signal, kernel)
	}
}
