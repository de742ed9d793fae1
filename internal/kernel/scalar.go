package kernel

import "github.com/tphakala/go-wavelet/internal/simdops"

// scalarKernel is the reference implementation. Every other kernel variant is
// verified against its output. Operations are applied in increasing output
// index order with left-to-right tap accumulation.
type scalarKernel[F simdops.Float] struct{}

// NewScalar returns the scalar reference kernel.
func NewScalar[F simdops.Float]() Kernel[F] {
	return scalarKernel[F]{}
}

func (scalarKernel[F]) Name() string { return "scalar" }

// isPowerOfTwo reports whether n is a positive power of two.
func isPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}

// noWrapEnd returns one past the last decimated output index whose full tap
// window 2i..2i+taps-1 stays inside a signal of length n.
func noWrapEnd(n, taps int) int {
	if taps > n {
		return 0
	}
	return (n-taps)/2 + 1
}

func (k scalarKernel[F]) Analyze(approx, detail, signal, low, high []F, b Boundary, from, to int) {
	n := len(signal)
	taps := len(low)

	// Unrolled fast paths for the two most common filter lengths.
	switch taps {
	case 2:
		k.analyze2(approx, detail, signal, low, high, b, from, to)
		return
	case 4:
		k.analyze4(approx, detail, signal, low, high, b, from, to)
		return
	}

	interior := clampRange(noWrapEnd(n, taps), from, to)

	// Interior: the tap window never leaves the signal, both modes agree.
	for i := from; i < interior; i++ {
		base := 2 * i
		var a, d F
		for j := range taps {
			s := signal[base+j]
			a += low[j] * s
			d += high[j] * s
		}
		approx[i] = a
		detail[i] = d
	}

	// Boundary: wrap (periodic) or drop (zero-padding) out-of-range taps.
	for i := interior; i < to; i++ {
		base := 2 * i
		var a, d F
		if b == Periodic {
			for j := range taps {
				s := signal[(base+j)%n]
				a += low[j] * s
				d += high[j] * s
			}
		} else {
			for j := 0; j < taps && base+j < n; j++ {
				s := signal[base+j]
				a += low[j] * s
				d += high[j] * s
			}
		}
		approx[i] = a
		detail[i] = d
	}
}

// analyze2 handles 2-tap filters (Haar). For even-length signals the window
// never crosses the edge and the modes coincide; an odd-length signal has one
// final window whose second tap wraps or is dropped.
func (scalarKernel[F]) analyze2(approx, detail, signal, low, high []F, b Boundary, from, to int) {
	n := len(signal)
	l0, l1 := low[0], low[1]
	h0, h1 := high[0], high[1]

	end := to
	if 2*to > n {
		end = to - 1
	}
	for i := from; i < end; i++ {
		s0 := signal[2*i]
		s1 := signal[2*i+1]
		approx[i] = l0*s0 + l1*s1
		detail[i] = h0*s0 + h1*s1
	}
	for i := end; i < to; i++ {
		s0 := signal[2*i]
		var s1 F
		if b == Periodic {
			s1 = signal[0]
		}
		approx[i] = l0*s0 + l1*s1
		detail[i] = h0*s0 + h1*s1
	}
}

// analyze4 handles 4-tap filters (DB2). The interior is fully unrolled; the
// final outputs use bitwise-masked indexing when the signal length is a power
// of two and modulo indexing otherwise.
func (scalarKernel[F]) analyze4(approx, detail, signal, low, high []F, b Boundary, from, to int) {
	n := len(signal)
	l0, l1, l2, l3 := low[0], low[1], low[2], low[3]
	h0, h1, h2, h3 := high[0], high[1], high[2], high[3]

	interior := clampRange(noWrapEnd(n, 4), from, to)
	for i := from; i < interior; i++ {
		base := 2 * i
		s0, s1, s2, s3 := signal[base], signal[base+1], signal[base+2], signal[base+3]
		approx[i] = l0*s0 + l1*s1 + l2*s2 + l3*s3
		detail[i] = h0*s0 + h1*s1 + h2*s2 + h3*s3
	}

	if interior >= to {
		return
	}

	switch {
	case b == Periodic && isPowerOfTwo(n):
		mask := n - 1
		for i := interior; i < to; i++ {
			base := 2 * i
			s0 := signal[base&mask]
			s1 := signal[(base+1)&mask]
			s2 := signal[(base+2)&mask]
			s3 := signal[(base+3)&mask]
			approx[i] = l0*s0 + l1*s1 + l2*s2 + l3*s3
			detail[i] = h0*s0 + h1*s1 + h2*s2 + h3*s3
		}
	case b == Periodic:
		for i := interior; i < to; i++ {
			base := 2 * i
			s0 := signal[base%n]
			s1 := signal[(base+1)%n]
			s2 := signal[(base+2)%n]
			s3 := signal[(base+3)%n]
			approx[i] = l0*s0 + l1*s1 + l2*s2 + l3*s3
			detail[i] = h0*s0 + h1*s1 + h2*s2 + h3*s3
		}
	default:
		for i := interior; i < to; i++ {
			base := 2 * i
			var a, d F
			for j := 0; j < 4 && base+j < n; j++ {
				s := signal[base+j]
				a += low[j] * s
				d += high[j] * s
			}
			approx[i] = a
			detail[i] = d
		}
	}
}

func (k scalarKernel[F]) ConvolveDown(dst, signal, filter []F, b Boundary, from, to int) {
	n := len(signal)
	taps := len(filter)

	interior := clampRange(noWrapEnd(n, taps), from, to)
	for i := from; i < interior; i++ {
		base := 2 * i
		var acc F
		for j := range taps {
			acc += filter[j] * signal[base+j]
		}
		dst[i] = acc
	}

	for i := interior; i < to; i++ {
		base := 2 * i
		var acc F
		if b == Periodic {
			for j := range taps {
				acc += filter[j] * signal[(base+j)%n]
			}
		} else {
			for j := 0; j < taps && base+j < n; j++ {
				acc += filter[j] * signal[base+j]
			}
		}
		dst[i] = acc
	}
}

func (k scalarKernel[F]) UpsampleAdd(dst, coeffs, filter []F, b Boundary, from, to int) {
	n := len(dst)
	taps := len(filter)

	interior := clampRange(noWrapEnd(n, taps), from, to)

	// Interior coefficients scatter without wrapping.
	for i := from; i < interior; i++ {
		c := coeffs[i]
		if c == 0.0 {
			// Exact-zero skip. This is an optimization, not an
			// approximation: reconstruction of sparse or padded inputs
			// preserves exact zeros. Near-zero values are never skipped.
			continue
		}
		base := 2 * i
		for j := range taps {
			dst[base+j] += c * filter[j]
		}
	}

	for i := interior; i < to; i++ {
		c := coeffs[i]
		if c == 0.0 {
			continue
		}
		base := 2 * i
		if b == Periodic {
			for j := range taps {
				dst[(base+j)%n] += c * filter[j]
			}
		} else {
			for j := 0; j < taps && base+j < n; j++ {
				dst[base+j] += c * filter[j]
			}
		}
	}
}

func (k scalarKernel[F]) Modwt(dst, signal, filter []F, stride int, b Boundary, from, to int) {
	n := len(signal)
	taps := len(filter)

	// Interior: i + (taps-1)*stride stays inside the signal.
	reach := (taps - 1) * stride
	interior := clampRange(n-reach, from, to)

	for i := from; i < interior; i++ {
		var acc F
		idx := i
		for m := range taps {
			acc += filter[m] * signal[idx]
			idx += stride
		}
		dst[i] = acc
	}

	for i := interior; i < to; i++ {
		var acc F
		if b == Periodic {
			idx := i
			for m := range taps {
				acc += filter[m] * signal[idx%n]
				idx += stride
			}
		} else {
			idx := i
			for m := 0; m < taps && idx < n; m++ {
				acc += filter[m] * signal[idx]
				idx += stride
			}
		}
		dst[i] = acc
	}
}

func (k scalarKernel[F]) ModwtAdd(dst, coeffs, filter []F, stride int, b Boundary, from, to int) {
	n := len(coeffs)
	taps := len(filter)

	// Interior: i - (taps-1)*stride stays non-negative.
	reach := (taps - 1) * stride
	lo := clampRange(reach, from, to)

	for i := lo; i < to; i++ {
		var acc F
		idx := i
		for m := range taps {
			acc += filter[m] * coeffs[idx]
			idx -= stride
		}
		dst[i] += acc
	}

	for i := from; i < lo; i++ {
		var acc F
		if b == Periodic {
			idx := i
			for m := range taps {
				wrapped := idx % n
				if wrapped < 0 {
					wrapped += n
				}
				acc += filter[m] * coeffs[wrapped]
				idx -= stride
			}
		} else {
			idx := i
			for m := 0; m < taps && idx >= 0; m++ {
				acc += filter[m] * coeffs[idx]
				idx -= stride
			}
		}
		dst[i] += acc
	}
}

// clampRange clamps v into [from, to].
func clampRange(v, from, to int) int {
	if v < from {
		return from
	}
	if v > to {
		return to
	}
	return v
}
