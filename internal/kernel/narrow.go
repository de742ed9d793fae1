package kernel

import "github.com/tphakala/go-wavelet/internal/simdops"

// narrowKernel targets platforms whose widest vector unit holds two lanes
// (SSE2 baseline x86-64, ARM64 NEON doubles). Outputs are produced in pairs
// with the tap loop unrolled two wide, which the compiler lowers to 128-bit
// packed arithmetic; there is no staging or library dispatch overhead.
// Boundary outputs and odd tails run on the scalar reference kernel.
type narrowKernel[F simdops.Float] struct {
	scalar scalarKernel[F]
}

// NewNarrow returns the 2-lane pair-unrolled kernel.
func NewNarrow[F simdops.Float]() Kernel[F] {
	return &narrowKernel[F]{}
}

func (k *narrowKernel[F]) Name() string { return "narrow" }

func (k *narrowKernel[F]) Analyze(approx, detail, signal, low, high []F, b Boundary, from, to int) {
	taps := len(low)
	if to-from < minVectorOutputs {
		k.scalar.Analyze(approx, detail, signal, low, high, b, from, to)
		return
	}

	interior := clampRange(noWrapEnd(len(signal), taps), from, to)

	switch taps {
	case 2:
		l0, l1 := low[0], low[1]
		h0, h1 := high[0], high[1]
		i := from
		for ; i+pairWidth <= interior; i += pairWidth {
			s := signal[2*i : 2*i+4 : 2*i+4]
			approx[i] = l0*s[0] + l1*s[1]
			approx[i+1] = l0*s[2] + l1*s[3]
			detail[i] = h0*s[0] + h1*s[1]
			detail[i+1] = h0*s[2] + h1*s[3]
		}
		k.scalar.Analyze(approx, detail, signal, low, high, b, i, to)
	case 4:
		l0, l1, l2, l3 := low[0], low[1], low[2], low[3]
		h0, h1, h2, h3 := high[0], high[1], high[2], high[3]
		i := from
		for ; i+pairWidth <= interior; i += pairWidth {
			s := signal[2*i : 2*i+6 : 2*i+6]
			approx[i] = l0*s[0] + l1*s[1] + l2*s[2] + l3*s[3]
			approx[i+1] = l0*s[2] + l1*s[3] + l2*s[4] + l3*s[5]
			detail[i] = h0*s[0] + h1*s[1] + h2*s[2] + h3*s[3]
			detail[i+1] = h0*s[2] + h1*s[3] + h2*s[4] + h3*s[5]
		}
		k.scalar.Analyze(approx, detail, signal, low, high, b, i, to)
	default:
		i := from
		for ; i+pairWidth <= interior; i += pairWidth {
			s := signal[2*i:]
			var a0, a1, d0, d1 F
			for j := 0; j < taps; j += 2 {
				lj, lj1 := low[j], low[j+1]
				hj, hj1 := high[j], high[j+1]
				s0, s1 := s[j], s[j+1]
				s2, s3 := s[j+2], s[j+3]
				a0 += lj*s0 + lj1*s1
				a1 += lj*s2 + lj1*s3
				d0 += hj*s0 + hj1*s1
				d1 += hj*s2 + hj1*s3
			}
			approx[i], approx[i+1] = a0, a1
			detail[i], detail[i+1] = d0, d1
		}
		k.scalar.Analyze(approx, detail, signal, low, high, b, i, to)
	}
}

func (k *narrowKernel[F]) ConvolveDown(dst, signal, filter []F, b Boundary, from, to int) {
	taps := len(filter)
	if to-from < minVectorOutputs {
		k.scalar.ConvolveDown(dst, signal, filter, b, from, to)
		return
	}

	interior := clampRange(noWrapEnd(len(signal), taps), from, to)
	i := from
	for ; i+pairWidth <= interior; i += pairWidth {
		s := signal[2*i:]
		var a0, a1 F
		for j := range taps {
			fj := filter[j]
			a0 += fj * s[j]
			a1 += fj * s[j+2]
		}
		dst[i], dst[i+1] = a0, a1
	}
	k.scalar.ConvolveDown(dst, signal, filter, b, i, to)
}

func (k *narrowKernel[F]) UpsampleAdd(dst, coeffs, filter []F, b Boundary, from, to int) {
	taps := len(filter)
	if to-from < minVectorOutputs {
		k.scalar.UpsampleAdd(dst, coeffs, filter, b, from, to)
		return
	}

	interior := clampRange(noWrapEnd(len(dst), taps), from, to)

	// Two coefficients scattered per iteration; their tap footprints overlap
	// by taps-2 destination slots, so the second accumulation reuses lines
	// the first just touched.
	i := from
	for ; i+pairWidth <= interior; i += pairWidth {
		c0, c1 := coeffs[i], coeffs[i+1]
		if c0 != 0 {
			d := dst[2*i:]
			for j := range taps {
				d[j] += c0 * filter[j]
			}
		}
		if c1 != 0 {
			d := dst[2*i+2:]
			for j := range taps {
				d[j] += c1 * filter[j]
			}
		}
	}
	k.scalar.UpsampleAdd(dst, coeffs, filter, b, i, to)
}

func (k *narrowKernel[F]) Modwt(dst, signal, filter []F, stride int, b Boundary, from, to int) {
	taps := len(filter)
	if to-from < minVectorOutputs {
		k.scalar.Modwt(dst, signal, filter, stride, b, from, to)
		return
	}

	reach := (taps - 1) * stride
	interior := clampRange(len(signal)-reach, from, to)

	// Undecimated outputs i and i+1 read windows shifted by one element, so
	// the pair shares all but one loaded value per tap.
	i := from
	for ; i+pairWidth <= interior; i += pairWidth {
		var a0, a1 F
		idx := i
		for j := range taps {
			fj := filter[j]
			a0 += fj * signal[idx]
			a1 += fj * signal[idx+1]
			idx += stride
		}
		dst[i], dst[i+1] = a0, a1
	}
	k.scalar.Modwt(dst, signal, filter, stride, b, i, to)
}

func (k *narrowKernel[F]) ModwtAdd(dst, coeffs, filter []F, stride int, b Boundary, from, to int) {
	taps := len(filter)
	if to-from < minVectorOutputs {
		k.scalar.ModwtAdd(dst, coeffs, filter, stride, b, from, to)
		return
	}

	reach := (taps - 1) * stride
	lo := clampRange(reach, from, to)
	if lo > from {
		k.scalar.ModwtAdd(dst, coeffs, filter, stride, b, from, lo)
	}

	i := lo
	for ; i+pairWidth <= to; i += pairWidth {
		var a0, a1 F
		idx := i
		for j := range taps {
			fj := filter[j]
			a0 += fj * coeffs[idx]
			a1 += fj * coeffs[idx+1]
			idx -= stride
		}
		dst[i] += a0
		dst[i+1] += a1
	}
	k.scalar.ModwtAdd(dst, coeffs, filter, stride, b, i, to)
}
