// Package kernel implements the one-level wavelet transform primitives:
// convolution/downsampling for analysis, upsampling/convolution for synthesis,
// and the undecimated (MODWT) variants, each under periodic and zero-padding
// boundary extension.
//
// Three implementations share one contract: a scalar reference kernel that
// defines ground truth, a generic-width vector kernel built on the SIMD
// library, and a narrow two-lane kernel for platforms whose usable vector
// width is two doubles (ARM NEON). The dispatcher in this package selects
// among them from the platform capability snapshot, the signal length and the
// filter length; callers can force a variant for testing.
//
// Every implementation must produce output equal to the scalar kernel within
// floating-point-epsilon scale relative error for all inputs. Vectorized
// accumulation may reorder partial sums, so bit equality is not guaranteed,
// but the reordering must never be observable beyond rounding differences.
//
// All range methods operate on the half-open output index interval [from, to)
// so the multi-level driver can walk outputs in cache-sized blocks. The
// methods trust their inputs; precondition checks live in the exported
// wrappers of the engine package, which run once per transform call.
package kernel

import "github.com/tphakala/go-wavelet/internal/simdops"

// Boundary selects how convolution indices past the signal edge are handled.
type Boundary int

const (
	// Periodic wraps out-of-range indices modulo the signal length.
	Periodic Boundary = iota

	// ZeroPad treats out-of-range samples as zero: their terms are skipped.
	ZeroPad
)

// String returns the boundary mode name.
func (b Boundary) String() string {
	switch b {
	case Periodic:
		return "periodic"
	case ZeroPad:
		return "zero-padding"
	default:
		return "unknown"
	}
}

// Kernel is one implementation of the single-level transform primitives.
//
// For the decimated primitives, output index i draws on signal indices
// 2i..2i+L-1; for the undecimated primitives the base index is i and taps are
// spaced stride apart (stride > 1 realizes the à-trous filter of deeper MODWT
// levels without materializing the upsampled filter).
type Kernel[F simdops.Float] interface {
	// Name identifies the kernel variant ("scalar", "vector", "narrow").
	Name() string

	// Analyze computes approx[i] = sum_j low[j]*signal[2i+j] and
	// detail[i] = sum_j high[j]*signal[2i+j] for i in [from, to), gathering
	// each signal sample once for both outputs.
	Analyze(approx, detail, signal, low, high []F, b Boundary, from, to int)

	// ConvolveDown computes dst[i] = sum_j filter[j]*signal[2i+j] for
	// i in [from, to).
	ConvolveDown(dst, signal, filter []F, b Boundary, from, to int)

	// UpsampleAdd accumulates dst[2i+j] += coeffs[i]*filter[j] for every
	// coefficient index i in [from, to) and every tap j, wrapping or
	// dropping out-of-range positions per the boundary mode. Coefficients
	// equal to bit-pattern zero contribute nothing and may be skipped
	// outright; dst is not zero-initialized here.
	UpsampleAdd(dst, coeffs, filter []F, b Boundary, from, to int)

	// Modwt computes dst[i] = sum_m filter[m]*signal[i+m*stride] for
	// i in [from, to). Output length equals signal length.
	Modwt(dst, signal, filter []F, stride int, b Boundary, from, to int)

	// ModwtAdd accumulates the transpose of Modwt:
	// dst[i] += sum_m filter[m]*coeffs[i-m*stride] for i in [from, to).
	ModwtAdd(dst, coeffs, filter []F, stride int, b Boundary, from, to int)
}
