package kernel

import (
	"github.com/tphakala/go-wavelet/internal/cpufeat"
	"github.com/tphakala/go-wavelet/internal/simdops"
)

// vectorKernel is the generic-width SIMD implementation. The decimated
// interior reads contiguous tap windows, so it runs on sliding dot products
// from the SIMD library; wrapped boundary windows and strided à-trous taps are
// gathered element-by-element into a staging buffer first (hardware gather is
// modeled as a capability flag and is not assumed). Synthesis scatters a block
// of coefficients per filter tap: the block is multiplied by the broadcast tap
// with a SIMD scale, then written to the computed strided positions through
// staged scalar stores.
//
// A vectorKernel owns its staging buffers and is therefore not safe for
// concurrent use; each Transformer constructs its own.
type vectorKernel[F simdops.Float] struct {
	ops      *simdops.Ops[F]
	width    int
	hwGather bool

	scalar scalarKernel[F]

	stage   []F // gathered tap window (len = filter taps)
	rev     []F // reversed filter for transpose correlation
	scatter []F // per-tap scatter contributions (len <= scatterBlock)
}

// NewVector returns the generic-width vector kernel configured from the
// platform capability snapshot.
func NewVector[F simdops.Float](caps cpufeat.Features) Kernel[F] {
	return &vectorKernel[F]{
		ops:      simdops.For[F](),
		width:    caps.VectorWidth,
		hwGather: caps.HasGatherScatter,
	}
}

func (k *vectorKernel[F]) Name() string { return "vector" }

func (k *vectorKernel[F]) ensureStage(n int) []F {
	if cap(k.stage) < n {
		k.stage = make([]F, n)
	}
	k.stage = k.stage[:n]
	return k.stage
}

func (k *vectorKernel[F]) ensureRev(filter []F) []F {
	taps := len(filter)
	if cap(k.rev) < taps {
		k.rev = make([]F, taps)
	}
	k.rev = k.rev[:taps]
	for j := range taps {
		k.rev[j] = filter[taps-1-j]
	}
	return k.rev
}

func (k *vectorKernel[F]) ensureScatter(n int) []F {
	if cap(k.scatter) < n {
		k.scatter = make([]F, n)
	}
	k.scatter = k.scatter[:n]
	return k.scatter
}

// gatherWindow fills stage with the tap window starting at base, wrapping
// (periodic) or zero-filling (zero-padding) positions past the signal edge.
func (k *vectorKernel[F]) gatherWindow(stage, signal []F, base, stride int, b Boundary) {
	n := len(signal)
	idx := base
	for m := range stage {
		switch {
		case idx < n:
			stage[m] = signal[idx]
		case b == Periodic:
			stage[m] = signal[idx%n]
		default:
			stage[m] = 0
		}
		idx += stride
	}
}

func (k *vectorKernel[F]) Analyze(approx, detail, signal, low, high []F, b Boundary, from, to int) {
	taps := len(low)
	if taps <= tinyFilterTaps || to-from < minVectorOutputs {
		k.scalar.Analyze(approx, detail, signal, low, high, b, from, to)
		return
	}

	n := len(signal)
	interior := clampRange(noWrapEnd(n, taps), from, to)

	// Interior windows are contiguous: one SIMD dot product per output and
	// filter. The window is loaded once per pair by the hardware prefetcher,
	// so approx and detail share its cache lines.
	for i := from; i < interior; i++ {
		win := signal[2*i : 2*i+taps]
		approx[i] = k.ops.DotProductUnsafe(win, low)
		detail[i] = k.ops.DotProductUnsafe(win, high)
	}

	if interior >= to {
		return
	}

	stage := k.ensureStage(taps)
	for i := interior; i < to; i++ {
		k.gatherWindow(stage, signal, 2*i, 1, b)
		approx[i] = k.ops.DotProductUnsafe(stage, low)
		detail[i] = k.ops.DotProductUnsafe(stage, high)
	}
}

func (k *vectorKernel[F]) ConvolveDown(dst, signal, filter []F, b Boundary, from, to int) {
	taps := len(filter)
	if taps <= tinyFilterTaps || to-from < minVectorOutputs {
		k.scalar.ConvolveDown(dst, signal, filter, b, from, to)
		return
	}

	n := len(signal)
	interior := clampRange(noWrapEnd(n, taps), from, to)

	for i := from; i < interior; i++ {
		dst[i] = k.ops.DotProductUnsafe(signal[2*i:2*i+taps], filter)
	}

	if interior >= to {
		return
	}

	stage := k.ensureStage(taps)
	for i := interior; i < to; i++ {
		k.gatherWindow(stage, signal, 2*i, 1, b)
		dst[i] = k.ops.DotProductUnsafe(stage, filter)
	}
}

func (k *vectorKernel[F]) UpsampleAdd(dst, coeffs, filter []F, b Boundary, from, to int) {
	taps := len(filter)
	if to-from < minVectorOutputs {
		k.scalar.UpsampleAdd(dst, coeffs, filter, b, from, to)
		return
	}

	n := len(dst)
	interior := clampRange(noWrapEnd(n, taps), from, to)

	// Interior: per tap, scale a block of coefficients by the broadcast tap
	// value, then scatter the contributions to their stride-2 positions.
	for blk := from; blk < interior; blk += scatterBlock {
		end := min(blk+scatterBlock, interior)
		block := coeffs[blk:end]
		contrib := k.ensureScatter(len(block))
		for j := range taps {
			k.ops.Scale(contrib, block, filter[j])
			pos := 2*blk + j
			for l := range contrib {
				dst[pos] += contrib[l]
				pos += 2
			}
		}
	}

	// Wrapped tail: staged scalar scatter.
	if interior < to {
		k.scalar.UpsampleAdd(dst, coeffs, filter, b, interior, to)
	}
}

func (k *vectorKernel[F]) Modwt(dst, signal, filter []F, stride int, b Boundary, from, to int) {
	taps := len(filter)
	n := len(signal)
	if to-from < minVectorOutputs {
		k.scalar.Modwt(dst, signal, filter, stride, b, from, to)
		return
	}

	reach := (taps - 1) * stride
	interior := clampRange(n-reach, from, to)

	if stride == 1 {
		// The undecimated interior is one bulk valid convolution.
		if interior > from {
			k.ops.ConvolveValid(dst[from:interior], signal[from:interior+taps-1], filter)
		}
	} else {
		// À-trous taps are strided: gather each window into the staging
		// buffer, then reduce with a SIMD dot product.
		stage := k.ensureStage(taps)
		for i := from; i < interior; i++ {
			idx := i
			for m := range taps {
				stage[m] = signal[idx]
				idx += stride
			}
			dst[i] = k.ops.DotProductUnsafe(stage, filter)
		}
	}

	if interior >= to {
		return
	}

	stage := k.ensureStage(taps)
	for i := interior; i < to; i++ {
		k.gatherWindow(stage, signal, i, stride, b)
		dst[i] = k.ops.DotProductUnsafe(stage, filter)
	}
}

func (k *vectorKernel[F]) ModwtAdd(dst, coeffs, filter []F, stride int, b Boundary, from, to int) {
	taps := len(filter)
	if to-from < minVectorOutputs {
		k.scalar.ModwtAdd(dst, coeffs, filter, stride, b, from, to)
		return
	}

	reach := (taps - 1) * stride
	lo := clampRange(reach, from, to)

	// Boundary rows wrap backwards; keep them scalar.
	if lo > from {
		k.scalar.ModwtAdd(dst, coeffs, filter, stride, b, from, lo)
	}

	if stride == 1 {
		// sum_m f[m]*c[i-m] is a forward correlation against the reversed
		// filter over the contiguous window c[i-taps+1 .. i].
		rev := k.ensureRev(filter)
		for i := lo; i < to; i++ {
			dst[i] += k.ops.DotProductUnsafe(coeffs[i-taps+1:i+1], rev)
		}
		return
	}

	stage := k.ensureStage(taps)
	for i := lo; i < to; i++ {
		idx := i
		for m := range taps {
			stage[m] = coeffs[idx]
			idx -= stride
		}
		dst[i] += k.ops.DotProductUnsafe(stage, filter)
	}
}
