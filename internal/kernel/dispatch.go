package kernel

import (
	"github.com/tphakala/go-wavelet/internal/cpufeat"
	"github.com/tphakala/go-wavelet/internal/simdops"
)

// Force overrides the capability-based kernel choice, mainly for tests and
// benchmarks that need a specific implementation.
type Force int

const (
	// ForceNone selects by detected capabilities and signal size.
	ForceNone Force = iota
	// ForceScalar always runs the scalar reference kernel.
	ForceScalar
	// ForceVector requests the widest vector kernel the platform supports;
	// on scalar-only platforms it silently falls back to scalar.
	ForceVector
)

// smallSignalThreshold is the signal length below which kernel selection
// always picks scalar: the per-call staging and dispatch overhead of the
// vector kernels exceeds the work available.
const smallSignalThreshold = 64

// Select picks the kernel implementation for the given signal and filter
// lengths and platform capabilities. All kernels produce results equal within
// floating point reassociation tolerance, so the choice affects only
// throughput.
func Select[F simdops.Float](signalLen, filterLen int, caps cpufeat.Features, force Force) Kernel[F] {
	if force == ForceScalar {
		return NewScalar[F]()
	}
	if force == ForceNone && (signalLen < smallSignalThreshold || filterLen >= signalLen) {
		return NewScalar[F]()
	}
	switch {
	case caps.VectorWidth >= 4:
		return NewVector[F](caps)
	case caps.VectorWidth == pairWidth:
		return NewNarrow[F]()
	default:
		return NewScalar[F]()
	}
}
