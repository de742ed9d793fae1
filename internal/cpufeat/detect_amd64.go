//go:build amd64

package cpufeat

import (
	"runtime"

	"golang.org/x/sys/cpu"
)

// detectImpl probes x86-64 SIMD extensions.
//
// Lane widths are for float64. Hardware gather arrived with AVX2 but scatter
// only with AVX-512, so HasGatherScatter requires AVX-512F; on AVX2-only
// machines the vector kernels run with staged gather/scatter.
func detectImpl() Features {
	switch {
	case cpu.X86.HasAVX512F:
		return Features{
			VectorWidth:      8,
			HasGatherScatter: true,
			Arch:             runtime.GOARCH,
			Name:             "avx512",
		}
	case cpu.X86.HasAVX2:
		return Features{
			VectorWidth:      4,
			HasGatherScatter: false,
			Arch:             runtime.GOARCH,
			Name:             "avx2",
		}
	case cpu.X86.HasSSE2:
		// SSE2 is the amd64 baseline: 2 float64 lanes, no gather.
		return Features{
			VectorWidth:      2,
			HasGatherScatter: false,
			Arch:             runtime.GOARCH,
			Name:             "sse2",
		}
	default:
		return scalarFeatures()
	}
}

func scalarFeatures() Features {
	return Features{
		VectorWidth:      1,
		HasGatherScatter: false,
		Arch:             runtime.GOARCH,
		Name:             "scalar",
	}
}
