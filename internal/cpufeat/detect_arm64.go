//go:build arm64

package cpufeat

import (
	"runtime"

	"golang.org/x/sys/cpu"
)

// detectImpl probes ARM64 SIMD extensions.
//
// NEON (ASIMD) is part of the ARMv8-A base architecture, giving 2 float64
// lanes and no gather/scatter. The cpu package is still consulted for
// consistency and to leave room for SVE detection later.
func detectImpl() Features {
	if cpu.ARM64.HasASIMD {
		return Features{
			VectorWidth:      2,
			HasGatherScatter: false,
			Arch:             runtime.GOARCH,
			Name:             "neon",
		}
	}
	// Should never happen on ARMv8+.
	return scalarFeatures()
}

func scalarFeatures() Features {
	return Features{
		VectorWidth:      1,
		HasGatherScatter: false,
		Arch:             runtime.GOARCH,
		Name:             "scalar",
	}
}
