//go:build !amd64 && !arm64

package cpufeat

import "runtime"

// detectImpl falls back to scalar on architectures without a tuned kernel.
func detectImpl() Features {
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
