package kernel

// Tuning thresholds shared by the SIMD kernels.
const (
	// tinyFilterTaps is the longest filter for which a SIMD dot product
	// call costs more than the unrolled scalar fast paths (Haar and the
	// 4-tap Daubechies family).
	tinyFilterTaps = 4

	// minVectorOutputs is the shortest output range worth vectorizing;
	// anything shorter runs on the scalar reference kernel.
	minVectorOutputs = 4

	// scatterBlock is the number of coefficients scaled per tap before
	// scattering during synthesis. 256 float64 values stay inside one
	// 2 KiB stretch of L1 alongside the destination lines.
	scatterBlock = 256

	// pairWidth is the lane count of the narrow kernel; it targets
	// 128-bit units holding two float64 lanes.
	pairWidth = 2
)
