package engine

// Cache blocking constants.
const (
	// l1BlockBytes is the working-set budget for one blocked kernel call,
	// sized to stay comfortably inside a 32 KiB L1 data cache with room for
	// the filter taps and loop state.
	l1BlockBytes = 24 * 1024

	// bytesPerOutput counts the float64 traffic attributable to one
	// decimated output: two signal reads plus the approximation and detail
	// writes.
	bytesPerOutput = 4 * 8

	// blockOutputs is the decimated output count per kernel call.
	blockOutputs = l1BlockBytes / bytesPerOutput
)

// MODWT FFT fast path constants.
const (
	// fftMinStride is the à-trous tap spacing at which strided gathers touch
	// a fresh cache line per tap, making frequency-domain evaluation cheaper
	// than direct accumulation.
	fftMinStride = 64

	// fftMinSignal is the shortest signal worth an FFT round trip.
	fftMinSignal = 512
)

// minLevelFactor is the decomposition terminal: a level runs only while the
// current length is at least minLevelFactor times the filter length.
const minLevelFactor = 2
