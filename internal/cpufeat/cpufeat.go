// Package cpufeat provides CPU capability detection for transform kernel selection.
//
// The kernels care about three facts: how many float64 lanes the widest usable
// SIMD register holds, whether hardware gather/scatter is available, and which
// architecture is running. Detection is performed lazily on the first call to
// Detect() and cached with sync.Once; forced features can be installed for
// testing so every kernel variant is exercisable on any machine.
package cpufeat

import (
	"os"
	"strconv"
	"sync"
)

// Features describes CPU capabilities relevant to wavelet kernel selection.
type Features struct {
	// VectorWidth is the number of float64 lanes in the widest usable SIMD
	// register: 8 for AVX-512, 4 for AVX2, 2 for SSE2/NEON, 1 for scalar.
	VectorWidth int

	// HasGatherScatter reports whether hardware gather and scatter
	// instructions are available for the element type. When false, vector
	// kernels stage strided loads and stores through a portable buffer.
	HasGatherScatter bool

	// Arch is runtime.GOARCH (e.g., "amd64", "arm64").
	Arch string

	// Name is a human-readable label for the detected instruction set
	// (e.g., "avx2", "neon", "scalar").
	Name string
}

var (
	// detected holds the cached features for this system.
	detected Features

	// detectOnce ensures detection runs exactly once, thread-safely.
	detectOnce sync.Once

	// detectMu serializes access to detectOnce/detected across resets.
	detectMu sync.Mutex

	// forced overrides hardware detection for testing.
	forced   *Features
	forcedMu sync.RWMutex
)

// Detect returns the CPU features available on the current system.
//
// Detection is performed once on the first call and cached. The function is
// safe for concurrent use; redundant first-time computation is prevented by
// sync.Once, so later readers always see one consistent snapshot.
func Detect() Features {
	forcedMu.RLock()
	f := forced
	forcedMu.RUnlock()
	if f != nil {
		return *f
	}

	detectMu.Lock()
	detectOnce.Do(func() {
		if noSimdEnv() {
			detected = scalarFeatures()
		} else {
			detected = detectImpl()
		}
	})
	feats := detected
	detectMu.Unlock()

	return feats
}

// SetForced overrides CPU feature detection with the specified features.
// This is intended for testing purposes only.
func SetForced(f Features) {
	forcedMu.Lock()
	defer forcedMu.Unlock()
	copied := f
	forced = &copied
}

// ResetDetection clears any forced features and the detection cache.
// This is intended for testing purposes.
func ResetDetection() {
	forcedMu.Lock()
	forced = nil
	forcedMu.Unlock()

	detectMu.Lock()
	detectOnce = sync.Once{}
	detected = Features{}
	detectMu.Unlock()
}

// noSimdEnv checks the WAVELET_NO_SIMD environment variable. When set, the
// library uses the scalar kernel regardless of CPU capabilities. Useful for
// debugging and for producing reference output.
func noSimdEnv() bool {
	val := os.Getenv("WAVELET_NO_SIMD")
	if val == "" {
		return false
	}
	if b, err := strconv.ParseBool(val); err == nil {
		return b
	}
	return true
}
