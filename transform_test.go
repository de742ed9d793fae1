package wavelet

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func randomSignal(n int, seed int64) []float64 {
	rng := rand.New(rand.NewSource(seed))
	s := make([]float64, n)
	for i := range s {
		s[i] = rng.NormFloat64()
	}
	return s
}

// TestForwardHaarConstant: a constant signal carries all energy in the
// approximation band.
func TestForwardHaarConstant(t *testing.T) {
	signal := make([]float64, 8)
	for i := range signal {
		signal[i] = 1.0
	}

	approx, detail, err := Forward(signal, "haar")
	require.NoError(t, err)
	require.Len(t, approx, 4)
	require.Len(t, detail, 4)
	for i := range approx {
		assert.InDelta(t, math.Sqrt2, approx[i], 1e-12)
		assert.InDelta(t, 0.0, detail[i], 1e-12)
	}
}

// TestForwardInverseRoundTrip through the public API for each built-in
// filter bank.
func TestForwardInverseRoundTrip(t *testing.T) {
	for _, name := range []string{"haar", "db2", "db3", "db4", "sym4", "coif1"} {
		t.Run(name, func(t *testing.T) {
			signal := randomSignal(128, 1)

			approx, detail, err := Forward(signal, name)
			require.NoError(t, err)

			recon, err := Inverse(approx, detail, name)
			require.NoError(t, err)
			require.Len(t, recon, len(signal))
			for i := range signal {
				assert.InDelta(t, signal[i], recon[i], 1e-9, "sample %d", i)
			}
		})
	}
}

func TestInverseValidation(t *testing.T) {
	_, err := Inverse(nil, nil, "haar")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = Inverse(make([]float64, 4), make([]float64, 3), "haar")
	assert.ErrorIs(t, err, ErrLengthMismatch)
}

func TestDecomposeReconstruct(t *testing.T) {
	tr, err := New(&Config{Wavelet: "db4"})
	require.NoError(t, err)

	signal := randomSignal(256, 2)
	set, err := tr.Decompose(signal, 3)
	require.NoError(t, err)

	assert.Equal(t, 3, set.Levels())
	assert.Equal(t, 256, set.SignalLen())
	assert.Len(t, set.Detail(1), 128)
	assert.Len(t, set.Detail(3), 32)
	assert.Len(t, set.Approx(), 32)
	assert.Nil(t, set.Detail(0))
	assert.Nil(t, set.Detail(4))

	recon, err := tr.Reconstruct(set)
	require.NoError(t, err)
	for i := range signal {
		assert.InDelta(t, signal[i], recon[i], 1e-9, "sample %d", i)
	}
}

func TestDecomposeTooManyLevels(t *testing.T) {
	tr, err := New(&Config{Wavelet: "db4"})
	require.NoError(t, err)

	_, err = tr.Decompose(randomSignal(32, 3), 5)
	assert.ErrorIs(t, err, ErrTooManyLevels)
}

// TestMODWTShiftInvariance: circularly shifting the input circularly shifts
// every coefficient band, the property the undecimated transform exists for.
func TestMODWTShiftInvariance(t *testing.T) {
	tr, err := New(&Config{Wavelet: "db2"})
	require.NoError(t, err)

	const n = 64
	const shift = 5
	signal := randomSignal(n, 4)
	shifted := make([]float64, n)
	for i := range signal {
		shifted[(i+shift)%n] = signal[i]
	}

	base, err := tr.MODWT(signal, 2)
	require.NoError(t, err)
	moved, err := tr.MODWT(shifted, 2)
	require.NoError(t, err)

	for level := 1; level <= 2; level++ {
		want := base.Detail(level)
		got := moved.Detail(level)
		for i := range want {
			assert.InDelta(t, want[i], got[(i+shift)%n], 1e-10,
				"level %d index %d", level, i)
		}
	}
}

func TestMODWTRoundTrip(t *testing.T) {
	tr, err := New(&Config{Wavelet: "sym4"})
	require.NoError(t, err)

	signal := randomSignal(200, 5)
	set, err := tr.MODWT(signal, 3)
	require.NoError(t, err)
	assert.Len(t, set.Smooth(), 200)
	assert.Len(t, set.Detail(2), 200)

	recon, err := tr.MODWTInverse(set)
	require.NoError(t, err)
	for i := range signal {
		assert.InDelta(t, signal[i], recon[i], 1e-9, "sample %d", i)
	}
}

// TestMODWTSingleSample: level 1 accepts any nonempty signal, even one
// shorter than the filter; the period wraps under the taps.
func TestMODWTSingleSample(t *testing.T) {
	set, err := MODWT([]float64{5}, "haar", 1)
	require.NoError(t, err)
	require.Len(t, set.Smooth(), 1)
	assert.InDelta(t, 5, set.Smooth()[0], 1e-12)
	assert.InDelta(t, 0, set.Detail(1)[0], 1e-12)

	recon, err := MODWTInverse(set, "haar")
	require.NoError(t, err)
	assert.InDelta(t, 5, recon[0], 1e-12)
}

func TestZeroPadArbitraryLength(t *testing.T) {
	tr, err := New(&Config{Wavelet: "db2", Boundary: BoundaryZeroPad})
	require.NoError(t, err)

	approx, detail, err := tr.Forward(randomSignal(101, 6))
	require.NoError(t, err)
	assert.Len(t, approx, 51)
	assert.Len(t, detail, 51)
}

func TestPeriodicOddLengthRejected(t *testing.T) {
	tr, err := New(&Config{Wavelet: "haar"})
	require.NoError(t, err)

	_, _, err = tr.Forward(randomSignal(7, 7))
	assert.ErrorIs(t, err, ErrInvalidInput)
}

// TestKernelSelectionsAgree runs the same transform under each kernel
// override through the public API.
func TestKernelSelectionsAgree(t *testing.T) {
	signal := randomSignal(512, 8)

	scalar, err := New(&Config{Wavelet: "db4", Kernel: KernelScalar})
	require.NoError(t, err)
	vector, err := New(&Config{Wavelet: "db4", Kernel: KernelVector})
	require.NoError(t, err)

	sa, sd, err := scalar.Forward(signal)
	require.NoError(t, err)
	va, vd, err := vector.Forward(signal)
	require.NoError(t, err)

	for i := range sa {
		assert.InDelta(t, sa[i], va[i], 1e-9)
		assert.InDelta(t, sd[i], vd[i], 1e-9)
	}
}

// TestThresholdedReconstruction exercises in-place coefficient editing
// between Decompose and Reconstruct.
func TestThresholdedReconstruction(t *testing.T) {
	tr, err := New(&Config{Wavelet: "db4"})
	require.NoError(t, err)

	signal := randomSignal(256, 9)
	set, err := tr.Decompose(signal, 2)
	require.NoError(t, err)

	for i := range set.Detail(1) {
		set.Detail(1)[i] = 0
	}

	recon, err := tr.Reconstruct(set)
	require.NoError(t, err)
	require.Len(t, recon, len(signal))

	// Zeroing the finest band removes energy.
	var inE, outE float64
	for i := range signal {
		inE += signal[i] * signal[i]
		outE += recon[i] * recon[i]
	}
	assert.Less(t, outE, inE)
}
