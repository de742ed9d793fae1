package wavelet

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func randomSignal32(n int, seed int64) []float32 {
	rng := rand.New(rand.NewSource(seed))
	s := make([]float32, n)
	for i := range s {
		s[i] = float32(rng.NormFloat64())
	}
	return s
}

func TestForwardInverseFloat32RoundTrip(t *testing.T) {
	signal := randomSignal32(128, 1)

	approx, detail, err := ForwardFloat32(signal, "db2")
	require.NoError(t, err)
	require.Len(t, approx, 64)

	recon, err := InverseFloat32(approx, detail, "db2")
	require.NoError(t, err)
	require.Len(t, recon, 128)
	for i := range signal {
		assert.InDelta(t, float64(signal[i]), float64(recon[i]), 1e-5, "sample %d", i)
	}
}

func TestForwardFloat32MatchesFloat64(t *testing.T) {
	signal64 := randomSignal(96, 2)
	signal32 := toFloat32(signal64)

	wantA, wantD, err := Forward(toFloat64(signal32), "haar")
	require.NoError(t, err)
	gotA, gotD, err := ForwardFloat32(signal32, "haar")
	require.NoError(t, err)

	for i := range wantA {
		assert.InDelta(t, wantA[i], float64(gotA[i]), 1e-6)
		assert.InDelta(t, wantD[i], float64(gotD[i]), 1e-6)
	}
}

func TestDenoiseFloat32(t *testing.T) {
	const n = 512
	rng := rand.New(rand.NewSource(3))
	signal := make([]float32, n)
	for i := range signal {
		signal[i] = float32(math.Sin(2*math.Pi*float64(i)/64) + 0.1*rng.NormFloat64())
	}

	out, err := DenoiseFloat32(signal, "db4", ShrinkSoft)
	require.NoError(t, err)
	assert.Len(t, out, n)
}

func TestFloat32ErrorPropagation(t *testing.T) {
	_, _, err := ForwardFloat32(randomSignal32(64, 4), "db99")
	assert.ErrorIs(t, err, ErrUnknownWavelet)
}
