package filters

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// allWavelets returns every shipped filter bank.
func allWavelets(t *testing.T) []Wavelet {
	t.Helper()
	names := []string{"haar", "db2", "db3", "db4", "sym4", "coif1"}
	out := make([]Wavelet, 0, len(names))
	for _, name := range names {
		w, err := ByName(name)
		require.NoError(t, err, "wavelet %q", name)
		out = append(out, w)
	}
	return out
}

func TestOrthogonalityIdentities(t *testing.T) {
	for _, w := range allWavelets(t) {
		t.Run(w.Name, func(t *testing.T) {
			var sum, energy float64
			for _, c := range w.DecompLow {
				sum += c
				energy += c * c
			}
			assert.InDelta(t, math.Sqrt2, sum, 1e-10, "sum of low-pass taps")
			assert.InDelta(t, 1.0, energy, 1e-10, "energy of low-pass taps")

			for k := 1; k < w.Length()/2; k++ {
				var dot float64
				for n := 0; n+2*k < w.Length(); n++ {
					dot += w.DecompLow[n] * w.DecompLow[n+2*k]
				}
				assert.InDelta(t, 0.0, dot, 1e-10, "shift-%d autocorrelation", 2*k)
			}
		})
	}
}

func TestQuadratureMirrorRelation(t *testing.T) {
	for _, w := range allWavelets(t) {
		t.Run(w.Name, func(t *testing.T) {
			l := w.Length()
			require.Len(t, w.DecompHigh, l)
			for n := range l {
				want := w.DecompLow[l-1-n]
				if n%2 != 0 {
					want = -want
				}
				assert.InDelta(t, want, w.DecompHigh[n], 1e-15, "g[%d]", n)
			}

			// High-pass of an orthogonal bank sums to zero.
			var sum float64
			for _, c := range w.DecompHigh {
				sum += c
			}
			assert.InDelta(t, 0.0, sum, 1e-10)
		})
	}
}

func TestHaarCoefficients(t *testing.T) {
	w := Haar()
	c := 1.0 / math.Sqrt2
	assert.Equal(t, []float64{c, c}, w.DecompLow)
	assert.Equal(t, []float64{c, -c}, w.DecompHigh)
}

func TestReconstructionFiltersMatchDecomposition(t *testing.T) {
	for _, w := range allWavelets(t) {
		assert.Equal(t, w.DecompLow, w.ReconLow, "%s recon low", w.Name)
		assert.Equal(t, w.DecompHigh, w.ReconHigh, "%s recon high", w.Name)
	}
}

func TestByNameUnknown(t *testing.T) {
	_, err := ByName("db17")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownWavelet)

	_, err = Daubechies(9)
	assert.ErrorIs(t, err, ErrUnknownWavelet)

	_, err = Symlet(2)
	assert.ErrorIs(t, err, ErrUnknownWavelet)

	_, err = Coiflet(3)
	assert.ErrorIs(t, err, ErrUnknownWavelet)
}

func TestNewRejectsBadFilters(t *testing.T) {
	_, err := New("odd", []float64{0.5, 0.5, 0.5})
	assert.ErrorIs(t, err, ErrInvalidFilter, "odd length")

	_, err = New("short", []float64{1.0})
	assert.ErrorIs(t, err, ErrInvalidFilter, "too short")

	// Correct sum but wrong energy.
	_, err = New("bad-energy", []float64{math.Sqrt2, 0.0})
	assert.ErrorIs(t, err, ErrInvalidFilter)

	// Correct sum but fails the remaining identities.
	_, err = New("bad-shift", []float64{0.5, 0.5, 0.20710678118654757, 0.20710678118654757})
	assert.ErrorIs(t, err, ErrInvalidFilter)
}

func TestNewAcceptsCustomOrthogonal(t *testing.T) {
	// The Haar pair is trivially valid input for a custom bank.
	c := 1.0 / math.Sqrt2
	w, err := New("custom-haar", []float64{c, c})
	require.NoError(t, err)
	assert.Equal(t, 2, w.Length())
}
