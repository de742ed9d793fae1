package kernel

import (
	"fmt"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tphakala/go-wavelet/filters"
	"github.com/tphakala/go-wavelet/internal/cpufeat"
)

// equivalenceTol bounds the relative divergence allowed between kernel
// implementations; they reassociate floating point sums differently.
const equivalenceTol = 1e-9

func testKernels(t *testing.T) map[string]Kernel[float64] {
	t.Helper()
	wide := cpufeat.Features{VectorWidth: 8, HasGatherScatter: true, Arch: "amd64", Name: "avx512"}
	return map[string]Kernel[float64]{
		"vector": NewVector[float64](wide),
		"narrow": NewNarrow[float64](),
	}
}

func requireClose(t *testing.T, want, got []float64, label string) {
	t.Helper()
	require.Len(t, got, len(want), label)
	for i := range want {
		diff := math.Abs(want[i] - got[i])
		scale := math.Max(math.Abs(want[i]), 1.0)
		require.LessOrEqualf(t, diff, equivalenceTol*scale,
			"%s diverges at %d: want %v got %v", label, i, want[i], got[i])
	}
}

func randomSignal(n int, seed int64) []float64 {
	rng := rand.New(rand.NewSource(seed))
	s := make([]float64, n)
	for i := range s {
		s[i] = rng.NormFloat64()
	}
	return s
}

// TestKernelEquivalenceAnalyze cross-checks every vector kernel against the
// scalar reference over all built-in filters, both boundary modes, and signal
// lengths that exercise interior, boundary, and tail handling.
func TestKernelEquivalenceAnalyze(t *testing.T) {
	scalar := NewScalar[float64]()
	names := []string{"haar", "db2", "db3", "db4", "sym4", "coif1"}
	lengths := []int{8, 64, 100, 256}

	for _, name := range names {
		w, err := filters.ByName(name)
		require.NoError(t, err)
		for _, n := range lengths {
			for _, b := range []Boundary{Periodic, ZeroPad} {
				signal := randomSignal(n, int64(n))
				half := n / 2

				wantA := make([]float64, half)
				wantD := make([]float64, half)
				scalar.Analyze(wantA, wantD, signal, w.DecompLow, w.DecompHigh, b, 0, half)

				for kname, k := range testKernels(t) {
					label := fmt.Sprintf("%s/%s/n=%d/%s", kname, name, n, b)
					gotA := make([]float64, half)
					gotD := make([]float64, half)
					k.Analyze(gotA, gotD, signal, w.DecompLow, w.DecompHigh, b, 0, half)
					requireClose(t, wantA, gotA, label+" approx")
					requireClose(t, wantD, gotD, label+" detail")
				}
			}
		}
	}
}

// TestKernelEquivalenceSynthesis cross-checks UpsampleAdd, including its
// accumulate-into-destination contract.
func TestKernelEquivalenceSynthesis(t *testing.T) {
	scalar := NewScalar[float64]()
	for _, name := range []string{"haar", "db2", "db4", "coif1"} {
		w, err := filters.ByName(name)
		require.NoError(t, err)
		for _, n := range []int{16, 128, 250} {
			half := n / 2
			coeffs := randomSignal(half, int64(n)+1)
			// Sprinkle exact zeros so the skip path is exercised.
			for i := 0; i < half; i += 5 {
				coeffs[i] = 0
			}
			base := randomSignal(n, int64(n)+2)

			for _, b := range []Boundary{Periodic, ZeroPad} {
				want := append([]float64(nil), base...)
				scalar.UpsampleAdd(want, coeffs, w.ReconLow, b, 0, half)

				for kname, k := range testKernels(t) {
					got := append([]float64(nil), base...)
					k.UpsampleAdd(got, coeffs, w.ReconLow, b, 0, half)
					requireClose(t, want, got, fmt.Sprintf("%s/%s/n=%d/%s", kname, name, n, b))
				}
			}
		}
	}
}

// TestKernelEquivalenceModwt cross-checks the undecimated transform and its
// transpose across à-trous strides.
func TestKernelEquivalenceModwt(t *testing.T) {
	scalar := NewScalar[float64]()
	for _, name := range []string{"haar", "db2", "db4"} {
		w, err := filters.ByName(name)
		require.NoError(t, err)
		low := scaleFilter(w.DecompLow, 1/sqrt2)

		for _, stride := range []int{1, 2, 4, 8} {
			const n = 200
			signal := randomSignal(n, int64(stride))

			want := make([]float64, n)
			scalar.Modwt(want, signal, low, stride, Periodic, 0, n)

			for kname, k := range testKernels(t) {
				label := fmt.Sprintf("%s/%s/stride=%d", kname, name, stride)
				got := make([]float64, n)
				k.Modwt(got, signal, low, stride, Periodic, 0, n)
				requireClose(t, want, got, label)

				wantInv := make([]float64, n)
				scalar.ModwtAdd(wantInv, want, low, stride, Periodic, 0, n)
				gotInv := make([]float64, n)
				k.ModwtAdd(gotInv, want, low, stride, Periodic, 0, n)
				requireClose(t, wantInv, gotInv, label+" transpose")
			}
		}
	}
}

// TestKernelEquivalenceRangeSplit verifies that vector kernels honor the
// from/to contract used by the cache-blocked driver.
func TestKernelEquivalenceRangeSplit(t *testing.T) {
	w, err := filters.ByName("db4")
	require.NoError(t, err)

	const n = 256
	signal := randomSignal(n, 42)
	half := n / 2

	for kname, k := range testKernels(t) {
		full := make([]float64, half)
		k.ConvolveDown(full, signal, w.DecompLow, Periodic, 0, half)

		split := make([]float64, half)
		k.ConvolveDown(split, signal, w.DecompLow, Periodic, 0, 40)
		k.ConvolveDown(split, signal, w.DecompLow, Periodic, 40, 90)
		k.ConvolveDown(split, signal, w.DecompLow, Periodic, 90, half)

		requireClose(t, full, split, kname)
	}
}

// TestKernelEquivalenceFloat32 spot-checks the float32 instantiation of each
// kernel against float64 scalar ground truth at single precision tolerance.
func TestKernelEquivalenceFloat32(t *testing.T) {
	w, err := filters.ByName("db2")
	require.NoError(t, err)
	low32 := make([]float32, len(w.DecompLow))
	high32 := make([]float32, len(w.DecompHigh))
	for i := range w.DecompLow {
		low32[i] = float32(w.DecompLow[i])
		high32[i] = float32(w.DecompHigh[i])
	}

	const n = 128
	signal := randomSignal(n, 9)
	signal32 := make([]float32, n)
	for i := range signal {
		signal32[i] = float32(signal[i])
	}
	half := n / 2

	wantA := make([]float64, half)
	wantD := make([]float64, half)
	NewScalar[float64]().Analyze(wantA, wantD, signal, w.DecompLow, w.DecompHigh, Periodic, 0, half)

	wide := cpufeat.Features{VectorWidth: 8, HasGatherScatter: true, Arch: "amd64", Name: "avx512"}
	for kname, k := range map[string]Kernel[float32]{
		"scalar": NewScalar[float32](),
		"vector": NewVector[float32](wide),
		"narrow": NewNarrow[float32](),
	} {
		gotA := make([]float32, half)
		gotD := make([]float32, half)
		k.Analyze(gotA, gotD, signal32, low32, high32, Periodic, 0, half)
		for i := range wantA {
			require.InDeltaf(t, wantA[i], float64(gotA[i]), 1e-5, "%s approx[%d]", kname, i)
			require.InDeltaf(t, wantD[i], float64(gotD[i]), 1e-5, "%s detail[%d]", kname, i)
		}
	}
}
