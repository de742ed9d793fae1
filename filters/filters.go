// Package filters provides orthogonal wavelet filter banks for the transform
// engine.
//
// Each Wavelet carries four coefficient arrays: the low-pass and high-pass
// decomposition filters and their reconstruction counterparts. For the
// orthogonal families shipped here the reconstruction filters equal the
// decomposition filters, because the periodic inverse transform is the
// transpose of the forward transform.
//
// The high-pass filter is always the quadrature mirror of the low-pass:
// g[n] = (-1)^n * h[L-1-n]. Every filter bank is checked once, at
// construction time, against the orthogonality identities
//
//	sum(h)      = sqrt(2)
//	sum(h[i]^2) = 1
//	sum(h[n] * h[n+2k]) = 0 for all k != 0
//
// so the transform kernels can trust coefficients without re-validating on
// every call.
package filters

import (
	"errors"
	"fmt"
	"math"

	"github.com/tphakala/go-wavelet/internal/simdops"
)

// validationTolerance bounds the residual of the orthogonality identities for
// a filter bank to be accepted. The shipped tables hold to ~1e-10.
const validationTolerance = 1e-8

// ErrUnknownWavelet indicates a wavelet name or order with no coefficient table.
var ErrUnknownWavelet = errors.New("unknown wavelet")

// ErrInvalidFilter indicates coefficients that fail the orthogonality identities.
var ErrInvalidFilter = errors.New("invalid filter coefficients")

// Wavelet is an orthogonal wavelet filter bank.
type Wavelet struct {
	// Name identifies the wavelet (e.g., "haar", "db4", "sym4").
	Name string

	// DecompLow is the low-pass (scaling) decomposition filter h.
	DecompLow []float64

	// DecompHigh is the high-pass (wavelet) decomposition filter g,
	// the quadrature mirror of DecompLow.
	DecompHigh []float64

	// ReconLow is the low-pass reconstruction filter.
	ReconLow []float64

	// ReconHigh is the high-pass reconstruction filter.
	ReconHigh []float64
}

// Length returns the number of filter taps.
func (w Wavelet) Length() int {
	return len(w.DecompLow)
}

// New builds a wavelet from a low-pass decomposition filter, deriving the
// high-pass filter by quadrature mirroring and validating the orthogonality
// identities. Use this for custom filter banks; the shipped families are
// available through Haar, Daubechies, Symlet and Coiflet.
func New(name string, decompLow []float64) (Wavelet, error) {
	if len(decompLow) < 2 || len(decompLow)%2 != 0 {
		return Wavelet{}, fmt.Errorf("%w: filter length must be even and >= 2, got %d",
			ErrInvalidFilter, len(decompLow))
	}

	h := make([]float64, len(decompLow))
	copy(h, decompLow)

	w := Wavelet{
		Name:       name,
		DecompLow:  h,
		DecompHigh: quadratureMirror(h),
		ReconLow:   h,
	}
	w.ReconHigh = w.DecompHigh

	if err := w.validate(); err != nil {
		return Wavelet{}, err
	}
	return w, nil
}

// quadratureMirror derives the high-pass filter g[n] = (-1)^n * h[L-1-n].
func quadratureMirror(h []float64) []float64 {
	l := len(h)
	g := make([]float64, l)
	for n := range l {
		if n%2 == 0 {
			g[n] = h[l-1-n]
		} else {
			g[n] = -h[l-1-n]
		}
	}
	return g
}

// validate checks the orthogonality identities on the low-pass filter.
func (w Wavelet) validate() error {
	h := w.DecompLow
	ops := simdops.Float64Ops()

	sum := ops.Sum(h)
	energy := ops.DotProductUnsafe(h, h)
	if math.Abs(sum-math.Sqrt2) > validationTolerance {
		return fmt.Errorf("%w: %s: sum(h) = %.12f, want sqrt(2)", ErrInvalidFilter, w.Name, sum)
	}
	if math.Abs(energy-1.0) > validationTolerance {
		return fmt.Errorf("%w: %s: sum(h^2) = %.12f, want 1", ErrInvalidFilter, w.Name, energy)
	}

	// Even-shift orthogonality: sum(h[n]*h[n+2k]) = 0 for k != 0.
	for k := 1; k < len(h)/2; k++ {
		dot := ops.DotProductUnsafe(h[:len(h)-2*k], h[2*k:])
		if math.Abs(dot) > validationTolerance {
			return fmt.Errorf("%w: %s: shift-%d autocorrelation = %.2e, want 0",
				ErrInvalidFilter, w.Name, 2*k, dot)
		}
	}
	return nil
}

// mustOrthogonal builds a wavelet from a vetted compile-time table.
// A validation failure here is a defect in the table itself.
func mustOrthogonal(name string, decompLow []float64) Wavelet {
	w, err := New(name, decompLow)
	if err != nil {
		panic(fmt.Sprintf("filters: built-in table %q is corrupt: %v", name, err))
	}
	return w
}

// ByName returns the wavelet for a family identifier such as "haar", "db2",
// "db3", "db4", "sym4" or "coif1".
func ByName(name string) (Wavelet, error) {
	switch name {
	case "haar", "db1":
		return Haar(), nil
	case "db2":
		return Daubechies(2)
	case "db3":
		return Daubechies(3)
	case "db4":
		return Daubechies(4)
	case "sym4":
		return Symlet(4)
	case "coif1":
		return Coiflet(1)
	default:
		return Wavelet{}, fmt.Errorf("%w: %q", ErrUnknownWavelet, name)
	}
}
