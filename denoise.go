package wavelet

import (
	"fmt"
	"math"
	"sort"
)

// ShrinkageRule selects how detail coefficients are shrunk toward zero
// during denoising.
type ShrinkageRule int

const (
	// ShrinkSoft moves every coefficient toward zero by the threshold,
	// zeroing those inside it. Smoother results, slight amplitude bias.
	ShrinkSoft ShrinkageRule = iota

	// ShrinkHard zeroes coefficients inside the threshold and keeps the
	// rest untouched. Preserves amplitudes, can leave isolated spikes.
	ShrinkHard
)

// Denoise removes Gaussian noise from a signal by wavelet shrinkage: it
// decomposes the signal, shrinks each detail band with the universal
// threshold estimated from the finest band, and reconstructs.
//
// Periodic extension is used when the signal length stays even through every
// level of the decomposition; signals whose halving chain turns odd fall back
// to zero padding.
func Denoise(signal []float64, waveletName string, rule ShrinkageRule) ([]float64, error) {
	t, err := New(&Config{Wavelet: waveletName, Boundary: BoundaryPeriodic})
	if err != nil {
		return nil, err
	}

	// The depth bound does not depend on the boundary mode.
	levels := min(defaultDenoiseLevels, t.MaxLevels(len(signal)))
	if levels < 1 {
		return nil, fmt.Errorf("%w: %d samples is too short to denoise with %s",
			ErrInvalidInput, len(signal), waveletName)
	}

	if !halvesEvenly(len(signal), levels) {
		if t, err = New(&Config{Wavelet: waveletName, Boundary: BoundaryZeroPad}); err != nil {
			return nil, err
		}
	}

	set, err := t.Decompose(signal, levels)
	if err != nil {
		return nil, err
	}

	sigma := noiseSigma(set.Detail(1))
	threshold := UniversalThreshold(sigma, len(signal))
	for level := 1; level <= set.Levels(); level++ {
		ApplyShrinkage(set.Detail(level), threshold, rule)
	}

	return t.Reconstruct(set)
}

// UniversalThreshold returns Donoho's universal threshold
// sigma*sqrt(2*ln(n)) for a noise deviation estimate and signal length.
func UniversalThreshold(sigma float64, n int) float64 {
	if n < 2 {
		return 0
	}
	return sigma * math.Sqrt(2*math.Log(float64(n)))
}

// ApplyShrinkage shrinks coefficients in place with the given rule.
func ApplyShrinkage(coeffs []float64, threshold float64, rule ShrinkageRule) {
	for i, c := range coeffs {
		mag := math.Abs(c)
		if mag <= threshold {
			coeffs[i] = 0
			continue
		}
		if rule == ShrinkSoft {
			coeffs[i] = math.Copysign(mag-threshold, c)
		}
	}
}

// halvesEvenly reports whether n stays even through the given number of
// halvings, the condition for periodic decomposition to that depth.
func halvesEvenly(n, levels int) bool {
	for range levels {
		if n%2 != 0 {
			return false
		}
		n /= 2
	}
	return true
}

// noiseSigma estimates the noise standard deviation from the finest detail
// band via the median absolute deviation, which is robust to the signal
// content leaking into that band.
func noiseSigma(detail []float64) float64 {
	if len(detail) == 0 {
		return 0
	}
	abs := make([]float64, len(detail))
	for i, v := range detail {
		abs[i] = math.Abs(v)
	}
	sort.Float64s(abs)

	mid := len(abs) / 2
	var median float64
	if len(abs)%2 == 1 {
		median = abs[mid]
	} else {
		median = (abs[mid-1] + abs[mid]) / 2
	}
	return median * madScale
}
