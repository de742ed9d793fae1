// Package testutil provides reusable assertion helpers for wavelet transform
// tests.
package testutil

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

// Default tolerances for various test scenarios.
const (
	DefaultTolerance     = 1e-10
	RoundTripTolerance   = 1e-9
	EquivalenceTolerance = 1e-9
)

// AssertNoNaNOrInf verifies that no elements in the slice are NaN or Inf.
func AssertNoNaNOrInf(t *testing.T, s []float64, msgAndArgs ...any) bool {
	t.Helper()
	for i, v := range s {
		if math.IsNaN(v) {
			return assert.Fail(t, "found NaN", "s[%d] is NaN", i)
		}
		if math.IsInf(v, 0) {
			return assert.Fail(t, "found Inf", "s[%d] is Inf", i)
		}
	}
	return true
}

// AssertClose verifies elementwise agreement within a relative tolerance,
// with an absolute floor of the tolerance itself for near-zero values.
func AssertClose(t *testing.T, want, got []float64, tol float64, msgAndArgs ...any) bool {
	t.Helper()
	if !assert.Len(t, got, len(want), msgAndArgs...) {
		return false
	}
	for i := range want {
		diff := math.Abs(want[i] - got[i])
		scale := math.Max(math.Abs(want[i]), 1.0)
		if diff > tol*scale {
			return assert.Fail(t, "slices diverge",
				"index %d: want %v, got %v (diff %v)", i, want[i], got[i], diff)
		}
	}
	return true
}

// AssertRelativeError verifies |got-want| <= tol*max(|want|, 1).
func AssertRelativeError(t *testing.T, want, got, tol float64, msgAndArgs ...any) bool {
	t.Helper()
	diff := math.Abs(want - got)
	scale := math.Max(math.Abs(want), 1.0)
	return assert.LessOrEqual(t, diff, tol*scale, msgAndArgs...)
}

// Energy returns the squared l2 norm of s.
func Energy(s []float64) float64 {
	var sum float64
	for _, v := range s {
		sum += v * v
	}
	return sum
}

// Sine fills a slice with a unit-amplitude sine of the given period.
func Sine(n int, period float64) []float64 {
	s := make([]float64, n)
	for i := range s {
		s[i] = math.Sin(2 * math.Pi * float64(i) / period)
	}
	return s
}
