package cpufeat

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectReturnsValidFeatures(t *testing.T) {
	ResetDetection()
	t.Cleanup(ResetDetection)

	f := Detect()

	assert.GreaterOrEqual(t, f.VectorWidth, 1, "vector width must be at least 1")
	assert.Equal(t, runtime.GOARCH, f.Arch)
	assert.NotEmpty(t, f.Name)
}

func TestDetectIsStable(t *testing.T) {
	ResetDetection()
	t.Cleanup(ResetDetection)

	first := Detect()
	for range 10 {
		assert.Equal(t, first, Detect(), "repeated detection must return the same snapshot")
	}
}

func TestSetForcedOverridesDetection(t *testing.T) {
	t.Cleanup(ResetDetection)

	want := Features{VectorWidth: 4, HasGatherScatter: true, Arch: "amd64", Name: "avx2"}
	SetForced(want)

	require.Equal(t, want, Detect())

	ResetDetection()
	got := Detect()
	assert.Equal(t, runtime.GOARCH, got.Arch, "reset must return to hardware detection")
}

func TestDetectConcurrent(t *testing.T) {
	ResetDetection()
	t.Cleanup(ResetDetection)

	const goroutines = 16
	results := make(chan Features, goroutines)
	for range goroutines {
		go func() {
			results <- Detect()
		}()
	}

	first := <-results
	for range goroutines - 1 {
		assert.Equal(t, first, <-results)
	}
}
