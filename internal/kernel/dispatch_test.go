package kernel

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tphakala/go-wavelet/internal/cpufeat"
)

func TestSelectByCapabilities(t *testing.T) {
	avx2 := cpufeat.Features{VectorWidth: 4, Arch: "amd64", Name: "avx2"}
	sse2 := cpufeat.Features{VectorWidth: 2, Arch: "amd64", Name: "sse2"}
	none := cpufeat.Features{VectorWidth: 1, Arch: "riscv64", Name: "scalar"}

	tests := []struct {
		name      string
		signalLen int
		filterLen int
		caps      cpufeat.Features
		force     Force
		want      string
	}{
		{"wide vector unit", 4096, 8, avx2, ForceNone, "vector"},
		{"two lane unit", 4096, 8, sse2, ForceNone, "narrow"},
		{"no vector unit", 4096, 8, none, ForceNone, "scalar"},
		{"small signal stays scalar", 32, 8, avx2, ForceNone, "scalar"},
		{"filter dominating signal stays scalar", 128, 128, avx2, ForceNone, "scalar"},
		{"force scalar wins", 4096, 8, avx2, ForceScalar, "scalar"},
		{"force vector ignores size", 32, 8, avx2, ForceVector, "vector"},
		{"force vector on scalar platform falls back", 4096, 8, none, ForceVector, "scalar"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			k := Select[float64](tt.signalLen, tt.filterLen, tt.caps, tt.force)
			assert.Equal(t, tt.want, k.Name())
		})
	}
}

func TestBoundaryString(t *testing.T) {
	assert.Equal(t, "periodic", Periodic.String())
	assert.Equal(t, "zero-padding", ZeroPad.String())
}
