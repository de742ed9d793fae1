package wavelet

import (
	"fmt"

	"github.com/tphakala/go-wavelet/filters"
)

// TransformBuilder assembles a Transformer configuration step by step.
// Methods return the builder for chaining; Build reports the first error
// encountered.
type TransformBuilder struct {
	config Config
	err    error
}

// NewTransformBuilder returns a builder with the package defaults: the
// DefaultWavelet filter bank, periodic extension, automatic kernel
// selection.
func NewTransformBuilder() *TransformBuilder {
	return &TransformBuilder{
		config: Config{
			Wavelet:  DefaultWavelet,
			Boundary: BoundaryPeriodic,
			Kernel:   KernelAuto,
		},
	}
}

// Wavelet selects a built-in filter bank by name.
func (b *TransformBuilder) Wavelet(name string) *TransformBuilder {
	if b.err == nil {
		if _, err := filters.ByName(name); err != nil {
			b.err = err
		}
		b.config.Wavelet = name
		b.config.Custom = nil
	}
	return b
}

// CustomFilter supplies a caller-built filter bank.
func (b *TransformBuilder) CustomFilter(w *filters.Wavelet) *TransformBuilder {
	if b.err == nil {
		if w == nil {
			b.err = fmt.Errorf("%w: nil custom filter", ErrInvalidConfig)
		}
		b.config.Custom = w
	}
	return b
}

// Boundary selects the signal extension mode.
func (b *TransformBuilder) Boundary(m BoundaryMode) *TransformBuilder {
	b.config.Boundary = m
	return b
}

// Kernel overrides compute kernel selection.
func (b *TransformBuilder) Kernel(s KernelSelection) *TransformBuilder {
	b.config.Kernel = s
	return b
}

// Build validates the accumulated configuration and constructs the
// transformer.
func (b *TransformBuilder) Build() (*Transformer, error) {
	if b.err != nil {
		return nil, b.err
	}
	return New(&b.config)
}
