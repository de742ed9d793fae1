package wavelet

import (
	"errors"
	"fmt"

	"github.com/tphakala/go-wavelet/filters"
	"github.com/tphakala/go-wavelet/internal/cpufeat"
	"github.com/tphakala/go-wavelet/internal/engine"
	"github.com/tphakala/go-wavelet/internal/kernel"
)

// BoundaryMode selects how transforms treat samples past the signal edge.
type BoundaryMode int

const (
	// BoundaryPeriodic wraps the signal circularly. Requires an even length
	// at every decimated level and gives perfect reconstruction with
	// orthogonal filter banks.
	BoundaryPeriodic BoundaryMode = iota

	// BoundaryZeroPad treats samples past the edge as zero. Works for any
	// length; reconstruction is approximate near the edges for filters
	// longer than two taps.
	BoundaryZeroPad
)

// String returns the boundary mode name.
func (m BoundaryMode) String() string {
	switch m {
	case BoundaryPeriodic:
		return "periodic"
	case BoundaryZeroPad:
		return "zero-padding"
	default:
		return "unknown"
	}
}

// KernelSelection controls which compute kernel the transformer uses.
type KernelSelection int

const (
	// KernelAuto selects by detected CPU capabilities and signal size.
	KernelAuto KernelSelection = iota

	// KernelScalar forces the scalar reference implementation.
	KernelScalar

	// KernelVector requests the widest vector implementation the platform
	// supports, falling back to scalar where none exists.
	KernelVector
)

// Config holds transform configuration.
type Config struct {
	// Wavelet names a built-in filter bank: "haar", "db2", "db3", "db4",
	// "sym4", or "coif1". Ignored when Custom is set.
	Wavelet string

	// Custom supplies a caller-built filter bank, typically from
	// filters.New. Takes precedence over Wavelet.
	Custom *filters.Wavelet

	// Boundary selects the signal extension mode.
	Boundary BoundaryMode

	// Kernel overrides compute kernel selection. Leave as KernelAuto
	// unless comparing implementations.
	Kernel KernelSelection
}

// Common errors returned by the package.
var (
	// ErrInvalidConfig indicates invalid configuration parameters.
	ErrInvalidConfig = errors.New("invalid transform configuration")

	// ErrInvalidInput indicates an empty or unusable signal.
	ErrInvalidInput = engine.ErrInvalidInput

	// ErrLengthMismatch indicates coefficient slices whose lengths disagree.
	ErrLengthMismatch = engine.ErrLengthMismatch

	// ErrTooManyLevels indicates a decomposition depth the signal cannot
	// support.
	ErrTooManyLevels = engine.ErrTooManyLevels

	// ErrUnknownWavelet indicates an unrecognized wavelet name.
	ErrUnknownWavelet = filters.ErrUnknownWavelet
)

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Custom == nil && c.Wavelet == "" {
		return fmt.Errorf("%w: no wavelet named", ErrInvalidConfig)
	}
	if c.Custom != nil && c.Custom.Length() == 0 {
		return fmt.Errorf("%w: custom filter bank is empty", ErrInvalidConfig)
	}
	if c.Boundary != BoundaryPeriodic && c.Boundary != BoundaryZeroPad {
		return fmt.Errorf("%w: unknown boundary mode %d", ErrInvalidConfig, c.Boundary)
	}
	if c.Kernel != KernelAuto && c.Kernel != KernelScalar && c.Kernel != KernelVector {
		return fmt.Errorf("%w: unknown kernel selection %d", ErrInvalidConfig, c.Kernel)
	}
	return nil
}

// Transformer runs wavelet transforms with a fixed filter bank and boundary
// mode. It owns pooled working buffers and is not safe for concurrent use;
// construct one per goroutine.
type Transformer struct {
	wavelet filters.Wavelet
	eng     *engine.Engine
	config  Config
}

// New creates a transformer from the configuration.
func New(config *Config) (*Transformer, error) {
	if config == nil {
		return nil, fmt.Errorf("%w: config is nil", ErrInvalidConfig)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	var w filters.Wavelet
	if config.Custom != nil {
		w = *config.Custom
	} else {
		var err error
		w, err = filters.ByName(config.Wavelet)
		if err != nil {
			return nil, err
		}
	}

	return &Transformer{
		wavelet: w,
		eng:     engine.New(toKernelBoundary(config.Boundary), toKernelForce(config.Kernel)),
		config:  *config,
	}, nil
}

// Wavelet returns the transformer's filter bank.
func (t *Transformer) Wavelet() filters.Wavelet { return t.wavelet }

// Boundary returns the transformer's boundary mode.
func (t *Transformer) Boundary() BoundaryMode { return t.config.Boundary }

// MaxLevels returns the deepest decimated decomposition supported for a
// signal of the given length.
func (t *Transformer) MaxLevels(signalLen int) int {
	return engine.MaxLevels(signalLen, t.wavelet.Length())
}

// MaxMODWTLevels returns the deepest undecimated decomposition supported for
// a signal of the given length.
func (t *Transformer) MaxMODWTLevels(signalLen int) int {
	return engine.MaxModwtLevels(signalLen, t.wavelet.Length())
}

func toKernelBoundary(m BoundaryMode) kernel.Boundary {
	if m == BoundaryZeroPad {
		return kernel.ZeroPad
	}
	return kernel.Periodic
}

func toKernelForce(s KernelSelection) kernel.Force {
	switch s {
	case KernelScalar:
		return kernel.ForceScalar
	case KernelVector:
		return kernel.ForceVector
	default:
		return kernel.ForceNone
	}
}

// Info describes the transformer's configuration and the compute resources
// it will use.
type Info struct {
	// Wavelet is the filter bank name.
	Wavelet string

	// FilterLength is the number of filter taps.
	FilterLength int

	// Boundary is the signal extension mode.
	Boundary string

	// VectorWidth is the detected SIMD lane count for float64.
	VectorWidth int

	// CPUName describes the detected instruction set.
	CPUName string
}

// GetInfo returns information about a transformer.
func (t *Transformer) GetInfo() Info {
	caps := cpufeat.Detect()
	return Info{
		Wavelet:      t.wavelet.Name,
		FilterLength: t.wavelet.Length(),
		Boundary:     t.config.Boundary.String(),
		VectorWidth:  caps.VectorWidth,
		CPUName:      caps.Name,
	}
}
