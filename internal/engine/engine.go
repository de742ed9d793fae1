// Package engine drives multi-level wavelet decompositions over the
// single-level kernels. It owns level scheduling, cache blocking, buffer
// pooling, and the frequency-domain fast path for deep undecimated levels;
// numerical work stays in internal/kernel.
//
// The engine computes in float64. Single-precision public entry points
// convert at the boundary and keep the full-precision accumulation here.
package engine

import (
	"errors"
	"fmt"
	"math"

	"github.com/tphakala/go-wavelet/internal/cpufeat"
	"github.com/tphakala/go-wavelet/internal/kernel"
	"github.com/tphakala/go-wavelet/internal/pool"
)

// Sentinel errors returned by the driver. Callers match with errors.Is.
var (
	// ErrInvalidInput marks empty signals, empty filters, or a length the
	// requested boundary mode cannot handle.
	ErrInvalidInput = errors.New("invalid input")

	// ErrLengthMismatch marks filter pairs or coefficient sets whose
	// lengths disagree.
	ErrLengthMismatch = errors.New("length mismatch")

	// ErrTooManyLevels marks a decomposition depth the signal cannot
	// support.
	ErrTooManyLevels = errors.New("too many levels")
)

// Engine runs multi-level transforms with a fixed boundary mode. An Engine
// owns a buffer pool and the kernels it selects; it is not safe for
// concurrent use.
type Engine struct {
	boundary kernel.Boundary
	force    kernel.Force
	caps     cpufeat.Features
	pool     *pool.Pool[float64]
}

// New returns an engine for the given boundary mode. force overrides kernel
// selection and is normally ForceNone.
func New(boundary kernel.Boundary, force kernel.Force) *Engine {
	return &Engine{
		boundary: boundary,
		force:    force,
		caps:     cpufeat.Detect(),
		pool:     pool.New[float64](),
	}
}

// Boundary returns the engine's boundary mode.
func (e *Engine) Boundary() kernel.Boundary { return e.boundary }

// Decomposition holds the output of a decimated multi-level analysis.
// Details[j] is the detail band of level j+1; Approx is the approximation
// left after the final level. Lengths[j] is the signal length entering level
// j+1, with Lengths[0] the original signal length.
type Decomposition struct {
	Approx  []float64
	Details [][]float64
	Lengths []int
}

// Levels returns the decomposition depth.
func (d *Decomposition) Levels() int { return len(d.Details) }

// MaxLevels returns the deepest decimated decomposition a signal of the given
// length supports: levels run while the current length is at least twice the
// filter length.
func MaxLevels(signalLen, filterLen int) int {
	if signalLen <= 0 || filterLen <= 0 {
		return 0
	}
	levels := 0
	n := signalLen
	for n >= minLevelFactor*filterLen {
		levels++
		n = (n + 1) / 2
	}
	return levels
}

// MaxModwtLevels returns the deepest undecimated decomposition. Level 1 is
// available for any nonempty signal, since circular indexing wraps a filter
// longer than the period; each deeper level requires the à-trous filter of
// the previous level to still fit one period of the signal.
func MaxModwtLevels(signalLen, filterLen int) int {
	if signalLen <= 0 || filterLen < 2 {
		return 0
	}
	levels := 1
	for (filterLen-1)<<levels < signalLen {
		levels++
	}
	return levels
}

// levelLengths validates the requested depth and returns the signal length
// entering each level, index 0 holding the original length. The check runs
// before any level-1 arithmetic.
func (e *Engine) levelLengths(signalLen, filterLen, levels int) ([]int, error) {
	if levels < 1 {
		return nil, fmt.Errorf("%w: levels must be >= 1, got %d", ErrInvalidInput, levels)
	}
	lengths := make([]int, levels+1)
	lengths[0] = signalLen

	n := signalLen
	for level := 1; level <= levels; level++ {
		if n < minLevelFactor*filterLen {
			return nil, fmt.Errorf("%w: level %d needs %d samples, have %d (max %d levels)",
				ErrTooManyLevels, level, minLevelFactor*filterLen, n, MaxLevels(signalLen, filterLen))
		}
		if e.boundary == kernel.Periodic && n%2 != 0 {
			return nil, fmt.Errorf("%w: periodic mode needs an even length at level %d, have %d",
				ErrInvalidInput, level, n)
		}
		n = (n + 1) / 2
		lengths[level] = n
	}
	return lengths, nil
}

func validateFilterPair(low, high []float64) error {
	if len(low) == 0 {
		return fmt.Errorf("%w: empty filter", ErrInvalidInput)
	}
	if len(low) != len(high) {
		return fmt.Errorf("%w: low-pass has %d taps, high-pass %d", ErrLengthMismatch, len(low), len(high))
	}
	return nil
}

// Decompose runs a decimated analysis over the given number of levels. The
// approximation chain ping-pongs through pooled buffers; the returned detail
// bands and final approximation are freshly allocated and safe to retain.
func (e *Engine) Decompose(signal, low, high []float64, levels int) (*Decomposition, error) {
	if len(signal) == 0 {
		return nil, fmt.Errorf("%w: empty signal", ErrInvalidInput)
	}
	if err := validateFilterPair(low, high); err != nil {
		return nil, err
	}
	lengths, err := e.levelLengths(len(signal), len(low), levels)
	if err != nil {
		return nil, err
	}

	scope := e.pool.Scope()
	defer scope.Close()

	d := &Decomposition{
		Details: make([][]float64, 0, levels),
		Lengths: lengths,
	}

	cur := signal
	for level := 1; level <= levels; level++ {
		out := lengths[level]
		detail := make([]float64, out)

		var approx []float64
		if level == levels {
			approx = make([]float64, out)
		} else {
			approx = scope.Acquire(out)
		}

		k := kernel.Select[float64](len(cur), len(low), e.caps, e.force)
		e.analyzeBlocked(k, approx, detail, cur, low, high)

		d.Details = append(d.Details, detail)
		cur = approx
	}
	d.Approx = cur
	return d, nil
}

// Reconstruct inverts a decimated decomposition with the given synthesis
// filter pair. Under periodic extension with an orthogonal filter bank this
// is exact to rounding.
func (e *Engine) Reconstruct(d *Decomposition, low, high []float64) ([]float64, error) {
	if d == nil || d.Levels() == 0 {
		return nil, fmt.Errorf("%w: empty decomposition", ErrInvalidInput)
	}
	if err := validateFilterPair(low, high); err != nil {
		return nil, err
	}
	levels := d.Levels()
	if len(d.Lengths) != levels+1 {
		return nil, fmt.Errorf("%w: %d levels but %d recorded lengths", ErrLengthMismatch, levels, len(d.Lengths))
	}
	if len(d.Approx) != d.Lengths[levels] {
		return nil, fmt.Errorf("%w: approximation has %d samples, want %d", ErrLengthMismatch, len(d.Approx), d.Lengths[levels])
	}
	for j, detail := range d.Details {
		if len(detail) != d.Lengths[j+1] {
			return nil, fmt.Errorf("%w: level %d detail has %d samples, want %d",
				ErrLengthMismatch, j+1, len(detail), d.Lengths[j+1])
		}
	}

	scope := e.pool.Scope()
	defer scope.Close()

	cur := d.Approx
	for level := levels; level >= 1; level-- {
		parentLen := d.Lengths[level-1]

		var parent []float64
		if level == 1 {
			parent = make([]float64, parentLen)
		} else {
			parent = scope.AcquireZeroed(parentLen)
		}

		k := kernel.Select[float64](parentLen, len(low), e.caps, e.force)
		e.synthesizeBlocked(k, parent, cur, low, e.boundary)
		e.synthesizeBlocked(k, parent, d.Details[level-1], high, e.boundary)
		cur = parent
	}
	return cur, nil
}

// analyzeBlocked applies one analysis level in cache-sized output chunks so
// the active signal window, the filter, and both output segments stay
// resident across the chunk.
func (e *Engine) analyzeBlocked(k kernel.Kernel[float64], approx, detail, signal, low, high []float64) {
	out := len(approx)
	for from := 0; from < out; from += blockOutputs {
		to := min(from+blockOutputs, out)
		k.Analyze(approx, detail, signal, low, high, e.boundary, from, to)
	}
}

func (e *Engine) synthesizeBlocked(k kernel.Kernel[float64], dst, coeffs, filter []float64, b kernel.Boundary) {
	n := len(coeffs)
	for from := 0; from < n; from += blockOutputs {
		to := min(from+blockOutputs, n)
		k.UpsampleAdd(dst, coeffs, filter, b, from, to)
	}
}

// ModwtDecomposition holds an undecimated analysis: every band has the
// original signal length. Details[j] is level j+1; Smooth is the final
// smooth band.
type ModwtDecomposition struct {
	Smooth  []float64
	Details [][]float64
}

// Levels returns the decomposition depth.
func (d *ModwtDecomposition) Levels() int { return len(d.Details) }

// Modwt runs the maximal-overlap transform over the given number of levels.
// Analysis filters are the orthogonal pair rescaled by 1/sqrt(2); level j
// spaces taps 2^(j-1) apart.
func (e *Engine) Modwt(signal, low, high []float64, levels int) (*ModwtDecomposition, error) {
	if len(signal) == 0 {
		return nil, fmt.Errorf("%w: empty signal", ErrInvalidInput)
	}
	if err := validateFilterPair(low, high); err != nil {
		return nil, err
	}
	if levels < 1 {
		return nil, fmt.Errorf("%w: levels must be >= 1, got %d", ErrInvalidInput, levels)
	}
	if maxL := MaxModwtLevels(len(signal), len(low)); levels > maxL {
		return nil, fmt.Errorf("%w: %d levels requested, signal of %d samples supports %d",
			ErrTooManyLevels, levels, len(signal), maxL)
	}

	n := len(signal)
	lowS := rescale(low)
	highS := rescale(high)

	scope := e.pool.Scope()
	defer scope.Close()

	d := &ModwtDecomposition{Details: make([][]float64, 0, levels)}

	cur := signal
	for level := 1; level <= levels; level++ {
		stride := 1 << (level - 1)
		detail := make([]float64, n)

		var smooth []float64
		if level == levels {
			smooth = make([]float64, n)
		} else {
			smooth = scope.Acquire(n)
		}

		if e.boundary == kernel.Periodic && useFFTLevel(n, stride) {
			newCircularCorrelator(n, lowS, stride).Correlate(smooth, cur)
			newCircularCorrelator(n, highS, stride).Correlate(detail, cur)
		} else {
			k := kernel.Select[float64](n, len(low), e.caps, e.force)
			e.modwtBlocked(k, smooth, cur, lowS, stride)
			e.modwtBlocked(k, detail, cur, highS, stride)
		}

		d.Details = append(d.Details, detail)
		cur = smooth
	}
	d.Smooth = cur
	return d, nil
}

// ModwtInverse reconstructs the signal from an undecimated decomposition.
// Exact to rounding under periodic extension; zero padding loses edge
// contributions and is approximate near the boundaries.
func (e *Engine) ModwtInverse(d *ModwtDecomposition, low, high []float64) ([]float64, error) {
	if d == nil || d.Levels() == 0 {
		return nil, fmt.Errorf("%w: empty decomposition", ErrInvalidInput)
	}
	if err := validateFilterPair(low, high); err != nil {
		return nil, err
	}
	n := len(d.Smooth)
	for j, detail := range d.Details {
		if len(detail) != n {
			return nil, fmt.Errorf("%w: level %d detail has %d samples, smooth has %d",
				ErrLengthMismatch, j+1, len(detail), n)
		}
	}

	lowS := rescale(low)
	highS := rescale(high)

	scope := e.pool.Scope()
	defer scope.Close()

	levels := d.Levels()
	cur := d.Smooth
	for level := levels; level >= 1; level-- {
		stride := 1 << (level - 1)

		var parent []float64
		if level == 1 {
			parent = make([]float64, n)
		} else {
			parent = scope.AcquireZeroed(n)
		}

		if e.boundary == kernel.Periodic && useFFTLevel(n, stride) {
			newCircularCorrelator(n, lowS, stride).ConvolveAdd(parent, cur)
			newCircularCorrelator(n, highS, stride).ConvolveAdd(parent, d.Details[level-1])
		} else {
			k := kernel.Select[float64](n, len(low), e.caps, e.force)
			e.modwtAddBlocked(k, parent, cur, lowS, stride)
			e.modwtAddBlocked(k, parent, d.Details[level-1], highS, stride)
		}
		cur = parent
	}
	return cur, nil
}

func (e *Engine) modwtBlocked(k kernel.Kernel[float64], dst, signal, filter []float64, stride int) {
	n := len(dst)
	for from := 0; from < n; from += blockOutputs {
		to := min(from+blockOutputs, n)
		k.Modwt(dst, signal, filter, stride, e.boundary, from, to)
	}
}

func (e *Engine) modwtAddBlocked(k kernel.Kernel[float64], dst, coeffs, filter []float64, stride int) {
	n := len(dst)
	for from := 0; from < n; from += blockOutputs {
		to := min(from+blockOutputs, n)
		k.ModwtAdd(dst, coeffs, filter, stride, e.boundary, from, to)
	}
}

// rescale returns the filter scaled by 1/sqrt(2), the undecimated analysis
// normalization.
func rescale(filter []float64) []float64 {
	out := make([]float64, len(filter))
	inv := 1.0 / math.Sqrt2
	for i, v := range filter {
		out[i] = v * inv
	}
	return out
}
