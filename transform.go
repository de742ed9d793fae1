package wavelet

import (
	"fmt"

	"github.com/tphakala/go-wavelet/internal/engine"
)

// LevelSet holds a decimated multi-level decomposition. Level 1 is the
// finest detail band; the approximation is what remains after the last
// level.
type LevelSet struct {
	d *engine.Decomposition
}

// Levels returns the decomposition depth.
func (s *LevelSet) Levels() int { return s.d.Levels() }

// Approx returns the final approximation band. The slice is owned by the
// set; callers may modify it in place (thresholding) before Reconstruct.
func (s *LevelSet) Approx() []float64 { return s.d.Approx }

// Detail returns the detail band of the given level (1-based). The slice is
// owned by the set and may be modified in place.
func (s *LevelSet) Detail(level int) []float64 {
	if level < 1 || level > s.d.Levels() {
		return nil
	}
	return s.d.Details[level-1]
}

// SignalLen returns the length of the originally decomposed signal.
func (s *LevelSet) SignalLen() int { return s.d.Lengths[0] }

// MODWTSet holds an undecimated decomposition; every band has the original
// signal length.
type MODWTSet struct {
	d *engine.ModwtDecomposition
}

// Levels returns the decomposition depth.
func (s *MODWTSet) Levels() int { return s.d.Levels() }

// Smooth returns the final smooth band.
func (s *MODWTSet) Smooth() []float64 { return s.d.Smooth }

// Detail returns the detail band of the given level (1-based).
func (s *MODWTSet) Detail(level int) []float64 {
	if level < 1 || level > s.d.Levels() {
		return nil
	}
	return s.d.Details[level-1]
}

// Forward runs one analysis level, splitting the signal into approximation
// and detail coefficients. In periodic mode the signal length must be even;
// zero-padding accepts any length and returns ceil(n/2) coefficients per
// band.
func (t *Transformer) Forward(signal []float64) (approx, detail []float64, err error) {
	d, err := t.eng.Decompose(signal, t.wavelet.DecompLow, t.wavelet.DecompHigh, 1)
	if err != nil {
		return nil, nil, err
	}
	return d.Approx, d.Details[0], nil
}

// Inverse runs one synthesis level, rebuilding a signal of length
// 2*len(approx) from one coefficient pair. Exact to rounding in periodic
// mode with an orthogonal filter bank.
func (t *Transformer) Inverse(approx, detail []float64) ([]float64, error) {
	if len(approx) == 0 {
		return nil, fmt.Errorf("%w: empty approximation", ErrInvalidInput)
	}
	if len(approx) != len(detail) {
		return nil, fmt.Errorf("%w: approximation has %d samples, detail %d",
			ErrLengthMismatch, len(approx), len(detail))
	}
	d := &engine.Decomposition{
		Approx:  approx,
		Details: [][]float64{detail},
		Lengths: []int{2 * len(approx), len(approx)},
	}
	return t.eng.Reconstruct(d, t.wavelet.ReconLow, t.wavelet.ReconHigh)
}

// Decompose runs a multi-level decimated analysis. levels must be between 1
// and MaxLevels(len(signal)); the depth check runs before any computation.
func (t *Transformer) Decompose(signal []float64, levels int) (*LevelSet, error) {
	d, err := t.eng.Decompose(signal, t.wavelet.DecompLow, t.wavelet.DecompHigh, levels)
	if err != nil {
		return nil, err
	}
	return &LevelSet{d: d}, nil
}

// Reconstruct inverts a multi-level decomposition back to a signal.
func (t *Transformer) Reconstruct(set *LevelSet) ([]float64, error) {
	if set == nil {
		return nil, fmt.Errorf("%w: nil level set", ErrInvalidInput)
	}
	return t.eng.Reconstruct(set.d, t.wavelet.ReconLow, t.wavelet.ReconHigh)
}

// MODWT runs a maximal-overlap (undecimated) analysis. Every returned band
// has the original signal length, and the transform is shift invariant.
func (t *Transformer) MODWT(signal []float64, levels int) (*MODWTSet, error) {
	d, err := t.eng.Modwt(signal, t.wavelet.DecompLow, t.wavelet.DecompHigh, levels)
	if err != nil {
		return nil, err
	}
	return &MODWTSet{d: d}, nil
}

// MODWTInverse reconstructs a signal from an undecimated decomposition.
// Exact to rounding in periodic mode.
func (t *Transformer) MODWTInverse(set *MODWTSet) ([]float64, error) {
	if set == nil {
		return nil, fmt.Errorf("%w: nil coefficient set", ErrInvalidInput)
	}
	return t.eng.ModwtInverse(set.d, t.wavelet.DecompLow, t.wavelet.DecompHigh)
}
