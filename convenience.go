package wavelet

// One-shot helpers for callers that do not need a long-lived Transformer.
// Each builds a periodic-mode transformer with automatic kernel selection,
// runs one operation, and discards it.

// Forward runs one analysis level with a named wavelet.
func Forward(signal []float64, waveletName string) (approx, detail []float64, err error) {
	t, err := New(&Config{Wavelet: waveletName})
	if err != nil {
		return nil, nil, err
	}
	return t.Forward(signal)
}

// Inverse runs one synthesis level with a named wavelet.
func Inverse(approx, detail []float64, waveletName string) ([]float64, error) {
	t, err := New(&Config{Wavelet: waveletName})
	if err != nil {
		return nil, err
	}
	return t.Inverse(approx, detail)
}

// Decompose runs a multi-level analysis with a named wavelet.
func Decompose(signal []float64, waveletName string, levels int) (*LevelSet, error) {
	t, err := New(&Config{Wavelet: waveletName})
	if err != nil {
		return nil, err
	}
	return t.Decompose(signal, levels)
}

// Reconstruct inverts a multi-level decomposition with a named wavelet.
func Reconstruct(set *LevelSet, waveletName string) ([]float64, error) {
	t, err := New(&Config{Wavelet: waveletName})
	if err != nil {
		return nil, err
	}
	return t.Reconstruct(set)
}

// MODWT runs an undecimated analysis with a named wavelet.
func MODWT(signal []float64, waveletName string, levels int) (*MODWTSet, error) {
	t, err := New(&Config{Wavelet: waveletName})
	if err != nil {
		return nil, err
	}
	return t.MODWT(signal, levels)
}

// MODWTInverse reconstructs from an undecimated decomposition with a named
// wavelet.
func MODWTInverse(set *MODWTSet, waveletName string) ([]float64, error) {
	t, err := New(&Config{Wavelet: waveletName})
	if err != nil {
		return nil, err
	}
	return t.MODWTInverse(set)
}

// Float32 variants. Kernels accumulate in float64 for precision; these
// convert at the API boundary, which costs one pass per direction.

// ForwardFloat32 runs one analysis level on float32 samples.
func ForwardFloat32(signal []float32, waveletName string) (approx, detail []float32, err error) {
	a, d, err := Forward(toFloat64(signal), waveletName)
	if err != nil {
		return nil, nil, err
	}
	return toFloat32(a), toFloat32(d), nil
}

// InverseFloat32 runs one synthesis level on float32 coefficients.
func InverseFloat32(approx, detail []float32, waveletName string) ([]float32, error) {
	out, err := Inverse(toFloat64(approx), toFloat64(detail), waveletName)
	if err != nil {
		return nil, err
	}
	return toFloat32(out), nil
}

// DenoiseFloat32 denoises float32 samples; see Denoise.
func DenoiseFloat32(signal []float32, waveletName string, rule ShrinkageRule) ([]float32, error) {
	out, err := Denoise(toFloat64(signal), waveletName, rule)
	if err != nil {
		return nil, err
	}
	return toFloat32(out), nil
}

func toFloat64(s []float32) []float64 {
	out := make([]float64, len(s))
	for i, v := range s {
		out[i] = float64(v)
	}
	return out
}

func toFloat32(s []float64) []float32 {
	out := make([]float32, len(s))
	for i, v := range s {
		out[i] = float32(v)
	}
	return out
}
