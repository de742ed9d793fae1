package engine

import (
	"math/cmplx"

	"github.com/tphakala/simd/c128"
	"github.com/tphakala/simd/f64"
	"gonum.org/v1/gonum/dsp/fourier"
)

// circularCorrelator evaluates periodic undecimated filtering in the
// frequency domain. Direct evaluation walks taps spaced stride apart, so at
// deep levels every tap lands on its own cache line; one forward FFT, a bin
// product, and one inverse FFT replace that strided traffic with sequential
// passes.
//
// The à-trous filter is embedded at positions (j*stride) mod n once at
// construction and transformed; analysis correlates (conjugated spectrum),
// synthesis convolves (plain spectrum).
type circularCorrelator struct {
	fft   *fourier.FFT
	n     int
	scale float64 // 1/n, gonum's inverse transform is unnormalized

	analysisFFT  []complex128
	synthesisFFT []complex128

	signalFFT  []complex128
	productFFT []complex128
	result     []float64
	padded     []float64
}

// newCircularCorrelator builds a correlator for one level: filter taps spaced
// stride apart over a period of n samples.
func newCircularCorrelator(n int, filter []float64, stride int) *circularCorrelator {
	fft := fourier.NewFFT(n)

	embedded := make([]float64, n)
	for j, tap := range filter {
		embedded[(j*stride)%n] += tap
	}
	synthesis := fft.Coefficients(nil, embedded)

	analysis := make([]complex128, len(synthesis))
	for i, v := range synthesis {
		analysis[i] = cmplx.Conj(v)
	}

	bins := len(synthesis)
	return &circularCorrelator{
		fft:          fft,
		n:            n,
		scale:        1.0 / float64(n),
		analysisFFT:  analysis,
		synthesisFFT: synthesis,
		signalFFT:    make([]complex128, bins),
		productFFT:   make([]complex128, bins),
		result:       make([]float64, n),
		padded:       make([]float64, n),
	}
}

// Correlate computes dst[i] = sum_j filter[j]*signal[(i+j*stride) mod n],
// the analysis direction.
func (c *circularCorrelator) Correlate(dst, signal []float64) {
	c.apply(dst, signal, c.analysisFFT)
}

// ConvolveAdd accumulates dst[i] += sum_j filter[j]*coeffs[(i-j*stride) mod n],
// the synthesis transpose.
func (c *circularCorrelator) ConvolveAdd(dst, coeffs []float64) {
	c.apply(c.result, coeffs, c.synthesisFFT)
	for i := range dst {
		dst[i] += c.result[i]
	}
}

func (c *circularCorrelator) apply(dst, signal []float64, kernelFFT []complex128) {
	c.signalFFT = c.fft.Coefficients(c.signalFFT, signal)
	c128.Mul(c.productFFT, c.signalFFT, kernelFFT)
	out := c.fft.Sequence(c.padded, c.productFFT)
	f64.Scale(dst[:c.n], out, c.scale)
}

// useFFTLevel reports whether the frequency-domain path pays off for one
// undecimated level.
func useFFTLevel(n, stride int) bool {
	return stride >= fftMinStride && n >= fftMinSignal
}
