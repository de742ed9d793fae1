// Package wavelet implements fast discrete wavelet transforms for
// one-dimensional signals: the decimated DWT and the maximal-overlap
// (undecimated) MODWT, both with periodic and zero-padding boundary
// handling.
//
// # Quick start
//
// One-shot helpers cover the common cases:
//
//	approx, detail, err := wavelet.Forward(signal, "db4")
//	recon, err := wavelet.Inverse(approx, detail, "db4")
//
//	set, err := wavelet.Decompose(signal, "db4", 3)
//	clean, err := wavelet.Denoise(noisy, "db4", wavelet.ShrinkSoft)
//
// For repeated transforms, build a Transformer once and reuse it; it keeps
// pooled working buffers across calls:
//
//	t, err := wavelet.New(&wavelet.Config{Wavelet: "sym4"})
//	set, err := t.Decompose(signal, 4)
//	recon, err := t.Reconstruct(set)
//
// # Filter banks
//
// Built-in orthogonal filter banks: "haar" (alias "db1"), "db2", "db3",
// "db4", "sym4", and "coif1". Custom orthogonal banks can be constructed
// with the filters subpackage, which derives the high-pass and
// reconstruction filters by quadrature mirror and validates the
// orthogonality identities at construction.
//
// # Boundary modes
//
// BoundaryPeriodic wraps the signal circularly. With an orthogonal bank the
// transform is then an orthonormal change of basis: reconstruction is exact
// to rounding and coefficient energy equals signal energy. It requires an
// even length at every decimated level.
//
// BoundaryZeroPad reads zeros past the edges and accepts any length,
// producing ceil(n/2) coefficients per band. Note that some wavelet
// libraries truncate odd lengths to floor(n/2) coefficients instead; the
// extra coefficient here carries the final sample, so lengths recorded in a
// LevelSet differ from the floor convention for odd n. Reconstruction is
// approximate within one filter width of the edges.
//
// # Performance
//
// Transforms run on one of three compute kernels: a scalar reference, a
// generic-width vector kernel built on SIMD dot products, and a two-lane
// kernel for narrow vector units. Selection is automatic from detected CPU
// capabilities and signal size; Config.Kernel can force a specific
// implementation. Multi-level drivers process coefficients in cache-sized
// blocks and recycle intermediate buffers from an aligned pool. Deep MODWT
// levels, whose strided tap patterns defeat caches, switch to an FFT-based
// circular convolution.
//
// All computation accumulates in float64. The Float32 helper variants
// convert at the API boundary.
//
// A Transformer is not safe for concurrent use; construct one per
// goroutine. Distinct Transformers share no state.
package wavelet
