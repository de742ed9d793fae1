package wavelet

// DefaultWavelet is the filter bank used when callers do not pick one.
// Four vanishing moments balance smoothness against support width for
// general-purpose signals.
const DefaultWavelet = "db4"

// Denoising constants.
const (
	// madScale converts the median absolute deviation of Gaussian noise to
	// its standard deviation (1/Phi^-1(3/4)).
	madScale = 1.4826

	// defaultDenoiseLevels bounds the decomposition depth of the one-shot
	// denoiser; deeper levels mostly carry signal, not noise.
	defaultDenoiseLevels = 4
)
