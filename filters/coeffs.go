package filters

import (
	"fmt"
	"math"
)

// Scaling (low-pass decomposition) coefficients for the shipped families.
//
// Haar and DB2 are generated in closed form; the longer Daubechies, Symlet and
// Coiflet filters use the standard published tables (Daubechies, "Ten Lectures
// on Wavelets"), normalized so that sum(h) = sqrt(2).

// Haar returns the Haar wavelet: h = [1/sqrt2, 1/sqrt2].
func Haar() Wavelet {
	c := 1.0 / math.Sqrt2
	return mustOrthogonal("haar", []float64{c, c})
}

// Daubechies returns the Daubechies wavelet with the given number of vanishing
// moments (supported orders: 2, 3, 4; filter lengths 4, 6, 8).
func Daubechies(order int) (Wavelet, error) {
	switch order {
	case 2:
		return mustOrthogonal("db2", db2Coeffs()), nil
	case 3:
		return mustOrthogonal("db3", db3Coeffs), nil
	case 4:
		return mustOrthogonal("db4", db4Coeffs), nil
	default:
		return Wavelet{}, errUnknownOrder("db", order)
	}
}

// Symlet returns the (near-)symmetric Daubechies variant (supported order: 4).
func Symlet(order int) (Wavelet, error) {
	switch order {
	case 4:
		return mustOrthogonal("sym4", sym4Coeffs), nil
	default:
		return Wavelet{}, errUnknownOrder("sym", order)
	}
}

// Coiflet returns the Coifman wavelet (supported order: 1; filter length 6).
func Coiflet(order int) (Wavelet, error) {
	switch order {
	case 1:
		return mustOrthogonal("coif1", coif1Coeffs), nil
	default:
		return Wavelet{}, errUnknownOrder("coif", order)
	}
}

func errUnknownOrder(family string, order int) error {
	return fmt.Errorf("%w: %s order %d has no coefficient table", ErrUnknownWavelet, family, order)
}

// db2Coeffs generates the 4-tap Daubechies filter in closed form:
// h = [(1+sqrt3), (3+sqrt3), (3-sqrt3), (1-sqrt3)] / (4*sqrt2).
func db2Coeffs() []float64 {
	s3 := math.Sqrt(3)
	d := 4 * math.Sqrt2
	return []float64{
		(1 + s3) / d,
		(3 + s3) / d,
		(3 - s3) / d,
		(1 - s3) / d,
	}
}

// db3Coeffs is the 6-tap Daubechies filter (3 vanishing moments).
var db3Coeffs = []float64{
	0.3326705529509569,
	0.8068915093133388,
	0.4598775021193313,
	-0.13501102001039084,
	-0.08544127388224149,
	0.035226291882100656,
}

// db4Coeffs is the 8-tap Daubechies filter (4 vanishing moments).
var db4Coeffs = []float64{
	0.23037781330885523,
	0.7148465705525415,
	0.6308807679295904,
	-0.02798376941698385,
	-0.18703481171888114,
	0.030841381835986965,
	0.032883011666982945,
	-0.010597401784997278,
}

// sym4Coeffs is the 8-tap Symlet filter (4 vanishing moments).
var sym4Coeffs = []float64{
	-0.07576571478927333,
	-0.02963552764599851,
	0.49761866763201545,
	0.8037387518059161,
	0.29785779560527736,
	-0.09921954357684722,
	-0.012603967262037833,
	0.0322231006040427,
}

// coif1Coeffs is the 6-tap Coiflet filter (1 vanishing moment pair).
var coif1Coeffs = []float64{
	-0.01565572813546454,
	-0.0727326195128539,
	0.38486484686420286,
	0.8525720202122554,
	0.3378976624578092,
	-0.0727326195128539,
}
