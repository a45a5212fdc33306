package indices

import (
	"math"
	"math/cmplx"
	"sort"

	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/stat"
)

// Mag7Fields lists the Magnificent Seven indicators in output order.
var Mag7Fields = []string{
	"mean_l_moment",
	"l_cv",
	"l_skew",
	"l_kurt",
	"ar1_coefficient",
	"amplitude",
	"phase",
}

// Mag7 computes the Magnificent Seven indicators: the first four sample
// L-moment statistics, the lag-1 autocorrelation, and the amplitude and phase
// of the annual cycle.
func Mag7(flows []float64) Values {
	lam1, tau2, tau3, tau4 := LMoments(flows)

	ar1 := math.NaN()
	if len(flows) > 1 {
		ar1 = stat.Correlation(flows[:len(flows)-1], flows[1:], nil)
	}

	amplitude, phase := annualHarmonic(flows)

	return Values{
		"mean_l_moment":   lam1,
		"l_cv":            tau2,
		"l_skew":          tau3,
		"l_kurt":          tau4,
		"ar1_coefficient": ar1,
		"amplitude":       amplitude,
		"phase":           phase,
	}
}

// LMoments returns λ1 and the L-moment ratios τ2 (L-CV), τ3 (L-skew), and
// τ4 (L-kurtosis), estimated through unbiased probability-weighted moments.
// Samples of fewer than four values yield all NaN.
func LMoments(values []float64) (lam1, tau2, tau3, tau4 float64) {
	n := len(values)
	if n < 4 {
		nan := math.NaN()
		return nan, nan, nan, nan
	}

	x := make([]float64, n)
	copy(x, values)
	sort.Float64s(x)

	fn := float64(n)
	var b0, b1, b2, b3 float64
	for i, v := range x {
		fi := float64(i + 1)
		b0 += v
		b1 += (fi - 1) / (fn - 1) * v
		b2 += (fi - 1) * (fi - 2) / ((fn - 1) * (fn - 2)) * v
		b3 += (fi - 1) * (fi - 2) * (fi - 3) / ((fn - 1) * (fn - 2) * (fn - 3)) * v
	}
	b0 /= fn
	b1 /= fn
	b2 /= fn
	b3 /= fn

	lam1 = b0
	lam2 := 2*b1 - b0
	lam3 := 6*b2 - 6*b1 + b0
	lam4 := 20*b3 - 30*b2 + 12*b1 - b0

	tau2 = ratio(lam2, lam1)
	tau3 = ratio(lam3, lam2)
	tau4 = ratio(lam4, lam2)
	return lam1, tau2, tau3, tau4
}

func ratio(num, den float64) float64 {
	if den == 0 {
		return math.NaN()
	}
	return num / den
}

// annualHarmonic locates the Fourier coefficient nearest one cycle per 365
// days and reports its amplitude and phase, the phase converted to a day of
// year in [0, 365).
func annualHarmonic(flows []float64) (amplitude, phase float64) {
	n := len(flows)
	if n == 0 {
		return math.NaN(), math.NaN()
	}

	m := mean(flows)
	demeaned := make([]float64, n)
	for i, v := range flows {
		demeaned[i] = v - m
	}

	fft := fourier.NewFFT(n)
	coeffs := fft.Coefficients(nil, demeaned)

	target := 1.0 / 365.0
	best := 0
	for i := range coeffs {
		if math.Abs(fft.Freq(i)-target) < math.Abs(fft.Freq(best)-target) {
			best = i
		}
	}

	c := coeffs[best]
	amplitude = 2 * cmplx.Abs(c) / float64(n)
	phaseDOY := cmplx.Phase(c) / (2 * math.Pi) * 365
	if phaseDOY < 0 {
		phaseDOY += 365
	}
	return amplitude, phaseDOY
}
