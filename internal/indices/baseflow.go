package indices

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// BaseflowFields lists the baseflow indicators.
var BaseflowFields = []string{"bfi"}

// Baseflow computes the baseflow index: the minimum 7-day rolling mean flow
// divided by the overall mean flow. NaN when the sample is shorter than seven
// days or the mean flow is zero.
func Baseflow(flows []float64) Values {
	rolled := RollingMeans(flows, 7)
	m := mean(flows)
	if len(rolled) == 0 || m == 0 || math.IsNaN(m) {
		return Values{"bfi": math.NaN()}
	}
	return Values{"bfi": floats.Min(rolled) / m}
}
