package indices

import (
	"math"
)

// RateFields lists the global rise/fall indicators.
var RateFields = []string{
	"rise_rate",
	"fall_rate",
	"reversals",
}

// RiseFall computes the mean positive and negative day-over-day differences
// across the whole sample, plus the reversal count: the number of adjacent
// difference pairs whose signs oppose. Samples shorter than two days report
// NaN for all three.
func RiseFall(flows []float64) Values {
	if len(flows) < 2 {
		nan := math.NaN()
		return Values{"rise_rate": nan, "fall_rate": nan, "reversals": nan}
	}

	diffs := make([]float64, len(flows)-1)
	var rises, falls []float64
	for i := 1; i < len(flows); i++ {
		d := flows[i] - flows[i-1]
		diffs[i-1] = d
		if d > 0 {
			rises = append(rises, d)
		} else if d < 0 {
			falls = append(falls, d)
		}
	}

	reversals := 0
	for i := 1; i < len(diffs); i++ {
		if sign(diffs[i])*sign(diffs[i-1]) < 0 {
			reversals++
		}
	}

	riseRate := 0.0
	if len(rises) > 0 {
		riseRate = mean(rises)
	}
	fallRate := 0.0
	if len(falls) > 0 {
		fallRate = mean(falls)
	}

	return Values{
		"rise_rate": riseRate,
		"fall_rate": fallRate,
		"reversals": float64(reversals),
	}
}

func sign(v float64) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
