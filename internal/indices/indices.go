// Package indices implements the hydrologic index families. Every compute
// function is pure: it takes one analyzed sample (a single water year or the
// pooled record) and returns named real values, with NaN standing in for
// statistics that are undefined on the given sample.
package indices

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Values maps indicator names to computed values.
type Values map[string]float64

// CheckDisjoint verifies that no indicator name is produced by more than one
// index family, so merging family outputs can never silently collide.
func CheckDisjoint(fieldLists ...[]string) error {
	seen := make(map[string]bool)
	for _, fields := range fieldLists {
		for _, name := range fields {
			if seen[name] {
				return fmt.Errorf("indices: duplicate indicator name %q", name)
			}
			seen[name] = true
		}
	}
	return nil
}

// Percentile computes the p-th percentile (0-100) with linear interpolation
// between order statistics. gonum's stat.Quantile offers no CumulantKind with
// these exact semantics, which the thresholds here depend on.
func Percentile(values []float64, p float64) float64 {
	n := len(values)
	if n == 0 {
		return math.NaN()
	}
	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	rank := p / 100 * float64(n-1)
	lo := int(math.Floor(rank))
	hi := int(math.Ceil(rank))
	if lo == hi {
		return sorted[lo]
	}
	frac := rank - float64(lo)
	return sorted[lo] + frac*(sorted[hi]-sorted[lo])
}

// Median is the 50th percentile.
func Median(values []float64) float64 {
	return Percentile(values, 50)
}

// RollingMeans returns the means of every full window of the given size.
// The result has len(values)-window+1 entries, or nil when the sample is
// shorter than the window.
func RollingMeans(values []float64, window int) []float64 {
	if window <= 0 || len(values) < window {
		return nil
	}
	out := make([]float64, 0, len(values)-window+1)
	sum := 0.0
	for i, v := range values {
		sum += v
		if i >= window {
			sum -= values[i-window]
		}
		if i >= window-1 {
			out = append(out, sum/float64(window))
		}
	}
	return out
}

// runLengths returns the length of every maximal run of true values.
func runLengths(mask []bool) []int {
	var runs []int
	count := 0
	for _, m := range mask {
		if m {
			count++
			continue
		}
		if count > 0 {
			runs = append(runs, count)
			count = 0
		}
	}
	if count > 0 {
		runs = append(runs, count)
	}
	return runs
}

// center collapses event-level values into a single figure, using the mean by
// default or the median when requested.
func center(values []float64, useMedian bool) float64 {
	if len(values) == 0 {
		return math.NaN()
	}
	if useMedian {
		return Median(values)
	}
	return stat.Mean(values, nil)
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}
	return stat.Mean(values, nil)
}
