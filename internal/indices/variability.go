package indices

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"eflow-stats/internal/timeseries"
)

// VariabilityFields lists the flow-variability indicators.
var VariabilityFields = []string{
	"std_daily",
	"cv_daily",
	"cv_annual",
}

// Variability computes the sample standard deviation and coefficient of
// variation of daily flow, plus the interannual CV: the standard deviation of
// per-calendar-year mean flows divided by their mean. The interannual CV is
// NaN with fewer than two years of data or a zero mean.
func Variability(records []timeseries.FlowRecord) Values {
	flows := timeseries.Flows(records)

	stdDaily := math.NaN()
	cvDaily := math.NaN()
	if len(flows) > 1 {
		stdDaily = stat.StdDev(flows, nil)
		if m := mean(flows); m != 0 {
			cvDaily = stdDaily / m
		}
	}

	return Values{
		"std_daily": stdDaily,
		"cv_daily":  cvDaily,
		"cv_annual": interannualCV(records),
	}
}

func interannualCV(records []timeseries.FlowRecord) float64 {
	byYear := make(map[int][]float64)
	for _, rec := range records {
		byYear[rec.Date.Year()] = append(byYear[rec.Date.Year()], rec.Flow)
	}
	if len(byYear) < 2 {
		return math.NaN()
	}

	years := make([]int, 0, len(byYear))
	for y := range byYear {
		years = append(years, y)
	}
	sort.Ints(years)

	annualMeans := make([]float64, 0, len(years))
	for _, y := range years {
		annualMeans = append(annualMeans, mean(byYear[y]))
	}

	m := mean(annualMeans)
	if m == 0 {
		return math.NaN()
	}
	return stat.StdDev(annualMeans, nil) / m
}
