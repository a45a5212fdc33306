package indices

import (
	"math"
	"sort"

	"eflow-stats/internal/timeseries"
)

// FrequencyFields lists the flood-frequency indicators.
var FrequencyFields = []string{
	"fh5_mean",
	"fh5_median",
}

// Frequency computes the mean and median count, per calendar year, of days
// whose flow exceeds the sample's median flow.
func Frequency(records []timeseries.FlowRecord) Values {
	if len(records) == 0 {
		return Values{"fh5_mean": math.NaN(), "fh5_median": math.NaN()}
	}

	threshold := Median(timeseries.Flows(records))

	counts := make(map[int]float64)
	for _, rec := range records {
		if rec.Flow > threshold {
			counts[rec.Date.Year()]++
		} else if _, ok := counts[rec.Date.Year()]; !ok {
			counts[rec.Date.Year()] = 0
		}
	}

	years := make([]int, 0, len(counts))
	for y := range counts {
		years = append(years, y)
	}
	sort.Ints(years)

	perYear := make([]float64, 0, len(years))
	for _, y := range years {
		perYear = append(perYear, counts[y])
	}

	return Values{
		"fh5_mean":   mean(perYear),
		"fh5_median": Median(perYear),
	}
}
