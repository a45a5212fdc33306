package indices

import (
	"math"

	"eflow-stats/internal/timeseries"
)

// TimingFields lists the flow-timing indicators.
var TimingFields = []string{
	"julian_max",
	"julian_min",
	"center_of_timing",
}

// Timing reports the day of year of the maximum and minimum flow (ties
// resolved by first occurrence in date order) and the flow-weighted mean day
// of year. The center of timing is NaN when total flow is not positive.
func Timing(records []timeseries.FlowRecord) Values {
	if len(records) == 0 {
		nan := math.NaN()
		return Values{"julian_max": nan, "julian_min": nan, "center_of_timing": nan}
	}

	maxIdx, minIdx := 0, 0
	totalFlow := 0.0
	weighted := 0.0
	for i, rec := range records {
		if rec.Flow > records[maxIdx].Flow {
			maxIdx = i
		}
		if rec.Flow < records[minIdx].Flow {
			minIdx = i
		}
		totalFlow += rec.Flow
		weighted += rec.Flow * float64(rec.Date.YearDay())
	}

	centerOfTiming := math.NaN()
	if totalFlow > 0 {
		centerOfTiming = weighted / totalFlow
	}

	return Values{
		"julian_max":       float64(records[maxIdx].Date.YearDay()),
		"julian_min":       float64(records[minIdx].Date.YearDay()),
		"center_of_timing": centerOfTiming,
	}
}
