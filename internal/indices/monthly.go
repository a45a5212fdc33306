package indices

import (
	"fmt"
	"math"
	"time"

	"eflow-stats/internal/timeseries"
)

// MonthlyFields lists the 24 monthly indicators (mean and median for each
// calendar month).
var MonthlyFields = monthlyFieldNames()

func monthlyFieldNames() []string {
	fields := make([]string, 0, 24)
	for m := 1; m <= 12; m++ {
		fields = append(fields, fmt.Sprintf("mean_month_%02d", m), fmt.Sprintf("median_month_%02d", m))
	}
	return fields
}

// Monthly computes mean and median flow grouped by calendar month. Months
// absent from the sample report NaN for both.
func Monthly(records []timeseries.FlowRecord) Values {
	byMonth := make(map[time.Month][]float64)
	for _, rec := range records {
		byMonth[rec.Date.Month()] = append(byMonth[rec.Date.Month()], rec.Flow)
	}

	out := make(Values, 24)
	for m := time.January; m <= time.December; m++ {
		meanKey := fmt.Sprintf("mean_month_%02d", int(m))
		medianKey := fmt.Sprintf("median_month_%02d", int(m))
		flows, ok := byMonth[m]
		if !ok {
			out[meanKey] = math.NaN()
			out[medianKey] = math.NaN()
			continue
		}
		out[meanKey] = mean(flows)
		out[medianKey] = Median(flows)
	}
	return out
}
