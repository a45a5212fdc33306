package indices

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// extremeWindows are the rolling-mean window sizes, in days.
var extremeWindows = []int{1, 3, 7, 30, 90}

// ExtremeFields lists the rolling extreme indicators in output order.
var ExtremeFields = extremeFieldNames()

func extremeFieldNames() []string {
	fields := make([]string, 0, 2*len(extremeWindows))
	for _, win := range extremeWindows {
		fields = append(fields, fmt.Sprintf("min_%dday", win), fmt.Sprintf("max_%dday", win))
	}
	return fields
}

// Extremes computes the minimum and maximum of the N-day rolling mean for
// N in {1,3,7,30,90}. Only full windows count; samples shorter than a window
// report NaN for that window.
func Extremes(flows []float64) Values {
	out := make(Values, len(ExtremeFields))
	for _, win := range extremeWindows {
		minKey := fmt.Sprintf("min_%dday", win)
		maxKey := fmt.Sprintf("max_%dday", win)

		rolled := flows
		if win > 1 {
			rolled = RollingMeans(flows, win)
		}
		if len(rolled) == 0 {
			out[minKey] = math.NaN()
			out[maxKey] = math.NaN()
			continue
		}
		out[minKey] = floats.Min(rolled)
		out[maxKey] = floats.Max(rolled)
	}
	return out
}
