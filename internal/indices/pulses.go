package indices

import (
	"math"
)

// PulseFields lists the pulse indicators in output order. The thresholds
// actually applied are reported so that downstream pulse-rate computation can
// reuse them instead of recomputing percentiles.
var PulseFields = []string{
	"high_pulse_count",
	"high_pulse_avg_dur",
	"low_pulse_count",
	"low_pulse_avg_dur",
	"high_thresh_used",
	"low_thresh_used",
}

// PulseRateFields lists the within-pulse rate indicators.
var PulseRateFields = []string{
	"high_pulse_rise_mean",
	"high_pulse_fall_mean",
	"low_pulse_rise_mean",
	"low_pulse_fall_mean",
}

// Pulses counts high and low flow pulses and their durations. A high event is
// any day with flow above the sample's 75th percentile, a low event any day
// below the 25th; consecutive event days form one pulse. Comparisons are
// strict so a perfectly uniform series produces no pulses. useMedian switches
// the duration center statistic from mean to median.
func Pulses(flows []float64, useMedian bool) Values {
	highThresh := Percentile(flows, 75)
	lowThresh := Percentile(flows, 25)

	highRuns := runLengths(thresholdMask(flows, highThresh, true))
	lowRuns := runLengths(thresholdMask(flows, lowThresh, false))

	return Values{
		"high_pulse_count":   float64(len(highRuns)),
		"high_pulse_avg_dur": duration(highRuns, useMedian),
		"low_pulse_count":    float64(len(lowRuns)),
		"low_pulse_avg_dur":  duration(lowRuns, useMedian),
		"high_thresh_used":   highThresh,
		"low_thresh_used":    lowThresh,
	}
}

// PulseRates computes the center rise and fall rates restricted to pulse
// days, using the thresholds Pulses reported for the same sample. Day-over-day
// differences are aligned so that diff[i] is the change arriving at day i; the
// first day carries a zero difference. Polarities with no qualifying
// difference report NaN.
func PulseRates(flows []float64, highThresh, lowThresh float64, useMedian bool) Values {
	diffs := make([]float64, len(flows))
	for i := 1; i < len(flows); i++ {
		diffs[i] = flows[i] - flows[i-1]
	}

	var highRises, highFalls, lowRises, lowFalls []float64
	for i, v := range flows {
		d := diffs[i]
		if v > highThresh {
			if d > 0 {
				highRises = append(highRises, d)
			} else if d < 0 {
				highFalls = append(highFalls, d)
			}
		}
		if v < lowThresh {
			if d > 0 {
				lowRises = append(lowRises, d)
			} else if d < 0 {
				lowFalls = append(lowFalls, d)
			}
		}
	}

	return Values{
		"high_pulse_rise_mean": center(highRises, useMedian),
		"high_pulse_fall_mean": center(highFalls, useMedian),
		"low_pulse_rise_mean":  center(lowRises, useMedian),
		"low_pulse_fall_mean":  center(lowFalls, useMedian),
	}
}

func thresholdMask(flows []float64, thresh float64, high bool) []bool {
	mask := make([]bool, len(flows))
	for i, v := range flows {
		if high {
			mask[i] = v > thresh
		} else {
			mask[i] = v < thresh
		}
	}
	return mask
}

func duration(runs []int, useMedian bool) float64 {
	if len(runs) == 0 {
		return 0
	}
	values := make([]float64, len(runs))
	for i, r := range runs {
		values[i] = float64(r)
	}
	d := center(values, useMedian)
	if math.IsNaN(d) {
		return 0
	}
	return d
}
