package indices

import (
	"math"
	"sort"
	"time"

	"eflow-stats/internal/timeseries"
)

// ColwellFields lists the predictability indicators.
var ColwellFields = []string{
	"colwell_constancy",
	"colwell_predictability",
	"colwell_contingency",
	"ta3",
}

// ColwellOptions size the time x flow-state contingency table.
type ColwellOptions struct {
	TimeBins int // day-of-year bins; 365 uses each day as its own bin
	FlowBins int // log-flow state bins
}

// DefaultColwellOptions mirror the reference table shape: one row per
// calendar day (Feb 29 dropped) and eleven log-flow states.
var DefaultColwellOptions = ColwellOptions{TimeBins: 365, FlowBins: 11}

// Colwell computes Colwell (1974) constancy, predictability, and contingency
// from a day-of-year by log-flow-state contingency table, plus Ta3, the
// seasonal predictability of flooding. Feb 29 records are dropped so the time
// axis always spans exactly 365 days. Entropies are base 10; constancy is a
// fraction of 1 while predictability is expressed as a percentage.
func Colwell(records []timeseries.FlowRecord, opts ColwellOptions) Values {
	if opts.TimeBins <= 0 {
		opts.TimeBins = DefaultColwellOptions.TimeBins
	}
	if opts.FlowBins <= 1 {
		opts.FlowBins = DefaultColwellOptions.FlowBins
	}

	kept := make([]timeseries.FlowRecord, 0, len(records))
	for _, rec := range records {
		if rec.Date.Month() == time.February && rec.Date.Day() == 29 {
			continue
		}
		kept = append(kept, rec)
	}

	out := Values{
		"colwell_constancy":      math.NaN(),
		"colwell_predictability": math.NaN(),
		"colwell_contingency":    math.NaN(),
		"ta3":                    seasonalFloodPredictability(records),
	}
	if len(kept) == 0 {
		return out
	}

	breaks := flowBreaks(timeseries.Flows(kept), opts.FlowBins)

	table := make([][]float64, opts.TimeBins)
	for i := range table {
		table[i] = make([]float64, opts.FlowBins)
	}
	for _, rec := range kept {
		table[timeBin(rec.Date, opts.TimeBins)][flowBin(rec.Flow, breaks)]++
	}

	total := 0.0
	rowSums := make([]float64, opts.TimeBins)
	colSums := make([]float64, opts.FlowBins)
	for i, row := range table {
		for j, c := range row {
			rowSums[i] += c
			colSums[j] += c
			total += c
		}
	}
	if total == 0 {
		return out
	}

	hJoint := 0.0
	for _, row := range table {
		hJoint += entropyTerm(row, total)
	}
	hRows := entropyTerm(rowSums, total)
	hCols := entropyTerm(colSums, total)

	logBins := math.Log10(float64(opts.FlowBins))
	constancy := 1 - hCols/logBins
	predictability := 100 * (1 - (hJoint-hRows)/logBins)

	out["colwell_constancy"] = constancy
	out["colwell_predictability"] = predictability
	out["colwell_contingency"] = predictability - constancy
	return out
}

// timeBin maps a date onto one of n day-of-year bins, with Feb 29 already
// removed so every year collapses onto the same 365-day axis.
func timeBin(d time.Time, n int) int {
	doy := d.YearDay()
	if isLeap(d.Year()) && doy > 60 {
		doy--
	}
	bin := (doy - 1) * n / 365
	if bin >= n {
		bin = n - 1
	}
	return bin
}

func isLeap(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// flowBreaks derives the log-flow state break points: multiples of the log of
// the mean flow, spanning 0.1x to 2.25x, sorted ascending. flowBins-1 breaks
// delimit flowBins states.
func flowBreaks(flows []float64, flowBins int) []float64 {
	logMean := math.Log10(mean(flows))
	nBreaks := flowBins - 1
	breaks := make([]float64, nBreaks)
	for i := range breaks {
		mult := 0.1
		if nBreaks > 1 {
			mult += (2.25 - 0.1) * float64(i) / float64(nBreaks-1)
		}
		breaks[i] = mult * logMean
	}
	sort.Float64s(breaks)
	return breaks
}

func flowBin(v float64, breaks []float64) int {
	logV := math.Inf(-1)
	if v > 0 {
		logV = math.Log10(v)
	}
	return sort.SearchFloat64s(breaks, logV)
}

func entropyTerm(counts []float64, total float64) float64 {
	h := 0.0
	for _, c := range counts {
		if c <= 0 {
			continue
		}
		p := c / total
		h -= p * math.Log10(p)
	}
	return h
}

// floodRecurrence is the return period, in years, defining the flood
// threshold for Ta3.
const floodRecurrence = 1.67

// seasonalFloodPredictability computes Ta3: the share of flood days that fall
// in the busiest of six fixed bi-monthly bins (Oct-Nov, Dec-Jan, Feb-Mar,
// Apr-May, Jun-Jul, Aug-Sep). The flood threshold is the flow exceeded on
// average once every 1.67 years, taken as a percentile of the annual maxima.
func seasonalFloodPredictability(records []timeseries.FlowRecord) float64 {
	annualMax := make(map[int]float64)
	for _, rec := range records {
		year := rec.Date.Year()
		if cur, ok := annualMax[year]; !ok || rec.Flow > cur {
			annualMax[year] = rec.Flow
		}
	}
	if len(annualMax) == 0 {
		return math.NaN()
	}

	maxima := make([]float64, 0, len(annualMax))
	for _, v := range annualMax {
		maxima = append(maxima, v)
	}
	threshold := Percentile(maxima, 100*(1-1/floodRecurrence))

	var bins [6]float64
	total := 0.0
	for _, rec := range records {
		if rec.Flow <= threshold {
			continue
		}
		bins[biMonthlyBin(rec.Date.Month())]++
		total++
	}
	if total == 0 {
		return math.NaN()
	}

	best := bins[0]
	for _, c := range bins[1:] {
		if c > best {
			best = c
		}
	}
	return best / total
}

func biMonthlyBin(m time.Month) int {
	switch m {
	case time.October, time.November:
		return 0
	case time.December, time.January:
		return 1
	case time.February, time.March:
		return 2
	case time.April, time.May:
		return 3
	case time.June, time.July:
		return 4
	default: // Aug, Sep
		return 5
	}
}
