// Package stats drives per-water-year and period-of-record computation of the
// hydrologic index families and assembles the results into one wide table.
package stats

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/stat"

	"eflow-stats/internal/indices"
	"eflow-stats/internal/timeseries"
	"eflow-stats/internal/wateryear"
)

// Mode selects which index families a computation runs.
type Mode int

const (
	// ModeMag7 runs only the Magnificent Seven indicators.
	ModeMag7 Mode = iota
	// ModeHIAP runs the hydrologic index families used for regime
	// classification: Mag7, extremes, pulses, rates, timing, variability,
	// baseflow, Colwell, and frequency.
	ModeHIAP
	// ModeAll runs every index family, adding the monthly indicators.
	ModeAll
)

func (m Mode) String() string {
	switch m {
	case ModeMag7:
		return "mag7"
	case ModeHIAP:
		return "hiap"
	default:
		return "all"
	}
}

// ParseMode resolves a mode name from CLI or config input.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(s) {
	case "mag7", "magnificent7":
		return ModeMag7, nil
	case "hiap":
		return ModeHIAP, nil
	case "all", "":
		return ModeAll, nil
	}
	return 0, fmt.Errorf("unknown mode %q (want mag7, hiap, or all)", s)
}

// crossYearTimingFields are computed by the orchestrator from the per-year
// rows, not by any index family; they only carry values in the all_years row.
var crossYearTimingFields = []string{"cv_julian_max", "cv_julian_min"}

// normalizedFields are additive count indicators whose all_years totals are
// converted into mean annual rates by dividing by the number of kept years.
var normalizedFields = []string{"high_pulse_count", "low_pulse_count", "reversals"}

// Options configure one orchestrator instance.
type Options struct {
	StartMonth time.Month
	Exclusions []wateryear.DateRange
	UseMedian  bool
	Colwell    indices.ColwellOptions
}

// Orchestrator owns index-family invocation and row assembly. Construction
// validates the options and the disjointness of every family's field names.
type Orchestrator struct {
	opts   Options
	logger zerolog.Logger
}

// New builds an Orchestrator.
func New(opts Options, logger zerolog.Logger) (*Orchestrator, error) {
	if opts.StartMonth == 0 {
		opts.StartMonth = time.October
	}
	if opts.StartMonth < time.January || opts.StartMonth > time.December {
		return nil, fmt.Errorf("start month %d out of range", opts.StartMonth)
	}
	for _, r := range opts.Exclusions {
		if r.End.Before(r.Start) {
			return nil, fmt.Errorf("exclusion range %s ends before it starts", r)
		}
	}

	if err := indices.CheckDisjoint(
		indices.Mag7Fields,
		indices.MonthlyFields,
		indices.ExtremeFields,
		indices.PulseFields,
		indices.PulseRateFields,
		indices.RateFields,
		indices.TimingFields,
		crossYearTimingFields,
		indices.VariabilityFields,
		indices.BaseflowFields,
		indices.ColwellFields,
		indices.FrequencyFields,
	); err != nil {
		return nil, err
	}

	return &Orchestrator{
		opts:   opts,
		logger: logger.With().Str("component", "orchestrator").Logger(),
	}, nil
}

// Compute segments the record into water years, drops incomplete years, runs
// the selected index families once per kept year and once over the pooled
// kept record, and returns the assembled table. The all_years row comes
// first; the remaining rows are sorted ascending by year.
func (o *Orchestrator) Compute(records []timeseries.FlowRecord, mode Mode) (*Table, error) {
	kept, keptYears, excluded := wateryear.Segment(records, o.opts.StartMonth, o.opts.Exclusions)

	for _, ex := range excluded {
		ranges := make([]string, 0, len(ex.MissingRanges))
		for _, r := range ex.MissingRanges {
			ranges = append(ranges, r.String())
		}
		o.logger.Warn().
			Int("water_year", ex.Year).
			Strs("missing_dates", ranges).
			Int("missing_values", ex.MissingValues).
			Msg("excluding incomplete water year")
	}

	if len(keptYears) == 0 {
		return nil, fmt.Errorf("no complete water years in record")
	}

	byYear := make(map[int][]timeseries.FlowRecord, len(keptYears))
	for _, rec := range kept {
		year := wateryear.Label(rec.Date, o.opts.StartMonth)
		byYear[year] = append(byYear[year], rec)
	}

	table := &Table{Columns: o.columns(mode)}

	yearRows := make([]Row, 0, len(keptYears))
	for _, year := range keptYears {
		yearRows = append(yearRows, Row{
			Label:  strconv.Itoa(year),
			Values: o.computeRow(byYear[year], mode),
		})
	}

	allValues := o.computeRow(kept, mode)
	o.normalizeCounts(allValues, len(keptYears))
	if mode != ModeMag7 {
		o.addCrossYearTiming(allValues, yearRows)
	}

	table.Rows = append(table.Rows, Row{Label: AllYearsLabel, Values: allValues})
	table.Rows = append(table.Rows, yearRows...)
	return table, nil
}

// columns returns the indicator column order for a mode: family field lists
// in invocation order, label column excluded.
func (o *Orchestrator) columns(mode Mode) []string {
	cols := append([]string{}, indices.Mag7Fields...)
	if mode == ModeMag7 {
		return cols
	}
	if mode == ModeAll {
		cols = append(cols, indices.MonthlyFields...)
	}
	cols = append(cols, indices.ExtremeFields...)
	cols = append(cols, indices.PulseFields...)
	cols = append(cols, indices.PulseRateFields...)
	cols = append(cols, indices.RateFields...)
	cols = append(cols, indices.TimingFields...)
	cols = append(cols, crossYearTimingFields...)
	cols = append(cols, indices.VariabilityFields...)
	cols = append(cols, indices.BaseflowFields...)
	cols = append(cols, indices.ColwellFields...)
	cols = append(cols, indices.FrequencyFields...)
	return cols
}

// computeRow runs the selected index families over one analyzed sample and
// unions their outputs.
func (o *Orchestrator) computeRow(records []timeseries.FlowRecord, mode Mode) indices.Values {
	flows := timeseries.Flows(records)

	values := indices.Mag7(flows)
	if mode == ModeMag7 {
		return values
	}

	if mode == ModeAll {
		merge(values, indices.Monthly(records))
	}
	merge(values, indices.Extremes(flows))

	pulses := indices.Pulses(flows, o.opts.UseMedian)
	merge(values, pulses)
	merge(values, indices.PulseRates(flows, pulses["high_thresh_used"], pulses["low_thresh_used"], o.opts.UseMedian))

	merge(values, indices.RiseFall(flows))
	merge(values, indices.Timing(records))
	for _, f := range crossYearTimingFields {
		values[f] = math.NaN()
	}
	merge(values, indices.Variability(records))
	merge(values, indices.Baseflow(flows))
	merge(values, indices.Colwell(records, o.opts.Colwell))
	merge(values, indices.Frequency(records))
	return values
}

// normalizeCounts converts additive count totals in the all_years row into
// mean annual rates.
func (o *Orchestrator) normalizeCounts(values indices.Values, years int) {
	for _, f := range normalizedFields {
		if v, ok := values[f]; ok && !math.IsNaN(v) {
			values[f] = v / float64(years)
		}
	}
}

// addCrossYearTiming fills cv_julian_max and cv_julian_min on the all_years
// row from the per-year timing values already produced.
func (o *Orchestrator) addCrossYearTiming(allValues indices.Values, yearRows []Row) {
	maxDays := make([]float64, 0, len(yearRows))
	minDays := make([]float64, 0, len(yearRows))
	for _, row := range yearRows {
		maxDays = append(maxDays, row.Values["julian_max"])
		minDays = append(minDays, row.Values["julian_min"])
	}
	allValues["cv_julian_max"] = coefficientOfVariation(maxDays)
	allValues["cv_julian_min"] = coefficientOfVariation(minDays)
}

func coefficientOfVariation(values []float64) float64 {
	if len(values) < 2 {
		return math.NaN()
	}
	m := stat.Mean(values, nil)
	if m == 0 {
		return math.NaN()
	}
	return stat.StdDev(values, nil) / m
}

func merge(dst, src indices.Values) {
	for k, v := range src {
		dst[k] = v
	}
}
