// Package wateryear assigns daily flow records to water years and validates
// that each year carries a complete daily record before it enters any
// statistics.
package wateryear

import (
	"fmt"
	"sort"
	"time"

	"eflow-stats/internal/timeseries"
)

// DateRange is an inclusive calendar-date interval.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether d falls inside the range, endpoints inclusive.
func (r DateRange) Contains(d time.Time) bool {
	return !d.Before(r.Start) && !d.After(r.End)
}

func (r DateRange) String() string {
	if r.Start.Equal(r.End) {
		return r.Start.Format("2006-01-02")
	}
	return fmt.Sprintf("%s..%s", r.Start.Format("2006-01-02"), r.End.Format("2006-01-02"))
}

// ExcludedYear describes why a water year failed completeness validation.
type ExcludedYear struct {
	Year          int
	MissingRanges []DateRange // contiguous missing dates collapsed into blocks
	MissingValues int         // present dates whose flow is NaN
}

// Label returns the water-year label for a date. The water year is named
// after the calendar year in which it ends: with startMonth October,
// 2020-10-01 belongs to water year 2021 and 2020-09-30 to 2020.
func Label(date time.Time, startMonth time.Month) int {
	if date.Month() >= startMonth {
		return date.Year() + 1
	}
	return date.Year()
}

// Span returns the inclusive expected date span of a water-year label.
func Span(year int, startMonth time.Month) DateRange {
	start := time.Date(year-1, startMonth, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(year, startMonth, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, -1)
	return DateRange{Start: start, End: end}
}

// Segment applies exclusion ranges, groups records into water years, and
// drops every year whose expected daily record is incomplete. It returns the
// pooled records of the kept years (still sorted ascending), the kept year
// labels ascending, and diagnostics for each excluded year.
func Segment(records []timeseries.FlowRecord, startMonth time.Month, exclusions []DateRange) (kept []timeseries.FlowRecord, keptYears []int, excluded []ExcludedYear) {
	byYear := make(map[int][]timeseries.FlowRecord)
	var labels []int
	for _, rec := range records {
		if insideAny(rec.Date, exclusions) {
			continue
		}
		year := Label(rec.Date, startMonth)
		if _, ok := byYear[year]; !ok {
			labels = append(labels, year)
		}
		byYear[year] = append(byYear[year], rec)
	}
	sort.Ints(labels)

	for _, year := range labels {
		group := byYear[year]
		diag, complete := validate(year, startMonth, group)
		if !complete {
			excluded = append(excluded, diag)
			continue
		}
		keptYears = append(keptYears, year)
		kept = append(kept, group...)
	}
	return kept, keptYears, excluded
}

func insideAny(d time.Time, ranges []DateRange) bool {
	for _, r := range ranges {
		if r.Contains(d) {
			return true
		}
	}
	return false
}

func validate(year int, startMonth time.Month, group []timeseries.FlowRecord) (ExcludedYear, bool) {
	present := make(map[time.Time]bool, len(group))
	missingValues := 0
	for _, rec := range group {
		present[rec.Date] = true
		if !rec.HasFlow() {
			missingValues++
		}
	}

	span := Span(year, startMonth)
	var missing []time.Time
	for d := span.Start; !d.After(span.End); d = d.AddDate(0, 0, 1) {
		if !present[d] {
			missing = append(missing, d)
		}
	}

	if len(missing) == 0 && missingValues == 0 {
		return ExcludedYear{}, true
	}
	return ExcludedYear{
		Year:          year,
		MissingRanges: collapse(missing),
		MissingValues: missingValues,
	}, false
}

// collapse folds sorted dates into contiguous inclusive ranges.
func collapse(dates []time.Time) []DateRange {
	var ranges []DateRange
	for _, d := range dates {
		if n := len(ranges); n > 0 && d.Sub(ranges[n-1].End) == 24*time.Hour {
			ranges[n-1].End = d
			continue
		}
		ranges = append(ranges, DateRange{Start: d, End: d})
	}
	return ranges
}
