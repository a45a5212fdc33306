package wateryear

import (
	"math"
	"testing"
	"time"

	"eflow-stats/internal/timeseries"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// fullYear builds a complete daily record for one water year.
func fullYear(label int, startMonth time.Month, flow float64) []timeseries.FlowRecord {
	span := Span(label, startMonth)
	var records []timeseries.FlowRecord
	for d := span.Start; !d.After(span.End); d = d.AddDate(0, 0, 1) {
		records = append(records, timeseries.FlowRecord{Date: d, Flow: flow})
	}
	return records
}

func TestLabel(t *testing.T) {
	tests := []struct {
		date       time.Time
		startMonth time.Month
		want       int
	}{
		{day(2020, time.October, 1), time.October, 2021},
		{day(2020, time.September, 30), time.October, 2020},
		{day(2020, time.December, 31), time.October, 2021},
		{day(2021, time.January, 1), time.October, 2021},
		{day(2020, time.April, 1), time.April, 2021},
		{day(2020, time.March, 31), time.April, 2020},
	}
	for _, tt := range tests {
		if got := Label(tt.date, tt.startMonth); got != tt.want {
			t.Errorf("Label(%s, %d) = %d, want %d", tt.date.Format("2006-01-02"), tt.startMonth, got, tt.want)
		}
	}
}

func TestSpan(t *testing.T) {
	span := Span(2021, time.October)
	if !span.Start.Equal(day(2020, time.October, 1)) {
		t.Errorf("span start = %v", span.Start)
	}
	if !span.End.Equal(day(2021, time.September, 30)) {
		t.Errorf("span end = %v", span.End)
	}
}

func TestSegmentKeepsCompleteYears(t *testing.T) {
	records := append(fullYear(2021, time.October, 1), fullYear(2022, time.October, 2)...)

	kept, keptYears, excluded := Segment(records, time.October, nil)
	if len(excluded) != 0 {
		t.Fatalf("expected no exclusions, got %v", excluded)
	}
	if len(keptYears) != 2 || keptYears[0] != 2021 || keptYears[1] != 2022 {
		t.Fatalf("expected years [2021 2022], got %v", keptYears)
	}
	if len(kept) != len(records) {
		t.Fatalf("expected %d kept records, got %d", len(records), len(kept))
	}
	for i := 1; i < len(kept); i++ {
		if !kept[i-1].Date.Before(kept[i].Date) {
			t.Fatalf("kept records not sorted at %d", i)
		}
	}
}

func TestSegmentExcludesYearMissingOneDate(t *testing.T) {
	year := fullYear(2021, time.October, 1)
	missing := day(2021, time.February, 14)
	var records []timeseries.FlowRecord
	for _, rec := range year {
		if rec.Date.Equal(missing) {
			continue
		}
		records = append(records, rec)
	}

	kept, keptYears, excluded := Segment(records, time.October, nil)
	if len(keptYears) != 0 || len(kept) != 0 {
		t.Fatalf("expected the year to be excluded, kept %v", keptYears)
	}
	if len(excluded) != 1 {
		t.Fatalf("expected 1 exclusion, got %d", len(excluded))
	}
	ex := excluded[0]
	if ex.Year != 2021 {
		t.Errorf("expected year 2021, got %d", ex.Year)
	}
	if len(ex.MissingRanges) != 1 {
		t.Fatalf("expected 1 missing range, got %v", ex.MissingRanges)
	}
	r := ex.MissingRanges[0]
	if !r.Start.Equal(missing) || !r.End.Equal(missing) {
		t.Errorf("expected single-day range at %v, got %v", missing, r)
	}
}

func TestSegmentExcludesYearWithNaNFlow(t *testing.T) {
	records := fullYear(2021, time.October, 1)
	records[10].Flow = math.NaN()

	_, keptYears, excluded := Segment(records, time.October, nil)
	if len(keptYears) != 0 {
		t.Fatalf("expected no kept years, got %v", keptYears)
	}
	if len(excluded) != 1 || excluded[0].MissingValues != 1 {
		t.Fatalf("expected 1 missing value, got %+v", excluded)
	}
}

func TestSegmentCollapsesMissingRanges(t *testing.T) {
	year := fullYear(2021, time.October, 1)
	gaps := map[time.Time]bool{
		day(2020, time.December, 10): true,
		day(2020, time.December, 11): true,
		day(2020, time.December, 12): true,
		day(2021, time.March, 5):     true,
	}
	var records []timeseries.FlowRecord
	for _, rec := range year {
		if gaps[rec.Date] {
			continue
		}
		records = append(records, rec)
	}

	_, _, excluded := Segment(records, time.October, nil)
	if len(excluded) != 1 {
		t.Fatalf("expected 1 exclusion, got %d", len(excluded))
	}
	ranges := excluded[0].MissingRanges
	if len(ranges) != 2 {
		t.Fatalf("expected 2 collapsed ranges, got %v", ranges)
	}
	if !ranges[0].Start.Equal(day(2020, time.December, 10)) || !ranges[0].End.Equal(day(2020, time.December, 12)) {
		t.Errorf("unexpected first range %v", ranges[0])
	}
	if !ranges[1].Start.Equal(day(2021, time.March, 5)) || !ranges[1].End.Equal(day(2021, time.March, 5)) {
		t.Errorf("unexpected second range %v", ranges[1])
	}
}

func TestSegmentAppliesExclusionRangesFirst(t *testing.T) {
	records := append(fullYear(2021, time.October, 1), fullYear(2022, time.October, 2)...)
	exclusions := []DateRange{{Start: day(2021, time.November, 1), End: day(2021, time.November, 30)}}

	_, keptYears, excluded := Segment(records, time.October, exclusions)
	if len(keptYears) != 1 || keptYears[0] != 2021 {
		t.Fatalf("expected only 2021 kept, got %v", keptYears)
	}
	if len(excluded) != 1 || excluded[0].Year != 2022 {
		t.Fatalf("expected 2022 excluded, got %+v", excluded)
	}
}

func TestDateRangeContains(t *testing.T) {
	r := DateRange{Start: day(2021, time.January, 1), End: day(2021, time.January, 31)}
	if !r.Contains(day(2021, time.January, 1)) || !r.Contains(day(2021, time.January, 31)) {
		t.Error("range endpoints should be inclusive")
	}
	if r.Contains(day(2021, time.February, 1)) {
		t.Error("range should not contain dates after end")
	}
}
