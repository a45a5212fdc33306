package timeseries

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"
)

// SchemaError indicates a required column is missing from the input table.
type SchemaError struct {
	Column string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("timeseries: required column %q not found", e.Column)
}

// LoadOptions configure column discovery for Load.
type LoadOptions struct {
	DateColumn string // default "datetime"
	FlowColumn string // default "q"
}

func (o LoadOptions) withDefaults() LoadOptions {
	if o.DateColumn == "" {
		o.DateColumn = "datetime"
	}
	if o.FlowColumn == "" {
		o.FlowColumn = "q"
	}
	return o
}

// Accepted date layouts, tried in order. Timezone and time-of-day information
// is discarded after parsing.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04:05Z07:00",
	"2006/01/02",
	"01/02/2006",
}

// Load reads a daily flow series from a CSV file.
func Load(path string, opts LoadOptions) ([]FlowRecord, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	defer file.Close()

	records, err := LoadReader(file, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return records, nil
}

// LoadReader reads a daily flow series from CSV data. The result is sorted
// ascending by date, deduplicated by day (first occurrence wins), and
// normalized to midnight UTC. Rows with unparsable dates are dropped; rows
// with unparsable or empty flow values are kept with Flow set to NaN so that
// completeness validation can account for them.
func LoadReader(r io.Reader, opts LoadOptions) ([]FlowRecord, error) {
	opts = opts.withDefaults()

	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	dateIdx, flowIdx := -1, -1
	for i, name := range header {
		name = strings.TrimSpace(name)
		switch {
		case strings.EqualFold(name, opts.DateColumn):
			dateIdx = i
		case dateIdx == -1 && (strings.EqualFold(name, "date") || strings.EqualFold(name, "datetime")):
			dateIdx = i
		case strings.EqualFold(name, opts.FlowColumn):
			flowIdx = i
		}
	}
	if dateIdx == -1 {
		return nil, &SchemaError{Column: opts.DateColumn}
	}
	if flowIdx == -1 {
		return nil, &SchemaError{Column: opts.FlowColumn}
	}

	seen := make(map[time.Time]bool)
	var records []FlowRecord
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		if dateIdx >= len(row) || flowIdx >= len(row) {
			continue
		}

		date, ok := parseDate(row[dateIdx])
		if !ok {
			continue
		}
		if seen[date] {
			continue
		}
		seen[date] = true

		records = append(records, FlowRecord{Date: date, Flow: parseFlow(row[flowIdx])})
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].Date.Before(records[j].Date)
	})
	return records, nil
}

func parseDate(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, raw)
		if err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
		}
	}
	return time.Time{}, false
}

func parseFlow(raw string) float64 {
	raw = strings.TrimSpace(raw)
	switch strings.ToLower(raw) {
	case "", "na", "nan", "null":
		return math.NaN()
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

// WriteCSV emits the series in the canonical datetime,q layout. NaN flows are
// written as empty cells.
func WriteCSV(w io.Writer, records []FlowRecord) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()

	if err := writer.Write([]string{"datetime", "q"}); err != nil {
		return err
	}
	for _, rec := range records {
		flow := ""
		if rec.HasFlow() {
			flow = strconv.FormatFloat(rec.Flow, 'g', -1, 64)
		}
		if err := writer.Write([]string{rec.Date.Format("2006-01-02"), flow}); err != nil {
			return err
		}
	}
	return writer.Error()
}
