package stats

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"text/tabwriter"

	"eflow-stats/internal/indices"
)

// AllYearsLabel tags the pooled period-of-record row.
const AllYearsLabel = "all_years"

// Row is one output record: a water-year label plus its indicator values.
type Row struct {
	Label  string
	Values indices.Values
}

// Table is the orchestrator's tabular result. The first column is always the
// water-year label; the remaining columns are indicator names in module
// invocation order, identical across every row.
type Table struct {
	Columns []string
	Rows    []Row
}

// Lookup returns the row with the given label.
func (t *Table) Lookup(label string) (Row, bool) {
	for _, row := range t.Rows {
		if row.Label == label {
			return row, true
		}
	}
	return Row{}, false
}

// WriteCSV serializes the table. NaN values become empty cells.
func (t *Table) WriteCSV(w io.Writer) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()

	header := append([]string{"water_year"}, t.Columns...)
	if err := writer.Write(header); err != nil {
		return err
	}

	record := make([]string, len(header))
	for _, row := range t.Rows {
		record[0] = row.Label
		for i, col := range t.Columns {
			record[i+1] = formatValue(row.Values[col])
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	return writer.Error()
}

// SaveCSV writes the table to a file, creating parent directories as needed.
func (t *Table) SaveCSV(path string) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	if err := t.WriteCSV(file); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// WriteCompiledCSV serializes the table with a leading site_name column, one
// name per row. Used by batch processing to compile all_years rows across
// sites.
func (t *Table) WriteCompiledCSV(w io.Writer, siteNames []string) error {
	if len(siteNames) != len(t.Rows) {
		return fmt.Errorf("site names (%d) do not match rows (%d)", len(siteNames), len(t.Rows))
	}

	writer := csv.NewWriter(w)
	defer writer.Flush()

	header := append([]string{"site_name", "water_year"}, t.Columns...)
	if err := writer.Write(header); err != nil {
		return err
	}

	record := make([]string, len(header))
	for i, row := range t.Rows {
		record[0] = siteNames[i]
		record[1] = row.Label
		for j, col := range t.Columns {
			record[j+2] = formatValue(row.Values[col])
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	return writer.Error()
}

// Render prints an aligned human-readable view of the table.
func (t *Table) Render(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprint(tw, "water_year")
	for _, col := range t.Columns {
		fmt.Fprintf(tw, "\t%s", col)
	}
	fmt.Fprintln(tw)

	for _, row := range t.Rows {
		fmt.Fprint(tw, row.Label)
		for _, col := range t.Columns {
			fmt.Fprintf(tw, "\t%s", renderValue(row.Values[col]))
		}
		fmt.Fprintln(tw)
	}
	return tw.Flush()
}

func formatValue(v float64) string {
	if math.IsNaN(v) {
		return ""
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func renderValue(v float64) string {
	if math.IsNaN(v) {
		return "-"
	}
	if v == math.Trunc(v) && math.Abs(v) < 1e9 {
		return strconv.FormatFloat(v, 'f', 0, 64)
	}
	return strconv.FormatFloat(v, 'f', 4, 64)
}
