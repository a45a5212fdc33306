package stats

import (
	"math"
	"strings"
	"testing"

	"eflow-stats/internal/indices"
)

func sampleTable() *Table {
	return &Table{
		Columns: []string{"a", "b"},
		Rows: []Row{
			{Label: AllYearsLabel, Values: indices.Values{"a": 1.5, "b": math.NaN()}},
			{Label: "2021", Values: indices.Values{"a": 2, "b": 0.25}},
		},
	}
}

func TestLookup(t *testing.T) {
	table := sampleTable()
	row, ok := table.Lookup("2021")
	if !ok || row.Values["a"] != 2 {
		t.Fatalf("Lookup(2021) = %+v, %v", row, ok)
	}
	if _, ok := table.Lookup("1999"); ok {
		t.Fatal("Lookup should miss for unknown labels")
	}
}

func TestWriteCSV(t *testing.T) {
	var sb strings.Builder
	if err := sampleTable().WriteCSV(&sb); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(sb.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if lines[0] != "water_year,a,b" {
		t.Errorf("header = %q", lines[0])
	}
	if lines[1] != "all_years,1.5," {
		t.Errorf("NaN should serialize as an empty cell, got %q", lines[1])
	}
	if lines[2] != "2021,2,0.25" {
		t.Errorf("row = %q", lines[2])
	}
}

func TestWriteCompiledCSV(t *testing.T) {
	var sb strings.Builder
	err := sampleTable().WriteCompiledCSV(&sb, []string{"siteA", "siteB"})
	if err != nil {
		t.Fatalf("WriteCompiledCSV: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(sb.String()), "\n")
	if lines[0] != "site_name,water_year,a,b" {
		t.Errorf("header = %q", lines[0])
	}
	if lines[1] != "siteA,all_years,1.5," {
		t.Errorf("row = %q", lines[1])
	}
}

func TestWriteCompiledCSVLengthMismatch(t *testing.T) {
	var sb strings.Builder
	if err := sampleTable().WriteCompiledCSV(&sb, []string{"onlyOne"}); err == nil {
		t.Fatal("expected error for mismatched site name count")
	}
}

func TestRender(t *testing.T) {
	var sb strings.Builder
	if err := sampleTable().Render(&sb); err != nil {
		t.Fatalf("Render: %v", err)
	}
	out := sb.String()
	if !strings.Contains(out, "water_year") {
		t.Error("missing header")
	}
	if !strings.Contains(out, "-") {
		t.Error("NaN should render as a dash")
	}
	if !strings.Contains(out, "1.5000") {
		t.Errorf("fractional values should render with 4 decimals: %q", out)
	}
}
