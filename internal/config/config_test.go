package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	if err == nil {
		t.Fatal("expected error for explicit missing config file")
	}

	cfg, err = Load("")
	if err != nil {
		t.Fatalf("Load with defaults: %v", err)
	}
	if cfg.Analysis.StartMonth != 10 {
		t.Errorf("start_month = %d, want 10", cfg.Analysis.StartMonth)
	}
	if cfg.Analysis.FlowColumn != "q" || cfg.Analysis.DateColumn != "datetime" {
		t.Errorf("columns = %q / %q", cfg.Analysis.FlowColumn, cfg.Analysis.DateColumn)
	}
	if cfg.Analysis.ColwellTimeBins != 365 || cfg.Analysis.ColwellFlowBins != 11 {
		t.Errorf("colwell bins = %d x %d", cfg.Analysis.ColwellTimeBins, cfg.Analysis.ColwellFlowBins)
	}
	if cfg.Batch.CompiledFile != "compiled_all_sites.csv" {
		t.Errorf("compiled_file = %q", cfg.Batch.CompiledFile)
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	body := `
analysis:
  start_month: 4
  flow_column: discharge
  exclude_ranges:
    - start: "2019-06-01"
      end: "2019-06-30"
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Analysis.StartMonth != 4 {
		t.Errorf("start_month = %d, want 4", cfg.Analysis.StartMonth)
	}
	if cfg.Analysis.FlowColumn != "discharge" {
		t.Errorf("flow_column = %q", cfg.Analysis.FlowColumn)
	}

	exclusions, err := cfg.Analysis.Exclusions()
	if err != nil {
		t.Fatalf("Exclusions: %v", err)
	}
	if len(exclusions) != 1 {
		t.Fatalf("expected 1 exclusion, got %d", len(exclusions))
	}
	want := time.Date(2019, 6, 1, 0, 0, 0, 0, time.UTC)
	if !exclusions[0].Start.Equal(want) {
		t.Errorf("exclusion start = %v, want %v", exclusions[0].Start, want)
	}
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Analysis: AnalysisConfig{
				StartMonth:      10,
				FlowColumn:      "q",
				ColwellTimeBins: 365,
				ColwellFlowBins: 11,
			},
			Export: ExportConfig{MaxDataPoints: 1000, ChartWidth: 800, ChartHeight: 600},
		}
	}

	if err := valid().Validate(); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"start month", func(c *Config) { c.Analysis.StartMonth = 13 }},
		{"flow column", func(c *Config) { c.Analysis.FlowColumn = "" }},
		{"time bins", func(c *Config) { c.Analysis.ColwellTimeBins = 400 }},
		{"flow bins", func(c *Config) { c.Analysis.ColwellFlowBins = 1 }},
		{"exclude range", func(c *Config) {
			c.Analysis.ExcludeRanges = []ExcludeRange{{Start: "2020-02-01", End: "2020-01-01"}}
		}},
		{"chart size", func(c *Config) { c.Export.ChartWidth = 0 }},
	}
	for _, tt := range tests {
		cfg := valid()
		tt.mutate(cfg)
		if err := cfg.Validate(); err == nil {
			t.Errorf("%s: expected validation error", tt.name)
		}
	}
}
