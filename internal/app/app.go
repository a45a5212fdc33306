package app

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"eflow-stats/internal/config"
	"eflow-stats/internal/stats"
	"eflow-stats/internal/timeseries"
)

// App aggregates configuration and shared dependencies for the CLI commands.
type App struct {
	Config *config.Config
	Logger zerolog.Logger
}

// NewApp constructs a new application handle.
func NewApp(cfg *config.Config, logger zerolog.Logger) *App {
	return &App{Config: cfg, Logger: logger.With().Str("component", "app").Logger()}
}

// loadSeries reads a site's daily record using the configured column names.
func (a *App) loadSeries(path string) ([]timeseries.FlowRecord, error) {
	records, err := timeseries.Load(path, timeseries.LoadOptions{
		DateColumn: a.Config.Analysis.DateColumn,
		FlowColumn: a.Config.Analysis.FlowColumn,
	})
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%s: no parsable rows", path)
	}
	return records, nil
}

// newOrchestrator builds a statistics orchestrator from the analysis config,
// optionally overriding the aggregation statistic.
func (a *App) newOrchestrator(useMedianOverride *bool) (*stats.Orchestrator, error) {
	analysis := a.Config.Analysis

	exclusions, err := analysis.Exclusions()
	if err != nil {
		return nil, err
	}

	useMedian := analysis.UseMedian
	if useMedianOverride != nil {
		useMedian = *useMedianOverride
	}

	opts := stats.Options{
		StartMonth: time.Month(analysis.StartMonth),
		Exclusions: exclusions,
		UseMedian:  useMedian,
	}
	opts.Colwell.TimeBins = analysis.ColwellTimeBins
	opts.Colwell.FlowBins = analysis.ColwellFlowBins

	return stats.New(opts, a.Logger)
}

// ComputeOptions hold parameters for the single-site compute command.
type ComputeOptions struct {
	Input     string
	Output    string
	Mode      string
	UseMedian *bool
}

// BatchOptions hold parameters for multi-site directory processing.
type BatchOptions struct {
	InputDir  string
	OutputDir string
	Mode      string
}

// ExportOptions hold parameters for exporting the cleaned series.
type ExportOptions struct {
	Input     string
	CSVPath   string
	PNGPath   string
	MaxPoints int
}

// ShowOptions configure the show command.
type ShowOptions struct {
	Input string
	Mode  string
	Limit int
}
