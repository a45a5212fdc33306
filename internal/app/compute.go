package app

import (
	"os"

	"eflow-stats/internal/stats"
)

// Compute runs the statistics pipeline for one site and writes or prints the
// resulting table.
func (a *App) Compute(opts ComputeOptions) error {
	mode, err := stats.ParseMode(opts.Mode)
	if err != nil {
		return err
	}

	records, err := a.loadSeries(opts.Input)
	if err != nil {
		return err
	}

	orch, err := a.newOrchestrator(opts.UseMedian)
	if err != nil {
		return err
	}

	table, err := orch.Compute(records, mode)
	if err != nil {
		return err
	}

	a.Logger.Info().
		Str("input", opts.Input).
		Str("mode", mode.String()).
		Int("rows", len(table.Rows)).
		Msg("statistics computed")

	if opts.Output == "" {
		return table.Render(os.Stdout)
	}
	if err := table.SaveCSV(opts.Output); err != nil {
		return err
	}
	a.Logger.Info().Str("output", opts.Output).Msg("statistics saved")
	return nil
}
