package app

import (
	"os"

	"eflow-stats/internal/stats"
)

// Show prints a statistics preview for one site without writing any file.
func (a *App) Show(opts ShowOptions) error {
	mode, err := stats.ParseMode(opts.Mode)
	if err != nil {
		return err
	}

	records, err := a.loadSeries(opts.Input)
	if err != nil {
		return err
	}

	orch, err := a.newOrchestrator(nil)
	if err != nil {
		return err
	}

	table, err := orch.Compute(records, mode)
	if err != nil {
		return err
	}

	if opts.Limit > 0 && len(table.Rows) > opts.Limit {
		table.Rows = table.Rows[:opts.Limit]
	}

	return table.Render(os.Stdout)
}
