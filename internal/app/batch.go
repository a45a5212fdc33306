package app

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"eflow-stats/internal/stats"
)

// Batch processes every CSV in a directory, writing a per-site statistics
// table plus one compiled file holding each site's all_years row. Sites that
// fail to load or validate are logged and skipped.
func (a *App) Batch(opts BatchOptions) error {
	mode, err := stats.ParseMode(opts.Mode)
	if err != nil {
		return err
	}

	inputDir := opts.InputDir
	if inputDir == "" {
		inputDir = a.Config.Batch.InputDir
	}
	outputDir := opts.OutputDir
	if outputDir == "" {
		outputDir = a.Config.Batch.OutputDir
	}

	entries, err := os.ReadDir(inputDir)
	if err != nil {
		return fmt.Errorf("read input dir: %w", err)
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	orch, err := a.newOrchestrator(nil)
	if err != nil {
		return err
	}

	var columns []string
	type compiledRow struct {
		site string
		row  stats.Row
	}
	var compiled []compiledRow

	processed, failed := 0, 0
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".csv") {
			continue
		}
		site := strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name()))

		table, err := a.computeSite(orch, filepath.Join(inputDir, entry.Name()), mode)
		if err != nil {
			failed++
			a.Logger.Error().Err(err).Str("site", site).Msg("site failed; skipping")
			continue
		}

		outPath := filepath.Join(outputDir, site+"_stats.csv")
		if err := table.SaveCSV(outPath); err != nil {
			return err
		}

		if columns == nil {
			columns = table.Columns
		}
		if row, ok := table.Lookup(stats.AllYearsLabel); ok {
			compiled = append(compiled, compiledRow{site: site, row: row})
		}
		processed++
		a.Logger.Info().Str("site", site).Str("output", outPath).Msg("site processed")
	}

	if processed == 0 {
		return fmt.Errorf("no sites processed from %s", inputDir)
	}

	compiledPath := filepath.Join(outputDir, a.Config.Batch.CompiledFile)
	compiledTable := &stats.Table{Columns: columns}
	siteNames := make([]string, 0, len(compiled))
	for _, c := range compiled {
		compiledTable.Rows = append(compiledTable.Rows, c.row)
		siteNames = append(siteNames, c.site)
	}

	file, err := os.Create(compiledPath)
	if err != nil {
		return err
	}
	defer file.Close()
	if err := compiledTable.WriteCompiledCSV(file, siteNames); err != nil {
		return fmt.Errorf("write %s: %w", compiledPath, err)
	}

	a.Logger.Info().
		Int("processed", processed).
		Int("failed", failed).
		Str("compiled", compiledPath).
		Msg("batch complete")
	return nil
}

func (a *App) computeSite(orch *stats.Orchestrator, path string, mode stats.Mode) (*stats.Table, error) {
	records, err := a.loadSeries(path)
	if err != nil {
		return nil, err
	}
	return orch.Compute(records, mode)
}
