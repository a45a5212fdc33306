package app

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"time"

	chart "github.com/wcharczuk/go-chart/v2"

	"eflow-stats/internal/timeseries"
)

// Export writes the loaded, cleaned daily series as CSV and/or renders it as
// a PNG hydrograph.
func (a *App) Export(opts ExportOptions) error {
	if opts.CSVPath == "" && opts.PNGPath == "" {
		return errors.New("at least one of --csv or --png must be provided")
	}

	records, err := a.loadSeries(opts.Input)
	if err != nil {
		return err
	}

	maxPoints := opts.MaxPoints
	if maxPoints <= 0 {
		maxPoints = a.Config.Export.MaxDataPoints
	}

	a.Logger.Info().
		Str("input", opts.Input).
		Int("records", len(records)).
		Msg("exporting cleaned series")

	if opts.CSVPath != "" {
		if err := writeSeriesCSV(opts.CSVPath, records); err != nil {
			return err
		}
	}

	if opts.PNGPath != "" {
		downsampled := downsampleRecords(records, maxPoints)
		if err := a.writeHydrographPNG(opts.PNGPath, downsampled); err != nil {
			return err
		}
	}

	return nil
}

func writeSeriesCSV(path string, records []timeseries.FlowRecord) error {
	if err := ensureDir(path); err != nil {
		return err
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return timeseries.WriteCSV(file, records)
}

func (a *App) writeHydrographPNG(path string, records []timeseries.FlowRecord) error {
	if err := ensureDir(path); err != nil {
		return err
	}

	x := make([]time.Time, len(records))
	y := make([]float64, len(records))
	for i, rec := range records {
		x[i] = rec.Date
		flow := rec.Flow
		if math.IsNaN(flow) {
			flow = 0
		}
		y[i] = flow
	}

	graph := chart.Chart{
		Width:  a.Config.Export.ChartWidth,
		Height: a.Config.Export.ChartHeight,
		XAxis: chart.XAxis{
			ValueFormatter: chart.TimeValueFormatter,
		},
		YAxis: chart.YAxis{
			Name: "Daily flow (q)",
		},
		Series: []chart.Series{
			chart.TimeSeries{
				Name:    "q",
				XValues: x,
				YValues: y,
			},
		},
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return graph.Render(chart.PNG, file)
}

func downsampleRecords(records []timeseries.FlowRecord, max int) []timeseries.FlowRecord {
	if max <= 0 || len(records) <= max {
		return records
	}

	result := make([]timeseries.FlowRecord, 0, max)
	step := float64(len(records)-1) / float64(max-1)
	for i := 0; i < max; i++ {
		idx := int(math.Round(step * float64(i)))
		if idx >= len(records) {
			idx = len(records) - 1
		}
		result = append(result, records[idx])
	}
	return result
}

func ensureDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}
