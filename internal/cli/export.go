package cli

import (
	"github.com/spf13/cobra"

	"eflow-stats/internal/app"
)

var (
	exportInput     string
	exportCSVPath   string
	exportPNGPath   string
	exportMaxPoints int
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the cleaned daily series as CSV and/or PNG hydrograph",
	RunE: func(cmd *cobra.Command, args []string) error {
		return getApp().Export(app.ExportOptions{
			Input:     exportInput,
			CSVPath:   exportCSVPath,
			PNGPath:   exportPNGPath,
			MaxPoints: exportMaxPoints,
		})
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportInput, "input", "", "Input CSV with datetime and flow columns")
	exportCmd.Flags().StringVar(&exportCSVPath, "csv", "", "Path to write the cleaned series CSV")
	exportCmd.Flags().StringVar(&exportPNGPath, "png", "", "Path to write a PNG hydrograph")
	exportCmd.Flags().IntVar(&exportMaxPoints, "max-points", 0, "Maximum chart data points (defaults to config)")
	_ = exportCmd.MarkFlagRequired("input")
}
