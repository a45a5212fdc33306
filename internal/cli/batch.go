package cli

import (
	"github.com/spf13/cobra"

	"eflow-stats/internal/app"
)

var (
	batchInputDir  string
	batchOutputDir string
	batchMode      string
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Process every site CSV in a directory and compile their all_years rows",
	RunE: func(cmd *cobra.Command, args []string) error {
		return getApp().Batch(app.BatchOptions{
			InputDir:  batchInputDir,
			OutputDir: batchOutputDir,
			Mode:      batchMode,
		})
	},
}

func init() {
	batchCmd.Flags().StringVar(&batchInputDir, "input-dir", "", "Directory of site CSVs (defaults to config)")
	batchCmd.Flags().StringVar(&batchOutputDir, "output-dir", "", "Directory for per-site outputs (defaults to config)")
	batchCmd.Flags().StringVar(&batchMode, "mode", "all", "Index subset: mag7, hiap, or all")
}
