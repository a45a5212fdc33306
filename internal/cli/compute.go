package cli

import (
	"github.com/spf13/cobra"

	"eflow-stats/internal/app"
)

var (
	computeInput     string
	computeOutput    string
	computeMode      string
	computeUseMedian bool
)

var computeCmd = &cobra.Command{
	Use:   "compute",
	Short: "Compute flow statistics for a single site",
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := app.ComputeOptions{
			Input:  computeInput,
			Output: computeOutput,
			Mode:   computeMode,
		}
		if cmd.Flags().Changed("use-median") {
			opts.UseMedian = &computeUseMedian
		}
		return getApp().Compute(opts)
	},
}

func init() {
	computeCmd.Flags().StringVar(&computeInput, "input", "", "Input CSV with datetime and flow columns")
	computeCmd.Flags().StringVar(&computeOutput, "output", "", "Output CSV path (prints to stdout when omitted)")
	computeCmd.Flags().StringVar(&computeMode, "mode", "all", "Index subset: mag7, hiap, or all")
	computeCmd.Flags().BoolVar(&computeUseMedian, "use-median", false, "Aggregate event values with the median instead of the mean")
	_ = computeCmd.MarkFlagRequired("input")
}
