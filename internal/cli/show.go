package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"eflow-stats/internal/app"
)

var (
	showInput string
	showMode  string
	showLimit int
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Preview flow statistics for a site without writing output",
	RunE: func(cmd *cobra.Command, args []string) error {
		if showLimit < 0 {
			return fmt.Errorf("--limit cannot be negative")
		}
		return getApp().Show(app.ShowOptions{
			Input: showInput,
			Mode:  showMode,
			Limit: showLimit,
		})
	},
}

func init() {
	showCmd.Flags().StringVar(&showInput, "input", "", "Input CSV with datetime and flow columns")
	showCmd.Flags().StringVar(&showMode, "mode", "mag7", "Index subset: mag7, hiap, or all")
	showCmd.Flags().IntVar(&showLimit, "limit", 0, "Maximum rows to display (0 shows all)")
	_ = showCmd.MarkFlagRequired("input")
}
