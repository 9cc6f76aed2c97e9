package commands

import (
	"fmt"

	"evplan/internal/report"

	"github.com/pkg/browser"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	reportRange string
	reportOut   string
	reportOpen  bool
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Render the inventory and payment dashboard as a static HTML file",
	RunE: func(cmd *cobra.Command, args []string) error {
		rangeToken := reportRange
		if rangeToken == "" {
			rangeToken = cfg.DefaultRange
		}
		outDir := reportOut
		if outDir == "" {
			outDir = cfg.ReportDir
		}

		d := report.Collect(provider.Store(), cfg.StatsOptions(), rangeToken, now())
		path, err := report.Write(d, outDir)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), path)

		if reportOpen {
			if err := browser.OpenFile(path); err != nil {
				log.Warn().Err(err).Str("path", path).Msg("Could not open report in browser")
			}
		}
		return nil
	},
}

func init() {
	reportCmd.Flags().StringVar(&reportRange, "range", "", "payment date range, e.g. '30 days', '3 months', 'all' (default: DEFAULT_RANGE)")
	reportCmd.Flags().StringVarP(&reportOut, "out", "o", "", "output directory (default: REPORT_DIR)")
	reportCmd.Flags().BoolVar(&reportOpen, "open", false, "open the report in the default browser")
	rootCmd.AddCommand(reportCmd)
}
