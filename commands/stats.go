package commands

import (
	"github.com/spf13/cobra"

	"github.com/mybussiness/bazaar/metrics"
)

// NewStatsCommand dumps the process metrics in Prometheus text format.
func NewStatsCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print process metrics",
		RunE: func(cmd *cobra.Command, args []string) error {
			return metrics.Dump(cmd.OutOrStdout(), app.Metrics.Gatherer())
		},
	}
}
