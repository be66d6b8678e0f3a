package cmd

import (
	"github.com/VictoriaMetrics/metrics"
	"github.com/spf13/cobra"
)

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Print current metrics in Prometheus exposition format",
	Long: `Metrics prints every registered counter in Prometheus exposition
format. Counters accumulate within a single process, so this is mainly
useful from scripts wrapping the TUI or when diagnosing a live session.`,
	Run: runMetrics,
}

func init() {
	rootCmd.AddCommand(metricsCmd)
}

func runMetrics(cmd *cobra.Command, args []string) {
	metrics.WritePrometheus(cmd.OutOrStdout(), false)
}
