package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Iron-Ham/scrollguard/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration",
	Long:  `Config prints the merged configuration: defaults, config file and environment overrides.`,
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "config file: %s\n\n", config.ConfigFile())
	fmt.Fprintf(out, "lock:\n")
	fmt.Fprintf(out, "  grace_window_ms:  %d\n", cfg.Lock.GraceWindowMs)
	fmt.Fprintf(out, "  release_delay_ms: %d\n", cfg.Lock.ReleaseDelayMs)
	fmt.Fprintf(out, "  debug:            %v\n", cfg.Lock.Debug)
	fmt.Fprintf(out, "logging:\n")
	fmt.Fprintf(out, "  enabled: %v\n", cfg.Logging.Enabled)
	fmt.Fprintf(out, "  level:   %s\n", cfg.Logging.Level)
	fmt.Fprintf(out, "  dir:     %s\n", cfg.Logging.Dir)
	fmt.Fprintf(out, "tui:\n")
	fmt.Fprintf(out, "  content_lines: %d\n", cfg.TUI.ContentLines)
	fmt.Fprintf(out, "  theme:         %s\n", cfg.TUI.Theme)
	return nil
}
