package cmd

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Iron-Ham/scrollguard/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "scrollguard",
	Short: "Reference-counted scroll lock manager for shared terminal surfaces",
	Long: `Scrollguard arbitrates scroll suppression on a shared viewport among
uncoordinated overlay flows. Any flow may lock without knowing about the
others; the surface is restored exactly once, when the last holder releases,
and a watchdog repairs suppression applied behind the manager's back.`,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringP("config", "c", "", "config file (default is $HOME/.config/scrollguard/config.yaml)")
	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
}

func initConfig() {
	// A .env in the working directory feeds the env overrides below.
	config.LoadEnvFile()

	// Set defaults first so they're available even without a config file
	config.SetDefaults()

	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(config.ConfigDir())
		viper.AddConfigPath("$HOME/.config/scrollguard")
		viper.AddConfigPath(".")
	}

	viper.AutomaticEnv()
	viper.SetEnvPrefix("SCROLLGUARD")
	// Replace dots with underscores for nested keys in env vars
	// e.g., SCROLLGUARD_LOCK_DEBUG for lock.debug
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read config file if it exists (ignore error if not found)
	_ = viper.ReadInConfig()
}
