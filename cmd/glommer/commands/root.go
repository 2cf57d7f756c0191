// Package commands implements the CLI commands for glommer.
package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/notapresent/glommer/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "glommer",
	Short: "Scheduled scraper that extracts media links from channel pages",
	Long: `Glommer periodically fetches configured channels (HTML index pages),
discovers entry links, fetches each entry's page, and extracts
image/video/streaming-media URLs into batched storage.

Examples:
  # Run one scrape pass against the configured channels
  glommer scrape

  # Use a specific sqlite database and a tighter global timeout
  glommer scrape --dsn channels.db --global-timeout 2m`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default $HOME/.glommer.yaml)")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "suppress progress output")

	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	_ = viper.BindPFlag("quiet", rootCmd.PersistentFlags().Lookup("quiet"))
}

func initConfig() {
	config.SetConfigFile(viper.GetString("config"))
	config.ReadEnv()
	if err := config.ReadConfigFile(); err != nil {
		logError("%v", err)
	}
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// logError prints an error message to stderr.
func logError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
}
