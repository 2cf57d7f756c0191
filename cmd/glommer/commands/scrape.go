package commands

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/notapresent/glommer/internal/config"
	"github.com/notapresent/glommer/internal/download"
	"github.com/notapresent/glommer/internal/extract"
	"github.com/notapresent/glommer/internal/logger"
	"github.com/notapresent/glommer/internal/scheduler"
	"github.com/notapresent/glommer/internal/store"
)

var scrapeCmd = &cobra.Command{
	Use:   "scrape",
	Short: "Run one scrape pass over all enabled channels",
	Long: `Scrape loads every enabled channel from storage, fetches its index
page, discovers entry links, fetches and extracts media links from each
entry, and persists the results in batches.

Examples:
  glommer scrape
  glommer scrape --dsn channels.db --entry-pool-size 16`,
	RunE: runScrape,
}

func init() {
	rootCmd.AddCommand(scrapeCmd)
	config.BindFlags(scrapeCmd.Flags())
}

func runScrape(cmd *cobra.Command, args []string) error {
	logger.Init(logger.Options{
		Debug: viper.GetBool("debug"),
		Quiet: viper.GetBool("quiet"),
	})

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg := config.Load()
	logger.Debug("scrape command starting",
		"dsn", cfg.DSN,
		"channel_pool_size", cfg.ChannelPoolSize,
		"entry_pool_size", cfg.EntryPoolSize)

	st, err := store.Open(cfg.DSN)
	if err != nil {
		logger.Error("failed to open store", "dsn", cfg.DSN, "error", err)
		return err
	}

	dl := download.New(cfg.DownloaderConfig())
	ee := extract.NewEntryExtractor()

	result, err := scheduler.Run(ctx, st, dl, ee, cfg.SchedulerConfig())
	if err != nil {
		logger.Error("scrape run failed", "error", err)
		return err
	}

	fmt.Printf("Processed %s entries from %s channels\n",
		humanize.Comma(int64(result.EntriesProcessed)),
		humanize.Comma(int64(result.ChannelsProcessed)))

	return nil
}
