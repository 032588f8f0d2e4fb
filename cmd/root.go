package cmd

import (
	"fmt"
	"os"

	"github.com/slumbersage/gjirafa50/config"
	"github.com/slumbersage/gjirafa50/helpers"
	"github.com/slumbersage/gjirafa50/internal/scraper"
	"github.com/slumbersage/gjirafa50/logger"
	"github.com/spf13/cobra"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "gjirafa50",
	Short: "gjirafa50 - JSON API over the gjirafa50.com shop",
	Long:  "Scrapes gjirafa50.com search results, product pages, categories, banners and happy hours and serves them as JSON.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}
		logger.Init(logger.Options{
			Level:       cfg.LogLevel,
			Environment: cfg.Environment,
			File:        cfg.LogFile,
		})
		return nil
	},
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("upstream", "", "Upstream base URL (default from $UPSTREAM_BASE_URL)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().String("log-file", "", "Also write JSON logs to this rotated file")
}

func initConfig() {
	cfg = config.Load()

	// Override from flags
	if v, _ := rootCmd.PersistentFlags().GetString("upstream"); v != "" {
		cfg.UpstreamBaseURL = v
	}
	if v, _ := rootCmd.PersistentFlags().GetString("log-level"); v != "" {
		cfg.LogLevel = v
	}
	if v, _ := rootCmd.PersistentFlags().GetString("log-file"); v != "" {
		cfg.LogFile = v
	}
}

// newScraper builds the upstream scraper from config.
func newScraper() *scraper.Scraper {
	return scraper.New(cfg.UpstreamBaseURL, helpers.NewClient(cfg.UpstreamTimeout))
}
