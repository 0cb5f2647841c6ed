// Package cmd implements the command-line interface for warta. It provides
// the root command and subcommands for crawling, scheduling, PDF ingestion,
// and catalogue inspection.
package cmd

import (
	"context"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	// cfgFile holds the path to the configuration file.
	cfgFile string

	// debug forces debug-level logging for all commands.
	debug bool

	rootCmd = &cobra.Command{
		Use:   "warta",
		Short: "Crawler and sector classifier for Gorontalo regional news",
		Long: `warta ingests Indonesian-language news from regional websites and
scanned newspaper PDFs, classifies every article into a BPS/KBLI sector
code, and stores the results in PostgreSQL.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
)

// Execute runs the root command.
func Execute() error {
	// Load .env early so environment variables are available to every
	// command.
	_ = godotenv.Load()

	return rootCmd.ExecuteContext(context.Background())
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (optional)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	rootCmd.AddCommand(newCrawlCommand())
	rootCmd.AddCommand(newSchedulerCommand())
	rootCmd.AddCommand(newSourcesCommand())
	rootCmd.AddCommand(newArticlesCommand())
	rootCmd.AddCommand(newExtractCommand())
	rootCmd.AddCommand(newClassifyCommand())
	rootCmd.AddCommand(newVersionCommand())
}
