// Package main provides the subgraph CLI entry point.
package main

import (
	"fmt"
	"os"

	"github.com/aegonwolf/substack/internal/config"
	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags
var Version = "dev"

var (
	configPath string
	dataDir    string
	sqlitePath string
	debug      bool
)

// cfg and logger are set by the root command's PersistentPreRunE.
var (
	cfg    *config.Config
	logger *log.Logger
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		// Print the error since we have SilenceErrors: true
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(exitCode(err))
	}
}

var rootCmd = &cobra.Command{
	Use:   "subgraph",
	Short: "Build the Substack recommendation graphs",
	Long: `subgraph turns scraped Substack recommendation data into the JSON
documents the graph front end renders.

Running subgraph without a subcommand builds every output:
  - graph_data_optimized.json           (publication graph)
  - category_graph_data_optimized.json  (category graph)
  - recommendation_counts.json          (per-publication counts)
  - publications_merged.json            (subscriber rows with counts)

Inputs and outputs live under data_dir (default static/jsons).
Missing input files produce empty outputs with a warning.`,
	Args:              cobra.NoArgs,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := runPublications(cfg, logger, cfg.Path(cfg.GraphOutput), sqlitePath); err != nil {
			return err
		}
		if err := runCategories(cfg, logger, cfg.Path(cfg.CategoryGraphOutput), sqlitePath); err != nil {
			return err
		}
		if err := runCounts(cfg, logger, cfg.Path(cfg.CountsOutput)); err != nil {
			return err
		}
		return runMerged(cfg, logger, cfg.Path(cfg.MergedOutput))
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default $SUBGRAPH_CONFIG or ./subgraph.yml)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "Directory holding inputs and outputs (overrides data_dir)")
	rootCmd.PersistentFlags().StringVar(&sqlitePath, "sqlite", "", "Also export graphs to this SQLite database")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")
	rootCmd.Version = Version
}

// setup loads .env, the configuration and the logger before any command runs.
func setup(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()

	logger = newLogger(debug)

	loaded, err := config.Load(config.ResolvePath(configPath))
	if err != nil {
		return &codedError{code: ExitConfigError, err: err}
	}
	if dataDir != "" {
		loaded.DataDir = dataDir
	}
	cfg = loaded
	return nil
}

// newLogger returns a stderr logger at info level, or debug when requested.
func newLogger(debug bool) *log.Logger {
	level := log.InfoLevel
	if debug {
		level = log.DebugLevel
	}
	return log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Level:           level,
	})
}
