package main

import (
	"fmt"

	"github.com/aegonwolf/substack/internal/config"
	"github.com/aegonwolf/substack/internal/input"
	"github.com/aegonwolf/substack/internal/publication"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var countsOutput string

func init() {
	rootCmd.AddCommand(countsCmd)
	countsCmd.Flags().StringVarP(&countsOutput, "output", "o", "", "Output file (default counts_output in data_dir)")
}

var countsCmd = &cobra.Command{
	Use:   "counts",
	Short: "Report recommendation counts per publication",
	Long: `Write recommendation_counts.json: one row per publication in the
subscriber table with its incoming and outgoing recommendation counts,
sorted by total.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := countsOutput
		if out == "" {
			out = cfg.Path(cfg.CountsOutput)
		}
		return runCounts(cfg, logger, out)
	},
}

// runCounts writes the recommendation count report to out.
func runCounts(cfg *config.Config, logger *log.Logger, out string) error {
	loader := input.NewLoader(logger)

	relations, err := loader.PublicationRelations(cfg.Path(cfg.Recommendations))
	if err != nil {
		return fmt.Errorf("loading recommendations: %w", err)
	}
	stats, err := loader.PublicationStats(cfg.Path(cfg.SubscriberCounts))
	if err != nil {
		return fmt.Errorf("loading subscriber counts: %w", err)
	}

	rows := publication.Counts(relations, stats)
	if err := writeJSON(out, rows); err != nil {
		return err
	}

	sum := publication.Summarize(rows)
	logger.Info("wrote recommendation counts",
		"path", out,
		"publications", sum.Publications,
		"with_incoming", sum.WithIncoming,
		"with_outgoing", sum.WithOutgoing,
		"with_any", sum.WithAny,
		"max_incoming", sum.MaxIncoming,
		"max_outgoing", sum.MaxOutgoing,
	)
	return nil
}
