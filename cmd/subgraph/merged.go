package main

import (
	"fmt"

	"github.com/aegonwolf/substack/internal/config"
	"github.com/aegonwolf/substack/internal/input"
	"github.com/aegonwolf/substack/internal/publication"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var mergedOutput string

func init() {
	rootCmd.AddCommand(mergedCmd)
	mergedCmd.Flags().StringVarP(&mergedOutput, "output", "o", "", "Output file (default merged_output in data_dir)")
}

var mergedCmd = &cobra.Command{
	Use:   "merged",
	Short: "Write subscriber rows merged with their recommendation counts",
	Long: `Write publications_merged.json for the publication listing page: every
subscriber table row with all of its fields, plus recommendation_count,
incoming_recommendations, outgoing_recommendations and
total_recommendations, and a stats block with the distinct categories and
board types.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := mergedOutput
		if out == "" {
			out = cfg.Path(cfg.MergedOutput)
		}
		return runMerged(cfg, logger, out)
	},
}

// runMerged writes the merged publication listing to out.
func runMerged(cfg *config.Config, logger *log.Logger, out string) error {
	loader := input.NewLoader(logger)

	relations, err := loader.PublicationRelations(cfg.Path(cfg.Recommendations))
	if err != nil {
		return fmt.Errorf("loading recommendations: %w", err)
	}
	rows, stats, err := loader.SubscriberTable(cfg.Path(cfg.SubscriberCounts))
	if err != nil {
		return fmt.Errorf("loading subscriber counts: %w", err)
	}

	doc, err := publication.Merge(rows, publication.Counts(relations, stats))
	if err != nil {
		return err
	}
	if err := writeJSON(out, doc); err != nil {
		return err
	}

	logger.Info("wrote merged publications",
		"path", out,
		"publications", doc.Stats.Total,
		"categories", len(doc.Stats.Categories),
		"board_types", len(doc.Stats.BoardTypes),
	)
	return nil
}
