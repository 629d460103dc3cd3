package main

import (
	"fmt"

	"github.com/aegonwolf/substack/internal/config"
	"github.com/aegonwolf/substack/internal/input"
	"github.com/aegonwolf/substack/internal/publication"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	pubOutput          string
	pubRecommendations string
	pubSubscribers     string
)

func init() {
	rootCmd.AddCommand(publicationsCmd)
	publicationsCmd.Flags().StringVarP(&pubOutput, "output", "o", "", "Output file (default graph_output in data_dir)")
	publicationsCmd.Flags().StringVar(&pubRecommendations, "recommendations", "", "Recommendations JSON, relative to the working directory (default from config)")
	publicationsCmd.Flags().StringVar(&pubSubscribers, "subscribers", "", "Subscriber counts JSON or JSONL, relative to the working directory (default from config)")
}

var publicationsCmd = &cobra.Command{
	Use:   "publications",
	Short: "Build the publication recommendation graph",
	Long: `Build graph_data_optimized.json from the recommendation and subscriber
count tables.

Publications are merged by identifier, so https://lenny.substack.com and
https://www.lenny.com become one node.

Examples:
  subgraph publications
  subgraph publications -o /tmp/graph.json --sqlite graph.db`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := overridePath(&cfg.Recommendations, pubRecommendations); err != nil {
			return err
		}
		if err := overridePath(&cfg.SubscriberCounts, pubSubscribers); err != nil {
			return err
		}
		out := pubOutput
		if out == "" {
			out = cfg.Path(cfg.GraphOutput)
		}
		return runPublications(cfg, logger, out, sqlitePath)
	},
}

// runPublications builds the publication graph and writes it to out, and
// to the SQLite database at dbPath when set.
func runPublications(cfg *config.Config, logger *log.Logger, out, dbPath string) error {
	loader := input.NewLoader(logger)

	relations, err := loader.PublicationRelations(cfg.Path(cfg.Recommendations))
	if err != nil {
		return fmt.Errorf("loading recommendations: %w", err)
	}
	stats, err := loader.PublicationStats(cfg.Path(cfg.SubscriberCounts))
	if err != nil {
		return fmt.Errorf("loading subscriber counts: %w", err)
	}

	doc := publication.Build(cfg.Style.Publications, relations, stats)

	if err := writeJSON(out, publication.Render(doc)); err != nil {
		return err
	}
	if dbPath != "" {
		if err := exportGraph(logger, dbPath, publicationsGraph, doc); err != nil {
			return err
		}
	}

	logger.Info("wrote publication graph",
		"path", out,
		"nodes", doc.Metadata.TotalNodes,
		"links", doc.Metadata.TotalLinks,
		"bestsellers", doc.Metadata.Flagged,
		"with_subscribers", doc.Metadata.WithMagnitude,
	)
	return nil
}

// overridePath replaces a configured input with a path from a flag, when
// the flag was given.
func overridePath(dst *string, flag string) error {
	if flag == "" {
		return nil
	}
	path, err := flagPath(flag)
	if err != nil {
		return err
	}
	*dst = path
	return nil
}
