package main

import (
	"fmt"

	"github.com/aegonwolf/substack/internal/category"
	"github.com/aegonwolf/substack/internal/config"
	"github.com/aegonwolf/substack/internal/input"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	catOutput          string
	catRecommendations string
	catStats           string
)

func init() {
	rootCmd.AddCommand(categoriesCmd)
	categoriesCmd.Flags().StringVarP(&catOutput, "output", "o", "", "Output file (default category_graph_output in data_dir)")
	categoriesCmd.Flags().StringVar(&catRecommendations, "recommendations", "", "Category recommendations JSON, relative to the working directory (default from config)")
	categoriesCmd.Flags().StringVar(&catStats, "stats", "", "Category statistics JSON or JSONL, relative to the working directory (default from config)")
}

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "Build the weighted category graph",
	Long: `Build category_graph_data_optimized.json from the category
recommendation weights and per-category statistics.

Examples:
  subgraph categories
  subgraph categories --data-dir ./data --debug`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := overridePath(&cfg.CategoryRecommendations, catRecommendations); err != nil {
			return err
		}
		if err := overridePath(&cfg.Categories, catStats); err != nil {
			return err
		}
		out := catOutput
		if out == "" {
			out = cfg.Path(cfg.CategoryGraphOutput)
		}
		return runCategories(cfg, logger, out, sqlitePath)
	},
}

// runCategories builds the category graph and writes it to out, and to the
// SQLite database at dbPath when set.
func runCategories(cfg *config.Config, logger *log.Logger, out, dbPath string) error {
	loader := input.NewLoader(logger)

	relations, err := loader.CategoryRelations(cfg.Path(cfg.CategoryRecommendations))
	if err != nil {
		return fmt.Errorf("loading category recommendations: %w", err)
	}
	stats, err := loader.CategoryStats(cfg.Path(cfg.Categories))
	if err != nil {
		return fmt.Errorf("loading category statistics: %w", err)
	}

	doc := category.Build(cfg.Style.Categories, relations, stats)

	if err := writeJSON(out, category.Render(doc)); err != nil {
		return err
	}
	if dbPath != "" {
		if err := exportGraph(logger, dbPath, categoriesGraph, doc); err != nil {
			return err
		}
	}

	logger.Info("wrote category graph",
		"path", out,
		"nodes", doc.Metadata.TotalNodes,
		"links", doc.Metadata.TotalLinks,
		"recommendations", doc.Metadata.TotalDeclared,
	)
	return nil
}
