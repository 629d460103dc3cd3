package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aegonwolf/substack/internal/category"
	"github.com/aegonwolf/substack/internal/config"
	"github.com/aegonwolf/substack/internal/input"
	"github.com/aegonwolf/substack/internal/publication"
	"github.com/aegonwolf/substack/internal/viz"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	previewOutput string
	previewLayout string
)

func init() {
	rootCmd.AddCommand(previewCmd)
	previewCmd.Flags().StringVarP(&previewOutput, "output", "o", "", "Output HTML file (default <graph>.html in data_dir)")
	previewCmd.Flags().StringVar(&previewLayout, "layout", "force", "Layout algorithm: "+strings.Join(viz.ValidLayouts, ", "))
}

var previewCmd = &cobra.Command{
	Use:       "preview <publications|categories>",
	Short:     "Render a graph as a standalone HTML page",
	ValidArgs: []string{publicationsGraph, categoriesGraph},
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	Long: `Build a graph and write an interactive Cytoscape.js page for checking
it without the front end. Nodes use the same colours and sizes as the
JSON output.

Examples:
  subgraph preview categories
  subgraph preview publications --layout concentric -o /tmp/pubs.html`,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := previewOutput
		if out == "" {
			out = cfg.Path(args[0] + ".html")
		}
		return runPreview(cfg, logger, args[0], out, previewLayout)
	},
}

// runPreview builds the named graph and writes its HTML preview to out.
func runPreview(cfg *config.Config, logger *log.Logger, name, out, layout string) error {
	loader := input.NewLoader(logger)

	var data *viz.GraphData
	switch name {
	case publicationsGraph:
		relations, err := loader.PublicationRelations(cfg.Path(cfg.Recommendations))
		if err != nil {
			return fmt.Errorf("loading recommendations: %w", err)
		}
		stats, err := loader.PublicationStats(cfg.Path(cfg.SubscriberCounts))
		if err != nil {
			return fmt.Errorf("loading subscriber counts: %w", err)
		}
		data = viz.FromDocument("Publication recommendations", publication.Build(cfg.Style.Publications, relations, stats))
	case categoriesGraph:
		relations, err := loader.CategoryRelations(cfg.Path(cfg.CategoryRecommendations))
		if err != nil {
			return fmt.Errorf("loading category recommendations: %w", err)
		}
		stats, err := loader.CategoryStats(cfg.Path(cfg.Categories))
		if err != nil {
			return fmt.Errorf("loading category statistics: %w", err)
		}
		data = viz.FromDocument("Category recommendations", category.Build(cfg.Style.Categories, relations, stats))
	default:
		return fmt.Errorf("unknown graph %q", name)
	}

	if data.IsEmpty() {
		logger.Warn("graph has no nodes, preview will be empty", "graph", name)
	}

	opts := viz.DefaultOptions()
	if layout != "" {
		opts.Layout = layout
	}
	html, err := viz.GenerateHTML(data, opts)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(out), 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	if err := os.WriteFile(out, []byte(html), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", out, err)
	}

	logger.Info("wrote preview", "graph", name, "path", out, "nodes", len(data.Nodes), "links", len(data.Edges))
	return nil
}
