// Package viz renders an assembled graph document as a standalone
// Cytoscape.js HTML page for previewing without the front end.
package viz

import "github.com/aegonwolf/substack/internal/graph"

// GraphData contains all data needed to render the visualization.
type GraphData struct {
	Title string `json:"-"`
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// Node is a graph node with its precomputed visual attributes.
type Node struct {
	ID        string  `json:"id"`
	Label     string  `json:"label"`
	Name      string  `json:"name"`
	Category  string  `json:"category"`
	Group     string  `json:"group"`
	Color     string  `json:"color"`
	Size      float64 `json:"size"`
	InDegree  int     `json:"inDegree"`
	OutDegree int     `json:"outDegree"`
}

// Edge is a directed, weighted link.
type Edge struct {
	Source string  `json:"source"`
	Target string  `json:"target"`
	Weight float64 `json:"weight"`
}

// FromDocument converts an assembled document for display.
func FromDocument[S any](title string, doc *graph.Document[S]) *GraphData {
	g := &GraphData{
		Title: title,
		Nodes: make([]Node, 0, len(doc.Nodes)),
		Edges: make([]Edge, 0, len(doc.Links)),
	}
	for _, n := range doc.Nodes {
		g.Nodes = append(g.Nodes, Node{
			ID:        n.ID,
			Label:     n.Visual.Label,
			Name:      n.Name,
			Category:  n.Category,
			Group:     string(n.Group),
			Color:     n.Visual.Color,
			Size:      n.Visual.Size,
			InDegree:  n.Metrics.InDegree,
			OutDegree: n.Metrics.OutDegree,
		})
	}
	for _, l := range doc.Links {
		g.Edges = append(g.Edges, Edge{Source: l.Source, Target: l.Target, Weight: l.Value})
	}
	return g
}

// IsEmpty returns true if the graph has no nodes.
func (g *GraphData) IsEmpty() bool {
	return len(g.Nodes) == 0
}
