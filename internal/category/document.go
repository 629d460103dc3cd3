package category

import (
	"github.com/aegonwolf/substack/internal/graph"
	"github.com/aegonwolf/substack/internal/record"
)

// NodeJSON is the renderer's category node.
type NodeJSON struct {
	ID                  string  `json:"id"`
	Name                string  `json:"name"`
	Category            string  `json:"category"`
	NodeType            string  `json:"node_type"`
	SubscriberCount     int64   `json:"subscriber_count"`
	OutgoingConnections float64 `json:"outgoing_connections"`
	IncomingConnections float64 `json:"incoming_connections"`
	Val                 float64 `json:"val"`
	Color               string  `json:"color"`
	Label               string  `json:"label"`
	InDegree            int     `json:"inDegree"`
	OutDegree           int     `json:"outDegree"`
	InWeight            float64 `json:"inWeight"`
	OutWeight           float64 `json:"outWeight"`
	Group               string  `json:"group"`
}

// MetadataJSON summarises the category graph.
type MetadataJSON struct {
	TotalNodes           int `json:"total_nodes"`
	TotalLinks           int `json:"total_links"`
	CategoriesCount      int `json:"categories_count"`
	TotalRecommendations int `json:"total_recommendations"`
}

// DocumentJSON is category_graph_data_optimized.json.
type DocumentJSON struct {
	Nodes    []NodeJSON   `json:"nodes"`
	Links    []graph.Link `json:"links"`
	Metadata MetadataJSON `json:"metadata"`
}

// NodeType tags category nodes for the renderer.
const NodeType = "category"

// Render converts an assembled document into its wire form.
func Render(doc *graph.Document[record.CategoryStat]) DocumentJSON {
	nodes := make([]NodeJSON, 0, len(doc.Nodes))
	for _, n := range doc.Nodes {
		nodes = append(nodes, NodeJSON{
			ID:                  n.ID,
			Name:                n.Name,
			Category:            n.Category,
			NodeType:            NodeType,
			SubscriberCount:     int64(n.Magnitude),
			OutgoingConnections: n.Stat.Outgoing,
			IncomingConnections: n.Stat.Incoming,
			Val:                 n.Visual.Size,
			Color:               n.Visual.Color,
			Label:               n.Visual.Label,
			InDegree:            n.Metrics.InDegree,
			OutDegree:           n.Metrics.OutDegree,
			InWeight:            n.Metrics.InWeight,
			OutWeight:           n.Metrics.OutWeight,
			Group:               string(n.Group),
		})
	}

	return DocumentJSON{
		Nodes: nodes,
		Links: doc.Links,
		Metadata: MetadataJSON{
			TotalNodes:           doc.Metadata.TotalNodes,
			TotalLinks:           doc.Metadata.TotalLinks,
			CategoriesCount:      doc.Metadata.Flagged,
			TotalRecommendations: doc.Metadata.TotalDeclared,
		},
	}
}
