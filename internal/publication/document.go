package publication

import (
	"github.com/aegonwolf/substack/internal/graph"
	"github.com/aegonwolf/substack/internal/record"
)

// NodeJSON is the renderer's publication node.
type NodeJSON struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	Category        string  `json:"category"`
	SubscriberCount int64   `json:"subscriber_count"`
	IsBestseller    bool    `json:"is_bestseller"`
	Val             float64 `json:"val"`
	Color           string  `json:"color"`
	Label           string  `json:"label"`
	InDegree        int     `json:"inDegree"`
	OutDegree       int     `json:"outDegree"`
	Group           string  `json:"group"`
}

// MetadataJSON summarises the publication graph.
type MetadataJSON struct {
	TotalNodes           int `json:"total_nodes"`
	TotalLinks           int `json:"total_links"`
	BestsellersCount     int `json:"bestsellers_count"`
	NodesWithSubscribers int `json:"nodes_with_subscribers"`
	TotalRecommendations int `json:"total_recommendations"`
}

// DocumentJSON is graph_data_optimized.json.
type DocumentJSON struct {
	Nodes    []NodeJSON   `json:"nodes"`
	Links    []graph.Link `json:"links"`
	Metadata MetadataJSON `json:"metadata"`
}

// Render converts an assembled document into its wire form.
func Render(doc *graph.Document[record.PublicationStat]) DocumentJSON {
	nodes := make([]NodeJSON, 0, len(doc.Nodes))
	for _, n := range doc.Nodes {
		nodes = append(nodes, NodeJSON{
			ID:              n.ID,
			Name:            n.Name,
			Category:        n.Category,
			SubscriberCount: n.Stat.SubscriberCount,
			IsBestseller:    n.Recommender,
			Val:             n.Visual.Size,
			Color:           n.Visual.Color,
			Label:           n.Visual.Label,
			InDegree:        n.Metrics.InDegree,
			OutDegree:       n.Metrics.OutDegree,
			Group:           string(n.Group),
		})
	}

	return DocumentJSON{
		Nodes: nodes,
		Links: doc.Links,
		Metadata: MetadataJSON{
			TotalNodes:           doc.Metadata.TotalNodes,
			TotalLinks:           doc.Metadata.TotalLinks,
			BestsellersCount:     doc.Metadata.Flagged,
			NodesWithSubscribers: doc.Metadata.WithMagnitude,
			TotalRecommendations: doc.Metadata.TotalDeclared,
		},
	}
}
