// Package publication builds the publication recommendation graph.
package publication

import (
	"fmt"

	"github.com/aegonwolf/substack/internal/config"
	"github.com/aegonwolf/substack/internal/graph"
	"github.com/aegonwolf/substack/internal/identity"
	"github.com/aegonwolf/substack/internal/record"
	"github.com/dustin/go-humanize"
)

// Node groups.
const (
	GroupDualRole          graph.Group = "dual-role"
	GroupBestseller        graph.Group = "bestseller"
	GroupHighlyRecommended graph.Group = "highly-recommended"
	GroupRecommended       graph.Group = "recommended"
	GroupOther             graph.Group = "other"
)

// HighlyRecommendedThreshold is the in-degree above which a publication is
// highly recommended.
const HighlyRecommendedThreshold = 10

// Node is a publication graph node.
type Node = graph.Node[record.PublicationStat]

// Strategy implements graph.Strategy for publications keyed by URL.
type Strategy struct {
	Style config.PublicationStyle
}

// NewStrategy returns a Strategy using the given colours.
func NewStrategy(style config.PublicationStyle) Strategy {
	return Strategy{Style: style}
}

var _ graph.Strategy[record.PublicationStat] = Strategy{}

// Resolve maps a URL to its publication identifier.
func (Strategy) Resolve(raw string) string {
	return identity.Publication(raw)
}

// NodeID keeps the URL as the node id.
func (Strategy) NodeID(key, raw string) string {
	return raw
}

// StatKey returns the row's publication URL.
func (Strategy) StatKey(st record.PublicationStat) string {
	return st.PublicationURL
}

// Describe sets the display name, URL category and subscriber magnitude.
func (Strategy) Describe(n *Node) {
	n.Name = identity.PublicationName(n.ID)
	n.Category = identity.PublicationCategory(n.ID)
	n.Magnitude = float64(n.Stat.SubscriberCount)
}

// Group classifies a publication. Bestsellers (recommenders) are grouped
// first; everyone else by how often they are recommended.
func (Strategy) Group(n *Node) graph.Group {
	switch {
	case n.Recommender && n.Metrics.InDegree > 0:
		return GroupDualRole
	case n.Recommender:
		return GroupBestseller
	case n.Metrics.InDegree > HighlyRecommendedThreshold:
		return GroupHighlyRecommended
	case n.Metrics.InDegree > 0:
		return GroupRecommended
	default:
		return GroupOther
	}
}

// Size scales logarithmically with subscribers, between 2 and 20.
// Publications without subscriber data get 8 (bestsellers) or 4.
func (Strategy) Size(n *Node) float64 {
	fallback := 4.0
	if n.Recommender {
		fallback = 8
	}
	return graph.LogSize(n.Magnitude, 2, 2, 20, fallback)
}

// Color marks bestsellers, otherwise bands by subscriber count.
func (s Strategy) Color(n *Node) string {
	if n.Recommender {
		return s.Style.Bestseller
	}
	return s.Style.Palette.ColorFor(n.Magnitude)
}

// Label appends the subscriber count when known.
func (Strategy) Label(n *Node) string {
	if n.Stat.SubscriberCount > 0 {
		return fmt.Sprintf("%s (%s subs)", n.Name, humanize.Comma(n.Stat.SubscriberCount))
	}
	return n.Name
}

// Flagged counts bestsellers.
func (Strategy) Flagged(n *Node) bool {
	return n.Recommender
}

// Build runs the pipeline over publication inputs.
func Build(style config.PublicationStyle, relations []record.Relation, stats []record.PublicationStat) *graph.Document[record.PublicationStat] {
	return graph.Run[record.PublicationStat](NewStrategy(style), relations, stats)
}
