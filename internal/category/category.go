// Package category builds the category co-recommendation graph.
package category

import (
	"fmt"
	"math"
	"strings"

	"github.com/aegonwolf/substack/internal/config"
	"github.com/aegonwolf/substack/internal/graph"
	"github.com/aegonwolf/substack/internal/identity"
	"github.com/aegonwolf/substack/internal/record"
)

// Node groups.
const (
	GroupHub       graph.Group = "hub-category"
	GroupConnector graph.Group = "connector-category"
	GroupSource    graph.Group = "source-category"
	GroupTarget    graph.Group = "target-category"
	GroupBalanced  graph.Group = "balanced-category"
)

// Degree thresholds on in + out.
const (
	HubThreshold       = 30
	ConnectorThreshold = 15
)

// LabelThreshold is the median subscriber count above which labels show it.
const LabelThreshold = 1000

// Node is a category graph node.
type Node = graph.Node[record.CategoryStat]

// Strategy implements graph.Strategy for categories.
type Strategy struct {
	Style config.CategoryStyle
}

// NewStrategy returns a Strategy using the given colours.
func NewStrategy(style config.CategoryStyle) Strategy {
	return Strategy{Style: style}
}

var _ graph.Strategy[record.CategoryStat] = Strategy{}

// Resolve namespaces the category name. Category statistics already use
// the relation table's names, so no other normalisation is done.
func (Strategy) Resolve(raw string) string {
	if raw == "" {
		return ""
	}
	return identity.Category(raw)
}

// NodeID is the namespaced key.
func (Strategy) NodeID(key, raw string) string {
	return key
}

// StatKey returns the row's category name.
func (Strategy) StatKey(st record.CategoryStat) string {
	return st.Category
}

// Describe sets the display name and orders categories by median
// subscribers, truncated to an integer.
func (Strategy) Describe(n *Node) {
	n.Name = identity.CategoryName(strings.TrimPrefix(n.Key, identity.CategoryPrefix))
	n.Category = "Category"
	n.Magnitude = math.Trunc(n.Stat.MedianSubscribers)
}

// Group classifies a category by its connection pattern.
func (Strategy) Group(n *Node) graph.Group {
	m := n.Metrics
	switch {
	case m.Total() > HubThreshold:
		return GroupHub
	case m.Total() > ConnectorThreshold:
		return GroupConnector
	case m.OutDegree > m.InDegree:
		return GroupSource
	case m.InDegree > m.OutDegree:
		return GroupTarget
	default:
		return GroupBalanced
	}
}

// Size scales logarithmically with median subscribers, between 5 and 30.
// Categories without a median get 8.
func (Strategy) Size(n *Node) float64 {
	return graph.LogSize(n.Stat.MedianSubscribers, 5, 5, 30, 8)
}

// Color bands by the category's outgoing connection count.
func (s Strategy) Color(n *Node) string {
	return s.Style.Palette.ColorFor(n.Stat.Outgoing)
}

// Label appends the median in thousands when above LabelThreshold.
func (Strategy) Label(n *Node) string {
	if median := n.Stat.MedianSubscribers; median > LabelThreshold {
		return fmt.Sprintf("%s (%dk median subs)", n.Name, int64(median/1000))
	}
	return n.Name
}

// Flagged counts every category.
func (Strategy) Flagged(n *Node) bool {
	return true
}

// Build runs the pipeline over category inputs.
func Build(style config.CategoryStyle, relations []record.Relation, stats []record.CategoryStat) *graph.Document[record.CategoryStat] {
	return graph.Run[record.CategoryStat](NewStrategy(style), relations, stats)
}
