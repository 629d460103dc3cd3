package graph

import (
	"math"
	"sort"

	"github.com/aegonwolf/substack/internal/record"
)

// Assemble orders nodes by descending magnitude, then name, then id, and
// packages them with links and metadata. declared is the number of relation
// targets in the raw input.
func Assemble[S any](s Strategy[S], nodes []*Node[S], links []Link, declared int) *Document[S] {
	sorted := make([]*Node[S], len(nodes))
	copy(sorted, nodes)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.Magnitude != b.Magnitude {
			return a.Magnitude > b.Magnitude
		}
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		return a.ID < b.ID
	})

	meta := Metadata{
		TotalNodes:    len(sorted),
		TotalLinks:    len(links),
		TotalDeclared: declared,
	}
	for _, n := range sorted {
		if s.Flagged(n) {
			meta.Flagged++
		}
		if n.Magnitude > 0 {
			meta.WithMagnitude++
		}
	}

	if links == nil {
		links = []Link{}
	}
	return &Document[S]{Nodes: sorted, Links: links, Metadata: meta}
}

// Run executes the full pipeline.
func Run[S any](s Strategy[S], relations []record.Relation, stats []S) *Document[S] {
	g := Build(s, relations, stats)
	deg := Aggregate(g.Nodes, g.Links)
	Classify(s, g.Nodes, deg)
	return Assemble(s, g.Nodes, g.Links, record.DeclaredTotal(relations))
}

// LogSize returns clamp(base + log10(v+1)*2, lo, hi) for v > 0 and
// fallback otherwise.
func LogSize(v, base, lo, hi, fallback float64) float64 {
	if v <= 0 {
		return fallback
	}
	size := base + math.Log10(v+1)*2
	return math.Min(math.Max(size, lo), hi)
}
