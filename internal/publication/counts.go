package publication

import (
	"sort"

	"github.com/aegonwolf/substack/internal/graph"
	"github.com/aegonwolf/substack/internal/record"
)

// CountRow is one entry of recommendation_counts.json.
type CountRow struct {
	PublicationURL          string `json:"publication_url"`
	IncomingRecommendations int    `json:"incoming_recommendations"`
	OutgoingRecommendations int    `json:"outgoing_recommendations"`
	TotalRecommendations    int    `json:"total_recommendations"`
}

// Counts reports incoming and outgoing recommendations for every
// publication in the subscriber table.
//
// Recommendations are matched by publication identifier, so every alias
// of a publication contributes. Outgoing counts are summed across aliases
// the same way incoming counts are. When several table URLs share an
// identifier, the counts go to the last of them and the others report
// zero.
//
// Rows are sorted by total descending, then URL.
func Counts(relations []record.Relation, stats []record.PublicationStat) []CountRow {
	g := graph.Build[record.PublicationStat](Strategy{}, relations, stats)
	deg := graph.Aggregate(g.Nodes, g.Links)

	byKey := make(map[string]*Node, len(g.Nodes))
	for _, n := range g.Nodes {
		byKey[n.Key] = n
	}

	seen := make(map[string]bool, len(stats))
	rows := make([]CountRow, 0, len(stats))
	for _, st := range stats {
		url := st.PublicationURL
		if url == "" || seen[url] {
			continue
		}
		seen[url] = true

		row := CountRow{PublicationURL: url}
		if n, ok := byKey[Strategy{}.Resolve(url)]; ok && n.ID == url {
			row.IncomingRecommendations = deg[n.ID].InDegree
			row.OutgoingRecommendations = deg[n.ID].OutDegree
		}
		row.TotalRecommendations = row.IncomingRecommendations + row.OutgoingRecommendations
		rows = append(rows, row)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].TotalRecommendations != rows[j].TotalRecommendations {
			return rows[i].TotalRecommendations > rows[j].TotalRecommendations
		}
		return rows[i].PublicationURL < rows[j].PublicationURL
	})
	return rows
}

// CountSummary aggregates a count report for logging.
type CountSummary struct {
	Publications int
	WithIncoming int
	WithOutgoing int
	WithAny      int
	MaxIncoming  int
	MaxOutgoing  int
}

// Summarize computes a CountSummary.
func Summarize(rows []CountRow) CountSummary {
	s := CountSummary{Publications: len(rows)}
	for _, r := range rows {
		if r.IncomingRecommendations > 0 {
			s.WithIncoming++
		}
		if r.OutgoingRecommendations > 0 {
			s.WithOutgoing++
		}
		if r.TotalRecommendations > 0 {
			s.WithAny++
		}
		s.MaxIncoming = max(s.MaxIncoming, r.IncomingRecommendations)
		s.MaxOutgoing = max(s.MaxOutgoing, r.OutgoingRecommendations)
	}
	return s
}
