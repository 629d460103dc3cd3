package publication

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// MergedStats summarises publications_merged.json for the listing page.
type MergedStats struct {
	Total        int      `json:"total"`
	ValidCount   int      `json:"validCount"`
	InvalidCount int      `json:"invalidCount"`
	Categories   []string `json:"categories"`
	BoardTypes   []string `json:"boardTypes"`
}

// MergedDocument is publications_merged.json.
type MergedDocument struct {
	Publications []json.RawMessage `json:"publications"`
	Stats        MergedStats       `json:"stats"`
}

// Merge annotates every subscriber table row with its recommendation
// counts. Rows keep all of their own fields; the count fields are added,
// or overwritten in place when a row already has them. Rows without a
// count entry get zeros.
//
// Categories are the distinct string "category" values, sorted. Board
// types are the distinct non-empty string "board" values, sorted.
func Merge(rows []gjson.Result, counts []CountRow) (*MergedDocument, error) {
	byURL := make(map[string]CountRow, len(counts))
	for _, c := range counts {
		byURL[c.PublicationURL] = c
	}

	doc := &MergedDocument{Publications: make([]json.RawMessage, 0, len(rows))}
	categories := make(map[string]bool)
	boards := make(map[string]bool)

	for i, row := range rows {
		c := byURL[row.Get("publication_url").String()]

		raw := row.Raw
		fields := []struct {
			key   string
			value int
		}{
			{"recommendation_count", c.OutgoingRecommendations},
			{"incoming_recommendations", c.IncomingRecommendations},
			{"outgoing_recommendations", c.OutgoingRecommendations},
			{"total_recommendations", c.TotalRecommendations},
		}
		for _, f := range fields {
			var err error
			if raw, err = sjson.Set(raw, f.key, f.value); err != nil {
				return nil, fmt.Errorf("merging row %d: %w", i, err)
			}
		}
		doc.Publications = append(doc.Publications, json.RawMessage(raw))

		if cat := row.Get("category"); cat.Type == gjson.String {
			categories[cat.String()] = true
		}
		if board := row.Get("board"); board.Type == gjson.String && board.String() != "" {
			boards[board.String()] = true
		}
	}

	doc.Stats = MergedStats{
		Total:      len(rows),
		ValidCount: len(rows),
		Categories: sortedKeys(categories),
		BoardTypes: sortedKeys(boards),
	}
	return doc, nil
}

func sortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
