package input

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/aegonwolf/substack/internal/record"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestPublicationRelations_KeepsDocumentOrder(t *testing.T) {
	path := writeFile(t, "recommendations.json", `[{
		"https://z.substack.com": ["https://b.com", "https://a.com"],
		"https://a.com": [],
		"https://m.com": ["https://z.substack.com"]
	}]`)

	got, err := NewLoader(nil).PublicationRelations(path)
	require.NoError(t, err)

	assert.Equal(t, []record.Relation{
		{Source: "https://z.substack.com", Targets: []record.Target{{Key: "https://b.com"}, {Key: "https://a.com"}}},
		{Source: "https://a.com"},
		{Source: "https://m.com", Targets: []record.Target{{Key: "https://z.substack.com"}}},
	}, got)
}

func TestPublicationRelations_BareObjectAndMalformedEntries(t *testing.T) {
	path := writeFile(t, "recommendations.json", `{
		"https://a.com": ["https://b.com", 42, null, ""],
		"https://c.com": "not-a-list",
		"": ["https://d.com"]
	}`)

	got, err := NewLoader(nil).PublicationRelations(path)
	require.NoError(t, err)

	assert.Equal(t, []record.Relation{
		{Source: "https://a.com", Targets: []record.Target{{Key: "https://b.com"}}},
		{Source: "https://c.com"},
	}, got)
}

func TestRelations_RepeatedSourceKeepsLastValueAtFirstPosition(t *testing.T) {
	path := writeFile(t, "recommendations.json", `[{
		"https://a.com": ["https://b.com"],
		"https://x.com": ["https://a.com"],
		"https://a.com": ["https://c.com", "https://d.com"]
	}]`)

	got, err := NewLoader(nil).PublicationRelations(path)
	require.NoError(t, err)

	assert.Equal(t, []record.Relation{
		{Source: "https://a.com", Targets: []record.Target{{Key: "https://c.com"}, {Key: "https://d.com"}}},
		{Source: "https://x.com", Targets: []record.Target{{Key: "https://a.com"}}},
	}, got)
	assert.Equal(t, 3, record.DeclaredTotal(got))

	path = writeFile(t, "category_recommendations.json", `{
		"tech": {"science": 5},
		"tech": {"art": 2}
	}`)

	cats, err := NewLoader(nil).CategoryRelations(path)
	require.NoError(t, err)
	assert.Equal(t, []record.Relation{
		{Source: "tech", Targets: []record.Target{{Key: "art", Weight: 2, HasWeight: true}}},
	}, cats)
}

func TestPublicationRelations_RepairsTrailingComma(t *testing.T) {
	path := writeFile(t, "recommendations.json", `[{"https://a.com": ["https://b.com",],}]`)

	got, err := NewLoader(nil).PublicationRelations(path)
	require.NoError(t, err)
	assert.Equal(t, []record.Relation{
		{Source: "https://a.com", Targets: []record.Target{{Key: "https://b.com"}}},
	}, got)
}

func TestCategoryRelations(t *testing.T) {
	path := writeFile(t, "category_recommendations.json", `{
		"tech": {"science": 5, "culture": 1.5, "bad": "x"},
		"science": {},
		"odd": ["not", "an", "object"]
	}`)

	got, err := NewLoader(nil).CategoryRelations(path)
	require.NoError(t, err)

	assert.Equal(t, []record.Relation{
		{Source: "tech", Targets: []record.Target{
			{Key: "science", Weight: 5, HasWeight: true},
			{Key: "culture", Weight: 1.5, HasWeight: true},
		}},
		{Source: "science"},
		{Source: "odd"},
	}, got)
}

func TestMissingAndEmptyFilesYieldEmptyTables(t *testing.T) {
	l := NewLoader(nil)
	missing := filepath.Join(t.TempDir(), "missing.json")
	empty := writeFile(t, "empty.json", "  \n")

	for _, path := range []string{missing, empty} {
		rels, err := l.PublicationRelations(path)
		require.NoError(t, err)
		assert.Empty(t, rels)

		cats, err := l.CategoryRelations(path)
		require.NoError(t, err)
		assert.Empty(t, cats)

		pubStats, err := l.PublicationStats(path)
		require.NoError(t, err)
		assert.Empty(t, pubStats)

		catStats, err := l.CategoryStats(path)
		require.NoError(t, err)
		assert.Empty(t, catStats)
	}

	jsonl, err := l.CategoryStats(filepath.Join(t.TempDir(), "missing.jsonl"))
	require.NoError(t, err)
	assert.Empty(t, jsonl)
}

func TestPublicationStats(t *testing.T) {
	path := writeFile(t, "subscriber_counts.json", `[
		{"publication_url": "https://a.com", "subscriber_count": 1200},
		{"publication_url": "https://b.com"},
		{"subscriber_count": 5},
		"junk",
		{"publication_url": "https://c.com", "subscriber_count": "77"}
	]`)

	got, err := NewLoader(nil).PublicationStats(path)
	require.NoError(t, err)

	assert.Equal(t, []record.PublicationStat{
		{PublicationURL: "https://a.com", SubscriberCount: 1200},
		{PublicationURL: "https://b.com"},
		{PublicationURL: "https://c.com", SubscriberCount: 77},
	}, got)
}

func TestCategoryStats_JSONL(t *testing.T) {
	path := writeFile(t, "categories.jsonl", `{"category": "tech", "median_subscriber_count": 2500, "outgoing": 600, "incoming": 3}

not json
{"category": "science", "mean_subscriber_count": 10.5, "max_subscriber_count": 99}
{"median_subscriber_count": 1}
`)

	got, err := NewLoader(nil).CategoryStats(path)
	require.NoError(t, err)

	assert.Equal(t, []record.CategoryStat{
		{Category: "tech", MedianSubscribers: 2500, Outgoing: 600, Incoming: 3},
		{Category: "science", MeanSubscribers: 10.5, MaxSubscribers: 99},
	}, got)
}

func TestStats_RejectsNonArrayDocument(t *testing.T) {
	path := writeFile(t, "categories.json", `{"category": "tech"}`)

	_, err := NewLoader(nil).CategoryStats(path)
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestSubscriberTable_KeepsRawRows(t *testing.T) {
	path := writeFile(t, "subscriber_counts.json", `[
		{"publication_url": "https://a.com", "subscriber_count": 1200, "board": "tech"},
		{"name": "no url"},
		"junk"
	]`)

	rows, stats, err := NewLoader(nil).SubscriberTable(path)
	require.NoError(t, err)

	require.Len(t, rows, 2)
	assert.Equal(t, "tech", rows[0].Get("board").String())
	assert.Equal(t, "no url", rows[1].Get("name").String())
	assert.Equal(t, []record.PublicationStat{{PublicationURL: "https://a.com", SubscriberCount: 1200}}, stats)
}
