package main

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/aegonwolf/substack/internal/config"
	"github.com/aegonwolf/substack/internal/input"
	"github.com/aegonwolf/substack/internal/storage"
	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupDataDir writes the given input files into a temp data_dir and
// returns a config pointing at it.
func setupDataDir(t *testing.T, files map[string]string) *config.Config {
	t.Helper()

	dir := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
	}

	cfg := config.Default()
	cfg.DataDir = dir
	return cfg
}

func quietLogger() *log.Logger {
	return log.New(io.Discard)
}

func readJSON(t *testing.T, path string, v any) {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, v))
}

func TestRunPublications(t *testing.T) {
	cfg := setupDataDir(t, map[string]string{
		"recommendations.json":   `[{"https://a.substack.com": ["https://b.com"]}]`,
		"subscriber_counts.json": `[{"publication_url": "https://b.com", "subscriber_count": 100}]`,
	})
	out := cfg.Path(cfg.GraphOutput)
	dbPath := filepath.Join(t.TempDir(), "graph.db")

	require.NoError(t, runPublications(cfg, quietLogger(), out, dbPath))

	var doc struct {
		Nodes []struct {
			ID       string `json:"id"`
			Group    string `json:"group"`
			InDegree int    `json:"inDegree"`
		} `json:"nodes"`
		Links    []map[string]any `json:"links"`
		Metadata map[string]int   `json:"metadata"`
	}
	readJSON(t, out, &doc)

	require.Len(t, doc.Nodes, 2)
	assert.Equal(t, "https://b.com", doc.Nodes[0].ID)
	assert.Equal(t, 1, doc.Nodes[0].InDegree)
	assert.Equal(t, "bestseller", doc.Nodes[1].Group)
	assert.Len(t, doc.Links, 1)
	assert.Equal(t, 1, doc.Metadata["total_links"])

	db, err := storage.OpenDB(dbPath)
	require.NoError(t, err)
	defer db.Close()
	ids, err := db.NodeIDs(publicationsGraph)
	require.NoError(t, err)
	assert.Equal(t, []string{"https://b.com", "https://a.substack.com"}, ids)
}

func TestRunCategories(t *testing.T) {
	cfg := setupDataDir(t, map[string]string{
		"category_recommendations.json": `{"tech": {"science": 5}}`,
		"categories.json":               `[{"category": "tech", "outgoing": 600, "median_subscriber_count": 2500}]`,
	})
	out := cfg.Path(cfg.CategoryGraphOutput)

	require.NoError(t, runCategories(cfg, quietLogger(), out, ""))

	var doc struct {
		Nodes []struct {
			ID    string `json:"id"`
			Color string `json:"color"`
		} `json:"nodes"`
		Links []struct {
			Source string  `json:"source"`
			Target string  `json:"target"`
			Value  float64 `json:"value"`
		} `json:"links"`
	}
	readJSON(t, out, &doc)

	require.Len(t, doc.Nodes, 2)
	assert.Equal(t, "category_tech", doc.Nodes[0].ID)
	assert.Equal(t, "#ff6b35", doc.Nodes[0].Color)
	require.Len(t, doc.Links, 1)
	assert.Equal(t, 5.0, doc.Links[0].Value)
}

func TestRunCounts(t *testing.T) {
	cfg := setupDataDir(t, map[string]string{
		"recommendations.json":   `[{"https://a.substack.com": ["https://b.com"]}]`,
		"subscriber_counts.json": `[{"publication_url": "https://a.substack.com"}, {"publication_url": "https://b.com"}, {"publication_url": "https://c.com"}]`,
	})
	out := cfg.Path(cfg.CountsOutput)

	require.NoError(t, runCounts(cfg, quietLogger(), out))

	var rows []map[string]any
	readJSON(t, out, &rows)
	require.Len(t, rows, 3)
	assert.Equal(t, "https://a.substack.com", rows[0]["publication_url"])
	assert.Equal(t, 1.0, rows[0]["outgoing_recommendations"])
	assert.Equal(t, "https://b.com", rows[1]["publication_url"])
	assert.Equal(t, 1.0, rows[1]["incoming_recommendations"])
	assert.Equal(t, 0.0, rows[2]["total_recommendations"])
}

func TestRun_MissingInputsWriteEmptyDocuments(t *testing.T) {
	cfg := setupDataDir(t, nil)
	out := cfg.Path(cfg.GraphOutput)

	require.NoError(t, runPublications(cfg, quietLogger(), out, ""))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.JSONEq(t, `{"nodes": [], "links": [], "metadata": {
		"total_nodes": 0, "total_links": 0, "bestsellers_count": 0,
		"nodes_with_subscribers": 0, "total_recommendations": 0}}`, string(data))
}

func TestRun_MalformedInputIsDataError(t *testing.T) {
	cfg := setupDataDir(t, map[string]string{
		"subscriber_counts.json": `{"not": "an array"}`,
	})

	err := runPublications(cfg, quietLogger(), cfg.Path(cfg.GraphOutput), "")
	require.Error(t, err)
	assert.ErrorIs(t, err, input.ErrMalformed)
	assert.Equal(t, ExitDataError, exitCode(err))
}

func TestWriteJSON_CreatesDirectoriesAndKeepsAmpersands(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "out.json")

	require.NoError(t, writeJSON(path, map[string]string{"name": "Tech & Science"}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"name\": \"Tech & Science\"\n}\n", string(data))
}

func TestRunPreview(t *testing.T) {
	cfg := setupDataDir(t, map[string]string{
		"category_recommendations.json": `{"tech": {"science": 5}}`,
	})
	out := filepath.Join(t.TempDir(), "categories.html")

	require.NoError(t, runPreview(cfg, quietLogger(), categoriesGraph, out, "grid"))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), "category_tech")
	assert.Contains(t, string(data), "2 nodes, 1 links")

	assert.ErrorContains(t, runPreview(cfg, quietLogger(), "authors", out, "grid"), "unknown graph")
	assert.ErrorContains(t, runPreview(cfg, quietLogger(), categoriesGraph, out, "spiral"), "invalid layout")
}

func TestRunMerged(t *testing.T) {
	cfg := setupDataDir(t, map[string]string{
		"recommendations.json": `[{"https://a.substack.com": ["https://b.com"]}]`,
		"subscriber_counts.json": `[
			{"publication_url": "https://a.substack.com", "category": "Tech", "board": "rising"},
			{"publication_url": "https://b.com", "category": "Art", "subscriber_count": 100}
		]`,
	})
	out := cfg.Path(cfg.MergedOutput)

	require.NoError(t, runMerged(cfg, quietLogger(), out))

	var doc struct {
		Publications []map[string]any `json:"publications"`
		Stats        map[string]any   `json:"stats"`
	}
	readJSON(t, out, &doc)

	require.Len(t, doc.Publications, 2)
	assert.Equal(t, "rising", doc.Publications[0]["board"])
	assert.Equal(t, 1.0, doc.Publications[0]["recommendation_count"])
	assert.Equal(t, 1.0, doc.Publications[0]["outgoing_recommendations"])
	assert.Equal(t, 100.0, doc.Publications[1]["subscriber_count"])
	assert.Equal(t, 1.0, doc.Publications[1]["incoming_recommendations"])
	assert.Equal(t, 0.0, doc.Publications[1]["recommendation_count"])

	assert.Equal(t, 2.0, doc.Stats["total"])
	assert.Equal(t, []any{"Art", "Tech"}, doc.Stats["categories"])
	assert.Equal(t, []any{"rising"}, doc.Stats["boardTypes"])
}

// executeCommand runs the root command with args and returns its stdout.
func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("SUBGRAPH_DATA_DIR", "")
	t.Setenv("SUBGRAPH_CONFIG", "")
	t.Cleanup(func() {
		configPath, dataDir, sqlitePath, debug = "", "", "", false
		pubOutput, pubRecommendations, pubSubscribers = "", "", ""
		resolveCategory = false
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

func TestResolveCommand(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "subgraph.yml")

	out, err := executeCommand(t, "--config", missing, "resolve", "https://lenny.substack.com", "https://www.lenny.com")
	require.NoError(t, err)
	assert.Equal(t, "https://lenny.substack.com\tlenny\nhttps://www.lenny.com\tlenny\n", out)

	out, err = executeCommand(t, "--config", missing, "resolve", "--category", "Technology")
	require.NoError(t, err)
	assert.Equal(t, "Technology\tcategory_Technology\n", out)
}

func TestConfigCommand(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "subgraph.yml")

	out, err := executeCommand(t, "--config", missing, "--data-dir", "/srv/substack", "config")
	require.NoError(t, err)
	assert.Contains(t, out, "data_dir: /srv/substack\n")
	assert.Contains(t, out, "merged_output: publications_merged.json\n")
}

func TestInvalidConfigIsConfigError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "subgraph.yml")
	require.NoError(t, os.WriteFile(path, []byte("graph_output: \"\"\n"), 0644))

	_, err := executeCommand(t, "--config", path, "config")
	require.Error(t, err)
	assert.ErrorContains(t, err, "graph_output is empty")
	assert.Equal(t, ExitConfigError, exitCode(err))
}

func TestInputFlagsAreRelativeToWorkingDirectory(t *testing.T) {
	work := t.TempDir()
	t.Chdir(work)
	require.NoError(t, os.MkdirAll("mydata", 0755))
	require.NoError(t, os.WriteFile(filepath.Join("mydata", "recs.json"),
		[]byte(`[{"https://a.substack.com": ["https://b.com"]}]`), 0644))

	out := filepath.Join(work, "graph.json")
	_, err := executeCommand(t,
		"--config", filepath.Join(work, "none.yml"),
		"--data-dir", filepath.Join(work, "elsewhere"),
		"publications", "--recommendations", "mydata/recs.json", "-o", out)
	require.NoError(t, err)

	var doc struct {
		Links []map[string]any `json:"links"`
	}
	readJSON(t, out, &doc)
	assert.Len(t, doc.Links, 1)
}

func TestFlagPath(t *testing.T) {
	cwd, err := os.Getwd()
	require.NoError(t, err)

	got, err := flagPath("mydata/recs.json")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(cwd, "mydata", "recs.json"), got)

	// An absolute path is not joined onto data_dir.
	assert.Equal(t, got, config.Default().Path(got))
}
