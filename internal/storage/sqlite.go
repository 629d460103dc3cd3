// Package storage exports assembled graph documents to SQLite.
package storage

import (
	"database/sql"
	"fmt"

	"github.com/aegonwolf/substack/internal/graph"
	_ "modernc.org/sqlite"
)

// DB wraps a SQLite database connection.
type DB struct {
	db *sql.DB
}

// OpenDB opens or creates a SQLite database at the given path.
func OpenDB(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	db.SetMaxOpenConns(1) // SQLite doesn't support concurrent writes

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &DB{db: db}, nil
}

// Close closes the database connection.
func (d *DB) Close() error {
	return d.db.Close()
}

// createSchema creates the database schema if it doesn't exist.
// Every row is tagged with the graph it belongs to so one file can hold
// several documents.
func createSchema(db *sql.DB) error {
	schema := `
		CREATE TABLE IF NOT EXISTS nodes (
			graph TEXT NOT NULL,
			position INTEGER NOT NULL,
			id TEXT NOT NULL,
			canonical_key TEXT NOT NULL,
			name TEXT NOT NULL,
			category TEXT,
			magnitude REAL NOT NULL,
			val REAL NOT NULL,
			color TEXT NOT NULL,
			label TEXT NOT NULL,
			in_degree INTEGER NOT NULL,
			out_degree INTEGER NOT NULL,
			in_weight REAL NOT NULL,
			out_weight REAL NOT NULL,
			node_group TEXT NOT NULL,
			PRIMARY KEY (graph, id)
		);

		CREATE TABLE IF NOT EXISTS links (
			graph TEXT NOT NULL,
			position INTEGER NOT NULL,
			source TEXT NOT NULL,
			target TEXT NOT NULL,
			value REAL NOT NULL,
			PRIMARY KEY (graph, position)
		);

		CREATE INDEX IF NOT EXISTS idx_links_source ON links(graph, source);
		CREATE INDEX IF NOT EXISTS idx_links_target ON links(graph, target);

		CREATE TABLE IF NOT EXISTS metadata (
			graph TEXT NOT NULL,
			key TEXT NOT NULL,
			value INTEGER NOT NULL,
			PRIMARY KEY (graph, key)
		);
	`
	_, err := db.Exec(schema)
	return err
}

// WriteGraph replaces the rows of the named graph with doc, in one transaction.
func WriteGraph[S any](d *DB, name string, doc *graph.Document[S]) error {
	tx, err := d.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"nodes", "links", "metadata"} {
		if _, err := tx.Exec("DELETE FROM "+table+" WHERE graph = ?", name); err != nil {
			return fmt.Errorf("clearing %s: %w", table, err)
		}
	}

	nodeStmt, err := tx.Prepare(`
		INSERT INTO nodes (graph, position, id, canonical_key, name, category, magnitude,
			val, color, label, in_degree, out_degree, in_weight, out_weight, node_group)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing nodes insert: %w", err)
	}
	defer nodeStmt.Close()

	for i, n := range doc.Nodes {
		_, err := nodeStmt.Exec(name, i, n.ID, n.Key, n.Name, n.Category, n.Magnitude,
			n.Visual.Size, n.Visual.Color, n.Visual.Label,
			n.Metrics.InDegree, n.Metrics.OutDegree, n.Metrics.InWeight, n.Metrics.OutWeight,
			string(n.Group))
		if err != nil {
			return fmt.Errorf("inserting node %s: %w", n.ID, err)
		}
	}

	linkStmt, err := tx.Prepare(`INSERT INTO links (graph, position, source, target, value) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing links insert: %w", err)
	}
	defer linkStmt.Close()

	for i, l := range doc.Links {
		if _, err := linkStmt.Exec(name, i, l.Source, l.Target, l.Value); err != nil {
			return fmt.Errorf("inserting link %d: %w", i, err)
		}
	}

	meta := map[string]int{
		"total_nodes":    doc.Metadata.TotalNodes,
		"total_links":    doc.Metadata.TotalLinks,
		"flagged":        doc.Metadata.Flagged,
		"with_magnitude": doc.Metadata.WithMagnitude,
		"total_declared": doc.Metadata.TotalDeclared,
	}
	for key, value := range meta {
		if _, err := tx.Exec(`INSERT INTO metadata (graph, key, value) VALUES (?, ?, ?)`, name, key, value); err != nil {
			return fmt.Errorf("inserting metadata %s: %w", key, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing graph %s: %w", name, err)
	}
	return nil
}

// NodeIDs returns the ids of a graph's nodes in document order.
func (d *DB) NodeIDs(name string) ([]string, error) {
	rows, err := d.db.Query(`SELECT id FROM nodes WHERE graph = ? ORDER BY position`, name)
	if err != nil {
		return nil, fmt.Errorf("querying nodes: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning node: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// Links returns a graph's links in document order.
func (d *DB) Links(name string) ([]graph.Link, error) {
	rows, err := d.db.Query(`SELECT source, target, value FROM links WHERE graph = ? ORDER BY position`, name)
	if err != nil {
		return nil, fmt.Errorf("querying links: %w", err)
	}
	defer rows.Close()

	var links []graph.Link
	for rows.Next() {
		var l graph.Link
		if err := rows.Scan(&l.Source, &l.Target, &l.Value); err != nil {
			return nil, fmt.Errorf("scanning link: %w", err)
		}
		links = append(links, l)
	}
	return links, rows.Err()
}

// Metadata returns a graph's metadata counters.
func (d *DB) Metadata(name string) (map[string]int, error) {
	rows, err := d.db.Query(`SELECT key, value FROM metadata WHERE graph = ?`, name)
	if err != nil {
		return nil, fmt.Errorf("querying metadata: %w", err)
	}
	defer rows.Close()

	meta := make(map[string]int)
	for rows.Next() {
		var key string
		var value int
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("scanning metadata: %w", err)
		}
		meta[key] = value
	}
	return meta, rows.Err()
}

// TopByInDegree returns up to limit node ids of a graph with the highest
// in-degree, ties broken by document order.
func (d *DB) TopByInDegree(name string, limit int) ([]string, error) {
	rows, err := d.db.Query(`
		SELECT id FROM nodes
		WHERE graph = ?
		ORDER BY in_degree DESC, position
		LIMIT ?
	`, name, limit)
	if err != nil {
		return nil, fmt.Errorf("querying top nodes: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning node: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
