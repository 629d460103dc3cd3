package main

import (
	"fmt"

	"github.com/aegonwolf/substack/internal/config"
	"github.com/aegonwolf/substack/internal/graph"
	"github.com/aegonwolf/substack/internal/storage"
	"github.com/charmbracelet/log"
)

// Graph names used in the SQLite export and by preview.
const (
	publicationsGraph = "publications"
	categoriesGraph   = "categories"
)

// mostLinkedCount is how many nodes the export reports at debug level.
const mostLinkedCount = 5

// exportGraph writes doc into the SQLite database at path under name.
func exportGraph[S any](logger *log.Logger, path, name string, doc *graph.Document[S]) error {
	db, err := storage.OpenDB(config.ExpandPath(path))
	if err != nil {
		return err
	}

	if err := storage.WriteGraph(db, name, doc); err != nil {
		db.Close()
		return fmt.Errorf("exporting to %s: %w", path, err)
	}

	top, err := db.TopByInDegree(name, mostLinkedCount)
	if err != nil {
		db.Close()
		return err
	}
	logger.Debug("exported graph", "db", path, "graph", name, "most_linked", top)

	return db.Close()
}
