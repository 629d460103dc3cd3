// Package input reads the relation and statistics tables.
//
// Inputs are scraped data and are treated leniently: a missing file yields
// an empty table, rows lacking their key are skipped, and a document that
// is not valid JSON gets one repair attempt before the load fails.
package input

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/kaptinlin/jsonrepair"
	"github.com/tidwall/gjson"
)

// MaxJSONLLineCapacity is the maximum buffer size for reading JSONL lines (1MB per line).
const MaxJSONLLineCapacity = 1024 * 1024

// ErrMalformed is returned when a document cannot be parsed even after repair.
var ErrMalformed = errors.New("malformed JSON document")

// Loader reads input tables and reports what it skipped.
type Loader struct {
	log *log.Logger
}

// NewLoader returns a Loader that logs to logger. A nil logger discards output.
func NewLoader(logger *log.Logger) *Loader {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Loader{log: logger}
}

// readDocument reads and parses a JSON file. found is false when the file
// does not exist.
func (l *Loader) readDocument(path string) (doc gjson.Result, found bool, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			l.log.Warn("input file not found, using empty default", "path", path)
			return gjson.Result{}, false, nil
		}
		return gjson.Result{}, false, fmt.Errorf("reading %s: %w", path, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		l.log.Warn("input file is empty, using empty default", "path", path)
		return gjson.Result{}, false, nil
	}

	if !gjson.ValidBytes(data) {
		repaired, rerr := jsonrepair.JSONRepair(string(data))
		if rerr != nil || !gjson.Valid(repaired) {
			return gjson.Result{}, true, fmt.Errorf("parsing %s: %w", path, ErrMalformed)
		}
		l.log.Warn("repaired malformed JSON input", "path", path)
		return gjson.Parse(repaired), true, nil
	}

	return gjson.ParseBytes(data), true, nil
}

// readRows returns the row objects of a statistics table: the elements of a
// JSON array, or one object per line for .jsonl files. Lines of a JSONL file
// that do not parse are skipped and counted.
func (l *Loader) readRows(path string) (rows []gjson.Result, skipped int, err error) {
	if !strings.HasSuffix(path, ".jsonl") {
		doc, found, err := l.readDocument(path)
		if err != nil || !found {
			return nil, 0, err
		}
		if !doc.IsArray() {
			return nil, 0, fmt.Errorf("parsing %s: %w: expected an array of rows", path, ErrMalformed)
		}
		for _, row := range doc.Array() {
			if !row.IsObject() {
				skipped++
				continue
			}
			rows = append(rows, row)
		}
		return rows, skipped, nil
	}

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			l.log.Warn("input file not found, using empty default", "path", path)
			return nil, 0, nil
		}
		return nil, 0, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	buf := make([]byte, MaxJSONLLineCapacity)
	scanner.Buffer(buf, MaxJSONLLineCapacity)

	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		if !gjson.ValidBytes(line) {
			skipped++
			continue
		}
		row := gjson.ParseBytes(line)
		if !row.IsObject() {
			skipped++
			continue
		}
		rows = append(rows, row)
	}
	if err := scanner.Err(); err != nil {
		return nil, 0, fmt.Errorf("reading %s: %w", path, err)
	}

	return rows, skipped, nil
}

func (l *Loader) report(what, path string, loaded, skipped int) {
	if skipped > 0 {
		l.log.Debug("skipped malformed records", "table", what, "path", path, "skipped", skipped)
	}
	l.log.Info("loaded "+what, "path", path, "records", loaded)
}
