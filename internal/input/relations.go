package input

import (
	"github.com/aegonwolf/substack/internal/record"
	"github.com/tidwall/gjson"
)

// PublicationRelations reads recommendations.json: an object mapping a
// recommender URL to the list of URLs it recommends. The scraper wraps the
// object in a one-element array; a bare object is accepted too.
//
// Relations keep document order. A source repeated in the object takes its
// last value at its first position. Non-string targets are skipped; a source
// whose value is not a list is kept with no targets.
func (l *Loader) PublicationRelations(path string) ([]record.Relation, error) {
	doc, found, err := l.readDocument(path)
	if err != nil || !found {
		return nil, err
	}
	if doc.IsArray() {
		doc = doc.Get("0")
	}

	var relations relationTable
	skipped := 0
	forEachEntry(doc, &skipped, func(source string, value gjson.Result) {
		rel := record.Relation{Source: source}
		if !value.IsArray() {
			skipped++
			relations.put(rel)
			return
		}
		for _, t := range value.Array() {
			if t.Type != gjson.String || t.String() == "" {
				skipped++
				continue
			}
			rel.Targets = append(rel.Targets, record.Target{Key: t.String()})
		}
		relations.put(rel)
	})

	l.report("publication relations", path, len(relations.rows), skipped)
	return relations.rows, nil
}

// CategoryRelations reads category_recommendations.json: an object mapping
// a category to an object of target category -> numeric weight.
//
// Relations keep document order, and repeated sources are handled as for
// PublicationRelations. Non-numeric weights are skipped; a source whose
// value is not an object is kept with no targets.
func (l *Loader) CategoryRelations(path string) ([]record.Relation, error) {
	doc, found, err := l.readDocument(path)
	if err != nil || !found {
		return nil, err
	}

	var relations relationTable
	skipped := 0
	forEachEntry(doc, &skipped, func(source string, value gjson.Result) {
		rel := record.Relation{Source: source}
		if !value.IsObject() {
			skipped++
			relations.put(rel)
			return
		}
		value.ForEach(func(key, weight gjson.Result) bool {
			if weight.Type != gjson.Number || key.String() == "" {
				skipped++
				return true
			}
			rel.Targets = append(rel.Targets, record.Target{
				Key:       key.String(),
				Weight:    weight.Float(),
				HasWeight: true,
			})
			return true
		})
		relations.put(rel)
	})

	l.report("category relations", path, len(relations.rows), skipped)
	return relations.rows, nil
}

// forEachEntry walks the members of a JSON object in document order,
// skipping members with an empty key. Anything but an object is counted as
// one skipped record.
func forEachEntry(doc gjson.Result, skipped *int, fn func(key string, value gjson.Result)) {
	if !doc.IsObject() {
		if doc.Exists() {
			*skipped++
		}
		return
	}
	doc.ForEach(func(key, value gjson.Result) bool {
		if key.String() == "" {
			*skipped++
			return true
		}
		fn(key.String(), value)
		return true
	})
}

// relationTable collects relations keyed by source. A later relation for a
// known source replaces the earlier one in place.
type relationTable struct {
	rows  []record.Relation
	index map[string]int
}

func (t *relationTable) put(rel record.Relation) {
	if i, ok := t.index[rel.Source]; ok {
		t.rows[i] = rel
		return
	}
	if t.index == nil {
		t.index = make(map[string]int)
	}
	t.index[rel.Source] = len(t.rows)
	t.rows = append(t.rows, rel)
}
