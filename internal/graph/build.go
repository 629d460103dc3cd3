package graph

import (
	"github.com/aegonwolf/substack/internal/record"
)

// Graph is the output of Build: identity-resolved nodes in first-seen order
// and the links between them.
type Graph[S any] struct {
	Nodes []*Node[S]
	Links []Link
}

// statIndex joins statistics rows to canonical keys.
type statIndex[S any] struct {
	byKey    map[string]S
	keyOf    map[string]string // raw stat key -> canonical key
	rawOfKey map[string]string // canonical key -> raw stat key, last row wins
}

func newStatIndex[S any](s Strategy[S], stats []S) statIndex[S] {
	idx := statIndex[S]{
		byKey:    make(map[string]S, len(stats)),
		keyOf:    make(map[string]string, len(stats)),
		rawOfKey: make(map[string]string, len(stats)),
	}
	for _, st := range stats {
		raw := s.StatKey(st)
		if raw == "" {
			continue
		}
		key := s.Resolve(raw)
		if key == "" {
			continue
		}
		idx.byKey[key] = st
		idx.keyOf[raw] = key
		idx.rawOfKey[key] = raw
	}
	return idx
}

// Build resolves every entity named by the relations or the statistics
// table into exactly one node, and emits one link per relation pair whose
// endpoints both resolved to nodes. Pairs with an unresolvable endpoint are
// dropped without error.
func Build[S any](s Strategy[S], relations []record.Relation, stats []S) *Graph[S] {
	idx := newStatIndex(s, stats)
	g := &Graph[S]{}
	byKey := make(map[string]*Node[S])

	add := func(raw string) *Node[S] {
		key := resolve(s, idx, raw)
		if key == "" {
			return nil
		}
		if n, ok := byKey[key]; ok {
			return n
		}

		rep := raw
		if statRaw, ok := idx.rawOfKey[key]; ok {
			rep = statRaw
		}
		n := &Node[S]{ID: s.NodeID(key, rep), Key: key}
		if st, ok := idx.byKey[key]; ok {
			n.Stat = st
			n.HasStat = true
		}
		byKey[key] = n
		g.Nodes = append(g.Nodes, n)
		return n
	}

	for _, rel := range relations {
		if src := add(rel.Source); src != nil {
			src.Recommender = true
		}
		for _, t := range rel.Targets {
			add(t.Key)
		}
	}
	for _, st := range stats {
		add(s.StatKey(st))
	}

	for _, rel := range relations {
		src := byKey[resolve(s, idx, rel.Source)]
		for _, t := range rel.Targets {
			dst := byKey[resolve(s, idx, t.Key)]
			if src == nil || dst == nil {
				continue
			}
			g.Links = append(g.Links, Link{Source: src.ID, Target: dst.ID, Value: t.Strength()})
		}
	}

	for _, n := range g.Nodes {
		s.Describe(n)
	}
	return g
}

func resolve[S any](s Strategy[S], idx statIndex[S], raw string) string {
	if raw == "" {
		return ""
	}
	if key, ok := idx.keyOf[raw]; ok {
		return key
	}
	return s.Resolve(raw)
}
