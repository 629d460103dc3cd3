package graph

import "fmt"

// Degrees maps node ids to their accumulated metrics. It is created by
// Aggregate and handed to Classify; nothing else holds on to it.
type Degrees map[string]*Metrics

// Aggregate computes in/out degree and weight for every node in one pass
// over links. The result depends only on the multiset of links.
//
// Build never emits a link to an unknown node, so an unknown endpoint here
// is a programming error and panics.
func Aggregate[S any](nodes []*Node[S], links []Link) Degrees {
	deg := make(Degrees, len(nodes))
	for _, n := range nodes {
		deg[n.ID] = &Metrics{}
	}

	for _, l := range links {
		src, ok := deg[l.Source]
		if !ok {
			panic(fmt.Sprintf("graph: link source %q is not a node", l.Source))
		}
		dst, ok := deg[l.Target]
		if !ok {
			panic(fmt.Sprintf("graph: link target %q is not a node", l.Target))
		}
		src.OutDegree++
		src.OutWeight += l.Value
		dst.InDegree++
		dst.InWeight += l.Value
	}

	return deg
}

// Classify copies each node's metrics out of deg and applies the strategy's
// group and visual rules.
func Classify[S any](s Strategy[S], nodes []*Node[S], deg Degrees) {
	for _, n := range nodes {
		m, ok := deg[n.ID]
		if !ok {
			panic(fmt.Sprintf("graph: node %q has no aggregated metrics", n.ID))
		}
		n.Metrics = *m
		n.Group = s.Group(n)
		n.Visual = Visual{
			Size:  s.Size(n),
			Color: s.Color(n),
			Label: s.Label(n),
		}
	}
}
