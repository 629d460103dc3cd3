// Package graph turns raw relation and statistics rows into an enriched,
// deterministic node/link document for force-directed rendering.
//
// The pipeline runs in four stages, each a plain function over in-memory
// data: Build, Aggregate, Classify and Assemble. Everything specific to a
// dataset (key resolution, display names, thresholds, colours) comes from a
// Strategy, so publication and category graphs share one implementation.
package graph

// Group is the visual/structural class assigned to a node.
type Group string

// Metrics holds the degree statistics computed from the link list.
type Metrics struct {
	InDegree  int
	OutDegree int
	InWeight  float64
	OutWeight float64
}

// Total returns in + out degree.
func (m Metrics) Total() int {
	return m.InDegree + m.OutDegree
}

// Visual holds the precomputed rendering attributes of a node.
type Visual struct {
	Size  float64
	Color string
	Label string
}

// Node is one entity of the graph. S is the dataset's statistics row type.
type Node[S any] struct {
	ID  string // emitted id, unique within a graph
	Key string // canonical key the node was deduplicated on

	Name     string
	Category string

	// Stat is the statistics row joined to this node; zero when HasStat is false.
	Stat    S
	HasStat bool

	// Recommender is set when the node appears as a relation source.
	Recommender bool

	// Magnitude orders nodes and drives size; set by Strategy.Describe.
	Magnitude float64

	Metrics Metrics
	Visual  Visual
	Group   Group
}

// Link is a directed, weighted edge between two node ids.
type Link struct {
	Source string  `json:"source"`
	Target string  `json:"target"`
	Value  float64 `json:"value"`
}

// Metadata summarises an assembled document.
type Metadata struct {
	TotalNodes int
	TotalLinks int
	// Flagged counts nodes matching Strategy.Flagged.
	Flagged int
	// WithMagnitude counts nodes whose magnitude is positive.
	WithMagnitude int
	// TotalDeclared is the number of relation targets in the input,
	// matched or not.
	TotalDeclared int
}

// Document is the assembled output of the pipeline.
type Document[S any] struct {
	Nodes    []*Node[S]
	Links    []Link
	Metadata Metadata
}
