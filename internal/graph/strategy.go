package graph

// Strategy supplies the dataset-specific rules of the pipeline.
//
// Implementations must be pure: every method depends only on its arguments.
type Strategy[S any] interface {
	// Resolve maps a raw entity string to its canonical key. It must be
	// total; an empty key marks an entity that cannot become a node.
	Resolve(raw string) string

	// NodeID picks the emitted id for a key. raw is the representative
	// surface form: the statistics row's key when one exists, otherwise the
	// first relation string seen for the key.
	NodeID(key, raw string) string

	// StatKey returns the raw entity string of a statistics row.
	StatKey(stat S) string

	// Describe fills Name, Category and Magnitude from the node's identity
	// and joined statistics.
	Describe(n *Node[S])

	// Group, Size, Color and Label classify a node once Metrics are set.
	Group(n *Node[S]) Group
	Size(n *Node[S]) float64
	Color(n *Node[S]) string
	Label(n *Node[S]) string

	// Flagged is the predicate counted into Metadata.Flagged.
	Flagged(n *Node[S]) bool
}
