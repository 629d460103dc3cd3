// Package record defines the raw input rows consumed by the graph pipeline.
package record

// Relation is one source entity and the entities it recommends, in input order.
type Relation struct {
	Source  string   `json:"source"`
	Targets []Target `json:"targets"`
}

// Target is one recommended entity. Weight is only meaningful when HasWeight is set.
type Target struct {
	Key       string  `json:"key"`
	Weight    float64 `json:"weight,omitempty"`
	HasWeight bool    `json:"-"`
}

// Strength returns the explicit weight, or 1 when the input supplied none.
func (t Target) Strength() float64 {
	if t.HasWeight {
		return t.Weight
	}
	return 1
}

// PublicationStat is one row of subscriber_counts.json.
type PublicationStat struct {
	PublicationURL  string `json:"publication_url"`
	SubscriberCount int64  `json:"subscriber_count"`
}

// CategoryStat is one row of categories.json.
type CategoryStat struct {
	Category          string  `json:"category"`
	MeanSubscribers   float64 `json:"mean_subscriber_count"`
	MedianSubscribers float64 `json:"median_subscriber_count"`
	MaxSubscribers    float64 `json:"max_subscriber_count"`
	Outgoing          float64 `json:"outgoing"`
	Incoming          float64 `json:"incoming"`
}

// DeclaredTotal returns the number of targets listed across all relations,
// regardless of whether they end up matched to nodes.
func DeclaredTotal(relations []Relation) int {
	total := 0
	for _, r := range relations {
		total += len(r.Targets)
	}
	return total
}
