package evidence

import (
	"time"

	"github.com/google/uuid"
)

// Path identifies where the evidence backing a context came from.
type Path string

const (
	// PathDirect means the subject has first-party reviews.
	PathDirect Path = "direct_reviews"
	// PathAnalogous means evidence was borrowed from similar subjects via vector search.
	PathAnalogous Path = "similar_products"
	// PathSparse means no reviews were available anywhere; descriptive fields only.
	PathSparse Path = "generic"
)

// Item is a single piece of review evidence. Items are read-only inputs to the
// ranker; Similarity is only set when the item was sourced from a different
// product through nearest-neighbor search.
type Item struct {
	Id         uuid.UUID `json:"id"`
	Title      string    `json:"title"`
	Body       string    `json:"body"`
	Stars      int       `json:"stars"`
	CreatedAt  time.Time `json:"created_at"`
	Similarity float64   `json:"similarity,omitempty"`
}

// Weights is one row of the per-path scoring table. Each row sums to 1.0.
type Weights struct {
	Recency    float64
	Quality    float64
	Similarity float64
	Diversity  float64
}

var weightsByPath = map[Path]Weights{
	PathDirect:    {Recency: 0.50, Quality: 0.40, Similarity: 0.00, Diversity: 0.10},
	PathAnalogous: {Recency: 0.35, Quality: 0.20, Similarity: 0.40, Diversity: 0.05},
}

// WeightsFor returns the scoring weights for a path. The sparse path has no
// evidence to rank, so it gets the zero value.
func WeightsFor(path Path) Weights {
	return weightsByPath[path]
}

// ChoosePath applies the priority order from the ranking engine contract:
// first-party evidence wins, then analogous evidence above the similarity
// threshold, then the sparse fallback.
func ChoosePath(directCount, analogousCount int) Path {
	if directCount > 0 {
		return PathDirect
	}
	if analogousCount > 0 {
		return PathAnalogous
	}
	return PathSparse
}
