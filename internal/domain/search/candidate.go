// Package search holds the data model of one search execution: index hits,
// filterable candidates, enriched results, and the terminal response.
package search

import "github.com/pagetrail/pagetrail/internal/domain"

// Hit is a single vector index match before metadata lookup.
type Hit struct {
	ID         string
	Similarity float64 // cosine similarity in [-1, 1]
}

// Candidate is an index hit joined with its page metadata. Immutable; the
// index-returned order (higher similarity first) is preserved through filtering.
type Candidate struct {
	ID         string
	Similarity float64
	Page       domain.Page
}

// RejectionCounts tracks how many candidates each filter stage rejected.
// A candidate is counted once, under the first filter that failed.
type RejectionCounts struct {
	Category   int
	Temporal   int
	Similarity int
}

// Total is the number of rejected candidates across all filters.
func (r RejectionCounts) Total() int {
	return r.Category + r.Temporal + r.Similarity
}
