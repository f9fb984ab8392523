package search

import "time"

// Response is the terminal artifact of one pipeline execution.
type Response struct {
	// Results holds at most the requested limit of ScoredResults, one per
	// distinct URL, ordered by descending relevance.
	Results []ScoredResult

	QueryUnderstanding string
	StrategySummary    string

	// TotalFound is the post-grouping, pre-truncation result count, not the
	// raw retrieval count.
	TotalFound int

	Elapsed     time.Duration
	Suggestions []string
}
