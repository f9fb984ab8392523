package pagetrail

import "time"

// Page is one chunk of a visited page to index.
type Page struct {
	URL      string
	Title    string
	Chunk    string
	Category string
	// Timestamp is the visit time in unix seconds. Zero means unknown
	// and disables temporal scoring for this chunk.
	Timestamp int64
	Extra     map[string]string
}

// SearchResult is a single search hit, one per distinct URL.
type SearchResult struct {
	URL      string
	Title    string
	Snippet  string
	Category string

	Similarity     float64
	RelevanceScore float64

	Explanation string
	Highlights  []string
}

// SearchResponse is the outcome of one search.
type SearchResponse struct {
	Results            []SearchResult
	QueryUnderstanding string
	Strategy           string
	TotalFound         int
	Elapsed            time.Duration
	Suggestions        []string
}

// AddResult reports the outcome of a page ingestion batch.
type AddResult struct {
	Added      int
	TokensUsed int
	IDs        []string
}

// Stats aggregates user memory and index counters.
type Stats struct {
	TotalSearches       int
	FrequentSites       int
	CategoryPreferences map[string]float64
	IndexVectors        int64
}

// HealthStatus represents the aggregated system health.
type HealthStatus struct {
	Status  string            // "ok" or "degraded"
	Checks  map[string]string // component → "ok"/"error"
	Vectors int64
}
