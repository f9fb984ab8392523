package search

// ScoredResult is one enriched search hit. Immutable once built; the ordering
// key is RelevanceScore, which equals raw similarity when reranking was skipped.
type ScoredResult struct {
	URL      string
	Title    string
	Snippet  string
	Category string

	Similarity        float64
	RelevanceScore    float64
	TemporalRelevance float64
	CategoryMatch     float64

	Explanation string
	Highlights  []string
}
