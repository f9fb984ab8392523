package search

import (
	"sort"

	domsearch "github.com/pagetrail/pagetrail/internal/domain/search"
)

// groupByURL collapses results sharing a URL to the single entry with the
// highest relevance score. The winner does not depend on duplicate order:
// replacement happens only on a strictly higher score, so equal-score
// duplicates keep the first seen. Output is re-sorted descending by
// relevance with group insertion order breaking ties.
func groupByURL(results []domsearch.ScoredResult) []domsearch.ScoredResult {
	best := make(map[string]int, len(results))
	grouped := make([]domsearch.ScoredResult, 0, len(results))

	for _, r := range results {
		i, seen := best[r.URL]
		if !seen {
			best[r.URL] = len(grouped)
			grouped = append(grouped, r)
			continue
		}
		if r.RelevanceScore > grouped[i].RelevanceScore {
			grouped[i] = r
		}
	}

	sort.SliceStable(grouped, func(i, j int) bool {
		return grouped[i].RelevanceScore > grouped[j].RelevanceScore
	})
	return grouped
}
