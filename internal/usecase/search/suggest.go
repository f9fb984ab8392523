package search

import (
	domsearch "github.com/pagetrail/pagetrail/internal/domain/search"
)

const (
	maxSuggestions     = 3
	suggestionTopN     = 10
	temporalSpreadHint = 0.3
)

// emptySuggestions is returned verbatim when a search found nothing.
func emptySuggestions() []string {
	return []string{"Try different keywords", "Check your spelling", "Browse by category"}
}

// suggest derives follow-up refinements from the grouped result list:
// one "Filter by <category>" per distinct category among the top 10
// results (first-seen order, "other" excluded), plus "Filter by date"
// when the temporal relevance spread of those results exceeds 0.3.
// At most maxSuggestions entries, category suggestions first.
func suggest(results []domsearch.ScoredResult) []string {
	if len(results) == 0 {
		return emptySuggestions()
	}

	top := results
	if len(top) > suggestionTopN {
		top = top[:suggestionTopN]
	}

	var suggestions []string
	seen := make(map[string]struct{}, len(top))
	for _, r := range top {
		if r.Category == "other" {
			continue
		}
		if _, ok := seen[r.Category]; ok {
			continue
		}
		seen[r.Category] = struct{}{}
		suggestions = append(suggestions, "Filter by "+r.Category)
	}

	minTemporal, maxTemporal := top[0].TemporalRelevance, top[0].TemporalRelevance
	for _, r := range top[1:] {
		if r.TemporalRelevance < minTemporal {
			minTemporal = r.TemporalRelevance
		}
		if r.TemporalRelevance > maxTemporal {
			maxTemporal = r.TemporalRelevance
		}
	}
	if maxTemporal-minTemporal > temporalSpreadHint {
		suggestions = append(suggestions, "Filter by date")
	}

	if len(suggestions) > maxSuggestions {
		suggestions = suggestions[:maxSuggestions]
	}
	return suggestions
}
