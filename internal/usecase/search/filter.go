package search

import (
	"time"

	domsearch "github.com/pagetrail/pagetrail/internal/domain/search"
	"github.com/pagetrail/pagetrail/internal/domain/strategy"
)

// maxSimilarityThreshold caps the caller-requested minimum similarity.
// Untuned upstream prompts routinely ask for 0.7+, which would filter
// out nearly every real match.
const maxSimilarityThreshold = 0.3

// filterCandidates applies the category, temporal, and similarity filters
// in that order, short-circuiting per candidate at the first failure so
// each rejection is counted under exactly one reason. Input order is
// preserved; iteration stops once limit candidates are accepted.
//
// capped reports whether the requested similarity threshold exceeded the
// cap and was lowered. Capping is policy, never an error.
func filterCandidates(
	candidates []domsearch.Candidate, st strategy.Strategy, now time.Time,
) (accepted []domsearch.Candidate, rejected domsearch.RejectionCounts, capped bool) {
	minSim := st.MinSimilarity
	if minSim > maxSimilarityThreshold {
		minSim = maxSimilarityThreshold
		capped = true
	}

	accepted = make([]domsearch.Candidate, 0, len(candidates))
	for _, c := range candidates {
		if st.CategoryFilter != "" && c.Page.Category != st.CategoryFilter {
			rejected.Category++
			continue
		}

		// A zero timestamp means "no age": exempt from the window.
		if st.TimeWindowDays > 0 && c.Page.Timestamp > 0 {
			ageDays := float64(now.Unix()-c.Page.Timestamp) / 86400
			if ageDays > float64(st.TimeWindowDays) {
				rejected.Temporal++
				continue
			}
		}

		if c.Similarity < minSim {
			rejected.Similarity++
			continue
		}

		accepted = append(accepted, c)
		if len(accepted) >= st.Limit {
			break
		}
	}

	return accepted, rejected, capped
}
