package search

import (
	"math"
	"sort"
	"time"

	domsearch "github.com/pagetrail/pagetrail/internal/domain/search"
	"github.com/pagetrail/pagetrail/internal/domain/strategy"
)

// scoredCandidate carries per-candidate ranking signals between the
// scorer and enrichment.
type scoredCandidate struct {
	cand domsearch.Candidate

	relevance     float64
	temporal      float64
	categoryMatch float64
}

// neutralScore is the prior used when a signal carries no information:
// missing timestamps, categories outside the hint set, and the frequency
// baseline (no cross-result frequency tracking in this version).
const neutralScore = 0.5

// rerank computes the weighted multi-factor relevance score and sorts
// descending. Weights are applied verbatim; if they do not sum to 1 the
// score is simply not bounded to [0,1], which is accepted. Ties keep the
// original retrieval order.
func rerank(candidates []domsearch.Candidate, st strategy.Strategy, now time.Time) []scoredCandidate {
	scored := make([]scoredCandidate, len(candidates))
	for i, c := range candidates {
		temporal := temporalScore(c.Page.Timestamp, now)
		category := neutralScore
		if matchesHint(c.Page.Category, st.CategoryHints) {
			category = 1.0
		}

		w := st.Weights
		relevance := w.Semantic*c.Similarity +
			w.Temporal*temporal +
			w.Category*category +
			w.Frequency*neutralScore

		scored[i] = scoredCandidate{
			cand:          c,
			relevance:     relevance,
			temporal:      temporal,
			categoryMatch: category,
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].relevance > scored[j].relevance
	})
	return scored
}

// passthrough is the semantic path: similarity is the ranking key and the
// other signals sit at their neutral prior. The index already returns
// hits in descending similarity order, so no re-sort happens here.
func passthrough(candidates []domsearch.Candidate) []scoredCandidate {
	scored := make([]scoredCandidate, len(candidates))
	for i, c := range candidates {
		scored[i] = scoredCandidate{
			cand:          c,
			relevance:     c.Similarity,
			temporal:      neutralScore,
			categoryMatch: neutralScore,
		}
	}
	return scored
}

// temporalScore decays exponentially with a 7-day half-life. Age is
// clamped to [0, 100] days so corrupted timestamps cannot underflow the
// exponent; a zero timestamp scores the neutral prior.
func temporalScore(timestamp int64, now time.Time) float64 {
	if timestamp <= 0 {
		return neutralScore
	}
	ageDays := float64(now.Unix()-timestamp) / 86400
	ageDays = math.Min(math.Max(ageDays, 0), 100)
	return math.Exp(-ageDays / 7)
}

func matchesHint(category string, hints []string) bool {
	for _, h := range hints {
		if category == h {
			return true
		}
	}
	return false
}
