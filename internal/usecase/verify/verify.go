// Package verify is the optional answer-verification post-filter: an
// external reasoning call that can shrink or empty the result set when
// the retrieved pages do not actually answer a factual question. The
// whole package is fail-open; a broken verifier never blocks a response.
package verify

import (
	"context"
	"strings"

	"go.uber.org/zap"

	domsearch "github.com/pagetrail/pagetrail/internal/domain/search"
)

// topN is how many leading results the verifier examines.
const topN = 5

// Verdict is the verifier's judgement over the top results.
type Verdict struct {
	HasAnswer  bool
	Confidence float64
	Reasoning  string
	// RelevantIndices are zero-based positions (within the examined top
	// results) that actually answer the question.
	RelevantIndices []int
}

// Verifier checks whether results answer the query.
type Verifier interface {
	Verify(ctx context.Context, query string, results []domsearch.ScoredResult) (Verdict, error)
}

// Service applies answer verification to a search response.
type Service struct {
	verifier Verifier
	logger   *zap.Logger
}

// New creates the verification service. A nil verifier disables the
// step entirely.
func New(verifier Verifier, logger *zap.Logger) *Service {
	return &Service{verifier: verifier, logger: logger}
}

// Apply runs verification and mutates the response in place. It only
// engages for specific factual questions with non-empty results; other
// queries pass through untouched. On verifier failure the response is
// kept as-is (fail-open).
//
// When the verdict is "no answer," the results are emptied and the
// suggestions replaced with guidance; when a relevant subset is named,
// only those of the examined top results survive.
func (s *Service) Apply(ctx context.Context, query string, resp *domsearch.Response) {
	if s.verifier == nil || len(resp.Results) == 0 || !IsSpecificQuestion(query) {
		return
	}

	examined := resp.Results
	if len(examined) > topN {
		examined = examined[:topN]
	}

	verdict, err := s.verifier.Verify(ctx, query, examined)
	if err != nil {
		s.logger.Warn("Answer verification failed, keeping results",
			zap.String("query", query), zap.Error(err))
		return
	}

	if !verdict.HasAnswer {
		s.logger.Info("Results do not answer the question",
			zap.String("query", query),
			zap.Float64("confidence", verdict.Confidence),
			zap.String("reasoning", verdict.Reasoning))
		resp.Results = nil
		resp.TotalFound = 0
		resp.Suggestions = noAnswerSuggestions()
		return
	}

	if len(verdict.RelevantIndices) == 0 {
		return
	}

	kept := make([]domsearch.ScoredResult, 0, len(verdict.RelevantIndices))
	for _, i := range verdict.RelevantIndices {
		if i >= 0 && i < len(examined) {
			kept = append(kept, examined[i])
		}
	}
	if len(kept) == 0 {
		return
	}
	if len(kept) < len(resp.Results) {
		s.logger.Debug("Verification narrowed results",
			zap.Int("before", len(resp.Results)), zap.Int("after", len(kept)))
	}
	resp.Results = kept
	resp.TotalFound = len(kept)
}

// IsSpecificQuestion reports whether the query is a factual question
// worth verifying: it starts with an interrogative word or contains a
// question mark.
func IsSpecificQuestion(query string) bool {
	if strings.Contains(query, "?") {
		return true
	}
	lower := strings.ToLower(query)
	for _, w := range []string{"who", "what", "when", "where", "why", "how", "which", "whose"} {
		if strings.HasPrefix(lower, w) {
			return true
		}
	}
	return false
}

func noAnswerSuggestions() []string {
	return []string{
		"No results contain the answer to your question",
		"Try rephrasing your query",
		"The information might not be in your browsing history",
	}
}
