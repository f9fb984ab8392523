// Package decision turns a user query plus browsing context into a
// search strategy, falling back to plain semantic search whenever the
// reasoning provider is unavailable.
package decision

import (
	"context"

	"go.uber.org/zap"

	"github.com/pagetrail/pagetrail/internal/domain/strategy"
)

// maxFallbackReason keeps provider error text in the strategy reasoning short.
const maxFallbackReason = 50

// Service wraps a strategy provider with fail-open semantics: a failed
// or absent provider degrades to a low-confidence semantic strategy, it
// never fails the search.
type Service struct {
	provider Provider
	logger   *zap.Logger
}

// New creates the decision service. A nil provider is valid and means
// every query gets the fallback strategy.
func New(provider Provider, logger *zap.Logger) *Service {
	return &Service{provider: provider, logger: logger}
}

// Decide plans the strategy for one query. The returned strategy always
// carries the caller's query text verbatim: upstream query expansion
// dilutes retrieval precision, so whatever the provider put in QueryText
// is overwritten.
func (s *Service) Decide(ctx context.Context, in Input) strategy.Strategy {
	if s.provider == nil {
		return strategy.Fallback(in.Query, "decision provider disabled")
	}

	st, err := s.provider.Decide(ctx, in)
	if err != nil {
		s.logger.Warn("Decision provider failed, using fallback strategy",
			zap.String("query", in.Query), zap.Error(err))
		return strategy.Fallback(in.Query, truncate(err.Error(), maxFallbackReason))
	}

	st.QueryText = in.Query
	return st.Normalized()
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
