// Package search is the search execution and ranking engine: retrieval,
// filter cascade, weighted reranking, enrichment, grouping, and follow-up
// suggestions, sequenced into one pipeline per request.
package search

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/pagetrail/pagetrail/internal/domain"
	domsearch "github.com/pagetrail/pagetrail/internal/domain/search"
	"github.com/pagetrail/pagetrail/internal/domain/strategy"
	"github.com/pagetrail/pagetrail/internal/metrics"
)

// Service executes one search strategy end to end.
type Service struct {
	index  VectorIndex
	pages  PageReader
	embed  Embedder
	logger *zap.Logger
	now    func() time.Time
}

// New creates the search engine.
func New(index VectorIndex, pages PageReader, embed Embedder, logger *zap.Logger) *Service {
	return &Service{
		index:  index,
		pages:  pages,
		embed:  embed,
		logger: logger,
		now:    time.Now,
	}
}

// WithClock overrides the time source. Test seam.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Execute runs the full pipeline:
// retrieve → filter → [rerank] → enrich → group → truncate → suggest.
// The index is called exactly once, for min(2k, index size) candidates;
// filters run after retrieval, so a heavily filtered response may carry
// fewer than k results. Zero surviving results is success, not failure.
func (s *Service) Execute(ctx context.Context, strat strategy.Strategy) (domsearch.Response, error) {
	start := s.now()
	st := strat.Normalized()

	emb, err := s.embed.Embed(ctx, st.QueryText)
	if err != nil {
		return domsearch.Response{}, fmt.Errorf("vectorize query: %w", err)
	}

	size, err := s.index.Size(ctx)
	if err != nil {
		return domsearch.Response{}, fmt.Errorf("index size: %w", err)
	}

	// Retrieve extra headroom for the filter cascade.
	n := 2 * st.Limit
	if int64(n) > size {
		n = int(size)
	}

	var hits []domsearch.Hit
	if n > 0 {
		hits, err = s.index.Search(ctx, emb.Embedding, n)
		if err != nil {
			return domsearch.Response{}, fmt.Errorf("search knn: %w", err)
		}
	}

	now := s.now()

	candidates, err := s.collect(ctx, hits)
	if err != nil {
		return domsearch.Response{}, err
	}

	filtered, rejected, capped := filterCandidates(candidates, st, now)
	if capped {
		metrics.SimilarityCapTotal.Inc()
		s.logger.Warn("Similarity threshold capped",
			zap.Float64("requested", st.MinSimilarity),
			zap.Float64("effective", maxSimilarityThreshold))
	}
	if rejected.Total() > 0 {
		metrics.FilterRejectionsTotal.WithLabelValues("category").Add(float64(rejected.Category))
		metrics.FilterRejectionsTotal.WithLabelValues("temporal").Add(float64(rejected.Temporal))
		metrics.FilterRejectionsTotal.WithLabelValues("similarity").Add(float64(rejected.Similarity))
		s.logger.Debug("Filter cascade rejected candidates",
			zap.Int("category", rejected.Category),
			zap.Int("temporal", rejected.Temporal),
			zap.Int("similarity", rejected.Similarity))
	}

	var ranked []scoredCandidate
	if st.Kind.Reranks() {
		ranked = rerank(filtered, st, now)
	} else {
		ranked = passthrough(filtered)
	}

	enriched := enrich(ranked, st, now)
	grouped := groupByURL(enriched)

	results := grouped
	if len(results) > st.Limit {
		results = results[:st.Limit]
	}

	resp := domsearch.Response{
		Results:            results,
		QueryUnderstanding: st.Summary(),
		StrategySummary:    st.Reasoning,
		TotalFound:         len(grouped),
		Elapsed:            s.now().Sub(start),
		Suggestions:        suggest(grouped),
	}

	metrics.SearchDuration.WithLabelValues(string(st.Kind)).Observe(resp.Elapsed.Seconds())
	metrics.SearchResultsReturned.WithLabelValues(string(st.Kind)).Observe(float64(len(results)))

	return resp, nil
}

// collect joins index hits with page metadata, preserving hit order.
// A page added or evicted between retrieval and lookup shows up as a
// missing ID; that hit is skipped, not failed.
func (s *Service) collect(ctx context.Context, hits []domsearch.Hit) ([]domsearch.Candidate, error) {
	candidates := make([]domsearch.Candidate, 0, len(hits))
	for _, hit := range hits {
		page, err := s.pages.Get(ctx, hit.ID)
		if err != nil {
			if errors.Is(err, domain.ErrPageNotFound) {
				s.logger.Debug("Skipping hit without metadata", zap.String("id", hit.ID))
				continue
			}
			return nil, fmt.Errorf("load page %q: %w", hit.ID, err)
		}
		candidates = append(candidates, domsearch.Candidate{
			ID:         hit.ID,
			Similarity: hit.Similarity,
			Page:       page,
		})
	}
	return candidates, nil
}
