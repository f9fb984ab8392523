// Package orchestrator sequences one search end to end: load user
// context, plan the strategy, run the engine, verify the answer, and
// record the search back into memory.
package orchestrator

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	domsearch "github.com/pagetrail/pagetrail/internal/domain/search"
	"github.com/pagetrail/pagetrail/internal/domain/strategy"
	"github.com/pagetrail/pagetrail/internal/usecase/decision"
	usermem "github.com/pagetrail/pagetrail/internal/usecase/memory"
)

// Service is the top-level search coordinator.
type Service struct {
	decider  Decider
	engine   Engine
	verifier Verifier
	memory   UserMemory
	index    IndexSizer
	logger   *zap.Logger
}

func New(
	decider Decider,
	engine Engine,
	verifier Verifier,
	memory UserMemory,
	index IndexSizer,
	logger *zap.Logger,
) *Service {
	return &Service{
		decider:  decider,
		engine:   engine,
		verifier: verifier,
		memory:   memory,
		index:    index,
		logger:   logger,
	}
}

// Search runs the cognitive pipeline for one query. Memory reads and
// writes are advisory: a broken memory store degrades the context but
// never fails the search. Only an engine fault fails the request.
func (s *Service) Search(ctx context.Context, query, category string) (domsearch.Response, error) {
	in := decision.Input{Query: query, Category: category}

	browsing, err := s.memory.BrowsingContext(ctx)
	if err != nil {
		s.logger.Warn("Browsing context unavailable", zap.Error(err))
	} else {
		in.Context = browsing
	}

	history, err := s.memory.SearchHistory(ctx, 0)
	if err != nil {
		s.logger.Warn("Search history unavailable", zap.Error(err))
	} else {
		in.History = history
	}

	st := s.decider.Decide(ctx, in)
	s.logger.Info("Search strategy planned",
		zap.String("strategy", string(st.Kind)),
		zap.Int("limit", st.Limit),
		zap.Float64("confidence", st.Confidence))

	resp, err := s.engine.Execute(ctx, st)
	if err != nil {
		return domsearch.Response{}, fmt.Errorf("execute search: %w", err)
	}

	s.verifier.Apply(ctx, query, &resp)

	if err := s.memory.RecordSearch(ctx, query, category, resp.TotalFound); err != nil {
		s.logger.Warn("Failed to record search", zap.Error(err))
	}

	return resp, nil
}

// Compare is the product comparison flow: whatever the planner decided,
// the strategy is forced to comparative over the ecommerce category.
// No answer verification runs here; comparisons are not factual questions.
func (s *Service) Compare(ctx context.Context, query string) (domsearch.Response, error) {
	const category = "ecommerce"

	in := decision.Input{Query: query, Category: category}
	if browsing, err := s.memory.BrowsingContext(ctx); err == nil {
		in.Context = browsing
	}
	if history, err := s.memory.SearchHistory(ctx, 0); err == nil {
		in.History = history
	}

	st := s.decider.Decide(ctx, in)
	st.Kind = strategy.Comparative
	st.CategoryFilter = category

	resp, err := s.engine.Execute(ctx, st)
	if err != nil {
		return domsearch.Response{}, fmt.Errorf("execute comparison: %w", err)
	}

	if err := s.memory.RecordSearch(ctx, query, category, resp.TotalFound); err != nil {
		s.logger.Warn("Failed to record search", zap.Error(err))
	}

	return resp, nil
}

// Stats aggregates memory and index statistics.
type Stats struct {
	Memory       usermem.Stats `json:"memory"`
	IndexVectors int64         `json:"index_vectors"`
}

func (s *Service) Stats(ctx context.Context) (Stats, error) {
	memStats, err := s.memory.Stats(ctx)
	if err != nil {
		return Stats{}, fmt.Errorf("stats: %w", err)
	}
	size, err := s.index.Size(ctx)
	if err != nil {
		return Stats{}, fmt.Errorf("stats: %w", err)
	}
	return Stats{Memory: memStats, IndexVectors: size}, nil
}
