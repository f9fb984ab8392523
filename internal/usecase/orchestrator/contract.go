package orchestrator

import (
	"context"

	dommem "github.com/pagetrail/pagetrail/internal/domain/memory"
	domsearch "github.com/pagetrail/pagetrail/internal/domain/search"
	"github.com/pagetrail/pagetrail/internal/domain/strategy"
	"github.com/pagetrail/pagetrail/internal/usecase/decision"
	usermem "github.com/pagetrail/pagetrail/internal/usecase/memory"
)

// Decider plans the search strategy. Fail-open: always yields a strategy.
type Decider interface {
	Decide(ctx context.Context, in decision.Input) strategy.Strategy
}

// Engine executes one strategy through the full search pipeline.
type Engine interface {
	Execute(ctx context.Context, st strategy.Strategy) (domsearch.Response, error)
}

// Verifier optionally shrinks a response that does not answer the query.
type Verifier interface {
	Apply(ctx context.Context, query string, resp *domsearch.Response)
}

// UserMemory supplies browsing context and records completed searches.
type UserMemory interface {
	BrowsingContext(ctx context.Context) (dommem.BrowsingContext, error)
	SearchHistory(ctx context.Context, limit int) (dommem.SearchHistory, error)
	RecordSearch(ctx context.Context, query, category string, resultCount int) error
	Stats(ctx context.Context) (usermem.Stats, error)
}

// IndexSizer reports the vector count of the search index.
type IndexSizer interface {
	Size(ctx context.Context) (int64, error)
}
