package decision

import (
	"context"

	"github.com/pagetrail/pagetrail/internal/domain/memory"
	"github.com/pagetrail/pagetrail/internal/domain/strategy"
)

// Input is everything the strategy planner sees for one query.
type Input struct {
	Query    string
	Category string
	Context  memory.BrowsingContext
	History  memory.SearchHistory
}

// Provider plans a search strategy from the query and user context.
type Provider interface {
	Decide(ctx context.Context, in Input) (strategy.Strategy, error)
}
