package chi

import (
	"context"

	"github.com/pagetrail/pagetrail/internal/domain"
	domsearch "github.com/pagetrail/pagetrail/internal/domain/search"
	healthuc "github.com/pagetrail/pagetrail/internal/usecase/health"
	ingestuc "github.com/pagetrail/pagetrail/internal/usecase/ingest"
	orchestratoruc "github.com/pagetrail/pagetrail/internal/usecase/orchestrator"
)

// Searcher runs the full query pipeline.
type Searcher interface {
	Search(ctx context.Context, query, category string) (domsearch.Response, error)
	Compare(ctx context.Context, query string) (domsearch.Response, error)
	Stats(ctx context.Context) (orchestratoruc.Stats, error)
}

// Ingester stores new page chunks.
type Ingester interface {
	AddPages(ctx context.Context, pages []domain.Page) (ingestuc.Result, error)
}

// HealthChecker reports component health.
type HealthChecker interface {
	Check(ctx context.Context) healthuc.Report
}
