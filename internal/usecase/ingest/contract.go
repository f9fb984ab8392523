package ingest

import (
	"context"

	"github.com/pagetrail/pagetrail/internal/domain"
	"github.com/pagetrail/pagetrail/internal/repository/page"
)

// BatchEmbedder vectorizes page chunks in one API call.
type BatchEmbedder interface {
	BatchEmbed(ctx context.Context, texts []string) (domain.BatchEmbeddingResult, error)
}

// PageWriter persists chunk metadata and vectors.
type PageWriter interface {
	PutMulti(ctx context.Context, items []page.Item) error
}

// IndexManager creates the search index when it does not exist yet.
type IndexManager interface {
	EnsureIndex(ctx context.Context, dimensions int) error
}
