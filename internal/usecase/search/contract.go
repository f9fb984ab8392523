package search

import (
	"context"

	"github.com/pagetrail/pagetrail/internal/domain"
	domsearch "github.com/pagetrail/pagetrail/internal/domain/search"
)

// VectorIndex retrieves nearest neighbors for a query vector.
type VectorIndex interface {
	Search(ctx context.Context, vector []float32, n int) ([]domsearch.Hit, error)
	Size(ctx context.Context) (int64, error)
}

// PageReader resolves hit IDs to page metadata.
type PageReader interface {
	Get(ctx context.Context, id string) (domain.Page, error)
}

// Embedder vectorizes text into embeddings.
type Embedder interface {
	Embed(ctx context.Context, text string) (domain.EmbeddingResult, error)
}
