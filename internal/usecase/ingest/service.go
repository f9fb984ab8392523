// Package ingest adds browsed pages to the search index: chunks are
// embedded in one batch, assigned IDs, and stored with their vectors.
package ingest

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pagetrail/pagetrail/internal/domain"
	"github.com/pagetrail/pagetrail/internal/repository/page"
)

type Service struct {
	embed  BatchEmbedder
	writer PageWriter
	index  IndexManager
	logger *zap.Logger
}

func New(embed BatchEmbedder, writer PageWriter, index IndexManager, logger *zap.Logger) *Service {
	return &Service{embed: embed, writer: writer, index: index, logger: logger}
}

// Result reports one ingestion batch.
type Result struct {
	Added      int
	TokensUsed int
	IDs        []string
}

// AddPages embeds and stores a batch of page chunks. Chunks with empty
// text are rejected up front: an empty string would embed to a
// meaningless vector and pollute every search.
func (s *Service) AddPages(ctx context.Context, pages []domain.Page) (Result, error) {
	if len(pages) == 0 {
		return Result{}, nil
	}
	for i, p := range pages {
		if p.Chunk == "" {
			return Result{}, fmt.Errorf("%w: page %d has no chunk text", domain.ErrEmptyChunk, i)
		}
		if p.URL == "" {
			return Result{}, fmt.Errorf("%w: page %d has no url", domain.ErrEmptyChunk, i)
		}
	}

	texts := make([]string, len(pages))
	for i, p := range pages {
		texts[i] = p.Chunk
	}

	emb, err := s.embed.BatchEmbed(ctx, texts)
	if err != nil {
		return Result{}, fmt.Errorf("embed %d chunks: %w", len(texts), err)
	}
	if len(emb.Embeddings) != len(pages) {
		return Result{}, fmt.Errorf("embed %d chunks: got %d vectors", len(pages), len(emb.Embeddings))
	}

	if err := s.index.EnsureIndex(ctx, len(emb.Embeddings[0])); err != nil {
		return Result{}, fmt.Errorf("ensure index: %w", err)
	}

	items := make([]page.Item, len(pages))
	ids := make([]string, len(pages))
	for i, p := range pages {
		ids[i] = uuid.NewString()
		items[i] = page.Item{ID: ids[i], Page: p, Vector: emb.Embeddings[i]}
	}

	if err := s.writer.PutMulti(ctx, items); err != nil {
		return Result{}, fmt.Errorf("store %d chunks: %w", len(items), err)
	}

	s.logger.Info("Pages ingested",
		zap.Int("chunks", len(items)),
		zap.Int("tokens", emb.TotalTokens))

	return Result{Added: len(items), TokensUsed: emb.TotalTokens, IDs: ids}, nil
}
