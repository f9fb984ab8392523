package pagetrail

import (
	"context"

	"github.com/pagetrail/pagetrail/internal/domain"
	domsearch "github.com/pagetrail/pagetrail/internal/domain/search"
	healthuc "github.com/pagetrail/pagetrail/internal/usecase/health"
	ingestuc "github.com/pagetrail/pagetrail/internal/usecase/ingest"
	orchestratoruc "github.com/pagetrail/pagetrail/internal/usecase/orchestrator"
)

// --- searchUseCase mock ---

type mockSearchUC struct {
	searchFn  func(ctx context.Context, query, category string) (domsearch.Response, error)
	compareFn func(ctx context.Context, query string) (domsearch.Response, error)
	statsFn   func(ctx context.Context) (orchestratoruc.Stats, error)
}

func (m *mockSearchUC) Search(ctx context.Context, query, category string) (domsearch.Response, error) {
	return m.searchFn(ctx, query, category)
}

func (m *mockSearchUC) Compare(ctx context.Context, query string) (domsearch.Response, error) {
	return m.compareFn(ctx, query)
}

func (m *mockSearchUC) Stats(ctx context.Context) (orchestratoruc.Stats, error) {
	return m.statsFn(ctx)
}

// --- ingestUseCase mock ---

type mockIngestUC struct {
	addFn func(ctx context.Context, pages []domain.Page) (ingestuc.Result, error)
}

func (m *mockIngestUC) AddPages(ctx context.Context, pages []domain.Page) (ingestuc.Result, error) {
	return m.addFn(ctx, pages)
}

// --- memoryUseCase mock ---

type mockMemoryUC struct {
	visitFn func(ctx context.Context, url string) error
}

func (m *mockMemoryUC) RecordVisit(ctx context.Context, url string) error {
	return m.visitFn(ctx, url)
}

// --- healthUseCase mock ---

type mockHealthUC struct {
	checkFn func(ctx context.Context) healthuc.Report
}

func (m *mockHealthUC) Check(ctx context.Context) healthuc.Report {
	return m.checkFn(ctx)
}

// --- Embedder mock ---

type mockEmbedder struct {
	fn func(ctx context.Context, text string) (EmbeddingResult, error)
}

func (m *mockEmbedder) Embed(ctx context.Context, text string) (EmbeddingResult, error) {
	return m.fn(ctx, text)
}

// mockBatchEmbedder also implements the optional BatchEmbedder.
type mockBatchEmbedder struct {
	mockEmbedder
	batchFn func(ctx context.Context, texts []string) (BatchEmbeddingResult, error)
}

func (m *mockBatchEmbedder) BatchEmbed(ctx context.Context, texts []string) (BatchEmbeddingResult, error) {
	return m.batchFn(ctx, texts)
}
