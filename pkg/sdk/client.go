package pagetrail

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/pagetrail/pagetrail/internal/db"
	dbRedis "github.com/pagetrail/pagetrail/internal/db/redis"
	"github.com/pagetrail/pagetrail/internal/domain"
	domsearch "github.com/pagetrail/pagetrail/internal/domain/search"
	indexrepo "github.com/pagetrail/pagetrail/internal/repository/index"
	memoryrepo "github.com/pagetrail/pagetrail/internal/repository/memory"
	pagerepo "github.com/pagetrail/pagetrail/internal/repository/page"
	decisionuc "github.com/pagetrail/pagetrail/internal/usecase/decision"
	healthuc "github.com/pagetrail/pagetrail/internal/usecase/health"
	ingestuc "github.com/pagetrail/pagetrail/internal/usecase/ingest"
	usermem "github.com/pagetrail/pagetrail/internal/usecase/memory"
	orchestratoruc "github.com/pagetrail/pagetrail/internal/usecase/orchestrator"
	searchuc "github.com/pagetrail/pagetrail/internal/usecase/search"
	verifyuc "github.com/pagetrail/pagetrail/internal/usecase/verify"
)

const (
	defaultReadinessTimeout = 10 * time.Second
	defaultVectorDimensions = 384
)

// Internal interfaces for test substitution.
type searchUseCase interface {
	Search(ctx context.Context, query, category string) (domsearch.Response, error)
	Compare(ctx context.Context, query string) (domsearch.Response, error)
	Stats(ctx context.Context) (orchestratoruc.Stats, error)
}

type ingestUseCase interface {
	AddPages(ctx context.Context, pages []domain.Page) (ingestuc.Result, error)
}

type memoryUseCase interface {
	RecordVisit(ctx context.Context, url string) error
}

type healthUseCase interface {
	Check(ctx context.Context) healthuc.Report
}

// Client is the pagetrail SDK entry point.
type Client struct {
	store     db.Store
	searchSvc searchUseCase
	ingestSvc ingestUseCase
	memorySvc memoryUseCase
	healthSvc healthUseCase
	obs       *observer
}

// New creates a pagetrail Client and connects to the database.
// The provided context is used for the initial readiness check.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := &clientConfig{
		vectorDimensions: defaultVectorDimensions,
	}
	for _, o := range opts {
		o.apply(cfg)
	}

	if len(cfg.addrs) == 0 {
		return nil, errors.New("pagetrail: database address required (use WithRedis)")
	}

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.addrs,
		Password: cfg.password,
	})
	if err != nil {
		return nil, fmt.Errorf("pagetrail: create redis store: %w", err)
	}

	if err := store.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
		store.Close()
		return nil, fmt.Errorf("pagetrail: database not ready: %w", err)
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		store.Close()
		return nil, err
	}
	return wireClient(store, cfg, obs), nil
}

func wireClient(store db.Store, cfg *clientConfig, obs *observer) *Client {
	indexRepo := indexrepo.New(store)
	if cfg.hnswM > 0 || cfg.hnswEFConstruct > 0 {
		indexRepo = indexRepo.WithHNSW(indexrepo.HNSWConfig{
			M:           cfg.hnswM,
			EFConstruct: cfg.hnswEFConstruct,
		})
	}
	pageRepo := pagerepo.New(store)
	memStore := memoryrepo.New(store)

	// Embedder: noop if not set, every operation that vectorizes fails.
	var emb embedder = noopEmbedder{}
	if cfg.embedder != nil {
		emb = &embedderAdapter{inner: cfg.embedder}
	}

	// Internal services log through zap; the SDK surfaces outcomes via
	// the observer instead.
	nop := zap.NewNop()

	memorySvc := usermem.New(memStore, nop)
	engine := searchuc.New(indexRepo, pageRepo, emb, nop)
	// No reasoning provider in embedded mode: every query degrades to
	// the semantic fallback strategy and verification is skipped.
	decisionSvc := decisionuc.New(nil, nop)
	verifySvc := verifyuc.New(nil, nop)
	orchSvc := orchestratoruc.New(decisionSvc, engine, verifySvc, memorySvc, indexRepo, nop)
	ingestSvc := ingestuc.New(emb, pageRepo, indexRepo, nop)
	healthSvc := healthuc.New(store, nil, indexRepo)

	return &Client{
		store:     store,
		searchSvc: orchSvc,
		ingestSvc: ingestSvc,
		memorySvc: memorySvc,
		healthSvc: healthSvc,
		obs:       obs,
	}
}

// Close releases all resources.
func (c *Client) Close() {
	if c.store != nil {
		c.store.Close()
	}
}

// Ping checks database connectivity.
func (c *Client) Ping(ctx context.Context) (err error) {
	start := time.Now()
	defer func() { c.obs.observe("ping", start, err) }()

	if err = c.store.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// embedder combines the two internal embedding contracts the pipeline needs.
type embedder interface {
	domain.Embedder
	domain.BatchEmbedder
}

// embedderAdapter wraps the public Embedder to satisfy the internal contracts.
type embedderAdapter struct {
	inner Embedder
}

func (a *embedderAdapter) Embed(ctx context.Context, text string) (domain.EmbeddingResult, error) {
	r, err := a.inner.Embed(ctx, text)
	if err != nil {
		return domain.EmbeddingResult{}, fmt.Errorf("embed: %w", err)
	}
	return domain.EmbeddingResult{
		Embedding:    r.Embedding,
		PromptTokens: r.PromptTokens,
		TotalTokens:  r.TotalTokens,
	}, nil
}

func (a *embedderAdapter) BatchEmbed(ctx context.Context, texts []string) (domain.BatchEmbeddingResult, error) {
	if be, ok := a.inner.(BatchEmbedder); ok {
		r, err := be.BatchEmbed(ctx, texts)
		if err != nil {
			return domain.BatchEmbeddingResult{}, fmt.Errorf("batch embed: %w", err)
		}
		return domain.BatchEmbeddingResult{
			Embeddings:   r.Embeddings,
			PromptTokens: r.PromptTokens,
			TotalTokens:  r.TotalTokens,
		}, nil
	}
	return domain.BatchFallback(ctx, a, texts)
}

// noopEmbedder returns an error on every call (used when no embedder configured).
type noopEmbedder struct{}

func (noopEmbedder) Embed(_ context.Context, _ string) (domain.EmbeddingResult, error) {
	return domain.EmbeddingResult{}, errors.New(
		"pagetrail: embedder not configured (use WithEmbedder)",
	)
}

func (n noopEmbedder) BatchEmbed(ctx context.Context, texts []string) (domain.BatchEmbeddingResult, error) {
	return domain.BatchFallback(ctx, n, texts)
}
