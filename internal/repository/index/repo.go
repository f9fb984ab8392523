// Package index adapts the database FT vector index to the engine's
// VectorIndex contract.
package index

import (
	"context"
	"errors"
	"fmt"

	"github.com/pagetrail/pagetrail/internal/db"
	"github.com/pagetrail/pagetrail/internal/domain"
	domsearch "github.com/pagetrail/pagetrail/internal/domain/search"
)

// IndexName is the FT index over page chunk hashes.
var IndexName = domain.KeyPrefix + "pages:idx"

// KeyPrefix prefixes every page chunk hash key.
var KeyPrefix = domain.KeyPrefix + "page:"

// store is the consumer interface for index operations (ISP).
type store interface {
	SearchKNN(ctx context.Context, q *db.KNNQuery) (*db.SearchResult, error)
	SearchCount(ctx context.Context, index, query string) (int, error)
	CreateIndex(ctx context.Context, def *db.IndexDefinition) error
	IndexExists(ctx context.Context, name string) (bool, error)
}

// HNSWConfig tunes index construction.
type HNSWConfig struct {
	M           int
	EFConstruct int
}

// Repo implements usecase/search.VectorIndex and usecase/ingest.IndexEnsurer.
type Repo struct {
	store store
	hnsw  HNSWConfig
}

// New creates an index repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// WithHNSW overrides HNSW construction parameters.
func (r *Repo) WithHNSW(cfg HNSWConfig) *Repo {
	r.hnsw = cfg
	return r
}

// Search returns up to n hits ordered by descending similarity.
// A missing index means an empty corpus, not a fault.
func (r *Repo) Search(ctx context.Context, vector []float32, n int) ([]domsearch.Hit, error) {
	sr, err := r.store.SearchKNN(ctx, &db.KNNQuery{
		IndexName:    IndexName,
		Vector:       vector,
		K:            n,
		ReturnFields: []string{"__vector_score"},
	})
	if err != nil {
		if errors.Is(err, db.ErrIndexNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: search knn: %w", domain.ErrIndexUnavailable, err)
	}

	hits := make([]domsearch.Hit, 0, len(sr.Entries))
	for _, entry := range sr.Entries {
		hits = append(hits, domsearch.Hit{
			ID:         idFromKey(entry.Key),
			Similarity: entry.Score,
		})
	}
	return hits, nil
}

// Size returns the number of indexed chunk vectors.
func (r *Repo) Size(ctx context.Context) (int64, error) {
	total, err := r.store.SearchCount(ctx, IndexName, "*")
	if err != nil {
		if errors.Is(err, db.ErrIndexNotFound) {
			return 0, nil
		}
		return 0, fmt.Errorf("%w: index size: %w", domain.ErrIndexUnavailable, err)
	}
	return int64(total), nil
}

// EnsureIndex creates the FT index if it does not exist yet.
func (r *Repo) EnsureIndex(ctx context.Context, dim int) error {
	exists, err := r.store.IndexExists(ctx, IndexName)
	if err != nil {
		return fmt.Errorf("index exists: %w", err)
	}
	if exists {
		return nil
	}

	def, err := db.NewIndex(IndexName).
		Prefix(KeyPrefix).
		Tag("category").
		Numeric("timestamp").
		VectorHNSW("__vector", dim, db.DistanceCosine, r.hnsw.M, r.hnsw.EFConstruct).
		Build()
	if err != nil {
		return fmt.Errorf("build index definition: %w", err)
	}

	if err := r.store.CreateIndex(ctx, def); err != nil && !errors.Is(err, db.ErrIndexExists) {
		return fmt.Errorf("create index: %w", err)
	}
	return nil
}

func idFromKey(key string) string {
	if len(key) > len(KeyPrefix) && key[:len(KeyPrefix)] == KeyPrefix {
		return key[len(KeyPrefix):]
	}
	return key
}
