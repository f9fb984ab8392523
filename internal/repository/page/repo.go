// Package page persists page chunks as Redis hashes under the search
// index prefix. Each hash carries the chunk metadata plus the embedding
// vector in the binary format the index expects.
package page

import (
	"context"
	"fmt"

	"github.com/pagetrail/pagetrail/internal/db"
	"github.com/pagetrail/pagetrail/internal/domain"
)

// KeyPrefix matches the prefix the search index is declared over.
const KeyPrefix = "pagetrail:page:"

type store interface {
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	HSetMulti(ctx context.Context, items []db.HashSetItem) error
	Del(ctx context.Context, keys ...string) (int64, error)
}

type Repo struct {
	store store
}

func New(store store) *Repo {
	return &Repo{store: store}
}

// Item is one chunk to persist: metadata plus its embedding.
type Item struct {
	ID     string
	Page   domain.Page
	Vector []float32
}

// Get loads a single chunk by ID. A missing key reports
// domain.ErrPageNotFound.
func (r *Repo) Get(ctx context.Context, id string) (domain.Page, error) {
	fields, err := r.store.HGetAll(ctx, KeyPrefix+id)
	if err != nil {
		return domain.Page{}, fmt.Errorf("get page %q: %w", id, err)
	}
	if len(fields) == 0 {
		return domain.Page{}, fmt.Errorf("get page %q: %w", id, domain.ErrPageNotFound)
	}
	return pageFromFields(fields), nil
}

// PutMulti writes a batch of chunks in a single pipeline round trip.
func (r *Repo) PutMulti(ctx context.Context, items []Item) error {
	if len(items) == 0 {
		return nil
	}
	batch := make([]db.HashSetItem, 0, len(items))
	for _, it := range items {
		batch = append(batch, db.HashSetItem{
			Key:    KeyPrefix + it.ID,
			Fields: pageToFields(it.Page, db.EncodeVector(it.Vector)),
		})
	}
	if err := r.store.HSetMulti(ctx, batch); err != nil {
		return fmt.Errorf("put %d pages: %w", len(items), err)
	}
	return nil
}

// Delete removes chunks by ID and reports how many existed.
func (r *Repo) Delete(ctx context.Context, ids ...string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = KeyPrefix + id
	}
	n, err := r.store.Del(ctx, keys...)
	if err != nil {
		return 0, fmt.Errorf("delete %d pages: %w", len(ids), err)
	}
	return n, nil
}
