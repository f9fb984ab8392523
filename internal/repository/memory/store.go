// Package memory persists the user's search memory as a single JSON
// blob in the key-value store.
package memory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/pagetrail/pagetrail/internal/db"
	"github.com/pagetrail/pagetrail/internal/domain/memory"
)

const Key = "pagetrail:memory"

type kvStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}

type Store struct {
	kv kvStore
}

func New(kv kvStore) *Store {
	return &Store{kv: kv}
}

// Load returns the persisted memory. A missing key yields a fresh
// memory with default category preferences rather than an error.
func (s *Store) Load(ctx context.Context) (memory.Memory, error) {
	raw, err := s.kv.Get(ctx, Key)
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return memory.Memory{CategoryPreferences: memory.DefaultCategoryPreferences()}, nil
		}
		return memory.Memory{}, fmt.Errorf("load memory: %w", err)
	}

	var m memory.Memory
	if err := json.Unmarshal(raw, &m); err != nil {
		return memory.Memory{}, fmt.Errorf("load memory: decode: %w", err)
	}
	if m.CategoryPreferences == nil {
		m.CategoryPreferences = memory.DefaultCategoryPreferences()
	}
	return m, nil
}

func (s *Store) Save(ctx context.Context, m memory.Memory) error {
	raw, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("save memory: encode: %w", err)
	}
	if err := s.kv.Set(ctx, Key, raw); err != nil {
		return fmt.Errorf("save memory: %w", err)
	}
	return nil
}
