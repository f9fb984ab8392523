package page

import (
	"context"

	"github.com/pagetrail/pagetrail/internal/db"
)

type mockStore struct {
	hGetAllFn   func(ctx context.Context, key string) (map[string]string, error)
	hSetMultiFn func(ctx context.Context, items []db.HashSetItem) error
	delFn       func(ctx context.Context, keys ...string) (int64, error)

	lastBatch []db.HashSetItem
	lastDel   []string
}

func (m *mockStore) HGetAll(ctx context.Context, key string) (map[string]string, error) {
	if m.hGetAllFn != nil {
		return m.hGetAllFn(ctx, key)
	}
	return nil, nil
}

func (m *mockStore) HSetMulti(ctx context.Context, items []db.HashSetItem) error {
	m.lastBatch = items
	if m.hSetMultiFn != nil {
		return m.hSetMultiFn(ctx, items)
	}
	return nil
}

func (m *mockStore) Del(ctx context.Context, keys ...string) (int64, error) {
	m.lastDel = keys
	if m.delFn != nil {
		return m.delFn(ctx, keys...)
	}
	return int64(len(keys)), nil
}
