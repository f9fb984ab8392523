package search

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/pagetrail/pagetrail/internal/domain"
	domsearch "github.com/pagetrail/pagetrail/internal/domain/search"
)

type mockIndex struct {
	hits []domsearch.Hit
	size int64
	err  error

	searchCalls int
	lastN       int
}

func (m *mockIndex) Search(_ context.Context, _ []float32, n int) ([]domsearch.Hit, error) {
	m.searchCalls++
	m.lastN = n
	if m.err != nil {
		return nil, m.err
	}
	if n < len(m.hits) {
		return m.hits[:n], nil
	}
	return m.hits, nil
}

func (m *mockIndex) Size(_ context.Context) (int64, error) {
	if m.size > 0 {
		return m.size, nil
	}
	return int64(len(m.hits)), nil
}

type mockPages struct {
	pages map[string]domain.Page
	err   error
}

func (m *mockPages) Get(_ context.Context, id string) (domain.Page, error) {
	if m.err != nil {
		return domain.Page{}, m.err
	}
	p, ok := m.pages[id]
	if !ok {
		return domain.Page{}, domain.ErrPageNotFound
	}
	return p, nil
}

type mockEmbedder struct {
	vector   []float32
	err      error
	lastText string
}

func (m *mockEmbedder) Embed(_ context.Context, text string) (domain.EmbeddingResult, error) {
	m.lastText = text
	if m.err != nil {
		return domain.EmbeddingResult{}, m.err
	}
	return domain.EmbeddingResult{Embedding: m.vector}, nil
}

// testNow is the fixed clock all pipeline tests run against.
var testNow = time.Unix(1_760_000_000, 0)

func newTestService(t *testing.T, index *mockIndex, pages *mockPages) *Service {
	t.Helper()
	embed := &mockEmbedder{vector: []float32{0.1, 0.2, 0.3}}
	return New(index, pages, embed, zap.NewNop()).WithClock(func() time.Time { return testNow })
}

// daysAgo returns a unix timestamp n days before testNow.
func daysAgo(n int) int64 {
	return testNow.Unix() - int64(n)*86400
}
