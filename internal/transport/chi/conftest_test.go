package chi

import (
	"context"

	"go.uber.org/zap"

	"github.com/pagetrail/pagetrail/internal/domain"
	domsearch "github.com/pagetrail/pagetrail/internal/domain/search"
	healthuc "github.com/pagetrail/pagetrail/internal/usecase/health"
	ingestuc "github.com/pagetrail/pagetrail/internal/usecase/ingest"
	orchestratoruc "github.com/pagetrail/pagetrail/internal/usecase/orchestrator"
)

type mockSearcher struct {
	searchResp   domsearch.Response
	searchErr    error
	lastQuery    string
	lastCategory string

	compareResp domsearch.Response
	compareErr  error

	stats    orchestratoruc.Stats
	statsErr error
}

func (m *mockSearcher) Search(_ context.Context, query, category string) (domsearch.Response, error) {
	m.lastQuery = query
	m.lastCategory = category
	return m.searchResp, m.searchErr
}

func (m *mockSearcher) Compare(_ context.Context, query string) (domsearch.Response, error) {
	m.lastQuery = query
	return m.compareResp, m.compareErr
}

func (m *mockSearcher) Stats(_ context.Context) (orchestratoruc.Stats, error) {
	return m.stats, m.statsErr
}

type mockIngester struct {
	result    ingestuc.Result
	err       error
	lastPages []domain.Page
}

func (m *mockIngester) AddPages(_ context.Context, pages []domain.Page) (ingestuc.Result, error) {
	m.lastPages = pages
	return m.result, m.err
}

type mockBatchEmbedder struct {
	result    domain.BatchEmbeddingResult
	err       error
	lastTexts []string
}

func (m *mockBatchEmbedder) BatchEmbed(_ context.Context, texts []string) (domain.BatchEmbeddingResult, error) {
	m.lastTexts = texts
	return m.result, m.err
}

type mockHealth struct {
	report healthuc.Report
}

func (m *mockHealth) Check(_ context.Context) healthuc.Report {
	return m.report
}

type testFixture struct {
	searcher *mockSearcher
	ingester *mockIngester
	embedder *mockBatchEmbedder
	health   *mockHealth
	server   *Server
}

func newTestServer() *testFixture {
	f := &testFixture{
		searcher: &mockSearcher{},
		ingester: &mockIngester{},
		embedder: &mockBatchEmbedder{},
		health: &mockHealth{report: healthuc.Report{
			Status: healthuc.Healthy,
			Checks: map[string]healthuc.CheckResult{"database": healthuc.CheckOK},
		}},
	}
	f.server = NewServer(f.searcher, f.ingester, f.embedder, f.health,
		"test-model", 384, zap.NewNop())
	return f
}
