package chi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/pagetrail/pagetrail/internal/domain"
	domsearch "github.com/pagetrail/pagetrail/internal/domain/search"
	healthuc "github.com/pagetrail/pagetrail/internal/usecase/health"
	ingestuc "github.com/pagetrail/pagetrail/internal/usecase/ingest"
	usermem "github.com/pagetrail/pagetrail/internal/usecase/memory"
	orchestratoruc "github.com/pagetrail/pagetrail/internal/usecase/orchestrator"
)

func doRequest(f *testFixture, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, http.NoBody)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	}
	rr := httptest.NewRecorder()
	f.server.Routes().ServeHTTP(rr, req)
	return rr
}

func TestSearch_OK(t *testing.T) {
	f := newTestServer()
	f.searcher.searchResp = domsearch.Response{
		Results: []domsearch.ScoredResult{{
			URL:            "https://example.com/a",
			Title:          "Example",
			Snippet:        "some text",
			Category:       "docs",
			Similarity:     0.8,
			RelevanceScore: 0.9,
			Explanation:    "Relevance: 90%",
			Highlights:     []string{"some text"},
		}},
		QueryUnderstanding: "Strategy: semantic, Confidence: 0.90",
		StrategySummary:    "plain lookup",
		TotalFound:         1,
		Elapsed:            250 * time.Millisecond,
		Suggestions:        []string{"Refine your search terms"},
	}

	rr := doRequest(f, "POST", "/search", `{"query": "example", "category": "docs"}`)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rr.Code, rr.Body.String())
	}
	if f.searcher.lastQuery != "example" || f.searcher.lastCategory != "docs" {
		t.Errorf("searcher got query=%q category=%q", f.searcher.lastQuery, f.searcher.lastCategory)
	}

	var resp searchResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Results) != 1 {
		t.Fatalf("results = %d, want 1", len(resp.Results))
	}
	r := resp.Results[0]
	if r.URL != "https://example.com/a" || r.RelevanceScore != 0.9 {
		t.Errorf("unexpected result: %+v", r)
	}
	if len(r.HighlightSuggestions) != 1 {
		t.Errorf("highlight_suggestions = %v", r.HighlightSuggestions)
	}
	if resp.ProcessingTime != 0.25 {
		t.Errorf("processing_time = %v, want 0.25", resp.ProcessingTime)
	}
	if resp.TotalFound != 1 {
		t.Errorf("total_found = %d, want 1", resp.TotalFound)
	}
}

func TestSearch_EmptyQuery(t *testing.T) {
	f := newTestServer()

	rr := doRequest(f, "POST", "/search", `{"query": "  "}`)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rr.Code)
	}
	var errResp errorResponse
	if err := json.NewDecoder(rr.Body).Decode(&errResp); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if errResp.Code != "validation_failed" {
		t.Errorf("code = %q, want validation_failed", errResp.Code)
	}
}

func TestSearch_MalformedBody(t *testing.T) {
	f := newTestServer()

	rr := doRequest(f, "POST", "/search", `{not json`)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rr.Code)
	}
}

func TestSearch_ErrorMapping(t *testing.T) {
	tests := []struct {
		err        error
		wantStatus int
		wantCode   string
	}{
		{fmt.Errorf("embed: %w", domain.ErrEmbeddingProviderError), http.StatusBadGateway, "embedding_provider_error"},
		{fmt.Errorf("search: %w", domain.ErrIndexUnavailable), http.StatusServiceUnavailable, "index_unavailable"},
		{errors.New("boom"), http.StatusInternalServerError, "internal_error"},
	}

	for _, tt := range tests {
		f := newTestServer()
		f.searcher.searchErr = tt.err

		rr := doRequest(f, "POST", "/search", `{"query": "x"}`)

		if rr.Code != tt.wantStatus {
			t.Errorf("%v: status = %d, want %d", tt.err, rr.Code, tt.wantStatus)
		}
		var errResp errorResponse
		if err := json.NewDecoder(rr.Body).Decode(&errResp); err != nil {
			t.Fatalf("decode error: %v", err)
		}
		if errResp.Code != tt.wantCode {
			t.Errorf("%v: code = %q, want %q", tt.err, errResp.Code, tt.wantCode)
		}
	}
}

func TestSearch_InternalErrorHidesDetail(t *testing.T) {
	f := newTestServer()
	f.searcher.searchErr = errors.New("redis password leaked")

	rr := doRequest(f, "POST", "/search", `{"query": "x"}`)

	if strings.Contains(rr.Body.String(), "password") {
		t.Errorf("internal error detail leaked: %s", rr.Body.String())
	}
}

func TestCompare_OK(t *testing.T) {
	f := newTestServer()
	f.searcher.compareResp = domsearch.Response{
		Results: []domsearch.ScoredResult{
			{URL: "https://shop/a", Title: "A", Snippet: "a text", Similarity: 0.7, RelevanceScore: 0.7},
			{URL: "https://shop/b", Title: "B", Snippet: "b text", Similarity: 0.9, RelevanceScore: 0.9},
		},
		QueryUnderstanding: "Strategy: comparative, Confidence: 0.80",
		TotalFound:         2,
	}

	rr := doRequest(f, "POST", "/compare", `{"query": "laptops"}`)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rr.Code, rr.Body.String())
	}

	var resp compareResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Products) != 2 {
		t.Fatalf("products = %d, want 2", len(resp.Products))
	}
	// Sorted by descending score.
	if resp.Products[0].URL != "https://shop/b" {
		t.Errorf("first product = %q, want shop/b", resp.Products[0].URL)
	}
	if resp.Products[0].AvgSimilarity != 0.9 {
		t.Errorf("avg_similarity = %v, want 0.9", resp.Products[0].AvgSimilarity)
	}
	if len(resp.Products[0].Chunks) != 1 || resp.Products[0].Chunks[0].Text != "b text" {
		t.Errorf("chunks = %+v", resp.Products[0].Chunks)
	}
	if resp.TotalFound != 2 {
		t.Errorf("total_found = %d, want 2", resp.TotalFound)
	}
}

func TestCompare_EmptyQuery(t *testing.T) {
	f := newTestServer()

	rr := doRequest(f, "POST", "/compare", `{}`)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rr.Code)
	}
}

func TestAddPages_OK(t *testing.T) {
	f := newTestServer()
	f.ingester.result = ingestuc.Result{
		Added:      1,
		TokensUsed: 12,
		IDs:        []string{"id-1"},
	}

	body := `{"pages": [{"url": "https://example.com", "title": "T", "chunk": "text", "category": "docs", "timestamp": 1700000000}]}`
	rr := doRequest(f, "POST", "/pages", body)

	if rr.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %s", rr.Code, rr.Body.String())
	}
	if len(f.ingester.lastPages) != 1 {
		t.Fatalf("ingester got %d pages", len(f.ingester.lastPages))
	}
	p := f.ingester.lastPages[0]
	if p.URL != "https://example.com" || p.Chunk != "text" || p.Timestamp != 1700000000 {
		t.Errorf("unexpected page: %+v", p)
	}

	var resp addPagesResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Added != 1 || resp.TokensUsed != 12 || len(resp.IDs) != 1 {
		t.Errorf("unexpected response: %+v", resp)
	}
}

func TestAddPages_Empty(t *testing.T) {
	f := newTestServer()

	rr := doRequest(f, "POST", "/pages", `{"pages": []}`)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rr.Code)
	}
}

func TestAddPages_EmptyChunkRejected(t *testing.T) {
	f := newTestServer()
	f.ingester.err = fmt.Errorf("page 0: %w", domain.ErrEmptyChunk)

	rr := doRequest(f, "POST", "/pages", `{"pages": [{"url": "https://x", "chunk": ""}]}`)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rr.Code)
	}
	var errResp errorResponse
	if err := json.NewDecoder(rr.Body).Decode(&errResp); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if errResp.Code != "validation_failed" {
		t.Errorf("code = %q, want validation_failed", errResp.Code)
	}
}

func TestEmbed_OK(t *testing.T) {
	f := newTestServer()
	f.embedder.result = domain.BatchEmbeddingResult{
		Embeddings:  [][]float32{{0.1, 0.2, 0.3}, {0.4, 0.5, 0.6}},
		TotalTokens: 8,
	}

	rr := doRequest(f, "POST", "/embed", `{"texts": ["a", "b"]}`)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rr.Code, rr.Body.String())
	}
	if len(f.embedder.lastTexts) != 2 {
		t.Errorf("embedder got %v", f.embedder.lastTexts)
	}

	var resp embedResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Embeddings) != 2 || resp.Dimension != 3 || resp.TotalTokens != 8 {
		t.Errorf("unexpected response: %+v", resp)
	}
}

func TestEmbed_EmptyTexts(t *testing.T) {
	f := newTestServer()

	rr := doRequest(f, "POST", "/embed", `{"texts": []}`)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rr.Code)
	}
}

func TestStats_OK(t *testing.T) {
	f := newTestServer()
	f.searcher.stats = orchestratoruc.Stats{
		Memory:       usermem.Stats{TotalSearches: 7},
		IndexVectors: 123,
	}

	rr := doRequest(f, "GET", "/stats", "")

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}

	var resp struct {
		Memory struct {
			TotalSearches int `json:"total_searches"`
		} `json:"memory"`
		IndexVectors int64 `json:"index_vectors"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.IndexVectors != 123 || resp.Memory.TotalSearches != 7 {
		t.Errorf("unexpected stats: %+v", resp)
	}
}

func TestHealth_OK(t *testing.T) {
	f := newTestServer()
	f.health.report = healthuc.Report{
		Status:  healthuc.Healthy,
		Checks:  map[string]healthuc.CheckResult{"database": healthuc.CheckOK},
		Vectors: 42,
	}

	rr := doRequest(f, "GET", "/health", "")

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}

	var resp healthResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Status != "ok" || resp.Model != "test-model" || resp.Dimension != 384 {
		t.Errorf("unexpected health body: %+v", resp)
	}
	if resp.TotalVectors != 42 {
		t.Errorf("total_vectors = %d, want 42", resp.TotalVectors)
	}
}

func TestHealth_Degraded503(t *testing.T) {
	f := newTestServer()
	f.health.report = healthuc.Report{
		Status: healthuc.Degraded,
		Checks: map[string]healthuc.CheckResult{"database": healthuc.CheckError},
	}

	rr := doRequest(f, "GET", "/health", "")

	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", rr.Code)
	}
}
