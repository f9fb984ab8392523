package pagetrail

import (
	"context"
	"fmt"
	"time"

	"github.com/pagetrail/pagetrail/internal/domain"
	domsearch "github.com/pagetrail/pagetrail/internal/domain/search"
)

// Search runs the full search pipeline for one query. category is an
// optional hint ("" = no preference). Results come back one per
// distinct URL, ordered by descending relevance.
func (c *Client) Search(ctx context.Context, query, category string) (_ SearchResponse, err error) {
	start := time.Now()
	defer func() { c.obs.observe("search", start, err) }()

	resp, err := c.searchSvc.Search(ctx, query, category)
	if err != nil {
		return SearchResponse{}, fmt.Errorf("search: %w", err)
	}
	return toSearchResponse(resp), nil
}

// Compare runs a comparison-oriented search: same pipeline, ranked for
// weighing alternatives against each other.
func (c *Client) Compare(ctx context.Context, query string) (_ SearchResponse, err error) {
	start := time.Now()
	defer func() { c.obs.observe("compare", start, err) }()

	resp, err := c.searchSvc.Compare(ctx, query)
	if err != nil {
		return SearchResponse{}, fmt.Errorf("compare: %w", err)
	}
	return toSearchResponse(resp), nil
}

// AddPages embeds and indexes a batch of page chunks. Chunks with empty
// text are rejected with ErrEmptyChunk before any embedding happens.
func (c *Client) AddPages(ctx context.Context, pages []Page) (_ AddResult, err error) {
	start := time.Now()
	defer func() { c.obs.observe("add_pages", start, err) }()

	domPages := make([]domain.Page, len(pages))
	for i, p := range pages {
		domPages[i] = domain.Page{
			URL:       p.URL,
			Title:     p.Title,
			Chunk:     p.Chunk,
			Category:  p.Category,
			Timestamp: p.Timestamp,
			Extra:     p.Extra,
		}
	}

	res, err := c.ingestSvc.AddPages(ctx, domPages)
	if err != nil {
		return AddResult{}, fmt.Errorf("add pages: %w", err)
	}
	return AddResult{
		Added:      res.Added,
		TokensUsed: res.TokensUsed,
		IDs:        res.IDs,
	}, nil
}

// RecordVisit notes a page visit in user memory, feeding the frequency
// signal of future rankings.
func (c *Client) RecordVisit(ctx context.Context, url string) (err error) {
	start := time.Now()
	defer func() { c.obs.observe("record_visit", start, err) }()

	if err = c.memorySvc.RecordVisit(ctx, url); err != nil {
		return fmt.Errorf("record visit: %w", err)
	}
	return nil
}

// Stats returns user memory counters and the index vector count.
func (c *Client) Stats(ctx context.Context) (_ Stats, err error) {
	start := time.Now()
	defer func() { c.obs.observe("stats", start, err) }()

	s, err := c.searchSvc.Stats(ctx)
	if err != nil {
		return Stats{}, fmt.Errorf("stats: %w", err)
	}
	return Stats{
		TotalSearches:       s.Memory.TotalSearches,
		FrequentSites:       s.Memory.FrequentSites,
		CategoryPreferences: s.Memory.CategoryPreferences,
		IndexVectors:        s.IndexVectors,
	}, nil
}

// Health checks the health of all wired components.
func (c *Client) Health(ctx context.Context) HealthStatus {
	report := c.healthSvc.Check(ctx)
	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}
	return HealthStatus{
		Status:  string(report.Status),
		Checks:  checks,
		Vectors: report.Vectors,
	}
}

func toSearchResponse(resp domsearch.Response) SearchResponse {
	results := make([]SearchResult, len(resp.Results))
	for i, r := range resp.Results {
		results[i] = SearchResult{
			URL:            r.URL,
			Title:          r.Title,
			Snippet:        r.Snippet,
			Category:       r.Category,
			Similarity:     r.Similarity,
			RelevanceScore: r.RelevanceScore,
			Explanation:    r.Explanation,
			Highlights:     r.Highlights,
		}
	}
	return SearchResponse{
		Results:            results,
		QueryUnderstanding: resp.QueryUnderstanding,
		Strategy:           resp.StrategySummary,
		TotalFound:         resp.TotalFound,
		Elapsed:            resp.Elapsed,
		Suggestions:        resp.Suggestions,
	}
}
