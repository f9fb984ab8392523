// Package memory tracks per-user search behavior: history, frequent
// sites, and the browsing context fed to the strategy planner.
package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	dommem "github.com/pagetrail/pagetrail/internal/domain/memory"
)

const (
	historyDefaultLimit = 10
	recentWindow        = 7 * 24 * time.Hour
	maxRecentCategories = 5
	maxContextSites     = 10
)

type store interface {
	Load(ctx context.Context) (dommem.Memory, error)
	Save(ctx context.Context, m dommem.Memory) error
}

// Service reads and updates the persisted user memory.
type Service struct {
	store  store
	logger *zap.Logger
	now    func() time.Time
}

func New(store store, logger *zap.Logger) *Service {
	return &Service{store: store, logger: logger, now: time.Now}
}

// WithClock overrides the time source. Test seam.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// BrowsingContext summarizes recent behavior for the strategy planner:
// the most searched categories of the last 7 days, the user's frequent
// sites, and the current time-of-day and weekday.
func (s *Service) BrowsingContext(ctx context.Context) (dommem.BrowsingContext, error) {
	m, err := s.store.Load(ctx)
	if err != nil {
		return dommem.BrowsingContext{}, fmt.Errorf("browsing context: %w", err)
	}

	now := s.now()
	cutoff := now.Add(-recentWindow).Unix()

	counts := make(map[string]int)
	var order []string
	for _, rec := range m.SearchHistory {
		if rec.Timestamp < cutoff || rec.Category == "" {
			continue
		}
		if counts[rec.Category] == 0 {
			order = append(order, rec.Category)
		}
		counts[rec.Category]++
	}
	// Most common first; equal counts keep first-searched order.
	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})
	if len(order) > maxRecentCategories {
		order = order[:maxRecentCategories]
	}

	sites := m.FrequentSites
	if len(sites) > maxContextSites {
		sites = sites[:maxContextSites]
	}

	return dommem.BrowsingContext{
		RecentCategories: order,
		FrequentSites:    sites,
		TimeOfDay:        timeOfDay(now.Hour()),
		DayOfWeek:        now.Weekday().String(),
	}, nil
}

// SearchHistory returns the most recent queries, oldest first, plus the
// clicked URLs among them. limit <= 0 means the default of 10.
func (s *Service) SearchHistory(ctx context.Context, limit int) (dommem.SearchHistory, error) {
	m, err := s.store.Load(ctx)
	if err != nil {
		return dommem.SearchHistory{}, fmt.Errorf("search history: %w", err)
	}
	if limit <= 0 {
		limit = historyDefaultLimit
	}

	records := m.SearchHistory
	if len(records) > limit {
		records = records[len(records)-limit:]
	}

	hist := dommem.SearchHistory{Queries: make([]string, 0, len(records))}
	for _, rec := range records {
		hist.Queries = append(hist.Queries, rec.Query)
		if rec.ClickedURL != "" {
			hist.ClickedURLs = append(hist.ClickedURLs, rec.ClickedURL)
		}
	}
	return hist, nil
}

// RecordSearch appends one search to the history, keeping at most the
// last MaxSearchRecords entries.
func (s *Service) RecordSearch(ctx context.Context, query, category string, resultCount int) error {
	m, err := s.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("record search: %w", err)
	}

	m.SearchHistory = append(m.SearchHistory, dommem.Record{
		Query:       query,
		Category:    category,
		ResultCount: resultCount,
		Timestamp:   s.now().Unix(),
	})
	if len(m.SearchHistory) > dommem.MaxSearchRecords {
		m.SearchHistory = m.SearchHistory[len(m.SearchHistory)-dommem.MaxSearchRecords:]
	}

	if err := s.store.Save(ctx, m); err != nil {
		return fmt.Errorf("record search: %w", err)
	}
	return nil
}

// RecordVisit moves the URL to the front of the frequent-sites list,
// keeping at most MaxFrequentSites entries.
func (s *Service) RecordVisit(ctx context.Context, url string) error {
	m, err := s.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("record visit: %w", err)
	}

	sites := make([]string, 0, len(m.FrequentSites)+1)
	sites = append(sites, url)
	for _, u := range m.FrequentSites {
		if u != url {
			sites = append(sites, u)
		}
	}
	if len(sites) > dommem.MaxFrequentSites {
		sites = sites[:dommem.MaxFrequentSites]
	}
	m.FrequentSites = sites

	if err := s.store.Save(ctx, m); err != nil {
		return fmt.Errorf("record visit: %w", err)
	}
	return nil
}

// Stats is the memory part of the service statistics endpoint.
type Stats struct {
	TotalSearches       int                `json:"total_searches"`
	FrequentSites       int                `json:"frequent_sites"`
	CategoryPreferences map[string]float64 `json:"category_preferences"`
}

func (s *Service) Stats(ctx context.Context) (Stats, error) {
	m, err := s.store.Load(ctx)
	if err != nil {
		return Stats{}, fmt.Errorf("memory stats: %w", err)
	}
	return Stats{
		TotalSearches:       len(m.SearchHistory),
		FrequentSites:       len(m.FrequentSites),
		CategoryPreferences: m.CategoryPreferences,
	}, nil
}

func timeOfDay(hour int) string {
	switch {
	case hour >= 5 && hour < 12:
		return "morning"
	case hour >= 12 && hour < 17:
		return "afternoon"
	case hour >= 17 && hour < 21:
		return "evening"
	default:
		return "night"
	}
}
