package memory

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"go.uber.org/zap"

	dommem "github.com/pagetrail/pagetrail/internal/domain/memory"
)

type mockStore struct {
	mem     dommem.Memory
	loadErr error
	saveErr error

	saved     *dommem.Memory
	saveCalls int
}

func (m *mockStore) Load(_ context.Context) (dommem.Memory, error) {
	return m.mem, m.loadErr
}

func (m *mockStore) Save(_ context.Context, mem dommem.Memory) error {
	m.saveCalls++
	m.saved = &mem
	return m.saveErr
}

// Wednesday 2025-10-08 14:00 UTC.
var testNow = time.Date(2025, 10, 8, 14, 0, 0, 0, time.UTC)

func newTestService(t *testing.T, store *mockStore) *Service {
	t.Helper()
	return New(store, zap.NewNop()).WithClock(func() time.Time { return testNow })
}

func rec(query, category string, age time.Duration) dommem.Record {
	return dommem.Record{Query: query, Category: category, Timestamp: testNow.Add(-age).Unix()}
}

func TestBrowsingContext_RecentCategoriesByFrequency(t *testing.T) {
	store := &mockStore{mem: dommem.Memory{SearchHistory: []dommem.Record{
		rec("a", "news", 24*time.Hour),
		rec("b", "docs", 24*time.Hour),
		rec("c", "docs", 48*time.Hour),
		rec("d", "ecommerce", 10*24*time.Hour), // outside the 7-day window
		rec("e", "", 24*time.Hour),             // uncategorized, ignored
	}}}
	svc := newTestService(t, store)

	ctx, err := svc.BrowsingContext(context.Background())
	if err != nil {
		t.Fatalf("BrowsingContext: %v", err)
	}
	want := []string{"docs", "news"}
	if !reflect.DeepEqual(ctx.RecentCategories, want) {
		t.Errorf("RecentCategories = %v, want %v", ctx.RecentCategories, want)
	}
	if ctx.TimeOfDay != "afternoon" {
		t.Errorf("TimeOfDay = %q, want afternoon at 14:00", ctx.TimeOfDay)
	}
	if ctx.DayOfWeek != "Wednesday" {
		t.Errorf("DayOfWeek = %q, want Wednesday", ctx.DayOfWeek)
	}
}

func TestBrowsingContext_TieKeepsFirstSearchedOrder(t *testing.T) {
	store := &mockStore{mem: dommem.Memory{SearchHistory: []dommem.Record{
		rec("a", "social", time.Hour),
		rec("b", "news", time.Hour),
	}}}
	svc := newTestService(t, store)

	ctx, err := svc.BrowsingContext(context.Background())
	if err != nil {
		t.Fatalf("BrowsingContext: %v", err)
	}
	want := []string{"social", "news"}
	if !reflect.DeepEqual(ctx.RecentCategories, want) {
		t.Errorf("RecentCategories = %v, want tie broken by first occurrence", ctx.RecentCategories)
	}
}

func TestBrowsingContext_SitesCappedAtTen(t *testing.T) {
	var sites []string
	for i := 0; i < 15; i++ {
		sites = append(sites, string(rune('a'+i))+".test")
	}
	store := &mockStore{mem: dommem.Memory{FrequentSites: sites}}
	svc := newTestService(t, store)

	ctx, err := svc.BrowsingContext(context.Background())
	if err != nil {
		t.Fatalf("BrowsingContext: %v", err)
	}
	if len(ctx.FrequentSites) != 10 {
		t.Errorf("FrequentSites = %d entries, want 10", len(ctx.FrequentSites))
	}
}

func TestTimeOfDay(t *testing.T) {
	tests := []struct {
		hour int
		want string
	}{
		{5, "morning"}, {11, "morning"},
		{12, "afternoon"}, {16, "afternoon"},
		{17, "evening"}, {20, "evening"},
		{21, "night"}, {2, "night"}, {4, "night"},
	}
	for _, tt := range tests {
		if got := timeOfDay(tt.hour); got != tt.want {
			t.Errorf("timeOfDay(%d) = %q, want %q", tt.hour, got, tt.want)
		}
	}
}

func TestSearchHistory_LastNInOrder(t *testing.T) {
	var records []dommem.Record
	for _, q := range []string{"one", "two", "three", "four"} {
		records = append(records, dommem.Record{Query: q})
	}
	records[3].ClickedURL = "https://x.test"
	store := &mockStore{mem: dommem.Memory{SearchHistory: records}}
	svc := newTestService(t, store)

	hist, err := svc.SearchHistory(context.Background(), 2)
	if err != nil {
		t.Fatalf("SearchHistory: %v", err)
	}
	if !reflect.DeepEqual(hist.Queries, []string{"three", "four"}) {
		t.Errorf("Queries = %v, want the last 2 in order", hist.Queries)
	}
	if !reflect.DeepEqual(hist.ClickedURLs, []string{"https://x.test"}) {
		t.Errorf("ClickedURLs = %v, want the single click", hist.ClickedURLs)
	}
}

func TestRecordSearch_AppendsAndCaps(t *testing.T) {
	full := make([]dommem.Record, dommem.MaxSearchRecords)
	for i := range full {
		full[i] = dommem.Record{Query: "old"}
	}
	store := &mockStore{mem: dommem.Memory{SearchHistory: full}}
	svc := newTestService(t, store)

	if err := svc.RecordSearch(context.Background(), "new query", "docs", 7); err != nil {
		t.Fatalf("RecordSearch: %v", err)
	}
	if store.saved == nil {
		t.Fatal("memory not saved")
	}
	if len(store.saved.SearchHistory) != dommem.MaxSearchRecords {
		t.Errorf("history = %d records, want cap at %d",
			len(store.saved.SearchHistory), dommem.MaxSearchRecords)
	}
	last := store.saved.SearchHistory[len(store.saved.SearchHistory)-1]
	if last.Query != "new query" || last.Category != "docs" || last.ResultCount != 7 {
		t.Errorf("last record = %+v", last)
	}
	if last.Timestamp != testNow.Unix() {
		t.Errorf("timestamp = %d, want clock time", last.Timestamp)
	}
}

func TestRecordVisit_MoveToFront(t *testing.T) {
	store := &mockStore{mem: dommem.Memory{FrequentSites: []string{"a.test", "b.test", "c.test"}}}
	svc := newTestService(t, store)

	if err := svc.RecordVisit(context.Background(), "b.test"); err != nil {
		t.Fatalf("RecordVisit: %v", err)
	}
	want := []string{"b.test", "a.test", "c.test"}
	if !reflect.DeepEqual(store.saved.FrequentSites, want) {
		t.Errorf("sites = %v, want %v", store.saved.FrequentSites, want)
	}
}

func TestRecordVisit_CapsAtFifty(t *testing.T) {
	sites := make([]string, dommem.MaxFrequentSites)
	for i := range sites {
		sites[i] = string(rune('a'+i%26)) + time.Duration(i).String()
	}
	store := &mockStore{mem: dommem.Memory{FrequentSites: sites}}
	svc := newTestService(t, store)

	if err := svc.RecordVisit(context.Background(), "fresh.test"); err != nil {
		t.Fatalf("RecordVisit: %v", err)
	}
	if len(store.saved.FrequentSites) != dommem.MaxFrequentSites {
		t.Errorf("sites = %d, want cap at %d", len(store.saved.FrequentSites), dommem.MaxFrequentSites)
	}
	if store.saved.FrequentSites[0] != "fresh.test" {
		t.Errorf("front = %q, want the new site", store.saved.FrequentSites[0])
	}
}

func TestStats(t *testing.T) {
	store := &mockStore{mem: dommem.Memory{
		SearchHistory:       []dommem.Record{{Query: "a"}, {Query: "b"}},
		FrequentSites:       []string{"x.test"},
		CategoryPreferences: dommem.DefaultCategoryPreferences(),
	}}
	svc := newTestService(t, store)

	stats, err := svc.Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.TotalSearches != 2 || stats.FrequentSites != 1 {
		t.Errorf("stats = %+v", stats)
	}
	if stats.CategoryPreferences["news"] != 0.5 {
		t.Errorf("preferences = %v", stats.CategoryPreferences)
	}
}

func TestLoadFaultPropagates(t *testing.T) {
	boom := errors.New("kv down")
	store := &mockStore{loadErr: boom}
	svc := newTestService(t, store)

	if _, err := svc.BrowsingContext(context.Background()); !errors.Is(err, boom) {
		t.Errorf("BrowsingContext err = %v, want wrapped fault", err)
	}
	if err := svc.RecordSearch(context.Background(), "q", "", 0); !errors.Is(err, boom) {
		t.Errorf("RecordSearch err = %v, want wrapped fault", err)
	}
}
