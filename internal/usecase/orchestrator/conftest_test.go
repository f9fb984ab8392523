package orchestrator

import (
	"context"

	dommem "github.com/pagetrail/pagetrail/internal/domain/memory"
	domsearch "github.com/pagetrail/pagetrail/internal/domain/search"
	"github.com/pagetrail/pagetrail/internal/domain/strategy"
	"github.com/pagetrail/pagetrail/internal/usecase/decision"
	usermem "github.com/pagetrail/pagetrail/internal/usecase/memory"
)

type mockDecider struct {
	st     strategy.Strategy
	lastIn decision.Input
}

func (m *mockDecider) Decide(_ context.Context, in decision.Input) strategy.Strategy {
	m.lastIn = in
	if m.st.QueryText == "" {
		m.st.QueryText = in.Query
	}
	return m.st
}

type mockEngine struct {
	resp   domsearch.Response
	err    error
	lastSt strategy.Strategy
}

func (m *mockEngine) Execute(_ context.Context, st strategy.Strategy) (domsearch.Response, error) {
	m.lastSt = st
	return m.resp, m.err
}

type mockVerifier struct {
	calls     int
	lastQuery string
	mutate    func(resp *domsearch.Response)
}

func (m *mockVerifier) Apply(_ context.Context, query string, resp *domsearch.Response) {
	m.calls++
	m.lastQuery = query
	if m.mutate != nil {
		m.mutate(resp)
	}
}

type mockMemory struct {
	browsing dommem.BrowsingContext
	history  dommem.SearchHistory
	stats    usermem.Stats
	loadErr  error

	recorded  []recordedSearch
	recordErr error
}

type recordedSearch struct {
	query    string
	category string
	count    int
}

func (m *mockMemory) BrowsingContext(_ context.Context) (dommem.BrowsingContext, error) {
	return m.browsing, m.loadErr
}

func (m *mockMemory) SearchHistory(_ context.Context, _ int) (dommem.SearchHistory, error) {
	return m.history, m.loadErr
}

func (m *mockMemory) RecordSearch(_ context.Context, query, category string, count int) error {
	m.recorded = append(m.recorded, recordedSearch{query, category, count})
	return m.recordErr
}

func (m *mockMemory) Stats(_ context.Context) (usermem.Stats, error) {
	return m.stats, m.loadErr
}

type mockSizer struct {
	size int64
	err  error
}

func (m *mockSizer) Size(_ context.Context) (int64, error) {
	return m.size, m.err
}
