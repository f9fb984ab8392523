package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/pagetrail/pagetrail/internal/domain"
	"github.com/pagetrail/pagetrail/internal/domain/strategy"
	"github.com/pagetrail/pagetrail/internal/usecase/decision"
)

const maxHistoryQueries = 5

// Decide implements decision.Provider: one completion round-trip that plans
// the search strategy for a query.
func (r *Reasoner) Decide(ctx context.Context, in decision.Input) (strategy.Strategy, error) {
	content, err := r.complete(ctx, decisionPrompt(in))
	if err != nil {
		return strategy.Strategy{}, err
	}

	st, err := parseDecision(content)
	if err != nil {
		r.logger.Warn("Unparseable strategy decision",
			zap.String("model", r.model),
			zap.Error(err),
		)
		return strategy.Strategy{}, err
	}
	return st, nil
}

func decisionPrompt(in decision.Input) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Decide the optimal search strategy for this query over a personal browsing history index.\n\n")
	fmt.Fprintf(&b, "Query: %q\n", in.Query)
	if in.Category != "" {
		fmt.Fprintf(&b, "Requested category: %q\n", in.Category)
	}

	b.WriteString("\nBrowsing context:\n")
	fmt.Fprintf(&b, "- Recent categories: %s\n", joinOrNone(in.Context.RecentCategories))
	fmt.Fprintf(&b, "- Frequent sites: %s\n", joinOrNone(in.Context.FrequentSites))
	fmt.Fprintf(&b, "- Time of day: %s\n", in.Context.TimeOfDay)
	fmt.Fprintf(&b, "- Day: %s\n", in.Context.DayOfWeek)

	queries := in.History.Queries
	if len(queries) > maxHistoryQueries {
		queries = queries[len(queries)-maxHistoryQueries:]
	}
	fmt.Fprintf(&b, "\nRecent searches: %s\n", joinOrNone(queries))

	b.WriteString(`
Respond with a JSON object:
{
  "strategy": "semantic" | "hybrid" | "temporal" | "comparative",
  "search_params": {
    "query_text": "USE THE ORIGINAL QUERY - DO NOT EXPAND OR MODIFY",
    "k": 20-100,
    "category_filter": "category name or null",
    "time_window_days": number or null
  },
  "filters": {
    "min_similarity": 0.0-1.0,
    "categories": ["candidate", "categories"]
  },
  "ranking_weights": {
    "semantic_similarity": 0.0-1.0,
    "temporal_relevance": 0.0-1.0,
    "category_match": 0.0-1.0,
    "frequency": 0.0-1.0
  },
  "reasoning": "brief explanation",
  "confidence": 0.0-1.0
}

Strategy meanings:
- semantic: pure similarity search
- hybrid: similarity combined with contextual signals
- temporal: prioritize recent results
- comparative: compare multiple items (shopping flows)

Example for "laptop I saw yesterday":
{"strategy": "temporal", "search_params": {"query_text": "laptop I saw yesterday", "k": 50, "category_filter": "ecommerce", "time_window_days": 2}, "filters": {"min_similarity": 0.7, "categories": ["ecommerce"]}, "ranking_weights": {"semantic_similarity": 0.4, "temporal_relevance": 0.5, "category_match": 0.1, "frequency": 0.0}, "reasoning": "Recalls recent shopping, prioritize recency", "confidence": 0.85}

Now decide for the query above.`)

	return b.String()
}

func joinOrNone(items []string) string {
	if len(items) == 0 {
		return "(none)"
	}
	return strings.Join(items, ", ")
}

// decisionWire is the JSON shape the model is asked to produce.
type decisionWire struct {
	Strategy     string `json:"strategy"`
	SearchParams struct {
		QueryText      string  `json:"query_text"`
		K              int     `json:"k"`
		CategoryFilter *string `json:"category_filter"`
		TimeWindowDays *int    `json:"time_window_days"`
	} `json:"search_params"`
	Filters struct {
		MinSimilarity float64  `json:"min_similarity"`
		Categories    []string `json:"categories"`
	} `json:"filters"`
	RankingWeights struct {
		SemanticSimilarity float64 `json:"semantic_similarity"`
		TemporalRelevance  float64 `json:"temporal_relevance"`
		CategoryMatch      float64 `json:"category_match"`
		Frequency          float64 `json:"frequency"`
	} `json:"ranking_weights"`
	Reasoning  string  `json:"reasoning"`
	Confidence float64 `json:"confidence"`
}

// parseDecision maps the wire decision onto a Strategy. Field-level defaults
// are the caller's problem (Strategy.Normalized); this only rejects
// non-JSON payloads.
func parseDecision(content string) (strategy.Strategy, error) {
	var wire decisionWire
	if err := json.Unmarshal([]byte(content), &wire); err != nil {
		return strategy.Strategy{}, fmt.Errorf("decode strategy decision: %v: %w", err, domain.ErrReasoningProviderError)
	}

	st := strategy.Strategy{
		Kind:          strategy.Kind(wire.Strategy),
		QueryText:     wire.SearchParams.QueryText,
		Limit:         wire.SearchParams.K,
		MinSimilarity: wire.Filters.MinSimilarity,
		CategoryHints: wire.Filters.Categories,
		Weights: strategy.Weights{
			Semantic:  wire.RankingWeights.SemanticSimilarity,
			Temporal:  wire.RankingWeights.TemporalRelevance,
			Category:  wire.RankingWeights.CategoryMatch,
			Frequency: wire.RankingWeights.Frequency,
		},
		Reasoning:  wire.Reasoning,
		Confidence: wire.Confidence,
	}
	if wire.SearchParams.CategoryFilter != nil {
		st.CategoryFilter = *wire.SearchParams.CategoryFilter
	}
	if wire.SearchParams.TimeWindowDays != nil {
		st.TimeWindowDays = *wire.SearchParams.TimeWindowDays
	}

	return st, nil
}
