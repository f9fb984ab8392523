package search

import (
	"fmt"
	"math"
	"strings"
	"time"

	domsearch "github.com/pagetrail/pagetrail/internal/domain/search"
	"github.com/pagetrail/pagetrail/internal/domain/strategy"
)

const (
	snippetRunes  = 200
	maxHighlights = 5
	// highlightContext is the number of tokens kept on each side of a
	// matched query term.
	highlightContext = 3
	// minHighlightLen filters stop-word length tokens out of highlighting.
	minHighlightLen = 3
)

// enrich converts scored candidates into presentable results: snippet,
// explanation text, and highlight phrases.
func enrich(scored []scoredCandidate, st strategy.Strategy, now time.Time) []domsearch.ScoredResult {
	results := make([]domsearch.ScoredResult, len(scored))
	for i, sc := range scored {
		page := sc.cand.Page

		title := page.Title
		if title == "" {
			title = "Untitled"
		}
		category := page.Category
		if category == "" {
			category = "other"
		}

		results[i] = domsearch.ScoredResult{
			URL:               page.URL,
			Title:             title,
			Snippet:           snippet(page.Chunk),
			Category:          category,
			Similarity:        sc.cand.Similarity,
			RelevanceScore:    sc.relevance,
			TemporalRelevance: sc.temporal,
			CategoryMatch:     sc.categoryMatch,
			Explanation:       explain(st.Kind, sc.cand, now),
			Highlights:        extractHighlights(page.Chunk, st.QueryText),
		}
	}
	return results
}

func explain(kind strategy.Kind, c domsearch.Candidate, now time.Time) string {
	percent := int(math.Round(c.Similarity * 100))

	switch kind {
	case strategy.Temporal:
		ageDays := int((now.Unix() - c.Page.Timestamp) / 86400)
		switch ageDays {
		case 0:
			return fmt.Sprintf("Visited today, %d%% match", percent)
		case 1:
			return fmt.Sprintf("Visited yesterday, %d%% match", percent)
		default:
			return fmt.Sprintf("Visited %d days ago, %d%% match", ageDays, percent)
		}
	case strategy.Comparative:
		return fmt.Sprintf("Product match: %d%%", percent)
	default:
		return fmt.Sprintf("Relevance: %d%%", percent)
	}
}

// extractHighlights emits a context window around each chunk token that
// matches a query token longer than minHighlightLen characters, in
// first-occurrence order, at most maxHighlights windows. Overlapping
// windows are kept as-is, not deduped.
func extractHighlights(text, query string) []string {
	queryTokens := make(map[string]struct{})
	for _, w := range strings.Fields(strings.ToLower(query)) {
		queryTokens[w] = struct{}{}
	}
	if len(queryTokens) == 0 {
		return nil
	}

	textTokens := strings.Fields(strings.ToLower(text))

	var highlights []string
	for i, w := range textTokens {
		if len(w) <= minHighlightLen {
			continue
		}
		if _, ok := queryTokens[w]; !ok {
			continue
		}
		start := max(0, i-highlightContext)
		end := min(len(textTokens), i+highlightContext+1)
		highlights = append(highlights, strings.Join(textTokens[start:end], " "))
		if len(highlights) >= maxHighlights {
			break
		}
	}
	return highlights
}

// snippet keeps the first snippetRunes characters of the raw chunk, not
// word-boundary aware.
func snippet(chunk string) string {
	runes := []rune(chunk)
	if len(runes) <= snippetRunes {
		return chunk
	}
	return string(runes[:snippetRunes])
}
