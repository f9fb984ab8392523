package strategy

import "fmt"

// Kind is the search strategy selected by the decision provider.
type Kind string

// Strategy kind constants.
const (
	// Semantic ranks by vector similarity alone.
	Semantic Kind = "semantic"
	// Hybrid combines semantic similarity with contextual signals.
	Hybrid Kind = "hybrid"
	// Temporal prioritizes recent results.
	Temporal Kind = "temporal"
	// Comparative compares multiple items (shopping flows).
	Comparative Kind = "comparative"
)

// IsValid checks if the kind is one of the supported values.
func (k Kind) IsValid() bool {
	return k == Semantic || k == Hybrid || k == Temporal || k == Comparative
}

// Reranks reports whether the multi-factor relevance scorer runs for this kind.
// Semantic search uses raw similarity as the ranking key.
func (k Kind) Reranks() bool {
	return k == Hybrid || k == Temporal || k == Comparative
}

// Strategy limits and defaults.
const (
	DefaultLimit = 50
	MaxLimit     = 100

	// FallbackConfidence is recorded when the decision provider is unavailable.
	FallbackConfidence = 0.3
)

// Weights are the relevance score composition factors. Taken verbatim from the
// decision provider; no renormalization happens even when the sum is not 1.
type Weights struct {
	Semantic  float64
	Temporal  float64
	Category  float64
	Frequency float64
}

// IsZero reports whether no weight field is set.
func (w Weights) IsZero() bool {
	return w.Semantic == 0 && w.Temporal == 0 && w.Category == 0 && w.Frequency == 0
}

// DefaultWeights is pure semantic ranking.
func DefaultWeights() Weights {
	return Weights{Semantic: 1.0}
}

// Strategy is a fully-specified search plan. It is a value object: the engine
// never mutates it, and QueryText is always the caller's original query text,
// never an expanded or rewritten form.
type Strategy struct {
	Kind           Kind
	QueryText      string
	Limit          int
	CategoryFilter string // "" = no category filter
	TimeWindowDays int    // 0 = no recency window
	MinSimilarity  float64
	CategoryHints  []string
	Weights        Weights
	Reasoning      string
	Confidence     float64
}

// Fallback is the degenerate strategy used when the decision provider fails:
// plain semantic search, no filters, low recorded confidence.
func Fallback(query, reason string) Strategy {
	return Strategy{
		Kind:       Semantic,
		QueryText:  query,
		Limit:      DefaultLimit,
		Weights:    DefaultWeights(),
		Reasoning:  "Fallback: " + reason,
		Confidence: FallbackConfidence,
	}
}

// Normalized applies documented per-field defaults to a possibly malformed
// strategy instead of rejecting it.
func (s Strategy) Normalized() Strategy {
	if !s.Kind.IsValid() {
		s.Kind = Semantic
	}
	if s.Limit <= 0 {
		s.Limit = DefaultLimit
	}
	if s.Limit > MaxLimit {
		s.Limit = MaxLimit
	}
	if s.MinSimilarity < 0 {
		s.MinSimilarity = 0
	}
	if s.MinSimilarity > 1 {
		s.MinSimilarity = 1
	}
	if s.TimeWindowDays < 0 {
		s.TimeWindowDays = 0
	}
	if s.Weights.IsZero() {
		s.Weights = DefaultWeights()
	}
	s.Weights = s.Weights.clamped()
	if s.Confidence < 0 {
		s.Confidence = 0
	}
	if s.Confidence > 1 {
		s.Confidence = 1
	}
	return s
}

// Summary is the human-readable strategy line carried in the response.
func (s Strategy) Summary() string {
	return fmt.Sprintf("Strategy: %s, Confidence: %.2f", s.Kind, s.Confidence)
}

func (w Weights) clamped() Weights {
	return Weights{
		Semantic:  clamp01(w.Semantic),
		Temporal:  clamp01(w.Temporal),
		Category:  clamp01(w.Category),
		Frequency: clamp01(w.Frequency),
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
