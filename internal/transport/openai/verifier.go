package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/pagetrail/pagetrail/internal/domain"
	domsearch "github.com/pagetrail/pagetrail/internal/domain/search"
	"github.com/pagetrail/pagetrail/internal/usecase/verify"
)

// Verify implements verify.Verifier: asks the model whether the result
// snippets actually answer the question.
func (r *Reasoner) Verify(ctx context.Context, query string, results []domsearch.ScoredResult) (verify.Verdict, error) {
	content, err := r.complete(ctx, verificationPrompt(query, results))
	if err != nil {
		return verify.Verdict{}, err
	}

	verdict, err := parseVerdict(content)
	if err != nil {
		r.logger.Warn("Unparseable verification verdict",
			zap.String("model", r.model),
			zap.Error(err),
		)
		return verify.Verdict{}, err
	}
	return verdict, nil
}

func verificationPrompt(query string, results []domsearch.ScoredResult) string {
	var b strings.Builder

	b.WriteString("You are an answer verification system. Determine if the search results actually answer the user's question.\n\n")
	fmt.Fprintf(&b, "User question: %q\n\nSearch results:\n", query)
	for i, res := range results {
		fmt.Fprintf(&b, "[Result %d] %s\n\n", i+1, res.Snippet)
	}

	b.WriteString(`Respond with a JSON object:
{
  "has_answer": true | false,
  "confidence": 0.0-1.0,
  "reasoning": "brief explanation",
  "answerable_result_indices": [0, 1]
}

Rules:
- has_answer = true if the results contain information that could answer or is related to the question
- has_answer = false ONLY if the results are completely unrelated or clearly do not contain the answer
- answerable_result_indices lists the 0-indexed results that contain relevant information
- When in doubt, set has_answer = true (better to show results than hide them)`)

	return b.String()
}

// verdictWire is the JSON shape the model is asked to produce.
type verdictWire struct {
	HasAnswer               bool    `json:"has_answer"`
	Confidence              float64 `json:"confidence"`
	Reasoning               string  `json:"reasoning"`
	AnswerableResultIndices []int   `json:"answerable_result_indices"`
}

func parseVerdict(content string) (verify.Verdict, error) {
	var wire verdictWire
	if err := json.Unmarshal([]byte(content), &wire); err != nil {
		return verify.Verdict{}, fmt.Errorf("decode verification verdict: %v: %w", err, domain.ErrReasoningProviderError)
	}

	return verify.Verdict{
		HasAnswer:       wire.HasAnswer,
		Confidence:      wire.Confidence,
		Reasoning:       wire.Reasoning,
		RelevantIndices: wire.AnswerableResultIndices,
	}, nil
}
