package openai

import (
	"context"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/pagetrail/pagetrail/internal/domain"
)

// Reasoner is a chat-completion client used for strategy planning and answer
// verification. Every call requests a JSON object response.
type Reasoner struct {
	client *openai.Client
	model  string
	logger *zap.Logger
}

// ReasonerConfig holds the reasoning provider settings.
type ReasonerConfig struct {
	APIKey  string
	BaseURL string
	Model   string
	Logger  *zap.Logger
}

// NewReasoner creates an OpenAI-compatible chat completion client.
func NewReasoner(cfg *ReasonerConfig) *Reasoner {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}

	return &Reasoner{
		client: openai.NewClientWithConfig(clientCfg),
		model:  cfg.Model,
		logger: cfg.Logger,
	}
}

// complete sends a single-message chat completion and returns the raw content.
func (r *Reasoner) complete(ctx context.Context, prompt string) (string, error) {
	resp, err := r.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: r.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %v: %w", err, domain.ErrReasoningProviderError)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("empty completion response: %w", domain.ErrReasoningProviderError)
	}

	return stripFences(resp.Choices[0].Message.Content), nil
}

// stripFences removes a markdown code fence wrapper some models emit even in
// JSON mode.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
