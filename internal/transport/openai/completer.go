// Package openai implements chat completion via the OpenAI-compatible API.
package openai

import (
	"context"
	"errors"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/cardwise/cardwise/internal/domain"
)

// Compile-time check: Completer implements domain.Completer.
var _ domain.Completer = (*Completer)(nil)

// fallbackModels are tried in order when the configured model rejects
// the request, so a misconfigured model name degrades instead of failing.
var fallbackModels = []string{"gpt-4o-mini", "gpt-4o", "gpt-3.5-turbo"}

// Completer is a chat completion provider using the OpenAI-compatible API.
type Completer struct {
	client *openai.Client
	model  string
	logger *zap.Logger
}

// Config holds the completion provider settings.
type Config struct {
	APIKey  string
	BaseURL string
	Model   string
	Logger  *zap.Logger
}

// NewCompleter creates an OpenAI-compatible completion provider. A nil
// client (empty API key) yields a disabled completer.
func NewCompleter(cfg *Config) *Completer {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	var client *openai.Client
	if cfg.APIKey != "" {
		clientCfg := openai.DefaultConfig(cfg.APIKey)
		if cfg.BaseURL != "" {
			clientCfg.BaseURL = cfg.BaseURL
		}
		client = openai.NewClientWithConfig(clientCfg)
	}

	model := cfg.Model
	if model == "" {
		model = fallbackModels[0]
	}

	return &Completer{client: client, model: model, logger: logger}
}

// Enabled reports whether an API key was configured.
func (c *Completer) Enabled() bool {
	return c.client != nil
}

// Complete implements domain.Completer. The configured model is tried
// first, then the fallback list; the first success wins.
func (c *Completer) Complete(ctx context.Context, prompt string, temperature float32, maxTokens int) (string, error) {
	if c.client == nil {
		return "", domain.ErrLLMUnavailable
	}

	models := make([]string, 0, len(fallbackModels)+1)
	models = append(models, c.model)
	for _, m := range fallbackModels {
		if m != c.model {
			models = append(models, m)
		}
	}

	var lastErr error
	for _, model := range models {
		resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
			Model:       model,
			Temperature: temperature,
			MaxTokens:   maxTokens,
			Messages: []openai.ChatCompletionMessage{
				{Role: openai.ChatMessageRoleUser, Content: prompt},
			},
		})
		if err != nil {
			lastErr = err
			c.logger.Debug("completion attempt failed",
				zap.String("model", model), zap.Error(err))
			continue
		}
		if len(resp.Choices) == 0 {
			lastErr = errors.New("empty completion response")
			continue
		}
		return resp.Choices[0].Message.Content, nil
	}

	return "", fmt.Errorf("completion failed: %v: %w", lastErr, domain.ErrLLMUnavailable)
}

// HealthCheck verifies API availability via ListModels (free endpoint).
func (c *Completer) HealthCheck(ctx context.Context) error {
	if c.client == nil {
		return domain.ErrLLMUnavailable
	}
	if _, err := c.client.ListModels(ctx); err != nil {
		return fmt.Errorf("list models: %w", err)
	}
	return nil
}
