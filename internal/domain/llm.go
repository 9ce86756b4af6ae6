package domain

import "context"

// Completer is the shared chat-completion contract between layers.
type Completer interface {
	Complete(ctx context.Context, prompt string, temperature float32, maxTokens int) (string, error)
	Enabled() bool
}

// WebResult is one web search hit.
type WebResult struct {
	Title   string
	URL     string
	Content string
}

// WebSearcher retrieves recent web results for a query.
type WebSearcher interface {
	Search(ctx context.Context, query string) ([]WebResult, error)
	Enabled() bool
}

// HealthChecker verifies an external collaborator's availability.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}
