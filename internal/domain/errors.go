package domain

import "errors"

var (
	// ErrSessionNotFound signals a missing chat session.
	ErrSessionNotFound = errors.New("session not found")
	// ErrInvalidQuery signals a malformed search query.
	ErrInvalidQuery = errors.New("invalid query")
	// ErrInvalidDataset signals an unreadable or malformed dataset file.
	ErrInvalidDataset = errors.New("invalid dataset")
	// ErrLLMUnavailable signals that no language model backend responded.
	ErrLLMUnavailable = errors.New("language model unavailable")
	// ErrWebSearchDisabled signals that web search is not configured.
	ErrWebSearchDisabled = errors.New("web search disabled")
)
