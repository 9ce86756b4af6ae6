// Package session manages conversation lifecycle on top of a Store.
package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/cardwise/cardwise/internal/domain"
	sess "github.com/cardwise/cardwise/internal/domain/session"
)

// Service coordinates session persistence.
type Service struct {
	store Store
}

// NewService creates a session service backed by the given store.
func NewService(store Store) *Service {
	return &Service{store: store}
}

// GetOrCreate loads the session for id, creating an empty one when the
// id is blank or unknown. It returns the (possibly new) id alongside
// the session.
func (s *Service) GetOrCreate(ctx context.Context, id string) (string, *sess.Session, error) {
	if id == "" {
		return uuid.NewString()[:8], &sess.Session{}, nil
	}
	existing, err := s.store.Get(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			return id, &sess.Session{}, nil
		}
		return "", nil, fmt.Errorf("load session: %w", err)
	}
	return id, existing, nil
}

// Save persists the session under id.
func (s *Service) Save(ctx context.Context, id string, state *sess.Session) error {
	if err := s.store.Put(ctx, id, state); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// History returns the chat messages for id.
func (s *Service) History(ctx context.Context, id string) ([]sess.Message, error) {
	state, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return state.Chat, nil
}

// Reset removes the session for id. Deleting an unknown id is not an
// error.
func (s *Service) Reset(ctx context.Context, id string) error {
	err := s.store.Delete(ctx, id)
	if err != nil && !errors.Is(err, domain.ErrSessionNotFound) {
		return fmt.Errorf("reset session: %w", err)
	}
	return nil
}
