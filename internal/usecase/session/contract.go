package session

import (
	"context"

	"github.com/cardwise/cardwise/internal/domain/session"
)

// Store persists sessions by ID. Get returns domain.ErrSessionNotFound
// for unknown IDs.
type Store interface {
	Get(ctx context.Context, id string) (*session.Session, error)
	Put(ctx context.Context, id string, s *session.Session) error
	Delete(ctx context.Context, id string) error
}
