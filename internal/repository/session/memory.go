// Package session provides Store implementations for chat sessions.
package session

import (
	"context"
	"sync"

	"github.com/cardwise/cardwise/internal/domain"
	"github.com/cardwise/cardwise/internal/domain/card"
	sess "github.com/cardwise/cardwise/internal/domain/session"
)

// MemoryStore keeps sessions in process memory. Suitable for single
// instance deployments and tests.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*sess.Session
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]*sess.Session)}
}

// Get retrieves a session by id. The result is a deep copy, so
// concurrent callers never share mutable state — the same isolation the
// Redis store gets from its JSON round-trip.
func (m *MemoryStore) Get(_ context.Context, id string) (*sess.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return cloneSession(s), nil
}

// Put stores a deep copy of the session under id.
func (m *MemoryStore) Put(_ context.Context, id string, s *sess.Session) error {
	cp := cloneSession(s)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[id] = cp
	return nil
}

// Delete removes a session. Unknown ids are a no-op.
func (m *MemoryStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}

func cloneSession(s *sess.Session) *sess.Session {
	cp := &sess.Session{
		Chat:      append([]sess.Message(nil), s.Chat...),
		Profile:   s.Profile,
		LastCards: append([]card.Record(nil), s.LastCards...),
	}
	cp.Profile.Categories = append([]string(nil), s.Profile.Categories...)
	cp.Profile.Income = cloneInt(s.Profile.Income)
	cp.Profile.Cibil = cloneInt(s.Profile.Cibil)
	cp.Profile.MaxFee = cloneInt(s.Profile.MaxFee)
	return cp
}

func cloneInt(p *int) *int {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
