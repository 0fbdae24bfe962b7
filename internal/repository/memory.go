package repository

import (
	"context"
	"sync"

	"github.com/rocketscienceinc/tictactoe-history/internal/session"
)

type memorySession struct {
	mu       sync.RWMutex
	sessions map[string]session.State
}

// NewMemorySessionRepository keeps sessions in process memory. Stored state is copied on
// the way in and out, so callers never share a session with the store.
func NewMemorySessionRepository() SessionRepository {
	return &memorySession{
		sessions: make(map[string]session.State),
	}
}

func (that *memorySession) CreateOrUpdate(_ context.Context, s *session.Session) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.sessions[s.ID] = s.State()

	return nil
}

func (that *memorySession) GetByID(_ context.Context, id string) (*session.Session, error) {
	that.mu.RLock()
	state, ok := that.sessions[id]
	that.mu.RUnlock()

	if !ok {
		return nil, ErrSessionNotFound
	}

	return session.FromState(state)
}

func (that *memorySession) DeleteByID(_ context.Context, id string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	if _, ok := that.sessions[id]; !ok {
		return ErrSessionNotFound
	}

	delete(that.sessions, id)

	return nil
}
