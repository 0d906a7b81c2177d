package history

import (
	"context"
	"sync"

	"github.com/seclens/seclens/internal/models"
)

// MemoryStore keeps turn logs in process memory. This is the default backend:
// history lives for the process lifetime with no eviction.
type MemoryStore struct {
	mu    sync.RWMutex
	turns map[string][]models.Turn
}

// NewMemoryStore returns an empty in-memory turn store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		turns: make(map[string][]models.Turn),
	}
}

// Append adds a turn to its session's log.
func (s *MemoryStore) Append(_ context.Context, turn *models.Turn) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.turns[turn.SessionID] = append(s.turns[turn.SessionID], *turn)
	return nil
}

// List returns the session's turns in append order.
func (s *MemoryStore) List(_ context.Context, sessionID string) ([]models.Turn, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	stored := s.turns[sessionID]
	out := make([]models.Turn, len(stored))
	copy(out, stored)
	return out, nil
}
