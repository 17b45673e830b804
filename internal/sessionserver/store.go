// Package sessionserver serves the battle session API: opening a session
// before a battle and accepting its outcome once.
package sessionserver

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/udisondev/monbattle/internal/model"
)

// Store persists battle sessions.
// Complete returns model.ErrSessionNotFound or model.ErrSessionClosed.
type Store interface {
	Create(ctx context.Context, opponentID, combatantID string) (model.BattleSession, error)
	Complete(ctx context.Context, id string, result model.BattleResult) (model.BattleSession, error)
	Get(ctx context.Context, id string) (model.BattleSession, error)
}

// MemoryStore keeps sessions in memory.
// Thread-safe for concurrent access.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*model.BattleSession
	now      func() time.Time
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]*model.BattleSession, 64),
		now:      time.Now,
	}
}

// Create opens a new session.
func (m *MemoryStore) Create(_ context.Context, opponentID, combatantID string) (model.BattleSession, error) {
	s := &model.BattleSession{
		ID:          uuid.NewString(),
		OpponentID:  opponentID,
		CombatantID: combatantID,
		Status:      model.SessionOpen,
		CreatedAt:   m.now(),
	}

	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()

	return *s, nil
}

// Complete closes an open session with its result.
func (m *MemoryStore) Complete(_ context.Context, id string, result model.BattleResult) (model.BattleSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	if !ok {
		return model.BattleSession{}, model.ErrSessionNotFound
	}
	if s.Status != model.SessionOpen {
		return *s, model.ErrSessionClosed
	}

	s.Status = model.SessionCompleted
	s.Result = result
	s.CompletedAt = m.now()
	return *s, nil
}

// Get returns a session by id.
func (m *MemoryStore) Get(_ context.Context, id string) (model.BattleSession, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.sessions[id]
	if !ok {
		return model.BattleSession{}, model.ErrSessionNotFound
	}
	return *s, nil
}

// Count returns the number of stored sessions.
func (m *MemoryStore) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
