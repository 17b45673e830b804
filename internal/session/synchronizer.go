package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
)

var (
	ErrNotStarted       = errors.New("battle session not started")
	ErrAlreadyStarted   = errors.New("battle session already started")
	ErrAlreadyCompleted = errors.New("battle session already completed")
)

// RemoteBattleSession is the local view of an open session plus the
// player's damage accumulators.
type RemoteBattleSession struct {
	SessionID        string
	TotalDamageDealt int
	TotalDamageTaken int
}

// Synchronizer opens a session before the battle and reports its outcome once.
// Safe for concurrent use.
type Synchronizer struct {
	svc Service

	mu        sync.Mutex
	session   RemoteBattleSession
	started   bool
	completed bool
}

// NewSynchronizer creates a Synchronizer over svc.
func NewSynchronizer(svc Service) *Synchronizer {
	return &Synchronizer{svc: svc}
}

// Begin opens the remote session. A failure here means the battle must not start.
func (s *Synchronizer) Begin(ctx context.Context, opponentID, combatantID string) (string, error) {
	s.mu.Lock()
	if s.started {
		s.mu.Unlock()
		return "", ErrAlreadyStarted
	}
	s.mu.Unlock()

	res, err := s.svc.BeginBattle(ctx, opponentID, combatantID)
	if err != nil {
		return "", fmt.Errorf("begin battle: %w", err)
	}
	if res.BattleSessionID == "" {
		return "", errors.New("begin battle: empty session id")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		return "", ErrAlreadyStarted
	}
	s.started = true
	s.session = RemoteBattleSession{SessionID: res.BattleSessionID}

	slog.Debug("battle session opened",
		"session", res.BattleSessionID,
		"opponent", opponentID,
		"combatant", combatantID)
	return res.BattleSessionID, nil
}

// RecordDealt adds damage the player's side dealt. Non-positive values are ignored.
func (s *Synchronizer) RecordDealt(damage int) {
	if damage <= 0 {
		return
	}
	s.mu.Lock()
	s.session.TotalDamageDealt += damage
	s.mu.Unlock()
}

// RecordTaken adds damage the player's side received. Non-positive values are ignored.
func (s *Synchronizer) RecordTaken(damage int) {
	if damage <= 0 {
		return
	}
	s.mu.Lock()
	s.session.TotalDamageTaken += damage
	s.mu.Unlock()
}

// Session returns a copy of the session state.
func (s *Synchronizer) Session() RemoteBattleSession {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session
}

// Complete reports the battle outcome. Only the first call reaches the
// service; a failed report is not retried.
func (s *Synchronizer) Complete(ctx context.Context, won bool, finalHP int) (Outcome, error) {
	s.mu.Lock()
	if !s.started {
		s.mu.Unlock()
		return Outcome{}, ErrNotStarted
	}
	if s.completed {
		s.mu.Unlock()
		return Outcome{}, ErrAlreadyCompleted
	}
	s.completed = true
	req := CompleteRequest{
		BattleSessionID: s.session.SessionID,
		Won:             won,
		DamageDealt:     s.session.TotalDamageDealt,
		DamageTaken:     s.session.TotalDamageTaken,
		FinalHP:         finalHP,
	}
	s.mu.Unlock()

	out, err := s.svc.CompleteBattle(ctx, req)
	if err != nil {
		return Outcome{}, fmt.Errorf("complete battle %s: %w", req.BattleSessionID, err)
	}

	slog.Debug("battle session completed",
		"session", req.BattleSessionID,
		"won", won,
		"accepted", out.Accepted)
	return out, nil
}
