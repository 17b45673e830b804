package session

import (
	"context"
	"fmt"
	"sync"
)

// FakeService is an in-process Service for tests.
type FakeService struct {
	mu sync.Mutex

	BeginErr    error
	CompleteErr error
	Result      Outcome

	Begins    []BeginRequest
	Completes []CompleteRequest

	next int
}

// BeginBattle records the call and returns a sequential session id.
func (f *FakeService) BeginBattle(_ context.Context, opponentID, combatantID string) (BeginResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.Begins = append(f.Begins, BeginRequest{OpponentID: opponentID, CombatantID: combatantID})
	if f.BeginErr != nil {
		return BeginResult{}, f.BeginErr
	}
	f.next++
	return BeginResult{BattleSessionID: fmt.Sprintf("session-%d", f.next)}, nil
}

// CompleteBattle records the call and returns Result.
func (f *FakeService) CompleteBattle(_ context.Context, req CompleteRequest) (Outcome, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.Completes = append(f.Completes, req)
	if f.CompleteErr != nil {
		return Outcome{}, f.CompleteErr
	}
	return f.Result, nil
}

// CompleteCalls returns a copy of recorded completion requests.
func (f *FakeService) CompleteCalls() []CompleteRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]CompleteRequest, len(f.Completes))
	copy(out, f.Completes)
	return out
}
