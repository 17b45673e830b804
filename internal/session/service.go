// Package session reconciles a local battle with the remote session service.
// A session is opened before the first turn and completed exactly once when
// the battle ends.
package session

import (
	"context"
	"fmt"
)

// BeginRequest is the body of the begin-battle call.
type BeginRequest struct {
	OpponentID  string `json:"opponentId"`
	CombatantID string `json:"combatantId"`
}

// BeginResult is returned by a successful begin-battle call.
type BeginResult struct {
	BattleSessionID string `json:"battleSessionId"`
}

// CompleteRequest reports the outcome of a finished battle.
type CompleteRequest struct {
	BattleSessionID string `json:"battleSessionId"`
	Won             bool   `json:"won"`
	DamageDealt     int    `json:"damageDealt"`
	DamageTaken     int    `json:"damageTaken"`
	FinalHP         int    `json:"finalHp"`
}

// Rewards are derived by the service from a completed battle.
type Rewards struct {
	Experience int `json:"experience"`
	Coins      int `json:"coins"`
}

// Outcome is the service's answer to a completion report.
type Outcome struct {
	Accepted       bool     `json:"accepted"`
	DerivedRewards *Rewards `json:"derivedRewards,omitempty"`
}

// Envelope wraps every service response.
// Success false is a failure even when transport succeeded.
type Envelope[T any] struct {
	Success bool   `json:"success"`
	Data    *T     `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

// RemoteError is a failure reported inside an envelope.
type RemoteError struct {
	Op      string
	Status  int
	Message string
}

func (e *RemoteError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s: remote failure (status %d)", e.Op, e.Status)
	}
	return fmt.Sprintf("%s: %s (status %d)", e.Op, e.Message, e.Status)
}

// Service is the remote battle session API.
type Service interface {
	BeginBattle(ctx context.Context, opponentID, combatantID string) (BeginResult, error)
	CompleteBattle(ctx context.Context, req CompleteRequest) (Outcome, error)
}
