package model

import (
	"errors"
	"time"
)

var (
	ErrSessionNotFound = errors.New("battle session not found")
	ErrSessionClosed   = errors.New("battle session already completed")
)

// SessionStatus is the server-side lifecycle of a battle session.
type SessionStatus string

const (
	SessionOpen      SessionStatus = "open"
	SessionCompleted SessionStatus = "completed"
)

// BattleResult is what a client reports when a battle ends,
// plus the rewards the server derived from it.
type BattleResult struct {
	Won         bool
	DamageDealt int
	DamageTaken int
	FinalHP     int
	Experience  int
	Coins       int
}

// BattleSession is the server-held record of one battle.
type BattleSession struct {
	ID          string
	OpponentID  string
	CombatantID string
	Status      SessionStatus
	Result      BattleResult
	CreatedAt   time.Time
	CompletedAt time.Time // zero while open
}
