package battle

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/udisondev/monbattle/internal/game/combat"
	"github.com/udisondev/monbattle/internal/model"
	"github.com/udisondev/monbattle/internal/session"
)

// Scheduler defaults.
const (
	DefaultOpponentDelay   = 1200 * time.Millisecond
	DefaultCompleteTimeout = 10 * time.Second
)

var (
	ErrNoMoves          = errors.New("combatant has no moves")
	ErrCombatantFainted = errors.New("combatant has no HP left")
)

// Options tunes a Battle. Zero values pick defaults.
type Options struct {
	// Rand drives accuracy, variance and the opponent's move choice.
	Rand combat.Rand
	// OpponentDelay is the cosmetic pause before the opponent acts.
	// Negative means no pause.
	OpponentDelay time.Duration
	// CompleteTimeout bounds the completion report.
	CompleteTimeout time.Duration
	// OnUpdate receives a copy of the state after every change. It runs with
	// the battle locked and must not call back into the Battle.
	OnUpdate func(State)
}

func (o Options) withDefaults() Options {
	if o.Rand == nil {
		o.Rand = combat.NewRand(0)
	}
	if o.OpponentDelay == 0 {
		o.OpponentDelay = DefaultOpponentDelay
	} else if o.OpponentDelay < 0 {
		o.OpponentDelay = 0
	}
	if o.CompleteTimeout <= 0 {
		o.CompleteTimeout = DefaultCompleteTimeout
	}
	return o
}

// Battle is the turn scheduler. It owns the State exclusively; at most one
// turn resolution is in flight, guarded by the resolving latch, which stays
// held through the opponent's thinking delay.
type Battle struct {
	mu     sync.Mutex
	state  State
	opts   Options
	syncer *session.Synchronizer

	resolving atomic.Bool
	abandoned atomic.Bool
	cancelCh  chan struct{}
	changed   chan struct{}

	reported  chan struct{}
	outcome   session.Outcome
	reportErr error
}

// Start opens the remote session and, only if that succeeds, creates the
// battle and schedules the first turn. A begin failure is returned and no
// battle exists.
func Start(ctx context.Context, svc session.Service, player, opponent model.CombatantSnapshot, opts Options) (*Battle, error) {
	for _, c := range []*model.CombatantSnapshot{&player, &opponent} {
		if len(c.Moves) == 0 {
			return nil, fmt.Errorf("%s: %w", c.DisplayName, ErrNoMoves)
		}
		if c.IsFainted() {
			return nil, fmt.Errorf("%s: %w", c.DisplayName, ErrCombatantFainted)
		}
	}

	syncer := session.NewSynchronizer(svc)
	sessionID, err := syncer.Begin(ctx, opponent.ID, player.ID)
	if err != nil {
		return nil, fmt.Errorf("starting battle: %w", err)
	}

	b := &Battle{
		state:    NewState(player, opponent),
		opts:     opts.withDefaults(),
		syncer:   syncer,
		cancelCh: make(chan struct{}),
		changed:  make(chan struct{}),
		reported: make(chan struct{}),
	}

	slog.Info("battle started",
		"session", sessionID,
		"player", player.DisplayName,
		"opponent", opponent.DisplayName,
		"first", b.state.ActiveTurn)

	b.mu.Lock()
	b.notifyLocked()
	if b.state.Phase == PhaseOpponentTurn {
		b.resolving.Store(true)
		b.scheduleOpponentLocked()
	}
	b.mu.Unlock()

	return b, nil
}

// SelectMove resolves the player's move at index. It returns false when
// the selection was ignored: not the player's turn, a resolution already in
// progress, the battle is over or abandoned, or the index is invalid.
func (b *Battle) SelectMove(index int) bool {
	if !b.resolving.CompareAndSwap(false, true) {
		return false
	}

	b.mu.Lock()
	if b.abandoned.Load() || b.state.Phase != PhasePlayerTurn {
		b.mu.Unlock()
		b.resolving.Store(false)
		return false
	}

	res := b.resolveLocked(Action{Side: SidePlayer, MoveIndex: index})
	if !res.Applied {
		b.mu.Unlock()
		b.resolving.Store(false)
		return false
	}

	if b.state.IsOver {
		b.finishLocked()
		b.mu.Unlock()
		return true
	}

	// latch stays held until the opponent has acted
	b.scheduleOpponentLocked()
	b.mu.Unlock()
	return true
}

// SelectMoveByName resolves the player's move by name.
func (b *Battle) SelectMoveByName(name string) bool {
	b.mu.Lock()
	idx := b.state.Player.MoveByName(name)
	b.mu.Unlock()
	if idx < 0 {
		return false
	}
	return b.SelectMove(idx)
}

// Abandon stops the battle without reporting it. A pending opponent turn is
// cancelled; the remote session stays open.
func (b *Battle) Abandon() {
	if !b.abandoned.CompareAndSwap(false, true) {
		return
	}
	close(b.cancelCh)

	b.mu.Lock()
	over := b.state.IsOver
	b.mu.Unlock()

	if !over {
		slog.Info("battle abandoned", "session", b.syncer.Session().SessionID)
	}
}

// Snapshot returns a copy of the current state.
func (b *Battle) Snapshot() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state.Clone()
}

// Changed returns a channel closed on the next state change.
func (b *Battle) Changed() <-chan struct{} {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.changed
}

// Busy reports whether a turn resolution is in progress.
func (b *Battle) Busy() bool {
	return b.resolving.Load()
}

// SessionID returns the remote session id.
func (b *Battle) SessionID() string {
	return b.syncer.Session().SessionID
}

// Session returns the remote session with its damage accumulators.
func (b *Battle) Session() session.RemoteBattleSession {
	return b.syncer.Session()
}

// Reported is closed once the completion report finished, successfully or not.
func (b *Battle) Reported() <-chan struct{} {
	return b.reported
}

// Report returns the completion outcome. Valid after Reported is closed.
func (b *Battle) Report() (session.Outcome, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.outcome, b.reportErr
}

// resolveLocked applies an action and records damage for the session.
func (b *Battle) resolveLocked(a Action) TurnResult {
	next, res := Step(b.state, a, b.opts.Rand)
	if !res.Applied {
		return res
	}
	b.state = next

	if dmg := res.Attack.Damage; dmg > 0 {
		if a.Side == SidePlayer {
			b.syncer.RecordDealt(dmg)
		} else {
			b.syncer.RecordTaken(dmg)
		}
	}

	slog.Debug("turn resolved",
		"session", b.syncer.Session().SessionID,
		"turn", b.state.TurnNumber,
		"side", a.Side,
		"move", res.Move.Name,
		"outcome", res.Attack.Outcome(),
		"damage", res.Attack.Damage,
		"effectiveness", res.Attack.Effectiveness)

	b.notifyLocked()
	return res
}

func (b *Battle) notifyLocked() {
	if b.opts.OnUpdate != nil {
		b.opts.OnUpdate(b.state.Clone())
	}
	close(b.changed)
	b.changed = make(chan struct{})
}

// scheduleOpponentLocked starts the opponent's delayed turn.
// Горутина завершается после хода или при Abandon.
func (b *Battle) scheduleOpponentLocked() {
	delay := b.opts.OpponentDelay
	go func() {
		timer := time.NewTimer(delay)
		defer timer.Stop()

		select {
		case <-b.cancelCh:
			return
		case <-timer.C:
			b.opponentTurn()
		}
	}()
}

func (b *Battle) opponentTurn() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.abandoned.Load() || b.state.Phase != PhaseOpponentTurn {
		return
	}

	idx := b.opts.Rand.IntN(len(b.state.Opponent.Moves))
	b.resolveLocked(Action{Side: SideOpponent, MoveIndex: idx})

	if b.state.IsOver {
		b.finishLocked()
		return
	}
	b.resolving.Store(false)
}

// finishLocked reports the outcome in the background. The terminal state
// does not wait for it.
func (b *Battle) finishLocked() {
	won := b.state.Winner == SidePlayer
	finalHP := b.state.Player.CurrentHP
	turns := b.state.TurnNumber

	slog.Info("battle over",
		"session", b.syncer.Session().SessionID,
		"winner", b.state.Winner,
		"turns", turns)

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), b.opts.CompleteTimeout)
		defer cancel()

		out, err := b.syncer.Complete(ctx, won, finalHP)
		switch {
		case err != nil:
			slog.Warn("battle outcome not reported",
				"session", b.syncer.Session().SessionID,
				"error", err)
		case !out.Accepted:
			slog.Warn("battle outcome rejected", "session", b.syncer.Session().SessionID)
		}

		b.mu.Lock()
		b.outcome, b.reportErr = out, err
		b.mu.Unlock()
		close(b.reported)
	}()
}
