// Package battle implements the turn-based battle state machine:
// initiative, alternating turns, faint detection and the terminal winner.
// Lifecycle: initializing → player/opponent turns → over.
package battle

import (
	"fmt"
	"slices"

	"github.com/udisondev/monbattle/internal/game/combat"
	"github.com/udisondev/monbattle/internal/model"
)

// Side identifies a battle participant.
type Side int32

const (
	SideNone     Side = 0
	SidePlayer   Side = 1
	SideOpponent Side = 2
)

// Other returns the opposing side.
func (s Side) Other() Side {
	switch s {
	case SidePlayer:
		return SideOpponent
	case SideOpponent:
		return SidePlayer
	default:
		return SideNone
	}
}

func (s Side) String() string {
	switch s {
	case SidePlayer:
		return "player"
	case SideOpponent:
		return "opponent"
	default:
		return "none"
	}
}

// Phase is the scheduler state.
type Phase int32

const (
	PhaseInitializing Phase = 0
	PhasePlayerTurn   Phase = 1
	PhaseOpponentTurn Phase = 2
	PhaseOver         Phase = 3
)

func (p Phase) String() string {
	switch p {
	case PhaseInitializing:
		return "initializing"
	case PhasePlayerTurn:
		return "player_turn"
	case PhaseOpponentTurn:
		return "opponent_turn"
	case PhaseOver:
		return "over"
	default:
		return "unknown"
	}
}

func phaseFor(s Side) Phase {
	if s == SidePlayer {
		return PhasePlayerTurn
	}
	return PhaseOpponentTurn
}

// State is the authoritative battle record. Values returned by Step are
// independent of their input; a State with IsOver set never changes again.
type State struct {
	Player   model.CombatantSnapshot
	Opponent model.CombatantSnapshot

	Phase      Phase
	ActiveTurn Side
	TurnNumber int
	Log        []string

	IsOver bool
	Winner Side
}

// Action is a move selection by one side.
type Action struct {
	Side      Side
	MoveIndex int
}

// TurnResult describes one resolved action.
// Applied is false when the action was ignored.
type TurnResult struct {
	Applied bool
	Side    Side
	Move    model.Move
	Attack  combat.AttackResult
	Effects []combat.EffectResult
	Fainted bool
}

// NewState creates the state for two combatants and decides initiative:
// the faster working speed acts first, ties go to the player.
func NewState(player, opponent model.CombatantSnapshot) State {
	first := SidePlayer
	if opponent.Working.Speed > player.Working.Speed {
		first = SideOpponent
	}

	s := State{
		Player:     player,
		Opponent:   opponent,
		Phase:      phaseFor(first),
		ActiveTurn: first,
		TurnNumber: 1,
		Winner:     SideNone,
	}
	s.Log = append(s.Log,
		fmt.Sprintf("%s vs %s!", player.DisplayName, opponent.DisplayName),
		fmt.Sprintf("%s moves first.", s.combatant(first).DisplayName),
	)
	return s
}

// Clone returns a deep enough copy: the log is copied, snapshots are values
// and their moves are immutable.
func (s State) Clone() State {
	s.Log = slices.Clone(s.Log)
	return s
}

// Combatant returns the snapshot of a side.
func (s *State) Combatant(side Side) model.CombatantSnapshot {
	return *s.combatant(side)
}

func (s *State) combatant(side Side) *model.CombatantSnapshot {
	if side == SideOpponent {
		return &s.Opponent
	}
	return &s.Player
}

// Step resolves one action and returns the next state. The input state is
// never modified. Actions after the battle ended, out of turn, or with an
// unknown move index return the input unchanged and Applied=false.
func Step(s State, a Action, rng combat.Rand) (State, TurnResult) {
	if s.IsOver || s.Phase == PhaseInitializing || s.Phase != phaseFor(a.Side) || a.Side == SideNone {
		return s, TurnResult{}
	}
	user := s.combatant(a.Side)
	if a.MoveIndex < 0 || a.MoveIndex >= len(user.Moves) {
		return s, TurnResult{}
	}

	next := s.Clone()
	user = next.combatant(a.Side)
	target := next.combatant(a.Side.Other())
	move := user.Moves[a.MoveIndex]

	res := TurnResult{Applied: true, Side: a.Side, Move: move}
	res.Attack = combat.ResolveAttack(user, target, move, rng)

	next.logf("%s used %s!", user.DisplayName, move.Name)
	switch res.Attack.Outcome() {
	case combat.OutcomeMiss:
		next.logf("%s's attack missed!", user.DisplayName)
	case combat.OutcomeImmune:
		next.logf("It doesn't affect %s...", target.DisplayName)
	case combat.OutcomeHit:
		switch {
		case res.Attack.Effectiveness > 1:
			next.logf("It's super effective!")
		case res.Attack.Effectiveness < 1:
			next.logf("It's not very effective...")
		}
		target.TakeDamage(res.Attack.Damage)
		next.logf("%s took %d damage.", target.DisplayName, res.Attack.Damage)
	}

	res.Effects = combat.ApplyEffects(user, target, move)
	for _, eff := range res.Effects {
		next.logEffect(user.DisplayName, eff)
	}

	if target.IsFainted() {
		res.Fainted = true
		next.logf("%s fainted!", target.DisplayName)
		next.IsOver = true
		next.Phase = PhaseOver
		next.Winner = a.Side
		next.ActiveTurn = SideNone
		return next, res
	}

	next.ActiveTurn = a.Side.Other()
	next.Phase = phaseFor(next.ActiveTurn)
	next.TurnNumber++
	return next, res
}

func (s *State) logf(format string, args ...any) {
	s.Log = append(s.Log, fmt.Sprintf(format, args...))
}

func (s *State) logEffect(user string, eff combat.EffectResult) {
	if !eff.Boost {
		if eff.Healed > 0 {
			s.logf("%s restored %d HP.", user, eff.Healed)
		} else {
			s.logf("%s's HP is already full.", user)
		}
		return
	}

	label := statLabel(eff.Stat)
	switch {
	case eff.Delta > 0:
		s.logf("%s's %s rose by %d!", user, label, eff.Delta)
	case eff.Delta < 0:
		s.logf("%s's %s fell by %d!", user, label, -eff.Delta)
	default:
		s.logf("%s's %s won't go any lower!", user, label)
	}
}

func statLabel(st model.Stat) string {
	switch st {
	case model.StatHP:
		return "HP"
	case model.StatMaxHP:
		return "max HP"
	default:
		return st.String()
	}
}
