package combat

import (
	"math"

	"github.com/udisondev/monbattle/internal/data"
	"github.com/udisondev/monbattle/internal/model"
)

const (
	// MissSentinel is the damage value of an attack that failed its accuracy roll.
	MissSentinel = -1
	// DefaultLevel is used when a combatant has no level.
	DefaultLevel = 12

	varianceMin   = 0.85
	varianceRange = 0.15
)

// Outcome classifies an AttackResult.
type Outcome int32

const (
	OutcomeStatus Outcome = iota // 0-power move, no damage roll
	OutcomeMiss                  // accuracy roll failed
	OutcomeImmune                // landed, defender immune
	OutcomeHit                   // landed, effectiveness > 0
)

// String returns the outcome name.
func (o Outcome) String() string {
	switch o {
	case OutcomeStatus:
		return "status"
	case OutcomeMiss:
		return "miss"
	case OutcomeImmune:
		return "immune"
	case OutcomeHit:
		return "hit"
	default:
		return "unknown"
	}
}

// AttackResult is the outcome of ResolveAttack.
// Damage is MissSentinel on a miss, otherwise >= 0.
type AttackResult struct {
	Damage        int
	Effectiveness float64
	status        bool
}

// Outcome distinguishes status, miss, immune and hit results.
func (r AttackResult) Outcome() Outcome {
	switch {
	case r.status:
		return OutcomeStatus
	case r.Damage == MissSentinel:
		return OutcomeMiss
	case r.Effectiveness == 0:
		return OutcomeImmune
	default:
		return OutcomeHit
	}
}

// IsMiss reports whether the accuracy roll failed.
func (r AttackResult) IsMiss() bool {
	return r.Damage == MissSentinel
}

// ResolveAttack computes the damage of move used by attacker on defender.
//
// Order:
//  1. power 0 returns {0, 1.0} without touching rng;
//  2. accuracy roll in [0,100), miss if it exceeds move accuracy;
//  3. base = floor(((2*level/5+2)*power*attack/defense)/50 + 2);
//  4. effectiveness of move element vs defender element;
//  5. variance in [0.85, 1.00];
//  6. damage = floor(base * effectiveness * variance).
//
// An immune defender still consumes the accuracy roll and can be missed.
func ResolveAttack(attacker, defender *model.CombatantSnapshot, move model.Move, rng Rand) AttackResult {
	if move.Power == 0 {
		return AttackResult{Damage: 0, Effectiveness: data.EffectNeutral, status: true}
	}

	if rng.Float64()*100 > float64(move.Accuracy) {
		return AttackResult{Damage: MissSentinel, Effectiveness: data.EffectNeutral}
	}

	base := BaseDamage(attackerLevel(attacker), move.Power, attacker.Working.Attack, defender.Working.Defense)

	defElement := data.ResolveElement(defender.Element, defender.Species)
	effectiveness := data.Effectiveness(move.Element, defElement)

	variance := varianceMin + rng.Float64()*varianceRange

	damage := int(math.Floor(float64(base) * effectiveness * variance))
	if damage < 0 {
		damage = 0
	}
	return AttackResult{Damage: damage, Effectiveness: effectiveness}
}

// BaseDamage is the pre-modifier damage magnitude.
// Intermediate math is floating point, only the result is floored.
func BaseDamage(level, power, attack, defense int) int {
	defense = max(defense, model.MinStat)
	scaled := ((2.0*float64(level)/5.0 + 2.0) * float64(power) * float64(attack) / float64(defense)) / 50.0
	return int(math.Floor(scaled + 2.0))
}

func attackerLevel(s *model.CombatantSnapshot) int {
	if s.Level <= 0 {
		return DefaultLevel
	}
	return s.Level
}
