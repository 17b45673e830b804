package combat

import (
	"maps"
	"slices"

	"github.com/udisondev/monbattle/internal/model"
)

// EffectResult describes one applied effect, for the battle log.
type EffectResult struct {
	Healed int        // HP actually restored
	Stat   model.Stat // boosted stat, when Healed is unused
	Delta  int        // applied change after clamping
	Boost  bool
}

// ApplyEffects applies the secondary effects of move to the user.
// Healing and stat boosts always target the user, never the target.
// Called after damage resolution for the same move.
func ApplyEffects(user, _ *model.CombatantSnapshot, move model.Move) []EffectResult {
	var results []EffectResult
	for _, eff := range move.Effects {
		switch e := eff.(type) {
		case model.Heal:
			results = append(results, applyHeal(user, e))
		case model.StatBoost:
			results = append(results, applyStatBoost(user, e)...)
		}
	}
	return results
}

func applyHeal(user *model.CombatantSnapshot, h model.Heal) EffectResult {
	before := user.CurrentHP
	user.SetCurrentHP(user.CurrentHP + max(h.Amount, 0))
	return EffectResult{Healed: user.CurrentHP - before}
}

func applyStatBoost(user *model.CombatantSnapshot, b model.StatBoost) []EffectResult {
	// Map iteration order is random; sort for a stable log.
	stats := slices.Sorted(maps.Keys(b.Deltas))

	results := make([]EffectResult, 0, len(stats))
	for _, st := range stats {
		before := user.Working.Get(st)
		user.Working.Set(st, before+b.Deltas[st])
		results = append(results, EffectResult{
			Boost: true,
			Stat:  st,
			Delta: user.Working.Get(st) - before,
		})
	}

	// Lowering max HP must not leave current HP above it.
	user.SetCurrentHP(user.CurrentHP)
	return results
}
