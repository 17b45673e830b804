package combat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/monbattle/internal/model"
)

func TestApplyEffects_HealClampedToMax(t *testing.T) {
	user := testSnapshot(12, 30, 10, model.ElementNormal)
	user.SetCurrentHP(user.Working.MaxHP - 5)
	target := testSnapshot(12, 30, 10, model.ElementNormal)
	target.SetCurrentHP(10)

	move := model.Move{Name: "Recover", Effects: []model.Effect{model.Heal{Amount: 15}}}
	res := ApplyEffects(user, target, move)

	assert.Equal(t, user.Working.MaxHP, user.CurrentHP)
	assert.Equal(t, 10, target.CurrentHP, "heal never touches the target")
	require.Len(t, res, 1)
	assert.Equal(t, 5, res[0].Healed)
}

func TestApplyEffects_StatBoostFloor(t *testing.T) {
	user := testSnapshot(12, 30, 10, model.ElementNormal)
	move := model.Move{Name: "Collapse", Effects: []model.Effect{
		model.StatBoost{Deltas: map[model.Stat]int{model.StatAttack: -100, model.StatSpeed: 3}},
	}}

	res := ApplyEffects(user, nil, move)

	assert.Equal(t, 1, user.Working.Attack)
	assert.Equal(t, 13, user.Working.Speed)
	assert.Equal(t, 30, user.Base.Attack, "base stats untouched")
	require.Len(t, res, 2)
	// sorted by stat: attack before speed
	assert.Equal(t, EffectResult{Boost: true, Stat: model.StatAttack, Delta: -29}, res[0])
	assert.Equal(t, EffectResult{Boost: true, Stat: model.StatSpeed, Delta: 3}, res[1])

	for range 20 {
		ApplyEffects(user, nil, move)
	}
	for _, st := range []model.Stat{model.StatHP, model.StatMaxHP, model.StatAttack, model.StatDefense, model.StatSpeed} {
		assert.GreaterOrEqual(t, user.Working.Get(st), 1, st.String())
	}
}

func TestApplyEffects_MaxHPDropClampsCurrent(t *testing.T) {
	user := testSnapshot(12, 30, 10, model.ElementNormal)
	require.Equal(t, 50, user.CurrentHP)

	ApplyEffects(user, nil, model.Move{Effects: []model.Effect{
		model.StatBoost{Deltas: map[model.Stat]int{model.StatMaxHP: -20}},
	}})

	assert.Equal(t, 30, user.Working.MaxHP)
	assert.Equal(t, 30, user.CurrentHP)
}

func TestApplyEffects_NoEffects(t *testing.T) {
	user := testSnapshot(12, 30, 10, model.ElementNormal)
	before := *user
	assert.Empty(t, ApplyEffects(user, nil, model.Move{Name: "Tackle", Power: 40}))
	assert.Equal(t, before, *user)
}
