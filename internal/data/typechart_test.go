package data

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/monbattle/internal/model"
)

func TestEffectiveness_AllPairsInRange(t *testing.T) {
	allowed := map[float64]bool{EffectImmune: true, EffectWeak: true, EffectNeutral: true, EffectStrong: true}

	for _, atk := range model.AllElements {
		for _, def := range model.AllElements {
			got := Effectiveness(atk, def)
			assert.True(t, allowed[got], "Effectiveness(%s, %s) = %v", atk, def, got)
		}
	}
}

func TestEffectiveness_Known(t *testing.T) {
	tests := []struct {
		atk, def model.Element
		want     float64
	}{
		{model.ElementFire, model.ElementGrass, 2.0},
		{model.ElementFire, model.ElementWater, 0.5},
		{model.ElementNormal, model.ElementGhost, 0.0},
		{model.ElementElectric, model.ElementGround, 0.0},
		{model.ElementNormal, model.ElementNormal, 1.0},
		{model.ElementDragon, model.ElementFairy, 0.0},
		{model.Element("plasma"), model.ElementFire, 1.0},
		{model.ElementFire, model.Element("plasma"), 1.0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Effectiveness(tt.atk, tt.def), "%s -> %s", tt.atk, tt.def)
	}
}

func TestEffectiveness_Asymmetric(t *testing.T) {
	// Ground cannot hit Flying, Flying hits Ground neutrally.
	assert.Equal(t, 0.0, Effectiveness(model.ElementGround, model.ElementFlying))
	assert.Equal(t, 1.0, Effectiveness(model.ElementFlying, model.ElementGround))
}

func TestTypeChart_SetsDisjoint(t *testing.T) {
	require.Len(t, typeChart, 18)
	for atk := range typeChart {
		strong, weak, immune := Matchup(atk)
		seen := make(map[model.Element]int)
		for _, set := range [][]model.Element{strong, weak, immune} {
			for _, e := range set {
				seen[e]++
			}
		}
		for e, n := range seen {
			assert.Equal(t, 1, n, "%s appears in %d sets of %s", e, n, atk)
		}
	}
}

func TestMatchup_ReturnsCopies(t *testing.T) {
	strong, _, _ := Matchup(model.ElementFire)
	require.NotEmpty(t, strong)
	strong[0] = model.ElementNormal
	assert.Equal(t, 2.0, Effectiveness(model.ElementFire, model.ElementGrass))
}
