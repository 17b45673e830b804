package data

import "github.com/udisondev/monbattle/internal/model"

// Effectiveness multipliers.
const (
	EffectImmune  = 0.0
	EffectWeak    = 0.5
	EffectNeutral = 1.0
	EffectStrong  = 2.0
)

// matchup lists the defending elements an attacking element is strong
// against, weak against and cannot affect. The three sets are disjoint.
type matchup struct {
	strong []model.Element
	weak   []model.Element
	immune []model.Element
}

// typeChart is keyed by the attacking element only; there is no reverse lookup.
var typeChart = map[model.Element]matchup{
	model.ElementNormal: {
		weak:   []model.Element{model.ElementRock, model.ElementSteel},
		immune: []model.Element{model.ElementGhost},
	},
	model.ElementFire: {
		strong: []model.Element{model.ElementGrass, model.ElementIce, model.ElementBug, model.ElementSteel},
		weak:   []model.Element{model.ElementFire, model.ElementWater, model.ElementRock, model.ElementDragon},
	},
	model.ElementWater: {
		strong: []model.Element{model.ElementFire, model.ElementGround, model.ElementRock},
		weak:   []model.Element{model.ElementWater, model.ElementGrass, model.ElementDragon},
	},
	model.ElementElectric: {
		strong: []model.Element{model.ElementWater, model.ElementFlying},
		weak:   []model.Element{model.ElementElectric, model.ElementGrass, model.ElementDragon},
		immune: []model.Element{model.ElementGround},
	},
	model.ElementGrass: {
		strong: []model.Element{model.ElementWater, model.ElementGround, model.ElementRock},
		weak: []model.Element{
			model.ElementFire, model.ElementGrass, model.ElementPoison, model.ElementFlying,
			model.ElementBug, model.ElementDragon, model.ElementSteel,
		},
	},
	model.ElementIce: {
		strong: []model.Element{model.ElementGrass, model.ElementGround, model.ElementFlying, model.ElementDragon},
		weak:   []model.Element{model.ElementFire, model.ElementWater, model.ElementIce, model.ElementSteel},
	},
	model.ElementFighting: {
		strong: []model.Element{model.ElementNormal, model.ElementIce, model.ElementRock, model.ElementDark, model.ElementSteel},
		weak:   []model.Element{model.ElementPoison, model.ElementFlying, model.ElementPsychic, model.ElementBug, model.ElementFairy},
		immune: []model.Element{model.ElementGhost},
	},
	model.ElementPoison: {
		strong: []model.Element{model.ElementGrass, model.ElementFairy},
		weak:   []model.Element{model.ElementPoison, model.ElementGround, model.ElementRock, model.ElementGhost},
		immune: []model.Element{model.ElementSteel},
	},
	model.ElementGround: {
		strong: []model.Element{model.ElementFire, model.ElementElectric, model.ElementPoison, model.ElementRock, model.ElementSteel},
		weak:   []model.Element{model.ElementGrass, model.ElementBug},
		immune: []model.Element{model.ElementFlying},
	},
	model.ElementFlying: {
		strong: []model.Element{model.ElementGrass, model.ElementFighting, model.ElementBug},
		weak:   []model.Element{model.ElementElectric, model.ElementRock, model.ElementSteel},
	},
	model.ElementPsychic: {
		strong: []model.Element{model.ElementFighting, model.ElementPoison},
		weak:   []model.Element{model.ElementPsychic, model.ElementSteel},
		immune: []model.Element{model.ElementDark},
	},
	model.ElementBug: {
		strong: []model.Element{model.ElementGrass, model.ElementPsychic, model.ElementDark},
		weak: []model.Element{
			model.ElementFire, model.ElementFighting, model.ElementPoison, model.ElementFlying,
			model.ElementGhost, model.ElementSteel, model.ElementFairy,
		},
	},
	model.ElementRock: {
		strong: []model.Element{model.ElementFire, model.ElementIce, model.ElementFlying, model.ElementBug},
		weak:   []model.Element{model.ElementFighting, model.ElementGround, model.ElementSteel},
	},
	model.ElementGhost: {
		strong: []model.Element{model.ElementPsychic, model.ElementGhost},
		weak:   []model.Element{model.ElementDark},
		immune: []model.Element{model.ElementNormal},
	},
	model.ElementDragon: {
		strong: []model.Element{model.ElementDragon},
		weak:   []model.Element{model.ElementSteel},
		immune: []model.Element{model.ElementFairy},
	},
	model.ElementDark: {
		strong: []model.Element{model.ElementPsychic, model.ElementGhost},
		weak:   []model.Element{model.ElementFighting, model.ElementDark, model.ElementFairy},
	},
	model.ElementSteel: {
		strong: []model.Element{model.ElementIce, model.ElementRock, model.ElementFairy},
		weak:   []model.Element{model.ElementFire, model.ElementWater, model.ElementElectric, model.ElementSteel},
	},
	model.ElementFairy: {
		strong: []model.Element{model.ElementFighting, model.ElementDragon, model.ElementDark},
		weak:   []model.Element{model.ElementFire, model.ElementPoison, model.ElementSteel},
	},
}

// Effectiveness returns the damage multiplier of an attack element against
// a defending element: 0, 0.5, 1 or 2. Immunity wins over everything.
func Effectiveness(attack, defend model.Element) float64 {
	m, ok := typeChart[attack]
	if !ok {
		return EffectNeutral
	}
	switch {
	case contains(m.immune, defend):
		return EffectImmune
	case contains(m.strong, defend):
		return EffectStrong
	case contains(m.weak, defend):
		return EffectWeak
	}
	return EffectNeutral
}

// Matchup returns copies of the strong/weak/immune sets for an attack element.
func Matchup(attack model.Element) (strong, weak, immune []model.Element) {
	m := typeChart[attack]
	return clone(m.strong), clone(m.weak), clone(m.immune)
}

func contains(set []model.Element, e model.Element) bool {
	for _, x := range set {
		if x == e {
			return true
		}
	}
	return false
}

func clone(set []model.Element) []model.Element {
	if len(set) == 0 {
		return nil
	}
	out := make([]model.Element, len(set))
	copy(out, set)
	return out
}
