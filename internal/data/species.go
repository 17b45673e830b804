package data

import (
	"strings"

	"github.com/udisondev/monbattle/internal/model"
)

// speciesRule maps name fragments to an element.
type speciesRule struct {
	keywords []string
	element  model.Element
}

// speciesRules is evaluated top to bottom, first match wins
// ("Flamewing" is Fire, not Flying).
var speciesRules = []speciesRule{
	{[]string{"fire", "flame", "blaze", "char", "pyro", "ember", "magma"}, model.ElementFire},
	{[]string{"water", "aqua", "hydro", "squirt", "tide", "wave", "bubble"}, model.ElementWater},
	{[]string{"leaf", "grass", "bulb", "vine", "flora", "seed", "sprout"}, model.ElementGrass},
	{[]string{"volt", "spark", "electr", "pika", "thunder", "zap"}, model.ElementElectric},
	{[]string{"frost", "snow", "glaci", "ice", "cryo"}, model.ElementIce},
	{[]string{"dragon", "drake", "wyrm", "wyvern"}, model.ElementDragon},
	{[]string{"shadow", "dark", "umbr", "night"}, model.ElementDark},
	{[]string{"ghost", "shade", "spook", "phantom", "gast"}, model.ElementGhost},
	{[]string{"psy", "mind", "abra"}, model.ElementPsychic},
	{[]string{"punch", "fist", "brawl", "fight", "machop"}, model.ElementFighting},
	{[]string{"venom", "toxi", "poison", "sludge"}, model.ElementPoison},
	{[]string{"steel", "iron", "metal", "magne"}, model.ElementSteel},
	{[]string{"rock", "stone", "geo", "boulder", "onix"}, model.ElementRock},
	{[]string{"ground", "terra", "mud", "sand", "dig"}, model.ElementGround},
	{[]string{"bird", "wing", "sky", "aero", "pidge", "feather"}, model.ElementFlying},
	{[]string{"bug", "beetle", "pede", "moth", "pillar", "pinsir"}, model.ElementBug},
	{[]string{"fairy", "pixie", "fae", "clef"}, model.ElementFairy},
}

// InferElement guesses an element from a species name.
// Case-insensitive substring match; Normal when nothing matches.
func InferElement(species string) model.Element {
	name := strings.ToLower(species)
	if name == "" {
		return model.ElementNormal
	}
	for _, rule := range speciesRules {
		for _, kw := range rule.keywords {
			if strings.Contains(name, kw) {
				return rule.element
			}
		}
	}
	return model.ElementNormal
}

// ResolveElement returns the explicit element if set, else the inferred one.
func ResolveElement(explicit model.Element, species string) model.Element {
	if explicit != "" {
		return explicit
	}
	return InferElement(species)
}

// NewSnapshot builds the battle working copy of a roster entry,
// inferring its element from the species when none is given.
func NewSnapshot(c model.Combatant) model.CombatantSnapshot {
	return model.NewSnapshot(c, ResolveElement(c.Element, c.Species))
}
