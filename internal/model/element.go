package model

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Element is the elemental type of a move or combatant.
type Element string

const (
	ElementNormal   Element = "normal"
	ElementFire     Element = "fire"
	ElementWater    Element = "water"
	ElementElectric Element = "electric"
	ElementGrass    Element = "grass"
	ElementIce      Element = "ice"
	ElementFighting Element = "fighting"
	ElementPoison   Element = "poison"
	ElementGround   Element = "ground"
	ElementFlying   Element = "flying"
	ElementPsychic  Element = "psychic"
	ElementBug      Element = "bug"
	ElementRock     Element = "rock"
	ElementGhost    Element = "ghost"
	ElementDragon   Element = "dragon"
	ElementDark     Element = "dark"
	ElementSteel    Element = "steel"
	ElementFairy    Element = "fairy"
)

// AllElements lists the 18 elements in chart order.
var AllElements = []Element{
	ElementNormal, ElementFire, ElementWater, ElementElectric, ElementGrass, ElementIce,
	ElementFighting, ElementPoison, ElementGround, ElementFlying, ElementPsychic, ElementBug,
	ElementRock, ElementGhost, ElementDragon, ElementDark, ElementSteel, ElementFairy,
}

// ParseElement returns the element for a case-insensitive name.
// ok is false for unknown names and for the empty string.
func ParseElement(name string) (Element, bool) {
	e := Element(strings.ToLower(strings.TrimSpace(name)))
	for _, known := range AllElements {
		if e == known {
			return e, true
		}
	}
	return "", false
}

// Title returns the display form ("Fire").
func (e Element) Title() string {
	if e == "" {
		return ""
	}
	// Caser хранит состояние, поэтому создаётся на каждый вызов
	return cases.Title(language.English).String(string(e))
}
