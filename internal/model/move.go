package model

// MoveCategory classifies how a move interacts with stats.
type MoveCategory int32

const (
	CategoryPhysical MoveCategory = iota
	CategorySpecial
	CategoryStatus
)

// String returns the category name.
func (c MoveCategory) String() string {
	switch c {
	case CategoryPhysical:
		return "physical"
	case CategorySpecial:
		return "special"
	case CategoryStatus:
		return "status"
	default:
		return "unknown"
	}
}

// Move is an immutable catalog entry.
// Power 0 means the move never deals direct damage.
type Move struct {
	Name        string
	Category    MoveCategory
	Element     Element
	Power       int
	Accuracy    int // 0-100
	CurrentUses int
	MaxUses     int
	Effects     []Effect
}

// IsStatus reports whether the move deals no direct damage.
func (m Move) IsStatus() bool {
	return m.Power == 0
}

// Effect is a secondary move effect. Implemented by Heal and StatBoost only.
type Effect interface {
	effect()
}

// Heal restores Amount HP to the move's user.
type Heal struct {
	Amount int
}

// StatBoost adds a delta to each listed working stat of the move's user.
type StatBoost struct {
	Deltas map[Stat]int
}

func (Heal) effect()      {}
func (StatBoost) effect() {}
