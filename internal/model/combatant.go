package model

// Combatant is a roster entry as supplied by the caller.
// Element may be empty; CurrentHP is not necessarily full.
type Combatant struct {
	ID        string
	Name      string
	Species   string
	Level     int
	Element   Element
	Stats     Stats
	CurrentHP int
	Moves     []Move
}

// CombatantSnapshot is the in-battle working copy of a Combatant.
// Invariants: 0 <= CurrentHP <= Working.MaxHP, every Working stat >= MinStat.
type CombatantSnapshot struct {
	ID          string
	DisplayName string
	Species     string
	Level       int
	Element     Element
	Base        Stats
	Working     Stats
	CurrentHP   int
	Moves       []Move
}

// NewSnapshot builds a working copy of c with the resolved element.
// Working stats start as a copy of the base stats clamped to MinStat.
func NewSnapshot(c Combatant, element Element) CombatantSnapshot {
	name := c.Name
	if name == "" {
		name = c.Species
	}

	base := c.Stats
	if base.MaxHP <= 0 {
		base.MaxHP = base.HP
	}

	working := base
	for _, st := range []Stat{StatHP, StatMaxHP, StatAttack, StatDefense, StatSpeed} {
		working.Set(st, working.Get(st))
	}

	s := CombatantSnapshot{
		ID:          c.ID,
		DisplayName: name,
		Species:     c.Species,
		Level:       c.Level,
		Element:     element,
		Base:        base,
		Working:     working,
		Moves:       c.Moves,
	}
	s.SetCurrentHP(c.CurrentHP)
	return s
}

// SetCurrentHP assigns current HP clamped to [0, Working.MaxHP].
func (s *CombatantSnapshot) SetCurrentHP(hp int) {
	s.CurrentHP = min(max(hp, 0), s.Working.MaxHP)
}

// TakeDamage subtracts damage from current HP, clamped at 0.
func (s *CombatantSnapshot) TakeDamage(damage int) {
	if damage <= 0 {
		return
	}
	s.SetCurrentHP(s.CurrentHP - damage)
}

// IsFainted reports whether current HP reached 0.
func (s *CombatantSnapshot) IsFainted() bool {
	return s.CurrentHP <= 0
}

// MoveByName returns the index of a known move, or -1.
func (s *CombatantSnapshot) MoveByName(name string) int {
	for i := range s.Moves {
		if s.Moves[i].Name == name {
			return i
		}
	}
	return -1
}
