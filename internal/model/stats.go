package model

import "fmt"

// Stat identifies a single combat stat.
type Stat int32

const (
	StatHP Stat = iota
	StatMaxHP
	StatAttack
	StatDefense
	StatSpeed
)

// MinStat is the floor every working stat is clamped to.
const MinStat = 1

// String returns the stat name as used in roster files.
func (s Stat) String() string {
	switch s {
	case StatHP:
		return "hp"
	case StatMaxHP:
		return "max_hp"
	case StatAttack:
		return "attack"
	case StatDefense:
		return "defense"
	case StatSpeed:
		return "speed"
	default:
		return "unknown"
	}
}

// ParseStat maps a roster name to a Stat.
func ParseStat(name string) (Stat, error) {
	switch name {
	case "hp":
		return StatHP, nil
	case "max_hp", "maxHp", "maxhp":
		return StatMaxHP, nil
	case "attack":
		return StatAttack, nil
	case "defense":
		return StatDefense, nil
	case "speed":
		return StatSpeed, nil
	}
	return 0, fmt.Errorf("unknown stat %q", name)
}

// Stats holds the numeric stats of a combatant.
// Value type, copied freely.
type Stats struct {
	HP      int
	MaxHP   int
	Attack  int
	Defense int
	Speed   int
}

// Get returns the value of a single stat.
func (s Stats) Get(stat Stat) int {
	switch stat {
	case StatHP:
		return s.HP
	case StatMaxHP:
		return s.MaxHP
	case StatAttack:
		return s.Attack
	case StatDefense:
		return s.Defense
	case StatSpeed:
		return s.Speed
	}
	return 0
}

// Set assigns a single stat, clamped to MinStat.
func (s *Stats) Set(stat Stat, value int) {
	value = max(value, MinStat)
	switch stat {
	case StatHP:
		s.HP = value
	case StatMaxHP:
		s.MaxHP = value
	case StatAttack:
		s.Attack = value
	case StatDefense:
		s.Defense = value
	case StatSpeed:
		s.Speed = value
	}
}
