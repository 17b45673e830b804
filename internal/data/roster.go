package data

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/udisondev/monbattle/internal/model"
)

var (
	// ErrUnknownCombatant is returned when a roster has no entry for an id.
	ErrUnknownCombatant = errors.New("unknown combatant")
	// ErrUnknownMove is returned when a combatant references a move missing from the catalog.
	ErrUnknownMove = errors.New("unknown move")
)

// rosterFile is the on-disk YAML layout.
type rosterFile struct {
	Moves      []moveDef      `yaml:"moves"`
	Combatants []combatantDef `yaml:"combatants"`
}

type moveDef struct {
	Name     string     `yaml:"name"`
	Category string     `yaml:"category"`
	Element  string     `yaml:"element"`
	Power    int        `yaml:"power"`
	Accuracy *int       `yaml:"accuracy"` // default 100
	MaxUses  int        `yaml:"max_uses"`
	Effects  *effectDef `yaml:"effects"`
}

type effectDef struct {
	Healing   *float64       `yaml:"healing"`
	StatBoost map[string]int `yaml:"stat_boost"`
}

type combatantDef struct {
	ID        string   `yaml:"id"`
	Name      string   `yaml:"name"`
	Species   string   `yaml:"species"`
	Level     int      `yaml:"level"`
	Type      string   `yaml:"type"`
	HP        int      `yaml:"hp"`
	MaxHP     int      `yaml:"max_hp"`
	CurrentHP *int     `yaml:"current_hp"` // default max_hp
	Attack    int      `yaml:"attack"`
	Defense   int      `yaml:"defense"`
	Speed     int      `yaml:"speed"`
	Moves     []string `yaml:"moves"`
}

// Roster is a loaded move catalog plus the combatants that use it.
type Roster struct {
	moves      map[string]model.Move
	combatants map[string]model.Combatant
	order      []string
}

// LoadRoster reads and validates a YAML roster file.
func LoadRoster(path string) (*Roster, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading roster %s: %w", path, err)
	}
	r, err := ParseRoster(raw)
	if err != nil {
		return nil, fmt.Errorf("parsing roster %s: %w", path, err)
	}
	slog.Info("loaded roster", "path", path, "moves", len(r.moves), "combatants", len(r.order))
	return r, nil
}

// ParseRoster decodes and validates roster YAML.
func ParseRoster(raw []byte) (*Roster, error) {
	var f rosterFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("decoding yaml: %w", err)
	}

	r := &Roster{
		moves:      make(map[string]model.Move, len(f.Moves)),
		combatants: make(map[string]model.Combatant, len(f.Combatants)),
	}

	for i := range f.Moves {
		mv, err := buildMove(&f.Moves[i])
		if err != nil {
			return nil, err
		}
		if _, dup := r.moves[mv.Name]; dup {
			return nil, fmt.Errorf("duplicate move %q", mv.Name)
		}
		r.moves[mv.Name] = mv
	}

	for i := range f.Combatants {
		c, err := r.buildCombatant(&f.Combatants[i])
		if err != nil {
			return nil, err
		}
		if _, dup := r.combatants[c.ID]; dup {
			return nil, fmt.Errorf("duplicate combatant %q", c.ID)
		}
		r.combatants[c.ID] = c
		r.order = append(r.order, c.ID)
	}

	return r, nil
}

// Move returns a catalog move by name.
func (r *Roster) Move(name string) (model.Move, bool) {
	mv, ok := r.moves[name]
	return mv, ok
}

// Combatant returns the roster entry for id.
func (r *Roster) Combatant(id string) (model.Combatant, error) {
	c, ok := r.combatants[id]
	if !ok {
		return model.Combatant{}, fmt.Errorf("combatant %q: %w", id, ErrUnknownCombatant)
	}
	return c, nil
}

// IDs returns combatant ids in file order.
func (r *Roster) IDs() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

func buildMove(def *moveDef) (model.Move, error) {
	if def.Name == "" {
		return model.Move{}, errors.New("move without name")
	}

	category, err := parseCategory(def.Category, def.Power)
	if err != nil {
		return model.Move{}, fmt.Errorf("move %q: %w", def.Name, err)
	}

	element := model.ElementNormal
	if def.Element != "" {
		e, ok := model.ParseElement(def.Element)
		if !ok {
			return model.Move{}, fmt.Errorf("move %q: unknown element %q", def.Name, def.Element)
		}
		element = e
	}

	if def.Power < 0 {
		return model.Move{}, fmt.Errorf("move %q: negative power %d", def.Name, def.Power)
	}

	accuracy := 100
	if def.Accuracy != nil {
		accuracy = *def.Accuracy
	}
	if accuracy < 0 || accuracy > 100 {
		return model.Move{}, fmt.Errorf("move %q: accuracy %d out of [0,100]", def.Name, accuracy)
	}

	mv := model.Move{
		Name:        def.Name,
		Category:    category,
		Element:     element,
		Power:       def.Power,
		Accuracy:    accuracy,
		CurrentUses: def.MaxUses,
		MaxUses:     def.MaxUses,
	}

	if def.Effects != nil {
		if def.Effects.Healing != nil {
			mv.Effects = append(mv.Effects, model.Heal{Amount: int(*def.Effects.Healing)})
		}
		if len(def.Effects.StatBoost) > 0 {
			deltas := make(map[model.Stat]int, len(def.Effects.StatBoost))
			for name, delta := range def.Effects.StatBoost {
				st, err := model.ParseStat(name)
				if err != nil {
					return model.Move{}, fmt.Errorf("move %q: %w", def.Name, err)
				}
				deltas[st] = delta
			}
			mv.Effects = append(mv.Effects, model.StatBoost{Deltas: deltas})
		}
	}

	return mv, nil
}

func parseCategory(name string, power int) (model.MoveCategory, error) {
	switch strings.ToLower(name) {
	case "physical":
		return model.CategoryPhysical, nil
	case "special":
		return model.CategorySpecial, nil
	case "status":
		return model.CategoryStatus, nil
	case "":
		if power == 0 {
			return model.CategoryStatus, nil
		}
		return model.CategoryPhysical, nil
	}
	return 0, fmt.Errorf("unknown category %q", name)
}

func (r *Roster) buildCombatant(def *combatantDef) (model.Combatant, error) {
	if def.ID == "" {
		return model.Combatant{}, errors.New("combatant without id")
	}

	var element model.Element
	if def.Type != "" {
		e, ok := model.ParseElement(def.Type)
		if !ok {
			return model.Combatant{}, fmt.Errorf("combatant %q: unknown type %q", def.ID, def.Type)
		}
		element = e
	}

	maxHP := def.MaxHP
	if maxHP == 0 {
		maxHP = def.HP
	}
	if maxHP <= 0 || def.Attack <= 0 || def.Defense <= 0 || def.Speed <= 0 {
		return model.Combatant{}, fmt.Errorf("combatant %q: stats must be positive", def.ID)
	}

	currentHP := maxHP
	if def.CurrentHP != nil {
		currentHP = *def.CurrentHP
	}

	moves := make([]model.Move, 0, len(def.Moves))
	for _, name := range def.Moves {
		mv, ok := r.moves[name]
		if !ok {
			return model.Combatant{}, fmt.Errorf("combatant %q: move %q: %w", def.ID, name, ErrUnknownMove)
		}
		moves = append(moves, mv)
	}
	if len(moves) == 0 {
		return model.Combatant{}, fmt.Errorf("combatant %q: no moves", def.ID)
	}

	return model.Combatant{
		ID:      def.ID,
		Name:    def.Name,
		Species: def.Species,
		Level:   def.Level,
		Element: element,
		Stats: model.Stats{
			HP:      def.HP,
			MaxHP:   maxHP,
			Attack:  def.Attack,
			Defense: def.Defense,
			Speed:   def.Speed,
		},
		CurrentHP: currentHP,
		Moves:     moves,
	}, nil
}
