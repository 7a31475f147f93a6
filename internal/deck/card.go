package deck

import "fmt"

// Slot describes an equipment slot occupied by a card, e.g. a weapon
// taking one hand slot.
type Slot struct {
	Name  string
	Label string
	Count int
}

// Card is one resolved card definition. Instances are immutable once
// produced by the resolver; the analysis engines only ever read them.
type Card struct {
	Name             string
	Code             string // stable database identifier, may be empty
	Weapon           bool
	Weakness         bool
	Resources        int // one-time resource bonus when drawn
	Draw             int // one-time extra-draw bonus when drawn
	ResourcesPerTurn int // granted every turn after first seen
	DrawPerTurn      int // granted every turn after first seen
	Cost             int
	Traits           []string
	Slots            []Slot
}

// Key returns the stable identity used to coalesce physical copies:
// the database code when present, otherwise the card name.
func (c Card) Key() string {
	if c.Code != "" {
		return c.Code
	}
	return c.Name
}

// HasTrait reports whether the card bears the named trait.
func (c Card) HasTrait(trait string) bool {
	for _, t := range c.Traits {
		if t == trait {
			return true
		}
	}
	return false
}

// String returns the card name, with the code appended when known.
func (c Card) String() string {
	if c.Code != "" {
		return fmt.Sprintf("%s [%s]", c.Name, c.Code)
	}
	return c.Name
}
