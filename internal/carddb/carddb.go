// Package carddb loads card definitions from a YAML database and
// resolves annotated deck-list entries against them.
package carddb

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/lox/deckodds/internal/deck"
)

// cardDef is the YAML shape of one card definition.
type cardDef struct {
	Name             string    `yaml:"name"`
	Code             string    `yaml:"code"`
	Weapon           bool      `yaml:"weapon"`
	Weakness         bool      `yaml:"weakness"`
	Resources        int       `yaml:"resources"`
	Draw             int       `yaml:"draw"`
	ResourcesPerTurn int       `yaml:"resources_per_turn"`
	DrawPerTurn      int       `yaml:"draw_per_turn"`
	Cost             int       `yaml:"cost"`
	Traits           []string  `yaml:"traits"`
	Slots            []slotDef `yaml:"slots"`
}

type slotDef struct {
	Name  string `yaml:"name"`
	Label string `yaml:"label"`
	Count int    `yaml:"count"`
}

type dbFile struct {
	Cards []cardDef `yaml:"cards"`
}

// DB is an in-memory card database indexed by code and name.
type DB struct {
	cards  []deck.Card
	byCode map[string]deck.Card
	byName map[string]deck.Card // lower-cased exact name
}

// Load reads a YAML card database from disk.
func Load(path string) (*DB, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening card database: %w", err)
	}
	defer f.Close()

	db, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parsing card database %s: %w", path, err)
	}
	return db, nil
}

// Parse decodes a YAML card database.
func Parse(r io.Reader) (*DB, error) {
	var file dbFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil {
		return nil, err
	}
	if len(file.Cards) == 0 {
		return nil, fmt.Errorf("card database has no cards")
	}

	db := &DB{
		byCode: make(map[string]deck.Card),
		byName: make(map[string]deck.Card),
	}
	for i, def := range file.Cards {
		if def.Name == "" {
			return nil, fmt.Errorf("card %d has no name", i+1)
		}
		card := def.card()

		if card.Code != "" {
			if _, dup := db.byCode[card.Code]; dup {
				return nil, fmt.Errorf("duplicate card code %q", card.Code)
			}
			db.byCode[card.Code] = card
		}
		lower := strings.ToLower(card.Name)
		if _, dup := db.byName[lower]; dup {
			return nil, fmt.Errorf("duplicate card name %q", card.Name)
		}
		db.byName[lower] = card
		db.cards = append(db.cards, card)
	}
	return db, nil
}

func (d cardDef) card() deck.Card {
	card := deck.Card{
		Name:             d.Name,
		Code:             d.Code,
		Weapon:           d.Weapon,
		Weakness:         d.Weakness,
		Resources:        d.Resources,
		Draw:             d.Draw,
		ResourcesPerTurn: d.ResourcesPerTurn,
		DrawPerTurn:      d.DrawPerTurn,
		Cost:             d.Cost,
		Traits:           d.Traits,
	}
	for _, s := range d.Slots {
		count := s.Count
		if count == 0 {
			count = 1
		}
		label := s.Label
		if label == "" {
			label = s.Name
		}
		card.Slots = append(card.Slots, deck.Slot{Name: s.Name, Label: label, Count: count})
	}
	return card
}

// Size returns the number of card definitions loaded.
func (db *DB) Size() int {
	return len(db.cards)
}

// Resolve finds a card by code, exact name, or unique case-insensitive
// name prefix, in that order of preference.
func (db *DB) Resolve(ref string) (deck.Card, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return deck.Card{}, fmt.Errorf("empty card reference")
	}

	if card, ok := db.byCode[ref]; ok {
		return card, nil
	}
	lower := strings.ToLower(ref)
	if card, ok := db.byName[lower]; ok {
		return card, nil
	}

	var matches []deck.Card
	for name, card := range db.byName {
		if strings.HasPrefix(name, lower) {
			matches = append(matches, card)
		}
	}
	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return deck.Card{}, fmt.Errorf("unknown card %q", ref)
	default:
		names := make([]string, len(matches))
		for i, c := range matches {
			names[i] = c.Name
		}
		sort.Strings(names)
		return deck.Card{}, fmt.Errorf("ambiguous card %q matches: %s", ref, strings.Join(names, ", "))
	}
}
