package main

import (
	"fmt"

	"github.com/lox/deckodds/internal/carddb"
	"github.com/lox/deckodds/internal/config"
	"github.com/lox/deckodds/internal/deck"
)

// deckArgs are the flags shared by every subcommand that reads a deck.
type deckArgs struct {
	Deck string `arg:"" help:"Deck list file (one '2x Card Name' entry per line)" type:"path"`
	DB   string `help:"Card database YAML file" type:"path"`
}

// loadDeck resolves the deck list against the card database. The
// database path comes from the flag, then the profile, then cards.yaml.
func (a *deckArgs) loadDeck(profile *config.Profile) (*deck.Deck, error) {
	dbPath := a.DB
	if dbPath == "" {
		dbPath = profile.Defaults.CardDB
	}
	if dbPath == "" {
		dbPath = "cards.yaml"
	}

	db, err := carddb.Load(dbPath)
	if err != nil {
		return nil, err
	}

	d, err := db.LoadDeck(a.Deck)
	if err != nil {
		return nil, err
	}
	if d.NonWeaknessCount() == 0 {
		return nil, fmt.Errorf("deck %s contains only weaknesses", a.Deck)
	}
	return d, nil
}
