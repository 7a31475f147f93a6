package main

import (
	"os"

	"github.com/lox/deckodds/internal/analyzer"
)

// TraitsCmd reports trait coverage for a deck.
type TraitsCmd struct {
	deckArgs
}

func (c *TraitsCmd) Run(app *runContext) error {
	d, err := c.loadDeck(app.Profile)
	if err != nil {
		return err
	}
	renderAnalysis(os.Stdout, "trait", analyzer.Traits(d))
	return nil
}

// SlotsCmd reports equipment slot coverage for a deck.
type SlotsCmd struct {
	deckArgs
}

func (c *SlotsCmd) Run(app *runContext) error {
	d, err := c.loadDeck(app.Profile)
	if err != nil {
		return err
	}
	renderAnalysis(os.Stdout, "slot", analyzer.Slots(d))
	return nil
}
