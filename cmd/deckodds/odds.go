package main

import (
	"os"

	"github.com/lox/deckodds/internal/odds"
)

// OddsCmd answers a closed-form draw-odds question. It works from
// counts alone, so no deck list or card database is needed.
type OddsCmd struct {
	DeckSize   int `arg:"" help:"Total cards in the deck"`
	Copies     int `arg:"" help:"Copies of the target card"`
	Weaknesses int `short:"w" help:"Weakness cards in the deck" default:"0"`
	Hand       int `short:"H" help:"Opening hand size (default from profile)"`
	Draws      int `short:"n" help:"Post-opening draw horizon (default from profile)" default:"-1"`
}

func (c *OddsCmd) Run(app *runContext) error {
	req := odds.Request{
		DeckSize:     c.DeckSize,
		Weaknesses:   c.Weaknesses,
		TargetCopies: c.Copies,
		HandSize:     c.Hand,
		Horizon:      c.Draws,
	}
	if req.HandSize == 0 {
		req.HandSize = app.Profile.Defaults.HandSize
	}
	if req.Horizon < 0 {
		req.Horizon = app.Profile.Defaults.Draws
	}

	result, err := odds.Calculate(req)
	if err != nil {
		return err
	}

	renderOdds(os.Stdout, req, result)
	return nil
}
