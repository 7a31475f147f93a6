package main

import (
	"os"
	"time"

	"github.com/lox/deckodds/internal/randutil"
	"github.com/lox/deckodds/internal/simulator"
)

// SampleCmd reports one concrete shuffle. It seeds from the clock on
// purpose: the tool shows a single possible game, not an average.
type SampleCmd struct {
	deckArgs

	Hand         int     `short:"H" help:"Opening hand size (default from profile)"`
	Draws        int     `short:"n" help:"Post-opening draws (default from profile)" default:"-1"`
	CardsPerTurn float64 `help:"Cards consumed per turn for the in-hand projection"`
	Seed         *int64  `help:"Random seed, for replaying a specific shuffle"`
}

func (c *SampleCmd) Run(app *runContext) error {
	d, err := c.loadDeck(app.Profile)
	if err != nil {
		return err
	}

	req := simulator.Request{
		Deck:         d,
		HandSize:     c.Hand,
		NextDraws:    c.Draws,
		CardsPerTurn: c.CardsPerTurn,
		Logger:       app.Logger.WithPrefix("sample"),
	}
	applyProfileDefaults(&req, app)

	seed := time.Now().UnixNano()
	if c.Seed != nil {
		seed = *c.Seed
	}
	app.Logger.Debug("sampling one shuffle", "deck", d.Size(), "seed", seed)

	result, err := simulator.RunSample(req, randutil.New(seed))
	if err != nil {
		return err
	}

	renderSample(os.Stdout, result)
	return nil
}

// applyProfileDefaults fills unset request fields from the profile.
func applyProfileDefaults(req *simulator.Request, app *runContext) {
	defaults := app.Profile.Defaults
	if req.HandSize == 0 {
		req.HandSize = defaults.HandSize
	}
	if req.NextDraws < 0 {
		req.NextDraws = defaults.Draws
	}
	if req.CardsPerTurn == 0 {
		req.CardsPerTurn = defaults.CardsPerTurn
	}
	if req.Samples == 0 {
		req.Samples = defaults.Samples
	}
	if req.Workers == 0 {
		req.Workers = defaults.Workers
	}
}
