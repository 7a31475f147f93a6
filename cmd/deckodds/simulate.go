package main

import (
	"bytes"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"

	"github.com/lox/deckodds/internal/fileutil"
	"github.com/lox/deckodds/internal/progress"
	"github.com/lox/deckodds/internal/simulator"
)

// SimulateCmd runs the Monte Carlo aggregator.
type SimulateCmd struct {
	deckArgs

	Hand         int     `short:"H" help:"Opening hand size (default from profile)"`
	Draws        int     `short:"n" help:"Post-opening draws (default from profile)" default:"-1"`
	Samples      int     `short:"s" help:"Sample count (default from profile)"`
	ByDraw       int     `help:"Draw threshold for per-card seen-by rates (default: all draws)"`
	CardsPerTurn float64 `help:"Cards consumed per turn for the in-hand projection"`
	Seed         *int64  `help:"Random seed for reproducible results"`
	Workers      int     `help:"Worker goroutines (default: one per CPU)"`
	Quiet        bool    `short:"q" help:"Suppress progress output"`
	Output       string  `short:"o" help:"Write the report to a file instead of stdout" type:"path"`
}

func (c *SimulateCmd) Run(app *runContext) error {
	d, err := c.loadDeck(app.Profile)
	if err != nil {
		return err
	}

	seed := time.Now().UnixNano()
	if c.Seed != nil {
		seed = *c.Seed
	}

	req := simulator.Request{
		Deck:         d,
		HandSize:     c.Hand,
		NextDraws:    c.Draws,
		Samples:      c.Samples,
		ByDraw:       c.ByDraw,
		CardsPerTurn: c.CardsPerTurn,
		Seed:         seed,
		Workers:      c.Workers,
		Logger:       app.Logger.WithPrefix("simulate"),
	}
	applyProfileDefaults(&req, app)

	var bar *progress.Bar
	var dots *progress.DotReporter
	switch {
	case c.Quiet:
		req.Progress = progress.Silent{}
	case isatty.IsTerminal(os.Stderr.Fd()):
		bar = progress.NewBar()
		req.Progress = bar
	default:
		dots = progress.NewDotReporter(os.Stderr)
		req.Progress = dots
	}

	start := time.Now()
	result, err := simulator.RunMonteCarlo(req)
	if bar != nil {
		bar.Wait()
	}
	if dots != nil {
		dots.Finish()
	}
	if err != nil {
		return err
	}

	app.Logger.Debug("monte carlo complete",
		"samples", result.Samples, "elapsed", time.Since(start).Truncate(time.Millisecond))

	if c.Output != "" {
		lipgloss.SetColorProfile(termenv.Ascii) // no escape codes in files
		var buf bytes.Buffer
		renderMonteCarlo(&buf, result)
		return fileutil.WriteFileAtomic(c.Output, buf.Bytes(), 0o644)
	}
	renderMonteCarlo(os.Stdout, result)
	return nil
}
