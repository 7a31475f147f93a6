// Package simulator runs shuffle-and-draw passes over a resolved deck:
// a single reported sample, or a Monte Carlo aggregate of many.
package simulator

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/lox/deckodds/internal/deck"
)

// ProgressReporter receives completion updates during long runs.
type ProgressReporter interface {
	Progress(done, total int)
}

// Request configures a simulation run. Validation happens before any
// accumulation begins; there are no partial results.
type Request struct {
	Deck         *deck.Deck
	HandSize     int     // opening-hand size H
	NextDraws    int     // post-opening draws N
	CardsPerTurn float64 // consumption rate for the cards-in-hand projection
	Samples      int     // Monte Carlo sample count S
	ByDraw       int     // draw-count threshold for per-card by-draw rates
	Seed         int64
	Workers      int // 0 means one per CPU

	Logger   *log.Logger
	Progress ProgressReporter
}

// Validate checks the request bounds against the deck. All failures
// here are fatal; the engines assume a validated request.
func (r *Request) Validate() error {
	if r.Deck == nil || r.Deck.Size() == 0 {
		return fmt.Errorf("deck is empty")
	}
	if r.HandSize < 1 {
		return fmt.Errorf("opening hand size must be positive, got %d", r.HandSize)
	}
	if nonWeak := r.Deck.NonWeaknessCount(); r.HandSize > nonWeak {
		return fmt.Errorf("opening hand of %d exceeds the %d non-weakness cards in the deck",
			r.HandSize, nonWeak)
	}
	if r.NextDraws < 0 {
		return fmt.Errorf("draw count must be non-negative, got %d", r.NextDraws)
	}
	if total := r.HandSize + r.NextDraws; total > r.Deck.Size() {
		return fmt.Errorf("opening hand plus %d draws needs %d cards but the deck has %d",
			r.NextDraws, total, r.Deck.Size())
	}
	if r.CardsPerTurn <= 0 {
		return fmt.Errorf("cards per turn must be positive, got %g", r.CardsPerTurn)
	}
	return nil
}

// byDrawThreshold returns the effective per-card threshold, defaulting
// to the full draw horizon.
func (r *Request) byDrawThreshold() int {
	if r.ByDraw > 0 && r.ByDraw <= r.NextDraws {
		return r.ByDraw
	}
	return r.NextDraws
}
