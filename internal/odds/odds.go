// Package odds computes analytic draw probabilities for a target card,
// with no sampling. The opening hand is conditioned on first, because
// the weakness redraw rule makes it a draw from the non-weakness cards
// only, while later draws come from the full remaining pile.
package odds

import (
	"fmt"

	"github.com/lox/deckodds/internal/hyper"
)

// Request describes one closed-form odds question.
type Request struct {
	DeckSize     int
	Weaknesses   int
	TargetCopies int // copies of the card being hunted
	HandSize     int
	Horizon      int // post-opening draws to report on
}

// Validate checks the request bounds. All failures are fatal.
func (r *Request) Validate() error {
	if r.DeckSize < 1 {
		return fmt.Errorf("deck size must be positive, got %d", r.DeckSize)
	}
	if r.Weaknesses < 0 {
		return fmt.Errorf("weakness count must be non-negative, got %d", r.Weaknesses)
	}
	if r.Weaknesses >= r.DeckSize {
		return fmt.Errorf("%d weaknesses leave no drawable cards in a %d-card deck",
			r.Weaknesses, r.DeckSize)
	}
	nonWeak := r.DeckSize - r.Weaknesses
	if r.TargetCopies < 1 {
		return fmt.Errorf("target copy count must be positive, got %d", r.TargetCopies)
	}
	if r.TargetCopies > nonWeak {
		return fmt.Errorf("%d target copies exceed the %d non-weakness cards",
			r.TargetCopies, nonWeak)
	}
	if r.HandSize < 1 {
		return fmt.Errorf("opening hand size must be positive, got %d", r.HandSize)
	}
	if r.HandSize > nonWeak {
		return fmt.Errorf("opening hand of %d exceeds the %d non-weakness cards",
			r.HandSize, nonWeak)
	}
	if r.Horizon < 0 {
		return fmt.Errorf("draw horizon must be non-negative, got %d", r.Horizon)
	}
	if r.HandSize+r.Horizon > r.DeckSize {
		return fmt.Errorf("opening hand plus %d draws needs %d cards but the deck has %d",
			r.Horizon, r.HandSize+r.Horizon, r.DeckSize)
	}
	return nil
}

// DrawRow reports the cumulative odds after d post-opening draws.
type DrawRow struct {
	Draws       int
	AtLeastOne  float64 // P(total copies seen >= 1 by draw d)
	AtLeastTwo  float64 // P(total copies seen >= 2 by draw d)
	MissThenHit float64 // P(>=1 hit in d draws | opening hand missed)
}

// Result is the full closed-form answer.
type Result struct {
	NonWeaknessCards int
	OpeningDist      []float64 // P(exactly k copies in the opening hand), k = 0..min(H,T)
	OpeningHitChance float64   // 1 - P(0)
	Rows             []DrawRow // d = 1..Horizon
}

// Calculate answers the request analytically.
//
// The opening hand is a hypergeometric draw from the non-weakness
// cards (the redraw rule guarantees weaknesses never land there).
// Cumulative odds by draw d then decompose over the opening outcome:
// condition on how many copies the opening hand caught and require
// the remainder from the deckSize-H cards left in the pile.
func Calculate(req Request) (*Result, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	nonWeak := req.DeckSize - req.Weaknesses
	maxOpening := min(req.HandSize, req.TargetCopies)

	result := &Result{
		NonWeaknessCards: nonWeak,
		OpeningDist:      make([]float64, maxOpening+1),
	}
	for hits := 0; hits <= maxOpening; hits++ {
		result.OpeningDist[hits] = hyper.PMF(nonWeak, req.TargetCopies, req.HandSize, hits)
	}
	result.OpeningHitChance = 1 - result.OpeningDist[0]

	pile := req.DeckSize - req.HandSize
	for d := 1; d <= req.Horizon; d++ {
		row := DrawRow{
			Draws:       d,
			AtLeastOne:  totalAtLeast(&req, result.OpeningDist, pile, d, 1),
			AtLeastTwo:  totalAtLeast(&req, result.OpeningDist, pile, d, 2),
			MissThenHit: 1 - hyper.PMF(pile, req.TargetCopies, d, 0),
		}
		result.Rows = append(result.Rows, row)
	}

	return result, nil
}

// totalAtLeast is the law-of-total-probability sum over opening
// outcomes: P(total >= m by draw d).
func totalAtLeast(req *Request, openingDist []float64, pile, d, m int) float64 {
	p := 0.0
	for hits, pHits := range openingDist {
		if hits >= m {
			p += pHits
			continue
		}
		p += pHits * hyper.AtLeast(pile, req.TargetCopies-hits, d, m-hits)
	}
	return p
}
