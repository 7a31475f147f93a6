package simulator

import (
	"fmt"
	rand "math/rand/v2"

	"github.com/lox/deckodds/internal/accrual"
	"github.com/lox/deckodds/internal/deck"
	"github.com/lox/deckodds/internal/draw"
)

// SampleResult is one concrete shuffle reported step by step. It is
// deliberately one observation, not an average; the single-sample tool
// seeds from the clock and is not reproducible across runs.
type SampleResult struct {
	OpeningHand []deck.Card
	Drawn       []deck.Card // post-opening draws, in order
	Steps       []accrual.StepTotals
}

// RunSample shuffles once, resolves the opening hand and runs the
// accrual ledger across every draw step.
func RunSample(req Request, rng *rand.Rand) (*SampleResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	state, err := draw.OpeningHand(req.Deck.Shuffled(rng), req.HandSize, rng)
	if err != nil {
		return nil, fmt.Errorf("resolving opening hand: %w", err)
	}

	ledger := accrual.NewLedger(req.HandSize, req.CardsPerTurn)
	for _, c := range state.OpeningHand {
		ledger.See(c, 0)
	}

	result := &SampleResult{
		OpeningHand: state.OpeningHand,
		Drawn:       state.Next(req.NextDraws),
		Steps:       make([]accrual.StepTotals, 0, req.NextDraws+1),
	}
	result.Steps = append(result.Steps, ledger.Totals(0))

	for i, c := range result.Drawn {
		ledger.See(c, i+1)
		result.Steps = append(result.Steps, ledger.Totals(i+1))
	}

	return result, nil
}
