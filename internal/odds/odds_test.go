package odds

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/deckodds/internal/hyper"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		req     Request
		wantErr string
	}{
		{
			name: "valid",
			req:  Request{DeckSize: 33, Weaknesses: 2, TargetCopies: 2, HandSize: 5, Horizon: 10},
		},
		{
			name:    "weaknesses consume deck",
			req:     Request{DeckSize: 10, Weaknesses: 10, TargetCopies: 1, HandSize: 3, Horizon: 2},
			wantErr: "no drawable cards",
		},
		{
			name:    "too many target copies",
			req:     Request{DeckSize: 20, Weaknesses: 2, TargetCopies: 19, HandSize: 5, Horizon: 2},
			wantErr: "target copies exceed",
		},
		{
			name:    "hand exceeds non-weakness cards",
			req:     Request{DeckSize: 10, Weaknesses: 6, TargetCopies: 1, HandSize: 5, Horizon: 1},
			wantErr: "non-weakness",
		},
		{
			name:    "horizon overruns deck",
			req:     Request{DeckSize: 20, Weaknesses: 0, TargetCopies: 1, HandSize: 5, Horizon: 16},
			wantErr: "deck has 20",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestCalculate_SingleCopyOpeningChance(t *testing.T) {
	// 33 cards, 2 weaknesses, 1 copy, hand of 5:
	// 1 - C(30,5)/C(31,5) = 5/31
	result, err := Calculate(Request{
		DeckSize: 33, Weaknesses: 2, TargetCopies: 1, HandSize: 5, Horizon: 5,
	})
	require.NoError(t, err)

	assert.Equal(t, 31, result.NonWeaknessCards)
	assert.InDelta(t, 5.0/31.0, result.OpeningHitChance, 1e-12)
}

func TestCalculate_OpeningDistSumsToOne(t *testing.T) {
	result, err := Calculate(Request{
		DeckSize: 30, Weaknesses: 2, TargetCopies: 3, HandSize: 5, Horizon: 0,
	})
	require.NoError(t, err)

	sum := 0.0
	for _, p := range result.OpeningDist {
		sum += p
	}
	assert.InDelta(t, 1.0, sum, 1e-9)
}

func TestCalculate_RowsMatchUnconditionalHypergeometric(t *testing.T) {
	// With no weaknesses the two-stage decomposition collapses: seeing
	// H+d cards of a uniform deck is one hypergeometric draw, so the
	// conditioned sum must match the direct formula.
	const (
		deckSize = 30
		copies   = 3
		hand     = 5
		horizon  = 12
	)
	result, err := Calculate(Request{
		DeckSize: deckSize, Weaknesses: 0, TargetCopies: copies, HandSize: hand, Horizon: horizon,
	})
	require.NoError(t, err)
	require.Len(t, result.Rows, horizon)

	for _, row := range result.Rows {
		seen := hand + row.Draws
		assert.InDelta(t, hyper.AtLeast(deckSize, copies, seen, 1), row.AtLeastOne, 1e-9,
			"at-least-one after %d draws", row.Draws)
		assert.InDelta(t, hyper.AtLeast(deckSize, copies, seen, 2), row.AtLeastTwo, 1e-9,
			"at-least-two after %d draws", row.Draws)
	}
}

func TestCalculate_MissThenHit(t *testing.T) {
	result, err := Calculate(Request{
		DeckSize: 33, Weaknesses: 2, TargetCopies: 2, HandSize: 5, Horizon: 6,
	})
	require.NoError(t, err)

	for _, row := range result.Rows {
		want := 1 - hyper.PMF(33-5, 2, row.Draws, 0)
		assert.InDelta(t, want, row.MissThenHit, 1e-12, "draws=%d", row.Draws)
	}
}

func TestCalculate_CumulativeOddsMonotonic(t *testing.T) {
	result, err := Calculate(Request{
		DeckSize: 40, Weaknesses: 3, TargetCopies: 2, HandSize: 5, Horizon: 20,
	})
	require.NoError(t, err)

	prevOne, prevTwo := result.OpeningHitChance, 0.0
	for _, row := range result.Rows {
		assert.GreaterOrEqual(t, row.AtLeastOne, prevOne)
		assert.GreaterOrEqual(t, row.AtLeastTwo, prevTwo)
		assert.GreaterOrEqual(t, row.AtLeastOne, row.AtLeastTwo)
		prevOne, prevTwo = row.AtLeastOne, row.AtLeastTwo
	}
}

func TestCalculate_AtLeastTwoDirectSum(t *testing.T) {
	// deck of 20, no weaknesses, 3 copies, draw 10 total: the
	// at-least-two value equals PMF(2) + PMF(3) directly.
	want := hyper.PMF(20, 3, 10, 2) + hyper.PMF(20, 3, 10, 3)
	assert.InDelta(t, want, hyper.AtLeast(20, 3, 10, 2), 1e-12)

	result, err := Calculate(Request{
		DeckSize: 20, Weaknesses: 0, TargetCopies: 3, HandSize: 5, Horizon: 5,
	})
	require.NoError(t, err)
	assert.InDelta(t, want, result.Rows[4].AtLeastTwo, 1e-9)
}
