// Package draw implements the opening-hand draw engine, including the
// deferred-weakness redraw rule: weaknesses revealed while drawing the
// opening hand are set aside, then shuffled back into the draw pile.
package draw

import (
	"fmt"
	rand "math/rand/v2"

	"github.com/lox/deckodds/internal/deck"
)

// State is the result of resolving an opening hand. OpeningHand holds
// exactly the requested number of non-weakness cards; DrawPile holds
// every remaining card, weaknesses included, in shuffled order.
type State struct {
	OpeningHand []deck.Card
	DrawPile    []deck.Card
}

// OpeningHand scans a shuffled deck front to back, setting weaknesses
// aside until handSize non-weakness cards are kept. The unconsumed
// tail and the set-aside weaknesses are reshuffled together into the
// draw pile. Weaknesses drawn after the opening hand are drawn
// normally; the redraw rule applies only here.
func OpeningHand(shuffled []deck.Card, handSize int, rng *rand.Rand) (*State, error) {
	if handSize < 1 {
		return nil, fmt.Errorf("opening hand size must be positive, got %d", handSize)
	}

	kept := make([]deck.Card, 0, handSize)
	var setAside []deck.Card

	consumed := 0
	for _, card := range shuffled {
		if len(kept) == handSize {
			break
		}
		consumed++
		if card.Weakness {
			setAside = append(setAside, card)
			continue
		}
		kept = append(kept, card)
	}

	if len(kept) < handSize {
		return nil, fmt.Errorf("deck exhausted drawing opening hand: wanted %d non-weakness cards, found %d",
			handSize, len(kept))
	}

	pile := make([]deck.Card, 0, len(shuffled)-handSize)
	pile = append(pile, shuffled[consumed:]...)
	pile = append(pile, setAside...)
	deck.Shuffle(pile, rng)

	return &State{OpeningHand: kept, DrawPile: pile}, nil
}

// Next returns the next n cards off the top of the draw pile, one per
// turn, without mutating the state. It panics if n exceeds the pile;
// request validation bounds draws before any sampling starts.
func (s *State) Next(n int) []deck.Card {
	if n > len(s.DrawPile) {
		panic(fmt.Sprintf("draw: requested %d cards from a %d-card pile", n, len(s.DrawPile)))
	}
	return s.DrawPile[:n]
}
