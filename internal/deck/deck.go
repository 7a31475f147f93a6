// Package deck models a resolved trading-card deck as a flat, ordered
// list of physical copies, one Card per copy.
package deck

import (
	"fmt"
	rand "math/rand/v2"
)

// Entry is one annotated deck-list line after resolution: a card
// definition plus how many physical copies the deck runs.
type Entry struct {
	Card  Card
	Count int
}

// Deck is an ordered sequence of physical cards. It is fixed for the
// duration of one analysis run; sampling operates on shuffled copies.
type Deck struct {
	cards []Card
}

// Expand flattens resolved entries into a Deck, one element per
// physical copy.
func Expand(entries []Entry) (*Deck, error) {
	var cards []Card
	for _, e := range entries {
		if e.Count < 1 {
			return nil, fmt.Errorf("entry %q: copy count must be positive, got %d", e.Card.Name, e.Count)
		}
		for i := 0; i < e.Count; i++ {
			cards = append(cards, e.Card)
		}
	}
	if len(cards) == 0 {
		return nil, fmt.Errorf("deck is empty")
	}
	return &Deck{cards: cards}, nil
}

// New builds a Deck directly from a flat card list.
func New(cards []Card) *Deck {
	out := make([]Card, len(cards))
	copy(out, cards)
	return &Deck{cards: out}
}

// Size returns the number of physical cards in the deck.
func (d *Deck) Size() int {
	return len(d.cards)
}

// Cards returns the deck contents in order. The returned slice is the
// deck's backing store; callers must not mutate it.
func (d *Deck) Cards() []Card {
	return d.cards
}

// WeaknessCount returns how many physical cards are weaknesses.
func (d *Deck) WeaknessCount() int {
	n := 0
	for _, c := range d.cards {
		if c.Weakness {
			n++
		}
	}
	return n
}

// NonWeaknessCount returns how many physical cards are not weaknesses.
func (d *Deck) NonWeaknessCount() int {
	return len(d.cards) - d.WeaknessCount()
}

// Shuffled returns a uniformly shuffled copy of the deck's cards using
// the Fisher-Yates algorithm. The deck itself is never reordered.
func (d *Deck) Shuffled(rng *rand.Rand) []Card {
	cards := make([]Card, len(d.cards))
	copy(cards, d.cards)
	Shuffle(cards, rng)
	return cards
}

// Shuffle performs an in-place Fisher-Yates shuffle. Monte Carlo
// validity depends on the permutation being uniform.
func Shuffle(cards []Card, rng *rand.Rand) {
	for i := len(cards) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		cards[i], cards[j] = cards[j], cards[i]
	}
}
