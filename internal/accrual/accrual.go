// Package accrual tracks which cards have been seen across draw steps
// and totals the one-time and per-turn bonuses they grant.
package accrual

import (
	"github.com/lox/deckodds/internal/deck"
)

// StartingResources is the fixed resource pool a player begins with,
// before the one-resource-per-turn income.
const StartingResources = 5

// Ledger is the first-seen ledger for one sample. Physical copies are
// recorded individually for one-time bonuses; per-turn bonuses are
// keyed by card identity so duplicate copies never multiply the
// per-turn term.
type Ledger struct {
	handSize     int
	cardsPerTurn float64

	seen       []deck.Card          // every physical copy, in draw order
	firstSeen  map[string]int       // card key -> draw index first seen
	firstByKey map[string]deck.Card // representative copy per key
}

// NewLedger creates an empty ledger for a sample with the given
// opening-hand size and cards-consumed-per-turn rate.
func NewLedger(handSize int, cardsPerTurn float64) *Ledger {
	return &Ledger{
		handSize:     handSize,
		cardsPerTurn: cardsPerTurn,
		firstSeen:    make(map[string]int),
		firstByKey:   make(map[string]deck.Card),
	}
}

// See records a physical copy drawn at the given step. Step 0 is the
// opening hand; step i is the i-th post-opening draw. The first-seen
// index for a key is recorded at most once.
func (l *Ledger) See(card deck.Card, step int) {
	l.seen = append(l.seen, card)
	key := card.Key()
	if _, ok := l.firstSeen[key]; !ok {
		l.firstSeen[key] = step
		l.firstByKey[key] = card
	}
}

// FirstSeen returns the draw step at which the key was first seen.
func (l *Ledger) FirstSeen(key string) (int, bool) {
	step, ok := l.firstSeen[key]
	return step, ok
}

// SeenKeys returns the set of unique card keys seen so far.
func (l *Ledger) SeenKeys() map[string]bool {
	keys := make(map[string]bool, len(l.firstSeen))
	for k := range l.firstSeen {
		keys[k] = true
	}
	return keys
}

// StepTotals holds the accrued totals evaluated at one draw step.
type StepTotals struct {
	Step             int
	Weapons          int
	OneTimeResources int
	PerTurnResources int
	OneTimeDraw      int
	PerTurnDraw      int
	CostSeen         int

	ResourceTotal int
	ResourceNet   int
	DrawTotal     int
	CardsInHand   float64
}

// Totals recomputes the accrued totals at the given step from the full
// seen set. Recomputing each step keeps the first-seen-dependent
// per-turn rule auditable; nothing here is hot enough to need an
// incremental version.
func (l *Ledger) Totals(step int) StepTotals {
	t := StepTotals{Step: step}

	// one-time bonuses: every physical copy contributes
	for _, c := range l.seen {
		if c.Weapon {
			t.Weapons++
		}
		t.OneTimeResources += c.Resources
		t.OneTimeDraw += c.Draw
		t.CostSeen += c.Cost
	}

	// per-turn bonuses: once per unique key, for every turn held
	// after the turn it was first seen
	for key, c := range l.firstByKey {
		turnsHeld := step - l.firstSeen[key]
		if turnsHeld <= 0 {
			continue
		}
		t.PerTurnResources += c.ResourcesPerTurn * turnsHeld
		t.PerTurnDraw += c.DrawPerTurn * turnsHeld
	}

	t.ResourceTotal = StartingResources + step + t.OneTimeResources + t.PerTurnResources
	t.ResourceNet = t.ResourceTotal - t.CostSeen
	t.DrawTotal = l.handSize + step + t.OneTimeDraw + t.PerTurnDraw

	// The projection subtracts a continuous consumption rate from a
	// discrete card count and floors at zero. The fractional-card
	// artifact is intentional.
	inHand := float64(t.DrawTotal) - l.cardsPerTurn*float64(step)
	if inHand < 0 {
		inHand = 0
	}
	t.CardsInHand = inHand

	return t
}
