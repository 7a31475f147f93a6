// Package analyzer aggregates a deck by trait or equipment slot and
// reports hypergeometric coverage odds for each category.
package analyzer

import (
	"fmt"
	"sort"

	"github.com/lox/deckodds/internal/deck"
	"github.com/lox/deckodds/internal/hyper"
)

// DrawCounts are the fixed horizons each category is reported at.
var DrawCounts = []int{5, 10, 15}

// Row is one trait or slot category. Count covers non-weakness copies
// only, because weaknesses never contribute to the draws being hunted,
// but Cards lists every bearer so the deck list stays honest.
type Row struct {
	Name        string
	Count       int
	Cards       []string        // bearer labels, duplicates annotated "(Nx)"
	DrawChances map[int]float64 // draw count -> P(>=1 bearer seen)
}

// Traits groups the deck by trait.
func Traits(d *deck.Deck) []Row {
	return build(d, func(c deck.Card) []string {
		return c.Traits
	})
}

// Slots groups the deck by equipment slot name.
func Slots(d *deck.Deck) []Row {
	return build(d, func(c deck.Card) []string {
		names := make([]string, 0, len(c.Slots))
		for _, s := range c.Slots {
			names = append(names, s.Name)
		}
		return names
	})
}

type group struct {
	count   int            // non-weakness physical copies
	bearers map[string]int // card label -> copy count
	order   []string       // labels in first-seen order
}

func build(d *deck.Deck, categories func(deck.Card) []string) []Row {
	nonWeak := d.NonWeaknessCount()
	groups := make(map[string]*group)

	for _, c := range d.Cards() {
		for _, name := range categories(c) {
			g, ok := groups[name]
			if !ok {
				g = &group{bearers: make(map[string]int)}
				groups[name] = g
			}
			label := c.String()
			if g.bearers[label] == 0 {
				g.order = append(g.order, label)
			}
			g.bearers[label]++
			if !c.Weakness {
				g.count++
			}
		}
	}

	rows := make([]Row, 0, len(groups))
	for name, g := range groups {
		row := Row{
			Name:        name,
			Count:       g.count,
			DrawChances: make(map[int]float64, len(DrawCounts)),
		}
		for _, label := range g.order {
			if n := g.bearers[label]; n > 1 {
				row.Cards = append(row.Cards, fmt.Sprintf("%s (%dx)", label, n))
			} else {
				row.Cards = append(row.Cards, label)
			}
		}
		for _, draws := range DrawCounts {
			n := min(draws, nonWeak)
			row.DrawChances[draws] = hyper.AtLeast(nonWeak, g.count, n, 1)
		}
		rows = append(rows, row)
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Count != rows[j].Count {
			return rows[i].Count > rows[j].Count
		}
		return rows[i].Name < rows[j].Name
	})
	return rows
}
