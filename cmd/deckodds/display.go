package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/lox/deckodds/internal/accrual"
	"github.com/lox/deckodds/internal/analyzer"
	"github.com/lox/deckodds/internal/deck"
	"github.com/lox/deckodds/internal/odds"
	"github.com/lox/deckodds/internal/simulator"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15"))

	cardStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("14"))

	percentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10"))

	weaknessStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9"))
)

func init() {
	// plain output when stdout is not a colour terminal
	if termenv.ColorProfile() == termenv.Ascii {
		lipgloss.SetColorProfile(termenv.Ascii)
	}
}

func pct(p float64) string {
	return fmt.Sprintf("%.1f%%", p*100)
}

func cardLabel(c deck.Card) string {
	if c.Weakness {
		return weaknessStyle.Render(c.String() + " (weakness)")
	}
	return cardStyle.Render(c.String())
}

// renderSample prints one shuffle's drawn cards and per-step totals.
func renderSample(out io.Writer, result *simulator.SampleResult) {
	fmt.Fprintf(out, "%s\n", headerStyle.Render("opening hand"))
	for _, c := range result.OpeningHand {
		fmt.Fprintf(out, "  %s\n", cardLabel(c))
	}
	if len(result.Drawn) > 0 {
		fmt.Fprintf(out, "%s\n", headerStyle.Render("draws"))
		for i, c := range result.Drawn {
			fmt.Fprintf(out, "  %2d  %s\n", i+1, cardLabel(c))
		}
	}
	fmt.Fprintln(out)
	renderStepTable(out, result.Steps)
}

func renderStepTable(out io.Writer, steps []accrual.StepTotals) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
		headerStyle.Render("step"),
		headerStyle.Render("weapons"),
		headerStyle.Render("resources"),
		headerStyle.Render("net"),
		headerStyle.Render("draws"),
		headerStyle.Render("in hand"))
	for _, s := range steps {
		fmt.Fprintf(w, "%d\t%d\t%d\t%d\t%d\t%.1f\n",
			s.Step, s.Weapons, s.ResourceTotal, s.ResourceNet, s.DrawTotal, s.CardsInHand)
	}
	w.Flush()
}

// renderMonteCarlo prints per-step averages and per-card hit rates.
func renderMonteCarlo(out io.Writer, result *simulator.MonteCarloResult) {
	fmt.Fprintf(out, "%s (%d samples)\n", headerStyle.Render("per-step averages"), result.Samples)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
		headerStyle.Render("step"),
		headerStyle.Render("weapons"),
		headerStyle.Render("weapon%"),
		headerStyle.Render("resources"),
		headerStyle.Render("net"),
		headerStyle.Render("draws"),
		headerStyle.Render("in hand"))
	for _, s := range result.Steps {
		hit := fmt.Sprintf("%s ±%.1f", pct(s.WeaponHitRate), s.WeaponHitMargin*100)
		fmt.Fprintf(w, "%d\t%.2f\t%s\t%.2f\t%.2f\t%.2f\t%.2f\n",
			s.Step, s.Weapons, percentStyle.Render(hit),
			s.ResourceTotal, s.ResourceNet, s.DrawTotal, s.CardsInHand)
	}
	w.Flush()

	fmt.Fprintf(out, "\n%s (by draw %d)\n", headerStyle.Render("card contributions"), result.ByDraw)
	w = tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
		headerStyle.Render("card"),
		headerStyle.Render("opening"),
		headerStyle.Render("by draw"),
		headerStyle.Render("draw bonus"))
	for _, c := range result.Cards {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.2f\n",
			cardStyle.Render(c.Label),
			percentStyle.Render(pct(c.OpeningRate)),
			percentStyle.Render(pct(c.ByDrawRate)),
			c.AvgDrawBonus)
	}
	w.Flush()
}

// renderOdds prints the opening distribution and cumulative rows.
func renderOdds(out io.Writer, req odds.Request, result *odds.Result) {
	fmt.Fprintf(out, "%s\n", headerStyle.Render(fmt.Sprintf(
		"%d copies in a %d-card deck (%d weaknesses), opening hand %d",
		req.TargetCopies, req.DeckSize, req.Weaknesses, req.HandSize)))

	for hits, p := range result.OpeningDist {
		fmt.Fprintf(out, "  exactly %d in opening hand: %s\n", hits, percentStyle.Render(pct(p)))
	}
	fmt.Fprintf(out, "  at least 1 in opening hand: %s\n\n",
		percentStyle.Render(pct(result.OpeningHitChance)))

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
		headerStyle.Render("draws"),
		headerStyle.Render(">=1 copy"),
		headerStyle.Render(">=2 copies"),
		headerStyle.Render("hit after miss"))
	for _, row := range result.Rows {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n",
			row.Draws,
			percentStyle.Render(pct(row.AtLeastOne)),
			percentStyle.Render(pct(row.AtLeastTwo)),
			percentStyle.Render(pct(row.MissThenHit)))
	}
	w.Flush()
}

// renderAnalysis prints trait or slot coverage rows.
func renderAnalysis(out io.Writer, kind string, rows []analyzer.Row) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\t%s", headerStyle.Render(kind), headerStyle.Render("count"))
	for _, draws := range analyzer.DrawCounts {
		fmt.Fprintf(w, "\t%s", headerStyle.Render(fmt.Sprintf("by %d", draws)))
	}
	fmt.Fprintf(w, "\t%s\n", headerStyle.Render("cards"))

	for _, row := range rows {
		fmt.Fprintf(w, "%s\t%d", row.Name, row.Count)
		for _, draws := range analyzer.DrawCounts {
			fmt.Fprintf(w, "\t%s", percentStyle.Render(pct(row.DrawChances[draws])))
		}
		fmt.Fprintf(w, "\t%s\n", strings.Join(row.Cards, ", "))
	}
	w.Flush()
}
