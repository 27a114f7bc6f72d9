// Package display renders rounds, results and simulation statistics as
// styled terminal text.
package display

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/YonatanNemtsov/holdem-core/internal/holdem"
	"github.com/YonatanNemtsov/holdem-core/internal/statistics"
	"github.com/YonatanNemtsov/holdem-core/poker"
)

// Styles contains styling for round display
type Styles struct {
	Header    lipgloss.Style
	SubHeader lipgloss.Style
	Action    lipgloss.Style
	Winner    lipgloss.Style
	CardRed   lipgloss.Style
	CardBlack lipgloss.Style
	Pot       lipgloss.Style
	Muted     lipgloss.Style
	ToAct     lipgloss.Style
}

// NewStyles creates the default palette
func NewStyles() *Styles {
	return &Styles{
		Header: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 2).
			Bold(true),
		SubHeader: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#04B575")).
			Bold(true),
		Action: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#74B9FF")),
		Winner: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFD700")).
			Bold(true),
		CardRed: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true),
		CardBlack: lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#000000", Dark: "#FAFAFA"}).
			Bold(true),
		Pot: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFD700")).
			Bold(true),
		Muted: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262")),
		ToAct: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#04B575")).
			Bold(true),
	}
}

// Renderer turns engine state into text.
type Renderer struct {
	styles *Styles
}

// NewRenderer returns a renderer using styles, or the defaults when nil.
func NewRenderer(styles *Styles) *Renderer {
	if styles == nil {
		styles = NewStyles()
	}
	return &Renderer{styles: styles}
}

// Cards renders cards in bracket form, coloured by suit.
func (r *Renderer) Cards(cards []poker.Card) string {
	if len(cards) == 0 {
		return r.styles.Muted.Render("[]")
	}
	parts := make([]string, len(cards))
	for i, c := range cards {
		style := r.styles.CardBlack
		if c.IsRed() {
			style = r.styles.CardRed
		}
		parts[i] = style.Render(c.String())
	}
	return "[" + strings.Join(parts, " ") + "]"
}

// View renders what a seat can see of a round.
func (r *Renderer) View(v holdem.View) string {
	var b strings.Builder

	b.WriteString(r.styles.Header.Render(fmt.Sprintf("Round %s", v.RoundID)))
	b.WriteString("  ")
	b.WriteString(r.styles.SubHeader.Render(strings.ToUpper(v.Stage.String())))
	b.WriteString("\n")
	fmt.Fprintf(&b, "Board: %s\n", r.Cards(v.Community))
	fmt.Fprintf(&b, "Pot: %s\n", r.styles.Pot.Render(fmt.Sprintf("%d", v.PotTotal)))
	if len(v.Pots) > 1 {
		for i, pot := range v.Pots {
			b.WriteString(r.styles.Muted.Render(fmt.Sprintf("  pot %d: %d eligible %v", i+1, pot.Amount, pot.Eligible)))
			b.WriteString("\n")
		}
	}
	b.WriteString("\n")

	for _, p := range v.Players {
		b.WriteString(r.player(p, v))
		b.WriteString("\n")
	}

	if len(v.Actions) > 0 {
		b.WriteString("\n")
		for _, a := range v.Actions {
			b.WriteString(r.styles.Action.Render(a.String()))
			b.WriteString("\n")
		}
	}

	if v.Seat != holdem.NoSeat && len(v.Allowed.Actions) > 0 {
		b.WriteString("\n")
		b.WriteString(r.allowed(v.Allowed))
		b.WriteString("\n")
	}

	if v.Result != nil {
		b.WriteString("\n")
		b.WriteString(r.Result(*v.Result))
	}
	return b.String()
}

func (r *Renderer) player(p holdem.PlayerView, v holdem.View) string {
	marker := "  "
	if v.Stage.IsBetting() && p.Seat == v.ToAct {
		marker = r.styles.ToAct.Render(">") + " "
	}
	line := fmt.Sprintf("%sSeat %d: %d chips, in pot %d", marker, p.Seat, p.Stack, p.Contributed)
	if p.HoleCards != nil {
		line += " " + r.Cards(p.HoleCards)
	}
	switch {
	case p.Folded:
		line += " " + r.styles.Muted.Render("(folded)")
	case p.AllIn:
		line += " " + r.styles.Winner.Render("(all-in)")
	}
	return line
}

func (r *Renderer) allowed(a holdem.AllowedActions) string {
	parts := make([]string, 0, len(a.Actions))
	for _, kind := range a.Actions {
		switch kind {
		case holdem.Call:
			parts = append(parts, fmt.Sprintf("call %d", a.CallAmount))
		case holdem.Raise:
			parts = append(parts, fmt.Sprintf("raise %d-%d", a.MinRaise, a.MaxRaise))
		default:
			parts = append(parts, kind.String())
		}
	}
	return r.styles.SubHeader.Render("Your options:") + " " + strings.Join(parts, ", ")
}

// Result renders pot winners and payouts.
func (r *Renderer) Result(res holdem.Result) string {
	var b strings.Builder
	title := "NO SHOWDOWN"
	if res.Showdown {
		title = "SHOWDOWN"
	}
	b.WriteString(r.styles.Header.Render(title))
	b.WriteString("\n")

	for i, pot := range res.Pots {
		for j, seat := range pot.Winners {
			b.WriteString(r.styles.Winner.Render(fmt.Sprintf("Seat %d wins %d", seat, pot.Shares[j])))
			fmt.Fprintf(&b, " from pot %d (%d)", i+1, pot.Pot.Amount)
			if rank, ok := res.Ranks[seat]; ok {
				b.WriteString(" with " + rank.String())
			}
			b.WriteString("\n")
		}
	}

	seats := make([]int, 0, len(res.Ranks))
	for seat := range res.Ranks {
		seats = append(seats, seat)
	}
	slices.Sort(seats)
	for _, seat := range seats {
		b.WriteString(r.styles.Muted.Render(fmt.Sprintf("Seat %d: %s", seat, res.Ranks[seat])))
		b.WriteString("\n")
	}
	return b.String()
}

// Statistics renders a simulation summary.
func (r *Renderer) Statistics(stats *statistics.Statistics, elapsed time.Duration) string {
	var b strings.Builder
	b.WriteString(r.styles.Header.Render("SIMULATION"))
	b.WriteString("\n")

	rows := [][2]string{
		{"Hands", fmt.Sprintf("%d", stats.Hands)},
		{"Showdowns", fmt.Sprintf("%d (%.1f%%)", stats.Showdowns, 100*stats.ShowdownRate())},
		{"No showdown", fmt.Sprintf("%d", stats.NoShowdowns)},
		{"Side pots", fmt.Sprintf("%d", stats.SidePots)},
		{"Split pots", fmt.Sprintf("%d", stats.SplitPots)},
		{"Actions", fmt.Sprintf("%d", stats.Actions)},
		{"Mean pot", fmt.Sprintf("%.1f", stats.Mean())},
		{"Median pot", fmt.Sprintf("%.1f", stats.Median())},
		{"Largest pot", fmt.Sprintf("%d", stats.MaxPot)},
		{"Elapsed", elapsed.String()},
	}
	for _, row := range rows {
		b.WriteString(r.styles.SubHeader.Render(fmt.Sprintf("%-12s", row[0])))
		b.WriteString(" ")
		b.WriteString(row[1])
		b.WriteString("\n")
	}

	streets := []holdem.Street{holdem.StreetPreFlop, holdem.StreetFlop, holdem.StreetTurn, holdem.StreetRiver}
	parts := make([]string, len(streets))
	for i, street := range streets {
		parts[i] = fmt.Sprintf("%s %d", street, stats.Streets[street])
	}
	b.WriteString(r.styles.Muted.Render("Ended on: " + strings.Join(parts, ", ")))
	b.WriteString("\n")
	return b.String()
}

// HandRank renders an evaluated hand.
func (r *Renderer) HandRank(cards []poker.Card, rank poker.HandRank) string {
	return fmt.Sprintf("%s %s %s", r.Cards(cards),
		r.styles.Winner.Render(rank.String()),
		r.styles.Muted.Render(fmt.Sprintf("(rank %d of %d)", rank, poker.WorstRank)))
}
