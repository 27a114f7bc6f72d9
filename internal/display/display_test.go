package display

import (
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YonatanNemtsov/holdem-core/internal/holdem"
	"github.com/YonatanNemtsov/holdem-core/internal/statistics"
	"github.com/YonatanNemtsov/holdem-core/poker"
)

func init() {
	// Plain output keeps substring assertions independent of the terminal.
	lipgloss.SetColorProfile(termenv.Ascii)
}

func newRound(t *testing.T) *holdem.Round {
	t.Helper()
	deck, err := poker.NewStackedDeck(poker.MustParseCards(
		"As", "Ah", // seat 1
		"Kc", "Kd", // seat 2
		"2h", "7s", "9d", "Jc", "4s",
	))
	require.NoError(t, err)
	r, err := holdem.NewRound(holdem.RoundConfig{SmallBlind: 5},
		[]holdem.Seating{{Seat: 1, Stack: 100}, {Seat: 2, Stack: 100}}, 1,
		holdem.WithDeck(deck), holdem.WithID("d1"))
	require.NoError(t, err)
	require.NoError(t, r.Start())
	return r
}

func apply(t *testing.T, r *holdem.Round, req holdem.ActionRequest) {
	t.Helper()
	res, err := r.ApplyAction(req)
	require.NoError(t, err)
	require.True(t, res.Accepted, "rejected: %v", res.Reason)
}

func TestRenderViewForSeat(t *testing.T) {
	r := newRound(t)
	out := NewRenderer(nil).View(r.View(1))

	assert.Contains(t, out, "Round d1")
	assert.Contains(t, out, "PREFLOP")
	assert.Contains(t, out, "Board: []")
	assert.Contains(t, out, "Pot: 15")
	assert.Contains(t, out, "> Seat 1: 95 chips, in pot 5 [As Ah]")
	assert.Contains(t, out, "  Seat 2: 90 chips, in pot 10")
	assert.NotContains(t, out, "Kc")
	assert.Contains(t, out, "seat 2 raise 5 (call 5)")
	assert.Contains(t, out, "Your options: fold, call 5, raise 10-90")
}

func TestRenderViewAfterShowdown(t *testing.T) {
	r := newRound(t)
	apply(t, r, holdem.ActionRequest{Seat: 1, Kind: holdem.Call, CallAmount: 5})
	for r.Stage() != holdem.Ended {
		seat, ok := r.ToAct()
		require.True(t, ok)
		apply(t, r, holdem.ActionRequest{Seat: seat, Kind: holdem.Check})
	}

	out := NewRenderer(nil).View(r.View(holdem.NoSeat))
	assert.Contains(t, out, "ENDED")
	assert.Contains(t, out, "Board: [2h 7s 9d Jc 4s]")
	assert.Contains(t, out, "[Kc Kd]")
	assert.Contains(t, out, "SHOWDOWN")
	assert.Contains(t, out, "Seat 1 wins 20")
	assert.Contains(t, out, "from pot 1 (20) with Pair")
	assert.NotContains(t, out, "Your options")
}

func TestRenderFoldedAndNoShowdown(t *testing.T) {
	r := newRound(t)
	apply(t, r, holdem.ActionRequest{Seat: 1, Kind: holdem.Fold})

	out := NewRenderer(nil).View(r.View(2))
	assert.Contains(t, out, "(folded)")
	assert.Contains(t, out, "NO SHOWDOWN")
	assert.Contains(t, out, "Seat 2 wins 15")
}

func TestRenderStatistics(t *testing.T) {
	stats := &statistics.Statistics{}
	stats.Add(statistics.HandResult{FirstToMove: 1, Showdown: true, StreetReached: holdem.StreetRiver, PotSize: 40, Pots: 2})
	stats.Add(statistics.HandResult{FirstToMove: 2, StreetReached: holdem.StreetPreFlop, PotSize: 20, Pots: 1})

	out := NewRenderer(nil).Statistics(stats, 1500*time.Millisecond)
	assert.Contains(t, out, "SIMULATION")
	assert.Contains(t, out, "1 (50.0%)")
	assert.Contains(t, out, "30.0")
	assert.Contains(t, out, "1.5s")
	assert.Contains(t, out, "preflop 1, flop 0, turn 0, river 1")
}

func TestRenderHandRank(t *testing.T) {
	cards := poker.MustParseCards("As", "Ks", "Qs", "Js", "Ts")
	rank, err := poker.EvaluateHand(poker.NewHand(cards...))
	require.NoError(t, err)

	out := NewRenderer(nil).HandRank(cards, rank)
	assert.Contains(t, out, "[As Ks Qs Js Ts]")
	assert.Contains(t, out, "Straight Flush")
	assert.Contains(t, out, "(rank 0 of 7461)")
}
