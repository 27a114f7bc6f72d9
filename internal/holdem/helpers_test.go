package holdem

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/YonatanNemtsov/holdem-core/poker"
)

// stackedDeck deals hole cards in seating order, then the flop, turn and river.
func stackedDeck(t *testing.T, codes ...string) *poker.Deck {
	t.Helper()
	d, err := poker.NewStackedDeck(poker.MustParseCards(codes...))
	require.NoError(t, err)
	return d
}

func seats(stacks ...int) []Seating {
	out := make([]Seating, len(stacks))
	for i, s := range stacks {
		out[i] = Seating{Seat: i + 1, Stack: s}
	}
	return out
}

func startedRound(t *testing.T, cfg RoundConfig, seating []Seating, first int, opts ...RoundOption) *Round {
	t.Helper()
	r, err := NewRound(cfg, seating, first, opts...)
	require.NoError(t, err)
	require.NoError(t, r.Start())
	return r
}

// act applies a request for the seat to act and requires it to be accepted.
func act(t *testing.T, r *Round, seat int, kind ActionKind, call, raise int) {
	t.Helper()
	toAct, ok := r.ToAct()
	require.True(t, ok, "nobody to act")
	require.Equal(t, seat, toAct, "unexpected seat to act")
	res, err := r.ApplyAction(ActionRequest{Seat: seat, Kind: kind, CallAmount: call, RaiseAmount: raise})
	require.NoError(t, err)
	require.True(t, res.Accepted, "rejected: %v", res.Reason)
}

// passive checks or calls for whoever is to act until the round ends.
func passive(t *testing.T, r *Round) {
	t.Helper()
	for i := 0; r.Stage() != Ended; i++ {
		require.Less(t, i, 200, "round did not terminate")
		seat, ok := r.ToAct()
		require.True(t, ok)
		allowed := r.AllowedActions(seat)
		if allowed.Has(Check) {
			act(t, r, seat, Check, 0, 0)
		} else {
			act(t, r, seat, Call, allowed.CallAmount, 0)
		}
	}
}

func chipsInPlay(t *testing.T, r *Round) int {
	t.Helper()
	total := 0
	for _, p := range r.View(NoSeat).Players {
		total += p.Stack
	}
	pots, err := r.Pots()
	require.NoError(t, err)
	return total + PotTotal(pots)
}

// countingEvaluator wraps the default evaluator and counts calls.
type countingEvaluator struct {
	calls int
}

func (c *countingEvaluator) Evaluate(hole, community []poker.Card) (poker.HandRank, error) {
	c.calls++
	return poker.DefaultEvaluator.Evaluate(hole, community)
}

func (c *countingEvaluator) RankClassName(rank poker.HandRank) string {
	return poker.DefaultEvaluator.RankClassName(rank)
}

// recorder collects events.
type recorder struct {
	events []Event
}

func (rec *recorder) OnEvent(e Event) {
	rec.events = append(rec.events, e)
}

func (rec *recorder) types() []EventType {
	out := make([]EventType, len(rec.events))
	for i, e := range rec.events {
		out[i] = e.EventType()
	}
	return out
}
