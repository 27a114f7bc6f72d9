package poker

import (
	"math/rand/v2"
	"testing"

	ph "github.com/paulhankin/poker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rankOf(t *testing.T, codes ...string) HandRank {
	t.Helper()
	rank, err := EvaluateHand(NewHand(MustParseCards(codes...)...))
	require.NoError(t, err)
	return rank
}

func TestHandTypes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		cards []string
		want  HandType
	}{
		{"royal flush", []string{"As", "Ks", "Qs", "Js", "Ts", "2c", "3d"}, StraightFlush},
		{"steel wheel", []string{"As", "2s", "3s", "4s", "5s"}, StraightFlush},
		{"quads", []string{"9c", "9d", "9h", "9s", "Kd", "2c", "3c"}, FourOfAKind},
		{"full house from two trips", []string{"9c", "9d", "9h", "Ks", "Kd", "Kc", "2c"}, FullHouse},
		{"flush", []string{"2h", "7h", "9h", "Jh", "Kh", "Ks", "Kd"}, Flush},
		{"straight", []string{"5c", "6d", "7h", "8s", "9c", "Kd", "Kh"}, Straight},
		{"wheel", []string{"Ac", "2d", "3h", "4s", "5c", "9d", "Jh"}, Straight},
		{"trips", []string{"7c", "7d", "7h", "As", "Kd", "2c", "4h"}, ThreeOfAKind},
		{"two pair", []string{"7c", "7d", "5h", "5s", "Kd", "Kc", "2h"}, TwoPair},
		{"pair", []string{"7c", "7d", "5h", "9s", "Kd", "Jc", "2h"}, Pair},
		{"high card", []string{"7c", "Td", "5h", "9s", "Kd", "Jc", "2h"}, HighCard},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, rankOf(t, tt.cards...).Type())
		})
	}
}

func TestRankBounds(t *testing.T) {
	t.Parallel()

	assert.Equal(t, HandRank(0), rankOf(t, "As", "Ks", "Qs", "Js", "Ts"))
	assert.Equal(t, WorstRank, rankOf(t, "7c", "5d", "4h", "3s", "2c"))
	assert.Equal(t, HandRank(7461), WorstRank)
	assert.Equal(t, "Straight Flush", HandRank(0).String())
	assert.Equal(t, "High Card", WorstRank.String())
	assert.Equal(t, "Unknown", (WorstRank + 1).String())
}

func TestOrdering(t *testing.T) {
	t.Parallel()

	// Each hand must beat the next.
	ordered := [][]string{
		{"As", "Ks", "Qs", "Js", "Ts"},
		{"6h", "5h", "4h", "3h", "2h"},
		{"5d", "4d", "3d", "2d", "Ad"},
		{"Ac", "Ad", "Ah", "As", "Kc"},
		{"Ac", "Ad", "Ah", "As", "2c"},
		{"Kc", "Kd", "Kh", "Ks", "Ac"},
		{"Ac", "Ad", "Ah", "Ks", "Kc"},
		{"Ac", "Ad", "Ah", "2s", "2c"},
		{"Kc", "Kd", "Kh", "As", "Ac"},
		{"Ah", "Kh", "Qh", "Jh", "9h"},
		{"Ah", "5h", "4h", "3h", "2h"},
		{"Kh", "Qh", "Jh", "Th", "8h"},
		{"Ah", "Kd", "Qc", "Js", "Th"},
		{"6h", "5d", "4c", "3s", "2h"},
		{"5h", "4d", "3c", "2s", "Ah"},
		{"Ah", "Ad", "Ac", "Ks", "Qh"},
		{"Ah", "Ad", "Ac", "3s", "2h"},
		{"Kh", "Kd", "Kc", "As", "Qh"},
		{"Ah", "Ad", "Kc", "Ks", "Qh"},
		{"Ah", "Ad", "Kc", "Ks", "2h"},
		{"Ah", "Ad", "Qc", "Qs", "Kh"},
		{"Kh", "Kd", "Qc", "Qs", "Ah"},
		{"Ah", "Ad", "Kc", "Qs", "Jh"},
		{"Ah", "Ad", "4c", "3s", "2h"},
		{"Kh", "Kd", "Ac", "Qs", "Jh"},
		{"Ah", "Kd", "Qc", "Js", "9h"},
		{"Ah", "5d", "4c", "3s", "2h"},
		{"8h", "6d", "5c", "4s", "3h"},
		{"7h", "5d", "4c", "3s", "2h"},
	}

	for i := 0; i+1 < len(ordered); i++ {
		stronger := rankOf(t, ordered[i]...)
		weaker := rankOf(t, ordered[i+1]...)
		assert.Equal(t, 1, CompareHands(stronger, weaker), "%v should beat %v", ordered[i], ordered[i+1])
	}
}

func TestEvaluatorSplitsOnBoard(t *testing.T) {
	t.Parallel()

	board := MustParseCards("As", "Ks", "Qd", "Jc", "Th")
	a, err := DefaultEvaluator.Evaluate(MustParseCards("2c", "3d"), board)
	require.NoError(t, err)
	b, err := DefaultEvaluator.Evaluate(MustParseCards("4h", "5h"), board)
	require.NoError(t, err)
	assert.Equal(t, 0, CompareHands(a, b))
	assert.Equal(t, "Straight", DefaultEvaluator.RankClassName(a))
}

func TestEvaluatorRejectsBadInput(t *testing.T) {
	t.Parallel()

	board := MustParseCards("As", "Ks", "Qd")
	_, err := DefaultEvaluator.Evaluate(MustParseCards("2c"), board)
	assert.Error(t, err)

	_, err = DefaultEvaluator.Evaluate(MustParseCards("2c", "3c"), MustParseCards("4c", "5c"))
	assert.ErrorIs(t, err, ErrTooFewCards)

	_, err = DefaultEvaluator.Evaluate(MustParseCards("As", "3c"), board)
	assert.ErrorIs(t, err, ErrDuplicateCards)

	_, err = DefaultEvaluator.Evaluate(MustParseCards("2c", "3c"), MustParseCards("4c", "5c", "6c", "7c", "8c", "9c"))
	assert.Error(t, err)

	_, err = EvaluateHand(allCards)
	assert.ErrorIs(t, err, ErrTooManyCards)
}

func toReference(t *testing.T, c Card) ph.Card {
	t.Helper()
	rank := int(c.Rank()) + 2
	if c.Rank() == Ace {
		rank = 1
	}
	rc, err := ph.MakeCard(ph.Suit(c.Suit()), ph.Rank(rank))
	require.NoError(t, err)
	return rc
}

// TestAgainstReferenceEvaluator compares pairwise outcomes with an independent
// evaluator over random seven card hands.
func TestAgainstReferenceEvaluator(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewPCG(42, 1337))
	for i := range 2000 {
		d := NewDeck(rng)
		board, _ := d.Deal(5)
		holeA, _ := d.Deal(2)
		holeB, _ := d.Deal(2)

		a, err := DefaultEvaluator.Evaluate(holeA, board)
		require.NoError(t, err)
		b, err := DefaultEvaluator.Evaluate(holeB, board)
		require.NoError(t, err)

		var ra, rb [7]ph.Card
		for j, c := range append(append([]Card{}, holeA...), board...) {
			ra[j] = toReference(t, c)
		}
		for j, c := range append(append([]Card{}, holeB...), board...) {
			rb[j] = toReference(t, c)
		}
		ea, eb := ph.Eval7(&ra), ph.Eval7(&rb)

		want := 0
		switch {
		case ea > eb:
			want = 1
		case ea < eb:
			want = -1
		}
		require.Equal(t, want, CompareHands(a, b), "iteration %d: %v vs %v on %v", i,
			CardStrings(holeA), CardStrings(holeB), CardStrings(board))
	}
}
