package poker

import (
	"errors"
	"fmt"
	"math/bits"
)

// HandRank represents the strength of a poker hand. Lower values are stronger;
// 0 is a royal flush and WorstRank is 7-5-4-3-2 offsuit.
type HandRank uint16

// HandType enumerates the categories of poker hands ordered from weakest to strongest.
type HandType uint8

const (
	HighCard HandType = iota
	Pair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
)

const (
	straightFlushCount = 10
	fourOfAKindCount   = 13 * 12
	fullHouseCount     = 13 * 12
	flushCount         = 1277
	straightCount      = 10
	threeOfAKindCount  = 13 * 66
	twoPairCount       = 78 * 11
	onePairCount       = 13 * 220
	highCardCount      = 1277
)

const (
	baseStraightFlush = 0
	baseFourOfAKind   = baseStraightFlush + straightFlushCount
	baseFullHouse     = baseFourOfAKind + fourOfAKindCount
	baseFlush         = baseFullHouse + fullHouseCount
	baseStraight      = baseFlush + flushCount
	baseThreeOfAKind  = baseStraight + straightCount
	baseTwoPair       = baseThreeOfAKind + threeOfAKindCount
	baseOnePair       = baseTwoPair + twoPairCount
	baseHighCard      = baseOnePair + onePairCount

	// WorstRank is the weakest possible five card hand.
	WorstRank = HandRank(baseHighCard + highCardCount - 1)
)

// Evaluation errors.
var (
	ErrTooFewCards    = errors.New("at least five cards are required")
	ErrTooManyCards   = errors.New("at most seven cards may be evaluated")
	ErrDuplicateCards = errors.New("duplicate cards")
)

// handTypeBoundaries mark the exclusive upper bound of each category, strongest first.
var handTypeBoundaries = [...]HandRank{
	HandRank(baseFourOfAKind),
	HandRank(baseFullHouse),
	HandRank(baseFlush),
	HandRank(baseStraight),
	HandRank(baseThreeOfAKind),
	HandRank(baseTwoPair),
	HandRank(baseOnePair),
	HandRank(baseHighCard),
}

// Type returns the category of the hand.
func (hr HandRank) Type() HandType {
	switch {
	case hr < handTypeBoundaries[0]:
		return StraightFlush
	case hr < handTypeBoundaries[1]:
		return FourOfAKind
	case hr < handTypeBoundaries[2]:
		return FullHouse
	case hr < handTypeBoundaries[3]:
		return Flush
	case hr < handTypeBoundaries[4]:
		return Straight
	case hr < handTypeBoundaries[5]:
		return ThreeOfAKind
	case hr < handTypeBoundaries[6]:
		return TwoPair
	case hr < handTypeBoundaries[7]:
		return Pair
	default:
		return HighCard
	}
}

func (t HandType) String() string {
	return [...]string{
		"High Card", "Pair", "Two Pair", "Three of a Kind", "Straight",
		"Flush", "Full House", "Four of a Kind", "Straight Flush",
	}[t]
}

// String returns the category name of the hand.
func (hr HandRank) String() string {
	if hr > WorstRank {
		return "Unknown"
	}
	return hr.Type().String()
}

// Evaluator ranks a player's best five card hand from two hole cards and up to
// five community cards.
type Evaluator interface {
	Evaluate(hole, community []Card) (HandRank, error)
	RankClassName(rank HandRank) string
}

// BitmaskEvaluator is the default Evaluator. It is stateless and safe for
// concurrent use.
type BitmaskEvaluator struct{}

// DefaultEvaluator is used when no evaluator is configured.
var DefaultEvaluator Evaluator = BitmaskEvaluator{}

// Evaluate implements Evaluator.
func (BitmaskEvaluator) Evaluate(hole, community []Card) (HandRank, error) {
	if len(hole) != 2 {
		return 0, fmt.Errorf("want 2 hole cards, got %d", len(hole))
	}
	if len(community) > 5 {
		return 0, fmt.Errorf("want at most 5 community cards, got %d", len(community))
	}
	var h Hand
	for _, c := range append(append(make([]Card, 0, 7), hole...), community...) {
		if !c.Valid() {
			return 0, fmt.Errorf("invalid card %#x", uint64(c))
		}
		if h.HasCard(c) {
			return 0, fmt.Errorf("%w: %s", ErrDuplicateCards, c)
		}
		h.AddCard(c)
	}
	return EvaluateHand(h)
}

// RankClassName implements Evaluator.
func (BitmaskEvaluator) RankClassName(rank HandRank) string {
	return rank.String()
}

// EvaluateHand ranks the best five card hand contained in h, which must hold
// five to seven cards.
func EvaluateHand(h Hand) (HandRank, error) {
	switch n := h.CountCards(); {
	case n < 5:
		return 0, ErrTooFewCards
	case n > 7:
		return 0, ErrTooManyCards
	}
	return rankHand(h), nil
}

// CompareHands compares two hands and returns 1 if a wins, -1 if b wins, 0 for tie.
func CompareHands(a, b HandRank) int {
	switch {
	case a < b:
		return 1
	case a > b:
		return -1
	}
	return 0
}

func rankHand(h Hand) HandRank {
	var suits [4]uint16
	var ranks uint16
	for s := range uint8(4) {
		suits[s] = h.GetSuitMask(s)
		ranks |= suits[s]
	}

	// At most one suit can hold five of seven cards.
	for _, m := range suits {
		if bits.OnesCount16(m) < 5 {
			continue
		}
		if high, ok := straightHigh(m); ok {
			return HandRank(baseStraightFlush + straightFlushCount - 1 - straightIndex(high))
		}
		return HandRank(baseFlush + flushCount - 1 - fiveCardIndex(topRanks(m, 5)))
	}

	var quads, trips, pairs uint16
	for r := range uint8(13) {
		var n int
		for _, m := range suits {
			n += int(m >> r & 1)
		}
		switch n {
		case 4:
			quads |= 1 << r
		case 3:
			trips |= 1 << r
		case 2:
			pairs |= 1 << r
		}
	}

	if quads != 0 {
		quad := highest(quads)
		kicker := highest(ranks &^ (1 << quad))
		idx := uint16(quad)*12 + uint16(ordinal(kicker, quad))
		return HandRank(baseFourOfAKind + fourOfAKindCount - 1 - idx)
	}

	if trips != 0 {
		trip := highest(trips)
		if rest := pairs | trips&^(1<<trip); rest != 0 {
			pair := highest(rest)
			idx := uint16(trip)*12 + uint16(ordinal(pair, trip))
			return HandRank(baseFullHouse + fullHouseCount - 1 - idx)
		}
	}

	if high, ok := straightHigh(ranks); ok {
		return HandRank(baseStraight + straightCount - 1 - straightIndex(high))
	}

	if trips != 0 {
		trip := highest(trips)
		kickers := topRanks(ranks&^(1<<trip), 2)
		idx := uint16(trip)*66 + colexIndex(squeeze(kickers, trip))
		return HandRank(baseThreeOfAKind + threeOfAKindCount - 1 - idx)
	}

	if pairs != 0 {
		high := highest(pairs)
		if rest := pairs &^ (1 << high); rest != 0 {
			low := highest(rest)
			both := uint16(1)<<high | uint16(1)<<low
			kicker := highest(ranks &^ both)
			idx := colexIndex(both)*11 + uint16(ordinal(kicker, high, low))
			return HandRank(baseTwoPair + twoPairCount - 1 - idx)
		}
		kickers := topRanks(ranks&^(1<<high), 3)
		idx := uint16(high)*220 + colexIndex(squeeze(kickers, high))
		return HandRank(baseOnePair + onePairCount - 1 - idx)
	}

	return HandRank(baseHighCard + highCardCount - 1 - fiveCardIndex(topRanks(ranks, 5)))
}

// highest returns the highest rank set in mask. mask must be non-zero.
func highest(mask uint16) uint8 {
	return uint8(bits.Len16(mask) - 1)
}

// topRanks keeps the n highest ranks of mask.
func topRanks(mask uint16, n int) uint16 {
	for bits.OnesCount16(mask) > n {
		mask &= mask - 1
	}
	return mask
}

// ordinal returns the position of rank among the ranks left after removing excluded.
func ordinal(rank uint8, excluded ...uint8) uint8 {
	pos := rank
	for _, ex := range excluded {
		if ex < rank {
			pos--
		}
	}
	return pos
}

// squeeze removes the excluded rank from mask, shifting higher ranks down by one.
func squeeze(mask uint16, excluded uint8) uint16 {
	low := mask & (1<<excluded - 1)
	high := mask >> (excluded + 1) << excluded
	return low | high
}

var binomial = func() (c [14][6]uint16) {
	for n := range 14 {
		c[n][0] = 1
		for k := 1; k <= 5 && k <= n; k++ {
			c[n][k] = c[n-1][k-1] + c[n-1][k]
		}
	}
	return c
}()

// colexIndex returns the position of the rank subset in colexicographic order.
// Colex order compares the highest differing rank first, which is kicker order.
func colexIndex(mask uint16) uint16 {
	var idx uint16
	k := 0
	for m := mask; m != 0; m &= m - 1 {
		k++
		idx += binomial[bits.TrailingZeros16(m)][k]
	}
	return idx
}

var straightMasks = func() (masks [10]uint16) {
	masks[0] = 0x100F // wheel: A-2-3-4-5
	for high := 4; high <= 12; high++ {
		masks[high-3] = 0x1F << (high - 4)
	}
	return masks
}()

// fiveCardIndex ranks five distinct ranks among the 1277 non-straight combinations.
func fiveCardIndex(mask uint16) uint16 {
	idx := colexIndex(mask)
	var below uint16
	for _, s := range straightMasks {
		if colexIndex(s) < idx {
			below++
		}
	}
	return idx - below
}

// straightHigh returns the high rank of the best straight in mask.
func straightHigh(mask uint16) (uint8, bool) {
	mask &= 0x1FFF
	if seq := mask & (mask >> 1) & (mask >> 2) & (mask >> 3) & (mask >> 4); seq != 0 {
		return highest(seq) + 4, true
	}
	if mask&straightMasks[0] == straightMasks[0] {
		return Five, true
	}
	return 0, false
}

// straightIndex orders straights from the wheel (0) to broadway (9).
func straightIndex(high uint8) uint16 {
	return uint16(high - Five)
}
