package poker

import (
	"fmt"
	"math/bits"
	"strings"
)

// Card is a single card encoded as one bit of a 52-bit set.
// Bit index is suit*13 + rank.
type Card uint64

// Hand is a set of cards.
type Hand uint64

// Ranks, deuce through ace.
const (
	Two uint8 = iota
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Ace
)

// Suits.
const (
	Clubs uint8 = iota
	Diamonds
	Hearts
	Spades
)

const (
	rankSymbols = "23456789TJQKA"
	suitSymbols = "cdhs"
	allCards    = Hand(1)<<52 - 1
)

// NewCard creates a card from a rank (Two..Ace) and suit (Clubs..Spades).
func NewCard(rank, suit uint8) Card {
	return Card(1) << (uint(suit)*13 + uint(rank))
}

func (c Card) index() int {
	return bits.TrailingZeros64(uint64(c))
}

// Valid reports whether c is exactly one of the 52 cards.
func (c Card) Valid() bool {
	return c != 0 && Hand(c)&allCards == Hand(c) && bits.OnesCount64(uint64(c)) == 1
}

// Rank returns the rank (0 = deuce, 12 = ace).
func (c Card) Rank() uint8 {
	return uint8(c.index() % 13)
}

// Suit returns the suit.
func (c Card) Suit() uint8 {
	return uint8(c.index() / 13)
}

// IsRed reports whether the card is a heart or a diamond.
func (c Card) IsRed() bool {
	s := c.Suit()
	return s == Diamonds || s == Hearts
}

// String returns the two character card code, e.g. "As" or "Td".
func (c Card) String() string {
	if !c.Valid() {
		return "??"
	}
	return string([]byte{rankSymbols[c.Rank()], suitSymbols[c.Suit()]})
}

// ParseCard parses a two character card code: a rank symbol (2-9, T, J, Q, K, A)
// followed by a suit symbol (h, d, c, s).
func ParseCard(code string) (Card, error) {
	if len(code) != 2 {
		return 0, fmt.Errorf("invalid card %q: want two characters", code)
	}
	rank := strings.IndexByte(rankSymbols, code[0])
	if rank < 0 {
		return 0, fmt.Errorf("invalid card %q: unknown rank %q", code, code[0])
	}
	suit := strings.IndexByte(suitSymbols, code[1])
	if suit < 0 {
		return 0, fmt.Errorf("invalid card %q: unknown suit %q", code, code[1])
	}
	return NewCard(uint8(rank), uint8(suit)), nil
}

// ParseCards parses a list of card codes.
func ParseCards(codes ...string) ([]Card, error) {
	cards := make([]Card, 0, len(codes))
	for _, code := range codes {
		c, err := ParseCard(code)
		if err != nil {
			return nil, err
		}
		cards = append(cards, c)
	}
	return cards, nil
}

// MustParseCards is like ParseCards but panics on error. Intended for tests
// and fixed fixtures.
func MustParseCards(codes ...string) []Card {
	cards, err := ParseCards(codes...)
	if err != nil {
		panic(err)
	}
	return cards
}

// CardStrings returns the codes of cards in order.
func CardStrings(cards []Card) []string {
	out := make([]string, len(cards))
	for i, c := range cards {
		out[i] = c.String()
	}
	return out
}

// NewHand creates a hand from cards.
func NewHand(cards ...Card) Hand {
	var h Hand
	for _, c := range cards {
		h |= Hand(c)
	}
	return h
}

// AddCard adds a card to the hand.
func (h *Hand) AddCard(c Card) {
	*h |= Hand(c)
}

// HasCard reports whether the hand contains c.
func (h Hand) HasCard(c Card) bool {
	return h&Hand(c) != 0
}

// CountCards returns the number of cards in the hand.
func (h Hand) CountCards() int {
	return bits.OnesCount64(uint64(h))
}

// GetSuitMask returns a 13-bit rank mask for one suit.
func (h Hand) GetSuitMask(suit uint8) uint16 {
	return uint16((uint64(h) >> (uint(suit) * 13)) & 0x1FFF)
}

// Cards returns the cards in the hand in bit order.
func (h Hand) Cards() []Card {
	cards := make([]Card, 0, h.CountCards())
	for rest := uint64(h); rest != 0; rest &= rest - 1 {
		cards = append(cards, Card(rest&-rest))
	}
	return cards
}
