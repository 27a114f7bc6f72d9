package poker

import (
	"errors"
	"fmt"
	"math/rand/v2"
)

// ErrDeckExhausted is returned when more cards are requested than remain.
var ErrDeckExhausted = errors.New("deck exhausted")

// Deck is a stack of cards dealt from the top.
type Deck struct {
	cards []Card
	next  int
	rng   *rand.Rand
}

// NewDeck creates a shuffled standard 52-card deck. The RNG is required so
// that shuffles are reproducible under test.
func NewDeck(rng *rand.Rand) *Deck {
	if rng == nil {
		panic("rng is required for deck creation")
	}
	d := &Deck{
		cards: make([]Card, 0, 52),
		rng:   rng,
	}
	for suit := range uint8(4) {
		for rank := range uint8(13) {
			d.cards = append(d.cards, NewCard(rank, suit))
		}
	}
	d.Shuffle()
	return d
}

// NewStackedDeck creates an unshuffled deck that deals cards in exactly the
// given order. Cards must be valid and distinct.
func NewStackedDeck(cards []Card) (*Deck, error) {
	var seen Hand
	for i, c := range cards {
		if !c.Valid() {
			return nil, fmt.Errorf("stacked deck: invalid card at %d", i)
		}
		if seen.HasCard(c) {
			return nil, fmt.Errorf("stacked deck: duplicate card %s", c)
		}
		seen.AddCard(c)
	}
	stacked := make([]Card, len(cards))
	copy(stacked, cards)
	return &Deck{cards: stacked}, nil
}

// Shuffle shuffles the deck using Fisher-Yates and resets the deal position.
// Stacked decks have no RNG and keep their order.
func (d *Deck) Shuffle() {
	d.next = 0
	if d.rng == nil {
		return
	}
	for i := len(d.cards) - 1; i > 0; i-- {
		j := d.rng.IntN(i + 1)
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	}
}

// Deal deals n cards from the top of the deck.
func (d *Deck) Deal(n int) ([]Card, error) {
	if n < 0 || d.next+n > len(d.cards) {
		return nil, fmt.Errorf("%w: want %d, have %d", ErrDeckExhausted, n, d.Remaining())
	}
	cards := make([]Card, n)
	copy(cards, d.cards[d.next:d.next+n])
	d.next += n
	return cards, nil
}

// Remaining returns the number of undealt cards.
func (d *Deck) Remaining() int {
	return len(d.cards) - d.next
}
