package holdem

import (
	"fmt"
	rand "math/rand/v2"

	"github.com/coder/quartz"

	"github.com/YonatanNemtsov/holdem-core/poker"
)

// RoundConfig holds the forced bet sizes. The big blind is twice the small blind.
type RoundConfig struct {
	SmallBlind int
	Ante       int
}

// BigBlind returns the big blind size.
func (c RoundConfig) BigBlind() int {
	return 2 * c.SmallBlind
}

// Validate checks the config.
func (c RoundConfig) Validate() error {
	if c.SmallBlind <= 0 {
		return fmt.Errorf("%w: small blind must be positive, got %d", ErrInvalidConfig, c.SmallBlind)
	}
	if c.Ante < 0 {
		return fmt.Errorf("%w: ante must not be negative, got %d", ErrInvalidConfig, c.Ante)
	}
	return nil
}

// Seating places a player with a starting stack.
type Seating struct {
	Seat  int
	Stack int
}

// RoundOption configures a Round during creation.
type RoundOption func(*roundOptions)

type roundOptions struct {
	id        string
	rng       *rand.Rand
	deck      *poker.Deck
	evaluator poker.Evaluator
	sink      EventSink
	clock     quartz.Clock
}

// WithID sets the round identifier carried on events. Defaults to a random UUID.
func WithID(id string) RoundOption {
	return func(o *roundOptions) {
		o.id = id
	}
}

// WithRand shuffles the deck with rng instead of an entropy-seeded generator.
func WithRand(rng *rand.Rand) RoundOption {
	return func(o *roundOptions) {
		o.rng = rng
	}
}

// WithDeck deals from deck as is. It overrides WithRand.
func WithDeck(deck *poker.Deck) RoundOption {
	return func(o *roundOptions) {
		o.deck = deck
	}
}

// WithEvaluator replaces the default hand evaluator.
func WithEvaluator(e poker.Evaluator) RoundOption {
	return func(o *roundOptions) {
		o.evaluator = e
	}
}

// WithEventSink attaches an observer for round events.
func WithEventSink(sink EventSink) RoundOption {
	return func(o *roundOptions) {
		o.sink = sink
	}
}

// WithClock sets the clock used to timestamp events.
func WithClock(clock quartz.Clock) RoundOption {
	return func(o *roundOptions) {
		o.clock = clock
	}
}
