package main

import (
	"context"
	"fmt"
	"io"
	rand "math/rand/v2"
	"os"

	"github.com/YonatanNemtsov/holdem-core/internal/dealer"
	"github.com/YonatanNemtsov/holdem-core/internal/display"
	"github.com/YonatanNemtsov/holdem-core/internal/eventlog"
	"github.com/YonatanNemtsov/holdem-core/internal/holdem"
	"github.com/YonatanNemtsov/holdem-core/internal/randutil"
	"github.com/YonatanNemtsov/holdem-core/internal/simulator"
)

const maxHandActions = 1000

// HandCmd plays a single hand through a dealer and prints it.
type HandCmd struct {
	Seed       *int64 `help:"Deterministic RNG seed for the deck and the players"`
	First      int    `help:"Seat that acts first (overrides config)"`
	Seat       int    `help:"Print the final table as this seat sees it (0 for the public view)"`
	HistoryDir string `type:"path" help:"Also write the hand history into this directory"`

	out io.Writer `kong:"-"`
}

func (c *HandCmd) Run(g *Globals) error {
	cfg, logger, err := g.load()
	if err != nil {
		return err
	}

	deckRng, policyRng := randutil.NewSecure(), randutil.NewSecure()
	if c.Seed != nil {
		deckRng, policyRng = randutil.Derive(*c.Seed, 0), randutil.Derive(*c.Seed, 1)
	}
	first := cfg.FirstToMove()
	if c.First != 0 {
		first = c.First
	}

	var writer eventlog.HistoryWriter
	if c.HistoryDir != "" {
		writer = eventlog.NewFileHistoryWriter(c.HistoryDir)
	}
	history := eventlog.NewHistory(writer, logger)
	bus := eventlog.NewBus(eventlog.NewLogSink(logger), history)

	round, err := holdem.NewRound(cfg.RoundConfig(), cfg.Seating(), first,
		holdem.WithRand(deckRng), holdem.WithEventSink(bus))
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	d := dealer.New(round, logger.WithPrefix("dealer"))
	defer d.Close()

	if err := d.Start(ctx); err != nil {
		return err
	}
	if err := play(ctx, d, policyRng); err != nil {
		return err
	}

	view, err := d.View(ctx, c.Seat)
	if err != nil {
		return err
	}
	out := c.writer()
	if _, err := fmt.Fprintln(out, history.Text()); err != nil {
		return err
	}
	_, err = fmt.Fprint(out, display.NewRenderer(nil).View(view))
	return err
}

// play drives the round to the end with the random policy.
func play(ctx context.Context, d *dealer.Dealer, rng *rand.Rand) error {
	for range maxHandActions {
		view, err := d.View(ctx, holdem.NoSeat)
		if err != nil {
			return err
		}
		if view.Stage == holdem.Ended {
			return nil
		}
		allowed, err := d.Allowed(ctx, view.ToAct)
		if err != nil {
			return err
		}
		if _, err := d.Apply(ctx, simulator.RandomPolicy(rng, view.ToAct, allowed)); err != nil {
			return err
		}
	}
	return fmt.Errorf("hand did not finish within %d actions", maxHandActions)
}

func (c *HandCmd) writer() io.Writer {
	if c.out != nil {
		return c.out
	}
	return os.Stdout
}
