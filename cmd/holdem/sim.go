package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"

	"github.com/YonatanNemtsov/holdem-core/internal/display"
	"github.com/YonatanNemtsov/holdem-core/internal/eventlog"
	"github.com/YonatanNemtsov/holdem-core/internal/holdem"
	"github.com/YonatanNemtsov/holdem-core/internal/simulator"
)

// SimCmd runs a batch of random hands.
type SimCmd struct {
	Hands      int    `help:"Number of hands (overrides config)"`
	Workers    int    `help:"Concurrent workers (overrides config)"`
	Seed       *int64 `help:"Deterministic RNG seed (overrides config)"`
	HistoryDir string `type:"path" help:"Write a text hand history per hand into this directory"`

	out io.Writer `kong:"-"`
}

func (c *SimCmd) Run(g *Globals) error {
	cfg, logger, err := g.load()
	if err != nil {
		return err
	}

	sc := simulator.Config{
		Round:   cfg.RoundConfig(),
		Seats:   cfg.Seating(),
		Hands:   cfg.Simulation.Hands,
		Workers: cfg.Simulation.Workers,
		Seed:    cfg.Simulation.Seed,
		Logger:  logger.WithPrefix("sim"),
	}
	if c.Hands > 0 {
		sc.Hands = c.Hands
	}
	if c.Workers > 0 {
		sc.Workers = c.Workers
	}
	if c.Seed != nil {
		sc.Seed = c.Seed
	}
	sc.Sink = c.sink(logger)

	if sc.Seed != nil {
		logger.Info("Using deterministic seed", "seed", *sc.Seed)
	}
	logger.Info("Starting simulation", "hands", sc.Hands, "workers", sc.Workers, "seats", len(sc.Seats))

	ctx, cancel := signalContext()
	defer cancel()

	report, err := simulator.New(sc).Run(ctx)
	if err != nil {
		return fmt.Errorf("simulation failed: %w", err)
	}
	_, err = fmt.Fprint(c.writer(), display.NewRenderer(nil).Statistics(report.Stats, report.Elapsed))
	return err
}

// sink wires per-hand observers: debug event logging and hand histories.
func (c *SimCmd) sink(logger *log.Logger) func(hand int) holdem.EventSink {
	debug := logger.GetLevel() <= log.DebugLevel
	if !debug && c.HistoryDir == "" {
		return nil
	}
	var writer eventlog.HistoryWriter
	if c.HistoryDir != "" {
		writer = eventlog.NewFileHistoryWriter(c.HistoryDir)
	}
	events := eventlog.NewLogSink(logger)
	return func(int) holdem.EventSink {
		bus := eventlog.NewBus()
		if debug {
			bus.Subscribe(events)
		}
		if writer != nil {
			bus.Subscribe(eventlog.NewHistory(writer, logger))
		}
		return bus
	}
}

func (c *SimCmd) writer() io.Writer {
	if c.out != nil {
		return c.out
	}
	return os.Stdout
}
