// Package config loads round and simulation settings from HCL files.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/YonatanNemtsov/holdem-core/internal/holdem"
)

// Config represents a complete configuration file
type Config struct {
	LogLevel   string              `hcl:"log_level,optional"`
	Round      *RoundSettings      `hcl:"round,block"`
	Seats      []SeatConfig        `hcl:"seat,block"`
	Simulation *SimulationSettings `hcl:"simulation,block"`
}

// RoundSettings holds the forced bets and who acts first.
type RoundSettings struct {
	SmallBlind int `hcl:"small_blind,optional"`
	Ante       int `hcl:"ante,optional"`
	// FirstToMove of zero means the lowest seat.
	FirstToMove int `hcl:"first_to_move,optional"`
}

// SeatConfig places a player with a starting stack.
type SeatConfig struct {
	Number int `hcl:"number"`
	Stack  int `hcl:"stack"`
}

// SimulationSettings controls batch play.
type SimulationSettings struct {
	Hands   int `hcl:"hands,optional"`
	Workers int `hcl:"workers,optional"`
	// Seed is nil when hands should be dealt from a secure random source.
	Seed *int64 `hcl:"seed,optional"`
}

const (
	defaultLogLevel   = "info"
	defaultSmallBlind = 5
	defaultStack      = 1000
	defaultSeats      = 6
	defaultHands      = 1000
	defaultWorkers    = 4
)

// Default returns the configuration used when no file is present.
func Default() *Config {
	cfg := &Config{}
	for i := 1; i <= defaultSeats; i++ {
		cfg.Seats = append(cfg.Seats, SeatConfig{Number: i, Stack: defaultStack})
	}
	cfg.applyDefaults()
	return cfg
}

// Load reads configuration from an HCL file. A missing file yields Default.
func Load(filename string) (*Config, error) {
	src, err := os.ReadFile(filename)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	return Parse(src, filename)
}

// Parse decodes HCL source. filename is only used in diagnostics.
func Parse(src []byte, filename string) (*Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %w", diags)
	}

	var cfg Config
	if diags := gohcl.DecodeBody(file.Body, nil, &cfg); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %w", diags)
	}
	if len(cfg.Seats) == 0 {
		cfg.Seats = Default().Seats
	}
	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.LogLevel == "" {
		c.LogLevel = defaultLogLevel
	}
	if c.Round == nil {
		c.Round = &RoundSettings{}
	}
	if c.Round.SmallBlind == 0 {
		c.Round.SmallBlind = defaultSmallBlind
	}
	if c.Simulation == nil {
		c.Simulation = &SimulationSettings{}
	}
	if c.Simulation.Hands == 0 {
		c.Simulation.Hands = defaultHands
	}
	if c.Simulation.Workers == 0 {
		c.Simulation.Workers = defaultWorkers
	}
}

// Validate checks the configuration for values a round would reject.
func (c *Config) Validate() error {
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log level %q: %w", c.LogLevel, err)
	}
	if err := c.RoundConfig().Validate(); err != nil {
		return err
	}

	if len(c.Seats) < 2 {
		return fmt.Errorf("%w: %d seats configured", holdem.ErrInsufficientPlayers, len(c.Seats))
	}
	if len(c.Seats) > holdem.MaxSeats {
		return fmt.Errorf("%w: %d seats configured", holdem.ErrTooManyPlayers, len(c.Seats))
	}
	seen := make(map[int]bool, len(c.Seats))
	for _, s := range c.Seats {
		if s.Number < 1 || s.Number > holdem.MaxSeats {
			return fmt.Errorf("%w: %d", holdem.ErrInvalidSeat, s.Number)
		}
		if seen[s.Number] {
			return fmt.Errorf("%w: %d", holdem.ErrDuplicateSeat, s.Number)
		}
		seen[s.Number] = true
		if s.Stack < 0 {
			return fmt.Errorf("%w: seat %d has %d", holdem.ErrNegativeStack, s.Number, s.Stack)
		}
	}
	if first := c.Round.FirstToMove; first != 0 && !seen[first] {
		return fmt.Errorf("%w: first to move %d", holdem.ErrUnknownSeat, first)
	}

	if c.Simulation.Hands <= 0 {
		return fmt.Errorf("simulation hands must be positive, got %d", c.Simulation.Hands)
	}
	if c.Simulation.Workers <= 0 {
		return fmt.Errorf("simulation workers must be positive, got %d", c.Simulation.Workers)
	}
	return nil
}

// Level returns the parsed log level, falling back to info.
func (c *Config) Level() log.Level {
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return log.InfoLevel
	}
	return level
}

// RoundConfig returns the engine settings.
func (c *Config) RoundConfig() holdem.RoundConfig {
	return holdem.RoundConfig{SmallBlind: c.Round.SmallBlind, Ante: c.Round.Ante}
}

// Seating returns the configured seats in file order.
func (c *Config) Seating() []holdem.Seating {
	out := make([]holdem.Seating, len(c.Seats))
	for i, s := range c.Seats {
		out[i] = holdem.Seating{Seat: s.Number, Stack: s.Stack}
	}
	return out
}

// FirstToMove returns the configured first seat, or the lowest seat number.
func (c *Config) FirstToMove() int {
	if c.Round.FirstToMove != 0 || len(c.Seats) == 0 {
		return c.Round.FirstToMove
	}
	lowest := c.Seats[0].Number
	for _, s := range c.Seats[1:] {
		lowest = min(lowest, s.Number)
	}
	return lowest
}
