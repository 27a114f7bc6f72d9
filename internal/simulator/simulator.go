package simulator

import (
	"context"
	"errors"
	"fmt"
	rand "math/rand/v2"
	"slices"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"golang.org/x/sync/errgroup"

	"github.com/YonatanNemtsov/holdem-core/internal/holdem"
	"github.com/YonatanNemtsov/holdem-core/internal/randutil"
	"github.com/YonatanNemtsov/holdem-core/internal/statistics"
)

// ErrStepLimit is returned when a hand fails to finish within MaxSteps actions.
var ErrStepLimit = errors.New("hand did not finish")

const defaultMaxSteps = 1000

// Policy chooses the next request for seat.
type Policy func(rng *rand.Rand, seat int, allowed holdem.AllowedActions) holdem.ActionRequest

// Config holds configuration for running simulations
type Config struct {
	Round   holdem.RoundConfig
	Seats   []holdem.Seating
	Hands   int
	Workers int
	// Seed makes the run reproducible. Nil deals every hand from a secure source.
	Seed     *int64
	MaxSteps int
	Policy   Policy
	Clock    quartz.Clock
	Logger   *log.Logger
	// Sink, when set, returns an observer for the given hand.
	Sink func(hand int) holdem.EventSink
}

// Report is the outcome of a run.
type Report struct {
	Stats   *statistics.Statistics
	Elapsed time.Duration
}

// Simulator plays many independent rounds with a random legal policy and
// checks that each one conserves chips and terminates.
type Simulator struct {
	config Config
}

// New creates a new simulator with the given configuration
func New(config Config) *Simulator {
	if config.MaxSteps <= 0 {
		config.MaxSteps = defaultMaxSteps
	}
	if config.Workers <= 0 {
		config.Workers = 1
	}
	if config.Policy == nil {
		config.Policy = RandomPolicy
	}
	if config.Clock == nil {
		config.Clock = quartz.NewReal()
	}
	if config.Logger == nil {
		config.Logger = log.Default()
	}
	return &Simulator{config: config}
}

// Run plays every hand and aggregates the results. The first failing hand
// cancels the rest.
func (s *Simulator) Run(ctx context.Context) (*Report, error) {
	start := s.config.Clock.Now()
	results := make([]statistics.HandResult, s.config.Hands)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.config.Workers)
	for hand := range s.config.Hands {
		g.Go(func() error {
			res, err := s.playHand(ctx, hand)
			if err != nil {
				return fmt.Errorf("hand %d: %w", hand, err)
			}
			results[hand] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	stats := &statistics.Statistics{}
	for _, res := range results {
		stats.Add(res)
	}
	if err := stats.Validate(); err != nil {
		return nil, fmt.Errorf("statistics validation failed: %w", err)
	}

	elapsed := s.config.Clock.Since(start)
	s.config.Logger.Info("Simulation complete",
		"hands", stats.Hands,
		"showdowns", stats.Showdowns,
		"max_pot", stats.MaxPot,
		"elapsed", elapsed)
	return &Report{Stats: stats, Elapsed: elapsed}, nil
}

func (s *Simulator) rng(hand int) (*rand.Rand, int64) {
	if s.config.Seed == nil {
		return randutil.NewSecure(), 0
	}
	return randutil.Derive(*s.config.Seed, hand), *s.config.Seed
}

// firstToMove rotates the opening seat so every seat posts blinds in turn.
func (s *Simulator) firstToMove(hand int) int {
	seats := make([]int, len(s.config.Seats))
	for i, seat := range s.config.Seats {
		seats[i] = seat.Seat
	}
	slices.Sort(seats)
	if len(seats) == 0 {
		return holdem.NoSeat
	}
	return seats[hand%len(seats)]
}

func (s *Simulator) playHand(ctx context.Context, hand int) (statistics.HandResult, error) {
	rng, seed := s.rng(hand)
	first := s.firstToMove(hand)

	opts := []holdem.RoundOption{holdem.WithRand(rng), holdem.WithClock(s.config.Clock)}
	if s.config.Sink != nil {
		if sink := s.config.Sink(hand); sink != nil {
			opts = append(opts, holdem.WithEventSink(sink))
		}
	}
	r, err := holdem.NewRound(s.config.Round, s.config.Seats, first, opts...)
	if err != nil {
		return statistics.HandResult{}, err
	}
	if err := r.Start(); err != nil {
		return statistics.HandResult{}, err
	}

	actions := 0
	for r.Stage() != holdem.Ended {
		if err := ctx.Err(); err != nil {
			return statistics.HandResult{}, err
		}
		if actions >= s.config.MaxSteps {
			return statistics.HandResult{}, fmt.Errorf("%w after %d actions", ErrStepLimit, actions)
		}
		seat, ok := r.ToAct()
		if !ok {
			return statistics.HandResult{}, fmt.Errorf("%w: nobody to act in %s", holdem.ErrInvariant, r.Stage())
		}
		req := s.config.Policy(rng, seat, r.AllowedActions(seat))
		res, err := r.ApplyAction(req)
		if err != nil {
			return statistics.HandResult{}, err
		}
		if !res.Accepted {
			s.config.Logger.Debug("Policy request rejected", "round", r.ID(), "seat", seat, "reason", res.Reason)
		}
		actions++
	}

	result, err := r.Result()
	if err != nil {
		return statistics.HandResult{}, err
	}
	if err := checkConservation(r, s.config.Seats); err != nil {
		return statistics.HandResult{}, err
	}
	return summarize(hand, seed, first, result, voluntary(r.ActionLog())), nil
}

func checkConservation(r *holdem.Round, seats []holdem.Seating) error {
	start, end := 0, 0
	for _, seat := range seats {
		start += seat.Stack
		stack, err := r.Stack(seat.Seat)
		if err != nil {
			return err
		}
		end += stack
	}
	if start != end {
		return fmt.Errorf("%w: started with %d chips, ended with %d", holdem.ErrInvariant, start, end)
	}
	return nil
}

func voluntary(actions []holdem.Action) int {
	n := 0
	for _, a := range actions {
		if !a.Forced {
			n++
		}
	}
	return n
}

func summarize(hand int, seed int64, first int, result holdem.Result, actions int) statistics.HandResult {
	out := statistics.HandResult{
		Hand:        hand,
		Seed:        seed,
		FirstToMove: first,
		Showdown:    result.Showdown,
		Pots:        len(result.Pots),
		Actions:     actions,
	}
	switch len(result.Board) {
	case 0:
		out.StreetReached = holdem.StreetPreFlop
	case 3:
		out.StreetReached = holdem.StreetFlop
	case 4:
		out.StreetReached = holdem.StreetTurn
	default:
		out.StreetReached = holdem.StreetRiver
	}
	for _, pot := range result.Pots {
		out.PotSize += pot.Pot.Amount
		if len(pot.Winners) > 1 {
			out.SplitPots++
		}
	}
	return out
}

// RandomPolicy picks a legal action at random, favouring passive play so that
// a good share of hands reach showdown.
func RandomPolicy(rng *rand.Rand, seat int, allowed holdem.AllowedActions) holdem.ActionRequest {
	req := holdem.ActionRequest{Seat: seat}
	roll := rng.IntN(10)
	switch {
	case allowed.Has(holdem.Raise) && roll < 2:
		req.Kind = holdem.Raise
		req.CallAmount = allowed.CallAmount
		req.RaiseAmount = allowed.MinRaise + rng.IntN(allowed.MaxRaise-allowed.MinRaise+1)
	case allowed.Has(holdem.Fold) && roll == 2:
		req.Kind = holdem.Fold
	case allowed.Has(holdem.Check):
		req.Kind = holdem.Check
	default:
		req.Kind = holdem.Call
		req.CallAmount = allowed.CallAmount
	}
	return req
}
