// Package dealer owns a holdem.Round on a single goroutine and serializes
// every command sent to it, so that handlers on many goroutines can drive
// one hand safely.
package dealer

import (
	"context"
	"errors"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/YonatanNemtsov/holdem-core/internal/holdem"
)

// ErrClosed is returned by every call made after Close.
var ErrClosed = errors.New("dealer closed")

// Dealer is the only owner of its round.
type Dealer struct {
	round    *holdem.Round
	commands chan func(*holdem.Round)
	done     chan struct{}
	once     sync.Once
	logger   *log.Logger
}

// New starts a dealer for round, logging to log.Default when logger is nil.
// The caller must not touch round directly afterwards.
func New(round *holdem.Round, logger *log.Logger) *Dealer {
	if logger == nil {
		logger = log.Default()
	}
	d := &Dealer{
		round:    round,
		commands: make(chan func(*holdem.Round)),
		done:     make(chan struct{}),
		logger:   logger.With("round", round.ID()),
	}
	go d.run()
	return d
}

func (d *Dealer) run() {
	for {
		select {
		case cmd := <-d.commands:
			cmd(d.round)
		case <-d.done:
			return
		}
	}
}

// Close stops the dealer. It is safe to call more than once.
func (d *Dealer) Close() {
	d.once.Do(func() { close(d.done) })
}

// Done is closed once the dealer stops.
func (d *Dealer) Done() <-chan struct{} {
	return d.done
}

// call runs fn on the dealer goroutine and waits for its result.
func call[T any](ctx context.Context, d *Dealer, fn func(*holdem.Round) T) (T, error) {
	var zero T
	reply := make(chan T, 1)
	cmd := func(r *holdem.Round) { reply <- fn(r) }

	select {
	case d.commands <- cmd:
	case <-d.done:
		return zero, ErrClosed
	case <-ctx.Done():
		return zero, ctx.Err()
	}

	// The command was received, so it runs to completion.
	select {
	case v := <-reply:
		return v, nil
	case <-ctx.Done():
		return zero, ctx.Err()
	}
}

// Start deals the hand.
func (d *Dealer) Start(ctx context.Context) error {
	err, cerr := call(ctx, d, func(r *holdem.Round) error {
		err := r.Start()
		if err != nil {
			d.logger.Error("Failed to start round", "error", err)
			return err
		}
		seat, _ := r.ToAct()
		d.logger.Debug("Round started", "to_act", seat)
		return nil
	})
	if cerr != nil {
		return cerr
	}
	return err
}

type applied struct {
	result holdem.ActionResult
	err    error
}

// Apply submits a player's action.
func (d *Dealer) Apply(ctx context.Context, req holdem.ActionRequest) (holdem.ActionResult, error) {
	out, err := call(ctx, d, func(r *holdem.Round) applied {
		res, err := r.ApplyAction(req)
		switch {
		case err != nil:
			d.logger.Error("Round halted", "seat", req.Seat, "action", req.Kind, "error", err)
		case !res.Accepted:
			d.logger.Warn("Action rejected", "seat", req.Seat, "action", req.Kind, "reason", res.Reason)
		default:
			d.logger.Debug("Action applied", "seat", req.Seat, "action", req.Kind,
				"call", req.CallAmount, "raise", req.RaiseAmount, "stage", r.Stage())
		}
		return applied{res, err}
	})
	if err != nil {
		return holdem.ActionResult{}, err
	}
	return out.result, out.err
}

// Allowed returns the actions seat may take now.
func (d *Dealer) Allowed(ctx context.Context, seat int) (holdem.AllowedActions, error) {
	return call(ctx, d, func(r *holdem.Round) holdem.AllowedActions {
		return r.AllowedActions(seat)
	})
}

// View returns a consistent snapshot for seat, or the public view for holdem.NoSeat.
func (d *Dealer) View(ctx context.Context, seat int) (holdem.View, error) {
	return call(ctx, d, func(r *holdem.Round) holdem.View {
		return r.View(seat)
	})
}

type finished struct {
	result holdem.Result
	err    error
}

// Result returns the outcome once the hand has ended.
func (d *Dealer) Result(ctx context.Context) (holdem.Result, error) {
	out, err := call(ctx, d, func(r *holdem.Round) finished {
		res, err := r.Result()
		return finished{res, err}
	})
	if err != nil {
		return holdem.Result{}, err
	}
	return out.result, out.err
}
