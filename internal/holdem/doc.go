// Package holdem implements a single hand of no-limit Texas Hold'em: turn
// order, wager validation, street progression, side pots, and showdown.
//
// A Round is synchronous and performs no I/O. Every state change is reported
// to an optional EventSink. Callers that share a Round between goroutines
// must serialize access, for example through internal/dealer.
//
// Basic usage:
//
//	r, err := holdem.NewRound(holdem.RoundConfig{SmallBlind: 5}, []holdem.Seating{
//	    {Seat: 1, Stack: 500},
//	    {Seat: 2, Stack: 500},
//	}, 1)
//	if err != nil {
//	    return err
//	}
//	if err := r.Start(); err != nil {
//	    return err
//	}
//	seat, _ := r.ToAct()
//	allowed := r.AllowedActions(seat)
//	res, err := r.ApplyAction(holdem.ActionRequest{
//	    Seat:       seat,
//	    Kind:       holdem.Call,
//	    CallAmount: allowed.CallAmount,
//	})
package holdem
