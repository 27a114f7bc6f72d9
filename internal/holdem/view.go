package holdem

import (
	"slices"

	"github.com/YonatanNemtsov/holdem-core/poker"
)

// PlayerView is the public state of one seat.
type PlayerView struct {
	Seat        int
	Stack       int
	Contributed int
	Folded      bool
	AllIn       bool
	// HoleCards is set for the viewer's own seat, and for every live seat
	// once the round ended in a showdown.
	HoleCards []poker.Card
}

// View is a projection of the round for one seat, or for nobody with NoSeat.
type View struct {
	RoundID   string
	Seat      int
	HoleCards []poker.Card
	Allowed   AllowedActions

	Stage     Stage
	ToAct     int
	Community []poker.Card
	Players   []PlayerView
	Pots      []Pot
	PotTotal  int
	// Actions is the public log of the current street.
	Actions []Action
	Result  *Result
}

// View returns what seat is entitled to see. Other seats' hole cards stay
// hidden until a showdown.
func (r *Round) View(seat int) View {
	v := View{
		RoundID:   r.id,
		Seat:      seat,
		Stage:     r.stage,
		ToAct:     r.toAct,
		Community: slices.Clone(r.community),
	}
	if p, ok := r.bySeat[seat]; ok {
		v.HoleCards = slices.Clone(p.hole)
		v.Allowed = r.AllowedActions(seat)
	}

	if res, err := r.Result(); err == nil {
		v.Result = &res
	}
	showdown := v.Result != nil && v.Result.Showdown

	for _, p := range r.players {
		pv := PlayerView{
			Seat:        p.seat,
			Stack:       p.stack,
			Contributed: r.ledger.Contributed(p.seat),
			Folded:      p.folded,
			AllIn:       r.stage != NotStarted && p.stack == 0 && !p.folded,
		}
		if p.seat == seat || (showdown && !p.folded) {
			pv.HoleCards = slices.Clone(p.hole)
		}
		v.Players = append(v.Players, pv)
	}

	if pots, err := r.Pots(); err == nil {
		v.Pots = clonePots(pots)
		v.PotTotal = PotTotal(pots)
	}
	if r.stage != NotStarted {
		v.Actions = r.ledger.Actions(r.street)
	}
	return v
}
