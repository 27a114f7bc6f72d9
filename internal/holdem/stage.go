package holdem

// Stage is the round's position in the street state machine.
type Stage uint8

const (
	NotStarted Stage = iota
	PreFlop
	Flop
	Turn
	River
	Showdown
	NoShowdown
	Ended
)

func (s Stage) String() string {
	switch s {
	case NotStarted:
		return "not started"
	case PreFlop:
		return "preflop"
	case Flop:
		return "flop"
	case Turn:
		return "turn"
	case River:
		return "river"
	case Showdown:
		return "showdown"
	case NoShowdown:
		return "no showdown"
	case Ended:
		return "ended"
	}
	return "unknown"
}

// IsBetting reports whether players act during the stage.
func (s Stage) IsBetting() bool {
	return s >= PreFlop && s <= River
}

// communityCount is the number of board cards visible at the stage.
func (s Stage) communityCount() int {
	switch s {
	case Flop:
		return 3
	case Turn:
		return 4
	case River, Showdown:
		return 5
	}
	return 0
}

// Street identifies a ledger bucket. Antes have their own bucket so they
// count toward pots without counting toward pre-flop matching.
type Street uint8

const (
	StreetAnte Street = iota
	StreetPreFlop
	StreetFlop
	StreetTurn
	StreetRiver
)

func (s Street) String() string {
	switch s {
	case StreetAnte:
		return "ante"
	case StreetPreFlop:
		return "preflop"
	case StreetFlop:
		return "flop"
	case StreetTurn:
		return "turn"
	case StreetRiver:
		return "river"
	}
	return "unknown"
}

// streetOf maps a betting stage to its ledger bucket.
func streetOf(s Stage) Street {
	switch s {
	case Flop:
		return StreetFlop
	case Turn:
		return StreetTurn
	case River:
		return StreetRiver
	}
	return StreetPreFlop
}
