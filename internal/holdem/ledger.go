package holdem

import "slices"

// Ledger is the append-only record of every action in a round, bucketed by street.
type Ledger struct {
	actions []Action
}

// Record appends an action.
func (l *Ledger) Record(a Action) {
	l.actions = append(l.actions, a)
}

// All returns every action in order.
func (l *Ledger) All() []Action {
	return slices.Clone(l.actions)
}

// Actions returns the actions of one street in order.
func (l *Ledger) Actions(street Street) []Action {
	var out []Action
	for _, a := range l.actions {
		if a.Street == street {
			out = append(out, a)
		}
	}
	return out
}

// ContributedOnStreet sums the seat's call and raise amounts on a street.
func (l *Ledger) ContributedOnStreet(seat int, street Street) int {
	total := 0
	for _, a := range l.actions {
		if a.Seat == seat && a.Street == street {
			total += a.Total()
		}
	}
	return total
}

// Contributed sums the seat's contributions across all streets, antes included.
func (l *Ledger) Contributed(seat int) int {
	total := 0
	for _, a := range l.actions {
		if a.Seat == seat {
			total += a.Total()
		}
	}
	return total
}

// Total is every chip committed so far.
func (l *Ledger) Total() int {
	total := 0
	for _, a := range l.actions {
		total += a.Total()
	}
	return total
}

// HighestOnStreet is the largest per-seat contribution on a street.
func (l *Ledger) HighestOnStreet(street Street) int {
	per := make(map[int]int)
	highest := 0
	for _, a := range l.actions {
		if a.Street != street {
			continue
		}
		per[a.Seat] += a.Total()
		highest = max(highest, per[a.Seat])
	}
	return highest
}

// CallAmountDue is what the seat must add to match the street's largest
// contribution, capped by its stack.
func (l *Ledger) CallAmountDue(seat int, street Street, stack int) int {
	due := l.HighestOnStreet(street) - l.ContributedOnStreet(seat, street)
	return max(0, min(stack, due))
}

// LargestRaise is the largest raise amount on the street, or 0.
func (l *Ledger) LargestRaise(street Street) int {
	largest := 0
	for _, a := range l.actions {
		if a.Street == street && a.Kind == Raise {
			largest = max(largest, a.RaiseAmount)
		}
	}
	return largest
}

// RaiseBounds returns the no-limit raise range for a seat. ok is false when
// the seat cannot put in more than the call.
func (l *Ledger) RaiseBounds(seat int, street Street, stack, smallBlind int) (lo, hi int, ok bool) {
	hi = stack - l.CallAmountDue(seat, street, stack)
	if hi <= 0 {
		return 0, 0, false
	}
	lo = min(max(2*smallBlind, l.LargestRaise(street)), hi)
	return lo, hi, true
}

// LastFullRaise returns the index, within the street's actions, of the most
// recent voluntary raise that met the minimum raise in force when it was
// made. It returns -1 when there is none.
func (l *Ledger) LastFullRaise(street Street, smallBlind int) int {
	last, largest := -1, 0
	for i, a := range l.Actions(street) {
		if a.Kind != Raise {
			continue
		}
		if !a.Forced && a.RaiseAmount >= max(2*smallBlind, largest) {
			last = i
		}
		largest = max(largest, a.RaiseAmount)
	}
	return last
}

// ActedSince reports whether the seat took a voluntary action on the street
// at or after index from.
func (l *Ledger) ActedSince(seat int, street Street, from int) bool {
	for i, a := range l.Actions(street) {
		if i >= from && a.Seat == seat && !a.Forced {
			return true
		}
	}
	return false
}

// Last returns the seat's most recent action on the street.
func (l *Ledger) Last(seat int, street Street) (Action, bool) {
	for i := len(l.actions) - 1; i >= 0; i-- {
		if a := l.actions[i]; a.Seat == seat && a.Street == street {
			return a, true
		}
	}
	return Action{}, false
}
