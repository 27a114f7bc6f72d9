package holdem

import (
	"fmt"
	"slices"
	"strings"
)

// ActionKind is the closed set of betting actions.
type ActionKind uint8

const (
	Fold ActionKind = iota
	Check
	Call
	Raise
)

func (k ActionKind) String() string {
	switch k {
	case Fold:
		return "fold"
	case Check:
		return "check"
	case Call:
		return "call"
	case Raise:
		return "raise"
	}
	return fmt.Sprintf("action(%d)", uint8(k))
}

// ParseActionKind converts a case-insensitive action name.
func ParseActionKind(s string) (ActionKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "fold":
		return Fold, nil
	case "check":
		return Check, nil
	case "call":
		return Call, nil
	case "raise":
		return Raise, nil
	}
	return 0, fmt.Errorf("unknown action %q", s)
}

// Action is an immutable ledger entry.
type Action struct {
	Street      Street
	Seat        int
	Kind        ActionKind
	CallAmount  int
	RaiseAmount int
	// Forced marks antes and blinds, which do not count as having acted.
	Forced bool
}

// Total is the number of chips the action moved into the pot.
func (a Action) Total() int {
	return a.CallAmount + a.RaiseAmount
}

func (a Action) String() string {
	switch a.Kind {
	case Fold, Check:
		return fmt.Sprintf("seat %d %s", a.Seat, a.Kind)
	case Call:
		return fmt.Sprintf("seat %d call %d", a.Seat, a.CallAmount)
	}
	return fmt.Sprintf("seat %d raise %d (call %d)", a.Seat, a.RaiseAmount, a.CallAmount)
}

// ActionRequest is a player's submitted move.
type ActionRequest struct {
	Seat        int
	Kind        ActionKind
	CallAmount  int
	RaiseAmount int
}

// ActionResult reports whether a request was applied. Reason holds the
// rejection sentinel when Accepted is false.
type ActionResult struct {
	Accepted bool
	Reason   error
}

func rejected(reason error) ActionResult {
	return ActionResult{Reason: reason}
}

// AllowedActions describes what a seat may submit right now.
type AllowedActions struct {
	Actions    []ActionKind
	CallAmount int
	MinRaise   int
	MaxRaise   int
}

// Has reports whether kind is among the allowed actions.
func (a AllowedActions) Has(kind ActionKind) bool {
	return slices.Contains(a.Actions, kind)
}
