package holdem

import (
	"errors"

	"github.com/YonatanNemtsov/holdem-core/poker"
)

// Setup and structural errors, returned as Go errors.
var (
	ErrAlreadyStarted      = errors.New("round already started")
	ErrInsufficientPlayers = errors.New("at least two players are required")
	ErrTooManyPlayers      = errors.New("at most nine players may be seated")
	ErrDuplicateSeat       = errors.New("duplicate seat")
	ErrInvalidSeat         = errors.New("seat out of range")
	ErrNegativeStack       = errors.New("negative stack")
	ErrInvalidConfig       = errors.New("invalid round config")
	ErrEmptyQueue          = errors.New("turn queue is empty")
	ErrNotStarted          = errors.New("round not started")
	ErrNotEnded            = errors.New("round not ended")
	ErrInvariant           = errors.New("invariant violated")
	ErrDeckExhausted       = poker.ErrDeckExhausted
)

// Rejection reasons carried in ActionResult.Reason. They never mutate state.
var (
	ErrNotYourTurn      = errors.New("not your turn")
	ErrActionNotAllowed = errors.New("action not allowed")
	ErrCallMismatch     = errors.New("call amount does not match amount due")
	ErrRaiseOutOfRange  = errors.New("raise amount out of range")
	ErrStageClosed      = errors.New("no betting in current stage")
	ErrFolded           = errors.New("seat has folded")
	ErrUnknownSeat      = errors.New("unknown seat")
)
