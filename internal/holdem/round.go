package holdem

import (
	"cmp"
	"fmt"
	"maps"
	rand "math/rand/v2"
	"slices"

	"github.com/coder/quartz"
	"github.com/google/uuid"

	"github.com/YonatanNemtsov/holdem-core/internal/randutil"
	"github.com/YonatanNemtsov/holdem-core/poker"
)

// MaxSeats is the largest supported table. Seats are numbered 1..MaxSeats.
const MaxSeats = 9

// NoSeat requests the public view with no private data.
const NoSeat = 0

type player struct {
	seat   int
	stack  int
	hole   []poker.Card
	folded bool
}

// Round is a single hand of no-limit Texas Hold'em, from the deal to the
// distribution of every pot. A Round is not safe for concurrent use; see
// internal/dealer for a serialized owner.
type Round struct {
	id    string
	cfg   RoundConfig
	chips int // sum of starting stacks

	players []*player // seating order
	bySeat  map[int]*player
	order   []int // seating order rotated to the first mover

	stage     Stage
	street    Street
	ledger    Ledger
	community []poker.Card
	queue     *TurnQueue
	toAct     int
	result    *Result
	err       error

	deck      *poker.Deck
	rng       *rand.Rand
	evaluator poker.Evaluator
	sink      EventSink
	clock     quartz.Clock
}

// NewRound validates the seating and builds a round that has not started.
// firstToMove is the seat that acts first on every street; the last two
// seats of the resulting move order post the small and big blind.
func NewRound(cfg RoundConfig, seats []Seating, firstToMove int, opts ...RoundOption) (*Round, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if len(seats) > MaxSeats {
		return nil, fmt.Errorf("%w: %d seats", ErrTooManyPlayers, len(seats))
	}

	var o roundOptions
	for _, opt := range opts {
		opt(&o)
	}
	if o.id == "" {
		o.id = uuid.NewString()
	}
	if o.evaluator == nil {
		o.evaluator = poker.DefaultEvaluator
	}
	if o.clock == nil {
		o.clock = quartz.NewReal()
	}

	r := &Round{
		id:        o.id,
		cfg:       cfg,
		bySeat:    make(map[int]*player, len(seats)),
		deck:      o.deck,
		rng:       o.rng,
		evaluator: o.evaluator,
		sink:      o.sink,
		clock:     o.clock,
	}
	for _, s := range seats {
		if s.Seat < 1 || s.Seat > MaxSeats {
			return nil, fmt.Errorf("%w: %d", ErrInvalidSeat, s.Seat)
		}
		if s.Stack < 0 {
			return nil, fmt.Errorf("%w: seat %d has %d", ErrNegativeStack, s.Seat, s.Stack)
		}
		if _, dup := r.bySeat[s.Seat]; dup {
			return nil, fmt.Errorf("%w: %d", ErrDuplicateSeat, s.Seat)
		}
		p := &player{seat: s.Seat, stack: s.Stack}
		r.players = append(r.players, p)
		r.bySeat[s.Seat] = p
		r.chips += s.Stack
	}
	slices.SortFunc(r.players, func(a, b *player) int { return cmp.Compare(a.seat, b.seat) })

	seating := make([]int, len(r.players))
	for i, p := range r.players {
		seating[i] = p.seat
	}
	if len(seating) > 0 && r.bySeat[firstToMove] == nil {
		return nil, fmt.Errorf("%w: first to move %d", ErrUnknownSeat, firstToMove)
	}
	r.order = rotate(seating, firstToMove)
	r.queue = NewTurnQueue(r.order)
	return r, nil
}

// ID returns the round identifier.
func (r *Round) ID() string { return r.id }

// Config returns the forced bet sizes.
func (r *Round) Config() RoundConfig { return r.cfg }

// Stage returns the current stage.
func (r *Round) Stage() Stage { return r.stage }

// Err returns the invariant violation that halted the round, if any.
func (r *Round) Err() error { return r.err }

// MoveOrder returns the seats in acting order.
func (r *Round) MoveOrder() []int { return slices.Clone(r.order) }

// ToAct returns the seat whose turn it is.
func (r *Round) ToAct() (int, bool) {
	return r.toAct, r.toAct != NoSeat
}

// Community returns the board.
func (r *Round) Community() []poker.Card { return slices.Clone(r.community) }

// Stack returns a seat's current chip count.
func (r *Round) Stack(seat int) (int, error) {
	p, ok := r.bySeat[seat]
	if !ok {
		return 0, fmt.Errorf("%w: %d", ErrUnknownSeat, seat)
	}
	return p.stack, nil
}

// HoleCards returns a seat's private cards.
func (r *Round) HoleCards(seat int) ([]poker.Card, error) {
	p, ok := r.bySeat[seat]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownSeat, seat)
	}
	return slices.Clone(p.hole), nil
}

// Start deals two hole cards to every seat, posts antes and blinds, and
// opens pre-flop betting.
func (r *Round) Start() error {
	if r.err != nil {
		return r.err
	}
	if r.stage != NotStarted {
		return ErrAlreadyStarted
	}
	if len(r.players) < 2 {
		return fmt.Errorf("%w: %d seated", ErrInsufficientPlayers, len(r.players))
	}

	if r.deck == nil {
		if r.rng == nil {
			r.rng = randutil.NewSecure()
		}
		r.deck = poker.NewDeck(r.rng)
	}
	holes := make([][]poker.Card, len(r.players))
	for i := range r.players {
		hole, err := r.deck.Deal(2)
		if err != nil {
			return fmt.Errorf("dealing hole cards: %w", err)
		}
		holes[i] = hole
	}
	stacks := make(map[int]int, len(r.players))
	for i, p := range r.players {
		p.hole = holes[i]
		stacks[p.seat] = p.stack
	}

	r.emit(RoundStartedEvent{
		eventMeta:  r.meta(),
		Order:      slices.Clone(r.order),
		Stacks:     stacks,
		SmallBlind: r.cfg.SmallBlind,
		Ante:       r.cfg.Ante,
	})
	r.stage, r.street = PreFlop, StreetPreFlop
	r.emitStage(NotStarted, PreFlop)

	r.postForced()

	seat, err := r.queue.Next()
	if err != nil {
		return r.fail(err)
	}
	r.toAct = seat
	if err := r.checkChips(); err != nil {
		return r.fail(err)
	}
	return nil
}

// postForced records antes for every seat, then the blinds: the small blind
// from the second to last seat in move order and the big blind from the last.
// Posts are capped by the stack.
func (r *Round) postForced() {
	if r.cfg.Ante > 0 {
		for _, seat := range r.order {
			if amount := min(r.bySeat[seat].stack, r.cfg.Ante); amount > 0 {
				r.record(Action{Street: StreetAnte, Seat: seat, Kind: Call, CallAmount: amount, Forced: true})
			}
		}
	}

	n := len(r.order)
	sb, bb := r.bySeat[r.order[n-2]], r.bySeat[r.order[n-1]]

	small := min(sb.stack, r.cfg.SmallBlind)
	if small > 0 {
		r.record(Action{Street: StreetPreFlop, Seat: sb.seat, Kind: Raise, RaiseAmount: small, Forced: true})
	}
	if big := min(bb.stack, r.cfg.BigBlind()); big > 0 {
		call := min(big, small)
		kind := Raise
		if big == call {
			kind = Call
		}
		r.record(Action{Street: StreetPreFlop, Seat: bb.seat, Kind: kind, CallAmount: call, RaiseAmount: big - call, Forced: true})
	}
}

// record appends an action, debits the stack, and reports it.
func (r *Round) record(a Action) {
	p := r.bySeat[a.Seat]
	p.stack -= a.Total()
	if a.Kind == Fold {
		p.folded = true
	}
	r.ledger.Record(a)
	r.emit(ActionAppliedEvent{
		eventMeta:  r.meta(),
		Action:     a,
		StackAfter: p.stack,
		PotAfter:   r.ledger.Total(),
	})
}

// AllowedActions reports what seat may do now. It is empty outside betting,
// when it is not the seat's turn, or when the seat folded. A seat with no
// chips left may only check.
func (r *Round) AllowedActions(seat int) AllowedActions {
	p, ok := r.bySeat[seat]
	if !ok || r.err != nil || !r.stage.IsBetting() || seat != r.toAct || p.folded {
		return AllowedActions{}
	}
	if p.stack == 0 {
		return AllowedActions{Actions: []ActionKind{Check}}
	}

	allowed := AllowedActions{Actions: []ActionKind{Fold}}
	due := r.ledger.CallAmountDue(seat, r.street, p.stack)
	if due == 0 {
		allowed.Actions = append(allowed.Actions, Check)
	} else {
		allowed.Actions = append(allowed.Actions, Call)
		allowed.CallAmount = due
	}
	if lo, hi, ok := r.raiseBounds(p); ok {
		allowed.Actions = append(allowed.Actions, Raise)
		allowed.MinRaise, allowed.MaxRaise = lo, hi
	}
	return allowed
}

// raiseBounds applies the no-limit range plus the reopening rule: a seat that
// already acted voluntarily since the last full raise may only call or fold,
// and nobody raises when every other live player is all-in.
func (r *Round) raiseBounds(p *player) (lo, hi int, ok bool) {
	lo, hi, ok = r.ledger.RaiseBounds(p.seat, r.street, p.stack, r.cfg.SmallBlind)
	if !ok {
		return 0, 0, false
	}
	if r.ledger.ActedSince(p.seat, r.street, r.ledger.LastFullRaise(r.street, r.cfg.SmallBlind)) {
		return 0, 0, false
	}
	for _, other := range r.players {
		if other != p && !other.folded && other.stack > 0 {
			return lo, hi, true
		}
	}
	return 0, 0, false
}

// ApplyAction validates and applies a player's move. Illegal requests are
// rejected with a reason and change nothing; the error is reserved for
// invariant violations, after which the round refuses further actions.
func (r *Round) ApplyAction(req ActionRequest) (ActionResult, error) {
	if r.err != nil {
		return ActionResult{}, r.err
	}
	if reason := r.validate(req); reason != nil {
		r.emit(ActionRejectedEvent{eventMeta: r.meta(), Request: req, Reason: reason})
		return rejected(reason), nil
	}
	if req.Kind == Fold || req.Kind == Check {
		// Amounts sent with a fold or check are ignored.
		req.CallAmount, req.RaiseAmount = 0, 0
	}

	r.record(Action{
		Street:      r.street,
		Seat:        req.Seat,
		Kind:        req.Kind,
		CallAmount:  req.CallAmount,
		RaiseAmount: req.RaiseAmount,
	})
	switch req.Kind {
	case Fold:
		r.queue.Remove(req.Seat)
	case Raise:
		r.queue.RequeueAfterRaise(req.Seat, r.inHand)
	}

	if err := r.advanceTurn(); err != nil {
		return ActionResult{Accepted: true}, r.fail(err)
	}
	if err := r.checkChips(); err != nil {
		return ActionResult{Accepted: true}, r.fail(err)
	}
	return ActionResult{Accepted: true}, nil
}

func (r *Round) validate(req ActionRequest) error {
	p, ok := r.bySeat[req.Seat]
	switch {
	case !ok:
		return ErrUnknownSeat
	case !r.stage.IsBetting():
		return ErrStageClosed
	case p.folded:
		return ErrFolded
	case req.Seat != r.toAct:
		return ErrNotYourTurn
	}

	allowed := r.AllowedActions(req.Seat)
	if !allowed.Has(req.Kind) {
		return ErrActionNotAllowed
	}
	switch req.Kind {
	case Fold, Check:
	case Call:
		if req.CallAmount != allowed.CallAmount || req.RaiseAmount != 0 {
			return ErrCallMismatch
		}
	case Raise:
		if req.CallAmount != allowed.CallAmount {
			return ErrCallMismatch
		}
		if req.RaiseAmount < allowed.MinRaise || req.RaiseAmount > allowed.MaxRaise {
			return ErrRaiseOutOfRange
		}
	default:
		return ErrActionNotAllowed
	}
	return nil
}

// advanceTurn hands the turn to the next queued seat, moving through streets
// as queues empty, and resolves the round once betting is over.
func (r *Round) advanceTurn() error {
	r.toAct = NoSeat
	if len(r.liveSeats()) < 2 {
		return r.finish(NoShowdown)
	}
	for {
		seat, err := r.queue.Next()
		if err == nil {
			r.toAct = seat
			return nil
		}
		if r.stage == River {
			return r.finish(Showdown)
		}
		if err := r.nextStreet(); err != nil {
			return err
		}
	}
}

// nextStreet deals the board cards for the following street and refills the queue.
func (r *Round) nextStreet() error {
	from := r.stage
	to := from + 1
	cards, err := r.deck.Deal(to.communityCount() - len(r.community))
	if err != nil {
		return fmt.Errorf("dealing %s: %w", to, err)
	}
	r.community = append(r.community, cards...)
	r.stage, r.street = to, streetOf(to)
	r.queue.ResetForNewStreet(r.inHand)
	r.emitStage(from, to)
	return nil
}

// finish enters Showdown or NoShowdown, pays every pot, and ends the round.
func (r *Round) finish(stage Stage) error {
	from := r.stage
	r.stage = stage
	r.emitStage(from, stage)

	pots, err := BuildPots(r.contributions())
	if err != nil {
		return err
	}
	live := r.liveSeats()

	var rank func(seat int) poker.HandRank
	var ranks map[int]poker.HandRank
	if stage == Showdown {
		ranks = make(map[int]poker.HandRank, len(live))
		for _, seat := range live {
			hr, err := r.evaluator.Evaluate(r.bySeat[seat].hole, r.community)
			if err != nil {
				return fmt.Errorf("%w: evaluating seat %d: %w", ErrInvariant, seat, err)
			}
			ranks[seat] = hr
		}
		rank = func(seat int) poker.HandRank { return ranks[seat] }
	}

	results, err := resolvePots(pots, live, rank)
	if err != nil {
		return err
	}
	payouts := make(map[int]int)
	for _, res := range results {
		for j, seat := range res.Winners {
			r.bySeat[seat].stack += res.Shares[j]
			payouts[seat] += res.Shares[j]
		}
	}
	r.result = &Result{
		Showdown: stage == Showdown,
		Board:    slices.Clone(r.community),
		Pots:     results,
		Payouts:  payouts,
		Ranks:    ranks,
	}
	// Observers of PotAwarded see the pots already paid and cleared.
	r.stage = Ended
	if err := r.checkChips(); err != nil {
		return err
	}

	for i, res := range results {
		r.emit(PotAwardedEvent{eventMeta: r.meta(), Index: i, Result: res})
	}
	r.emitStage(stage, Ended)
	res, _ := r.Result()
	r.emit(RoundEndedEvent{eventMeta: r.meta(), Result: res})
	return nil
}

// checkChips verifies that stacks plus committed chips equal the starting total.
func (r *Round) checkChips() error {
	total := 0
	for _, p := range r.players {
		total += p.stack
	}
	if r.stage != Ended {
		total += r.ledger.Total()
	}
	if total != r.chips {
		return fmt.Errorf("%w: %d chips in play, started with %d", ErrInvariant, total, r.chips)
	}
	return nil
}

// fail poisons the round so that every later call reports err.
func (r *Round) fail(err error) error {
	r.err = err
	r.toAct = NoSeat
	return err
}

func (r *Round) inHand(seat int) bool {
	return !r.bySeat[seat].folded
}

// liveSeats returns the non-folded seats in move order.
func (r *Round) liveSeats() []int {
	var live []int
	for _, seat := range r.order {
		if r.inHand(seat) {
			live = append(live, seat)
		}
	}
	return live
}

func (r *Round) contributions() []Contribution {
	out := make([]Contribution, len(r.players))
	for i, p := range r.players {
		out[i] = Contribution{Seat: p.seat, Amount: r.ledger.Contributed(p.seat), Folded: p.folded}
	}
	return out
}

// Pots builds the current pot tiers from the ledger. Pots are cleared once
// they are distributed; see Result for the final split.
func (r *Round) Pots() ([]Pot, error) {
	if r.stage == NotStarted || r.stage == Ended {
		return nil, nil
	}
	return BuildPots(r.contributions())
}

// ActionLog returns every recorded action in order, forced posts included.
func (r *Round) ActionLog() []Action {
	return r.ledger.All()
}

// LastAction returns the seat's most recent action on the current street.
func (r *Round) LastAction(seat int) (Action, bool) {
	if r.stage == NotStarted {
		return Action{}, false
	}
	return r.ledger.Last(seat, r.street)
}

// QueuedSeats returns the seats still owed an action after the current mover.
func (r *Round) QueuedSeats() []int {
	return r.queue.Seats()
}

// Result returns how the pots were won. It fails until the round has ended.
func (r *Round) Result() (Result, error) {
	if r.result == nil {
		return Result{}, ErrNotEnded
	}
	res := *r.result
	res.Board = slices.Clone(res.Board)
	res.Payouts = maps.Clone(res.Payouts)
	res.Ranks = maps.Clone(res.Ranks)
	res.Pots = make([]PotResult, len(r.result.Pots))
	for i, p := range r.result.Pots {
		res.Pots[i] = PotResult{
			Pot:     clonePots([]Pot{p.Pot})[0],
			Winners: slices.Clone(p.Winners),
			Shares:  slices.Clone(p.Shares),
		}
	}
	return res, nil
}

// HandRankName describes the seat's best hand on the current board.
func (r *Round) HandRankName(seat int) (string, error) {
	p, ok := r.bySeat[seat]
	if !ok {
		return "", fmt.Errorf("%w: %d", ErrUnknownSeat, seat)
	}
	if r.stage == NotStarted {
		return "", ErrNotStarted
	}
	hr, err := r.evaluator.Evaluate(p.hole, r.community)
	if err != nil {
		return "", err
	}
	return r.evaluator.RankClassName(hr), nil
}
