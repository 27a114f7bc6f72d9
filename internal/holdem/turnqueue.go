package holdem

import "slices"

// TurnQueue holds the seats still owed an action on the current street.
// The order is the seating order rotated to the round's first mover and
// never changes once the round is built.
type TurnQueue struct {
	order []int
	queue []int
}

// NewTurnQueue creates a queue holding every seat in order.
func NewTurnQueue(order []int) *TurnQueue {
	return &TurnQueue{
		order: slices.Clone(order),
		queue: slices.Clone(order),
	}
}

// Len returns the number of seats waiting to act.
func (q *TurnQueue) Len() int {
	return len(q.queue)
}

// Next dequeues the head. It returns ErrEmptyQueue when the street is done.
func (q *TurnQueue) Next() (int, error) {
	if len(q.queue) == 0 {
		return 0, ErrEmptyQueue
	}
	seat := q.queue[0]
	q.queue = q.queue[1:]
	return seat, nil
}

// Contains reports whether seat is waiting to act.
func (q *TurnQueue) Contains(seat int) bool {
	return slices.Contains(q.queue, seat)
}

// Remove drops seat from the queue, used when a player folds.
func (q *TurnQueue) Remove(seat int) {
	q.queue = slices.DeleteFunc(q.queue, func(s int) bool { return s == seat })
}

// RequeueAfterRaise appends, in seating order starting just after the raiser,
// every seat still in the hand that is not already queued.
func (q *TurnQueue) RequeueAfterRaise(raiser int, inHand func(seat int) bool) {
	if len(q.order) == 0 {
		return
	}
	for _, seat := range rotate(q.order, raiser)[1:] {
		if seat != raiser && inHand(seat) && !q.Contains(seat) {
			q.queue = append(q.queue, seat)
		}
	}
}

// ResetForNewStreet refills the queue with every seat still in the hand,
// in move order.
func (q *TurnQueue) ResetForNewStreet(inHand func(seat int) bool) {
	q.queue = q.queue[:0]
	for _, seat := range q.order {
		if inHand(seat) {
			q.queue = append(q.queue, seat)
		}
	}
}

// Seats returns the waiting seats, head first.
func (q *TurnQueue) Seats() []int {
	return slices.Clone(q.queue)
}

// Order returns the fixed move order.
func (q *TurnQueue) Order() []int {
	return slices.Clone(q.order)
}

// rotate returns order starting at seat. An unknown seat leaves order as is.
func rotate(order []int, seat int) []int {
	i := slices.Index(order, seat)
	if i < 0 {
		return slices.Clone(order)
	}
	return append(slices.Clone(order[i:]), order[:i]...)
}
