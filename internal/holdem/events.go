package holdem

import (
	"slices"
	"time"

	"github.com/YonatanNemtsov/holdem-core/poker"
)

// EventType represents a round event type with type safety
type EventType string

// EventType constants for round events
const (
	EventTypeRoundStarted   EventType = "round_started"
	EventTypeActionApplied  EventType = "action_applied"
	EventTypeActionRejected EventType = "action_rejected"
	EventTypeStageChanged   EventType = "stage_changed"
	EventTypePotAwarded     EventType = "pot_awarded"
	EventTypeRoundEnded     EventType = "round_ended"
)

// String returns the string representation of the event type
func (et EventType) String() string {
	return string(et)
}

// Event is anything a round reports to its observers. The engine itself does
// no logging; callers attach an EventSink.
type Event interface {
	EventType() EventType
	RoundID() string
	Timestamp() time.Time
}

// EventSink receives round events synchronously, in order.
type EventSink interface {
	OnEvent(event Event)
}

// EventSinkFunc adapts a function to EventSink.
type EventSinkFunc func(event Event)

// OnEvent implements EventSink.
func (f EventSinkFunc) OnEvent(event Event) { f(event) }

type eventMeta struct {
	round     string
	timestamp time.Time
}

func (m eventMeta) RoundID() string      { return m.round }
func (m eventMeta) Timestamp() time.Time { return m.timestamp }

// RoundStartedEvent is published once cards are dealt and forced bets posted.
type RoundStartedEvent struct {
	eventMeta
	Order      []int
	Stacks     map[int]int
	SmallBlind int
	Ante       int
}

func (e RoundStartedEvent) EventType() EventType { return EventTypeRoundStarted }

// ActionAppliedEvent is published for every ledger entry, forced posts included.
type ActionAppliedEvent struct {
	eventMeta
	Action     Action
	StackAfter int
	PotAfter   int
}

func (e ActionAppliedEvent) EventType() EventType { return EventTypeActionApplied }

// ActionRejectedEvent is published when a request fails validation.
type ActionRejectedEvent struct {
	eventMeta
	Request ActionRequest
	Reason  error
}

func (e ActionRejectedEvent) EventType() EventType { return EventTypeActionRejected }

// StageChangedEvent is published on every stage transition.
type StageChangedEvent struct {
	eventMeta
	From      Stage
	To        Stage
	Community []poker.Card
}

func (e StageChangedEvent) EventType() EventType { return EventTypeStageChanged }

// PotAwardedEvent is published for each pot as it is distributed.
type PotAwardedEvent struct {
	eventMeta
	Index  int
	Result PotResult
}

func (e PotAwardedEvent) EventType() EventType { return EventTypePotAwarded }

// RoundEndedEvent is published when the round reaches Ended.
type RoundEndedEvent struct {
	eventMeta
	Result Result
}

func (e RoundEndedEvent) EventType() EventType { return EventTypeRoundEnded }

func (r *Round) meta() eventMeta {
	return eventMeta{round: r.id, timestamp: r.clock.Now()}
}

func (r *Round) emit(event Event) {
	if r.sink != nil {
		r.sink.OnEvent(event)
	}
}

func (r *Round) emitStage(from, to Stage) {
	r.emit(StageChangedEvent{
		eventMeta: r.meta(),
		From:      from,
		To:        to,
		Community: slices.Clone(r.community),
	})
}
