// Package eventlog fans round events out to subscribers: structured logs,
// in-memory recorders and text hand histories.
package eventlog

import (
	"sync"

	"github.com/YonatanNemtsov/holdem-core/internal/holdem"
)

// Bus is an in-memory event bus. It implements holdem.EventSink so a round
// can publish straight into it.
type Bus struct {
	mu          sync.RWMutex
	subscribers []holdem.EventSink
}

// NewBus creates a bus with the given subscribers.
func NewBus(subscribers ...holdem.EventSink) *Bus {
	return &Bus{subscribers: subscribers}
}

// Subscribe adds a subscriber to receive events
func (b *Bus) Subscribe(subscriber holdem.EventSink) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subscribers = append(b.subscribers, subscriber)
}

// Unsubscribe removes a subscriber from receiving events. Subscribers must be
// comparable.
func (b *Bus) Unsubscribe(subscriber holdem.EventSink) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, sub := range b.subscribers {
		if sub == subscriber {
			b.subscribers = append(b.subscribers[:i:i], b.subscribers[i+1:]...)
			return
		}
	}
}

// Publish delivers event to every subscriber in subscription order.
func (b *Bus) Publish(event holdem.Event) {
	b.mu.RLock()
	subs := b.subscribers
	b.mu.RUnlock()
	for _, sub := range subs {
		sub.OnEvent(event)
	}
}

// OnEvent implements holdem.EventSink.
func (b *Bus) OnEvent(event holdem.Event) {
	b.Publish(event)
}

// Recorder keeps every event it receives.
type Recorder struct {
	mu     sync.Mutex
	events []holdem.Event
}

// OnEvent implements holdem.EventSink.
func (r *Recorder) OnEvent(event holdem.Event) {
	r.mu.Lock()
	r.events = append(r.events, event)
	r.mu.Unlock()
}

// Events returns a copy of the recorded events.
func (r *Recorder) Events() []holdem.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]holdem.Event, len(r.events))
	copy(out, r.events)
	return out
}

// Types returns the type of every recorded event, in order.
func (r *Recorder) Types() []holdem.EventType {
	events := r.Events()
	out := make([]holdem.EventType, len(events))
	for i, e := range events {
		out[i] = e.EventType()
	}
	return out
}
