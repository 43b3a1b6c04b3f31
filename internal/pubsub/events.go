// Package pubsub provides a generic publish/subscribe event system used to
// fan out page state changes, transitions, log entries and file events.
package pubsub

import (
	"context"
	"time"
)

// EventType represents the type of event being published.
type EventType string

const (
	// CreatedEvent announces a new item (log entry, script file).
	CreatedEvent EventType = "created"
	// StateEvent announces a new selected value on an enumeration.
	StateEvent EventType = "state"
	// OptionsEvent announces the option list of an enumeration.
	OptionsEvent EventType = "options"
	// TransitionEvent announces a completed page transition.
	TransitionEvent EventType = "transition"
	// ChangedEvent announces that watched content changed on disk.
	ChangedEvent EventType = "changed"
)

// Event represents a published event with a typed payload.
type Event[T any] struct {
	Type      EventType
	Payload   T
	Timestamp time.Time
}

// Is reports whether the event has one of types. No types matches any event.
func (e Event[T]) Is(types ...EventType) bool {
	if len(types) == 0 {
		return true
	}
	for _, t := range types {
		if e.Type == t {
			return true
		}
	}
	return false
}

// Subscriber provides a subscription channel for events.
type Subscriber[T any] interface {
	Subscribe(ctx context.Context) <-chan Event[T]
}

// Publisher allows publishing events with a typed payload.
type Publisher[T any] interface {
	Publish(eventType EventType, payload T)
}
