package pubsub

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
)

// ListenCmd creates a Bubble Tea command that waits for the next event on ch
// whose type is one of types; with no types every event matches. Events of
// other types are consumed and skipped. Returns nil once ctx is cancelled or
// ch is closed.
func ListenCmd[T any](ctx context.Context, ch <-chan Event[T], types ...EventType) tea.Cmd {
	return func() tea.Msg {
		for {
			select {
			case <-ctx.Done():
				return nil
			case event, ok := <-ch:
				if !ok {
					return nil
				}
				if event.Is(types...) {
					return event
				}
			}
		}
	}
}

// ContinuousListener keeps one subscription alive across Bubble Tea updates.
// Call Listen again after handling each event to keep receiving.
type ContinuousListener[T any] struct {
	ctx   context.Context
	ch    <-chan Event[T]
	types []EventType
}

// NewContinuousListener subscribes to sub for the lifetime of ctx. When types
// are given only those event types are delivered.
func NewContinuousListener[T any](ctx context.Context, sub Subscriber[T], types ...EventType) *ContinuousListener[T] {
	return &ContinuousListener[T]{
		ctx:   ctx,
		ch:    sub.Subscribe(ctx),
		types: types,
	}
}

// Listen returns a tea.Cmd that waits for the next matching event.
func (l *ContinuousListener[T]) Listen() tea.Cmd {
	return ListenCmd(l.ctx, l.ch, l.types...)
}
