// Package selector implements the enumeration entity that mirrors the active
// page: a fixed option list, a current state, and a control entry point for
// selections made from outside.
package selector

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/zjrosen/pagedeck/internal/log"
	"github.com/zjrosen/pagedeck/internal/pubsub"
)

// ErrInvalidOption is returned by Control for values outside the option list.
var ErrInvalidOption = errors.New("invalid option")

// Snapshot is the entity state carried by every event.
type Snapshot struct {
	Name    string
	Options []string
	State   string
}

// Selector is a select entity. PublishOptions and PublishState only record and
// announce; they never call the select handler.
type Selector struct {
	mu       sync.RWMutex
	name     string
	options  []string
	state    string
	hasState bool
	handler  func(ctx context.Context, label string)
	broker   *pubsub.Broker[Snapshot]
}

// New creates a selector with no options.
func New(name string) *Selector {
	return &Selector{
		name:   name,
		broker: pubsub.NewBroker[Snapshot](pubsub.WithRetain()),
	}
}

// Name returns the entity name.
func (s *Selector) Name() string { return s.name }

// PublishOptions replaces the option list.
func (s *Selector) PublishOptions(options []string) {
	s.mu.Lock()
	s.options = slices.Clone(options)
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.broker.Publish(pubsub.OptionsEvent, snap)
}

// PublishState records label as the current value and announces it.
func (s *Selector) PublishState(label string) {
	s.mu.Lock()
	s.state = label
	s.hasState = true
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.broker.Publish(pubsub.StateEvent, snap)
}

// OnExternalSelect sets the handler invoked by Control.
func (s *Selector) OnExternalSelect(handler func(ctx context.Context, label string)) {
	s.mu.Lock()
	s.handler = handler
	s.mu.Unlock()
}

// Control is a selection made from outside, such as a user or a remote API.
// The value must be one of the options. The state itself is updated by the
// handler's owner through PublishState.
func (s *Selector) Control(ctx context.Context, value string) error {
	s.mu.RLock()
	valid := slices.Contains(s.options, value)
	handler := s.handler
	s.mu.RUnlock()

	if !valid {
		log.Warn(log.CatSync, "Rejected select value", "select", s.name, "value", value)
		return fmt.Errorf("%w: %q is not an option of %q", ErrInvalidOption, value, s.name)
	}
	if handler == nil {
		log.Debug(log.CatSync, "Select has no handler", "select", s.name, "value", value)
		return nil
	}
	handler(ctx, value)
	return nil
}

// Options returns a copy of the option list.
func (s *Selector) Options() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.options)
}

// State returns the current value, if one was published.
func (s *Selector) State() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state, s.hasState
}

// Index returns the position of the current value in the options, or -1.
func (s *Selector) Index() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.hasState {
		return -1
	}
	return slices.Index(s.options, s.state)
}

// Snapshot returns the current entity state.
func (s *Selector) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

// Subscribe returns a channel of option and state events.
func (s *Selector) Subscribe(ctx context.Context) <-chan pubsub.Event[Snapshot] {
	return s.broker.Subscribe(ctx)
}

// Close releases subscribers.
func (s *Selector) Close() {
	s.broker.Close()
}

func (s *Selector) snapshotLocked() Snapshot {
	return Snapshot{
		Name:    s.name,
		Options: slices.Clone(s.options),
		State:   s.state,
	}
}
