package pubsub

import (
	"context"
	"sync"
	"time"
)

const defaultBufferSize = 64

type options struct {
	buffer int
	retain bool
}

// Option configures a Broker.
type Option func(*options)

// WithBuffer sets the per-subscriber channel capacity.
func WithBuffer(size int) Option {
	return func(o *options) {
		if size > 0 {
			o.buffer = size
		}
	}
}

// WithRetain makes the broker remember the latest event of each type and
// replay those events, oldest first, to every new subscriber. Entities use it
// so a late subscriber starts from the current options and state.
func WithRetain() Option {
	return func(o *options) { o.retain = true }
}

// Broker is a generic pub/sub event broker.
// Publishing never blocks: a subscriber whose buffer is full misses the event
// and the miss is counted in Dropped.
type Broker[T any] struct {
	mu   sync.Mutex
	opts options
	subs map[chan Event[T]]struct{}
	done chan struct{}

	retained  []Event[T] // at most one per EventType, in publish order
	published uint64
	dropped   uint64
}

// NewBroker creates a broker. Without options each subscriber gets a buffer
// of 64 events and nothing is retained.
func NewBroker[T any](opts ...Option) *Broker[T] {
	o := options{buffer: defaultBufferSize}
	for _, opt := range opts {
		opt(&o)
	}
	return &Broker[T]{
		opts: o,
		subs: make(map[chan Event[T]]struct{}),
		done: make(chan struct{}),
	}
}

// Subscribe creates a new subscription channel.
// The channel is closed when ctx is cancelled or the broker is closed.
func (b *Broker[T]) Subscribe(ctx context.Context) <-chan Event[T] {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed() {
		ch := make(chan Event[T])
		close(ch)
		return ch
	}

	sub := make(chan Event[T], max(b.opts.buffer, len(b.retained)))
	for _, ev := range b.retained {
		sub <- ev
	}
	b.subs[sub] = struct{}{}

	go func() {
		select {
		case <-ctx.Done():
		case <-b.done:
			return
		}
		b.mu.Lock()
		defer b.mu.Unlock()
		if b.closed() {
			return
		}
		delete(b.subs, sub)
		close(sub)
	}()

	return sub
}

// Publish sends an event to all subscribers.
func (b *Broker[T]) Publish(eventType EventType, payload T) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed() {
		return
	}

	b.published++
	event := Event[T]{
		Type:      eventType,
		Payload:   payload,
		Timestamp: time.Now(),
	}
	if b.opts.retain {
		b.retain(event)
	}

	for sub := range b.subs {
		select {
		case sub <- event:
		default:
			b.dropped++
		}
	}
}

// retain replaces the remembered event of the same type. Callers hold b.mu.
func (b *Broker[T]) retain(event Event[T]) {
	for i, ev := range b.retained {
		if ev.Type == event.Type {
			b.retained = append(b.retained[:i], b.retained[i+1:]...)
			break
		}
	}
	b.retained = append(b.retained, event)
}

// Close shuts down the broker and all subscriber channels.
func (b *Broker[T]) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed() {
		return
	}
	close(b.done)
	for sub := range b.subs {
		close(sub)
	}
	b.subs = nil
	b.retained = nil
}

func (b *Broker[T]) closed() bool {
	select {
	case <-b.done:
		return true
	default:
		return false
	}
}

// SubscriberCount returns the number of active subscribers.
func (b *Broker[T]) SubscriberCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}

// Published returns how many events were accepted for delivery.
func (b *Broker[T]) Published() uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.published
}

// Dropped returns how many deliveries were skipped because a subscriber's
// buffer was full.
func (b *Broker[T]) Dropped() uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.dropped
}
