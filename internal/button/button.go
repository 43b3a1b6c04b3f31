// Package button binds momentary inputs to page navigation.
package button

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/zjrosen/pagedeck/internal/log"
)

// Button is a momentary input. Each Press fires the handler once.
type Button struct {
	name    string
	mu      sync.RWMutex
	handler func(ctx context.Context)
	presses atomic.Uint64
}

// New creates an unbound button.
func New(name string) *Button {
	return &Button{name: name}
}

// Name returns the button name.
func (b *Button) Name() string { return b.name }

// OnPress sets the press handler, replacing any previous one.
func (b *Button) OnPress(handler func(ctx context.Context)) {
	b.mu.Lock()
	b.handler = handler
	b.mu.Unlock()
}

// Press fires the handler, if any.
func (b *Button) Press(ctx context.Context) {
	b.presses.Add(1)

	b.mu.RLock()
	handler := b.handler
	b.mu.RUnlock()

	log.Debug(log.CatInput, "Button pressed", "button", b.name)
	if handler != nil {
		handler(ctx)
	}
}

// Presses returns how many times the button was pressed.
func (b *Button) Presses() uint64 {
	return b.presses.Load()
}
