package button

import (
	"context"
	"sync"

	"github.com/zjrosen/pagedeck/internal/log"
)

// Navigator is the part of the navigation engine a button drives.
// *pagemanager.Manager satisfies it.
type Navigator interface {
	Next(ctx context.Context)
	Previous(ctx context.Context)
}

type direction int

const (
	forward direction = iota
	backward
)

// binding holds a non-owning reference to the navigator, fixed at setup.
type binding struct {
	mu  sync.RWMutex
	nav Navigator
	dir direction
}

// SetManager points the binding at nav. A nil navigator turns presses into
// no-ops.
func (b *binding) SetManager(nav Navigator) {
	b.mu.Lock()
	b.nav = nav
	b.mu.Unlock()
}

func (b *binding) press(ctx context.Context) {
	b.mu.RLock()
	nav := b.nav
	b.mu.RUnlock()

	if nav == nil {
		log.Debug(log.CatInput, "Button not bound to a page manager")
		return
	}
	switch b.dir {
	case forward:
		nav.Next(ctx)
	case backward:
		nav.Previous(ctx)
	}
}

// NextButton advances the page on every press.
type NextButton struct{ binding }

// PrevButton goes back one page on every press.
type PrevButton struct{ binding }

// BindNext registers a NextButton as btn's press handler.
func BindNext(btn *Button, nav Navigator) *NextButton {
	nb := &NextButton{binding{nav: nav, dir: forward}}
	btn.OnPress(nb.press)
	return nb
}

// BindPrev registers a PrevButton as btn's press handler.
func BindPrev(btn *Button, nav Navigator) *PrevButton {
	pb := &PrevButton{binding{nav: nav, dir: backward}}
	btn.OnPress(pb.press)
	return pb
}
