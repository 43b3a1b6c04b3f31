package pagemanager

import (
	"context"

	"github.com/zjrosen/pagedeck/internal/log"
)

// Entity is the externally visible enumeration that mirrors the active page.
// PublishState must only record and announce the value; it is called with the
// manager lock held.
type Entity interface {
	PublishOptions(options []string)
	PublishState(label string)
	OnExternalSelect(handler func(ctx context.Context, label string))
}

// Synchronizer keeps an Entity's options and state in step with a Manager.
type Synchronizer struct {
	m      *Manager
	entity Entity
}

// Attach wires e to m in both directions. Options are published at Setup.
func Attach(m *Manager, e Entity) *Synchronizer {
	s := &Synchronizer{m: m, entity: e}
	e.OnExternalSelect(s.selectLabel)

	m.mu.Lock()
	m.publisher = s
	m.mu.Unlock()
	return s
}

func (s *Synchronizer) publishOptions(labels []string) {
	log.Debug(log.CatSync, "Publishing options", "count", len(labels))
	s.entity.PublishOptions(labels)
}

func (s *Synchronizer) publishState(index int, label string) {
	log.Debug(log.CatSync, "Publishing state", "index", index, "name", label)
	s.entity.PublishState(label)
}

// selectLabel handles a selection made on the entity from outside.
func (s *Synchronizer) selectLabel(ctx context.Context, label string) {
	if _, ok := s.m.reg.IndexOfLabel(label); !ok {
		log.Warn(log.CatSync, "Selected option is not a page", "name", label)
		return
	}
	_ = s.m.goTo(ctx, KindSelect, label, AnimNone, 0)
}
