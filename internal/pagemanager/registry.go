// Package pagemanager owns page identity and order, the active page, and the
// navigation protocol between triggers, scripted actions, the renderer and the
// select entity that mirrors the active page.
package pagemanager

import (
	"fmt"
	"sync"

	"github.com/zjrosen/pagedeck/internal/log"
)

// Page is an opaque renderable screen owned by the renderer.
// ID is its textual identity, used for by_page sorting and id lookups.
type Page interface {
	ID() string
}

// Entry is one registered page. Entries are immutable once registered.
type Entry struct {
	Page  Page
	Label string
	Order int

	seq int // insertion position, breaks sort ties
}

// Registry is the ordered page collection. It is append-only until Freeze and
// read-only afterwards; the frozen order defines the index space shared with the
// select options.
type Registry struct {
	mu      sync.RWMutex
	entries []Entry
	frozen  bool
	mode    SortMode
}

// NewRegistry creates an empty, unfrozen registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register adds a page record. It fails once the registry is frozen and on
// records that cannot be navigated to.
func (r *Registry) Register(label string, order int, page Page) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.frozen {
		return fmt.Errorf("%w: %w: cannot register %q", ErrInvalidConfig, ErrRegistryFrozen, label)
	}
	if page == nil {
		return fmt.Errorf("%w: page %q has no page reference", ErrInvalidConfig, label)
	}
	id := page.ID()
	if id == "" {
		return fmt.Errorf("%w: page %q has an empty page id", ErrInvalidConfig, label)
	}
	if label == "" {
		return fmt.Errorf("%w: page %q has no friendly name", ErrInvalidConfig, id)
	}
	for _, e := range r.entries {
		if e.Page.ID() == id {
			return fmt.Errorf("%w: page %q registered twice (as %q and %q)", ErrInvalidConfig, id, e.Label, label)
		}
		if e.Label == label {
			log.Warn(log.CatRegistry, "Duplicate friendly name; lookups resolve to the first page",
				"name", label, "first", e.Page.ID(), "duplicate", id)
		}
	}

	r.entries = append(r.entries, Entry{
		Page:  page,
		Label: label,
		Order: order,
		seq:   len(r.entries),
	})
	log.Debug(log.CatRegistry, "Registered page", "id", id, "name", label, "order", order)
	return nil
}

// Freeze sorts the registry with mode. Only the first call has any effect.
func (r *Registry) Freeze(mode SortMode) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.frozen {
		return
	}
	sortEntries(r.entries, mode)
	r.mode = mode
	r.frozen = true
	log.Debug(log.CatRegistry, "Registry frozen", "sort", mode, "pages", len(r.entries))
}

// Frozen reports whether Freeze has run.
func (r *Registry) Frozen() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.frozen
}

// SortMode returns the policy applied at freeze time.
func (r *Registry) SortMode() SortMode {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.mode
}

// Len returns the number of registered pages.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// At returns the entry at index i. It panics on an out-of-range index like a
// slice access would.
func (r *Registry) At(i int) Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.entries[i]
}

// Entries returns a copy of all entries in registry order.
func (r *Registry) Entries() []Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	return out
}

// Labels returns the friendly names in registry order.
func (r *Registry) Labels() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, len(r.entries))
	for i, e := range r.entries {
		out[i] = e.Label
	}
	return out
}

// IndexOfLabel returns the index of the first page with the given friendly name.
func (r *Registry) IndexOfLabel(label string) (int, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for i, e := range r.entries {
		if e.Label == label {
			return i, true
		}
	}
	return -1, false
}

// IndexOfID returns the index of the page whose ID matches id.
func (r *Registry) IndexOfID(id string) (int, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for i, e := range r.entries {
		if e.Page.ID() == id {
			return i, true
		}
	}
	return -1, false
}

// IndexOfPage returns the index of page.
func (r *Registry) IndexOfPage(page Page) (int, bool) {
	if page == nil {
		return -1, false
	}
	return r.IndexOfID(page.ID())
}
