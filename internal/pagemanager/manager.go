package pagemanager

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/zjrosen/pagedeck/internal/log"
	"github.com/zjrosen/pagedeck/internal/pubsub"
	"github.com/zjrosen/pagedeck/internal/tracing"
)

// DefaultID is the manager id actions resolve to when none is given.
const DefaultID = "page_manager"

// Renderer draws pages. ShowPage is called with the manager lock held, so it
// must not call back into the manager; animation playback happens after it
// returns and is never awaited.
type Renderer interface {
	ShowPage(page Page, anim Animation, d time.Duration)
}

// RendererFunc adapts a function to Renderer.
type RendererFunc func(page Page, anim Animation, d time.Duration)

// ShowPage implements Renderer.
func (f RendererFunc) ShowPage(page Page, anim Animation, d time.Duration) { f(page, anim, d) }

// TransitionKind says what requested a transition.
type TransitionKind string

const (
	KindInitial  TransitionKind = "initial"
	KindNext     TransitionKind = "next"
	KindPrevious TransitionKind = "previous"
	KindShow     TransitionKind = "show"
	KindSelect   TransitionKind = "select"
)

// Transition describes one completed page change.
type Transition struct {
	ID        string
	Kind      TransitionKind
	From      int // -1 when no page was active
	To        int
	Label     string
	Page      Page
	Animation Animation
	Duration  time.Duration
	At        time.Time
}

// statePublisher receives the active page after every transition.
type statePublisher interface {
	publishOptions(labels []string)
	publishState(index int, label string)
}

// Manager is the navigation engine. It is the only writer of the active page
// index; every operation runs mutate, render and publish under one lock.
type Manager struct {
	mu sync.Mutex

	id          string
	reg         *Registry
	sortMode    SortMode
	renderer    Renderer
	publisher   statePublisher
	tracer      trace.Tracer
	transitions *pubsub.Broker[Transition]
	observers   []func(Transition)

	defaultPage  string
	defaultIndex int
	current      int
	setupDone    bool
}

// Option configures a Manager.
type Option func(*Manager)

// WithID sets the manager id referenced by actions.
func WithID(id string) Option {
	return func(m *Manager) {
		if id != "" {
			m.id = id
		}
	}
}

// WithRenderer sets the rendering collaborator.
func WithRenderer(r Renderer) Option {
	return func(m *Manager) { m.renderer = r }
}

// WithSortMode sets the policy used to freeze the registry.
func WithSortMode(mode SortMode) Option {
	return func(m *Manager) { m.sortMode = mode }
}

// WithDefaultPage sets the friendly name shown at Setup.
func WithDefaultPage(label string) Option {
	return func(m *Manager) { m.defaultPage = label }
}

// WithTracer sets the tracer used for transition spans.
func WithTracer(t trace.Tracer) Option {
	return func(m *Manager) {
		if t != nil {
			m.tracer = t
		}
	}
}

// WithObserver calls fn with every transition, in order, before the operation
// returns. fn runs with the manager lock held and must not call back into the
// manager. Unlike Subscribe, observers never miss a transition.
func WithObserver(fn func(Transition)) Option {
	return func(m *Manager) {
		if fn != nil {
			m.observers = append(m.observers, fn)
		}
	}
}

// New freezes reg and builds a manager over it. An unresolvable default page
// is a configuration error.
func New(reg *Registry, opts ...Option) (*Manager, error) {
	if reg == nil {
		return nil, fmt.Errorf("%w: nil registry", ErrInvalidConfig)
	}

	m := &Manager{
		id:           DefaultID,
		reg:          reg,
		tracer:       noop.NewTracerProvider().Tracer("pagemanager"),
		transitions:  pubsub.NewBroker[Transition](),
		defaultIndex: -1,
		current:      -1,
	}
	for _, opt := range opts {
		opt(m)
	}

	if reg.Frozen() && reg.SortMode() != m.sortMode {
		log.Debug(log.CatRegistry, "Registry already frozen; keeping its order",
			"frozen_sort", reg.SortMode(), "requested_sort", m.sortMode)
	}
	reg.Freeze(m.sortMode)

	if m.defaultPage != "" {
		idx, ok := reg.IndexOfLabel(m.defaultPage)
		if !ok {
			// Page ids are accepted as well as friendly names.
			idx, ok = reg.IndexOfID(m.defaultPage)
		}
		if !ok {
			return nil, fmt.Errorf("%w: default_page %q does not match any page", ErrInvalidConfig, m.defaultPage)
		}
		m.defaultIndex = idx
		m.current = idx
	}

	return m, nil
}

// ID returns the manager id.
func (m *Manager) ID() string { return m.id }

// Registry returns the frozen registry.
func (m *Manager) Registry() *Registry { return m.reg }

// DefaultPage returns the configured default friendly name.
func (m *Manager) DefaultPage() string { return m.defaultPage }

// SetRenderer replaces the renderer. Intended for setup-time wiring.
func (m *Manager) SetRenderer(r Renderer) {
	m.mu.Lock()
	m.renderer = r
	m.mu.Unlock()
}

// Setup publishes the select options and shows the default page, if any.
// Later calls do nothing.
func (m *Manager) Setup(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.setupDone {
		return
	}
	m.setupDone = true

	if m.publisher != nil {
		m.publisher.publishOptions(m.reg.Labels())
	}
	if m.defaultIndex < 0 {
		log.Info(log.CatNav, "No default page; waiting for first navigation", "manager", m.id)
		return
	}
	// current already points at the default; report the transition from none
	m.current = -1
	tr := m.apply(ctx, KindInitial, m.defaultIndex, AnimNone, 0)
	log.Info(log.CatNav, "Initial page", "name", tr.Label, "page", tr.Page.ID())
}

// GoNext advances one page, wrapping from last to first. From no active page
// it lands on the first page. An empty registry makes it a no-op.
func (m *Manager) GoNext(ctx context.Context, anim Animation, d time.Duration) {
	m.step(ctx, KindNext, 1, anim, d)
}

// GoPrevious steps back one page, wrapping from first to last. From no active
// page it lands on the first page. An empty registry makes it a no-op.
func (m *Manager) GoPrevious(ctx context.Context, anim Animation, d time.Duration) {
	m.step(ctx, KindPrevious, -1, anim, d)
}

// GoTo shows the page with the given friendly name. An unknown name is logged,
// leaves the active page unchanged and returns an error wrapping ErrUnknownPage.
func (m *Manager) GoTo(ctx context.Context, label string, anim Animation, d time.Duration) error {
	return m.goTo(ctx, KindShow, label, anim, d)
}

// ShowPage shows the page identified by its reference.
func (m *Manager) ShowPage(ctx context.Context, page Page, anim Animation, d time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	idx, ok := m.reg.IndexOfPage(page)
	if !ok {
		id := "<nil>"
		if page != nil {
			id = page.ID()
		}
		return m.unknown(ctx, KindShow, id)
	}
	m.apply(ctx, KindShow, idx, anim, d)
	return nil
}

// Next is GoNext with the engine defaults.
func (m *Manager) Next(ctx context.Context) {
	m.GoNext(ctx, DefaultNextAnimation, DefaultDuration)
}

// Previous is GoPrevious with the engine defaults.
func (m *Manager) Previous(ctx context.Context) {
	m.GoPrevious(ctx, DefaultPreviousAnimation, DefaultDuration)
}

// Show is GoTo with the engine defaults.
func (m *Manager) Show(ctx context.Context, label string) error {
	return m.GoTo(ctx, label, DefaultShowAnimation, DefaultDuration)
}

// Current returns the active entry, if any.
func (m *Manager) Current() (Entry, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current < 0 {
		return Entry{}, false
	}
	return m.reg.At(m.current), true
}

// CurrentIndex returns the active index, or -1 when no page is active.
func (m *Manager) CurrentIndex() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current
}

// Subscribe returns a channel of completed transitions.
func (m *Manager) Subscribe(ctx context.Context) <-chan pubsub.Event[Transition] {
	return m.transitions.Subscribe(ctx)
}

// Close releases transition subscribers.
func (m *Manager) Close() {
	m.transitions.Close()
}

// DumpConfig logs the frozen registry.
func (m *Manager) DumpConfig() {
	log.Info(log.CatConfig, "Page manager", "id", m.id, "pages", m.reg.Len(), "sort", m.reg.SortMode())
	for i, e := range m.reg.Entries() {
		log.Info(log.CatConfig, "  page", "index", i, "page", e.Page.ID(), "name", e.Label, "order", e.Order)
	}
	if m.defaultPage != "" {
		log.Info(log.CatConfig, "  default page", "name", m.defaultPage)
	}
}

func (m *Manager) step(ctx context.Context, kind TransitionKind, delta int, anim Animation, d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := m.reg.Len()
	if n == 0 {
		log.Debug(log.CatNav, "Navigation on empty registry ignored", "manager", m.id, "kind", kind)
		return
	}
	idx := 0
	if m.current >= 0 {
		idx = ((m.current+delta)%n + n) % n
	}
	m.apply(ctx, kind, idx, anim, d)
}

func (m *Manager) goTo(ctx context.Context, kind TransitionKind, label string, anim Animation, d time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	idx, ok := m.reg.IndexOfLabel(label)
	if !ok {
		return m.unknown(ctx, kind, label)
	}
	m.apply(ctx, kind, idx, anim, d)
	return nil
}

func (m *Manager) unknown(ctx context.Context, kind TransitionKind, target string) error {
	err := fmt.Errorf("%w: %q", ErrUnknownPage, target)
	_, span := m.tracer.Start(ctx, tracing.SpanTransition, trace.WithAttributes(
		attribute.String(tracing.AttrManagerID, m.id),
		attribute.String(tracing.AttrTransitionKind, string(kind)),
		attribute.String(tracing.AttrPageLabel, target),
	))
	span.RecordError(err)
	span.SetStatus(codes.Error, "unknown page")
	span.End()

	log.Warn(log.CatNav, "Page not found", "manager", m.id, "page", target, "kind", kind)
	return err
}

// apply performs one transition. Callers hold m.mu.
func (m *Manager) apply(ctx context.Context, kind TransitionKind, idx int, anim Animation, d time.Duration) Transition {
	if d < 0 {
		d = 0
	}
	entry := m.reg.At(idx)
	tr := Transition{
		ID:        uuid.NewString(),
		Kind:      kind,
		From:      m.current,
		To:        idx,
		Label:     entry.Label,
		Page:      entry.Page,
		Animation: anim,
		Duration:  d,
		At:        time.Now(),
	}

	_, span := m.tracer.Start(ctx, tracing.SpanTransition, trace.WithAttributes(
		attribute.String(tracing.AttrManagerID, m.id),
		attribute.String(tracing.AttrTransitionID, tr.ID),
		attribute.String(tracing.AttrTransitionKind, string(kind)),
		attribute.Int(tracing.AttrIndexFrom, tr.From),
		attribute.Int(tracing.AttrIndexTo, tr.To),
		attribute.String(tracing.AttrPageID, entry.Page.ID()),
		attribute.String(tracing.AttrPageLabel, entry.Label),
		attribute.String(tracing.AttrAnimation, anim.String()),
		attribute.Int64(tracing.AttrDurationMS, d.Milliseconds()),
	))
	defer span.End()

	m.current = idx

	if m.renderer != nil {
		m.renderer.ShowPage(entry.Page, anim, d)
	} else {
		log.Warn(log.CatRender, "Renderer not set; cannot show page", "page", entry.Page.ID())
	}
	if m.publisher != nil {
		m.publisher.publishState(idx, entry.Label)
	}
	m.transitions.Publish(pubsub.TransitionEvent, tr)
	for _, fn := range m.observers {
		fn(tr)
	}

	log.Info(log.CatNav, "Page transition",
		"kind", kind, "from", tr.From, "to", idx, "name", entry.Label,
		"animation", anim, "ms", d.Milliseconds(), "id", tr.ID)
	return tr
}
