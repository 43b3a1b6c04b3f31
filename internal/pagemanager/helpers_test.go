package pagemanager

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type testPage string

func (p testPage) ID() string { return string(p) }

type pageDef struct {
	id    string
	label string
	order int
}

func newRegistry(t *testing.T, pages ...pageDef) *Registry {
	t.Helper()
	reg := NewRegistry()
	for _, p := range pages {
		require.NoError(t, reg.Register(p.label, p.order, testPage(p.id)))
	}
	return reg
}

// threePages is Home, Settings, About in by_order.
func threePages(t *testing.T) *Registry {
	return newRegistry(t,
		pageDef{"home_page", "Home", 0},
		pageDef{"settings_page", "Settings", 1},
		pageDef{"about_page", "About", 2},
	)
}

// mockRenderer is a testify mock of Renderer.
type mockRenderer struct {
	mock.Mock
}

func (m *mockRenderer) ShowPage(page Page, anim Animation, d time.Duration) {
	m.Called(page, anim, d)
}

// renderCall is one recorded ShowPage.
type renderCall struct {
	page Page
	anim Animation
	d    time.Duration
}

// recordingRenderer records every ShowPage call.
type recordingRenderer struct {
	mu    sync.Mutex
	calls []renderCall
}

func (r *recordingRenderer) ShowPage(page Page, anim Animation, d time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, renderCall{page, anim, d})
}

func (r *recordingRenderer) Calls() []renderCall {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]renderCall(nil), r.calls...)
}

// fakeEntity is a minimal enumeration entity.
type fakeEntity struct {
	mu       sync.Mutex
	options  [][]string
	states   []string
	onSelect func(ctx context.Context, label string)
}

func (e *fakeEntity) PublishOptions(options []string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.options = append(e.options, append([]string(nil), options...))
}

func (e *fakeEntity) PublishState(label string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.states = append(e.states, label)
}

func (e *fakeEntity) OnExternalSelect(handler func(ctx context.Context, label string)) {
	e.onSelect = handler
}

// Select simulates a user picking an option.
func (e *fakeEntity) Select(ctx context.Context, label string) {
	e.onSelect(ctx, label)
}

func (e *fakeEntity) States() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]string(nil), e.states...)
}

func (e *fakeEntity) LastState() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	if len(e.states) == 0 {
		return ""
	}
	return e.states[len(e.states)-1]
}
