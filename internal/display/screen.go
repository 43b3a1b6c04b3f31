package display

import (
	"sync"
	"time"

	"github.com/zjrosen/pagedeck/internal/log"
	"github.com/zjrosen/pagedeck/internal/pagemanager"
)

// maxHistory bounds the playback history kept for the simulator.
const maxHistory = 50

// Playback is one screen load: the page being replaced, the page loaded, and
// the animation used.
type Playback struct {
	Seq       uint64
	From      pagemanager.Page // nil on the first load
	To        pagemanager.Page
	Animation pagemanager.Animation
	Duration  time.Duration
	Started   time.Time
}

// Progress returns how far the animation is at now, in [0, 1].
func (p Playback) Progress(now time.Time) float64 {
	if p.Duration <= 0 || p.Animation == pagemanager.AnimNone || p.From == nil {
		return 1
	}
	elapsed := now.Sub(p.Started)
	if elapsed <= 0 {
		return 0
	}
	if elapsed >= p.Duration {
		return 1
	}
	return float64(elapsed) / float64(p.Duration)
}

// Done reports whether the animation has finished at now.
func (p Playback) Done(now time.Time) bool {
	return p.Progress(now) >= 1
}

// Screen records screen loads. It implements pagemanager.Renderer and never
// blocks: a load replaces whatever was playing and signals Changed.
type Screen struct {
	mu      sync.Mutex
	current Playback
	seq     uint64
	history []Playback
	changed chan struct{}
	now     func() time.Time
}

var _ pagemanager.Renderer = (*Screen)(nil)

// ScreenOption configures a Screen.
type ScreenOption func(*Screen)

// WithClock sets the time source used to stamp loads.
func WithClock(now func() time.Time) ScreenOption {
	return func(s *Screen) { s.now = now }
}

// NewScreen creates an empty screen.
func NewScreen(opts ...ScreenOption) *Screen {
	s := &Screen{
		changed: make(chan struct{}, 1),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ShowPage implements pagemanager.Renderer.
func (s *Screen) ShowPage(page pagemanager.Page, anim pagemanager.Animation, d time.Duration) {
	s.mu.Lock()
	s.seq++
	if s.current.To != nil && s.current.Progress(s.now()) < 1 {
		log.Debug(log.CatRender, "Interrupting animation", "seq", s.current.Seq, "animation", s.current.Animation)
	}
	s.current = Playback{
		Seq:       s.seq,
		From:      s.current.To,
		To:        page,
		Animation: anim,
		Duration:  d,
		Started:   s.now(),
	}
	s.history = append(s.history, s.current)
	if len(s.history) > maxHistory {
		s.history = s.history[len(s.history)-maxHistory:]
	}
	s.mu.Unlock()

	select {
	case s.changed <- struct{}{}:
	default:
	}
	log.Debug(log.CatRender, "Screen load", "page", page.ID(), "animation", anim, "ms", d.Milliseconds())
}

// Playback returns the latest load.
func (s *Screen) Playback() Playback {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Current returns the loaded page, or nil before the first load.
func (s *Screen) Current() pagemanager.Page {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current.To
}

// History returns recent loads, oldest first.
func (s *Screen) History() []Playback {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Playback, len(s.history))
	copy(out, s.history)
	return out
}

// Changed is signalled after every load. Signals coalesce: one receive may
// stand for several loads, so readers should consult Playback.
func (s *Screen) Changed() <-chan struct{} {
	return s.changed
}
