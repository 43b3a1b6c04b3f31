package display

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/zjrosen/pagedeck/internal/log"
	"github.com/zjrosen/pagedeck/internal/pagemanager"
)

// ContentRenderer turns a page's markdown into terminal text.
type ContentRenderer interface {
	Render(markdown string) (string, error)
}

// LoadedMsg carries the latest screen load into the update loop.
type LoadedMsg struct {
	Playback Playback
}

// FrameMsg advances the animation of the load with the given sequence number.
type FrameMsg struct {
	Seq uint64
}

// Model plays screen loads as animation frames.
type Model struct {
	screen   *Screen
	content  ContentRenderer
	width    int
	height   int
	interval time.Duration
	now      func() time.Time

	playing Playback
	fitted  map[string][]string
}

// ModelOption configures a Model.
type ModelOption func(*Model)

// WithContentRenderer renders page bodies through r instead of as raw text.
func WithContentRenderer(r ContentRenderer) ModelOption {
	return func(m *Model) { m.content = r }
}

// WithFrameClock sets the time source used to pick animation frames.
func WithFrameClock(now func() time.Time) ModelOption {
	return func(m *Model) { m.now = now }
}

// NewModel creates a display of width×height cells refreshed fps times a
// second while an animation plays.
func NewModel(screen *Screen, width, height, fps int, opts ...ModelOption) Model {
	m := Model{
		screen:   screen,
		width:    width,
		height:   height,
		interval: time.Second / time.Duration(max(fps, 1)),
		now:      time.Now,
		fitted:   make(map[string][]string),
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// Init waits for the first screen load.
func (m Model) Init() tea.Cmd {
	return m.waitForLoad()
}

// Update handles loads and frame ticks.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case LoadedMsg:
		m.playing = msg.Playback
		cmds := []tea.Cmd{m.waitForLoad()}
		if !m.playing.Done(m.now()) {
			cmds = append(cmds, m.tick(m.playing.Seq))
		}
		return m, tea.Batch(cmds...)

	case FrameMsg:
		if msg.Seq != m.playing.Seq {
			// superseded by a newer load
			return m, nil
		}
		if m.playing.Done(m.now()) {
			return m, nil
		}
		return m, m.tick(msg.Seq)
	}
	return m, nil
}

// View renders the current frame.
func (m Model) View() string {
	return m.Frame(m.now())
}

// Frame renders the frame shown at the given time.
func (m Model) Frame(at time.Time) string {
	pb := m.playing
	if pb.To == nil {
		return strings.Join(Fit("", m.width, m.height), "\n")
	}
	to := m.fit(pb.To)
	var from []string
	if pb.From != nil {
		from = m.fit(pb.From)
	}
	return strings.Join(Compose(from, to, pb.Animation, pb.Progress(at), m.width, m.height), "\n")
}

// Playing returns the load being shown.
func (m Model) Playing() Playback {
	return m.playing
}

// Animating reports whether a transition is still in progress.
func (m Model) Animating() bool {
	return m.playing.To != nil && !m.playing.Done(m.now())
}

// Width returns the display width in cells.
func (m Model) Width() int { return m.width }

// Height returns the display height in cells.
func (m Model) Height() int { return m.height }

// Invalidate drops cached page renders.
func (m Model) Invalidate() {
	clear(m.fitted)
}

func (m Model) waitForLoad() tea.Cmd {
	screen := m.screen
	if screen == nil {
		return nil
	}
	return func() tea.Msg {
		<-screen.Changed()
		return LoadedMsg{Playback: screen.Playback()}
	}
}

func (m Model) tick(seq uint64) tea.Cmd {
	return tea.Tick(m.interval, func(time.Time) tea.Msg {
		return FrameMsg{Seq: seq}
	})
}

func (m Model) fit(page pagemanager.Page) []string {
	if lines, ok := m.fitted[page.ID()]; ok {
		return lines
	}
	lines := Fit(m.body(page), m.width, m.height)
	m.fitted[page.ID()] = lines
	return lines
}

func (m Model) body(page pagemanager.Page) string {
	p, ok := page.(*Page)
	if !ok {
		return page.ID()
	}
	if m.content == nil {
		return p.Content()
	}
	out, err := m.content.Render(p.Content())
	if err != nil {
		log.ErrorErr(log.CatRender, "Markdown render failed", err, "page", p.ID())
		return p.Content()
	}
	return out
}
