// Package logpanel provides an in-app log viewer overlay that shows recent
// log entries without leaving the simulator.
package logpanel

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/zjrosen/pagedeck/internal/log"
	"github.com/zjrosen/pagedeck/internal/ui/overlay"
	"github.com/zjrosen/pagedeck/internal/ui/styles"
)

const (
	viewportMaxHeight = 20
	viewportMinHeight = 3
	boxMaxWidth       = 140
	boxMinWidth       = 30
)

// CloseMsg is sent when the panel closes itself.
type CloseMsg struct{}

// Model is the log panel state.
type Model struct {
	visible  bool
	minLevel log.Level
	width    int
	height   int
	viewport viewport.Model

	cancel   context.CancelFunc
	listener *log.LogListener
}

// New creates a hidden log panel showing every level.
func New() Model {
	return Model{minLevel: log.LevelDebug}
}

// StartListening subscribes to new log entries. The returned command must be
// run by the program; each received entry re-arms the listener.
func (m *Model) StartListening() tea.Cmd {
	ctx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel
	m.listener = log.NewListener(ctx)
	return m.listener.Listen()
}

// StopListening releases the subscription.
func (m *Model) StopListening() {
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
}

// Update handles keys while visible and keeps the listener running.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case log.LogEvent:
		if m.visible {
			follow := m.viewport.AtBottom()
			m.refresh()
			if follow {
				m.viewport.GotoBottom()
			}
		}
		if m.listener == nil {
			return m, nil
		}
		return m, m.listener.Listen()

	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		if !m.visible {
			return m, nil
		}
		switch msg.String() {
		case "c":
			log.ClearBuffer()
			m.refresh()
		case "d":
			m.setLevel(log.LevelDebug)
		case "i":
			m.setLevel(log.LevelInfo)
		case "w":
			m.setLevel(log.LevelWarn)
		case "e":
			m.setLevel(log.LevelError)
		case "j", "down":
			m.viewport.ScrollDown(1)
		case "k", "up":
			m.viewport.ScrollUp(1)
		case "g":
			m.viewport.GotoTop()
		case "G":
			m.viewport.GotoBottom()
		case "esc", "L":
			m.visible = false
			return m, func() tea.Msg { return CloseMsg{} }
		}
	}
	return m, nil
}

// View renders the panel box.
func (m Model) View() string {
	if !m.visible {
		return ""
	}
	width := m.boxWidth()
	divider := lipgloss.NewStyle().Foreground(styles.OverlayBorderColor).Render(strings.Repeat("─", width))

	var b strings.Builder
	b.WriteString(styles.PanelTitleStyle.PaddingLeft(1).Render("Logs"))
	b.WriteString("\n")
	b.WriteString(divider)
	b.WriteString("\n")
	b.WriteString(m.viewport.View())
	b.WriteString("\n")
	b.WriteString(divider)
	b.WriteString("\n")
	b.WriteString(m.filterHint())

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.OverlayBorderColor).
		Width(width).
		Render(b.String())
}

// Overlay renders the panel centered on bg.
func (m Model) Overlay(bg string) string {
	if !m.visible {
		return bg
	}
	return overlay.Place(overlay.Config{
		Width:    m.width,
		Height:   m.height,
		Position: overlay.Center,
	}, m.View(), bg)
}

// Visible reports whether the panel is showing.
func (m Model) Visible() bool { return m.visible }

// MinLevel returns the active level filter.
func (m Model) MinLevel() log.Level { return m.minLevel }

// Toggle flips visibility.
func (m *Model) Toggle() {
	m.visible = !m.visible
	if m.visible {
		m.refresh()
		m.viewport.GotoBottom()
	}
}

// SetSize updates the screen size the panel is laid out for.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.refresh()
}

func (m *Model) setLevel(level log.Level) {
	m.minLevel = level
	m.refresh()
}

func (m *Model) refresh() {
	if m.width == 0 || m.height == 0 {
		return
	}
	// header, footer and borders take six lines
	h := max(min(viewportMaxHeight, m.height-6), viewportMinHeight)
	w := m.boxWidth() - 2
	yOffset := m.viewport.YOffset
	m.viewport = viewport.New(w, h)
	m.viewport.SetContent(m.content(w))
	m.viewport.SetYOffset(yOffset)
}

func (m Model) boxWidth() int {
	return max(min(m.width-4, boxMaxWidth), boxMinWidth)
}

func (m Model) content(width int) string {
	var lines []string
	for _, entry := range log.GetRecentLogs(10000) {
		level, ok := levelOf(entry)
		if ok && level < m.minLevel {
			continue
		}
		lines = append(lines, colorize(entry, level, width))
	}
	if len(lines) == 0 {
		return styles.MutedStyle.Italic(true).Render("No logs to display")
	}
	return strings.Join(lines, "\n")
}

// levelOf reads the level token that follows the timestamp.
func levelOf(entry string) (log.Level, bool) {
	_, rest, ok := strings.Cut(entry, " [")
	if !ok {
		return log.LevelInfo, false
	}
	name, _, ok := strings.Cut(rest, "]")
	if !ok {
		return log.LevelInfo, false
	}
	switch name {
	case "DEBUG", "INFO", "WARN", "ERROR":
		return log.ParseLevel(name), true
	}
	return log.LevelInfo, false
}

func colorize(entry string, level log.Level, width int) string {
	entry = strings.TrimSuffix(entry, "\n")
	if ansi.StringWidth(entry) > width {
		entry = ansi.Truncate(entry, width-3, "...")
	}
	color := styles.LogInfoColor
	switch level {
	case log.LevelDebug:
		color = styles.LogDebugColor
	case log.LevelWarn:
		color = styles.LogWarnColor
	case log.LevelError:
		color = styles.LogErrorColor
	}
	return lipgloss.NewStyle().Foreground(color).Render(entry)
}

func (m Model) filterHint() string {
	hint := lipgloss.NewStyle().Foreground(styles.TextMutedColor)
	active := lipgloss.NewStyle().Foreground(styles.TextPrimaryColor).Bold(true)

	parts := []string{hint.Render("[c] Clear")}
	for _, f := range []struct {
		label string
		level log.Level
	}{
		{"[d] Debug", log.LevelDebug},
		{"[i] Info", log.LevelInfo},
		{"[w] Warn", log.LevelWarn},
		{"[e] Error", log.LevelError},
	} {
		if f.level == m.minLevel {
			parts = append(parts, active.Render(f.label))
		} else {
			parts = append(parts, hint.Render(f.label))
		}
	}
	return strings.Join(parts, "  ")
}
