// Package toaster provides a notification toast overlay component.
package toaster

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"

	"github.com/zjrosen/pagedeck/internal/ui/overlay"
	"github.com/zjrosen/pagedeck/internal/ui/styles"
)

// Style determines the visual appearance of the toast.
type Style int

const (
	// StyleSuccess shows ✅ with green border.
	StyleSuccess Style = iota
	// StyleError shows ❌ with red border.
	StyleError
	// StyleInfo shows ℹ️ with blue border.
	StyleInfo
	// StyleWarn shows ⚠️ with yellow border.
	StyleWarn
)

// DefaultTimeout is how long a toast stays up.
const DefaultTimeout = 3 * time.Second

// Model holds the toaster state. A toast is identified by a sequence number so
// that a dismissal scheduled for an older toast does not hide a newer one.
type Model struct {
	message string
	style   Style
	visible bool
	seq     int
}

// New creates a new toaster model.
func New() Model {
	return Model{}
}

// Show displays a toast with the given message and style.
func (m Model) Show(message string, style Style) Model {
	m.message = message
	m.style = style
	m.visible = true
	m.seq++
	return m
}

// Hide dismisses the toast.
func (m Model) Hide() Model {
	m.visible = false
	m.message = ""
	return m
}

// Visible returns whether the toast is currently showing.
func (m Model) Visible() bool {
	return m.visible
}

// Message returns the current message.
func (m Model) Message() string {
	return m.message
}

// Update hides the toast when its dismissal arrives.
func (m Model) Update(msg tea.Msg) Model {
	if d, ok := msg.(DismissMsg); ok && d.seq == m.seq {
		return m.Hide()
	}
	return m
}

// View renders the toast box no wider than maxWidth cells. A maxWidth of 0
// means unbounded.
func (m Model) View(maxWidth int) string {
	if !m.visible || m.message == "" {
		return ""
	}

	style := lipgloss.NewStyle().
		Padding(0, 1).
		Border(lipgloss.RoundedBorder())

	var icon string
	switch m.style {
	case StyleError:
		style = style.BorderForeground(styles.ToastBorderErrorColor)
		icon = "❌ "
	case StyleInfo:
		style = style.BorderForeground(styles.ToastBorderInfoColor)
		icon = "ℹ️ "
	case StyleWarn:
		style = style.BorderForeground(styles.ToastBorderWarnColor)
		icon = "⚠️ "
	default:
		style = style.BorderForeground(styles.ToastBorderSuccessColor)
		icon = "✅ "
	}

	content := icon + m.message
	if maxWidth > 0 {
		// border and padding take four cells
		if limit := maxWidth - 4; limit > 0 {
			content = truncate.StringWithTail(content, uint(limit), "…")
		}
	}
	return style.Render(content)
}

// Overlay renders the toast on top of a background view.
func (m Model) Overlay(bg string, width, height int) string {
	fg := m.View(width)
	if fg == "" {
		return bg
	}
	return overlay.Place(overlay.Config{
		Width:    width,
		Height:   height,
		Position: overlay.Bottom,
		PadY:     1,
	}, fg, bg)
}

// DismissMsg signals that a toast should be dismissed.
type DismissMsg struct{ seq int }

// ScheduleDismiss returns a command that dismisses the current toast after d.
func (m Model) ScheduleDismiss(d time.Duration) tea.Cmd {
	seq := m.seq
	return tea.Tick(d, func(_ time.Time) tea.Msg {
		return DismissMsg{seq: seq}
	})
}
