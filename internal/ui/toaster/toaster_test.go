package toaster

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	m := New()

	assert.False(t, m.Visible())
	assert.Empty(t, m.View(0))
}

func TestShowHide(t *testing.T) {
	m := New().Show("Settings", StyleInfo)
	require.True(t, m.Visible())
	require.Equal(t, "Settings", m.Message())
	require.Contains(t, m.View(0), "Settings")

	m = m.Hide()
	require.False(t, m.Visible())
	require.Empty(t, m.View(0))
}

func TestShow_ReplacesExisting(t *testing.T) {
	m := New().Show("First", StyleSuccess).Show("Second", StyleError)

	assert.Contains(t, m.View(0), "Second")
	assert.NotContains(t, m.View(0), "First")
}

func TestView_Icons(t *testing.T) {
	tests := []struct {
		style Style
		icon  string
	}{
		{StyleSuccess, "✅"},
		{StyleError, "❌"},
		{StyleInfo, "ℹ️"},
		{StyleWarn, "⚠️"},
	}
	for _, tt := range tests {
		view := New().Show("msg", tt.style).View(0)
		assert.Contains(t, view, tt.icon)
		assert.Contains(t, view, "╭", "rounded border")
	}
}

func TestView_Truncates(t *testing.T) {
	m := New().Show(strings.Repeat("x", 80), StyleWarn)

	view := m.View(30)
	for _, line := range strings.Split(view, "\n") {
		assert.LessOrEqual(t, ansi.StringWidth(line), 30)
	}
	assert.Contains(t, view, "…")
}

func TestUpdate_StaleDismissIgnored(t *testing.T) {
	m := New().Show("old", StyleInfo)
	stale := m.ScheduleDismiss(0)().(DismissMsg)

	m = m.Show("new", StyleInfo)
	m = m.Update(stale)
	require.True(t, m.Visible(), "a dismissal for an older toast keeps the new one")

	current := m.ScheduleDismiss(0)().(DismissMsg)
	m = m.Update(current)
	require.False(t, m.Visible())
}

func TestOverlay(t *testing.T) {
	bg := strings.Repeat(strings.Repeat(".", 30)+"\n", 7) + strings.Repeat(".", 30)

	out := New().Overlay(bg, 30, 8)
	require.Equal(t, bg, out, "hidden toast leaves the background alone")

	out = New().Show("Saved", StyleSuccess).Overlay(bg, 30, 8)
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 8)
	require.Contains(t, lines[5], "Saved")
}
