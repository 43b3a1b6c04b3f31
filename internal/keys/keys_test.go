package keys

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"
)

func TestDefaultKeyMap_Assignments(t *testing.T) {
	k := DefaultKeyMap()

	tests := []struct {
		name     string
		binding  key.Binding
		expected []string
	}{
		{"Next", k.Next, []string{"l", "right", "n"}},
		{"Prev", k.Prev, []string{"h", "left", "p"}},
		{"Select", k.Select, []string{"enter"}},
		{"Pin", k.Pin, []string{"d"}},
		{"Log", k.Log, []string{"L"}},
		{"Quit", k.Quit, []string{"q", "ctrl+c"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, tt.binding.Keys())
			require.NotEmpty(t, tt.binding.Help().Desc)
		})
	}
}

func TestDefaultKeyMap_Matches(t *testing.T) {
	k := DefaultKeyMap()

	require.True(t, key.Matches(tea.KeyMsg{Type: tea.KeyRight}, k.Next))
	require.True(t, key.Matches(tea.KeyMsg{Type: tea.KeyLeft}, k.Prev))
	require.True(t, key.Matches(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'3'}}, k.RunScript))
	require.False(t, key.Matches(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'0'}}, k.RunScript))
}

func TestDefaultKeyMap_NoConflicts(t *testing.T) {
	k := DefaultKeyMap()

	seen := make(map[string]string)
	for _, group := range k.FullHelp() {
		for _, b := range group {
			for _, s := range b.Keys() {
				prev, dup := seen[s]
				require.False(t, dup, "key %q bound to both %q and %q", s, prev, b.Help().Desc)
				seen[s] = b.Help().Desc
			}
		}
	}
}

func TestShortHelp(t *testing.T) {
	k := DefaultKeyMap()
	require.Len(t, k.ShortHelp(), 5)
	require.Len(t, k.FullHelp(), 4)
}
