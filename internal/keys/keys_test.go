package keys

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"
)

func TestDefaultKeyMap_KeyAssignments(t *testing.T) {
	km := DefaultKeyMap()

	tests := []struct {
		name     string
		binding  key.Binding
		expected []string
	}{
		{name: "Up uses k and up", binding: km.Up, expected: []string{"k", "up"}},
		{name: "Down uses j and down", binding: km.Down, expected: []string{"j", "down"}},
		{name: "Left uses h and left", binding: km.Left, expected: []string{"h", "left"}},
		{name: "Right uses l and right", binding: km.Right, expected: []string{"l", "right"}},
		{name: "Top uses g and home", binding: km.Top, expected: []string{"g", "home"}},
		{name: "Bottom uses G and end", binding: km.Bottom, expected: []string{"G", "end"}},
		{name: "SwitchPane uses tab", binding: km.SwitchPane, expected: []string{"tab", "shift+tab"}},
		{name: "Quit uses q and ctrl+c", binding: km.Quit, expected: []string{"q", "ctrl+c"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, tt.binding.Keys())
		})
	}
}

func TestDefaultKeyMap_Matches(t *testing.T) {
	km := DefaultKeyMap()

	require.True(t, key.Matches(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}}, km.Down))
	require.True(t, key.Matches(tea.KeyMsg{Type: tea.KeyTab}, km.SwitchPane))
	require.True(t, key.Matches(tea.KeyMsg{Type: tea.KeyCtrlC}, km.Quit))
	require.False(t, key.Matches(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}}, km.Quit))
}

func TestHelpBindingsHaveText(t *testing.T) {
	km := DefaultKeyMap()

	for _, group := range km.FullHelp() {
		for _, b := range group {
			require.NotEmpty(t, b.Help().Key)
			require.NotEmpty(t, b.Help().Desc)
		}
	}
	require.Len(t, km.ShortHelp(), 3)
}
