package styles

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/require"
)

func TestTruncateString(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		width    int
		expected string
	}{
		{"fits", "RowCell", 10, "RowCell"},
		{"exact", "RowCell", 7, "RowCell"},
		{"ellipsis", "SectionHeaderCell", 10, "Section..."},
		{"narrow", "GridCell", 3, "Gri"},
		{"zero width", "GridCell", 0, ""},
		{"negative width", "GridCell", -4, ""},
		{"wide runes", "日本語テキスト", 7, "日本..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TruncateString(tt.input, tt.width)
			require.Equal(t, tt.expected, got, "TruncateString(%q, %d)", tt.input, tt.width)
			require.LessOrEqual(t, lipgloss.Width(got), max(tt.width, 0))
		})
	}
}

func TestColor(t *testing.T) {
	require.Equal(t, lipgloss.NoColor{}, Color(""))
	require.Equal(t, lipgloss.Color("#FF0000"), Color("#FF0000"))
}

func TestColorOr(t *testing.T) {
	require.Equal(t, TextMutedColor, ColorOr("", TextMutedColor))
	require.Equal(t, lipgloss.Color("#00FF00"), ColorOr("#00FF00", TextMutedColor))
}

func TestApplyTheme(t *testing.T) {
	origMuted, origBorder, origHelp, origErr := TextMutedColor, BorderDefaultColor, HelpStyle, StatusErrorColor
	t.Cleanup(func() {
		TextMutedColor, BorderDefaultColor, HelpStyle, StatusErrorColor = origMuted, origBorder, origHelp, origErr
	})

	ApplyTheme("", "#123456", "")
	require.Equal(t, lipgloss.AdaptiveColor{Light: "#123456", Dark: "#123456"}, TextMutedColor)
	require.Equal(t, origErr, StatusErrorColor, "empty values keep defaults")
}

func TestFitWidth(t *testing.T) {
	require.Equal(t, "ab   ", FitWidth("ab", 5))
	require.Equal(t, "abc", FitWidth("abc", 3))
	require.Equal(t, "a...", FitWidth("abcdefgh", 4))
	require.Equal(t, "", FitWidth("abc", 0))

	styled := lipgloss.NewStyle().Bold(true).Render("hi")
	require.Equal(t, 6, lipgloss.Width(FitWidth(styled, 6)), "ANSI sequences do not count toward width")
}
