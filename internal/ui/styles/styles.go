// Package styles contains Lip Gloss style definitions.
package styles

import "github.com/charmbracelet/lipgloss"

var (
	// Text hierarchy
	TextPrimaryColor   = lipgloss.AdaptiveColor{Light: "#333333", Dark: "#CCCCCC"}
	TextSecondaryColor = lipgloss.AdaptiveColor{Light: "#666666", Dark: "#BBBBBB"}
	TextMutedColor     = lipgloss.AdaptiveColor{Light: "#999999", Dark: "#696969"}

	// Borders
	BorderDefaultColor = lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#696969"}
	BorderFocusedColor = lipgloss.AdaptiveColor{Light: "#54A0FF", Dark: "#54A0FF"}

	StatusErrorColor = lipgloss.AdaptiveColor{Light: "#FF6B6B", Dark: "#FF8787"}

	// Selection background shared by list rows and grid tiles
	SelectionBackgroundColor = lipgloss.AdaptiveColor{Light: "#DDDDDD", Dark: "#3A3A3A"}

	TitleStyle = lipgloss.NewStyle().Bold(true).Foreground(TextPrimaryColor)
	HelpStyle  = lipgloss.NewStyle().Foreground(TextMutedColor)
	ErrorStyle = lipgloss.NewStyle().Foreground(StatusErrorColor)
)

// ApplyTheme overrides the default colors with user-configured hex values.
// Empty values keep the defaults.
func ApplyTheme(highlight, muted, errorColor string) {
	if highlight != "" {
		BorderFocusedColor = lipgloss.AdaptiveColor{Light: highlight, Dark: highlight}
	}
	if muted != "" {
		TextMutedColor = lipgloss.AdaptiveColor{Light: muted, Dark: muted}
		BorderDefaultColor = lipgloss.AdaptiveColor{Light: muted, Dark: muted}
		HelpStyle = HelpStyle.Foreground(TextMutedColor)
	}
	if errorColor != "" {
		StatusErrorColor = lipgloss.AdaptiveColor{Light: errorColor, Dark: errorColor}
		ErrorStyle = ErrorStyle.Foreground(StatusErrorColor)
	}
}
