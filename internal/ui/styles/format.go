package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// TruncateString truncates a string to fit within maxWidth, adding ellipsis if needed.
// ANSI sequences are preserved and do not count toward the width.
func TruncateString(s string, maxWidth int) string {
	if maxWidth < 1 {
		return ""
	}
	if ansi.StringWidth(s) <= maxWidth {
		return s
	}
	if maxWidth <= 3 {
		return ansi.Truncate(s, maxWidth, "")
	}
	return ansi.Truncate(s, maxWidth, "...")
}

// Color converts a hex string from a template into a terminal color.
// Empty strings yield NoColor so styles fall through to the terminal default.
func Color(hex string) lipgloss.TerminalColor {
	if hex == "" {
		return lipgloss.NoColor{}
	}
	return lipgloss.Color(hex)
}

// ColorOr returns Color(hex) unless hex is empty, in which case fallback is used.
func ColorOr(hex string, fallback lipgloss.TerminalColor) lipgloss.TerminalColor {
	if hex == "" {
		return fallback
	}
	return lipgloss.Color(hex)
}

// FitWidth pads s with spaces, or truncates it, to exactly width columns.
func FitWidth(s string, width int) string {
	w := ansi.StringWidth(s)
	switch {
	case width < 1:
		return ""
	case w == width:
		return s
	case w < width:
		return s + strings.Repeat(" ", width-w)
	default:
		return TruncateString(s, width)
	}
}
