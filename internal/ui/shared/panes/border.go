// Package panes contains the bordered pane shared by list and grid views.
package panes

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/cellkit/internal/ui/styles"
)

// Border characters (rounded)
const (
	borderTopLeft     = "╭"
	borderTopRight    = "╮"
	borderBottomLeft  = "╰"
	borderBottomRight = "╯"
	borderHorizontal  = "─"
	borderVertical    = "│"
)

// BorderConfig configures a bordered pane.
type BorderConfig struct {
	Content string // pre-rendered content, at most Width-2 columns per line
	Width   int    // total width including borders
	Height  int    // total height including borders

	Title  string // embedded in the top border, left-aligned
	Footer string // embedded in the bottom border, right-aligned

	Focused bool
}

// BorderedPane renders content inside a rounded border.
// Content lines are padded or cut to the inner size so the right border aligns.
func BorderedPane(cfg BorderConfig) string {
	borderColor := styles.BorderDefaultColor
	if cfg.Focused {
		borderColor = styles.BorderFocusedColor
	}
	borderStyle := lipgloss.NewStyle().Foreground(borderColor)
	titleStyle := lipgloss.NewStyle().Foreground(styles.TextSecondaryColor)
	if cfg.Focused {
		titleStyle = styles.TitleStyle
	}

	innerWidth := max(cfg.Width-2, 1)
	innerHeight := max(cfg.Height-2, 1)

	lines := strings.Split(cfg.Content, "\n")
	var b strings.Builder
	b.WriteString(borderLine(borderTopLeft, borderTopRight, cfg.Title, "", innerWidth, borderStyle, titleStyle))
	for i := range innerHeight {
		line := ""
		if i < len(lines) {
			line = lines[i]
		}
		b.WriteString("\n")
		b.WriteString(borderStyle.Render(borderVertical))
		b.WriteString(styles.FitWidth(line, innerWidth))
		b.WriteString(borderStyle.Render(borderVertical))
	}
	b.WriteString("\n")
	b.WriteString(borderLine(borderBottomLeft, borderBottomRight, "", cfg.Footer, innerWidth, borderStyle, titleStyle))
	return b.String()
}

// borderLine builds ╭─ Left ─────── Right ─╮. Titles that do not fit are
// truncated, then dropped.
func borderLine(leftCorner, rightCorner, left, right string, innerWidth int, borderStyle, titleStyle lipgloss.Style) string {
	// "─ " + left + " " and " " + right + " ─" each cost 3 columns of chrome.
	if left != "" {
		left = styles.TruncateString(left, innerWidth-4)
	}
	if right != "" && lipgloss.Width(right)+3 > innerWidth-lipgloss.Width(left)-4 {
		right = ""
	}

	var b strings.Builder
	b.WriteString(borderStyle.Render(leftCorner))
	used := 0
	if left != "" {
		b.WriteString(borderStyle.Render(borderHorizontal + " "))
		b.WriteString(titleStyle.Render(left))
		b.WriteString(borderStyle.Render(" "))
		used += lipgloss.Width(left) + 3
	}
	tail := ""
	if right != "" {
		tail = borderStyle.Render(" ") + titleStyle.Render(right) + borderStyle.Render(" "+borderHorizontal)
		used += lipgloss.Width(right) + 3
	}
	b.WriteString(borderStyle.Render(strings.Repeat(borderHorizontal, max(innerWidth-used, 0))))
	b.WriteString(tail)
	b.WriteString(borderStyle.Render(rightCorner))
	return b.String()
}
