package cells

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/cellkit/internal/cell"
	"github.com/zjrosen/cellkit/internal/ui/styles"
)

// Base holds slot values and renders them with the template layout.
// Kinds embed it to become cell.Awakener and surface.Cell.
type Base struct {
	identifier string
	layout     cell.Layout
	values     map[string]string
}

// AwakeFromTemplate copies the template layout into the instance.
func (b *Base) AwakeFromTemplate(t *cell.Template) {
	b.identifier = t.Identifier
	b.layout = t.Layout
}

// Identifier returns the identifier of the template the cell was produced from.
func (b *Base) Identifier() string {
	return b.identifier
}

// Layout returns the layout the cell renders with.
func (b *Base) Layout() cell.Layout {
	return b.layout
}

// Set stores value for slot key. Keys without a slot are kept but not drawn.
func (b *Base) Set(key, value string) {
	if b.values == nil {
		b.values = make(map[string]string)
	}
	b.values[key] = value
}

// Value returns the value stored for slot key.
func (b *Base) Value(key string) string {
	return b.values[key]
}

// Height returns the number of lines View produces.
func (b *Base) Height() int {
	padV, _ := padding(b.layout.Padding)
	h := b.contentHeight() + 2*padV
	if b.layout.Border {
		h += 2
	}
	return h
}

// View renders the cell at width columns. A template width narrower than
// width is centered in the available space.
func (b *Base) View(width int, selected bool) string {
	if width < 1 {
		return ""
	}
	outer := width
	if b.layout.Width > 0 && b.layout.Width < width {
		outer = b.layout.Width
	}

	padV, padH := padding(b.layout.Padding)
	border := 0
	if b.layout.Border {
		border = 2
	}
	inner := max(outer-2*padH-border, 0)
	base := b.baseStyle(selected)

	blank := base.Render(strings.Repeat(" ", inner+2*padH))
	sidePad := base.Render(strings.Repeat(" ", padH))

	var lines []string
	for range padV {
		lines = append(lines, blank)
	}
	for _, content := range b.contentLines(inner, base, selected) {
		lines = append(lines, sidePad+content+sidePad)
	}
	for range padV {
		lines = append(lines, blank)
	}

	block := strings.Join(lines, "\n")
	if b.layout.Border {
		borderColor := styles.ColorOr(b.layout.Style.BorderColor, styles.BorderDefaultColor)
		if selected {
			borderColor = styles.BorderFocusedColor
		}
		block = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(borderColor).
			Render(block)
	}

	if outer < width {
		block = lipgloss.PlaceHorizontal(width, lipgloss.Center, block)
	}
	return block
}

func (b *Base) contentHeight() int {
	if b.layout.Height > 0 {
		return b.layout.Height
	}
	if b.layout.Vertical && len(b.layout.Slots) > 0 {
		return len(b.layout.Slots)
	}
	return 1
}

// contentLines returns exactly contentHeight lines of inner columns each.
func (b *Base) contentLines(inner int, base lipgloss.Style, selected bool) []string {
	height := b.contentHeight()
	lines := make([]string, 0, height)

	if b.layout.Vertical {
		for _, slot := range b.layout.Slots {
			if len(lines) == height {
				break
			}
			lines = append(lines, b.renderSlot(slot, inner, base, selected))
		}
	} else if len(b.layout.Slots) > 0 {
		lines = append(lines, b.renderRow(inner, base, selected))
	}

	for len(lines) < height {
		lines = append(lines, base.Render(strings.Repeat(" ", inner)))
	}
	return lines
}

// renderRow lays slots side by side separated by one space. Fixed slots get
// their width first; flex slots share the rest, the first taking any remainder.
func (b *Base) renderRow(inner int, base lipgloss.Style, selected bool) string {
	slots := b.layout.Slots
	fixed, flex := 0, 0
	for _, s := range slots {
		if s.Width > 0 {
			fixed += s.Width
		} else {
			flex++
		}
	}
	free := max(inner-fixed-(len(slots)-1), 0)

	sep := base.Render(" ")
	parts := make([]string, 0, len(slots))
	firstFlex := true
	for _, s := range slots {
		w := s.Width
		if w == 0 {
			w = free / flex
			if firstFlex {
				w += free % flex
				firstFlex = false
			}
		}
		parts = append(parts, b.renderSlot(s, w, base, selected))
	}

	line := strings.Join(parts, sep)
	if lipgloss.Width(line) > inner {
		return styles.FitWidth(line, inner)
	}
	return line + base.Render(strings.Repeat(" ", inner-lipgloss.Width(line)))
}

// renderSlot renders one slot aligned in exactly w columns.
func (b *Base) renderSlot(s cell.Slot, w int, base lipgloss.Style, selected bool) string {
	if w < 1 {
		return ""
	}
	text := styles.TruncateString(s.Prefix+b.values[s.Key], w)
	gap := w - lipgloss.Width(text)
	switch s.Align {
	case "right":
		text = strings.Repeat(" ", gap) + text
	case "center":
		text = strings.Repeat(" ", gap/2) + text + strings.Repeat(" ", gap-gap/2)
	default:
		text += strings.Repeat(" ", gap)
	}

	st := base
	if !selected && s.Color != "" {
		st = st.Foreground(lipgloss.Color(s.Color))
	}
	return st.Render(text)
}

func (b *Base) baseStyle(selected bool) lipgloss.Style {
	ls := b.layout.Style
	st := lipgloss.NewStyle().Bold(ls.Bold).Italic(ls.Italic)
	if selected {
		return st.
			Foreground(styles.ColorOr(ls.SelectedForeground, styles.TextPrimaryColor)).
			Background(styles.ColorOr(ls.SelectedBackground, styles.SelectionBackgroundColor))
	}
	return st.
		Foreground(styles.Color(ls.Foreground)).
		Background(styles.Color(ls.Background))
}

// padding splits a [vertical, horizontal] pair. A single value applies to
// both sides.
func padding(p []int) (vertical, horizontal int) {
	switch len(p) {
	case 0:
		return 0, 0
	case 1:
		return p[0], p[0]
	default:
		return p[0], p[1]
	}
}
