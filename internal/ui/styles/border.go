package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Rounded border pieces.
const (
	borderTopLeft     = "╭"
	borderTopRight    = "╮"
	borderBottomLeft  = "╰"
	borderBottomRight = "╯"
	borderHorizontal  = "─"
	borderVertical    = "│"
)

// TitledPanel draws content in a rounded border with the title set into the
// top edge: ╭─ Title ─────╮. The panel is width columns wide and as tall as
// the content. Active panels use the display border color.
func TitledPanel(content, title string, width int, active bool) string {
	var borderColor lipgloss.TerminalColor = BorderDefaultColor
	if active {
		borderColor = BorderDisplayColor
	}
	border := lipgloss.NewStyle().Foreground(borderColor)

	inner := max(width-2, 1)
	lines := strings.Split(content, "\n")

	var b strings.Builder
	b.WriteString(topBorder(title, inner, border))
	for _, line := range lines {
		line = ansi.Truncate(line, inner, "")
		if w := ansi.StringWidth(line); w < inner {
			line += strings.Repeat(" ", inner-w)
		}
		b.WriteString("\n")
		b.WriteString(border.Render(borderVertical) + line + border.Render(borderVertical))
	}
	b.WriteString("\n")
	b.WriteString(border.Render(borderBottomLeft + strings.Repeat(borderHorizontal, inner) + borderBottomRight))
	return b.String()
}

func topBorder(title string, inner int, border lipgloss.Style) string {
	// "─ " + title + " " + at least one "─"
	if title == "" || inner < 5 {
		return border.Render(borderTopLeft + strings.Repeat(borderHorizontal, inner) + borderTopRight)
	}
	title = ansi.Truncate(title, inner-4, "…")
	rest := inner - 3 - ansi.StringWidth(title)
	return border.Render(borderTopLeft+borderHorizontal+" ") +
		PanelTitleStyle.Render(title) +
		border.Render(" "+strings.Repeat(borderHorizontal, rest)+borderTopRight)
}
