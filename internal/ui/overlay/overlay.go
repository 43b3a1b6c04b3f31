// Package overlay renders content on top of a background view without
// clearing it. The simulator uses it for toasts and the help sheet.
package overlay

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Position specifies where to place the overlay content.
type Position int

const (
	// Center places the overlay in the center of the viewport.
	Center Position = iota
	// Top places the overlay at the top center of the viewport.
	Top
	// Bottom places the overlay at the bottom center of the viewport.
	Bottom
	// TopRight places the overlay in the top right corner.
	TopRight
)

// Config controls overlay rendering behavior.
type Config struct {
	Width    int
	Height   int
	Position Position
	PadX     int // distance from the right edge (TopRight only)
	PadY     int // distance from the top or bottom edge
}

// Place renders fg on top of bg. Both may contain ANSI styling.
func Place(cfg Config, fg, bg string) string {
	fgLines := strings.Split(fg, "\n")
	bgLines := strings.Split(bg, "\n")

	for len(bgLines) < cfg.Height {
		bgLines = append(bgLines, strings.Repeat(" ", cfg.Width))
	}

	x, y := position(cfg, lipgloss.Width(fg), len(fgLines))

	for i, fgLine := range fgLines {
		row := y + i
		if row >= len(bgLines) {
			break
		}
		bgLines[row] = splice(bgLines[row], fgLine, x)
	}
	return strings.Join(bgLines, "\n")
}

// splice replaces the cells of line starting at column x with fg.
func splice(line, fg string, x int) string {
	left := ansi.Truncate(line, x, "")
	if w := ansi.StringWidth(left); w < x {
		left += strings.Repeat(" ", x-w)
	}
	end := x + ansi.StringWidth(fg)
	var right string
	if end < ansi.StringWidth(line) {
		right = ansi.TruncateLeft(line, end, "")
	}
	return left + fg + right
}

func position(cfg Config, fgWidth, fgHeight int) (x, y int) {
	switch cfg.Position {
	case Top:
		x = (cfg.Width - fgWidth) / 2
		y = cfg.PadY
	case Bottom:
		x = (cfg.Width - fgWidth) / 2
		y = cfg.Height - fgHeight - cfg.PadY
	case TopRight:
		x = cfg.Width - fgWidth - cfg.PadX
		y = cfg.PadY
	default:
		x = (cfg.Width - fgWidth) / 2
		y = (cfg.Height - fgHeight) / 2
	}
	return max(x, 0), max(y, 0)
}
