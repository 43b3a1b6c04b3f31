package display

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/zjrosen/pagedeck/internal/pagemanager"
)

var fadeStyle = lipgloss.NewStyle().Faint(true)

// Fit pads or truncates s to exactly width×height cells.
func Fit(s string, width, height int) []string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	out := make([]string, height)
	for i := range out {
		var line string
		if i < len(lines) {
			line = ansi.Truncate(lines[i], width, "")
		}
		if w := ansi.StringWidth(line); w < width {
			line += strings.Repeat(" ", width-w)
		}
		out[i] = line
	}
	return out
}

// Compose returns the frame shown at progress p (0..1) of a transition from
// one fitted page to another. Both inputs must come from Fit with the same
// width and height.
func Compose(from, to []string, anim pagemanager.Animation, p float64, width, height int) []string {
	if p >= 1 || from == nil || anim == pagemanager.AnimNone {
		return to
	}
	p = max(p, 0)

	// s columns / r rows of the new page are revealed
	s := int(p * float64(width))
	r := int(p * float64(height))

	switch anim {
	case pagemanager.AnimOverLeft:
		return columns(from, to, func(o, n string) string { return cut(o, 0, width-s) + cut(n, 0, s) })
	case pagemanager.AnimOverRight:
		return columns(from, to, func(o, n string) string { return cut(n, width-s, width) + cut(o, s, width) })
	case pagemanager.AnimMoveLeft:
		return columns(from, to, func(o, n string) string { return cut(o, s, width) + cut(n, 0, s) })
	case pagemanager.AnimMoveRight:
		return columns(from, to, func(o, n string) string { return cut(n, width-s, width) + cut(o, 0, width-s) })
	case pagemanager.AnimOutLeft:
		return columns(from, to, func(o, n string) string { return cut(o, s, width) + cut(n, width-s, width) })
	case pagemanager.AnimOutRight:
		return columns(from, to, func(o, n string) string { return cut(n, 0, s) + cut(o, 0, width-s) })

	case pagemanager.AnimOverTop:
		return rows(from[:height-r], to[:r])
	case pagemanager.AnimOverBottom:
		return rows(to[height-r:], from[r:])
	case pagemanager.AnimMoveTop:
		return rows(from[r:], to[:r])
	case pagemanager.AnimMoveBottom:
		return rows(to[height-r:], from[:height-r])
	case pagemanager.AnimOutTop:
		return rows(from[r:], to[height-r:])
	case pagemanager.AnimOutBottom:
		return rows(to[:r], from[:height-r])

	case pagemanager.AnimFadeIn:
		// the old page dims, then the new one brightens
		if p < 0.5 {
			return faded(from)
		}
		return faded(to)
	case pagemanager.AnimFadeOut:
		if p < 0.5 {
			return faded(from)
		}
		return to
	}
	return to
}

func cut(line string, left, right int) string {
	if right <= left {
		return ""
	}
	return ansi.Cut(line, left, right)
}

func columns(from, to []string, join func(o, n string) string) []string {
	out := make([]string, len(to))
	for i := range to {
		out[i] = join(from[i], to[i])
	}
	return out
}

func rows(top, bottom []string) []string {
	out := make([]string, 0, len(top)+len(bottom))
	out = append(out, top...)
	return append(out, bottom...)
}

func faded(lines []string) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = fadeStyle.Render(ansi.Strip(l))
	}
	return out
}
