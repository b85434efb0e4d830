package tui

import (
	"strings"

	xansi "github.com/charmbracelet/x/ansi"
)

// fitPane clips or pads s to exactly height lines, each exactly width cells.
// height <= 0 keeps the line count.
func fitPane(s string, width, height int) string {
	width = max(width, 0)
	lines := strings.Split(s, "\n")
	if height > 0 {
		if len(lines) > height {
			lines = lines[:height]
		}
		for len(lines) < height {
			lines = append(lines, "")
		}
	}
	for i, ln := range lines {
		lines[i] = padRight(fitLine(ln, width), width)
	}
	return strings.Join(lines, "\n")
}

// fitLine cuts ln to width cells, marking the cut with an ellipsis.
func fitLine(ln string, width int) string {
	switch {
	case width <= 0:
		return ""
	case xansi.StringWidth(ln) <= width:
		return ln
	case width == 1:
		return xansi.Cut(ln, 0, 1)
	default:
		return xansi.Cut(ln, 0, width-1) + "…"
	}
}

func padRight(s string, w int) string {
	if sw := xansi.StringWidth(s); sw < w {
		return s + strings.Repeat(" ", w-sw)
	}
	return s
}
