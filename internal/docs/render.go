package docs

import (
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/styles"
)

var (
	renderersMu sync.Mutex
	// Keyed by style and wrap width. WithAutoStyle is avoided: it queries the
	// terminal and can block.
	renderers = map[string]*glamour.TermRenderer{}
)

// Render renders md for a terminal of the given width. style is "dark" or
// "light"; "notty" gives plain text. On any renderer error md is returned as is.
func Render(md string, width int, style string) string {
	md = strings.TrimSpace(md)
	if md == "" {
		return ""
	}
	if width < 20 {
		width = 20
	}
	switch style {
	case styles.LightStyle, styles.NoTTYStyle:
	default:
		style = styles.DarkStyle
	}

	key := style + ":" + strconv.Itoa(width)
	renderersMu.Lock()
	r := renderers[key]
	if r == nil {
		rr, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle(style),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			renderersMu.Unlock()
			return md
		}
		renderers[key] = rr
		r = rr
	}
	renderersMu.Unlock()

	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return strings.TrimRight(out, "\n")
}
