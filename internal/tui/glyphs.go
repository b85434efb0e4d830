package tui

import (
	"os"
	"strings"

	"filtertree/internal/format"
)

// Terminals can't change the user's font, so the editor offers an ASCII
// fallback for fonts that render the twisties badly. FILTERTREE_GLYPHS wins
// over the configured name.
func glyphPreference(configured string) format.Glyphs {
	switch strings.ToLower(strings.TrimSpace(os.Getenv("FILTERTREE_GLYPHS"))) {
	case "ascii":
		return format.ASCII
	case "unicode", "utf8":
		return format.Unicode
	}
	return format.GlyphSet(configured)
}

func glyphHRule(g format.Glyphs) string {
	if g == format.ASCII {
		return "-"
	}
	return "─"
}

func glyphDropMarker(g format.Glyphs) string {
	if g == format.ASCII {
		return "o"
	}
	return "◦"
}
