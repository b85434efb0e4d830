package format

import (
	"fmt"
	"strings"

	"filtertree/internal/model"
)

// Glyphs are the markers drawn in front of rows.
type Glyphs struct {
	Expanded  string
	Collapsed string
	Leaf      string
	Root      string
}

var (
	Unicode = Glyphs{Expanded: "▾", Collapsed: "▸", Leaf: "•", Root: "◆"}
	ASCII   = Glyphs{Expanded: "v", Collapsed: ">", Leaf: "*", Root: "#"}
)

// GlyphSet maps a config name to a glyph set. Unknown names get Unicode.
func GlyphSet(name string) Glyphs {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "ascii":
		return ASCII
	default:
		return Unicode
	}
}

// Marker is the glyph for n in its current open state.
func (g Glyphs) Marker(n model.Node) string {
	switch {
	case n.Type == model.KindAttribute:
		return g.Leaf
	case n.Open:
		return g.Expanded
	default:
		return g.Collapsed
	}
}

// Outline renders every node (collapsed ones included) one per line, indented
// two spaces per level. Stable output makes it suitable for diffs.
func Outline(nodes []model.Node, g Glyphs) string {
	var b strings.Builder
	writeOutline(&b, nodes, 0, g)
	return b.String()
}

func writeOutline(b *strings.Builder, nodes []model.Node, depth int, g Glyphs) {
	for _, n := range nodes {
		if n.Type == model.KindFooter {
			continue
		}
		b.WriteString(strings.Repeat("  ", depth))
		b.WriteString(g.Marker(n))
		b.WriteByte(' ')
		b.WriteString(NodeLine(n))
		if n.IsRoot() {
			b.WriteString(" " + g.Root)
		}
		b.WriteByte('\n')
		writeOutline(b, n.Children, depth+1, g)
	}
}

// NodeLine is the one-line description of a node without its marker.
func NodeLine(n model.Node) string {
	switch n.Type {
	case model.KindAttribute:
		return AttributeLine(n) + " [" + n.ID + "]"
	case model.KindGroup:
		return fmt.Sprintf("%s (%d)", n.Label(), len(n.Children))
	default:
		return n.Label()
	}
}

// AttributeLine renders an attribute payload as `name operator value`.
func AttributeLine(n model.Node) string {
	if n.Attribute == nil {
		return n.Label()
	}
	a := n.Attribute
	name := a.Name
	if strings.TrimSpace(name) == "" {
		name = "(unnamed)"
	}
	value := a.Value
	if value == "" {
		value = `""`
	}
	return strings.TrimSpace(name + " " + a.Operator + " " + value)
}
