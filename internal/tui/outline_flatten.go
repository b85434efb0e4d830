package tui

import (
	"filtertree/internal/hitbox"
	"filtertree/internal/model"
)

// treeRow is one visible row. Footer rows carry the id of the group they close.
type treeRow struct {
	kind     rowKind
	node     model.Node
	depth    int
	index    int
	siblings int
	parentID string
	mode     hitbox.Mode

	// top is the first content line of the row; height is its line count.
	top    int
	height int
}

func (r treeRow) contains(line int) bool { return line >= r.top && line < r.top+r.height }

// footerFor builds the footer node drawn under an open group.
type footerFor func(groupID string) model.Node

// flattenTree lists the visible rows: every node whose ancestors are all open,
// plus a footer row closing each open group.
func flattenTree(tree model.Tree, footer footerFor) []treeRow {
	var out []treeRow
	top := 0
	var walk func(nodes []model.Node, depth int, parentID string)
	walk = func(nodes []model.Node, depth int, parentID string) {
		for i, n := range nodes {
			if n.Type == model.KindFooter {
				continue
			}
			out = append(out, treeRow{
				kind:     rowNode,
				node:     n,
				depth:    depth,
				index:    i,
				siblings: len(nodes),
				parentID: parentID,
				mode:     hitbox.ModeFor(n, i, len(nodes)),
				top:      top,
				height:   nodeRowHeight,
			})
			top += nodeRowHeight
			if n.Type != model.KindGroup || !n.Open {
				continue
			}
			walk(n.Children, depth+1, n.ID)
			if footer != nil {
				out = append(out, treeRow{
					kind:     rowFooter,
					node:     footer(n.ID),
					depth:    depth + 1,
					index:    len(n.Children),
					siblings: len(n.Children),
					parentID: n.ID,
					top:      top,
					height:   footerRowHeight,
				})
				top += footerRowHeight
			}
		}
	}
	walk(tree, 0, "")
	return out
}

// rowAtLine returns the index of the row covering content line, or -1.
func rowAtLine(rows []treeRow, line int) int {
	lo, hi := 0, len(rows)-1
	for lo <= hi {
		mid := (lo + hi) / 2
		r := rows[mid]
		switch {
		case line < r.top:
			hi = mid - 1
		case line >= r.top+r.height:
			lo = mid + 1
		default:
			return mid
		}
	}
	return -1
}

func contentHeight(rows []treeRow) int {
	if len(rows) == 0 {
		return 0
	}
	last := rows[len(rows)-1]
	return last.top + last.height
}
