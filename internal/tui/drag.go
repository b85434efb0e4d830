package tui

import (
	"fmt"

	"filtertree/internal/dnd"
	"filtertree/internal/hitbox"
	"filtertree/internal/model"

	tea "github.com/charmbracelet/bubbletea"
)

// dragState is an in-flight drag. The pointer is in content coordinates:
// line counts from the first row, col from the tree's left edge.
type dragState struct {
	session dnd.Session
	mouse   bool

	line int
	col  int

	targetID    string
	ins         model.Instruction
	hasIns      bool
	allowed     bool
	highlightID string
}

type mousePress struct {
	index int
	line  int
	col   int
}

// startDrag picks up the node at row index. Open groups are collapsed for
// the duration of the drag.
func (m *appModel) startDrag(index, line, col int, mouse bool) tea.Cmd {
	if index < 0 || index >= len(m.rows) {
		return nil
	}
	row := m.rows[index]
	if row.kind != rowNode || !row.node.IsDraggable() {
		return nil
	}
	session, acts := dnd.Start(m.contextID, row.node, row.depth, row.index)
	for _, a := range acts {
		if err := m.holder.Dispatch(a); err != nil {
			m.log.Error("collapse on drag start", "item", row.node.ID, "err", err)
		}
	}
	m.refresh()
	m.selectID(row.node.ID)

	d := &dragState{session: session, mouse: mouse, line: line, col: col}
	if !mouse {
		// Keyboard drags start on the item's own content line at its indent.
		if h, ok := m.registry.lookup(row.node.ID); ok {
			d.line = h.top + 1
		}
		d.col = row.depth * m.cfg.IndentPerLevel
	}
	m.drag = d
	m.hover()
	m.log.Debug("drag start", "item", row.node.ID, "mouse", mouse)
	return nil
}

// movePointer moves the drag pointer and recomputes the instruction.
func (m *appModel) movePointer(line, col int) {
	if m.drag == nil {
		return
	}
	maxLine := contentHeight(m.rows) - 1
	if line > maxLine {
		line = maxLine
	}
	if line < 0 {
		line = 0
	}
	if col < 0 {
		col = 0
	}
	m.drag.line, m.drag.col = line, col
	m.hover()
	m.scrollToLine(line)
}

// hover computes the instruction for the row under the pointer.
func (m *appModel) hover() {
	d := m.drag
	if d == nil {
		return
	}
	d.targetID, d.hasIns, d.allowed, d.highlightID = "", false, false, ""

	idx := rowAtLine(m.rows, d.line)
	if idx < 0 || m.rows[idx].kind != rowNode {
		m.expander.Cancel()
		return
	}
	row := m.rows[idx]
	if row.node.ID == d.session.Item.ID {
		m.expander.Cancel()
		return
	}
	ins := hitbox.Attach(hitbox.Input{
		Level:          row.depth,
		IndentPerLevel: m.cfg.IndentPerLevel,
		Mode:           row.mode,
		Height:         row.height,
		Y:              d.line - row.top,
		X:              d.col,
		Block:          hitbox.BlockFor(row.node),
	})
	d.targetID = row.node.ID
	d.ins = ins
	d.hasIns = true
	d.allowed = dnd.CanDrop(d.session, m.contextID, row.node, ins) && dnd.Dispatchable(ins)
	if id, ok := dnd.HighlightParent(m.holder.PathToItem(row.node.ID), ins); ok {
		d.highlightID = id
	}
	m.expander.Hover(row.node, ins)
}

// drop applies the current instruction, if any, and ends the drag.
func (m *appModel) drop() tea.Cmd {
	d := m.drag
	if d == nil {
		return nil
	}
	m.expander.Cancel()
	m.drag = nil

	var cmds []tea.Cmd
	target, ok := m.holder.Find(d.targetID)
	if ok && d.hasIns {
		if act, ok := dnd.Drop(d.session, m.contextID, target, d.ins); ok {
			cmds = append(cmds, m.dispatch(act))
		} else {
			m.showMinibuffer(fmt.Sprintf("Can't drop %s there.", d.session.Item.Label()))
		}
	}
	cmds = append(cmds, m.finishDrag(d.session))
	cmds = append(cmds, m.minibufferTimeout())
	return tea.Batch(cmds...)
}

// cancelDrag ends the drag without moving anything.
func (m *appModel) cancelDrag() tea.Cmd {
	d := m.drag
	if d == nil {
		return nil
	}
	m.expander.Cancel()
	m.drag = nil
	m.log.Debug("drag cancelled", "item", d.session.Item.ID)
	return m.finishDrag(d.session)
}

// finishDrag reopens an item that was collapsed when the drag started.
func (m *appModel) finishDrag(s dnd.Session) tea.Cmd {
	for _, a := range s.Finish() {
		if err := m.holder.Dispatch(a); err != nil {
			m.log.Error("expand on drop", "item", s.Item.ID, "err", err)
		}
	}
	m.refresh()
	m.selectID(s.Item.ID)
	return nil
}

// dragPreview is the header label for the dragged item.
func (m appModel) dragPreview() string {
	if m.drag == nil {
		return ""
	}
	it := m.drag.session.Item
	if n, ok := m.holder.Find(it.ID); ok {
		it = n
	}
	if kids := len(it.Children); kids > 0 {
		return fmt.Sprintf("%s (+%d)", it.Label(), kids)
	}
	return it.Label()
}

func (m *appModel) scrollToLine(line int) {
	vh := m.viewHeight()
	if line < m.scroll {
		m.scroll = line
	}
	if line >= m.scroll+vh {
		m.scroll = line - vh + 1
	}
	if m.scroll < 0 {
		m.scroll = 0
	}
}
