package tui

import (
	"time"

	"filtertree/internal/model"
	"filtertree/internal/mutate"
	"filtertree/internal/outline"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

const minibufferTTL = 4 * time.Second

func (m appModel) Init() tea.Cmd { return waitForExpand(m.expands) }

// waitForExpand turns the next auto-expand timer firing into a message.
func waitForExpand(f *expandFeed) tea.Cmd {
	return func() tea.Msg {
		id, ok := <-f.ch
		if !ok {
			return nil
		}
		return expandDueMsg{itemID: id}
	}
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.resizeModals()
		m.ensureVisible()
		return m, nil

	case flashDoneMsg:
		if msg.seq == m.flashSeq {
			m.flashItemID = ""
		}
		return m, nil

	case minibufferClearMsg:
		if msg.seq == m.minibufferSeq {
			m.minibufferText = ""
		}
		return m, nil

	case expandDueMsg:
		next := waitForExpand(m.expands)
		// The pointer may have moved on before the timer message arrived.
		if m.drag == nil || m.drag.targetID != msg.itemID {
			return m, next
		}
		if err := m.holder.Dispatch(model.ExpandAction{ItemID: msg.itemID}); err != nil {
			m.log.Error("auto-expand", "item", msg.itemID, "err", err)
		}
		m.refresh()
		m.hover()
		return m, next

	case tea.MouseMsg:
		cmd := m.updateMouse(msg)
		return m, tea.Batch(cmd, m.drainFooters())

	case tea.KeyMsg:
		var cmd tea.Cmd
		switch {
		case m.modal != modalNone:
			cmd = m.updateModal(msg)
		case m.drag != nil:
			cmd = m.updateDragKeys(msg)
		default:
			if key.Matches(msg, m.keys.Quit) {
				m.expander.Cancel()
				return m, tea.Quit
			}
			cmd = m.updateKeys(msg)
		}
		return m, tea.Batch(cmd, m.drainFooters())
	}

	if m.modal != modalNone {
		return m, m.updateModalOther(msg)
	}
	return m, nil
}

func (m *appModel) updateKeys(msg tea.KeyMsg) tea.Cmd {
	row, hasRow := m.selectedRow()
	switch {
	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1)
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1)
	case key.Matches(msg, m.keys.Top):
		m.cursor = 0
		m.clampCursor()
	case key.Matches(msg, m.keys.Bottom):
		m.cursor = len(m.rows) - 1
		m.clampCursor()
	case key.Matches(msg, m.keys.Left):
		if !hasRow {
			return nil
		}
		if row.kind == rowNode && row.node.Open && row.node.HasChildren() {
			return m.dispatch(model.CollapseAction{ItemID: row.node.ID})
		}
		m.selectID(row.parentID)
	case key.Matches(msg, m.keys.Right):
		if hasRow && row.kind == rowNode {
			return m.dispatch(model.ExpandAction{ItemID: row.node.ID})
		}
	case key.Matches(msg, m.keys.Toggle):
		if !hasRow {
			return nil
		}
		switch {
		case row.kind == rowFooter:
			row.node.Footer.OnClick(model.KindAttribute)
		case row.node.Type == model.KindAttribute:
			m.openEditModal(row.node)
		default:
			return m.dispatch(model.ToggleAction{ItemID: row.node.ID})
		}
	case key.Matches(msg, m.keys.Edit):
		if hasRow && row.kind == rowNode && row.node.Type == model.KindAttribute {
			m.openEditModal(row.node)
		}
	case key.Matches(msg, m.keys.Operator):
		if hasRow && row.kind == rowNode && row.node.Type == model.KindAttribute {
			op := nextOperator(m.cfg.Operators, row.node.Attribute.Operator, 1)
			return m.dispatch(model.AttributeDataUpdateAction{ItemID: row.node.ID, AttributeData: &model.AttributePatch{Operator: &op}})
		}
	case key.Matches(msg, m.keys.AddAttr):
		if id := m.selectedGroupID(); id != "" {
			return m.dispatch(model.AddAttributeAction{TargetID: id})
		}
	case key.Matches(msg, m.keys.AddGroup):
		if id := m.selectedGroupID(); id != "" {
			return m.dispatch(model.AddGroupAction{TargetID: id})
		}
	case key.Matches(msg, m.keys.Move):
		if hasRow && row.kind == rowNode && row.node.IsDraggable() && !row.node.IsRoot() {
			m.openMoveModal(row.node)
		}
	case key.Matches(msg, m.keys.Drag):
		if hasRow && row.kind == rowNode && !row.node.IsRoot() {
			return m.startDrag(m.cursor, 0, 0, false)
		}
	case key.Matches(msg, m.keys.Help):
		m.openHelpModal()
	}
	m.focusFooter()
	return nil
}

func (m *appModel) moveCursor(delta int) {
	m.cursor += delta
	m.clampCursor()
}

// focusFooter tells a selected footer row it has focus.
func (m *appModel) focusFooter() {
	if row, ok := m.selectedRow(); ok && row.kind == rowFooter && row.node.Footer != nil {
		row.node.Footer.OnFocus()
	}
}

func (m *appModel) updateDragKeys(msg tea.KeyMsg) tea.Cmd {
	d := m.drag
	step := m.cfg.IndentPerLevel
	switch {
	case key.Matches(msg, m.dragKeys.Cancel):
		return m.cancelDrag()
	case key.Matches(msg, m.dragKeys.Drop):
		return m.drop()
	case key.Matches(msg, m.dragKeys.Up):
		m.movePointer(d.line-1, d.col)
	case key.Matches(msg, m.dragKeys.Down):
		m.movePointer(d.line+1, d.col)
	case key.Matches(msg, m.dragKeys.Left):
		m.movePointer(d.line, d.col-step)
	case key.Matches(msg, m.dragKeys.Right):
		m.movePointer(d.line, d.col+step)
	}
	return nil
}

func (m *appModel) updateMouse(msg tea.MouseMsg) tea.Cmd {
	if m.modal != modalNone {
		return nil
	}
	line := msg.Y - headerLines + m.scroll
	col := msg.X

	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			m.scroll = max(0, m.scroll-nodeRowHeight)
			return nil
		case tea.MouseButtonWheelDown:
			if limit := contentHeight(m.rows) - m.viewHeight(); m.scroll+nodeRowHeight <= limit {
				m.scroll += nodeRowHeight
			}
			return nil
		case tea.MouseButtonLeft:
			if m.drag != nil {
				return nil
			}
			idx := rowAtLine(m.rows, line)
			if idx < 0 {
				return nil
			}
			m.cursor = idx
			m.mouseDown = &mousePress{index: idx, line: line, col: col}
			m.focusFooter()
		}
	case tea.MouseActionMotion:
		if m.drag != nil && m.drag.mouse {
			m.movePointer(line, col)
			return nil
		}
		if p := m.mouseDown; p != nil && msg.Button == tea.MouseButtonLeft && (p.line != line || p.col != col) {
			m.mouseDown = nil
			if row := m.rows[p.index]; row.kind == rowNode && !row.node.IsRoot() {
				cmd := m.startDrag(p.index, line, col, true)
				m.movePointer(line, col)
				return cmd
			}
		}
	case tea.MouseActionRelease:
		if m.drag != nil && m.drag.mouse {
			m.movePointer(line, col)
			return m.drop()
		}
		p := m.mouseDown
		m.mouseDown = nil
		if p == nil || p.index >= len(m.rows) {
			return nil
		}
		return m.click(m.rows[p.index], col)
	}
	return nil
}

// click handles a press and release without movement.
func (m *appModel) click(row treeRow, col int) tea.Cmd {
	indent := row.depth * m.cfg.IndentPerLevel
	if row.kind == rowFooter {
		// "+ Group" comes first on the footer line.
		if col < indent+len(footerGroupLabel)+1 {
			row.node.Footer.OnClick(model.KindGroup)
		} else {
			row.node.Footer.OnClick(model.KindAttribute)
		}
		return nil
	}
	if col >= indent && col <= indent+1 && row.node.Type == model.KindGroup {
		return m.dispatch(model.ToggleAction{ItemID: row.node.ID})
	}
	return nil
}

// drainFooters dispatches whatever footer rows queued during this update.
func (m *appModel) drainFooters() tea.Cmd {
	q := m.footers
	if q.focused != "" {
		m.showMinibuffer("a: add attribute to Item " + q.focused + "   n: add group")
		q.focused = ""
	}
	if len(q.actions) == 0 {
		return nil
	}
	acts := q.actions
	q.actions = nil
	cmds := make([]tea.Cmd, 0, len(acts))
	for _, a := range acts {
		cmds = append(cmds, m.dispatch(a))
	}
	return tea.Batch(cmds...)
}

// dispatch commits action and returns the follow-up commands: the row flash
// and the announcement timeout for structural changes.
func (m *appModel) dispatch(action model.Action) tea.Cmd {
	if err := m.holder.Dispatch(action); err != nil {
		m.showMinibuffer("Error: " + err.Error())
		return m.minibufferTimeout()
	}
	m.refresh()

	last := m.holder.LastAction()
	if last == nil || !model.IsStructural(last) {
		return nil
	}
	focusID := model.SubjectID(last)
	switch a := last.(type) {
	case model.AddGroupAction, model.AddAttributeAction:
		if kids, err := outline.ChildrenOf(m.holder.Tree(), model.SubjectID(a)); err == nil && len(kids) > 0 {
			focusID = kids[0].ID
		}
	}
	m.selectID(focusID)
	if text := mutate.Announce(last, m.holder.Tree()); text != "" {
		m.showMinibuffer(text)
	}
	if a, ok := last.(model.AddAttributeAction); ok && a.Node == nil {
		if n, ok := m.holder.Find(focusID); ok {
			m.openEditModal(n)
		}
	}
	return tea.Batch(m.flash(focusID), m.minibufferTimeout())
}

func (m *appModel) flash(id string) tea.Cmd {
	m.flashItemID = id
	m.flashSeq++
	seq := m.flashSeq
	return tea.Tick(m.cfg.FlashDuration, func(time.Time) tea.Msg { return flashDoneMsg{seq: seq} })
}

func (m *appModel) showMinibuffer(text string) {
	m.minibufferText = text
	m.minibufferSeq++
}

func (m *appModel) minibufferTimeout() tea.Cmd {
	seq := m.minibufferSeq
	return tea.Tick(minibufferTTL, func(time.Time) tea.Msg { return minibufferClearMsg{seq: seq} })
}
