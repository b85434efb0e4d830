package tui

import (
	"strings"

	"filtertree/internal/model"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type editFocus int

const (
	editFocusName editFocus = iota
	editFocusOperator
	editFocusValue
)

// editState backs the attribute editor: two text inputs and an operator
// chooser between them.
type editState struct {
	itemID   string
	original model.Attribute
	name     textinput.Model
	value    textinput.Model
	operator string
	focus    editFocus
}

func newEditState() editState {
	name := textinput.New()
	name.Prompt = ""
	name.Placeholder = "attribute"
	name.CharLimit = 200

	value := textinput.New()
	value.Prompt = ""
	value.Placeholder = "value"
	value.CharLimit = 2000

	return editState{name: name, value: value}
}

func (m *appModel) openEditModal(n model.Node) {
	if n.Type != model.KindAttribute {
		return
	}
	attr := model.DefaultAttribute()
	if n.Attribute != nil {
		attr = *n.Attribute
	}
	e := &m.edit
	e.itemID = n.ID
	e.original = attr
	e.operator = attr.Operator
	e.name.SetValue(attr.Name)
	e.name.CursorEnd()
	e.value.SetValue(attr.Value)
	e.value.CursorEnd()
	e.setFocus(editFocusName)
	m.modal = modalEditAttribute
	m.resizeModals()
}

func (e *editState) setFocus(f editFocus) {
	e.focus = f
	e.name.Blur()
	e.value.Blur()
	switch f {
	case editFocusName:
		e.name.Focus()
	case editFocusValue:
		e.value.Focus()
	}
}

// patch holds only the fields that differ from the attribute as opened.
func (e editState) patch() model.AttributePatch {
	var p model.AttributePatch
	if v := strings.TrimSpace(e.name.Value()); v != e.original.Name {
		p.Name = &v
	}
	if e.operator != e.original.Operator {
		op := e.operator
		p.Operator = &op
	}
	if v := e.value.Value(); v != e.original.Value {
		p.Value = &v
	}
	return p
}

func (m *appModel) updateEditModal(msg tea.KeyMsg) tea.Cmd {
	e := &m.edit
	switch msg.String() {
	case "esc", "ctrl+g":
		m.closeModal()
		return nil
	case "enter":
		p := e.patch()
		id := e.itemID
		m.closeModal()
		if p.Empty() {
			return nil
		}
		return m.dispatch(model.AttributeDataUpdateAction{ItemID: id, AttributeData: &p})
	case "tab", "down":
		e.setFocus((e.focus + 1) % 3)
		return nil
	case "shift+tab", "up":
		e.setFocus((e.focus + 2) % 3)
		return nil
	}

	if e.focus == editFocusOperator {
		switch msg.String() {
		case "left", "h":
			e.operator = nextOperator(m.cfg.Operators, e.operator, -1)
		case "right", "l", "o", " ":
			e.operator = nextOperator(m.cfg.Operators, e.operator, 1)
		}
		return nil
	}

	var cmd tea.Cmd
	if e.focus == editFocusName {
		e.name, cmd = e.name.Update(msg)
	} else {
		e.value, cmd = e.value.Update(msg)
	}
	return cmd
}

// nextOperator steps through ops from cur. An operator outside ops starts
// from the first entry.
func nextOperator(ops []string, cur string, delta int) string {
	if len(ops) == 0 {
		return cur
	}
	for i, op := range ops {
		if op == cur {
			n := len(ops)
			return ops[((i+delta)%n+n)%n]
		}
	}
	return ops[0]
}
