package tui

import (
	"fmt"
	"slices"
	"strings"

	"filtertree/internal/format"
	"filtertree/internal/model"
	"filtertree/internal/outline"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

const footerGroupLabel = "+ Group"

const footerAttributeLabel = "+ Attribute"

func (m appModel) View() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}
	var body string
	if m.modal != modalNone {
		body = lipgloss.Place(m.width, m.viewHeight(), lipgloss.Center, lipgloss.Center, m.viewModal())
	} else {
		body = m.viewTree()
	}
	return strings.Join([]string{
		fitPane(m.viewHeader(), m.width, headerLines),
		fitPane(body, m.width, m.viewHeight()),
		fitPane(m.viewStatus(), m.width, footerLines),
	}, "\n")
}

func (m appModel) viewHeader() string {
	title := lipgloss.NewStyle().Bold(true).Render("filtertree")
	parts := []string{title, styleMuted().Render(fmt.Sprintf("%d nodes", outline.Count(m.holder.Tree())))}
	if d := m.drag; d != nil {
		parts = append(parts, "dragging "+m.dragPreview())
		if d.hasIns {
			hint := describeInstruction(d.ins)
			if !d.allowed {
				hint += " (not allowed)"
			}
			parts = append(parts, styleDropLine(d.allowed).Render(hint))
		}
	}
	return " " + strings.Join(parts, "  ")
}

func describeInstruction(ins model.Instruction) string {
	eff := ins.Effective()
	var s string
	switch eff.Type {
	case model.InstructionReorderAbove:
		s = "move above"
	case model.InstructionReorderBelow:
		s = "move below"
	case model.InstructionMakeChild:
		s = "make child"
	case model.InstructionReparent:
		s = fmt.Sprintf("move out to level %d", eff.DesiredLevel)
	default:
		s = string(eff.Type)
	}
	if ins.Type == model.InstructionBlocked {
		s += " (blocked)"
	}
	return s
}

func (m appModel) viewTree() string {
	vh := m.viewHeight()
	lines := make([]string, 0, vh+nodeRowHeight)
	start := 0
	for i, r := range m.rows {
		if r.top+r.height <= m.scroll {
			continue
		}
		if r.top >= m.scroll+vh {
			break
		}
		if len(lines) == 0 {
			start = r.top
		}
		lines = append(lines, m.rowLines(i, r)...)
	}
	if off := m.scroll - start; off > 0 && off <= len(lines) {
		lines = lines[off:]
	}
	if len(lines) > vh {
		lines = lines[:vh]
	}
	return strings.Join(lines, "\n")
}

// rowLines renders row r as r.height lines.
func (m appModel) rowLines(i int, r treeRow) []string {
	indent := strings.Repeat(" ", r.depth*m.cfg.IndentPerLevel)
	selected := i == m.cursor && m.drag == nil

	if r.kind == rowFooter {
		label := footerGroupLabel + "   " + footerAttributeLabel
		if selected {
			return []string{indent + styleSelected().Render(label)}
		}
		return []string{indent + styleMuted().Render(label)}
	}

	n := r.node
	text := m.glyphs.Marker(n) + " " + nodeText(n)
	if n.IsRoot() {
		text += " " + m.glyphs.Root
	}
	rowW := max(m.width-xansi.StringWidth(indent), 1)

	var st lipgloss.Style
	styled := false
	switch {
	case m.drag != nil && n.ID == m.drag.session.Item.ID:
		st, styled = styleMuted(), true
	case n.ID == m.flashItemID:
		st, styled = styleFlash(), true
	case selected:
		st, styled = styleSelected(), true
	case m.drag != nil && n.ID == m.drag.highlightID:
		st, styled = styleParent(), true
	}

	top, bottom := "", ""
	if d := m.drag; d != nil && d.hasIns && d.targetID == n.ID {
		allowed := d.allowed && d.ins.Type != model.InstructionBlocked
		eff := d.ins.Effective()
		switch eff.Type {
		case model.InstructionReorderAbove:
			top = m.dropLine(r.depth, allowed)
		case model.InstructionReorderBelow:
			bottom = m.dropLine(r.depth, allowed)
		case model.InstructionReparent:
			bottom = m.dropLine(eff.DesiredLevel, allowed)
		case model.InstructionMakeChild:
			if allowed {
				st = styleDropChild()
			} else {
				st = styleDropLine(false)
			}
			styled = true
		}
	}

	mid := text
	if styled {
		mid = st.Render(padRight(text, rowW))
	}
	return []string{top, indent + mid, bottom}
}

func nodeText(n model.Node) string {
	switch n.Type {
	case model.KindAttribute:
		return format.AttributeLine(n)
	case model.KindGroup:
		if !n.Open && n.HasChildren() {
			return fmt.Sprintf("%s (%d)", n.Label(), len(n.Children))
		}
		return n.Label()
	default:
		return n.Label()
	}
}

// dropLine draws the insertion indicator starting at the given depth.
func (m appModel) dropLine(level int, allowed bool) string {
	pad := level * m.cfg.IndentPerLevel
	w := m.width - pad - 1
	if w < 1 {
		w = 1
	}
	rule := glyphDropMarker(m.glyphs) + strings.Repeat(glyphHRule(m.glyphs), w)
	return strings.Repeat(" ", pad) + styleDropLine(allowed).Render(rule)
}

func (m appModel) viewStatus() string {
	mini := m.minibufferText
	var help string
	if m.drag != nil {
		help = m.help.View(m.dragKeys)
	} else {
		help = m.help.View(m.keys)
	}
	return " " + mini + "\n" + help
}

func (m appModel) viewModal() string {
	w, _ := m.modalSize()
	bodyW := w - 4
	var b strings.Builder
	switch m.modal {
	case modalMovePickParent, modalMovePickPosition:
		b.WriteString(m.pickList.View())
	case modalEditAttribute:
		b.WriteString(styleModalTitle().Render("Edit Item " + m.edit.itemID))
		b.WriteString("\n\n")
		b.WriteString(m.inputField("Attribute", editFocusName, m.edit.name, bodyW))
		b.WriteString("\n\n")
		b.WriteString(m.editLabel("Operator", editFocusOperator))
		b.WriteString("\n")
		b.WriteString(m.viewOperators())
		b.WriteString("\n\n")
		b.WriteString(m.inputField("Value", editFocusValue, m.edit.value, bodyW))
		b.WriteString("\n\n")
		b.WriteString(styleMuted().Render("tab: next field  ←/→: operator  enter: save  esc: cancel"))
	case modalHelp:
		b.WriteString(styleModalTitle().Render("Help"))
		b.WriteString("\n")
		b.WriteString(m.helpView.View())
	}
	return styleModal().Width(w - 2).Render(b.String())
}

func (m appModel) editLabel(label string, f editFocus) string {
	if m.edit.focus == f {
		return lipgloss.NewStyle().Foreground(colorAccent).Bold(true).Render(label)
	}
	return styleMuted().Render(label)
}

func (m appModel) viewOperators() string {
	parts := make([]string, 0, len(m.cfg.Operators))
	for _, op := range m.cfg.Operators {
		if op == m.edit.operator {
			parts = append(parts, styleDropChild().Render(" "+op+" "))
			continue
		}
		parts = append(parts, " "+op+" ")
	}
	if !slices.Contains(m.cfg.Operators, m.edit.operator) {
		parts = append(parts, styleDropChild().Render(" "+m.edit.operator+" "))
	}
	return strings.Join(parts, " ")
}
