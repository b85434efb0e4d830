package tui

import (
	"filtertree/internal/docs"

	tea "github.com/charmbracelet/bubbletea"
)

func (m *appModel) openHelpModal() {
	m.modal = modalHelp
	m.resizeModals()
	m.helpView.SetContent(m.helpContent())
	m.helpView.GotoTop()
}

func (m appModel) helpContent() string {
	var md string
	for _, topic := range []string{"keys", "drag"} {
		if body, ok := docs.Get(topic); ok {
			md += body + "\n\n"
		}
	}
	return docs.Render(md, m.helpView.Width, markdownStyle())
}

func (m *appModel) closeModal() {
	m.modal = modalNone
	m.moveItemID = ""
	m.moveTargetID = ""
	m.edit.name.Blur()
	m.edit.value.Blur()
}

func (m *appModel) updateModal(msg tea.KeyMsg) tea.Cmd {
	switch m.modal {
	case modalMovePickParent, modalMovePickPosition:
		return m.updateMoveModal(msg)
	case modalEditAttribute:
		return m.updateEditModal(msg)
	case modalHelp:
		switch msg.String() {
		case "esc", "q", "?", "ctrl+g":
			m.closeModal()
			return nil
		}
		var cmd tea.Cmd
		m.helpView, cmd = m.helpView.Update(msg)
		return cmd
	}
	return nil
}

// updateModalOther forwards non-key messages (cursor blink, filter results)
// to the open modal's components.
func (m *appModel) updateModalOther(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch m.modal {
	case modalMovePickParent, modalMovePickPosition:
		m.pickList, cmd = m.pickList.Update(msg)
	case modalEditAttribute:
		var c1, c2 tea.Cmd
		m.edit.name, c1 = m.edit.name.Update(msg)
		m.edit.value, c2 = m.edit.value.Update(msg)
		cmd = tea.Batch(c1, c2)
	}
	return cmd
}

// modalSize is the outer box size for modals on the current screen.
func (m appModel) modalSize() (w, h int) {
	w = min(72, m.width-4)
	h = min(20, m.height-4)
	return max(w, 24), max(h, 8)
}

func (m *appModel) resizeModals() {
	w, h := m.modalSize()
	bodyW := w - 4
	m.pickList.SetSize(bodyW, h-2)
	m.edit.name.Width = bodyW - 4
	m.edit.value.Width = bodyW - 4
	m.helpView.Width = bodyW
	m.helpView.Height = h - 2
	if m.modal == modalHelp {
		m.helpView.SetContent(m.helpContent())
	}
}
