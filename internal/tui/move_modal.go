package tui

import (
	"fmt"
	"strings"

	"filtertree/internal/format"
	"filtertree/internal/model"
	"filtertree/internal/outline"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
)

// pickItem is a row of the move picker: a parent in the first step, a
// position in the second.
type pickItem struct {
	id    string
	title string
	desc  string
	index int
}

func (i pickItem) Title() string       { return i.title }
func (i pickItem) Description() string { return i.desc }
func (i pickItem) FilterValue() string { return strings.ToLower(i.title + " " + i.desc) }

func newPickList() list.Model {
	l := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetShowPagination(false)
	l.SetFilteringEnabled(true)
	l.KeyMap.Quit.SetKeys("q")
	return l
}

// openMoveModal starts the two-step move: pick the new parent, then the
// position among its children.
func (m *appModel) openMoveModal(n model.Node) {
	m.moveItemID = n.ID
	m.moveTargetID = ""

	items := []list.Item{pickItem{id: outline.RootID, title: "(top level)", desc: "outside every group"}}
	for _, t := range m.holder.MoveTargets(n.ID) {
		if !t.AcceptsChildren() {
			continue
		}
		desc := "group"
		if path := m.holder.PathToItem(t.ID); len(path) > 0 {
			desc = "in " + strings.Join(path, " / ")
		}
		items = append(items, pickItem{id: t.ID, title: format.NodeLine(t), desc: desc})
	}
	m.pickList.Title = "Move " + n.Label() + " into…"
	m.pickList.ResetFilter()
	m.pickList.SetItems(items)
	m.pickList.Select(0)
	if parent, ok := outline.ParentID(m.holder.Tree(), n.ID); ok {
		for i, it := range items {
			if it.(pickItem).id == parent {
				m.pickList.Select(i)
				break
			}
		}
	}
	m.modal = modalMovePickParent
	m.resizeModals()
}

// showPositions fills the picker with the slots among targetID's children,
// counted as if the moved item had already been removed.
func (m *appModel) showPositions(targetID string) {
	m.moveTargetID = targetID
	sibs, err := outline.ChildrenOf(outline.Remove(m.holder.Tree(), m.moveItemID), targetID)
	if err != nil {
		m.closeModal()
		m.showMinibuffer("Error: " + err.Error())
		return
	}
	items := make([]list.Item, 0, len(sibs)+1)
	for i, s := range sibs {
		items = append(items, pickItem{
			title: fmt.Sprintf("%d. before %s", i+1, format.NodeLine(s)),
			index: i,
		})
	}
	last := "at the end"
	if len(sibs) == 0 {
		last = "as the only child"
	}
	items = append(items, pickItem{title: fmt.Sprintf("%d. %s", len(sibs)+1, last), index: len(sibs)})

	where := "the top level"
	if targetID != outline.RootID {
		where = "Item " + targetID
	}
	m.pickList.Title = "Position in " + where
	m.pickList.ResetFilter()
	m.pickList.SetItems(items)
	m.pickList.Select(0)
	if cur, ok := outline.IndexOf(m.holder.Tree(), m.moveItemID); ok {
		if parent, _ := outline.ParentID(m.holder.Tree(), m.moveItemID); parent == targetID && cur < len(items) {
			m.pickList.Select(cur)
		}
	}
	m.modal = modalMovePickPosition
}

func (m *appModel) updateMoveModal(msg tea.KeyMsg) tea.Cmd {
	filtering := m.pickList.FilterState() == list.Filtering
	if !filtering {
		switch msg.String() {
		case "esc", "ctrl+g":
			if m.modal == modalMovePickPosition {
				if n, ok := m.holder.Find(m.moveItemID); ok {
					m.openMoveModal(n)
					return nil
				}
			}
			m.closeModal()
			return nil
		case "enter":
			it, ok := m.pickList.SelectedItem().(pickItem)
			if !ok {
				return nil
			}
			if m.modal == modalMovePickParent {
				m.showPositions(it.id)
				return nil
			}
			act := model.ModalMoveAction{ItemID: m.moveItemID, TargetID: m.moveTargetID, Index: it.index}
			m.closeModal()
			return m.dispatch(act)
		}
	}
	var cmd tea.Cmd
	m.pickList, cmd = m.pickList.Update(msg)
	return cmd
}
