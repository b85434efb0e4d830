package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	Top      key.Binding
	Bottom   key.Binding
	Toggle   key.Binding
	Edit     key.Binding
	Operator key.Binding
	AddAttr  key.Binding
	AddGroup key.Binding
	Move     key.Binding
	Drag     key.Binding
	Help     key.Binding
	Quit     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:       key.NewBinding(key.WithKeys("up", "k", "ctrl+p"), key.WithHelp("↑/k", "up")),
		Down:     key.NewBinding(key.WithKeys("down", "j", "ctrl+n"), key.WithHelp("↓/j", "down")),
		Left:     key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "collapse")),
		Right:    key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "expand")),
		Top:      key.NewBinding(key.WithKeys("g", "home"), key.WithHelp("g", "top")),
		Bottom:   key.NewBinding(key.WithKeys("G", "end"), key.WithHelp("G", "bottom")),
		Toggle:   key.NewBinding(key.WithKeys(" ", "enter"), key.WithHelp("space", "toggle")),
		Edit:     key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		Operator: key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "operator")),
		AddAttr:  key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add attribute")),
		AddGroup: key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "add group")),
		Move:     key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "move")),
		Drag:     key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "drag")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Edit, k.AddAttr, k.AddGroup, k.Move, k.Drag, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right, k.Top, k.Bottom},
		{k.Toggle, k.Edit, k.Operator, k.AddAttr, k.AddGroup},
		{k.Move, k.Drag, k.Help, k.Quit},
	}
}

// dragKeyMap is active while a keyboard drag is in progress.
type dragKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Left   key.Binding
	Right  key.Binding
	Drop   key.Binding
	Cancel key.Binding
}

func defaultDragKeyMap() dragKeyMap {
	return dragKeyMap{
		Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "pointer up")),
		Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "pointer down")),
		Left:   key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "outdent")),
		Right:  key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "indent")),
		Drop:   key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "drop")),
		Cancel: key.NewBinding(key.WithKeys("esc", "ctrl+g"), key.WithHelp("esc", "cancel")),
	}
}

func (k dragKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Left, k.Right, k.Drop, k.Cancel}
}

func (k dragKeyMap) FullHelp() [][]key.Binding { return [][]key.Binding{k.ShortHelp()} }
