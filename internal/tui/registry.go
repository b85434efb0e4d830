package tui

// rowHandle locates a rendered row in the content area.
type rowHandle struct {
	index int
	top   int
}

// rowRegistry maps node ids to their rendered rows. Entries are registered on
// refresh and dropped through the func returned by register when the row
// disappears.
type rowRegistry struct {
	rows       map[string]rowHandle
	unregister map[string]func()
}

func newRowRegistry() *rowRegistry {
	return &rowRegistry{rows: map[string]rowHandle{}, unregister: map[string]func(){}}
}

func (r *rowRegistry) register(id string, h rowHandle) func() {
	r.rows[id] = h
	return func() { delete(r.rows, id) }
}

func (r *rowRegistry) lookup(id string) (rowHandle, bool) {
	h, ok := r.rows[id]
	return h, ok
}

// sync registers every row in rows and unregisters ids that are gone.
func (r *rowRegistry) sync(rows []treeRow) {
	seen := make(map[string]bool, len(rows))
	for i, row := range rows {
		if row.kind != rowNode {
			continue
		}
		id := row.node.ID
		seen[id] = true
		if old, ok := r.unregister[id]; ok {
			old()
		}
		r.unregister[id] = r.register(id, rowHandle{index: i, top: row.top})
	}
	for id, unreg := range r.unregister {
		if !seen[id] {
			unreg()
			delete(r.unregister, id)
		}
	}
}

func (r *rowRegistry) len() int { return len(r.rows) }
