package tui

import (
	"io"
	"log/slog"
	"strings"
	"sync"

	"filtertree/internal/dnd"
	"filtertree/internal/format"
	"filtertree/internal/idgen"
	"filtertree/internal/model"
	"filtertree/internal/mutate"
	"filtertree/internal/store"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/viewport"
)

// Options configure a TUI session.
type Options struct {
	Tree   model.Tree
	Config store.Config
	Log    *slog.Logger
	// Holder, when set, is used instead of a fresh one built from Tree.
	Holder *mutate.Holder
}

// footerQueue collects what footer rows ask for during one Update. Footer
// callbacks run inside input handling and cannot reach the model value, so
// they write here and Update drains it.
type footerQueue struct {
	actions []model.Action
	focused string
}

type appModel struct {
	holder    *mutate.Holder
	cfg       store.Config
	log       *slog.Logger
	glyphs    format.Glyphs
	contextID string

	keys     keyMap
	dragKeys dragKeyMap
	help     help.Model

	width  int
	height int

	rows     []treeRow
	registry *rowRegistry
	cursor   int
	scroll   int

	drag      *dragState
	mouseDown *mousePress
	expander  *dnd.Expander
	expands   *expandFeed
	footers   *footerQueue

	modal        modalKind
	moveItemID   string
	moveTargetID string
	pickList     list.Model
	edit         editState
	helpView     viewport.Model

	flashItemID    string
	flashSeq       int
	minibufferText string
	minibufferSeq  int
}

func newAppModel(opts Options) appModel {
	cfg := opts.Config
	if cfg.IndentPerLevel <= 0 || cfg.AutoExpandDelay <= 0 || cfg.FlashDuration <= 0 {
		def := store.DefaultConfig()
		if cfg.IndentPerLevel <= 0 {
			cfg.IndentPerLevel = def.IndentPerLevel
		}
		if cfg.AutoExpandDelay <= 0 {
			cfg.AutoExpandDelay = def.AutoExpandDelay
		}
		if cfg.FlashDuration <= 0 {
			cfg.FlashDuration = def.FlashDuration
		}
	}
	if len(cfg.Operators) == 0 {
		cfg.Operators = append([]string(nil), model.DefaultOperators...)
	}
	log := opts.Log
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	holder := opts.Holder
	if holder == nil {
		holder = mutate.NewHolder(opts.Tree, mutate.Reducer{Log: log})
	}

	m := appModel{
		holder:    holder,
		cfg:       cfg,
		log:       log,
		glyphs:    glyphPreference(cfg.Glyphs),
		contextID: idgen.NewContextID(),
		keys:      defaultKeyMap(),
		dragKeys:  defaultDragKeyMap(),
		help:      help.New(),
		registry:  newRowRegistry(),
		expands:   newExpandFeed(),
		footers:   &footerQueue{},
	}
	m.expander = &dnd.Expander{
		Wait: cfg.AutoExpandDelay,
		Fire: m.expands.send,
	}
	m.pickList = newPickList()
	m.edit = newEditState()
	m.helpView = viewport.New(0, 0)
	m.refresh()
	return m
}

// footerNode builds the footer row under groupID. Its callbacks feed the
// shared queue.
func (m appModel) footerNode(groupID string) model.Node {
	q := m.footers
	return model.Node{
		ID:   groupID + "#footer",
		Type: model.KindFooter,
		Footer: &model.FooterActions{
			OnClick: func(kind model.Kind) {
				switch kind {
				case model.KindGroup:
					q.actions = append(q.actions, model.AddGroupAction{TargetID: groupID})
				default:
					q.actions = append(q.actions, model.AddAttributeAction{TargetID: groupID})
				}
			},
			OnFocus: func() { q.focused = groupID },
		},
	}
}

// refresh rebuilds the visible rows from the committed tree, keeping the
// cursor on the same node when it is still visible.
func (m *appModel) refresh() {
	selected := m.selectedID()
	m.rows = flattenTree(m.holder.Tree(), m.footerNode)
	m.registry.sync(m.rows)
	if selected != "" {
		if h, ok := m.registry.lookup(selected); ok {
			m.cursor = h.index
		}
	}
	m.clampCursor()
}

func (m *appModel) clampCursor() {
	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	m.ensureVisible()
}

func (m appModel) selectedRow() (treeRow, bool) {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return treeRow{}, false
	}
	return m.rows[m.cursor], true
}

func (m appModel) selectedID() string {
	r, ok := m.selectedRow()
	if !ok || r.kind != rowNode {
		return ""
	}
	return r.node.ID
}

func (m *appModel) selectID(id string) {
	if h, ok := m.registry.lookup(strings.TrimSpace(id)); ok {
		m.cursor = h.index
		m.ensureVisible()
	}
}

// selectedGroupID is the group new children go to: the selected group, or the
// parent of the selected attribute or footer.
func (m appModel) selectedGroupID() string {
	r, ok := m.selectedRow()
	if !ok {
		return ""
	}
	if r.kind == rowNode && r.node.AcceptsChildren() {
		return r.node.ID
	}
	return r.parentID
}

func (m appModel) viewHeight() int {
	h := m.height - headerLines - footerLines
	if h < 1 {
		h = 1
	}
	return h
}

func (m *appModel) ensureVisible() {
	r, ok := m.selectedRow()
	if !ok {
		m.scroll = 0
		return
	}
	vh := m.viewHeight()
	if r.top < m.scroll {
		m.scroll = r.top
	}
	if r.top+r.height > m.scroll+vh {
		m.scroll = r.top + r.height - vh
	}
	if m.scroll < 0 {
		m.scroll = 0
	}
}

// expandFeed carries auto-expand timer firings into the update loop.
type expandFeed struct {
	mu     sync.Mutex
	ch     chan string
	closed bool
}

func newExpandFeed() *expandFeed {
	return &expandFeed{ch: make(chan string, 1)}
}

// send never blocks the timer goroutine; a dropped expansion is retried on
// the next hover.
func (f *expandFeed) send(id string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return
	}
	select {
	case f.ch <- id:
	default:
	}
}

// close releases the command waiting on the feed. Later sends are dropped.
func (f *expandFeed) close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.closed {
		f.closed = true
		close(f.ch)
	}
}
