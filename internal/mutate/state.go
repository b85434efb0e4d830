package mutate

import (
	"filtertree/internal/model"
	"filtertree/internal/outline"
)

// State is the committed tree plus the action that produced it.
type State struct {
	Data       model.Tree
	LastAction model.Action
}

func (r Reducer) ReduceState(s State, action model.Action) (State, error) {
	data, err := r.Reduce(s.Data, action)
	if err != nil {
		return s, err
	}
	return State{Data: data, LastAction: action}, nil
}

// CommitHook runs after an action has been committed.
type CommitHook func(action model.Action, before, after model.Tree)

type hookEntry struct {
	id int
	fn CommitHook
}

// Holder owns the current State. It is not safe for concurrent use: a single
// goroutine (the UI loop or the CLI) dispatches actions and reads the tree.
type Holder struct {
	reducer Reducer
	state   State
	hooks   []hookEntry
	nextID  int
}

func NewHolder(initial model.Tree, r Reducer) *Holder {
	return &Holder{reducer: r, state: State{Data: initial}}
}

func (h *Holder) State() State             { return h.state }
func (h *Holder) Tree() model.Tree         { return h.state.Data }
func (h *Holder) LastAction() model.Action { return h.state.LastAction }

// Dispatch reduces action against the current tree, replaces the state and
// runs the commit hooks. On error the state is left untouched.
func (h *Holder) Dispatch(action model.Action) error {
	before := h.state.Data
	next, err := h.reducer.ReduceState(h.state, action)
	if err != nil {
		h.reducer.log().Error("action rejected", "type", action.Type(), "subject", model.SubjectID(action), "err", err)
		return err
	}
	h.state = next
	for _, e := range append([]hookEntry(nil), h.hooks...) {
		e.fn(action, before, next.Data)
	}
	return nil
}

// OnCommit registers fn and returns a func that unregisters it.
func (h *Holder) OnCommit(fn CommitHook) func() {
	h.nextID++
	id := h.nextID
	h.hooks = append(h.hooks, hookEntry{id: id, fn: fn})
	return func() {
		for i, e := range h.hooks {
			if e.id == id {
				h.hooks = append(h.hooks[:i:i], h.hooks[i+1:]...)
				return
			}
		}
	}
}

// Read-only queries always run against the latest committed tree.

func (h *Holder) Find(id string) (model.Node, bool) { return outline.Find(h.state.Data, id) }

// PathToItem returns the ancestors of id, or an empty path when id is unknown.
func (h *Holder) PathToItem(id string) []string {
	path, ok := outline.PathToItem(h.state.Data, id)
	if !ok {
		return []string{}
	}
	return path
}

func (h *Holder) ChildrenOf(id string) ([]model.Node, error) {
	return outline.ChildrenOf(h.state.Data, id)
}

func (h *Holder) MoveTargets(id string) []model.Node {
	return outline.MoveTargets(h.state.Data, id)
}
