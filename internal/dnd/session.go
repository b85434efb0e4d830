// Package dnd holds the drag-session rules that sit between hit-testing and
// the reducer: which drops are allowed, which instructions become actions, and
// which row to highlight while dragging.
package dnd

import "filtertree/internal/model"

// Session is the state carried by an in-flight drag.
type Session struct {
	// ContextID scopes the drag to one tree instance.
	ContextID string
	Item      model.Node
	// WasOpenOnDragStart records that Item was collapsed for the drag and
	// should be reopened on drop.
	WasOpenOnDragStart bool
	Level              int
	Index              int
}

// Start opens a session for item. Open items are collapsed for the duration
// of the drag; the returned actions do that.
func Start(contextID string, item model.Node, level, index int) (Session, []model.Action) {
	s := Session{ContextID: contextID, Item: item, Level: level, Index: index, WasOpenOnDragStart: item.Open}
	if !item.Open {
		return s, nil
	}
	return s, []model.Action{model.CollapseAction{ItemID: item.ID}}
}

// Finish returns the actions that restore the dragged item after a drop or a
// cancelled drag.
func (s Session) Finish() []model.Action {
	if !s.WasOpenOnDragStart {
		return nil
	}
	return []model.Action{model.ExpandAction{ItemID: s.Item.ID}}
}

// CanDrop reports whether target in the tree identified by contextID accepts
// the session's item with ins. Drags from other trees, drops onto the dragged
// item itself and outdents to the root level are refused.
func CanDrop(s Session, contextID string, target model.Node, ins model.Instruction) bool {
	if s.ContextID != contextID {
		return false
	}
	if s.Item.ID == target.ID {
		return false
	}
	return !ins.Effective().IsRootDesiredLevel()
}

// Dispatchable reports whether ins may be turned into an action.
func Dispatchable(ins model.Instruction) bool {
	switch ins.Type {
	case model.InstructionReorderAbove, model.InstructionReorderBelow, model.InstructionMakeChild, model.InstructionReparent:
		return true
	default:
		return false
	}
}

// Drop builds the action for dropping the session's item on target, or false
// when the drop is refused.
func Drop(s Session, contextID string, target model.Node, ins model.Instruction) (model.Action, bool) {
	if !CanDrop(s, contextID, target, ins) || !Dispatchable(ins) {
		return nil, false
	}
	return model.InstructionAction{Instruction: ins, ItemID: s.Item.ID, TargetID: target.ID}, true
}

// HighlightParent returns the id of the row to highlight as the parent of the
// instruction. path is the target's ancestor path, root first. Blocked
// instructions highlight the parent of the instruction they replaced. ok is
// false when the parent level falls outside path.
func HighlightParent(path []string, ins model.Instruction) (string, bool) {
	lvl := ins.ParentLevel()
	if lvl < 0 || lvl >= len(path) {
		return "", false
	}
	return path[lvl], true
}
