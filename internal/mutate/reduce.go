// Package mutate interprets editor actions as sequences of outline edits.
//
// Every structural change is remove-then-insert, built from the primitives in
// internal/outline. The reducer never mutates its input tree.
package mutate

import (
	"io"
	"log/slog"

	"filtertree/internal/idgen"
	"filtertree/internal/model"
	"filtertree/internal/outline"
)

type Reducer struct {
	Log   *slog.Logger
	NewID idgen.Generator
}

var defaultReducer = Reducer{}

// Reduce applies action to tree using the default reducer.
func Reduce(tree model.Tree, action model.Action) (model.Tree, error) {
	return defaultReducer.Reduce(tree, action)
}

func (r Reducer) log() *slog.Logger {
	if r.Log != nil {
		return r.Log
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func (r Reducer) newID() idgen.Generator {
	if r.NewID != nil {
		return r.NewID
	}
	return idgen.Nodes
}

// Reduce returns the tree that results from applying action. Actions that refer
// to missing items leave the tree unchanged; the returned error is reserved for
// contract violations.
func (r Reducer) Reduce(tree model.Tree, action model.Action) (model.Tree, error) {
	r.log().Debug("action", "type", action.Type(), "subject", model.SubjectID(action))

	switch a := action.(type) {
	case model.InstructionAction:
		return r.instruction(tree, a)
	case model.ToggleAction:
		return r.toggle(tree, a.ItemID, a.Force), nil
	case model.ExpandAction:
		return r.setOpen(tree, a.ItemID, true, a.Force), nil
	case model.CollapseAction:
		return r.setOpen(tree, a.ItemID, false, a.Force), nil
	case model.AttributeDataUpdateAction:
		return r.updateAttribute(tree, a)
	case model.AddGroupAction:
		return r.add(tree, a.TargetID, model.KindGroup, a.Node)
	case model.AddAttributeAction:
		return r.add(tree, a.TargetID, model.KindAttribute, a.Node)
	case model.ModalMoveAction:
		return r.modalMove(tree, a)
	default:
		r.log().Warn("action not implemented", "type", action.Type())
		return tree, nil
	}
}

func (r Reducer) instruction(tree model.Tree, a model.InstructionAction) (model.Tree, error) {
	item, ok := outline.Find(tree, a.ItemID)
	if !ok {
		r.log().Debug("stale item", "item", a.ItemID)
		return tree, nil
	}
	ins := a.Instruction

	if ins.Type == model.InstructionReparent {
		path, ok := outline.PathToItem(tree, a.TargetID)
		if !ok {
			return tree, contractErr("reparent", a.TargetID, "target not in tree")
		}
		if ins.DesiredLevel < 0 || ins.DesiredLevel >= len(path) {
			return tree, contractErr("reparent", a.TargetID, "desired level outside target path")
		}
		desiredID := path[ins.DesiredLevel]
		if outline.Contains(item, desiredID) {
			r.log().Warn("reparent into own subtree ignored", "item", a.ItemID, "ancestor", desiredID)
			return tree, nil
		}
		out := outline.Remove(tree, a.ItemID)
		return outline.InsertAfter(out, desiredID, item), nil
	}

	switch ins.Type {
	case model.InstructionReorderAbove, model.InstructionReorderBelow, model.InstructionMakeChild:
	default:
		r.log().Warn("instruction not implemented", "instruction", ins.Type, "item", a.ItemID, "target", a.TargetID)
		return tree, nil
	}

	// The remaining instructions need a drop target other than the item itself.
	if a.ItemID == a.TargetID {
		return tree, nil
	}
	target, ok := outline.Find(tree, a.TargetID)
	if !ok {
		r.log().Debug("stale target", "target", a.TargetID)
		return tree, nil
	}
	if outline.Contains(item, a.TargetID) {
		r.log().Warn("drop into own subtree ignored", "item", a.ItemID, "target", a.TargetID)
		return tree, nil
	}

	out := outline.Remove(tree, a.ItemID)
	switch ins.Type {
	case model.InstructionReorderAbove:
		return outline.InsertBefore(out, a.TargetID, item), nil
	case model.InstructionReorderBelow:
		return outline.InsertAfter(out, a.TargetID, item), nil
	default:
		if !target.AcceptsChildren() {
			return tree, NotContainerError{ID: target.ID, Kind: target.Type}
		}
		return outline.InsertChild(out, a.TargetID, item), nil
	}
}

func (r Reducer) toggle(tree model.Tree, id string, force bool) model.Tree {
	n, ok := outline.Find(tree, id)
	if !ok || (!n.HasChildren() && !force) {
		return tree
	}
	return outline.Update(tree, id, func(n model.Node) model.Node {
		n.Open = !n.Open
		return n
	})
}

// setOpen toggles id only when its open state differs from want.
func (r Reducer) setOpen(tree model.Tree, id string, want, force bool) model.Tree {
	n, ok := outline.Find(tree, id)
	if !ok || n.Open == want {
		return tree
	}
	return r.toggle(tree, id, force)
}

func (r Reducer) updateAttribute(tree model.Tree, a model.AttributeDataUpdateAction) (model.Tree, error) {
	if _, ok := outline.Find(tree, a.ItemID); !ok {
		return tree, nil
	}
	if a.AttributeData == nil {
		return tree, contractErr("attribute-data-update", a.ItemID, "missing attribute data")
	}
	return outline.UpdateAttribute(tree, a.ItemID, *a.AttributeData)
}

func (r Reducer) add(tree model.Tree, targetID string, kind model.Kind, prebuilt *model.Node) (model.Tree, error) {
	target, ok := outline.Find(tree, targetID)
	if !ok {
		r.log().Debug("stale target", "target", targetID)
		return tree, nil
	}
	if !target.AcceptsChildren() {
		return tree, NotContainerError{ID: target.ID, Kind: target.Type}
	}

	var node model.Node
	if prebuilt != nil {
		node = *prebuilt
		if node.Type != kind {
			return tree, contractErr("add-"+string(kind), node.ID, "prebuilt node is a "+string(node.Type))
		}
		if err := outline.Validate([]model.Node{node}); err != nil {
			return tree, contractErr("add-"+string(kind), node.ID, err.Error())
		}
		clash, root := "", ""
		outline.Walk([]model.Node{node}, func(n model.Node, _ int) bool {
			if _, exists := outline.Find(tree, n.ID); exists && clash == "" {
				clash = n.ID
			}
			if n.IsRoot() && root == "" {
				root = n.ID
			}
			return true
		})
		// An inserted subtree always lands below the target.
		if root != "" {
			return tree, contractErr("add-"+string(kind), root, "root role not allowed below the top level")
		}
		if clash != "" {
			return tree, contractErr("add-"+string(kind), clash, "id already in tree")
		}
		if node.Children == nil {
			node.Children = []model.Node{}
		}
	} else {
		id := idgen.Unique(r.newID(), func(id string) bool {
			_, exists := outline.Find(tree, id)
			return exists
		})
		switch kind {
		case model.KindGroup:
			node = model.NewGroup(id)
			node.Open = true
		default:
			node = model.NewAttribute(id, model.DefaultAttribute())
		}
	}
	return outline.InsertChild(tree, targetID, node), nil
}

func (r Reducer) modalMove(tree model.Tree, a model.ModalMoveAction) (model.Tree, error) {
	item, ok := outline.Find(tree, a.ItemID)
	if !ok {
		return tree, nil
	}
	if a.TargetID != outline.RootID {
		target, ok := outline.Find(tree, a.TargetID)
		if !ok {
			r.log().Debug("stale target", "target", a.TargetID)
			return tree, nil
		}
		if outline.Contains(item, a.TargetID) {
			r.log().Warn("move into own subtree ignored", "item", a.ItemID, "target", a.TargetID)
			return tree, nil
		}
		if !target.AcceptsChildren() {
			return tree, NotContainerError{ID: target.ID, Kind: target.Type}
		}
	}

	result := outline.Remove(tree, a.ItemID)
	sibs, err := outline.ChildrenOf(result, a.TargetID)
	if err != nil {
		return tree, err
	}
	if a.Index < 0 || a.Index > len(sibs) {
		return tree, contractErr("modal-move", a.ItemID, "index out of range")
	}

	switch {
	case len(sibs) == 0:
		if a.TargetID == outline.RootID {
			// Nothing else is left at the top level.
			return model.Tree{item}, nil
		}
		return outline.InsertChild(result, a.TargetID, item), nil
	case a.Index == len(sibs):
		return outline.InsertAfter(result, sibs[len(sibs)-1].ID, item), nil
	default:
		return outline.InsertBefore(result, sibs[a.Index].ID, item), nil
	}
}
