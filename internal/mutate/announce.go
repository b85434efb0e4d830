package mutate

import (
	"fmt"

	"filtertree/internal/model"
	"filtertree/internal/outline"
)

// Announce describes a committed action for screen readers and the status line.
// after is the tree the action produced. Non-structural actions yield "".
func Announce(action model.Action, after model.Tree) string {
	switch a := action.(type) {
	case model.ModalMoveAction:
		return fmt.Sprintf("You've moved %s to position %d in %s.", itemLabel(a.ItemID), a.Index+1, parentLabel(after, a.TargetID))
	case model.InstructionAction:
		return announceMove(after, a.ItemID)
	case model.AddGroupAction:
		return announceAdd(after, a.TargetID, "group")
	case model.AddAttributeAction:
		return announceAdd(after, a.TargetID, "attribute")
	default:
		return ""
	}
}

func announceMove(after model.Tree, itemID string) string {
	parent, ok := outline.ParentID(after, itemID)
	if !ok {
		return ""
	}
	idx, _ := outline.IndexOf(after, itemID)
	return fmt.Sprintf("You've moved %s to position %d in %s.", itemLabel(itemID), idx+1, parentLabel(after, parent))
}

func announceAdd(after model.Tree, targetID, what string) string {
	kids, err := outline.ChildrenOf(after, targetID)
	if err != nil || len(kids) == 0 {
		return ""
	}
	return fmt.Sprintf("Added %s %s to %s.", what, itemLabel(kids[0].ID), itemLabel(targetID))
}

func itemLabel(id string) string { return "Item " + id }

func parentLabel(tree model.Tree, id string) string {
	if id == outline.RootID {
		return "the root"
	}
	if n, ok := outline.Find(tree, id); ok {
		return n.Label()
	}
	return itemLabel(id)
}
