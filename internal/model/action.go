package model

type ActionType string

const (
	ActionInstruction         ActionType = "instruction"
	ActionToggle              ActionType = "toggle"
	ActionExpand              ActionType = "expand"
	ActionCollapse            ActionType = "collapse"
	ActionAttributeDataUpdate ActionType = "attribute-data-update"
	ActionAddGroup            ActionType = "add-group"
	ActionAddAttribute        ActionType = "add-attribute"
	ActionModalMove           ActionType = "modal-move"
)

// Action is the closed set of inputs accepted by the reducer.
// Every implementation lives in this file.
type Action interface {
	Type() ActionType
	sealed()
}

type InstructionAction struct {
	Instruction Instruction
	ItemID      string
	TargetID    string
}

type ToggleAction struct {
	ItemID string
	// Force allows toggling nodes without children.
	Force bool
}

type ExpandAction struct {
	ItemID string
	Force  bool
}

type CollapseAction struct {
	ItemID string
	Force  bool
}

type AttributeDataUpdateAction struct {
	ItemID        string
	AttributeData *AttributePatch
}

type AddGroupAction struct {
	TargetID string
	// Node, when set, is inserted instead of a default group.
	Node *Node
}

type AddAttributeAction struct {
	TargetID string
	Node     *Node
}

// ModalMoveAction places ItemID at Index among the children of TargetID,
// counting siblings after ItemID has been removed. TargetID "" is the top level.
type ModalMoveAction struct {
	ItemID   string
	TargetID string
	Index    int
}

func (InstructionAction) Type() ActionType         { return ActionInstruction }
func (ToggleAction) Type() ActionType              { return ActionToggle }
func (ExpandAction) Type() ActionType              { return ActionExpand }
func (CollapseAction) Type() ActionType            { return ActionCollapse }
func (AttributeDataUpdateAction) Type() ActionType { return ActionAttributeDataUpdate }
func (AddGroupAction) Type() ActionType            { return ActionAddGroup }
func (AddAttributeAction) Type() ActionType        { return ActionAddAttribute }
func (ModalMoveAction) Type() ActionType           { return ActionModalMove }

func (InstructionAction) sealed()         {}
func (ToggleAction) sealed()              {}
func (ExpandAction) sealed()              {}
func (CollapseAction) sealed()            {}
func (AttributeDataUpdateAction) sealed() {}
func (AddGroupAction) sealed()            {}
func (AddAttributeAction) sealed()        {}
func (ModalMoveAction) sealed()           {}

// SubjectID is the id an action is about: the moved/toggled/edited item, or the
// receiving target for add actions.
func SubjectID(a Action) string {
	switch a := a.(type) {
	case InstructionAction:
		return a.ItemID
	case ToggleAction:
		return a.ItemID
	case ExpandAction:
		return a.ItemID
	case CollapseAction:
		return a.ItemID
	case AttributeDataUpdateAction:
		return a.ItemID
	case AddGroupAction:
		return a.TargetID
	case AddAttributeAction:
		return a.TargetID
	case ModalMoveAction:
		return a.ItemID
	default:
		return ""
	}
}

// IsStructural reports whether a moves nodes (and so deserves an announcement and a flash).
func IsStructural(a Action) bool {
	switch a.(type) {
	case InstructionAction, ModalMoveAction, AddGroupAction, AddAttributeAction:
		return true
	default:
		return false
	}
}
