package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// wireAction is the JSON shape of an action, shared by the CLI and the journal.
type wireAction struct {
	Type          ActionType      `json:"type"`
	ItemID        string          `json:"itemId,omitempty"`
	TargetID      string          `json:"targetId,omitempty"`
	Instruction   *Instruction    `json:"instruction,omitempty"`
	Force         bool            `json:"force,omitempty"`
	AttributeData *AttributePatch `json:"attributeData,omitempty"`
	Item          *Node           `json:"item,omitempty"`
	Index         *int            `json:"index,omitempty"`
}

// EncodeAction returns the wire form of a.
func EncodeAction(a Action) ([]byte, error) {
	w := wireAction{Type: a.Type()}
	switch a := a.(type) {
	case InstructionAction:
		ins := a.Instruction
		w.Instruction = &ins
		w.ItemID, w.TargetID = a.ItemID, a.TargetID
	case ToggleAction:
		w.ItemID, w.Force = a.ItemID, a.Force
	case ExpandAction:
		w.ItemID, w.Force = a.ItemID, a.Force
	case CollapseAction:
		w.ItemID, w.Force = a.ItemID, a.Force
	case AttributeDataUpdateAction:
		w.ItemID, w.AttributeData = a.ItemID, a.AttributeData
	case AddGroupAction:
		w.TargetID, w.Item = a.TargetID, a.Node
	case AddAttributeAction:
		w.TargetID, w.Item = a.TargetID, a.Node
	case ModalMoveAction:
		idx := a.Index
		w.ItemID, w.TargetID, w.Index = a.ItemID, a.TargetID, &idx
	default:
		return nil, fmt.Errorf("unknown action %T", a)
	}
	return json.Marshal(w)
}

// DecodeAction parses the wire form of an action.
func DecodeAction(b []byte) (Action, error) {
	var w wireAction
	if err := json.Unmarshal(b, &w); err != nil {
		return nil, err
	}
	switch ActionType(strings.TrimSpace(string(w.Type))) {
	case ActionInstruction:
		if w.Instruction == nil {
			return nil, errors.New("instruction action: missing instruction")
		}
		return InstructionAction{Instruction: *w.Instruction, ItemID: w.ItemID, TargetID: w.TargetID}, nil
	case ActionToggle:
		return ToggleAction{ItemID: w.ItemID, Force: w.Force}, nil
	case ActionExpand:
		return ExpandAction{ItemID: w.ItemID, Force: w.Force}, nil
	case ActionCollapse:
		return CollapseAction{ItemID: w.ItemID, Force: w.Force}, nil
	case ActionAttributeDataUpdate:
		return AttributeDataUpdateAction{ItemID: w.ItemID, AttributeData: w.AttributeData}, nil
	case ActionAddGroup:
		return AddGroupAction{TargetID: w.TargetID, Node: w.Item}, nil
	case ActionAddAttribute:
		return AddAttributeAction{TargetID: w.TargetID, Node: w.Item}, nil
	case ActionModalMove:
		if w.Index == nil {
			return nil, errors.New("modal-move action: missing index")
		}
		return ModalMoveAction{ItemID: w.ItemID, TargetID: w.TargetID, Index: *w.Index}, nil
	case "":
		return nil, errors.New("missing action type")
	default:
		return nil, fmt.Errorf("unknown action type: %s", w.Type)
	}
}
