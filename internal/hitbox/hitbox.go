// Package hitbox turns a pointer position over a rendered tree row into a drop
// instruction.
//
// A row is split into three bands. The top quarter reorders above, the bottom
// quarter reorders below and the rest makes the dragged node a child. The
// row's Mode changes what the bottom band means.
package hitbox

import (
	"slices"

	"filtertree/internal/model"
)

type Mode string

const (
	// ModeStandard is a row with a following sibling.
	ModeStandard Mode = "standard"
	// ModeExpanded is an open row with children; dropping below it would land
	// between the row and its first child, so the bottom band makes a child.
	ModeExpanded Mode = "expanded"
	// ModeLastInGroup is the last sibling; the bottom band can outdent.
	ModeLastInGroup Mode = "last-in-group"
)

// ModeFor classifies a row by its position among its siblings.
func ModeFor(n model.Node, index, siblings int) Mode {
	switch {
	case n.HasChildren() && n.Open:
		return ModeExpanded
	case index == siblings-1:
		return ModeLastInGroup
	default:
		return ModeStandard
	}
}

// Input describes the row under the pointer and where the pointer is.
type Input struct {
	Level          int
	IndentPerLevel int
	Mode           Mode

	// Height is the row height in cells; Y is the pointer row relative to
	// the row's top edge.
	Height int
	Y      int
	// X is the pointer column relative to the tree's left edge.
	X int

	// Block lists instruction types the row refuses.
	Block []model.InstructionType
}

// Attach computes the instruction for in, wrapping it as instruction-blocked
// when its type is in in.Block.
func Attach(in Input) model.Instruction {
	ins := desired(in)
	ins.IndentPerLevel = in.IndentPerLevel
	if slices.Contains(in.Block, ins.Type) {
		return model.Blocked(ins)
	}
	return ins
}

// BlockFor is the block list of a row: attributes never take children and the
// root can only take children.
func BlockFor(n model.Node) []model.InstructionType {
	switch {
	case n.Type == model.KindAttribute:
		return []model.InstructionType{model.InstructionMakeChild}
	case n.IsRoot():
		return []model.InstructionType{model.InstructionReparent, model.InstructionReorderAbove, model.InstructionReorderBelow}
	default:
		return nil
	}
}

func desired(in Input) model.Instruction {
	h := in.Height
	if h <= 0 {
		h = 1
	}
	// Measure from the centre of the pointer cell so a 3-cell row maps one
	// cell to each band.
	y := float64(clamp(in.Y, 0, h-1)) + 0.5
	quarter := float64(h) / 4

	switch {
	case y <= quarter:
		return model.ReorderAbove(in.Level)
	case y >= float64(h)-quarter:
		switch in.Mode {
		case ModeExpanded:
			return model.MakeChild(in.Level)
		case ModeLastInGroup:
			return reparentOrBelow(in)
		default:
			return model.ReorderBelow(in.Level)
		}
	default:
		return model.MakeChild(in.Level)
	}
}

// reparentOrBelow outdents to the level under the pointer when the pointer is
// left of the row's own indentation.
func reparentOrBelow(in Input) model.Instruction {
	if in.IndentPerLevel <= 0 || in.X < 0 {
		return model.ReorderBelow(in.Level)
	}
	level := in.X / in.IndentPerLevel
	if level >= in.Level {
		return model.ReorderBelow(in.Level)
	}
	return model.Reparent(in.Level, level)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
