package model

type InstructionType string

const (
	InstructionReorderAbove InstructionType = "reorder-above"
	InstructionReorderBelow InstructionType = "reorder-below"
	InstructionMakeChild    InstructionType = "make-child"
	InstructionReparent     InstructionType = "reparent"
	InstructionBlocked      InstructionType = "instruction-blocked"
)

// Instruction is a drop decision derived from drag geometry.
//
// DesiredLevel is only meaningful for reparent; Desired only for
// instruction-blocked, where it holds the instruction that would have applied.
type Instruction struct {
	Type           InstructionType `json:"type"`
	CurrentLevel   int             `json:"currentLevel"`
	IndentPerLevel int             `json:"indentPerLevel,omitempty"`
	DesiredLevel   int             `json:"desiredLevel,omitempty"`
	Desired        *Instruction    `json:"desired,omitempty"`
}

func ReorderAbove(level int) Instruction {
	return Instruction{Type: InstructionReorderAbove, CurrentLevel: level}
}

func ReorderBelow(level int) Instruction {
	return Instruction{Type: InstructionReorderBelow, CurrentLevel: level}
}

func MakeChild(level int) Instruction {
	return Instruction{Type: InstructionMakeChild, CurrentLevel: level}
}

func Reparent(currentLevel, desiredLevel int) Instruction {
	return Instruction{Type: InstructionReparent, CurrentLevel: currentLevel, DesiredLevel: desiredLevel}
}

func Blocked(desired Instruction) Instruction {
	d := desired
	return Instruction{Type: InstructionBlocked, CurrentLevel: desired.CurrentLevel, IndentPerLevel: desired.IndentPerLevel, Desired: &d}
}

// Effective unwraps blocked instructions down to the geometric instruction.
func (i Instruction) Effective() Instruction {
	if i.Type == InstructionBlocked && i.Desired != nil {
		return i.Desired.Effective()
	}
	return i
}

// ParentLevel is the depth of the node that will become the dropped node's parent.
// -1 means the top level.
func (i Instruction) ParentLevel() int {
	switch i.Type {
	case InstructionBlocked:
		if i.Desired == nil {
			return i.CurrentLevel - 1
		}
		return i.Desired.ParentLevel()
	case InstructionReparent:
		return i.DesiredLevel - 1
	default:
		return i.CurrentLevel - 1
	}
}

func (i Instruction) IsRootDesiredLevel() bool {
	return i.Type == InstructionReparent && i.DesiredLevel == 0
}
