package hitbox

import (
	"testing"

	"filtertree/internal/model"
)

func row(mode Mode, level, y, x int) Input {
	return Input{Level: level, IndentPerLevel: 3, Mode: mode, Height: 3, Y: y, X: x}
}

func TestAttach_StandardBands(t *testing.T) {
	cases := []struct {
		y    int
		want model.InstructionType
	}{
		{0, model.InstructionReorderAbove},
		{1, model.InstructionMakeChild},
		{2, model.InstructionReorderBelow},
	}
	for _, tc := range cases {
		got := Attach(row(ModeStandard, 2, tc.y, 0))
		if got.Type != tc.want {
			t.Fatalf("y=%d: expected %s, got %s", tc.y, tc.want, got.Type)
		}
		if got.CurrentLevel != 2 || got.IndentPerLevel != 3 {
			t.Fatalf("y=%d: expected level 2 indent 3, got %+v", tc.y, got)
		}
	}
}

func TestAttach_ExpandedBottomMakesChild(t *testing.T) {
	got := Attach(row(ModeExpanded, 1, 2, 0))
	if got.Type != model.InstructionMakeChild {
		t.Fatalf("expected make-child, got %s", got.Type)
	}
}

func TestAttach_LastInGroupReparentsLeftOfIndent(t *testing.T) {
	// Level 3 starts at column 9; column 4 is inside level 1's indentation.
	got := Attach(row(ModeLastInGroup, 3, 2, 4))
	if got.Type != model.InstructionReparent {
		t.Fatalf("expected reparent, got %s", got.Type)
	}
	if got.DesiredLevel != 1 || got.CurrentLevel != 3 {
		t.Fatalf("expected desired 1 from current 3, got %+v", got)
	}
	if got.ParentLevel() != 0 {
		t.Fatalf("expected parent level 0, got %d", got.ParentLevel())
	}
}

func TestAttach_LastInGroupAtOwnIndentReordersBelow(t *testing.T) {
	got := Attach(row(ModeLastInGroup, 2, 2, 7))
	if got.Type != model.InstructionReorderBelow {
		t.Fatalf("expected reorder-below, got %s", got.Type)
	}
}

func TestAttach_TallRowUsesQuarters(t *testing.T) {
	in := Input{Level: 0, Mode: ModeStandard, Height: 8}
	for y, want := range []model.InstructionType{
		model.InstructionReorderAbove, model.InstructionReorderAbove,
		model.InstructionMakeChild, model.InstructionMakeChild, model.InstructionMakeChild, model.InstructionMakeChild,
		model.InstructionReorderBelow, model.InstructionReorderBelow,
	} {
		in.Y = y
		if got := Attach(in).Type; got != want {
			t.Fatalf("y=%d: expected %s, got %s", y, want, got)
		}
	}
}

func TestAttach_BlockedKeepsDesired(t *testing.T) {
	attr := model.NewAttribute("a", model.DefaultAttribute())
	in := row(ModeStandard, 1, 1, 0)
	in.Block = BlockFor(attr)

	got := Attach(in)
	if got.Type != model.InstructionBlocked {
		t.Fatalf("expected blocked, got %s", got.Type)
	}
	if got.Desired == nil || got.Desired.Type != model.InstructionMakeChild {
		t.Fatalf("expected desired make-child, got %+v", got.Desired)
	}
	if got.Effective().Type != model.InstructionMakeChild {
		t.Fatalf("Effective should unwrap to make-child")
	}
}

func TestBlockFor_Root(t *testing.T) {
	root := model.NewGroup("r")
	root.TreeRole = model.TreeRoleRoot
	for _, y := range []int{0, 2} {
		in := row(ModeStandard, 0, y, 0)
		in.Block = BlockFor(root)
		if got := Attach(in); got.Type != model.InstructionBlocked {
			t.Fatalf("y=%d: expected root to block %+v", y, got)
		}
	}
	in := row(ModeStandard, 0, 1, 0)
	in.Block = BlockFor(root)
	if got := Attach(in); got.Type != model.InstructionMakeChild {
		t.Fatalf("expected root to accept make-child, got %s", got.Type)
	}
	if BlockFor(model.NewGroup("g")) != nil {
		t.Fatalf("plain groups block nothing")
	}
}

func TestModeFor(t *testing.T) {
	open := model.NewGroup("g", model.NewGroup("c"))
	open.Open = true
	if ModeFor(open, 0, 3) != ModeExpanded {
		t.Fatalf("open group with children should be expanded")
	}
	closed := model.NewGroup("g", model.NewGroup("c"))
	if ModeFor(closed, 2, 3) != ModeLastInGroup {
		t.Fatalf("last sibling should be last-in-group")
	}
	if ModeFor(closed, 0, 3) != ModeStandard {
		t.Fatalf("first of three should be standard")
	}
}
