package mutate

import (
	"errors"
	"testing"

	"filtertree/internal/model"
	"filtertree/internal/outline"

	"github.com/google/go-cmp/cmp"
)

func attr(id, name, value string) model.Node {
	return model.NewAttribute(id, model.Attribute{Name: name, Value: value, Operator: "="})
}

// seedTree mirrors the editor's default seed.
func seedTree() model.Tree {
	chain := model.NewGroup("1.3.1",
		model.NewGroup("1.3.9",
			model.NewGroup("1.3.32",
				attr("1.3.211", "attribute 1", "value 1"),
			),
		),
	)
	group := model.NewGroup("1.3", chain, attr("1.3.2", "attribute 2", "value 2"))
	group.Open = true
	root := model.NewGroup("1", group, attr("1.4", "attribute 3", "value 3"))
	root.Open = true
	root.TreeRole = model.TreeRoleRoot
	return model.Tree{root}
}

func childIDs(t *testing.T, tree model.Tree, id string) []string {
	t.Helper()
	kids, err := outline.ChildrenOf(tree, id)
	if err != nil {
		t.Fatalf("children of %q: %v", id, err)
	}
	out := make([]string, 0, len(kids))
	for _, n := range kids {
		out = append(out, n.ID)
	}
	return out
}

func mustReduce(t *testing.T, tree model.Tree, a model.Action) model.Tree {
	t.Helper()
	out, err := Reduce(tree, a)
	if err != nil {
		t.Fatalf("reduce %s: %v", a.Type(), err)
	}
	return out
}

func allIDs(tree model.Tree) []string {
	var out []string
	outline.Walk(tree, func(n model.Node, _ int) bool {
		out = append(out, n.ID)
		return true
	})
	return out
}

func TestReduce_StructuralMovesKeepIDsUnique(t *testing.T) {
	tree := seedTree()
	ids := allIDs(tree)
	want := len(ids)

	for _, item := range ids {
		for _, target := range ids {
			depth, _ := outline.Depth(tree, target)
			path, _ := outline.PathToItem(tree, target)
			instructions := []model.Instruction{
				model.ReorderAbove(depth),
				model.ReorderBelow(depth),
				model.MakeChild(depth),
			}
			for lvl := range path {
				instructions = append(instructions, model.Reparent(depth, lvl))
			}

			for _, ins := range instructions {
				out, err := Reduce(tree, model.InstructionAction{Instruction: ins, ItemID: item, TargetID: target})
				if err != nil {
					if !errors.Is(err, outline.ErrContract) {
						t.Fatalf("%s %s->%s: unexpected error %v", ins.Type, item, target, err)
					}
					continue
				}
				if err := outline.Validate(out); err != nil {
					t.Fatalf("%s %s->%s: %v", ins.Type, item, target, err)
				}
				if got := outline.Count(out); got != want {
					t.Fatalf("%s %s->%s: node count %d, want %d", ins.Type, item, target, got, want)
				}
			}
		}
	}

	if diff := cmp.Diff(seedTree(), tree); diff != "" {
		t.Fatalf("input tree changed (-want +got):\n%s", diff)
	}
}

func TestReduce_ReorderBelowAcrossGroups(t *testing.T) {
	out := mustReduce(t, seedTree(), model.InstructionAction{
		Instruction: model.ReorderBelow(5),
		ItemID:      "1.4",
		TargetID:    "1.3.211",
	})
	if diff := cmp.Diff([]string{"1.3.211", "1.4"}, childIDs(t, out, "1.3.32")); diff != "" {
		t.Fatalf("1.3.32 children (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"1.3"}, childIDs(t, out, "1")); diff != "" {
		t.Fatalf("1 children (-want +got):\n%s", diff)
	}
}

func TestReduce_ReorderAbove(t *testing.T) {
	out := mustReduce(t, seedTree(), model.InstructionAction{
		Instruction: model.ReorderAbove(1),
		ItemID:      "1.4",
		TargetID:    "1.3",
	})
	if diff := cmp.Diff([]string{"1.4", "1.3"}, childIDs(t, out, "1")); diff != "" {
		t.Fatalf("1 children (-want +got):\n%s", diff)
	}
}

func TestReduce_MakeChildOpensTarget(t *testing.T) {
	out := mustReduce(t, seedTree(), model.InstructionAction{
		Instruction: model.MakeChild(2),
		ItemID:      "1.4",
		TargetID:    "1.3.1",
	})
	n, _ := outline.Find(out, "1.3.1")
	if !n.Open {
		t.Fatalf("expected make-child target to be opened")
	}
	if diff := cmp.Diff([]string{"1.4", "1.3.9"}, childIDs(t, out, "1.3.1")); diff != "" {
		t.Fatalf("1.3.1 children (-want +got):\n%s", diff)
	}
}

func TestReduce_ReparentToAncestorLevel(t *testing.T) {
	out := mustReduce(t, seedTree(), model.InstructionAction{
		Instruction: model.Reparent(5, 1),
		ItemID:      "1.3.211",
		TargetID:    "1.3.211",
	})
	if diff := cmp.Diff([]string{"1.3", "1.3.211", "1.4"}, childIDs(t, out, "1")); diff != "" {
		t.Fatalf("1 children (-want +got):\n%s", diff)
	}
	if got := childIDs(t, out, "1.3.32"); len(got) != 0 {
		t.Fatalf("expected 1.3.32 to be empty, got %v", got)
	}
}

func TestReduce_ReflexiveAndStaleAreNoOps(t *testing.T) {
	tree := seedTree()
	cases := []model.Action{
		model.InstructionAction{Instruction: model.ReorderAbove(1), ItemID: "1.3", TargetID: "1.3"},
		model.InstructionAction{Instruction: model.MakeChild(2), ItemID: "1.3", TargetID: "1.3.1"},
		model.InstructionAction{Instruction: model.ReorderBelow(1), ItemID: "gone", TargetID: "1.3"},
		model.InstructionAction{Instruction: model.ReorderBelow(1), ItemID: "1.4", TargetID: "gone"},
		model.InstructionAction{Instruction: model.Blocked(model.MakeChild(1)), ItemID: "1.3", TargetID: "1.4"},
		model.ToggleAction{ItemID: "1.4"},
		model.ModalMoveAction{ItemID: "1", TargetID: "1.3", Index: 0},
		model.AddGroupAction{TargetID: "gone"},
	}
	for _, a := range cases {
		out := mustReduce(t, tree, a)
		if diff := cmp.Diff(tree, out); diff != "" {
			t.Fatalf("%s on %s changed the tree (-want +got):\n%s", a.Type(), model.SubjectID(a), diff)
		}
	}
}

func TestReduce_ExpandCollapseRoundTrip(t *testing.T) {
	tree := seedTree()
	opened := mustReduce(t, tree, model.ExpandAction{ItemID: "1.3.1"})
	n, _ := outline.Find(opened, "1.3.1")
	if !n.Open {
		t.Fatalf("expected 1.3.1 open after expand")
	}
	again := mustReduce(t, opened, model.ExpandAction{ItemID: "1.3.1"})
	if diff := cmp.Diff(opened, again); diff != "" {
		t.Fatalf("second expand changed the tree (-want +got):\n%s", diff)
	}
	closed := mustReduce(t, again, model.CollapseAction{ItemID: "1.3.1"})
	if diff := cmp.Diff(tree, closed); diff != "" {
		t.Fatalf("collapse did not restore the tree (-want +got):\n%s", diff)
	}
}

func TestReduce_ToggleForceOnLeaf(t *testing.T) {
	out := mustReduce(t, seedTree(), model.ToggleAction{ItemID: "1.4", Force: true})
	n, _ := outline.Find(out, "1.4")
	if !n.Open {
		t.Fatalf("expected forced toggle to open a leaf")
	}
}

func TestReduce_ModalMoveIndexAfterRemoval(t *testing.T) {
	top := model.Tree{model.NewGroup("A"), model.NewGroup("B"), model.NewGroup("C")}

	out := mustReduce(t, top, model.ModalMoveAction{ItemID: "A", TargetID: outline.RootID, Index: 2})
	if diff := cmp.Diff([]string{"B", "C", "A"}, childIDs(t, out, outline.RootID)); diff != "" {
		t.Fatalf("index 2 (-want +got):\n%s", diff)
	}
	out = mustReduce(t, top, model.ModalMoveAction{ItemID: "A", TargetID: outline.RootID, Index: 1})
	if diff := cmp.Diff([]string{"B", "A", "C"}, childIDs(t, out, outline.RootID)); diff != "" {
		t.Fatalf("index 1 (-want +got):\n%s", diff)
	}

	lone := model.Tree{model.NewGroup("A")}
	out = mustReduce(t, lone, model.ModalMoveAction{ItemID: "A", TargetID: outline.RootID, Index: 0})
	if diff := cmp.Diff(lone, out); diff != "" {
		t.Fatalf("lone move (-want +got):\n%s", diff)
	}
}

func TestReduce_ModalMoveAcrossLevels(t *testing.T) {
	out := mustReduce(t, seedTree(), model.ModalMoveAction{ItemID: "1.4", TargetID: "1.3.32", Index: 1})
	if diff := cmp.Diff([]string{"1.3.211", "1.4"}, childIDs(t, out, "1.3.32")); diff != "" {
		t.Fatalf("1.3.32 children (-want +got):\n%s", diff)
	}

	out = mustReduce(t, out, model.ModalMoveAction{ItemID: "1.3.9", TargetID: "1", Index: 0})
	if diff := cmp.Diff([]string{"1.3.9", "1.3"}, childIDs(t, out, "1")); diff != "" {
		t.Fatalf("1 children (-want +got):\n%s", diff)
	}
	if got := childIDs(t, out, "1.3.1"); len(got) != 0 {
		t.Fatalf("expected 1.3.1 to be empty, got %v", got)
	}
}

func TestReduce_AttributePartialPatch(t *testing.T) {
	op := ">="
	out := mustReduce(t, seedTree(), model.AttributeDataUpdateAction{
		ItemID:        "1.3.2",
		AttributeData: &model.AttributePatch{Operator: &op},
	})
	n, _ := outline.Find(out, "1.3.2")
	want := model.Attribute{Name: "attribute 2", Value: "value 2", Operator: ">="}
	if diff := cmp.Diff(want, *n.Attribute); diff != "" {
		t.Fatalf("attribute mismatch (-want +got):\n%s", diff)
	}
}

func TestReduce_AddUsesGenerator(t *testing.T) {
	r := Reducer{NewID: func() string { return "g1" }}

	out, err := r.Reduce(seedTree(), model.AddGroupAction{TargetID: "1.3.1"})
	if err != nil {
		t.Fatalf("add group: %v", err)
	}
	n, _ := outline.Find(out, "1.3.1")
	if !n.Open || n.Children[0].ID != "g1" || !n.Children[0].Open || n.Children[0].Type != model.KindGroup {
		t.Fatalf("expected open group g1 prepended to an opened target, got %+v", n)
	}

	out, err = r.Reduce(out, model.AddAttributeAction{TargetID: "g1"})
	if err != nil {
		t.Fatalf("add attribute: %v", err)
	}
	g, _ := outline.Find(out, "g1")
	if len(g.Children) != 1 {
		t.Fatalf("expected one child in g1, got %d", len(g.Children))
	}
	added := g.Children[0]
	if added.ID == "g1" || added.Type != model.KindAttribute {
		t.Fatalf("expected a fresh attribute id, got %+v", added)
	}
	if diff := cmp.Diff(model.DefaultAttribute(), *added.Attribute); diff != "" {
		t.Fatalf("default attribute mismatch (-want +got):\n%s", diff)
	}
}

func TestReduce_ContractViolations(t *testing.T) {
	dup := attr("1.4", "x", "y")
	wrongKind := model.NewGroup("fresh")
	attrWithKids := attr("x", "a", "1")
	attrWithKids.Children = []model.Node{model.NewGroup("y")}
	dupInside := model.NewGroup("g", attr("d", "a", "1"), attr("d", "b", "2"))
	noPayload := model.Node{ID: "z", Type: model.KindAttribute, Children: []model.Node{}}
	nestedRoot := model.NewGroup("g", model.NewGroup("r"))
	nestedRoot.Children[0].TreeRole = model.TreeRoleRoot
	rootGroup := model.NewGroup("r")
	rootGroup.TreeRole = model.TreeRoleRoot
	cases := []struct {
		name      string
		action    model.Action
		container bool
	}{
		{"make-child onto attribute", model.InstructionAction{Instruction: model.MakeChild(1), ItemID: "1.3", TargetID: "1.4"}, true},
		{"add group under attribute", model.AddGroupAction{TargetID: "1.4"}, true},
		{"modal move under attribute", model.ModalMoveAction{ItemID: "1.3.2", TargetID: "1.4", Index: 0}, true},
		{"modal move index out of range", model.ModalMoveAction{ItemID: "1.4", TargetID: "1.3", Index: 3}, false},
		{"reparent unknown target", model.InstructionAction{Instruction: model.Reparent(1, 0), ItemID: "1.4", TargetID: "gone"}, false},
		{"reparent level beyond path", model.InstructionAction{Instruction: model.Reparent(1, 1), ItemID: "1.4", TargetID: "1.3"}, false},
		{"attribute update on group", model.AttributeDataUpdateAction{ItemID: "1.3", AttributeData: &model.AttributePatch{}}, false},
		{"attribute update without data", model.AttributeDataUpdateAction{ItemID: "1.4"}, false},
		{"prebuilt id clash", model.AddAttributeAction{TargetID: "1.3", Node: &dup}, false},
		{"prebuilt wrong kind", model.AddAttributeAction{TargetID: "1.3", Node: &wrongKind}, false},
		{"prebuilt attribute with children", model.AddAttributeAction{TargetID: "1.3", Node: &attrWithKids}, false},
		{"prebuilt duplicate ids inside subtree", model.AddGroupAction{TargetID: "1.3", Node: &dupInside}, false},
		{"prebuilt attribute without payload", model.AddAttributeAction{TargetID: "1.3", Node: &noPayload}, false},
		{"prebuilt nested root", model.AddGroupAction{TargetID: "1.3", Node: &nestedRoot}, false},
		{"prebuilt root group", model.AddGroupAction{TargetID: "1.3", Node: &rootGroup}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tree := seedTree()
			out, err := Reduce(tree, tc.action)
			if !errors.Is(err, outline.ErrContract) {
				t.Fatalf("expected contract error, got %v", err)
			}
			if got := errors.Is(err, ErrNotContainer); got != tc.container {
				t.Fatalf("ErrNotContainer: got %v want %v (%v)", got, tc.container, err)
			}
			if diff := cmp.Diff(tree, out); diff != "" {
				t.Fatalf("tree changed on error (-want +got):\n%s", diff)
			}
		})
	}
}

func TestReduce_ReorderBelowIntoNestedGroup(t *testing.T) {
	groupX := model.NewGroup("groupX", attr("attr1", "a", "1"), attr("attr2", "b", "2"))
	root := model.NewGroup("root", groupX, attr("attr3", "c", "3"))
	tree := model.Tree{root}

	out := mustReduce(t, tree, model.InstructionAction{
		Instruction: model.ReorderBelow(2),
		ItemID:      "attr3",
		TargetID:    "attr1",
	})
	if diff := cmp.Diff([]string{"attr1", "attr3", "attr2"}, childIDs(t, out, "groupX")); diff != "" {
		t.Fatalf("groupX children (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"groupX"}, childIDs(t, out, "root")); diff != "" {
		t.Fatalf("root children (-want +got):\n%s", diff)
	}
}

func TestReduce_ReparentInsertsAfterAncestor(t *testing.T) {
	g2 := model.NewGroup("g2", attr("t", "t", "1"), attr("m", "m", "2"))
	root := model.NewGroup("root", model.NewGroup("g1", g2))
	tree := model.Tree{root}

	out := mustReduce(t, tree, model.InstructionAction{
		Instruction: model.Reparent(3, 1),
		ItemID:      "m",
		TargetID:    "t",
	})
	if diff := cmp.Diff([]string{"g1", "m"}, childIDs(t, out, "root")); diff != "" {
		t.Fatalf("root children (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"t"}, childIDs(t, out, "g2")); diff != "" {
		t.Fatalf("g2 children (-want +got):\n%s", diff)
	}
}
