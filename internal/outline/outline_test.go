package outline

import (
	"errors"
	"sort"
	"testing"

	"filtertree/internal/model"

	"github.com/google/go-cmp/cmp"
)

func attr(id string) model.Node {
	return model.NewAttribute(id, model.Attribute{Name: "n" + id, Value: "v", Operator: "="})
}

// sample is 1 [1.3 [1.3.1 [1.3.9], 1.3.2], 1.4] plus a top-level 2.
func sample() model.Tree {
	inner := model.NewGroup("1.3", model.NewGroup("1.3.1", model.NewGroup("1.3.9")), attr("1.3.2"))
	root := model.NewGroup("1", inner, attr("1.4"))
	root.TreeRole = model.TreeRoleRoot
	root.Open = true
	return model.Tree{root, model.NewGroup("2")}
}

func ids(nodes []model.Node) []string {
	out := make([]string, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, n.ID)
	}
	return out
}

func TestFindAndPath(t *testing.T) {
	tree := sample()
	n, ok := Find(tree, "1.3.9")
	if !ok || n.ID != "1.3.9" {
		t.Fatalf("expected to find 1.3.9, got %+v %v", n, ok)
	}
	if _, ok := Find(tree, "nope"); ok {
		t.Fatalf("expected unknown id to be missing")
	}

	path, ok := PathToItem(tree, "1.3.9")
	if !ok {
		t.Fatalf("expected path for 1.3.9")
	}
	if diff := cmp.Diff([]string{"1", "1.3", "1.3.1"}, path); diff != "" {
		t.Fatalf("path mismatch (-want +got):\n%s", diff)
	}
	top, ok := PathToItem(tree, "2")
	if !ok || len(top) != 0 {
		t.Fatalf("expected empty path for top-level node, got %v %v", top, ok)
	}
	if _, ok := PathToItem(tree, "nope"); ok {
		t.Fatalf("expected no path for unknown id")
	}

	if d, _ := Depth(tree, "1.3.2"); d != 2 {
		t.Fatalf("depth: got %d want 2", d)
	}
	if p, _ := ParentID(tree, "1"); p != RootID {
		t.Fatalf("parent of top-level: got %q", p)
	}
	if i, _ := IndexOf(tree, "1.4"); i != 1 {
		t.Fatalf("index of 1.4: got %d want 1", i)
	}
}

func TestChildrenOf(t *testing.T) {
	tree := sample()
	top, err := ChildrenOf(tree, RootID)
	if err != nil {
		t.Fatalf("children of root: %v", err)
	}
	if diff := cmp.Diff([]string{"1", "2"}, ids(top)); diff != "" {
		t.Fatalf("top-level mismatch (-want +got):\n%s", diff)
	}
	kids, err := ChildrenOf(tree, "1.3")
	if err != nil {
		t.Fatalf("children of 1.3: %v", err)
	}
	if diff := cmp.Diff([]string{"1.3.1", "1.3.2"}, ids(kids)); diff != "" {
		t.Fatalf("children mismatch (-want +got):\n%s", diff)
	}
	if _, err := ChildrenOf(tree, "nope"); !errors.Is(err, ErrContract) {
		t.Fatalf("expected contract error for unknown id, got %v", err)
	}
}

func TestMoveTargets_ExcludesSubtreeAndFooters(t *testing.T) {
	tree := sample()
	tree[1].Children = []model.Node{{ID: "2/footer", Type: model.KindFooter}}

	got := ids(MoveTargets(tree, "1.3"))
	sort.Strings(got)
	if diff := cmp.Diff([]string{"1", "1.4", "2"}, got); diff != "" {
		t.Fatalf("targets mismatch (-want +got):\n%s", diff)
	}
}

func TestEdits_DoNotMutateInput(t *testing.T) {
	tree := sample()
	before := sample()

	item, _ := Find(tree, "1.4")
	out := InsertBefore(Remove(tree, "1.4"), "1.3.1", item)

	if diff := cmp.Diff(before, tree); diff != "" {
		t.Fatalf("input changed (-want +got):\n%s", diff)
	}
	kids, _ := ChildrenOf(out, "1.3")
	if diff := cmp.Diff([]string{"1.4", "1.3.1", "1.3.2"}, ids(kids)); diff != "" {
		t.Fatalf("children mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"1", "2"}, ids(out)); diff != "" {
		t.Fatalf("top-level mismatch (-want +got):\n%s", diff)
	}
}

func TestInsertChild_PrependsAndOpens(t *testing.T) {
	tree := sample()
	out := InsertChild(tree, "1.3.1", attr("x"))
	n, _ := Find(out, "1.3.1")
	if !n.Open {
		t.Fatalf("expected target to be opened")
	}
	if diff := cmp.Diff([]string{"x", "1.3.9"}, ids(n.Children)); diff != "" {
		t.Fatalf("children mismatch (-want +got):\n%s", diff)
	}

	same := InsertChild(tree, "nope", attr("x"))
	if diff := cmp.Diff(tree, same); diff != "" {
		t.Fatalf("expected no-op for unknown target (-want +got):\n%s", diff)
	}
}

func TestInsertAfter_TopLevel(t *testing.T) {
	out := InsertAfter(sample(), "1", model.NewGroup("x"))
	if diff := cmp.Diff([]string{"1", "x", "2"}, ids(out)); diff != "" {
		t.Fatalf("top-level mismatch (-want +got):\n%s", diff)
	}
}

func TestUpdateAttribute(t *testing.T) {
	tree := sample()
	v := "42"
	out, err := UpdateAttribute(tree, "1.4", model.AttributePatch{Value: &v})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	n, _ := Find(out, "1.4")
	if diff := cmp.Diff(model.Attribute{Name: "n1.4", Value: "42", Operator: "="}, *n.Attribute); diff != "" {
		t.Fatalf("attribute mismatch (-want +got):\n%s", diff)
	}
	orig, _ := Find(tree, "1.4")
	if orig.Attribute.Value != "v" {
		t.Fatalf("input attribute changed to %q", orig.Attribute.Value)
	}

	if _, err := UpdateAttribute(tree, "1.3", model.AttributePatch{Value: &v}); !errors.Is(err, ErrContract) {
		t.Fatalf("expected contract error for group, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	if err := Validate(sample()); err != nil {
		t.Fatalf("sample invalid: %v", err)
	}

	bad := sample()
	bad[1].ID = "1.4"
	bad = append(bad, model.Node{ID: "r", Type: model.KindGroup, TreeRole: model.TreeRoleRoot})
	leaf := attr("leaf")
	leaf.Children = []model.Node{model.NewGroup("under")}
	bad = append(bad, leaf)

	err := Validate(bad)
	var verr ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	want := []string{
		"2 top-level nodes marked root",
		`duplicate id "1.4"`,
		`attribute "leaf" has children`,
	}
	if diff := cmp.Diff(want, verr.Problems); diff != "" {
		t.Fatalf("problems mismatch (-want +got):\n%s", diff)
	}
}

func TestCount(t *testing.T) {
	if got := Count(sample()); got != 7 {
		t.Fatalf("count: got %d want 7", got)
	}
}

func TestEqual(t *testing.T) {
	a := sample()
	b := sample()
	b[1].Children = nil
	b[0].Footer = &model.FooterActions{OnFocus: func() {}}
	if !Equal(a, b) {
		t.Fatalf("expected nil and empty children to compare equal")
	}

	moved := InsertBefore(Remove(a, "1.4"), "1.3", attr("1.4"))
	if Equal(a, moved) {
		t.Fatalf("expected reordered siblings to differ")
	}
	same := InsertBefore(Remove(a, "1.3"), "1.4", mustFind(t, a, "1.3"))
	if !Equal(a, same) {
		t.Fatalf("expected reinserting in place to compare equal")
	}
	edited, err := UpdateAttribute(a, "1.4", model.AttributePatch{Value: new(string)})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if Equal(a, edited) {
		t.Fatalf("expected attribute edit to differ")
	}
}

func mustFind(t *testing.T, nodes []model.Node, id string) model.Node {
	t.Helper()
	n, ok := Find(nodes, id)
	if !ok {
		t.Fatalf("missing %s", id)
	}
	return n
}
