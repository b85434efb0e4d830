package model

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func strPtr(s string) *string { return &s }

func TestActionWire_RoundTrip(t *testing.T) {
	group := NewGroup("g1")
	cases := []Action{
		InstructionAction{Instruction: Reparent(4, 1), ItemID: "1.3.211", TargetID: "1.3.211"},
		InstructionAction{Instruction: Blocked(MakeChild(2)), ItemID: "1.4", TargetID: "1.3.2"},
		ToggleAction{ItemID: "1.3", Force: true},
		AttributeDataUpdateAction{ItemID: "1.4", AttributeData: &AttributePatch{Value: strPtr("")}},
		AddGroupAction{TargetID: "1", Node: &group},
		ModalMoveAction{ItemID: "1.4", TargetID: "", Index: 0},
	}
	for _, want := range cases {
		b, err := EncodeAction(want)
		if err != nil {
			t.Fatalf("encode %s: %v", want.Type(), err)
		}
		got, err := DecodeAction(b)
		if err != nil {
			t.Fatalf("decode %s (%s): %v", want.Type(), b, err)
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Fatalf("%s mismatch (-want +got):\n%s", want.Type(), diff)
		}
	}
}

func TestDecodeAction_ModalMoveKeepsZeroIndex(t *testing.T) {
	b, err := EncodeAction(ModalMoveAction{ItemID: "a", Index: 0})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if !strings.Contains(string(b), `"index":0`) {
		t.Fatalf("expected explicit zero index, got %s", b)
	}
}

func TestDecodeAction_Errors(t *testing.T) {
	cases := map[string]string{
		`{"type":"modal-move","itemId":"a"}`:  "missing index",
		`{"type":"instruction","itemId":"a"}`: "missing instruction",
		`{"itemId":"a"}`:                      "missing action type",
		`{"type":"paste","itemId":"a"}`:       "unknown action type",
		`{"type":`:                            "unexpected end",
	}
	for in, want := range cases {
		_, err := DecodeAction([]byte(in))
		if err == nil || !strings.Contains(err.Error(), want) {
			t.Fatalf("decode %s: expected error containing %q, got %v", in, want, err)
		}
	}
}

func TestInstruction_EffectiveAndParentLevel(t *testing.T) {
	blocked := Blocked(Reparent(3, 1))
	if got := blocked.Effective().Type; got != InstructionReparent {
		t.Fatalf("expected reparent under blocked, got %s", got)
	}
	if got := blocked.ParentLevel(); got != 0 {
		t.Fatalf("blocked reparent parent level: got %d want 0", got)
	}
	if got := ReorderAbove(2).ParentLevel(); got != 1 {
		t.Fatalf("reorder parent level: got %d want 1", got)
	}
	if !Reparent(1, 0).IsRootDesiredLevel() {
		t.Fatalf("expected reparent to level 0 to target the root")
	}
}

func TestAttributePatch_ApplyOnlySetFields(t *testing.T) {
	a := Attribute{Name: "age", Value: "30", Operator: "="}
	got := AttributePatch{Operator: strPtr(">=")}.Apply(a)
	if diff := cmp.Diff(Attribute{Name: "age", Value: "30", Operator: ">="}, got); diff != "" {
		t.Fatalf("patch mismatch (-want +got):\n%s", diff)
	}
	if !(AttributePatch{}).Empty() {
		t.Fatalf("expected zero patch to be empty")
	}
}
