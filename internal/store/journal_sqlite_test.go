package store

import (
	"context"
	"path/filepath"
	"testing"

	"filtertree/internal/model"
)

func TestJournal_AppendAndRecent(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "journal.sqlite")

	j, err := OpenJournal(ctx, path)
	if err != nil {
		t.Fatalf("OpenJournal: %v", err)
	}
	defer j.Close()

	tree := DefaultSeed()
	move := model.ModalMoveAction{ItemID: "1.4", TargetID: "1.3", Index: 1}
	if err := j.Append(ctx, move, tree); err != nil {
		t.Fatalf("append move: %v", err)
	}
	if err := j.Append(ctx, model.ToggleAction{ItemID: "1.3"}, tree); err != nil {
		t.Fatalf("append toggle: %v", err)
	}

	got, err := j.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(got))
	}
	if got[0].Type != string(model.ActionToggle) || got[1].Type != string(model.ActionModalMove) {
		t.Fatalf("expected newest first, got %q then %q", got[0].Type, got[1].Type)
	}
	if got[1].SubjectID != "1.4" || got[1].NodeCount != 8 {
		t.Fatalf("unexpected move entry: %+v", got[1])
	}
	if got[0].SessionID != j.SessionID() {
		t.Fatalf("session mismatch: %q vs %q", got[0].SessionID, j.SessionID())
	}

	decoded, err := model.DecodeAction(got[1].Action)
	if err != nil {
		t.Fatalf("DecodeAction: %v", err)
	}
	if decoded != move {
		t.Fatalf("stored action mismatch: %+v", decoded)
	}
}

func TestJournal_ReopenKeepsEntries(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "journal.sqlite")

	j1, err := OpenJournal(ctx, path)
	if err != nil {
		t.Fatalf("OpenJournal: %v", err)
	}
	if err := j1.Append(ctx, model.ExpandAction{ItemID: "1"}, DefaultSeed()); err != nil {
		t.Fatalf("append: %v", err)
	}
	_ = j1.Close()

	j2, err := OpenJournal(ctx, path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer j2.Close()
	if j2.SessionID() == j1.SessionID() {
		t.Fatalf("expected a new session id per open")
	}
	got, err := j2.Recent(ctx, 0)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 entry after reopen, got %d", len(got))
	}
}

func TestOpenJournal_EmptyPath(t *testing.T) {
	if _, err := OpenJournal(context.Background(), " "); err == nil {
		t.Fatalf("expected error for empty path")
	}
}
