package document

import (
	"testing"

	"github.com/piwi3910/AttachEdit/internal/model"
)

func objs(names ...string) []*Object {
	out := make([]*Object, len(names))
	for i, n := range names {
		out[i] = NewObject(n, "", "Part::Feature")
	}
	return out
}

func TestNewHistory(t *testing.T) {
	h := NewHistory()
	if h.maxDepth != defaultMaxDepth {
		t.Errorf("expected maxDepth %d, got %d", defaultMaxDepth, h.maxDepth)
	}
	if h.CanUndo() {
		t.Error("new history should not be undoable")
	}
	if h.CanRedo() {
		t.Error("new history should not be redoable")
	}
}

func TestUndoRedo(t *testing.T) {
	h := NewHistory()

	h.Push(MakeSnapshot(nil, "empty"))
	h.Push(MakeSnapshot(objs("Box"), "one object"))

	current := MakeSnapshot(objs("Box", "Cylinder"), "")

	restored, ok := h.Undo(current)
	if !ok {
		t.Fatal("first undo should succeed")
	}
	if len(restored.Objects) != 1 {
		t.Errorf("expected 1 object, got %d", len(restored.Objects))
	}
	if restored.Label != "one object" {
		t.Errorf("expected label 'one object', got %q", restored.Label)
	}

	if !h.CanRedo() {
		t.Fatal("should be able to redo")
	}
	redone, ok := h.Redo(restored)
	if !ok {
		t.Fatal("redo should succeed")
	}
	if len(redone.Objects) != 2 {
		t.Errorf("expected 2 objects after redo, got %d", len(redone.Objects))
	}
}

func TestPushClearsRedo(t *testing.T) {
	h := NewHistory()
	h.Push(MakeSnapshot(nil, "empty"))

	if _, ok := h.Undo(MakeSnapshot(objs("Box"), "")); !ok {
		t.Fatal("undo should succeed")
	}
	if !h.CanRedo() {
		t.Fatal("should be able to redo after undo")
	}

	h.Push(MakeSnapshot(nil, "new action"))
	if h.CanRedo() {
		t.Error("redo stack should be cleared after push")
	}
}

func TestMaxDepth(t *testing.T) {
	h := &History{maxDepth: 3}
	for i := 0; i < 5; i++ {
		h.Push(MakeSnapshot(nil, ""))
	}
	if len(h.undoStack) != 3 {
		t.Errorf("expected undo stack length 3, got %d", len(h.undoStack))
	}
}

func TestUndoRedoEmpty(t *testing.T) {
	h := NewHistory()
	if _, ok := h.Undo(MakeSnapshot(nil, "current")); ok {
		t.Error("undo on empty history should return false")
	}
	if _, ok := h.Redo(MakeSnapshot(nil, "current")); ok {
		t.Error("redo on empty history should return false")
	}
}

func TestClear(t *testing.T) {
	h := NewHistory()
	h.Push(MakeSnapshot(nil, "a"))
	h.Push(MakeSnapshot(nil, "b"))
	h.Undo(MakeSnapshot(nil, "current"))

	h.Clear()
	if h.CanUndo() || h.CanRedo() {
		t.Error("after clear, should not be able to undo or redo")
	}
}

func TestSnapshotIsDeepCopy(t *testing.T) {
	original := objs("Sketch")
	original[0].Attachable = true
	original[0].Attachment.References = []model.Reference{{Object: "Box", Sub: "Face1"}}
	original[0].Shape.Vertices = []model.Vector{model.Vec(1, 2, 3)}

	snap := MakeSnapshot(original, "test")

	original[0].Label = "Modified"
	original[0].Attachment.References[0].Sub = "Face2"
	original[0].Shape.Vertices[0] = model.Vec(9, 9, 9)

	got := snap.Objects[0]
	if got.Label != "Sketch" {
		t.Error("snapshot should be independent of original object")
	}
	if got.Attachment.References[0].Sub != "Face1" {
		t.Error("snapshot references should be independent of original")
	}
	if got.Shape.Vertices[0].X != 1 {
		t.Error("snapshot geometry should be independent of original")
	}
}

func TestUndoLabel(t *testing.T) {
	h := NewHistory()
	if h.UndoLabel() != "" {
		t.Error("empty history should have no undo label")
	}
	h.Push(MakeSnapshot(nil, "Edit attachment of Sketch"))
	if h.UndoLabel() != "Edit attachment of Sketch" {
		t.Errorf("unexpected undo label %q", h.UndoLabel())
	}
}
