package export

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/AttachEdit/internal/document"
	"github.com/piwi3910/AttachEdit/internal/model"
)

func TestExportLabels_CreatesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "labels.pdf")

	if err := ExportLabels(path, buildTestDocument(t)); err != nil {
		t.Fatalf("ExportLabels returned error: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("PDF file was not created: %v", err)
	}
	if info.Size() < 500 {
		t.Errorf("PDF file seems too small: %d bytes", info.Size())
	}
}

func TestExportLabels_NoAttachableObjects(t *testing.T) {
	doc := document.New("Plain")
	if err := doc.AddObject(document.NewObject("Box", "", "Part::Box")); err != nil {
		t.Fatal(err)
	}

	err := ExportLabels(filepath.Join(t.TempDir(), "none.pdf"), doc)
	if err == nil {
		t.Fatal("expected error for document without attachable objects, got nil")
	}
}

func TestCollectLabelInfos(t *testing.T) {
	labels := CollectLabelInfos(buildTestDocument(t))

	if len(labels) != 4 {
		t.Fatalf("expected 4 labels, got %d", len(labels))
	}
	first := labels[0]
	if first.Object != "Sketch" || first.Label != "Top sketch" {
		t.Errorf("unexpected first label %+v", first)
	}
	if first.Document != "Bracket" {
		t.Errorf("expected document 'Bracket', got %q", first.Document)
	}
	if first.Mode != model.ModeFlatFace || !first.Reverse {
		t.Errorf("unexpected mode/reverse %q/%v", first.Mode, first.Reverse)
	}
	if len(first.Links) != 1 || first.Links[0] != "Box:Face1" {
		t.Errorf("unexpected links %v", first.Links)
	}
	if len(labels[3].Links) != 0 {
		t.Errorf("expected idle object without links, got %v", labels[3].Links)
	}
}

func TestLabelInfo_JSONRoundTrip(t *testing.T) {
	info := LabelInfo{
		Document: "Bracket",
		Object:   "Sketch",
		Label:    "Top sketch",
		Mode:     model.ModeThreePointsPlane,
		Links:    []string{"Box:Vertex1", "Box:Vertex2", "Box:Vertex3"},
	}

	data, err := json.Marshal(info)
	if err != nil {
		t.Fatalf("failed to marshal: %v", err)
	}

	var decoded LabelInfo
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("failed to unmarshal: %v", err)
	}

	if decoded.Object != info.Object || decoded.Mode != info.Mode {
		t.Errorf("mismatch: got %+v, want %+v", decoded, info)
	}
	if len(decoded.Links) != 3 || decoded.Links[2] != "Box:Vertex3" {
		t.Errorf("links mismatch: %v", decoded.Links)
	}
}

func TestExportLabels_ManyObjects(t *testing.T) {
	doc := document.New("Many")
	base := document.NewObject("Base", "", "Part::Box")
	if err := doc.AddObject(base); err != nil {
		t.Fatal(err)
	}
	// more than one page of labels
	for i := 0; i < 35; i++ {
		o := document.NewObject(doc.UniqueName("Sketch"), "", "Sketcher::SketchObject")
		o.Attachable = true
		o.Attachment.References = []model.Reference{{Object: "Base"}}
		o.Attachment.Mode = model.ModeObjectXY
		if err := doc.AddObject(o); err != nil {
			t.Fatal(err)
		}
	}

	path := filepath.Join(t.TempDir(), "many_labels.pdf")
	if err := ExportLabels(path, doc); err != nil {
		t.Fatalf("ExportLabels returned error: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("PDF file was not created: %v", err)
	}
	if info.Size() == 0 {
		t.Fatal("PDF file is empty")
	}
}
