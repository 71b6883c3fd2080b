package attach

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/AttachEdit/internal/document"
	"github.com/piwi3910/AttachEdit/internal/model"
	"github.com/piwi3910/AttachEdit/internal/project"
)

func testDocument(t *testing.T) *document.Document {
	t.Helper()
	doc := document.New("Part")
	box := document.NewObject("Box", "", "Part::Box")
	box.Placement = model.NewPlacement(model.Vec(10, 0, 0), 0, 0, 0)
	box.Shape = model.Shape{
		Vertices: []model.Vector{model.Vec(0, 0, 0), model.Vec(10, 0, 0), model.Vec(0, 10, 0)},
		Edges:    []model.Edge{{Start: 0, End: 1}},
		Faces:    []model.Face{{Origin: model.Vec(0, 0, 5), Normal: model.Vec(0, 0, 1)}},
	}
	require.NoError(t, doc.AddObject(box))
	sketch := document.NewObject("Sketch", "", "Sketcher::SketchObject")
	sketch.Attachable = true
	require.NoError(t, doc.AddObject(sketch))
	require.NoError(t, doc.AddObject(document.NewObject("Cylinder", "", "Part::Cylinder")))
	return doc
}

func object(t *testing.T, doc *document.Document, name string) *document.Object {
	t.Helper()
	o, ok := doc.Object(name)
	require.True(t, ok)
	return o
}

func TestApplyPicksBestFit(t *testing.T) {
	doc := testDocument(t)
	a := &Attach{Object: "Sketch", Links: []string{"Box:Face1"}}

	res, err := a.Apply(doc)
	require.NoError(t, err)
	assert.True(t, res.Attached)
	assert.True(t, res.Moved)
	assert.Equal(t, model.ModeFlatFace, res.Params.Mode)

	sketch := object(t, doc, "Sketch")
	assert.Equal(t, model.ModeFlatFace, sketch.Attachment.Mode)
	assert.Equal(t, []model.Reference{{Object: "Box", Sub: "Face1"}}, sketch.Attachment.References)
	assert.InDelta(t, 10, sketch.Placement.Base.X, 1e-9)
	assert.InDelta(t, 5, sketch.Placement.Base.Z, 1e-9)
}

func TestApplyTwiceDoesNotMove(t *testing.T) {
	doc := testDocument(t)
	a := &Attach{Object: "Sketch", Links: []string{"Box"}}
	_, err := a.Apply(doc)
	require.NoError(t, err)

	again := &Attach{Object: "Sketch"}
	res, err := again.Apply(doc)
	require.NoError(t, err)
	assert.True(t, res.Attached)
	assert.False(t, res.Moved, "an equal placement is not written again")
	assert.Equal(t, model.ModeObjectXY, res.Params.Mode, "current mode is kept")
}

func TestApplyExplicitModeAndSuperPlacement(t *testing.T) {
	doc := testDocument(t)
	reverse := true
	a := &Attach{
		Object:  "Sketch",
		Links:   []string{"Box"},
		Mode:    model.ModeObjectXZ,
		Reverse: &reverse,
		Super:   [6]string{Z: "2 cm"},
	}
	res, err := a.Apply(doc)
	require.NoError(t, err)
	assert.Equal(t, model.ModeObjectXZ, res.Params.Mode)
	assert.True(t, res.Params.Reverse)
	assert.InDelta(t, 20, res.Params.SuperPlacement.Base.Z, 1e-9)
	assert.True(t, object(t, doc, "Sketch").Attachment.Reverse)
}

func TestApplyErrors(t *testing.T) {
	doc := testDocument(t)

	_, err := (&Attach{Object: "Ghost"}).Apply(doc)
	assert.Error(t, err)

	_, err = (&Attach{Object: "Cylinder"}).Apply(doc)
	assert.True(t, errors.Is(err, ErrNotAttachable))

	_, err = (&Attach{Object: "Sketch", Links: []string{"Box:Face1:Edge1"}}).Apply(doc)
	assert.ErrorIs(t, err, model.ErrAmbiguousLink)

	_, err = (&Attach{Object: "Sketch", Links: []string{"Box:Face9"}}).Apply(doc)
	assert.ErrorContains(t, err, "failed to resolve links")

	_, err = (&Attach{Object: "Sketch", Links: []string{"Box:Face1"}, Mode: model.ModeObjectXY}).Apply(doc)
	assert.ErrorContains(t, err, "does not accept")

	_, err = (&Attach{Object: "Sketch", Super: [6]string{Yaw: "ninety"}}).Apply(doc)
	assert.Error(t, err)
}

func TestApplyClearReferencesDetaches(t *testing.T) {
	doc := testDocument(t)
	_, err := (&Attach{Object: "Sketch", Links: []string{"Box"}}).Apply(doc)
	require.NoError(t, err)

	res, err := (&Attach{Object: "Sketch", Links: []string{}}).Apply(doc)
	require.NoError(t, err)
	assert.False(t, res.Attached)
	assert.Empty(t, object(t, doc, "Sketch").Attachment.References)
}

func TestApplyDeactivatedKeepsReferences(t *testing.T) {
	doc := testDocument(t)
	_, err := (&Attach{Object: "Sketch", Links: []string{"Box"}}).Apply(doc)
	require.NoError(t, err)

	res, err := (&Attach{Object: "Sketch", Mode: model.ModeDeactivated}).Apply(doc)
	require.NoError(t, err)
	assert.False(t, res.Attached)
	sketch := object(t, doc, "Sketch")
	assert.Equal(t, model.ModeDeactivated, sketch.Attachment.Mode)
	assert.Equal(t, []model.Reference{{Object: "Box"}}, sketch.Attachment.References)

	res, err = (&Attach{Object: "Sketch", Super: [6]string{X: "5"}}).Apply(doc)
	require.NoError(t, err)
	assert.False(t, res.Attached, "a deactivated object stays detached")
	assert.Equal(t, model.ModeDeactivated, res.Params.Mode)

	res, err = (&Attach{Object: "Sketch", Mode: model.ModeObjectXY}).Apply(doc)
	require.NoError(t, err)
	assert.True(t, res.Attached)
	assert.InDelta(t, 15, res.Placement.Base.X, 1e-9)
}

func TestDoSavesDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "part.attach.json")
	require.NoError(t, project.SaveDocument(path, testDocument(t)))

	var out bytes.Buffer
	a := &Attach{Path: path, Object: "Sketch", Links: []string{"Box:Vertex2"}, Out: &out}
	require.NoError(t, a.Do(context.Background()))
	assert.Contains(t, out.String(), "attached with mode Translate origin")

	doc, err := project.LoadDocument(path)
	require.NoError(t, err)
	assert.InDelta(t, 20, object(t, doc, "Sketch").Placement.Base.X, 1e-9)
}

func TestDoDryRunAndSuggest(t *testing.T) {
	path := filepath.Join(t.TempDir(), "part.attach.json")
	require.NoError(t, project.SaveDocument(path, testDocument(t)))

	var out bytes.Buffer
	dry := &Attach{Path: path, Object: "Sketch", Links: []string{"Box"}, DryRun: true, Out: &out}
	require.NoError(t, dry.Do(context.Background()))
	assert.Contains(t, out.String(), "dry run")

	doc, err := project.LoadDocument(path)
	require.NoError(t, err)
	assert.Empty(t, object(t, doc, "Sketch").Attachment.References)

	out.Reset()
	suggest := &Attach{Path: path, Object: "Sketch", Links: []string{"Box:Vertex1"}, Suggest: true, Out: &out}
	require.NoError(t, suggest.Do(context.Background()))
	assert.Contains(t, out.String(), "Translate origin (Translate) *")
	assert.Contains(t, out.String(), "XY on three points (add Vertex+Vertex)")
}
