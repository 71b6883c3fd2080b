package ui

import (
	"testing"

	"fyne.io/fyne/v2/test"
	"fyne.io/fyne/v2/theme"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/AttachEdit/internal/document"
	"github.com/piwi3910/AttachEdit/internal/editor"
	"github.com/piwi3910/AttachEdit/internal/engine"
	"github.com/piwi3910/AttachEdit/internal/model"
)

type viewFixture struct {
	doc    *document.Document
	sel    *document.Selection
	view   *attachmentView
	panel  *editor.Panel
	closed int
}

func newViewFixture(t *testing.T) *viewFixture {
	t.Helper()
	test.NewTempApp(t)

	doc := document.New("Unnamed")
	box := document.NewObject("Box", "", "Part::Box")
	box.Shape = model.Shape{
		Vertices: []model.Vector{model.Vec(0, 0, 0), model.Vec(10, 0, 0), model.Vec(0, 10, 0)},
		Edges:    []model.Edge{{Start: 0, End: 1}},
		Faces:    []model.Face{{Origin: model.Vec(0, 0, 10), Normal: model.Vec(0, 0, 1)}},
	}
	require.NoError(t, doc.AddObject(box))
	sketch := document.NewObject("Sketch", "", "Sketcher::SketchObject")
	sketch.Attachable = true
	require.NoError(t, doc.AddObject(sketch))
	pad := document.NewObject("Pad", "", "PartDesign::Pad")
	pad.Links = []string{"Sketch"}
	require.NoError(t, doc.AddObject(pad))

	f := &viewFixture{doc: doc, sel: document.NewSelection(), view: newAttachmentView()}
	f.view.onClose = func() { f.closed++ }

	p, err := editor.Open(sketch, editor.Deps{
		Host:       doc,
		Engine:     engine.New(doc),
		Selection:  f.sel,
		Visibility: document.NewTempoVis(doc),
		View:       f.view,
	}, editor.Options{Decimals: 2})
	require.NoError(t, err)
	f.view.bind(p)
	f.panel = p
	return f
}

func (f *viewFixture) sketch(t *testing.T) *document.Object {
	t.Helper()
	o, ok := f.doc.Object("Sketch")
	require.True(t, ok)
	return o
}

func TestAttachmentViewShowsForm(t *testing.T) {
	f := newViewFixture(t)

	assert.Equal(t, "Attachment", f.view.title.Text)
	assert.Equal(t, "Selecting...", f.view.refButtons[0].Text)
	assert.Equal(t, "Not attached", f.view.message.Text)
	assert.Equal(t, "0.00 mm", f.view.superEntries[editor.FieldX].Text)
	assert.NotEmpty(t, f.view.modes)

	f.sel.AddSelection("Unnamed", "Box", "Face1", model.Vec(0, 0, 10))

	assert.Equal(t, "Box:Face1", f.view.refEntries[0].Text)
	assert.Equal(t, "Selecting...", f.view.refButtons[1].Text)
	assert.Equal(t, "Attached with mode Plane face", f.view.message.Text)
	assert.Equal(t, "Extra placement:", f.view.superTitle.Text)
}

func TestAttachmentViewForwardsEdits(t *testing.T) {
	f := newViewFixture(t)

	f.view.refEntries[0].SetText("Box")
	assert.Equal(t, "Attached with mode Object's XY", f.view.message.Text)

	f.view.superEntries[editor.FieldZ].SetText("5 mm")
	assert.InDelta(t, 5, f.sketch(t).Placement.Base.Z, 1e-9)

	f.view.superEntries[editor.FieldZ].SetText("five")
	assert.Contains(t, f.view.message.Text, "Error:")

	f.view.flip.SetChecked(true)
	f.panel.Accept()

	assert.Equal(t, 1, f.closed)
	assert.True(t, f.sketch(t).Attachment.Reverse)
	assert.Equal(t, model.ModeObjectXY, f.sketch(t).Attachment.Mode)
}

func TestAttachmentViewRefButtonTogglesSlot(t *testing.T) {
	f := newViewFixture(t)

	test.Tap(f.view.refButtons[0])
	assert.Equal(t, -1, f.panel.ActiveRef())
	assert.Equal(t, "Reference1", f.view.refButtons[0].Text)

	test.Tap(f.view.refButtons[2])
	assert.Equal(t, 2, f.panel.ActiveRef())
	assert.Equal(t, "Selecting...", f.view.refButtons[2].Text)
}

func TestAttachmentViewModeList(t *testing.T) {
	f := newViewFixture(t)
	f.view.refEntries[0].SetText("Box")
	require.Len(t, f.view.modes, 3)

	f.view.modeList.Select(1)
	assert.Equal(t, "Attached with mode Object's XZ", f.view.message.Text)
	assert.True(t, f.view.modes[1].Selected)

	f.view.modeList.Select(2)
	assert.Equal(t, "Not attached", f.view.message.Text)
	assert.True(t, f.view.modes[2].Selected)

	f.view.refEntries[0].SetText("")
	for i, m := range f.view.modes {
		if !m.Enabled {
			f.view.modeList.Select(i)
			break
		}
	}
	assert.Equal(t, "Not attached", f.view.message.Text, "disabled modes cannot be chosen")
}

func TestAttachmentViewDropsEventsBeforeBind(t *testing.T) {
	test.NewTempApp(t)
	v := newAttachmentView()
	v.refEntries[0].SetText("Box")
	v.flip.SetChecked(true)
	test.Tap(v.refButtons[1])
	assert.Nil(t, v.panel)
}

func TestAttachmentViewRejectRestoresVisibility(t *testing.T) {
	f := newViewFixture(t)
	pad, _ := f.doc.Object("Pad")
	assert.False(t, pad.Visible, "dependents are hidden while editing")

	f.panel.Reject()
	assert.Equal(t, 1, f.closed)
	assert.True(t, pad.Visible)
	assert.Equal(t, 0, f.sel.ObserverCount())
}

func TestPickPoint(t *testing.T) {
	o := document.NewObject("Box", "", "Part::Box")
	o.Placement = model.NewPlacement(model.Vec(100, 0, 0), 0, 0, 0)
	o.Shape = model.Shape{
		Vertices: []model.Vector{model.Vec(0, 0, 0), model.Vec(10, 0, 0)},
		Edges:    []model.Edge{{Start: 0, End: 1}},
		Faces:    []model.Face{{Origin: model.Vec(0, 0, 5), Normal: model.Vec(0, 0, 1)}},
	}

	assert.InDelta(t, 100, pickPoint(o, "").X, 1e-9)
	assert.InDelta(t, 110, pickPoint(o, "Vertex2").X, 1e-9)
	assert.InDelta(t, 105, pickPoint(o, "Edge1").X, 1e-9)
	assert.InDelta(t, 5, pickPoint(o, "Face1").Z, 1e-9)
	assert.InDelta(t, 100, pickPoint(o, "Bogus").X, 1e-9)
}

func TestThemeForName(t *testing.T) {
	assert.True(t, themeForName("system").system)
	assert.True(t, themeForName("").system)

	dark := themeForName("dark")
	assert.False(t, dark.system)
	assert.Equal(t, theme.VariantDark, dark.variant)
	assert.Equal(t, float32(12), dark.Size(theme.SizeNameText))
}
