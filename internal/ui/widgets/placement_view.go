package widgets

import (
	"image/color"
	"math"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/AttachEdit/internal/document"
	"github.com/piwi3910/AttachEdit/internal/model"
)

// Object colors, cycled per object.
var objectColors = []color.NRGBA{
	{R: 76, G: 175, B: 80, A: 220},  // green
	{R: 33, G: 150, B: 243, A: 220}, // blue
	{R: 255, G: 152, B: 0, A: 220},  // orange
	{R: 156, G: 39, B: 176, A: 220}, // purple
	{R: 0, G: 188, B: 212, A: 220},  // cyan
	{R: 244, G: 67, B: 54, A: 220},  // red
	{R: 121, G: 85, B: 72, A: 220},  // brown
}

var (
	colorBackground = color.NRGBA{R: 248, G: 248, B: 248, A: 255}
	colorEdited     = color.NRGBA{R: 255, G: 200, B: 0, A: 255} // object being attached
	colorReference  = color.NRGBA{R: 230, G: 30, B: 30, A: 255}  // its references
	colorAxis       = color.NRGBA{R: 180, G: 180, B: 180, A: 255}
)

// Highlight marks an object in the view.
type Highlight int

const (
	HighlightNone Highlight = iota
	HighlightEdited
	HighlightReference
)

// PlacementView is a custom Fyne widget showing the objects of a document
// projected onto the XY plane, with each placement's origin marked.
type PlacementView struct {
	widget.BaseWidget
	doc       *document.Document
	highlight map[string]Highlight
	maxWidth  float32
	maxHeight float32
}

// NewPlacementView creates a view of doc that fits in maxW x maxH.
func NewPlacementView(doc *document.Document, maxW, maxH float32) *PlacementView {
	pv := &PlacementView{
		doc:       doc,
		highlight: map[string]Highlight{},
		maxWidth:  maxW,
		maxHeight: maxH,
	}
	pv.ExtendBaseWidget(pv)
	return pv
}

// SetDocument replaces the shown document and clears highlights.
func (pv *PlacementView) SetDocument(doc *document.Document) {
	pv.doc = doc
	pv.highlight = map[string]Highlight{}
	pv.Refresh()
}

// SetHighlight replaces the highlighted objects.
func (pv *PlacementView) SetHighlight(h map[string]Highlight) {
	if h == nil {
		h = map[string]Highlight{}
	}
	pv.highlight = h
	pv.Refresh()
}

// CreateRenderer implements fyne.Widget.
func (pv *PlacementView) CreateRenderer() fyne.WidgetRenderer {
	return newPlacementViewRenderer(pv)
}

type placementViewRenderer struct {
	pv      *PlacementView
	objects []fyne.CanvasObject
}

func newPlacementViewRenderer(pv *PlacementView) *placementViewRenderer {
	r := &placementViewRenderer{pv: pv}
	r.rebuild()
	return r
}

// viewBox is the XY extent of the visible geometry.
type viewBox struct {
	minX, minY, maxX, maxY float64
	set                    bool
}

func (b *viewBox) add(v model.Vector) {
	if !b.set {
		*b = viewBox{minX: v.X, minY: v.Y, maxX: v.X, maxY: v.Y, set: true}
		return
	}
	b.minX = math.Min(b.minX, v.X)
	b.minY = math.Min(b.minY, v.Y)
	b.maxX = math.Max(b.maxX, v.X)
	b.maxY = math.Max(b.maxY, v.Y)
}

func globalVertices(o *document.Object) []model.Vector {
	out := make([]model.Vector, len(o.Shape.Vertices))
	for i, v := range o.Shape.Vertices {
		out[i] = o.Placement.MultVec(v)
	}
	return out
}

func (r *placementViewRenderer) rebuild() {
	r.objects = nil
	pv := r.pv

	bg := canvas.NewRectangle(colorBackground)
	bg.StrokeColor = color.NRGBA{R: 160, G: 160, B: 160, A: 255}
	bg.StrokeWidth = 1
	bg.Resize(fyne.NewSize(pv.maxWidth, pv.maxHeight))
	r.objects = append(r.objects, bg)

	if pv.doc == nil {
		return
	}
	var visible []*document.Object
	box := viewBox{}
	for _, o := range pv.doc.Objects() {
		if !o.Visible {
			continue
		}
		visible = append(visible, o)
		box.add(o.Placement.Base)
		for _, v := range globalVertices(o) {
			box.add(v)
		}
	}
	if !box.set {
		return
	}

	spanX := math.Max(box.maxX-box.minX, 1)
	spanY := math.Max(box.maxY-box.minY, 1)
	const margin = 20
	scale := float32(math.Min(float64(pv.maxWidth-2*margin)/spanX, float64(pv.maxHeight-2*margin)/spanY))
	if scale <= 0 {
		scale = 1
	}
	// screen Y grows downwards
	toScreen := func(v model.Vector) fyne.Position {
		return fyne.NewPos(
			margin+float32(v.X-box.minX)*scale,
			pv.maxHeight-margin-float32(v.Y-box.minY)*scale,
		)
	}

	origin := toScreen(model.Vec(0, 0, 0))
	if origin.X >= 0 && origin.X <= pv.maxWidth && origin.Y >= 0 && origin.Y <= pv.maxHeight {
		r.addLine(colorAxis, 1, fyne.NewPos(origin.X, 0), fyne.NewPos(origin.X, pv.maxHeight))
		r.addLine(colorAxis, 1, fyne.NewPos(0, origin.Y), fyne.NewPos(pv.maxWidth, origin.Y))
	}

	for i, o := range visible {
		col := objectColors[i%len(objectColors)]
		width := float32(1.5)
		switch pv.highlight[o.Name] {
		case HighlightEdited:
			col, width = colorEdited, 3
		case HighlightReference:
			col, width = colorReference, 3
		}

		verts := globalVertices(o)
		for _, e := range o.Shape.Edges {
			if e.Start >= len(verts) || e.End >= len(verts) {
				continue
			}
			r.addLine(col, width, toScreen(verts[e.Start]), toScreen(verts[e.End]))
		}
		for _, v := range verts {
			r.addDot(col, toScreen(v), 2.5)
		}

		// placement origin with its local X axis
		base := toScreen(o.Placement.Base)
		xTip := toScreen(o.Placement.MultVec(model.Vec(1/float64(scale)*15, 0, 0)))
		r.addLine(col, width, base, xTip)
		r.addDot(col, base, 4)

		label := canvas.NewText(o.Label, color.Black)
		label.TextSize = 10
		label.Move(fyne.NewPos(base.X+5, base.Y-14))
		r.objects = append(r.objects, label)
	}
}

func (r *placementViewRenderer) addLine(col color.Color, width float32, from, to fyne.Position) {
	line := canvas.NewLine(col)
	line.StrokeWidth = width
	line.Position1 = from
	line.Position2 = to
	r.objects = append(r.objects, line)
}

func (r *placementViewRenderer) addDot(col color.Color, at fyne.Position, radius float32) {
	dot := canvas.NewCircle(col)
	dot.Resize(fyne.NewSize(2*radius, 2*radius))
	dot.Move(fyne.NewPos(at.X-radius, at.Y-radius))
	r.objects = append(r.objects, dot)
}

func (r *placementViewRenderer) Layout(size fyne.Size)        {}
func (r *placementViewRenderer) Refresh()                     { r.rebuild() }
func (r *placementViewRenderer) Destroy()                     {}
func (r *placementViewRenderer) Objects() []fyne.CanvasObject { return r.objects }
func (r *placementViewRenderer) MinSize() fyne.Size {
	return fyne.NewSize(r.pv.maxWidth, r.pv.maxHeight)
}
