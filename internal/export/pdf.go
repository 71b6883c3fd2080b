package export

import (
	"fmt"
	"math"
	"strings"

	"github.com/go-pdf/fpdf"

	"github.com/piwi3910/AttachEdit/internal/document"
	"github.com/piwi3910/AttachEdit/internal/model"
)

// objectColor represents an RGB color for a drawn object.
type objectColor struct {
	R, G, B int
}

// objectColors mirrors the color scheme used by the UI placement view.
var objectColors = []objectColor{
	{R: 76, G: 175, B: 80},  // green
	{R: 33, G: 150, B: 243}, // blue
	{R: 255, G: 152, B: 0},  // orange
	{R: 156, G: 39, B: 176}, // purple
	{R: 0, G: 188, B: 212},  // cyan
	{R: 244, G: 67, B: 54},  // red
	{R: 121, G: 85, B: 72},  // brown
}

// Page layout constants (A4 landscape in mm).
const (
	pageWidth    = 297.0
	pageHeight   = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	legendHeight = 20.0
	drawAreaTop  = marginTop + headerHeight + 5.0
	rowHeight    = 6.0
)

// ExportPDF writes an attachment report for doc: a top view of all objects
// with attachment arrows, followed by a table listing every object's mode,
// references and status.
func ExportPDF(path string, doc *document.Document) error {
	rows := CollectRows(doc)
	if len(rows) == 0 {
		return fmt.Errorf("no objects to export")
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)

	pdf.AddPage()
	renderTopView(pdf, doc)

	renderTable(pdf, doc.Name(), rows)

	return pdf.OutputFileAndClose(path)
}

// bounds is an axis-aligned XY box.
type bounds struct {
	minX, minY, maxX, maxY float64
	empty                  bool
}

func (b *bounds) add(v model.Vector) {
	if b.empty {
		*b = bounds{minX: v.X, minY: v.Y, maxX: v.X, maxY: v.Y}
		return
	}
	b.minX = math.Min(b.minX, v.X)
	b.minY = math.Min(b.minY, v.Y)
	b.maxX = math.Max(b.maxX, v.X)
	b.maxY = math.Max(b.maxY, v.Y)
}

// globalVertices maps the shape of o into document coordinates.
func globalVertices(o *document.Object) []model.Vector {
	out := make([]model.Vector, len(o.Shape.Vertices))
	for i, v := range o.Shape.Vertices {
		out[i] = o.Placement.MultVec(v)
	}
	return out
}

// renderTopView projects every visible object onto the XY plane.
func renderTopView(pdf *fpdf.Fpdf, doc *document.Document) {
	objects := doc.Objects()

	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	title := fmt.Sprintf("%s: top view (%d objects)", doc.Name(), len(objects))
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, title, "", 0, "L", false, 0, "")

	b := bounds{empty: true}
	for _, o := range objects {
		b.add(o.Placement.Base)
		for _, v := range globalVertices(o) {
			b.add(v)
		}
	}
	// pad so single points and lines still get an extent
	spanX := math.Max(b.maxX-b.minX, 1)
	spanY := math.Max(b.maxY-b.minY, 1)
	pad := 0.05 * math.Max(spanX, spanY)
	b.minX -= pad
	b.minY -= pad
	spanX += 2 * pad
	spanY += 2 * pad

	drawWidth := pageWidth - marginLeft - marginRight
	drawHeight := pageHeight - drawAreaTop - marginBottom - legendHeight
	scale := math.Min(drawWidth/spanX, drawHeight/spanY)
	canvasW := spanX * scale
	canvasH := spanY * scale
	offsetX := marginLeft + (drawWidth-canvasW)/2
	offsetY := drawAreaTop

	// page Y grows downwards
	toPage := func(v model.Vector) (float64, float64) {
		return offsetX + (v.X-b.minX)*scale, offsetY + canvasH - (v.Y-b.minY)*scale
	}

	pdf.SetFillColor(248, 248, 248)
	pdf.SetDrawColor(160, 160, 160)
	pdf.SetLineWidth(0.3)
	pdf.Rect(offsetX, offsetY, canvasW, canvasH, "FD")

	for i, o := range objects {
		if !o.Visible {
			continue
		}
		col := objectColors[i%len(objectColors)]
		pdf.SetDrawColor(col.R, col.G, col.B)
		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.SetLineWidth(0.4)

		verts := globalVertices(o)
		for _, e := range o.Shape.Edges {
			if e.Start >= len(verts) || e.End >= len(verts) {
				continue
			}
			x1, y1 := toPage(verts[e.Start])
			x2, y2 := toPage(verts[e.End])
			pdf.Line(x1, y1, x2, y2)
		}
		for _, v := range verts {
			x, y := toPage(v)
			pdf.Circle(x, y, 0.6, "F")
		}

		bx, by := toPage(o.Placement.Base)
		pdf.Rect(bx-1.2, by-1.2, 2.4, 2.4, "D")
		pdf.SetFont("Helvetica", "", 7)
		pdf.SetTextColor(0, 0, 0)
		pdf.SetXY(bx+1.5, by-4)
		pdf.CellFormat(pdf.GetStringWidth(o.Label)+1, 3, o.Label, "", 0, "L", false, 0, "")
	}

	drawAttachmentArrows(pdf, objects, toPage)
	drawLegend(pdf, objects, offsetY+canvasH+5)
	pdf.SetTextColor(0, 0, 0)
}

// drawAttachmentArrows connects each attached object to its references.
func drawAttachmentArrows(pdf *fpdf.Fpdf, objects []*document.Object, toPage func(model.Vector) (float64, float64)) {
	byName := make(map[string]*document.Object, len(objects))
	for _, o := range objects {
		byName[o.Name] = o
	}

	pdf.SetDrawColor(120, 120, 120)
	pdf.SetLineWidth(0.2)
	pdf.SetDashPattern([]float64{1.5, 1}, 0)
	for _, o := range objects {
		if !o.Attachable || o.Attachment.Mode == model.ModeDeactivated {
			continue
		}
		x1, y1 := toPage(o.Placement.Base)
		for _, r := range o.Attachment.References {
			target, ok := byName[r.Object]
			if !ok {
				continue
			}
			x2, y2 := toPage(target.Placement.Base)
			pdf.Line(x1, y1, x2, y2)
			drawArrowHead(pdf, x1, y1, x2, y2)
		}
	}
	pdf.SetDashPattern([]float64{}, 0)
}

func drawArrowHead(pdf *fpdf.Fpdf, x1, y1, x2, y2 float64) {
	dx, dy := x2-x1, y2-y1
	l := math.Hypot(dx, dy)
	if l < 3 {
		return
	}
	ux, uy := dx/l, dy/l
	const size = 2.0
	pdf.Line(x2, y2, x2-size*(ux-0.5*uy), y2-size*(uy+0.5*ux))
	pdf.Line(x2, y2, x2-size*(ux+0.5*uy), y2-size*(uy-0.5*ux))
}

// drawLegend renders a compact legend of objects below the view.
func drawLegend(pdf *fpdf.Fpdf, objects []*document.Object, startY float64) {
	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(marginLeft, startY)
	pdf.CellFormat(30, 4, "Objects:", "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	xPos := marginLeft + 32
	maxX := pageWidth - marginRight

	for i, o := range objects {
		col := objectColors[i%len(objectColors)]
		label := fmt.Sprintf("%s (%s)", o.Label, o.Name)
		if !o.Visible {
			label += " hidden"
		}
		labelW := pdf.GetStringWidth(label) + 6

		if xPos+labelW > maxX {
			startY += 5
			xPos = marginLeft
		}

		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.Rect(xPos, startY+0.5, 3, 3, "F")

		pdf.SetXY(xPos+4, startY)
		pdf.CellFormat(labelW-4, 4, label, "", 0, "L", false, 0, "")

		xPos += labelW + 2
	}
}

var tableColumns = []struct {
	title string
	width float64
}{
	{"Object", 35},
	{"Type", 40},
	{"Mode", 35},
	{"References", 70},
	{"Flip", 12},
	{"Position", 45},
	{"Status", 30},
}

// renderTable lists all rows, starting new pages as needed.
func renderTable(pdf *fpdf.Fpdf, docName string, rows []Row) {
	y := pageHeight
	for i, r := range rows {
		if y+rowHeight > pageHeight-marginBottom-6 {
			pdf.AddPage()
			y = renderTableHeader(pdf, docName, rows)
		}

		links := "-"
		if len(r.Links) > 0 {
			links = strings.Join(r.Links, ", ")
		}
		mode, flip := "-", ""
		if r.Attachable {
			mode = r.ModeName
			if r.Reverse {
				flip = "yes"
			}
		}
		status := r.Status
		if !r.InSync {
			status += " *"
		}
		cells := []string{
			r.Label,
			r.Type,
			mode,
			links,
			flip,
			fmt.Sprintf("%.1f, %.1f, %.1f", r.Placement.Base.X, r.Placement.Base.Y, r.Placement.Base.Z),
			status,
		}

		if i%2 == 0 {
			pdf.SetFillColor(245, 245, 245)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}
		pdf.SetFont("Helvetica", "", 8)
		xPos := marginLeft
		for j, cell := range cells {
			w := tableColumns[j].width
			pdf.SetXY(xPos, y)
			pdf.CellFormat(w, rowHeight, fit(pdf, cell, w-1), "1", 0, "L", true, 0, "")
			xPos += w
		}
		y += rowHeight
	}

	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(marginLeft, pageHeight-marginBottom)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 4, "* placement differs from the attachment result", "", 0, "L", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
}

func renderTableHeader(pdf *fpdf.Fpdf, docName string, rows []Row) float64 {
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 10, docName+": attachments", "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(marginLeft, marginTop+10)
	stats := fmt.Sprintf("Objects: %d | Attached: %d", len(rows), CountAttached(rows))
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 5, stats, "", 0, "L", false, 0, "")

	y := marginTop + 18
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	xPos := marginLeft
	for _, c := range tableColumns {
		pdf.SetXY(xPos, y)
		pdf.CellFormat(c.width, rowHeight, c.title, "1", 0, "C", true, 0, "")
		xPos += c.width
	}
	return y + rowHeight
}

// fit truncates s with an ellipsis so it fits in w.
func fit(pdf *fpdf.Fpdf, s string, w float64) string {
	if pdf.GetStringWidth(s) <= w {
		return s
	}
	for len(s) > 0 && pdf.GetStringWidth(s+"...") > w {
		s = s[:len(s)-1]
	}
	return s + "..."
}
