package importer

import (
	"fmt"
	"math"

	"github.com/yofu/dxf"
	"github.com/yofu/dxf/entity"

	"github.com/piwi3910/AttachEdit/internal/document"
	"github.com/piwi3910/AttachEdit/internal/model"
)

// Object types created from DXF entities.
const (
	TypePoint  = "Part::Vertex"
	TypeLine   = "Part::Line"
	TypeSketch = "Sketcher::SketchObject"
)

// circleSegments is the number of edges approximating a CIRCLE.
const circleSegments = 32

// ImportDXF imports datum geometry from a DXF file. POINT entities become
// vertex objects, LINE entities line objects with one edge, and closed
// LWPOLYLINE or CIRCLE entities planar sketches with one face, so every
// object offers sub-elements to attach to.
func ImportDXF(path string) ImportResult {
	result := ImportResult{}

	drawing, err := dxf.Open(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open DXF file: %v", err))
		return result
	}

	entities := drawing.Entities()
	if len(entities) == 0 {
		result.Errors = append(result.Errors, "DXF file contains no entities")
		return result
	}

	counts := make(map[string]int)
	next := func(base string) string {
		counts[base]++
		return fmt.Sprintf("%s%03d", base, counts[base])
	}

	skipped := 0
	for _, ent := range entities {
		switch e := ent.(type) {
		case *entity.Point:
			result.Objects = append(result.Objects, pointObject(next("Point"), vec(e.Coord)))

		case *entity.Line:
			start, end := vec(e.Start), vec(e.End)
			if end.Sub(start).Length() < model.LinearPrecision {
				result.Warnings = append(result.Warnings, "Skipped LINE with zero length")
				continue
			}
			result.Objects = append(result.Objects, lineObject(next("Line"), start, end))

		case *entity.LwPolyline:
			if len(e.Vertices) < 2 {
				result.Warnings = append(result.Warnings, "Skipped LWPOLYLINE with fewer than 2 vertices")
				continue
			}
			pts := make([]model.Vector, len(e.Vertices))
			for i, v := range e.Vertices {
				pts[i] = vec(v)
			}
			result.Objects = append(result.Objects, polylineObject(next("Sketch"), pts, e.Closed && len(pts) >= 3))

		case *entity.Circle:
			if e.Radius <= 0 {
				result.Warnings = append(result.Warnings, "Skipped CIRCLE with non-positive radius")
				continue
			}
			result.Objects = append(result.Objects, circleObject(next("Circle"), vec(e.Center), e.Radius))

		default:
			skipped++
		}
	}

	if skipped > 0 {
		result.Warnings = append(result.Warnings, fmt.Sprintf("Skipped %d unsupported entities", skipped))
	}
	if len(result.Objects) == 0 {
		result.Errors = append(result.Errors, "No supported entities found in DXF file")
	}
	return result
}

// vec reads a DXF coordinate, which may omit Z.
func vec(c []float64) model.Vector {
	var v [3]float64
	copy(v[:], c)
	return model.Vec(v[0], v[1], v[2])
}

func placedAt(name, typ string, base model.Vector) *document.Object {
	o := document.NewObject(name, "", typ)
	o.Placement = model.Placement{Base: base, Rotation: model.IdentityRotation()}
	return o
}

func pointObject(name string, at model.Vector) *document.Object {
	o := placedAt(name, TypePoint, at)
	o.Shape.Vertices = []model.Vector{model.Vec(0, 0, 0)}
	return o
}

func lineObject(name string, start, end model.Vector) *document.Object {
	o := placedAt(name, TypeLine, start)
	o.Shape = model.Shape{
		Vertices: []model.Vector{model.Vec(0, 0, 0), end.Sub(start)},
		Edges:    []model.Edge{{Start: 0, End: 1}},
	}
	return o
}

// polylineObject places the sketch at the first vertex. Closed outlines
// get a face in the XY plane through their centroid.
func polylineObject(name string, pts []model.Vector, closed bool) *document.Object {
	o := placedAt(name, TypeSketch, pts[0])
	for _, p := range pts {
		o.Shape.Vertices = append(o.Shape.Vertices, p.Sub(pts[0]))
	}
	n := len(pts)
	for i := 0; i < n-1; i++ {
		o.Shape.Edges = append(o.Shape.Edges, model.Edge{Start: i, End: i + 1})
	}
	if closed {
		o.Shape.Edges = append(o.Shape.Edges, model.Edge{Start: n - 1, End: 0})
		o.Shape.Faces = []model.Face{{Origin: centroid(o.Shape.Vertices), Normal: model.Vec(0, 0, 1)}}
	}
	return o
}

// circleObject places the sketch at the circle center.
func circleObject(name string, center model.Vector, radius float64) *document.Object {
	o := placedAt(name, TypeSketch, center)
	for i := 0; i < circleSegments; i++ {
		angle := 2 * math.Pi * float64(i) / circleSegments
		o.Shape.Vertices = append(o.Shape.Vertices, model.Vec(radius*math.Cos(angle), radius*math.Sin(angle), 0))
		o.Shape.Edges = append(o.Shape.Edges, model.Edge{Start: i, End: (i + 1) % circleSegments})
	}
	o.Shape.Faces = []model.Face{{Origin: model.Vec(0, 0, 0), Normal: model.Vec(0, 0, 1)}}
	return o
}

func centroid(pts []model.Vector) model.Vector {
	var sum model.Vector
	for _, p := range pts {
		sum = sum.Add(p)
	}
	return sum.Scale(1 / float64(len(pts)))
}
