// Package engine classifies attachment references and computes attached
// placements for objects of a document.
package engine

import (
	"fmt"
	"math"
	"strings"

	"github.com/piwi3910/AttachEdit/internal/document"
	"github.com/piwi3910/AttachEdit/internal/model"
)

// Attacher holds a set of attachment parameters and evaluates them against
// a document.
type Attacher struct {
	doc    *document.Document
	params model.AttachParams
}

// New returns an attacher with default (deactivated) parameters.
func New(doc *document.Document) *Attacher {
	return &Attacher{doc: doc, params: model.DefaultAttachParams()}
}

// Parameters returns a copy of the current parameters.
func (a *Attacher) Parameters() model.AttachParams {
	return a.params.Clone()
}

// SetParameters replaces the current parameters.
func (a *Attacher) SetParameters(p model.AttachParams) {
	a.params = p.Clone()
	if a.params.Mode == "" {
		a.params.Mode = model.ModeDeactivated
	}
}

// ReadParametersFromFeature loads the parameters stored on o.
func (a *Attacher) ReadParametersFromFeature(o *document.Object) {
	a.SetParameters(o.Attachment)
}

// WriteParametersToFeature stores the current parameters on o.
func (a *Attacher) WriteParametersToFeature(o *document.Object) {
	o.Attachment = a.params.Clone()
}

// ModeInfo describes mode for display. Unknown modes are reported with
// their raw name.
func (a *Attacher) ModeInfo(mode string) model.ModeInfo {
	m, ok := lookupMode(mode)
	if !ok {
		return model.ModeInfo{UserFriendlyName: mode}
	}
	info := m.info
	info.ReferenceCombinations = m.combos
	return info
}

// RefTypeInfo describes a reference type for display.
func (a *Attacher) RefTypeInfo(t model.RefType) model.RefTypeInfo {
	if name, ok := refTypeNames[t]; ok {
		return model.RefTypeInfo{UserFriendlyName: name}
	}
	return model.RefTypeInfo{UserFriendlyName: string(t)}
}

// resolved is a reference mapped into global coordinates.
type resolved struct {
	typ   model.RefType
	point model.Vector
	dir   model.Vector
	plm   model.Placement
}

func (a *Attacher) resolve(ref model.Reference) (resolved, error) {
	o, ok := a.doc.Object(ref.Object)
	if !ok {
		return resolved{}, fmt.Errorf("object %s not found", ref.Object)
	}
	plm := o.Placement
	if ref.Sub == "" {
		return resolved{typ: model.RefObject, point: plm.Base, plm: plm}, nil
	}
	if !o.Shape.HasSubElement(ref.Sub) {
		return resolved{}, fmt.Errorf("%s has no sub-element %s", ref.Object, ref.Sub)
	}
	kind, idx, _ := model.ParseSubElement(ref.Sub)
	switch kind {
	case model.SubVertex:
		return resolved{typ: model.RefVertex, point: plm.MultVec(o.Shape.Vertices[idx]), plm: plm}, nil
	case model.SubEdge:
		e := o.Shape.Edges[idx]
		start := plm.MultVec(o.Shape.Vertices[e.Start])
		end := plm.MultVec(o.Shape.Vertices[e.End])
		return resolved{typ: model.RefEdge, point: start, dir: end.Sub(start), plm: plm}, nil
	default:
		f := o.Shape.Faces[idx]
		return resolved{
			typ:   model.RefFace,
			point: plm.MultVec(f.Origin),
			dir:   plm.Rotation.Apply(f.Normal),
			plm:   plm,
		}, nil
	}
}

func (a *Attacher) resolveAll() ([]resolved, error) {
	out := make([]resolved, 0, len(a.params.References))
	for _, ref := range a.params.References {
		r, err := a.resolve(ref)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}

func refTypes(refs []resolved) []model.RefType {
	out := make([]model.RefType, len(refs))
	for i, r := range refs {
		out[i] = r.typ
	}
	return out
}

// SuggestModes classifies the modes for the current references.
func (a *Attacher) SuggestModes() model.Suggestion {
	refs, err := a.resolveAll()
	if err != nil {
		return model.Suggestion{Message: model.SuggestLinkBroken, Error: err.Error()}
	}
	s := model.Suggestion{ReferenceTypes: refTypes(refs)}

	for _, m := range modeTable {
		var missing [][]model.RefType
		applicable := false
		for _, c := range m.combos {
			switch {
			case matchesExactly(c, s.ReferenceTypes):
				applicable = true
			case len(c) > len(s.ReferenceTypes) && matchesPrefix(c, s.ReferenceTypes):
				missing = append(missing, c[len(s.ReferenceTypes):])
			}
		}
		if applicable {
			s.AllApplicableModes = append(s.AllApplicableModes, m.name)
		}
		if len(missing) > 0 {
			s.ReachableModes = append(s.ReachableModes, model.ReachableMode{Mode: m.name, Missing: missing})
		}
	}

	if len(s.AllApplicableModes) > 0 {
		s.Message = model.SuggestOK
		s.BestFitMode = s.AllApplicableModes[0]
	} else {
		s.Message = model.SuggestNoModesFit
	}
	// Deactivated accepts any references but is never the best fit.
	s.AllApplicableModes = append(s.AllApplicableModes, deactivated.name)
	return s
}

// CalculateAttachedPlacement computes the placement the parameters attach
// to. orig is the object's current placement; Translate mode keeps its
// rotation. The second result is false when the object is not attached.
func (a *Attacher) CalculateAttachedPlacement(orig model.Placement) (model.Placement, bool, error) {
	p := a.params
	if len(p.References) == 0 || p.Mode == model.ModeDeactivated {
		return orig, false, nil
	}
	m, ok := lookupMode(p.Mode)
	if !ok {
		return orig, false, fmt.Errorf("unknown attachment mode %q", p.Mode)
	}

	refs, err := a.resolveAll()
	if err != nil {
		return orig, false, err
	}
	rt := refTypes(refs)
	accepted := false
	for _, c := range m.combos {
		if matchesExactly(c, rt) {
			accepted = true
			break
		}
	}
	if !accepted {
		return orig, false, fmt.Errorf("mode %s does not accept references (%s)", m.info.UserFriendlyName, joinTypes(rt))
	}

	if p.Mode == model.ModeTranslate {
		return model.Placement{
			Base:     refs[0].point.Add(orig.Rotation.Apply(p.SuperPlacement.Base)),
			Rotation: orig.Rotation,
		}, true, nil
	}

	basis, err := basisFor(p.Mode, refs)
	if err != nil {
		return orig, false, err
	}
	if p.Reverse {
		basis = basis.Multiply(model.Placement{
			Rotation: model.RotationFromAxisAngle(axisX, math.Pi),
		})
	}
	return basis.Multiply(p.SuperPlacement), true, nil
}

var (
	axisX = model.Vec(1, 0, 0)
	axisZ = model.Vec(0, 0, 1)
)

func basisFor(mode string, refs []resolved) (model.Placement, error) {
	switch mode {
	case model.ModeObjectXY:
		return refs[0].plm, nil

	case model.ModeObjectXZ:
		return refs[0].plm.Multiply(model.Placement{
			Rotation: model.RotationFromAxisAngle(axisX, math.Pi/2),
		}), nil

	case model.ModeFlatFace:
		n := refs[0].dir
		if n.Length() < model.LinearPrecision {
			return model.Placement{}, fmt.Errorf("face has no normal")
		}
		return model.Placement{Base: refs[0].point, Rotation: model.RotationBetween(axisZ, n)}, nil

	case model.ModeNormalToEdge:
		origin, dir := refs[0].point, refs[0].dir
		if len(refs) == 2 {
			dir = refs[1].point.Sub(origin)
		}
		if dir.Length() < model.LinearPrecision {
			return model.Placement{}, fmt.Errorf("edge has zero length")
		}
		return model.Placement{Base: origin, Rotation: model.RotationBetween(axisZ, dir)}, nil

	case model.ModeThreePointsPlane:
		p1, p2, p3 := refs[0].point, refs[1].point, refs[2].point
		x := p2.Sub(p1)
		n := x.Cross(p3.Sub(p1))
		if x.Length() < model.LinearPrecision || n.Length() < model.LinearPrecision {
			return model.Placement{}, fmt.Errorf("points are collinear")
		}
		return model.Placement{Base: p1, Rotation: frame(x.Unit(), n.Unit())}, nil
	}
	return model.Placement{}, fmt.Errorf("mode %s has no placement", mode)
}

// frame returns the rotation mapping the global X and Z axes onto x and z,
// which must be perpendicular unit vectors.
func frame(x, z model.Vector) model.Rotation {
	tilt := model.RotationBetween(axisZ, z)
	xt := tilt.Apply(axisX)
	angle := math.Atan2(xt.Cross(x).Dot(z), xt.Dot(x))
	return model.RotationFromAxisAngle(z, angle).Multiply(tilt)
}

func joinTypes(ts []model.RefType) string {
	if len(ts) == 0 {
		return "none"
	}
	parts := make([]string, len(ts))
	for i, t := range ts {
		parts[i] = string(t)
	}
	return strings.Join(parts, ", ")
}
