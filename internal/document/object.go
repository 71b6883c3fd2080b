package document

import (
	"github.com/google/uuid"

	"github.com/piwi3910/AttachEdit/internal/model"
)

// EditorMode controls how a property may be edited in the UI.
type EditorMode string

const (
	EditorNormal   EditorMode = ""
	EditorReadOnly EditorMode = "ReadOnly"
	EditorHidden   EditorMode = "Hidden"
)

// Object is one feature of a document.
type Object struct {
	ID    string `json:"id"`
	Name  string `json:"name"` // unique within the document
	Label string `json:"label"`
	Type  string `json:"type"`

	HasPlacement  bool            `json:"has_placement"`
	Placement     model.Placement `json:"placement"`
	PlacementMode EditorMode      `json:"placement_mode,omitempty"`

	// Attachable objects persist their attachment parameters here.
	Attachable bool               `json:"attachable"`
	Attachment model.AttachParams `json:"attachment"`

	Links   []string    `json:"links,omitempty"` // names of objects this one depends on
	Visible bool        `json:"visible"`
	Shape   model.Shape `json:"shape"`

	Touched bool `json:"-"`
}

// NewObject returns a visible, movable object at the origin.
func NewObject(name, label, typ string) *Object {
	if label == "" {
		label = name
	}
	return &Object{
		ID:           uuid.New().String()[:8],
		Name:         name,
		Label:        label,
		Type:         typ,
		HasPlacement: true,
		Placement:    model.IdentityPlacement(),
		Attachment:   model.DefaultAttachParams(),
		Visible:      true,
	}
}

// Movable reports whether the placement can be edited directly.
func (o *Object) Movable() bool {
	return o.HasPlacement && o.PlacementMode != EditorHidden && o.PlacementMode != EditorReadOnly
}

// OutList returns the names this object depends on, including its
// attachment references when attachable.
func (o *Object) OutList() []string {
	seen := make(map[string]bool)
	var out []string
	add := func(name string) {
		if name == "" || name == o.Name || seen[name] {
			return
		}
		seen[name] = true
		out = append(out, name)
	}
	for _, l := range o.Links {
		add(l)
	}
	if o.Attachable {
		for _, r := range o.Attachment.References {
			add(r.Object)
		}
	}
	return out
}

// clone returns a deep copy of the object.
func (o *Object) clone() *Object {
	cp := *o
	cp.Attachment = o.Attachment.Clone()
	if o.Links != nil {
		cp.Links = append([]string(nil), o.Links...)
	}
	cp.Shape = model.Shape{
		Vertices: append([]model.Vector(nil), o.Shape.Vertices...),
		Edges:    append([]model.Edge(nil), o.Shape.Edges...),
		Faces:    append([]model.Face(nil), o.Shape.Faces...),
	}
	return &cp
}
