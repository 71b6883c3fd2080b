package model

import (
	"fmt"
	"strconv"
	"strings"
)

// SubElementKind is the kind of topological element a sub-element name
// refers to.
type SubElementKind string

const (
	SubVertex SubElementKind = "Vertex"
	SubEdge   SubElementKind = "Edge"
	SubFace   SubElementKind = "Face"
)

// Edge connects two vertices of a shape by index.
type Edge struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Face is a planar face described by a point on it and its normal.
type Face struct {
	Origin Vector `json:"origin"`
	Normal Vector `json:"normal"`
}

// Shape is the local geometry of a document object.
// Coordinates are relative to the owning object's placement.
type Shape struct {
	Vertices []Vector `json:"vertices,omitempty"`
	Edges    []Edge   `json:"edges,omitempty"`
	Faces    []Face   `json:"faces,omitempty"`
}

// SubElementNames lists every addressable sub-element, vertices first.
func (s Shape) SubElementNames() []string {
	var names []string
	for i := range s.Vertices {
		names = append(names, fmt.Sprintf("%s%d", SubVertex, i+1))
	}
	for i := range s.Edges {
		names = append(names, fmt.Sprintf("%s%d", SubEdge, i+1))
	}
	for i := range s.Faces {
		names = append(names, fmt.Sprintf("%s%d", SubFace, i+1))
	}
	return names
}

// ParseSubElement splits a name such as "Face3" into its kind and
// zero-based index.
func ParseSubElement(name string) (SubElementKind, int, error) {
	for _, kind := range []SubElementKind{SubVertex, SubEdge, SubFace} {
		if !strings.HasPrefix(name, string(kind)) {
			continue
		}
		n, err := strconv.Atoi(strings.TrimPrefix(name, string(kind)))
		if err != nil || n < 1 {
			return "", 0, fmt.Errorf("invalid sub-element name %q", name)
		}
		return kind, n - 1, nil
	}
	return "", 0, fmt.Errorf("unknown sub-element %q", name)
}

// HasSubElement reports whether the shape contains the named sub-element.
func (s Shape) HasSubElement(name string) bool {
	kind, idx, err := ParseSubElement(name)
	if err != nil {
		return false
	}
	switch kind {
	case SubVertex:
		return idx < len(s.Vertices)
	case SubEdge:
		return idx < len(s.Edges) && s.Edges[idx].Start < len(s.Vertices) && s.Edges[idx].End < len(s.Vertices)
	case SubFace:
		return idx < len(s.Faces)
	}
	return false
}
