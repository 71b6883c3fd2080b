package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSubElement(t *testing.T) {
	kind, idx, err := ParseSubElement("Face3")
	require.NoError(t, err)
	assert.Equal(t, SubFace, kind)
	assert.Equal(t, 2, idx)

	_, _, err = ParseSubElement("Face0")
	assert.Error(t, err)

	_, _, err = ParseSubElement("Solid1")
	assert.Error(t, err)
}

func TestShapeSubElements(t *testing.T) {
	s := Shape{
		Vertices: []Vector{Vec(0, 0, 0), Vec(1, 0, 0)},
		Edges:    []Edge{{Start: 0, End: 1}},
		Faces:    []Face{{Origin: Vec(0, 0, 0), Normal: Vec(0, 0, 1)}},
	}
	assert.Equal(t, []string{"Vertex1", "Vertex2", "Edge1", "Face1"}, s.SubElementNames())
	assert.True(t, s.HasSubElement("Vertex2"))
	assert.True(t, s.HasSubElement("Edge1"))
	assert.False(t, s.HasSubElement("Vertex3"))
	assert.False(t, s.HasSubElement("Face2"))
	assert.False(t, s.HasSubElement(""))
}
