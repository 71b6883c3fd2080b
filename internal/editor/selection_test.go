package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/piwi3910/AttachEdit/internal/model"
)

func TestSelectionAsReferences(t *testing.T) {
	refs := SelectionAsReferences([]model.SelectionItem{
		{Object: "Box", SubElements: []string{"Face1", "Edge2"}},
		{Object: "Cylinder"},
		{Object: "Box", SubElements: []string{"Face1"}},
	})

	assert.Equal(t, []model.Reference{
		{Object: "Box", Sub: "Face1"},
		{Object: "Box", Sub: "Edge2"},
		{Object: "Cylinder"},
		{Object: "Box", Sub: "Face1"},
	}, refs)

	assert.Empty(t, SelectionAsReferences(nil))
}
