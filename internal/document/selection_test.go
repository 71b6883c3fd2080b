package document

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/piwi3910/AttachEdit/internal/model"
)

type pick struct {
	obj, sub string
}

type recordingObserver struct {
	picks []pick
}

func (r *recordingObserver) AddSelection(_, objName, subName string, _ model.Vector) {
	r.picks = append(r.picks, pick{objName, subName})
}

func TestSelectionMergesSubElements(t *testing.T) {
	s := NewSelection()
	s.AddSelection("Doc", "Box", "Face1", model.Vector{})
	s.AddSelection("Doc", "Box", "Edge3", model.Vector{})
	s.AddSelection("Doc", "Box", "Face1", model.Vector{})
	s.AddSelection("Doc", "Cylinder", "", model.Vector{})

	got := s.SelectionEx()
	assert.Equal(t, []model.SelectionItem{
		{Object: "Box", SubElements: []string{"Face1", "Edge3"}},
		{Object: "Cylinder", SubElements: nil},
	}, got)

	got[0].SubElements[0] = "Vertex1"
	assert.Equal(t, "Face1", s.SelectionEx()[0].SubElements[0], "SelectionEx returns a copy")

	s.Clear()
	assert.Empty(t, s.SelectionEx())
}

func TestSelectionObservers(t *testing.T) {
	s := NewSelection()
	a := &recordingObserver{}
	b := &recordingObserver{}

	s.AddObserver(a)
	s.AddObserver(a)
	s.AddObserver(b)
	assert.Equal(t, 2, s.ObserverCount())

	s.AddSelection("Doc", "Box", "Vertex2", model.Vector{})
	assert.Equal(t, []pick{{"Box", "Vertex2"}}, a.picks)
	assert.Equal(t, []pick{{"Box", "Vertex2"}}, b.picks)

	s.RemoveObserver(a)
	s.AddSelection("Doc", "Box", "", model.Vector{})
	assert.Len(t, a.picks, 1)
	assert.Len(t, b.picks, 2)

	s.RemoveObserver(a)
	assert.Equal(t, 1, s.ObserverCount())
}

// selfRemovingObserver unsubscribes while being notified.
type selfRemovingObserver struct {
	sel   *Selection
	calls int
}

func (o *selfRemovingObserver) AddSelection(string, string, string, model.Vector) {
	o.calls++
	o.sel.RemoveObserver(o)
}

func TestSelectionObserverMayUnsubscribeDuringNotify(t *testing.T) {
	s := NewSelection()
	first := &selfRemovingObserver{sel: s}
	second := &recordingObserver{}
	s.AddObserver(first)
	s.AddObserver(second)

	s.AddSelection("Doc", "Box", "", model.Vector{})

	assert.Equal(t, 1, first.calls)
	assert.Len(t, second.picks, 1)
	assert.Equal(t, 1, s.ObserverCount())
}
