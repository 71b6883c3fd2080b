package document

import "github.com/piwi3910/AttachEdit/internal/model"

// SelectionObserver is notified about every pick added to the selection.
type SelectionObserver interface {
	AddSelection(docName, objName, subName string, pnt model.Vector)
}

// Selection is the application-wide selection of objects and sub-elements.
type Selection struct {
	items     []model.SelectionItem
	observers []SelectionObserver
}

// NewSelection returns an empty selection.
func NewSelection() *Selection {
	return &Selection{}
}

// AddObserver registers o. Registering the same observer twice is a no-op.
func (s *Selection) AddObserver(o SelectionObserver) {
	for _, existing := range s.observers {
		if existing == o {
			return
		}
	}
	s.observers = append(s.observers, o)
}

// RemoveObserver unregisters o.
func (s *Selection) RemoveObserver(o SelectionObserver) {
	for i, existing := range s.observers {
		if existing == o {
			s.observers = append(s.observers[:i], s.observers[i+1:]...)
			return
		}
	}
}

// ObserverCount returns the number of registered observers.
func (s *Selection) ObserverCount() int { return len(s.observers) }

// AddSelection selects objName (or one of its sub-elements) and notifies
// observers in registration order.
func (s *Selection) AddSelection(docName, objName, subName string, pnt model.Vector) {
	found := false
	for i := range s.items {
		if s.items[i].Object != objName {
			continue
		}
		found = true
		if subName != "" && !contains(s.items[i].SubElements, subName) {
			s.items[i].SubElements = append(s.items[i].SubElements, subName)
		}
	}
	if !found {
		item := model.SelectionItem{Object: objName}
		if subName != "" {
			item.SubElements = []string{subName}
		}
		s.items = append(s.items, item)
	}

	observers := append([]SelectionObserver(nil), s.observers...)
	for _, o := range observers {
		o.AddSelection(docName, objName, subName, pnt)
	}
}

// Clear empties the selection without notifying observers.
func (s *Selection) Clear() {
	s.items = nil
}

// SelectionEx returns the selected objects with their sub-elements.
func (s *Selection) SelectionEx() []model.SelectionItem {
	out := make([]model.SelectionItem, len(s.items))
	for i, it := range s.items {
		out[i] = model.SelectionItem{
			Object:      it.Object,
			SubElements: append([]string(nil), it.SubElements...),
		}
	}
	return out
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
