package editor

import "github.com/piwi3910/AttachEdit/internal/model"

// SelectionAsReferences flattens a selection into references: one per
// selected sub-element, or one whole-object reference for objects selected
// without sub-elements.
func SelectionAsReferences(items []model.SelectionItem) []model.Reference {
	var refs []model.Reference
	for _, it := range items {
		for _, sub := range it.SubElements {
			refs = append(refs, model.Reference{Object: it.Object, Sub: sub})
		}
		if len(it.SubElements) == 0 {
			refs = append(refs, model.Reference{Object: it.Object})
		}
	}
	return refs
}
