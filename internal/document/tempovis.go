package document

// TempoVis makes temporary visibility changes to a document and reverts
// them on Restore.
type TempoVis struct {
	doc   *Document
	saved map[string]bool
	order []string
}

// NewTempoVis starts tracking visibility changes on doc.
func NewTempoVis(doc *Document) *TempoVis {
	return &TempoVis{doc: doc, saved: make(map[string]bool)}
}

func (tv *TempoVis) set(name string, visible bool) {
	o, ok := tv.doc.Object(name)
	if !ok {
		return
	}
	if _, recorded := tv.saved[name]; !recorded {
		tv.saved[name] = o.Visible
		tv.order = append(tv.order, name)
	}
	tv.doc.SetVisible(name, visible)
}

// HideAllDependent hides every object depending on name.
func (tv *TempoVis) HideAllDependent(name string) {
	for _, dep := range tv.doc.AllDependent(name) {
		tv.set(dep, false)
	}
}

// Show makes the named objects visible.
func (tv *TempoVis) Show(names ...string) {
	for _, n := range names {
		tv.set(n, true)
	}
}

// Hide makes the named objects invisible.
func (tv *TempoVis) Hide(names ...string) {
	for _, n := range names {
		tv.set(n, false)
	}
}

// Restore reverts every change made through tv. It is safe to call more
// than once.
func (tv *TempoVis) Restore() {
	for _, name := range tv.order {
		tv.doc.SetVisible(name, tv.saved[name])
	}
	tv.saved = make(map[string]bool)
	tv.order = nil
}
