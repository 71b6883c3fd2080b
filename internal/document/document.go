// Package document provides the in-memory CAD document the attachment
// editor works on: objects with placements and local geometry, a dependency
// graph, transactions with undo/redo, a selection service and temporary
// visibility changes.
package document

import (
	"fmt"
	"strings"

	"github.com/piwi3910/AttachEdit/internal/model"
)

// Document is an ordered collection of uniquely named objects.
// It is not safe for concurrent use; the GUI drives it from one goroutine.
type Document struct {
	name    string
	objects []*Object
	byName  map[string]*Object

	history  *History
	pending  *Snapshot
	revision int
}

// New creates an empty document.
func New(name string) *Document {
	return &Document{
		name:    name,
		byName:  make(map[string]*Object),
		history: NewHistory(),
	}
}

// Name returns the document name.
func (d *Document) Name() string { return d.name }

// Revision increases every time an object is modified through the document.
func (d *Document) Revision() int { return d.revision }

// History exposes the undo stack for menus.
func (d *Document) History() *History { return d.history }

// AddObject appends o to the document. Names must be unique and must not
// contain a colon, which separates object and sub-element in links.
func (d *Document) AddObject(o *Object) error {
	if o.Name == "" {
		return fmt.Errorf("object name must not be empty")
	}
	if strings.Contains(o.Name, ":") {
		return fmt.Errorf("object name %q must not contain ':'", o.Name)
	}
	if _, exists := d.byName[o.Name]; exists {
		return fmt.Errorf("object %q already exists", o.Name)
	}
	d.objects = append(d.objects, o)
	d.byName[o.Name] = o
	d.revision++
	return nil
}

// UniqueName returns base, or base followed by a three digit counter if
// base is taken.
func (d *Document) UniqueName(base string) string {
	base = strings.ReplaceAll(base, ":", "_")
	if _, taken := d.byName[base]; !taken && base != "" {
		return base
	}
	for i := 1; ; i++ {
		candidate := fmt.Sprintf("%s%03d", base, i)
		if _, taken := d.byName[candidate]; !taken {
			return candidate
		}
	}
}

// RemoveObject deletes the named object. Objects that still depend on it
// keep their dangling links; suggestions then report them as broken.
func (d *Document) RemoveObject(name string) error {
	if _, ok := d.byName[name]; !ok {
		return fmt.Errorf("no object named %s", name)
	}
	delete(d.byName, name)
	for i, o := range d.objects {
		if o.Name == name {
			d.objects = append(d.objects[:i], d.objects[i+1:]...)
			break
		}
	}
	d.revision++
	return nil
}

// Object looks an object up by name.
func (d *Document) Object(name string) (*Object, bool) {
	o, ok := d.byName[name]
	return o, ok
}

// HasObject reports whether an object with that name exists.
func (d *Document) HasObject(name string) bool {
	_, ok := d.byName[name]
	return ok
}

// Objects returns the objects in document order.
func (d *Document) Objects() []*Object {
	out := make([]*Object, len(d.objects))
	copy(out, d.objects)
	return out
}

// SetPlacement moves an object and marks it touched.
func (d *Document) SetPlacement(name string, plm model.Placement) {
	o, ok := d.byName[name]
	if !ok {
		return
	}
	o.Placement = plm
	o.Touched = true
	d.revision++
}

// SetVisible shows or hides an object.
func (d *Document) SetVisible(name string, visible bool) {
	if o, ok := d.byName[name]; ok {
		o.Visible = visible
	}
}

// InList returns the objects that directly depend on name.
func (d *Document) InList(name string) []string {
	var out []string
	for _, o := range d.objects {
		for _, dep := range o.OutList() {
			if dep == name {
				out = append(out, o.Name)
				break
			}
		}
	}
	return out
}

// AllDependent returns every object that depends on name, directly or
// transitively, in breadth-first order. The object itself is not included
// unless it is part of a dependency cycle.
func (d *Document) AllDependent(name string) []string {
	seen := map[string]bool{}
	var out []string
	queue := []string{name}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, dep := range d.InList(cur) {
			if seen[dep] {
				continue
			}
			seen[dep] = true
			out = append(out, dep)
			queue = append(queue, dep)
		}
	}
	return out
}

// OpenTransaction starts recording changes under label. An already open
// transaction is committed first.
func (d *Document) OpenTransaction(label string) {
	if d.pending != nil {
		d.CommitTransaction()
	}
	snap := MakeSnapshot(d.objects, label)
	d.pending = &snap
}

// HasPendingTransaction reports whether a transaction is open.
func (d *Document) HasPendingTransaction() bool { return d.pending != nil }

// CommitTransaction keeps the changes made since OpenTransaction and makes
// them undoable.
func (d *Document) CommitTransaction() {
	if d.pending == nil {
		return
	}
	d.history.Push(*d.pending)
	d.pending = nil
}

// AbortTransaction reverts every change made since OpenTransaction.
func (d *Document) AbortTransaction() {
	if d.pending == nil {
		return
	}
	d.restore(*d.pending)
	d.pending = nil
}

// Undo reverts the last committed transaction.
func (d *Document) Undo() bool {
	if d.pending != nil {
		return false
	}
	snap, ok := d.history.Undo(MakeSnapshot(d.objects, ""))
	if !ok {
		return false
	}
	d.restore(snap)
	return true
}

// Redo re-applies the last undone transaction.
func (d *Document) Redo() bool {
	if d.pending != nil {
		return false
	}
	snap, ok := d.history.Redo(MakeSnapshot(d.objects, ""))
	if !ok {
		return false
	}
	d.restore(snap)
	return true
}

// restore replaces the document content with snap. Objects that survive
// keep their identity so callers holding *Object see restored values.
func (d *Document) restore(snap Snapshot) {
	objects := make([]*Object, 0, len(snap.Objects))
	byName := make(map[string]*Object, len(snap.Objects))
	for _, saved := range snap.Objects {
		o, ok := d.byName[saved.Name]
		if ok {
			*o = *saved.clone()
		} else {
			o = saved.clone()
		}
		objects = append(objects, o)
		byName[o.Name] = o
	}
	d.objects = objects
	d.byName = byName
	d.revision++
}
