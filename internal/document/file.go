package document

import (
	"fmt"

	"github.com/piwi3910/AttachEdit/internal/model"
)

// FileVersion is written into every saved document.
const FileVersion = "1.0.0"

// File is the serialized form of a document.
type File struct {
	Version string    `json:"version"`
	Name    string    `json:"name"`
	Objects []*Object `json:"objects"`
}

// ToFile returns a deep copy of the document ready for encoding.
func (d *Document) ToFile() File {
	snap := MakeSnapshot(d.objects, "")
	return File{Version: FileVersion, Name: d.name, Objects: snap.Objects}
}

// FromFile builds a document from its serialized form.
func FromFile(f File) (*Document, error) {
	if f.Version == "" {
		return nil, fmt.Errorf("invalid document: missing version field")
	}
	d := New(f.Name)
	for _, o := range f.Objects {
		if o == nil {
			continue
		}
		if o.Attachment.Mode == "" {
			o.Attachment.Mode = model.ModeDeactivated
		}
		if err := d.AddObject(o.clone()); err != nil {
			return nil, fmt.Errorf("invalid document: %w", err)
		}
	}
	return d, nil
}
