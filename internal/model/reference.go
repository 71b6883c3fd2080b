package model

import (
	"errors"
	"fmt"
	"strings"
)

// Reference points at a whole object (Sub == "") or one of its sub-elements.
type Reference struct {
	Object string `json:"object"`
	Sub    string `json:"sub,omitempty"`
}

func (r Reference) String() string {
	return EncodeLink(r.Object, r.Sub)
}

// AttachParams are the attachment parameters stored on an attachable object.
type AttachParams struct {
	References     []Reference `json:"references"`
	Mode           string      `json:"mode"`
	Reverse        bool        `json:"reverse"`
	SuperPlacement Placement   `json:"super_placement"`
}

// DefaultAttachParams returns parameters for an object that is not attached
// to anything yet.
func DefaultAttachParams() AttachParams {
	return AttachParams{
		Mode:           ModeDeactivated,
		SuperPlacement: IdentityPlacement(),
	}
}

// Clone returns a copy that does not share the references slice.
func (p AttachParams) Clone() AttachParams {
	cp := p
	if p.References != nil {
		cp.References = make([]Reference, len(p.References))
		copy(cp.References, p.References)
	}
	return cp
}

// SelectionItem is one selected object with its selected sub-elements.
type SelectionItem struct {
	Object      string
	SubElements []string
}

// ObjectLookup resolves object names within a document.
type ObjectLookup interface {
	HasObject(name string) bool
}

var (
	// ErrAmbiguousLink is returned for link text with more than one colon.
	ErrAmbiguousLink = errors.New("failed to parse link (more than one colon encountered)")
	// ErrNoObject is returned when the object part of a link does not exist.
	ErrNoObject = errors.New("no such object")
)

// LinkError describes link text that could not be turned into a Reference.
type LinkError struct {
	Text   string
	Object string
	Err    error
}

func (e *LinkError) Error() string {
	if errors.Is(e.Err, ErrNoObject) {
		return fmt.Sprintf("No object named %s", e.Object)
	}
	return fmt.Sprintf("Failed to parse link %q (more than one colon encountered)", e.Text)
}

func (e *LinkError) Unwrap() error { return e.Err }

// EncodeLink formats a reference as "Object" or "Object:Sub".
func EncodeLink(object, sub string) string {
	if sub == "" {
		return object
	}
	return object + ":" + sub
}

// DecodeLink parses link text. Empty text yields ok == false and no error.
func DecodeLink(text string, lookup ObjectLookup) (Reference, bool, error) {
	if text == "" {
		return Reference{}, false, nil
	}
	pieces := strings.Split(text, ":")
	if len(pieces) > 2 {
		return Reference{}, false, &LinkError{Text: text, Object: pieces[0], Err: ErrAmbiguousLink}
	}
	if !lookup.HasObject(pieces[0]) {
		return Reference{}, false, &LinkError{Text: text, Object: pieces[0], Err: ErrNoObject}
	}
	ref := Reference{Object: pieces[0]}
	if len(pieces) == 2 {
		ref.Sub = pieces[1]
	}
	return ref, true, nil
}

// LinksFromRefs formats every reference as link text.
func LinksFromRefs(refs []Reference) []string {
	out := make([]string, len(refs))
	for i, r := range refs {
		out[i] = EncodeLink(r.Object, r.Sub)
	}
	return out
}

// RefsFromLinks parses link text, skipping empty entries. The first
// malformed entry aborts the conversion.
func RefsFromLinks(links []string, lookup ObjectLookup) ([]Reference, error) {
	refs := make([]Reference, 0, len(links))
	for _, l := range links {
		ref, ok, err := DecodeLink(l, lookup)
		if err != nil {
			return nil, err
		}
		if ok {
			refs = append(refs, ref)
		}
	}
	return refs, nil
}
