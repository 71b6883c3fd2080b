// Package export writes attachment reports, QR labels and spreadsheets for
// the objects of a document.
package export

import (
	"fmt"

	"github.com/piwi3910/AttachEdit/internal/document"
	"github.com/piwi3910/AttachEdit/internal/engine"
	"github.com/piwi3910/AttachEdit/internal/model"
)

// Attachment status values of a Row.
const (
	StatusAttached    = "Attached"
	StatusNotAttached = "Not attached"
	StatusFree        = "Not attachable"
)

// Row summarizes one object and its attachment.
type Row struct {
	Name       string
	Label      string
	Type       string
	Attachable bool
	Mode       string
	ModeName   string
	Links      []string
	Reverse    bool
	Placement  model.Placement
	Status     string
	// InSync is false when the stored placement differs from the one the
	// attachment computes.
	InSync bool
}

// CollectRows evaluates the attachment of every object of doc.
func CollectRows(doc *document.Document) []Row {
	att := engine.New(doc)
	var rows []Row
	for _, o := range doc.Objects() {
		r := Row{
			Name:      o.Name,
			Label:     o.Label,
			Type:      o.Type,
			Placement: o.Placement,
			Status:    StatusFree,
			InSync:    true,
		}
		if o.Attachable {
			att.ReadParametersFromFeature(o)
			params := att.Parameters()
			r.Attachable = true
			r.Mode = params.Mode
			r.ModeName = att.ModeInfo(params.Mode).UserFriendlyName
			r.Links = model.LinksFromRefs(params.References)
			r.Reverse = params.Reverse

			plm, ok, err := att.CalculateAttachedPlacement(o.Placement)
			switch {
			case err != nil:
				r.Status = fmt.Sprintf("Error: %s", err)
			case !ok:
				r.Status = StatusNotAttached
			default:
				r.Status = StatusAttached
				r.InSync = model.PlacementsFuzzyEqual(plm, o.Placement)
			}
		}
		rows = append(rows, r)
	}
	return rows
}

// CountAttached returns the number of rows with StatusAttached.
func CountAttached(rows []Row) int {
	n := 0
	for _, r := range rows {
		if r.Status == StatusAttached {
			n++
		}
	}
	return n
}
