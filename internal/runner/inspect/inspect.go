// Package inspect prints the attachment state of every object of a document.
package inspect

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"github.com/piwi3910/AttachEdit/internal/export"
	"github.com/piwi3910/AttachEdit/internal/model"
	"github.com/piwi3910/AttachEdit/internal/project"
)

// Inspect lists objects with their mode, references and status.
type Inspect struct {
	Path     string
	JSON     bool
	Decimals int
	// OnlyAttachable hides objects without attachment support.
	OnlyAttachable bool

	Out io.Writer
}

// entry is the JSON form of one row.
type entry struct {
	Name      string          `json:"name"`
	Label     string          `json:"label"`
	Type      string          `json:"type"`
	Mode      string          `json:"mode,omitempty"`
	Links     []string        `json:"links,omitempty"`
	Reverse   bool            `json:"reverse,omitempty"`
	Placement model.Placement `json:"placement"`
	Status    string          `json:"status"`
	InSync    bool            `json:"in_sync"`
}

func (i *Inspect) out() io.Writer {
	if i.Out == nil {
		return color.Output
	}
	return i.Out
}

func (i *Inspect) Do(ctx context.Context) error {
	doc, err := project.LoadDocument(i.Path)
	if err != nil {
		return err
	}
	var rows []export.Row
	for _, r := range export.CollectRows(doc) {
		if i.OnlyAttachable && !r.Attachable {
			continue
		}
		rows = append(rows, r)
	}

	if i.JSON {
		entries := make([]entry, len(rows))
		for k, r := range rows {
			entries[k] = entry{
				Name:      r.Name,
				Label:     r.Label,
				Type:      r.Type,
				Mode:      r.Mode,
				Links:     r.Links,
				Reverse:   r.Reverse,
				Placement: r.Placement,
				Status:    r.Status,
				InSync:    r.InSync,
			}
		}
		b, err := json.MarshalIndent(entries, "", "  ")
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintln(i.out(), string(b))
		return nil
	}

	title := color.New(color.Bold, color.Underline)
	faint := color.New(color.Faint)
	_, _ = title.Fprintln(i.out(), doc.Name())
	if len(rows) == 0 {
		_, _ = faint.Fprintln(i.out(), " none")
		return nil
	}

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = 40
	tbl.AddRow("NAME", "LABEL", "MODE", "REFERENCES", "FLIP", "POSITION", "STATUS")
	for _, r := range rows {
		mode, flip := "-", ""
		if r.Attachable {
			mode = r.ModeName
			if r.Reverse {
				flip = "yes"
			}
		}
		links := "-"
		if len(r.Links) > 0 {
			links = strings.Join(r.Links, " ")
		}
		tbl.AddRow(r.Name, r.Label, mode, links, flip, i.position(r.Placement), status(r))
	}
	_, _ = fmt.Fprintln(i.out(), tbl)

	attached := export.CountAttached(rows)
	_, _ = faint.Fprintf(i.out(), "%d objects, %d attached\n", len(rows), attached)
	return nil
}

func (i *Inspect) position(p model.Placement) string {
	return fmt.Sprintf("%s, %s, %s",
		model.FormatQuantity(p.Base.X, model.Length, i.Decimals),
		model.FormatQuantity(p.Base.Y, model.Length, i.Decimals),
		model.FormatQuantity(p.Base.Z, model.Length, i.Decimals))
}

func status(r export.Row) string {
	s := r.Status
	if !r.InSync {
		s += " (stale)"
	}
	switch {
	case r.Status == export.StatusAttached && r.InSync:
		return color.GreenString(s)
	case r.Status == export.StatusAttached, r.Status == export.StatusNotAttached:
		return color.YellowString(s)
	case r.Status == export.StatusFree:
		return color.New(color.Faint).Sprint(s)
	default:
		return color.RedString(s)
	}
}
