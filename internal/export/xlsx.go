package export

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/AttachEdit/internal/document"
)

// Sheet names written by ExportXLSX.
const (
	SheetObjects = "Objects"
	SheetStatus  = "Status"
)

// objectHeaders match the column names the importer recognizes.
var objectHeaders = []string{"Name", "Label", "Type", "X", "Y", "Z", "Yaw", "Pitch", "Roll", "Attach", "Mode", "Reverse"}

// ExportXLSX writes the objects of doc to a workbook. The Objects sheet can
// be imported again; the Status sheet lists the evaluated attachments.
func ExportXLSX(path string, doc *document.Document) error {
	rows := CollectRows(doc)
	if len(rows) == 0 {
		return fmt.Errorf("no objects to export")
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetObjects); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}
	if _, err := f.NewSheet(SheetStatus); err != nil {
		return fmt.Errorf("failed to add sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E6E6E6"}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("failed to create style: %w", err)
	}

	if err := writeRow(f, SheetObjects, 1, toCells(objectHeaders)); err != nil {
		return err
	}
	for i, r := range rows {
		yaw, pitch, roll := r.Placement.Rotation.ToEuler()
		cells := []interface{}{
			r.Name, r.Label, r.Type,
			r.Placement.Base.X, r.Placement.Base.Y, r.Placement.Base.Z,
			yaw, pitch, roll,
		}
		if r.Attachable {
			reverse := "no"
			if r.Reverse {
				reverse = "yes"
			}
			cells = append(cells, strings.Join(r.Links, " "), r.Mode, reverse)
		}
		if err := writeRow(f, SheetObjects, i+2, cells); err != nil {
			return err
		}
	}

	statusHeaders := []string{"Name", "Mode", "References", "Status", "In sync"}
	if err := writeRow(f, SheetStatus, 1, toCells(statusHeaders)); err != nil {
		return err
	}
	for i, r := range rows {
		inSync := "yes"
		if !r.InSync {
			inSync = "no"
		}
		cells := []interface{}{r.Name, r.ModeName, strings.Join(r.Links, ", "), r.Status, inSync}
		if err := writeRow(f, SheetStatus, i+2, cells); err != nil {
			return err
		}
	}

	for sheet, n := range map[string]int{SheetObjects: len(objectHeaders), SheetStatus: len(statusHeaders)} {
		last, _ := excelize.CoordinatesToCellName(n, 1)
		if err := f.SetCellStyle(sheet, "A1", last, headerStyle); err != nil {
			return fmt.Errorf("failed to style header: %w", err)
		}
	}

	return f.SaveAs(path)
}

func toCells(s []string) []interface{} {
	out := make([]interface{}, len(s))
	for i, v := range s {
		out[i] = v
	}
	return out
}

func writeRow(f *excelize.File, sheet string, row int, cells []interface{}) error {
	start, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, start, &cells); err != nil {
		return fmt.Errorf("failed to write row %d of %s: %w", row, sheet, err)
	}
	return nil
}
