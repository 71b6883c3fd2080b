// Package importer reads document objects from CSV, Excel and DXF files.
// Spreadsheet columns are matched by header name, case-insensitively, with a
// positional fallback for files without a header row.
package importer

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/AttachEdit/internal/document"
	"github.com/piwi3910/AttachEdit/internal/engine"
	"github.com/piwi3910/AttachEdit/internal/model"
)

// DefaultType is the object type used when a row names none.
const DefaultType = "Part::Feature"

// ImportResult holds the results of an import operation.
type ImportResult struct {
	Objects  []*document.Object
	Errors   []string
	Warnings []string
}

// ColumnMapping maps semantic column roles to their indices in the data.
type ColumnMapping struct {
	Name    int
	Label   int
	Type    int
	X       int
	Y       int
	Z       int
	Yaw     int
	Pitch   int
	Roll    int
	Attach  int
	Mode    int
	Reverse int
}

func unmapped() ColumnMapping {
	return ColumnMapping{-1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1}
}

// headerAliases maps canonical column names to their accepted aliases (all lowercase).
var headerAliases = map[string][]string{
	"name":    {"name", "object", "id", "internal name"},
	"label":   {"label", "description", "desc", "title"},
	"type":    {"type", "kind", "class"},
	"x":       {"x", "pos x", "base x"},
	"y":       {"y", "pos y", "base y"},
	"z":       {"z", "pos z", "base z"},
	"yaw":     {"yaw", "rz", "rot z"},
	"pitch":   {"pitch", "ry", "rot y"},
	"roll":    {"roll", "rx", "rot x"},
	"attach":  {"attach", "attach to", "attachment", "references", "refs", "support"},
	"mode":    {"mode", "attachment mode", "map mode"},
	"reverse": {"reverse", "flip", "flipped"},
}

func (m *ColumnMapping) slot(role string) *int {
	switch role {
	case "name":
		return &m.Name
	case "label":
		return &m.Label
	case "type":
		return &m.Type
	case "x":
		return &m.X
	case "y":
		return &m.Y
	case "z":
		return &m.Z
	case "yaw":
		return &m.Yaw
	case "pitch":
		return &m.Pitch
	case "roll":
		return &m.Roll
	case "attach":
		return &m.Attach
	case "mode":
		return &m.Mode
	case "reverse":
		return &m.Reverse
	}
	return nil
}

// DetectCSVDelimiter reads the file content and determines the most likely CSV delimiter.
// It tries comma, semicolon, tab, and pipe. The delimiter that produces the most
// consistent (non-one) column count across lines wins.
func DetectCSVDelimiter(data []byte) rune {
	candidates := []rune{',', ';', '\t', '|'}
	bestDelimiter := ','
	bestScore := 0

	for _, delim := range candidates {
		reader := csv.NewReader(bytes.NewReader(data))
		reader.Comma = delim
		reader.LazyQuotes = true
		reader.FieldsPerRecord = -1

		records, err := reader.ReadAll()
		if err != nil || len(records) < 1 {
			continue
		}

		firstCols := len(records[0])
		if firstCols < 2 {
			continue
		}

		score := 0
		for _, row := range records {
			if len(row) == firstCols {
				score++
			}
		}

		weighted := score*10 + firstCols
		if weighted > bestScore {
			bestScore = weighted
			bestDelimiter = delim
		}
	}

	return bestDelimiter
}

// DetectColumns examines a header row and returns a ColumnMapping.
// Returns the mapping and true if a header was detected, or the positional
// mapping Name, X, Y, Z, Yaw, Pitch, Roll and false otherwise.
func DetectColumns(row []string) (ColumnMapping, bool) {
	mapping := unmapped()

	isHeader := false
	for i, cell := range row {
		normalized := strings.ToLower(strings.TrimSpace(cell))
		for role, aliases := range headerAliases {
			for _, alias := range aliases {
				if normalized != alias {
					continue
				}
				isHeader = true
				if s := mapping.slot(role); *s == -1 {
					*s = i
				}
			}
		}
	}

	if !isHeader {
		mapping = unmapped()
		mapping.Name, mapping.X, mapping.Y, mapping.Z = 0, 1, 2, 3
		mapping.Yaw, mapping.Pitch, mapping.Roll = 4, 5, 6
		return mapping, false
	}

	return mapping, true
}

// getCell safely retrieves a cell value from a row by column index.
// Returns empty string if the index is out of range or negative.
func getCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// anyObject accepts every object name. References are checked against the
// target document by AddTo.
type anyObject struct{}

func (anyObject) HasObject(string) bool { return true }

func parseBool(s string) (bool, bool) {
	switch strings.ToLower(s) {
	case "", "0", "false", "no", "n", "-":
		return false, true
	case "1", "true", "yes", "y", "x":
		return true, true
	}
	return false, false
}

func validMode(mode string) bool {
	for _, m := range engine.Modes() {
		if m == mode {
			return true
		}
	}
	return false
}

// parseRow extracts an object from a row using the given column mapping.
// Returns the object, any error message, and any warning messages.
func parseRow(row []string, mapping ColumnMapping, rowLabel string, count int) (*document.Object, string, []string) {
	var warnings []string

	name := getCell(row, mapping.Name)
	if name == "" {
		name = fmt.Sprintf("Object%03d", count+1)
	}
	if strings.Contains(name, ":") {
		return nil, fmt.Sprintf("%s: Invalid name '%s' (contains ':')", rowLabel, name), nil
	}

	typ := getCell(row, mapping.Type)
	if typ == "" {
		typ = DefaultType
	}
	obj := document.NewObject(name, getCell(row, mapping.Label), typ)

	var coords [6]float64
	fields := []struct {
		col  int
		kind model.QuantityKind
		what string
	}{
		{mapping.X, model.Length, "x"},
		{mapping.Y, model.Length, "y"},
		{mapping.Z, model.Length, "z"},
		{mapping.Yaw, model.Angle, "yaw"},
		{mapping.Pitch, model.Angle, "pitch"},
		{mapping.Roll, model.Angle, "roll"},
	}
	for i, f := range fields {
		s := getCell(row, f.col)
		if s == "" {
			continue
		}
		v, err := model.ParseQuantity(s, f.kind)
		if err != nil {
			return nil, fmt.Sprintf("%s: Invalid %s '%s'", rowLabel, f.what, s), nil
		}
		coords[i] = v
	}
	obj.Placement = model.NewPlacement(model.Vec(coords[0], coords[1], coords[2]), coords[3], coords[4], coords[5])

	attach := getCell(row, mapping.Attach)
	mode := getCell(row, mapping.Mode)
	if attach == "" && mode == "" {
		return obj, "", nil
	}

	refs, err := model.RefsFromLinks(strings.Fields(attach), anyObject{})
	if err != nil {
		return nil, fmt.Sprintf("%s: %v", rowLabel, err), nil
	}
	if len(refs) > 4 {
		warnings = append(warnings, fmt.Sprintf("%s: Only the first 4 of %d references are kept", rowLabel, len(refs)))
		refs = refs[:4]
	}
	if mode == "" {
		mode = model.ModeDeactivated
	} else if !validMode(mode) {
		warnings = append(warnings, fmt.Sprintf("%s: Unknown attachment mode '%s', defaulting to %s", rowLabel, mode, model.ModeDeactivated))
		mode = model.ModeDeactivated
	}
	reverse, ok := parseBool(getCell(row, mapping.Reverse))
	if !ok {
		warnings = append(warnings, fmt.Sprintf("%s: Unknown reverse flag '%s', defaulting to false", rowLabel, getCell(row, mapping.Reverse)))
	}

	obj.Attachable = true
	obj.Attachment = model.AttachParams{
		References:     refs,
		Mode:           mode,
		Reverse:        reverse,
		SuperPlacement: model.IdentityPlacement(),
	}
	return obj, "", warnings
}

// isEmptyRow returns true if the row has no meaningful content.
func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// ImportCSV imports objects from a CSV file.
// It automatically detects the delimiter and maps columns by header names.
func ImportCSV(path string) ImportResult {
	result := ImportResult{}

	data, err := os.ReadFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open file: %v", err))
		return result
	}

	if len(bytes.TrimSpace(data)) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	delimiter := DetectCSVDelimiter(data)
	if delimiter != ',' {
		delimName := map[rune]string{';': "semicolon", '\t': "tab", '|': "pipe"}[delimiter]
		result.Warnings = append(result.Warnings, fmt.Sprintf("Detected %s delimiter", delimName))
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = delimiter
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}

	return importFromRows(records, "Line", result.Warnings)
}

// ImportCSVFromReader imports objects from a CSV reader with a known delimiter.
func ImportCSVFromReader(reader io.Reader, delimiter rune) ImportResult {
	result := ImportResult{}

	csvReader := csv.NewReader(reader)
	csvReader.Comma = delimiter
	csvReader.LazyQuotes = true
	csvReader.FieldsPerRecord = -1

	records, err := csvReader.ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}

	return importFromRows(records, "Line", nil)
}

// ImportExcel imports objects from the first sheet of an Excel file.
func ImportExcel(path string) ImportResult {
	result := ImportResult{}

	f, err := excelize.OpenFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open Excel file: %v", err))
		return result
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		result.Errors = append(result.Errors, "Excel file has no sheets")
		return result
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read Excel data: %v", err))
		return result
	}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "Sheet is empty")
		return result
	}

	return importFromRows(rows, "Row", nil)
}

// importFromRows is the shared import logic for both CSV and Excel data.
func importFromRows(rows [][]string, rowPrefix string, initialWarnings []string) ImportResult {
	result := ImportResult{
		Warnings: initialWarnings,
	}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	mapping, hasHeader := DetectColumns(rows[0])
	startRow := 0
	if hasHeader {
		startRow = 1
		result.Warnings = append(result.Warnings, "Detected header row, skipping")
		if mapping.Name == -1 {
			result.Errors = append(result.Errors, "Required columns not found in header: Name")
			return result
		}
	} else if len(rows[0]) >= 2 {
		if _, err := strconv.ParseFloat(strings.TrimSpace(rows[0][1]), 64); err != nil {
			// unrecognized header: skip it, keep positional mapping
			startRow = 1
			result.Warnings = append(result.Warnings, "Detected header row, skipping")
		}
	}

	seen := make(map[string]bool)
	for i := startRow; i < len(rows); i++ {
		row := rows[i]
		if isEmptyRow(row) {
			continue
		}

		rowLabel := fmt.Sprintf("%s %d", rowPrefix, i+1)
		obj, errMsg, warnings := parseRow(row, mapping, rowLabel, len(result.Objects))
		if errMsg != "" {
			result.Errors = append(result.Errors, errMsg)
			continue
		}
		if seen[obj.Name] {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: Duplicate name '%s'", rowLabel, obj.Name))
			continue
		}
		seen[obj.Name] = true
		result.Warnings = append(result.Warnings, warnings...)
		result.Objects = append(result.Objects, obj)
	}

	if len(result.Objects) == 0 && len(result.Errors) == 0 {
		result.Errors = append(result.Errors, "No data rows found")
	}
	return result
}

// AddTo adds the imported objects to doc. Objects whose name is taken are
// skipped. References that do not resolve in doc after the import are
// returned as warnings; the objects keep them so the editor reports the
// broken link.
func (r ImportResult) AddTo(doc *document.Document) (warnings []string, err error) {
	var errs []error
	for _, o := range r.Objects {
		if e := doc.AddObject(o); e != nil {
			errs = append(errs, e)
		}
	}
	for _, o := range r.Objects {
		if !doc.HasObject(o.Name) {
			continue
		}
		for _, ref := range o.Attachment.References {
			target, ok := doc.Object(ref.Object)
			switch {
			case !ok:
				warnings = append(warnings, fmt.Sprintf("%s: No object named %s", o.Name, ref.Object))
			case ref.Sub != "" && !target.Shape.HasSubElement(ref.Sub):
				warnings = append(warnings, fmt.Sprintf("%s: %s has no sub-element %s", o.Name, ref.Object, ref.Sub))
			}
		}
	}
	return warnings, errors.Join(errs...)
}
