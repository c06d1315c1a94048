package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"

	"github.com/xuri/excelize/v2"
	"gopkg.in/yaml.v3"

	"github.com/joseph-ayodele/resume-extractor/internal/entity"
)

// SheetName is the worksheet holding the records.
const SheetName = "Resumes"

var colWidths = map[entity.Column]float64{
	entity.ColName:           24,
	entity.ColPhoneNumber:    18,
	entity.ColEmailID:        32,
	entity.ColJobTitle:       28,
	entity.ColCurrentCompany: 28,
	entity.ColSkills:         60,
	entity.ColLocation:       20,
}

// Render serializes records in the given format. CSV and XLSX carry the same
// header row and cell text.
func Render(f Format, records []entity.ResumeRecord, cols []entity.Column) ([]byte, error) {
	switch f {
	case FormatCSV:
		return RenderCSV(records, cols)
	case FormatXLSX:
		return RenderXLSX(records, cols)
	case FormatJSON:
		return json.MarshalIndent(documents(records, cols), "", "  ")
	case FormatYAML:
		return yaml.Marshal(documents(records, cols))
	}
	return nil, fmt.Errorf("unknown output format %q", f)
}

func RenderCSV(records []entity.ResumeRecord, cols []entity.Column) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(entity.Headers(cols)); err != nil {
		return nil, err
	}
	for _, r := range records {
		if err := w.Write(r.Values(cols)); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("csv write: %w", err)
	}
	return buf.Bytes(), nil
}

// RenderXLSX returns a workbook with a single "Resumes" sheet.
func RenderXLSX(records []entity.ResumeRecord, cols []entity.Column) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return nil, err
	}

	for i, h := range entity.Headers(cols) {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(SheetName, cell, h); err != nil {
			return nil, err
		}
	}
	for row, r := range records {
		for i, v := range r.Values(cols) {
			cell, _ := excelize.CoordinatesToCellName(i+1, row+2)
			// Strings only, so phone numbers keep their punctuation and leading zeros.
			if err := f.SetCellStr(SheetName, cell, v); err != nil {
				return nil, err
			}
		}
	}

	for i, c := range cols {
		name, _ := excelize.ColumnNumberToName(i + 1)
		w, ok := colWidths[c]
		if !ok {
			w = 20
		}
		_ = f.SetColWidth(SheetName, name, name, w)
	}
	if len(cols) > 0 {
		_ = f.SetPanes(SheetName, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"})
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}
	return buf.Bytes(), nil
}

// documents shapes records for JSON and YAML: snake_case keys, skills as a
// list, the null-marker for anything not found.
func documents(records []entity.ResumeRecord, cols []entity.Column) []map[string]any {
	out := make([]map[string]any, len(records))
	for i, r := range records {
		doc := make(map[string]any, len(cols))
		for _, c := range cols {
			if c == entity.ColSkills && len(r.Skills) > 0 {
				doc[c.Key()] = r.Skills
				continue
			}
			doc[c.Key()] = r.Value(c)
		}
		out[i] = doc
	}
	return out
}
