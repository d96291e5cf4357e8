package quiz

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"
)

const (
	exportSheet     = "Quiz"
	exportHeaderRow = 4
	valueColumn     = "#value"
)

// ExportXLSX writes q to a workbook at path for review. Top-level keys of
// object records become columns in first-seen order; non-object records go
// in a "#value" column.
func ExportXLSX(q Quiz, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}

	rows, columns, err := flattenQuestions(q.Questions)
	if err != nil {
		return err
	}

	cells := [][]any{
		{"quiz_id", q.ID},
		{"subject", q.Subject},
	}
	for i, row := range cells {
		if err := setRow(f, i+1, row); err != nil {
			return err
		}
	}

	header := make([]any, 0, len(columns)+1)
	header = append(header, "#")
	for _, c := range columns {
		header = append(header, c)
	}
	if err := setRow(f, exportHeaderRow, header); err != nil {
		return err
	}

	for i, row := range rows {
		values := make([]any, 0, len(columns)+1)
		values = append(values, i+1)
		for _, c := range columns {
			values = append(values, row[c])
		}
		if err := setRow(f, exportHeaderRow+1+i, values); err != nil {
			return err
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating export directory: %w", err)
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving workbook: %w", err)
	}
	return nil
}

func setRow(f *excelize.File, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(exportSheet, cell, &values); err != nil {
		return fmt.Errorf("writing row %d: %w", row, err)
	}
	return nil
}

func flattenQuestions(questions []json.RawMessage) ([]map[string]string, []string, error) {
	var columns []string
	seen := map[string]bool{}
	addColumn := func(c string) {
		if !seen[c] {
			seen[c] = true
			columns = append(columns, c)
		}
	}

	rows := make([]map[string]string, 0, len(questions))
	for i, raw := range questions {
		keys, fields, ok, err := objectFields(raw)
		if err != nil {
			return nil, nil, fmt.Errorf("question %d: %w", i+1, err)
		}
		if !ok {
			addColumn(valueColumn)
			rows = append(rows, map[string]string{valueColumn: cellText(raw)})
			continue
		}
		row := make(map[string]string, len(keys))
		for _, k := range keys {
			addColumn(k)
			row[k] = cellText(fields[k])
		}
		rows = append(rows, row)
	}
	return rows, columns, nil
}

// objectFields returns the keys of a JSON object in document order. ok is
// false when raw is not an object.
func objectFields(raw json.RawMessage) ([]string, map[string]json.RawMessage, bool, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, nil, false, nil
	}

	dec := json.NewDecoder(bytes.NewReader(trimmed))
	if _, err := dec.Token(); err != nil {
		return nil, nil, false, err
	}

	var keys []string
	fields := map[string]json.RawMessage{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, nil, false, err
		}
		key, _ := tok.(string)
		var v json.RawMessage
		if err := dec.Decode(&v); err != nil {
			return nil, nil, false, err
		}
		if _, dup := fields[key]; !dup {
			keys = append(keys, key)
		}
		fields[key] = v
	}
	return keys, fields, true, nil
}

func cellText(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return string(raw)
	}
	return buf.String()
}
