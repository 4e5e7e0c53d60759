// Package xlsx renders placement plans into .xlsx workbooks and reads them back.
package xlsx

import (
	"fmt"
	"os"

	"github.com/xuri/excelize/v2"
)

// Merge is a merged range and the value stored in its top-left cell.
type Merge struct {
	Start string `json:"start"`
	End   string `json:"end"`
	Value string `json:"value"`
}

// Sheet represents a single worksheet's data.
type Sheet struct {
	Name   string     `json:"name"`
	Rows   [][]string `json:"rows"`
	Merges []Merge    `json:"merges"`
}

// Workbook represents a parsed Excel file with all its sheets.
type Workbook struct {
	Sheets []Sheet `json:"sheets"`
}

// ReadFile reads an .xlsx file and returns its values and merged ranges.
func ReadFile(path string) (*Workbook, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("file not found: %s: check that the path is correct", path)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not open %s (is this a valid .xlsx file?): %w", path, err)
	}
	defer f.Close()

	wb := &Workbook{}
	for _, name := range f.GetSheetList() {
		rows, err := f.GetRows(name)
		if err != nil {
			return nil, fmt.Errorf("could not read sheet %q: %w", name, err)
		}

		merged, err := f.GetMergeCells(name)
		if err != nil {
			return nil, fmt.Errorf("could not read merged cells of %q: %w", name, err)
		}

		sheet := Sheet{Name: name, Rows: rows}
		for _, m := range merged {
			sheet.Merges = append(sheet.Merges, Merge{
				Start: m.GetStartAxis(),
				End:   m.GetEndAxis(),
				Value: m.GetCellValue(),
			})
		}
		wb.Sheets = append(wb.Sheets, sheet)
	}

	return wb, nil
}

// GetSheet returns a specific sheet by name. Returns an error if the sheet is not found.
func (wb *Workbook) GetSheet(name string) (*Sheet, error) {
	for i := range wb.Sheets {
		if wb.Sheets[i].Name == name {
			return &wb.Sheets[i], nil
		}
	}

	available := make([]string, len(wb.Sheets))
	for i, s := range wb.Sheets {
		available[i] = s.Name
	}
	return nil, fmt.Errorf("sheet %q not found (available sheets: %v)", name, available)
}

// Cell returns the value at a 0-based row and column, or "" when out of range.
func (s *Sheet) Cell(row, col int) string {
	if row < 0 || row >= len(s.Rows) {
		return ""
	}
	if col < 0 || col >= len(s.Rows[row]) {
		return ""
	}
	return s.Rows[row][col]
}

// FindMerge returns the merged range starting at the given A1 reference.
func (s *Sheet) FindMerge(start string) (Merge, bool) {
	for _, m := range s.Merges {
		if m.Start == start {
			return m, true
		}
	}
	return Merge{}, false
}
