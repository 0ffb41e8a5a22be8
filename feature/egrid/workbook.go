package egrid

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// sheet is one eGRID worksheet in tabular form. eGRID sheets carry two
// header rows: descriptive field names first, stable column codes second,
// with data starting on the third row.
type sheet struct {
	fields []string
	codes  []string
	rows   [][]string
}

// sheetName joins a sheet prefix with the two-digit year suffix eGRID uses,
// e.g. "PLNT" and "2018" become "PLNT18".
func sheetName(prefix, year string) string {
	return prefix + year[2:]
}

// readSheet loads one worksheet from the workbook at path. Header cells lose
// their embedded line breaks so lookups match across vintages.
func readSheet(path, prefix, year string) (*sheet, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening workbook %s: %w", path, err)
	}
	defer f.Close()

	name := sheetName(prefix, year)
	rows, err := f.GetRows(name)
	if err != nil {
		return nil, fmt.Errorf("reading sheet %s of %s: %w", name, path, err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("sheet %s of %s has no header rows", name, path)
	}

	s := &sheet{
		fields: make([]string, len(rows[0])),
		codes:  make([]string, len(rows[1])),
		rows:   rows[2:],
	}
	for i, h := range rows[0] {
		s.fields[i] = cleanHeader(h)
	}
	for i, h := range rows[1] {
		s.codes[i] = cleanHeader(h)
	}
	return s, nil
}

// cleanHeader collapses line breaks in a header cell to single spaces.
func cleanHeader(h string) string {
	h = strings.ReplaceAll(h, "\r\n", " ")
	h = strings.ReplaceAll(h, "\n", " ")
	return strings.TrimSpace(h)
}

// columnByCode returns the index of the column with the given code.
func (s *sheet) columnByCode(code string) (int, bool) {
	for i, c := range s.codes {
		if c == code {
			return i, true
		}
	}
	return 0, false
}

// cell returns the value of column i in row, tolerating the short rows
// excelize produces when trailing cells are empty.
func (s *sheet) cell(row []string, i int) string {
	if i < len(row) {
		return strings.TrimSpace(row[i])
	}
	return ""
}
