// Package table reads and writes the spreadsheets that feed and connect the
// two pipeline stages.
package table

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/renameio/v2"
	"github.com/xuri/excelize/v2"
)

// record is one data row addressed by header name.
type record struct {
	cols  map[string]int
	cells []string
	line  int
}

func (r record) get(name string) string {
	i, ok := r.cols[name]
	if !ok || i >= len(r.cells) {
		return ""
	}
	return strings.TrimSpace(r.cells[i])
}

func (r record) has(name string) bool {
	_, ok := r.cols[name]
	return ok
}

// readRecords loads the first sheet of path. Blank rows are skipped; the
// first row is the header.
func readRecords(path string, required ...string) ([]record, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return nil, fmt.Errorf("read rows of %s: %w", path, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%s: no header row", path)
	}

	cols := make(map[string]int, len(rows[0]))
	for i, h := range rows[0] {
		if h = strings.TrimSpace(h); h != "" {
			cols[h] = i
		}
	}
	for _, name := range required {
		if _, ok := cols[name]; !ok {
			return nil, fmt.Errorf("%s: missing column %q", path, name)
		}
	}

	out := make([]record, 0, len(rows)-1)
	for i, cells := range rows[1:] {
		if blank(cells) {
			continue
		}
		out = append(out, record{cols: cols, cells: cells, line: i + 2})
	}
	return out, nil
}

func blank(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// writeSheet stages a workbook in memory and renames it into place.
func writeSheet(path string, header []string, rows [][]any) error {
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)

	head := make([]any, len(header))
	for i, h := range header {
		head[i] = h
	}
	if err := setRow(f, sheet, 1, head); err != nil {
		return err
	}
	for i, row := range rows {
		if err := setRow(f, sheet, i+2, row); err != nil {
			return err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := renameio.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func setRow(f *excelize.File, sheet string, line int, row []any) error {
	cell, err := excelize.CoordinatesToCellName(1, line)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &row); err != nil {
		return fmt.Errorf("set row %d: %w", line, err)
	}
	return nil
}

// parseCount accepts "3" as well as spreadsheet floats like "3.0".
func parseCount(s string) (int, error) {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("not a number: %q", s)
	}
	return int(f), nil
}
