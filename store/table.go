package store

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// SheetName is the worksheet every table lives on.
const SheetName = "Sheet1"

// Table is a whole spreadsheet table held in memory: a header plus rows in
// file order. Every cell is text; callers coerce where they need to.
type Table struct {
	Columns []string
	Rows    [][]string
}

// LoadTable reads the table at path and validates its header against the
// expected column set. A missing file is ErrNotFound (callers treat it as an
// empty table); a file that exists but cannot be parsed, or whose header
// does not match, is ErrCorruptData.
func LoadTable(path string, columns []string) (*Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("%w: open %s: %v", ErrCorruptData, path, err)
	}
	defer f.Close()

	rows, err := f.GetRows(SheetName)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", ErrCorruptData, path, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: %s has no header row", ErrCorruptData, path)
	}

	header := rows[0]
	if len(header) != len(columns) {
		return nil, fmt.Errorf("%w: %s has %d columns, want %d",
			ErrCorruptData, path, len(header), len(columns))
	}
	for i, col := range columns {
		if strings.TrimSpace(header[i]) != col {
			return nil, fmt.Errorf("%w: %s column %d is %q, want %q",
				ErrCorruptData, path, i, header[i], col)
		}
	}

	table := &Table{Columns: columns}
	for _, row := range rows[1:] {
		// excelize drops trailing empty cells; re-pad to the schema width.
		padded := make([]string, len(columns))
		for i := range padded {
			if i < len(row) {
				padded[i] = strings.TrimSpace(row[i])
			}
		}
		table.Rows = append(table.Rows, padded)
	}
	return table, nil
}

// SaveTable overwrites the table at path. The workbook is written to a temp
// file in the same directory and renamed over the target, so a concurrent
// reader never sees a half-written table.
func SaveTable(path string, table *Table) error {
	f := excelize.NewFile()
	defer f.Close()

	for i, col := range table.Columns {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return fmt.Errorf("%w: header cell: %v", ErrIO, err)
		}
		if err := f.SetCellValue(SheetName, cell, col); err != nil {
			return fmt.Errorf("%w: write header: %v", ErrIO, err)
		}
	}
	for r, row := range table.Rows {
		for i, value := range row {
			cell, err := excelize.CoordinatesToCellName(i+1, r+2)
			if err != nil {
				return fmt.Errorf("%w: data cell: %v", ErrIO, err)
			}
			if err := f.SetCellStr(SheetName, cell, value); err != nil {
				return fmt.Errorf("%w: write row %d: %v", ErrIO, r, err)
			}
		}
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("%w: mkdir %s: %v", ErrIO, dir, err)
	}
	tmp, err := os.CreateTemp(dir, ".table-*.xlsx")
	if err != nil {
		return fmt.Errorf("%w: temp file: %v", ErrIO, err)
	}
	tmpName := tmp.Name()
	if _, err := f.WriteTo(tmp); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("%w: write %s: %v", ErrIO, path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: close temp: %v", ErrIO, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: replace %s: %v", ErrIO, path, err)
	}
	return nil
}
