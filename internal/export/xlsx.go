package export

import (
	"fmt"
	"path/filepath"

	"github.com/xuri/excelize/v2"
)

const defaultSheet = "Sheet1"

// writeWorkbook writes all tables into one workbook, one sheet per table.
func writeWorkbook(dir, stamp string, snap *Snapshot) (string, error) {
	f := excelize.NewFile()
	defer f.Close()

	for i, t := range snap.tables() {
		if i == 0 {
			if err := f.SetSheetName(defaultSheet, t.title); err != nil {
				return "", fmt.Errorf("rename sheet: %w", err)
			}
		} else if _, err := f.NewSheet(t.title); err != nil {
			return "", fmt.Errorf("create sheet %s: %w", t.title, err)
		}

		if err := fillSheet(f, t); err != nil {
			return "", err
		}
	}
	f.SetActiveSheet(0)

	path := filepath.Join(dir, fileName("coopledger", stamp, "xlsx"))
	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("save workbook: %w", err)
	}
	return path, nil
}

func fillSheet(f *excelize.File, t table) error {
	if err := f.SetSheetRow(t.title, "A1", &t.headers); err != nil {
		return fmt.Errorf("%s header: %w", t.title, err)
	}

	for i, row := range t.rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(t.title, cell, &row); err != nil {
			return fmt.Errorf("%s row %d: %w", t.title, i+2, err)
		}
	}

	last, err := excelize.ColumnNumberToName(len(t.headers))
	if err != nil {
		return err
	}
	return f.SetColWidth(t.title, "A", last, 16)
}
