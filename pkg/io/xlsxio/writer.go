// Package xlsxio writes frames as Excel workbooks.
package xlsxio

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	j "github.com/wdm0006/moviejanitor/pkg/janitor"
)

// DefaultSheet is the worksheet name used when none is given.
const DefaultSheet = "Sheet1"

// WriteAll writes f to a single worksheet: header on row 1, then one row per
// record. Null cells are left blank.
func WriteAll(path string, f *j.Frame, sheet string) error {
	x := excelize.NewFile()
	defer func() { _ = x.Close() }()

	if sheet == "" {
		sheet = DefaultSheet
	}
	if sheet != DefaultSheet {
		if err := x.SetSheetName(DefaultSheet, sheet); err != nil {
			return fmt.Errorf("xlsx sheet: %w", err)
		}
	}

	header := make([]any, f.Cols())
	for i, name := range f.Schema().Names() {
		header[i] = name
	}
	if err := x.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("xlsx header: %w", err)
	}
	for r := 0; r < f.Rows(); r++ {
		for c, col := range f.Columns() {
			v, ok := f.Cell(r, col.Name())
			if !ok {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(c+1, r+2)
			if err != nil {
				return err
			}
			if err := x.SetCellValue(sheet, cell, v); err != nil {
				return fmt.Errorf("xlsx row %d: %w", r, err)
			}
		}
	}
	if err := x.SaveAs(path); err != nil {
		return fmt.Errorf("xlsx save: %w", err)
	}
	return nil
}
