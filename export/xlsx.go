package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/tsawler/gridmark/model"
)

// SheetName is the worksheet the dataset is written to.
const SheetName = "Extracted Table"

// WriteXLSX writes the dataset to w as an XLSX workbook with a single
// worksheet.
func WriteXLSX(w io.Writer, ds *model.Dataset) error {
	f, err := workbook(ds)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write xlsx: %w", err)
	}
	return nil
}

// SaveXLSX writes the dataset to an XLSX file, replacing any existing
// file.
func SaveXLSX(path string, ds *model.Dataset) error {
	f, err := workbook(ds)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save xlsx to %s: %w", path, err)
	}
	return nil
}

func workbook(ds *model.Dataset) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		f.Close()
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	for i, row := range ds.Rows {
		for j, value := range row {
			cell, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				f.Close()
				return nil, fmt.Errorf("cell name for (%d,%d): %w", i, j, err)
			}
			if err := f.SetCellValue(SheetName, cell, value); err != nil {
				f.Close()
				return nil, fmt.Errorf("set cell %s: %w", cell, err)
			}
		}
	}
	return f, nil
}
