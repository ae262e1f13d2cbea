package report

import (
	"math"

	"deliverylens/model"

	"github.com/360EntSecGroup-Skylar/excelize/v2"
	"github.com/pkg/errors"
)

// WriteWorkbook writes every derived table as one sheet of an .xlsx
// workbook. NaN ratio cells are written empty so spreadsheets stay sortable.
func WriteWorkbook(path string, tables []model.Table) error {
	if len(tables) == 0 {
		return errors.New("no tables to write")
	}

	f := excelize.NewFile()
	for i, table := range tables {
		sheet := table.Name
		if i == 0 {
			f.SetSheetName("Sheet1", sheet)
		} else {
			f.NewSheet(sheet)
		}
		if err := writeSheet(f, sheet, table); err != nil {
			return errors.Wrapf(err, "failed to write sheet %s", sheet)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return errors.Wrapf(err, "failed to save workbook %s", path)
	}
	return nil
}

func writeSheet(f *excelize.File, sheet string, table model.Table) error {
	for col, header := range table.Headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return err
		}
	}
	for row, values := range table.Rows {
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, cellValue(value)); err != nil {
				return err
			}
		}
	}
	return nil
}

func cellValue(value interface{}) interface{} {
	if v, ok := value.(float64); ok && math.IsNaN(v) {
		return ""
	}
	return value
}
