package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/bj-liang/data-ust/internal/domain"
)

const sheetName = "Sheet1"

// WriteDailyXLSX writes the daily table to an Excel workbook: a header row
// of date plus the yield columns, one row per trading date.
func WriteDailyXLSX(path string, table domain.RateTable) error {
	f := excelize.NewFile()
	defer f.Close()

	header := make([]any, 0, 1+domain.NumYields)
	header = append(header, "date")
	for _, k := range domain.YieldKeys {
		header = append(header, k)
	}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return err
	}

	for i, rec := range table {
		row := make([]any, 0, 1+domain.NumYields)
		row = append(row, rec.Date.String())
		for _, v := range rec.Yields {
			row = append(row, v)
		}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return err
		}
	}
	return f.SaveAs(path)
}

// WriteMonthlyXLSX writes monthly averages to an Excel workbook, with
// explicit year and month columns ahead of the yield columns.
func WriteMonthlyXLSX(path string, monthly []domain.MonthlyRow) error {
	f := excelize.NewFile()
	defer f.Close()

	header := make([]any, 0, 2+domain.NumYields)
	header = append(header, "year", "month")
	for _, k := range domain.YieldKeys {
		header = append(header, k)
	}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return err
	}

	for i, m := range monthly {
		row := make([]any, 0, 2+domain.NumYields)
		row = append(row, m.Year, m.Month)
		for _, v := range m.Yields {
			row = append(row, v)
		}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return err
		}
	}
	return f.SaveAs(path)
}
