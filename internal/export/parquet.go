// Package export emits derived artifacts of the rate table: Parquet files
// for columnar consumers and Excel workbooks for manual inspection. Export
// formats are peripheral; the CSV store remains authoritative.
package export

import (
	"os"
	"path/filepath"

	"github.com/parquet-go/parquet-go"

	"github.com/bj-liang/data-ust/internal/domain"
)

// ---------------------------------------------------------------------------
// Parquet record types (on-disk schema)
// ---------------------------------------------------------------------------

// rateRow is the Parquet schema for daily records. Column names match the
// feed's yield keys so downstream tooling can share one schema with the CSV.
type rateRow struct {
	Date            string  `parquet:"date"`
	BC1Month        float64 `parquet:"BC_1MONTH"`
	BC3Month        float64 `parquet:"BC_3MONTH"`
	BC6Month        float64 `parquet:"BC_6MONTH"`
	BC1Year         float64 `parquet:"BC_1YEAR"`
	BC2Year         float64 `parquet:"BC_2YEAR"`
	BC3Year         float64 `parquet:"BC_3YEAR"`
	BC5Year         float64 `parquet:"BC_5YEAR"`
	BC7Year         float64 `parquet:"BC_7YEAR"`
	BC10Year        float64 `parquet:"BC_10YEAR"`
	BC20Year        float64 `parquet:"BC_20YEAR"`
	BC30Year        float64 `parquet:"BC_30YEAR"`
	BC30YearDisplay float64 `parquet:"BC_30YEARDISPLAY"`
}

// monthlyRow is the Parquet schema for monthly averages.
type monthlyRow struct {
	Year            int32   `parquet:"year"`
	Month           int32   `parquet:"month"`
	BC1Month        float64 `parquet:"BC_1MONTH"`
	BC3Month        float64 `parquet:"BC_3MONTH"`
	BC6Month        float64 `parquet:"BC_6MONTH"`
	BC1Year         float64 `parquet:"BC_1YEAR"`
	BC2Year         float64 `parquet:"BC_2YEAR"`
	BC3Year         float64 `parquet:"BC_3YEAR"`
	BC5Year         float64 `parquet:"BC_5YEAR"`
	BC7Year         float64 `parquet:"BC_7YEAR"`
	BC10Year        float64 `parquet:"BC_10YEAR"`
	BC20Year        float64 `parquet:"BC_20YEAR"`
	BC30Year        float64 `parquet:"BC_30YEAR"`
	BC30YearDisplay float64 `parquet:"BC_30YEARDISPLAY"`
}

func newRateRow(rec domain.RateRecord) rateRow {
	y := rec.Yields
	return rateRow{
		Date:            rec.Date.String(),
		BC1Month:        y[0],
		BC3Month:        y[1],
		BC6Month:        y[2],
		BC1Year:         y[3],
		BC2Year:         y[4],
		BC3Year:         y[5],
		BC5Year:         y[6],
		BC7Year:         y[7],
		BC10Year:        y[8],
		BC20Year:        y[9],
		BC30Year:        y[10],
		BC30YearDisplay: y[11],
	}
}

func newMonthlyRow(m domain.MonthlyRow) monthlyRow {
	y := m.Yields
	return monthlyRow{
		Year:            int32(m.Year),
		Month:           int32(m.Month),
		BC1Month:        y[0],
		BC3Month:        y[1],
		BC6Month:        y[2],
		BC1Year:         y[3],
		BC2Year:         y[4],
		BC3Year:         y[5],
		BC5Year:         y[6],
		BC7Year:         y[7],
		BC10Year:        y[8],
		BC20Year:        y[9],
		BC30Year:        y[10],
		BC30YearDisplay: y[11],
	}
}

// WriteDailyParquet writes the daily table to a Parquet file.
func WriteDailyParquet(path string, table domain.RateTable) error {
	rows := make([]rateRow, 0, len(table))
	for _, rec := range table {
		rows = append(rows, newRateRow(rec))
	}
	return writeParquetFile(path, rows)
}

// WriteMonthlyParquet writes monthly averages to a Parquet file.
func WriteMonthlyParquet(path string, monthly []domain.MonthlyRow) error {
	rows := make([]monthlyRow, 0, len(monthly))
	for _, m := range monthly {
		rows = append(rows, newMonthlyRow(m))
	}
	return writeParquetFile(path, rows)
}

func writeParquetFile[T any](path string, records []T) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return parquet.WriteFile(path, records)
}
