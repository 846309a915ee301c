package export

import (
	"math"
	"path/filepath"
	"testing"

	"cloud.google.com/go/civil"
	"github.com/parquet-go/parquet-go"
	"github.com/xuri/excelize/v2"

	"github.com/bj-liang/data-ust/internal/domain"
)

func sampleTable() domain.RateTable {
	r1 := domain.RateRecord{Date: civil.Date{Year: 2021, Month: 1, Day: 4}}
	r1.Yields[domain.YieldIndex("BC_10YEAR")] = 0.93

	r2 := domain.RateRecord{Date: civil.Date{Year: 2021, Month: 1, Day: 5}}
	r2.Yields[domain.YieldIndex("BC_10YEAR")] = 0.96

	return domain.RateTable{r1, r2}
}

func TestWriteDailyParquet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ust_daily.parquet")
	if err := WriteDailyParquet(path, sampleTable()); err != nil {
		t.Fatalf("WriteDailyParquet: %v", err)
	}

	rows, err := parquet.ReadFile[rateRow](path)
	if err != nil {
		t.Fatalf("reading parquet back: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("parquet has %d rows, want 2", len(rows))
	}
	if rows[0].Date != "2021-01-04" {
		t.Errorf("first row date = %q, want 2021-01-04", rows[0].Date)
	}
	if rows[1].BC10Year != 0.96 {
		t.Errorf("second row BC_10YEAR = %v, want 0.96", rows[1].BC10Year)
	}
}

func TestWriteMonthlyParquet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ust_month_average.parquet")
	monthly := sampleTable().MonthlyAverage()

	if err := WriteMonthlyParquet(path, monthly); err != nil {
		t.Fatalf("WriteMonthlyParquet: %v", err)
	}

	rows, err := parquet.ReadFile[monthlyRow](path)
	if err != nil {
		t.Fatalf("reading parquet back: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("parquet has %d rows, want 1", len(rows))
	}
	if rows[0].Year != 2021 || rows[0].Month != 1 {
		t.Errorf("monthly row is (%d, %d), want (2021, 1)", rows[0].Year, rows[0].Month)
	}
	// (0.93 + 0.96) / 2 = 0.945, rounds to 0.94 under round-half-away.
	want := math.Round((0.93+0.96)/2*100) / 100
	if rows[0].BC10Year != want {
		t.Errorf("monthly BC_10YEAR = %v, want %v", rows[0].BC10Year, want)
	}
}

func TestWriteDailyXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ust_daily.xlsx")
	if err := WriteDailyXLSX(path, sampleTable()); err != nil {
		t.Fatalf("WriteDailyXLSX: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("opening workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(sheetName)
	if err != nil {
		t.Fatalf("reading rows: %v", err)
	}
	if len(rows) != 3 { // header + 2 dates
		t.Fatalf("workbook has %d rows, want 3", len(rows))
	}
	if rows[0][0] != "date" || rows[0][1] != "BC_1MONTH" {
		t.Errorf("header starts with %v, want date, BC_1MONTH", rows[0][:2])
	}
	if rows[1][0] != "2021-01-04" {
		t.Errorf("first data row date = %q, want 2021-01-04", rows[1][0])
	}
}

func TestWriteMonthlyXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ust_month_average.xlsx")
	if err := WriteMonthlyXLSX(path, sampleTable().MonthlyAverage()); err != nil {
		t.Fatalf("WriteMonthlyXLSX: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("opening workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(sheetName)
	if err != nil {
		t.Fatalf("reading rows: %v", err)
	}
	if len(rows) != 2 { // header + 1 month
		t.Fatalf("workbook has %d rows, want 2", len(rows))
	}
	if rows[0][0] != "year" || rows[0][1] != "month" {
		t.Errorf("header starts with %v, want year, month", rows[0][:2])
	}
	if rows[1][0] != "2021" || rows[1][1] != "1" {
		t.Errorf("data row starts with %v, want 2021, 1", rows[1][:2])
	}
}
