// Package domain defines the core data model for the Treasury par-yield
// ingestion pipeline: per-date rate records, the consolidated rate table,
// and derived monthly averages.
package domain

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"cloud.google.com/go/civil"
)

// YieldKeys is the fixed ordered set of yield column names published in the
// Treasury par-yield-curve XML feed. BC_30YEARDISPLAY mirrors BC_30YEAR
// except for the years the 30-year bond was discontinued.
var YieldKeys = [...]string{
	"BC_1MONTH",
	"BC_3MONTH",
	"BC_6MONTH",
	"BC_1YEAR",
	"BC_2YEAR",
	"BC_3YEAR",
	"BC_5YEAR",
	"BC_7YEAR",
	"BC_10YEAR",
	"BC_20YEAR",
	"BC_30YEAR",
	"BC_30YEARDISPLAY",
}

// NumYields is the number of yield columns in a record.
const NumYields = len(YieldKeys)

// YieldIndex returns the position of a yield column name in YieldKeys, or
// -1 if the name is not part of the schema.
func YieldIndex(key string) int {
	for i, k := range YieldKeys {
		if k == key {
			return i
		}
	}
	return -1
}

// YieldValue coerces an upstream text value to a float. Empty or
// unparseable values become 0 rather than an error: the feed omits some
// maturities entirely in early years (the 30-year gap starting 2002), and
// downstream consumers expect a dense table. Callers that need to
// distinguish "zero" from "absent" must not use this.
func YieldValue(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return v
}

// RateRecord holds the full set of par-yield values for one trading date.
// Yields is indexed parallel to YieldKeys.
type RateRecord struct {
	Date   civil.Date
	Yields [NumYields]float64
}

// RateTable is a collection of rate records. After Sort or Merge it is in
// ascending date order with at most one record per date.
type RateTable []RateRecord

// Sort orders the table by date ascending, in place.
func (t RateTable) Sort() {
	sort.Slice(t, func(i, j int) bool {
		return t[i].Date.Before(t[j].Date)
	})
}

// Dedup collapses the table to at most one record per date, keeping the
// last occurrence, and returns the result sorted by date.
func (t RateTable) Dedup() RateTable {
	seen := make(map[civil.Date]RateRecord, len(t))
	for _, r := range t {
		seen[r.Date] = r
	}

	out := make(RateTable, 0, len(seen))
	for _, r := range seen {
		out = append(out, r)
	}
	out.Sort()
	return out
}

// Merge combines the table with freshly fetched records, preferring the
// fresh record wherever both carry the same date. The result is sorted by
// date ascending.
func (t RateTable) Merge(fresh RateTable) RateTable {
	seen := make(map[civil.Date]RateRecord, len(t)+len(fresh))
	for _, r := range t {
		seen[r.Date] = r
	}
	for _, r := range fresh {
		seen[r.Date] = r
	}

	merged := make(RateTable, 0, len(seen))
	for _, r := range seen {
		merged = append(merged, r)
	}
	merged.Sort()
	return merged
}

// Latest returns the most recent record in the table.
func (t RateTable) Latest() (RateRecord, bool) {
	if len(t) == 0 {
		return RateRecord{}, false
	}
	latest := t[0]
	for _, r := range t[1:] {
		if latest.Date.Before(r.Date) {
			latest = r
		}
	}
	return latest, true
}

// MonthlyRow is the per-month arithmetic mean of each yield column, with
// explicit year and month columns.
type MonthlyRow struct {
	Year   int
	Month  int
	Yields [NumYields]float64
}

// MonthlyAverage groups the table by calendar month and averages each yield
// column, rounded to 2 decimal places. Rows are ordered by (year, month).
func (t RateTable) MonthlyAverage() []MonthlyRow {
	type monthKey struct {
		year  int
		month int
	}
	sums := make(map[monthKey][NumYields]float64)
	counts := make(map[monthKey]int)

	for _, r := range t {
		k := monthKey{year: r.Date.Year, month: int(r.Date.Month)}
		s := sums[k]
		for i, v := range r.Yields {
			s[i] += v
		}
		sums[k] = s
		counts[k]++
	}

	rows := make([]MonthlyRow, 0, len(sums))
	for k, s := range sums {
		row := MonthlyRow{Year: k.year, Month: k.month}
		n := float64(counts[k])
		for i := range s {
			row.Yields[i] = round2(s[i] / n)
		}
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Year != rows[j].Year {
			return rows[i].Year < rows[j].Year
		}
		return rows[i].Month < rows[j].Month
	})
	return rows
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
