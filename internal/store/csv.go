package store

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"cloud.google.com/go/civil"

	"github.com/bj-liang/data-ust/internal/domain"
)

// Compile-time interface check.
var _ RateStore = (*CSVStore)(nil)

// CSVStore is the authoritative flat-file store: a header row followed by
// one row per date, dates in ISO 8601 ascending order.
type CSVStore struct {
	Path string
}

// NewCSVStore creates a CSVStore at the given path.
func NewCSVStore(path string) *CSVStore {
	return &CSVStore{Path: path}
}

// header returns the column names: date first, then the yield schema.
func header() []string {
	h := make([]string, 0, 1+domain.NumYields)
	h = append(h, "date")
	h = append(h, domain.YieldKeys[:]...)
	return h
}

// Load reads and validates the persisted table. Any unreadable file, header
// mismatch, bad date, or bad numeric cell fails with domain.ErrLoad: an
// update cannot proceed without a valid baseline.
func (s *CSVStore) Load(_ context.Context) (domain.RateTable, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrLoad, err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrLoad, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: %s is empty", domain.ErrLoad, s.Path)
	}

	want := header()
	got := rows[0]
	if len(got) != len(want) {
		return nil, fmt.Errorf("%w: header has %d columns, want %d", domain.ErrLoad, len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			return nil, fmt.Errorf("%w: header column %d is %q, want %q", domain.ErrLoad, i, got[i], want[i])
		}
	}

	table := make(domain.RateTable, 0, len(rows)-1)
	for _, row := range rows[1:] {
		d, err := civil.ParseDate(row[0])
		if err != nil {
			return nil, fmt.Errorf("%w: bad date %q: %v", domain.ErrLoad, row[0], err)
		}
		rec := domain.RateRecord{Date: d}
		for i := 0; i < domain.NumYields; i++ {
			v, err := strconv.ParseFloat(row[i+1], 64)
			if err != nil {
				return nil, fmt.Errorf("%w: bad %s value %q on %s: %v",
					domain.ErrLoad, domain.YieldKeys[i], row[i+1], row[0], err)
			}
			rec.Yields[i] = v
		}
		table = append(table, rec)
	}
	return table, nil
}

// Save writes the table to the path, fully overwriting prior contents.
// Rows are written in the table's order; callers sort first.
func (s *CSVStore) Save(_ context.Context, table domain.RateTable) error {
	f, err := os.Create(s.Path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", s.Path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header()); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	row := make([]string, 1+domain.NumYields)
	for _, rec := range table {
		row[0] = rec.Date.String()
		for i, v := range rec.Yields {
			row[i+1] = strconv.FormatFloat(v, 'g', -1, 64)
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("writing row for %s: %w", rec.Date, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flushing %s: %w", s.Path, err)
	}
	return f.Close()
}
