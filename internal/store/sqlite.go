package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"cloud.google.com/go/civil"
	_ "modernc.org/sqlite" // Pure-Go SQLite driver.

	"github.com/bj-liang/data-ust/internal/domain"
)

// Compile-time interface check.
var _ RateStore = (*SQLiteStore)(nil)

// SQLiteStore mirrors the rate table into a SQLite database, one row per
// date with one REAL column per yield key. Save fully replaces the table,
// matching the CSV store's overwrite semantics.
type SQLiteStore struct {
	db *sql.DB
}

// yieldColumns are the SQL column names, derived from the yield schema.
func yieldColumns() []string {
	cols := make([]string, domain.NumYields)
	for i, k := range domain.YieldKeys {
		cols[i] = strings.ToLower(k)
	}
	return cols
}

// NewSQLiteStore opens (or creates) a SQLite database at dbPath and ensures
// the rates table exists.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}

	cols := yieldColumns()
	ddl := fmt.Sprintf(
		"CREATE TABLE IF NOT EXISTS rates (date TEXT PRIMARY KEY, %s REAL)",
		strings.Join(cols, " REAL, "),
	)
	if _, err := db.Exec(ddl); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating rates table: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Load reads all rows ordered by date.
func (s *SQLiteStore) Load(ctx context.Context) (domain.RateTable, error) {
	cols := yieldColumns()
	query := fmt.Sprintf("SELECT date, %s FROM rates ORDER BY date", strings.Join(cols, ", "))

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrLoad, err)
	}
	defer rows.Close()

	var table domain.RateTable
	for rows.Next() {
		var dateStr string
		rec := domain.RateRecord{}

		dest := make([]any, 0, 1+domain.NumYields)
		dest = append(dest, &dateStr)
		for i := range rec.Yields {
			dest = append(dest, &rec.Yields[i])
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrLoad, err)
		}

		d, err := civil.ParseDate(dateStr)
		if err != nil {
			return nil, fmt.Errorf("%w: bad date %q: %v", domain.ErrLoad, dateStr, err)
		}
		rec.Date = d
		table = append(table, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrLoad, err)
	}
	return table, nil
}

// Save replaces all rows with the given table in a single transaction.
func (s *SQLiteStore) Save(ctx context.Context, table domain.RateTable) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM rates"); err != nil {
		return fmt.Errorf("clearing rates table: %w", err)
	}

	cols := yieldColumns()
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", 1+domain.NumYields), ", ")
	stmt, err := tx.PrepareContext(ctx, fmt.Sprintf(
		"INSERT INTO rates (date, %s) VALUES (%s)",
		strings.Join(cols, ", "), placeholders,
	))
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, rec := range table {
		args := make([]any, 0, 1+domain.NumYields)
		args = append(args, rec.Date.String())
		for _, v := range rec.Yields {
			args = append(args, v)
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return fmt.Errorf("inserting row for %s: %w", rec.Date, err)
		}
	}
	return tx.Commit()
}
