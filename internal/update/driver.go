// Package update implements the merge/update driver that owns the
// authoritative persisted rate table.
package update

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/bj-liang/data-ust/internal/domain"
	"github.com/bj-liang/data-ust/internal/store"
	"github.com/bj-liang/data-ust/internal/treasury"
)

// DefaultStartYear is the first year the feed carries, used by Bootstrap
// when no start year is configured.
const DefaultStartYear = 1990

// Driver refreshes the persisted rate table from the feed and fully
// replaces it on each successful run.
type Driver struct {
	assembler *treasury.Assembler
	store     store.RateStore

	// Now is the clock that bounds year ranges. Overridable in tests.
	Now func() time.Time

	log *slog.Logger
}

// NewDriver creates a Driver over the given assembler and store.
func NewDriver(a *treasury.Assembler, s store.RateStore) *Driver {
	return &Driver{
		assembler: a,
		store:     s,
		Now:       time.Now,
		log:       slog.Default().With("component", "update-driver"),
	}
}

// Update loads the persisted table, refreshes the minimal year range — the
// latest recorded year through the current year inclusive — and merges the
// fresh rows in, with fresh rows winning on any shared date. The merged
// table replaces the persisted one and is returned. A failure for any year
// aborts the run with the table untouched.
func (d *Driver) Update(ctx context.Context) (domain.RateTable, error) {
	existing, err := d.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	latest, ok := existing.Latest()
	if !ok {
		return nil, fmt.Errorf("%w: persisted table has no rows", domain.ErrLoad)
	}

	years := yearRange(latest.Date.Year, d.Now().Year())
	d.log.Info("refreshing year range",
		"from", years[0], "to", years[len(years)-1], "existingRows", len(existing))

	fresh, err := d.assembler.Tables(ctx, years)
	if err != nil {
		return nil, err
	}

	merged := existing.Merge(fresh)
	if err := d.store.Save(ctx, merged); err != nil {
		return nil, err
	}
	d.log.Info("persisted merged table", "rows", len(merged), "freshRows", len(fresh))
	return merged, nil
}

// Bootstrap builds the full table from startYear through the current year
// from scratch and persists it, replacing anything already stored. A
// startYear of 0 selects DefaultStartYear.
func (d *Driver) Bootstrap(ctx context.Context, startYear int) (domain.RateTable, error) {
	if startYear == 0 {
		startYear = DefaultStartYear
	}
	years := yearRange(startYear, d.Now().Year())
	d.log.Info("bootstrapping table", "from", years[0], "to", years[len(years)-1])

	table, err := d.assembler.Tables(ctx, years)
	if err != nil {
		return nil, err
	}

	table = table.Dedup()
	if err := d.store.Save(ctx, table); err != nil {
		return nil, err
	}
	d.log.Info("persisted bootstrapped table", "rows", len(table))
	return table, nil
}

// yearRange returns from..to inclusive. A from after to yields just to,
// so a table whose latest row is in the future still refreshes the
// current year.
func yearRange(from, to int) []int {
	if from > to {
		from = to
	}
	years := make([]int, 0, to-from+1)
	for y := from; y <= to; y++ {
		years = append(years, y)
	}
	return years
}
