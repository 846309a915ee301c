package treasury

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/bj-liang/data-ust/internal/domain"
)

// Assembler resolves year documents through the cache-or-fetch policy and
// assembles rate tables from them.
type Assembler struct {
	cache  *Cache
	client *Client
	// Now is the clock used for the current-year policy. Overridable in
	// tests.
	Now func() time.Time
	log *slog.Logger
}

// NewAssembler creates an Assembler over the given cache and client.
func NewAssembler(cache *Cache, client *Client) *Assembler {
	return &Assembler{
		cache:  cache,
		client: client,
		Now:    time.Now,
		log:    slog.Default().With("component", "assembler"),
	}
}

// Document returns the raw XML document for a year. The cached copy is used
// unless force is set, the year is the current year (always treated as
// possibly incomplete), or there is no cache entry; in those cases the
// document is fetched remotely and written through to the cache.
func (a *Assembler) Document(ctx context.Context, year int, force bool) (string, error) {
	if !force && year != a.Now().Year() {
		content, err := a.cache.Read(year)
		if err == nil {
			a.log.Debug("read year document from cache", "year", year)
			return content, nil
		}
		if !errors.Is(err, domain.ErrCacheMiss) {
			return "", err
		}
	}

	content, err := a.client.FetchSafe(ctx, year)
	if err != nil {
		return "", err
	}
	if err := a.cache.Write(year, content); err != nil {
		return "", err
	}
	a.log.Info("fetched year document from feed and cached", "year", year)
	return content, nil
}

// Table resolves, parses, and date-indexes one year's records. The result
// is sorted with at most one record per date.
func (a *Assembler) Table(ctx context.Context, year int) (domain.RateTable, error) {
	content, err := a.Document(ctx, year, false)
	if err != nil {
		return nil, err
	}
	records, err := Parse(content)
	if err != nil {
		return nil, err
	}
	return domain.RateTable(records).Dedup(), nil
}

// Tables concatenates the tables for the given years, in the order given.
// Years are assumed disjoint; no cross-year deduplication happens here. A
// failure for any year aborts the whole call.
func (a *Assembler) Tables(ctx context.Context, years []int) (domain.RateTable, error) {
	var table domain.RateTable
	for _, year := range years {
		t, err := a.Table(ctx, year)
		if err != nil {
			return nil, err
		}
		table = append(table, t...)
	}
	return table, nil
}
