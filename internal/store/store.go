// Package store persists the consolidated rate table. The CSV flat file is
// the authoritative format; a SQLite mirror is available for query-side
// convenience.
package store

import (
	"context"

	"github.com/bj-liang/data-ust/internal/domain"
)

// RateStore persists and retrieves the consolidated rate table.
type RateStore interface {
	// Load reads the whole table. Unreadable or malformed contents fail
	// with an error wrapping domain.ErrLoad.
	Load(ctx context.Context) (domain.RateTable, error)

	// Save fully replaces the persisted table with the given one.
	Save(ctx context.Context, table domain.RateTable) error
}
