// Package treasury implements the fetch-cache-parse pipeline for the
// Treasury par-yield-curve XML feed: a per-year XML file cache, an HTTP
// client for the feed, a parser for the year documents, and an assembler
// that turns year ranges into rate tables.
package treasury

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/bj-liang/data-ust/internal/domain"
)

// Cache stores one raw XML document per year under a single directory,
// named <year>.xml.
type Cache struct {
	dir string
}

// NewCache creates a Cache rooted at dir. The directory is created lazily
// on first use.
func NewCache(dir string) *Cache {
	return &Cache{dir: dir}
}

// Path returns the file location for a year's document, creating the cache
// directory if it does not exist yet.
func (c *Cache) Path(year int) (string, error) {
	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return "", fmt.Errorf("creating cache dir: %w", err)
	}
	return filepath.Join(c.dir, fmt.Sprintf("%d.xml", year)), nil
}

// Read returns the cached document for a year. A missing file surfaces as
// domain.ErrCacheMiss so callers can fall back to a remote fetch.
func (c *Cache) Read(year int) (string, error) {
	path, err := c.Path(year)
	if err != nil {
		return "", err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("year %d: %w", year, domain.ErrCacheMiss)
		}
		return "", fmt.Errorf("reading cached document for %d: %w", year, err)
	}
	return string(data), nil
}

// Write persists the document for a year, overwriting any prior content.
func (c *Cache) Write(year int, content string) error {
	path, err := c.Path(year)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("writing cached document for %d: %w", year, err)
	}
	return nil
}

// Has reports whether a cached document exists for the year.
func (c *Cache) Has(year int) bool {
	path := filepath.Join(c.dir, fmt.Sprintf("%d.xml", year))
	_, err := os.Stat(path)
	return err == nil
}
