package domain

import "errors"

var (
	// ErrFetch means the upstream feed returned an error page instead of a
	// year document. Never cached, never retried within a run.
	ErrFetch = errors.New("upstream returned error page")

	// ErrCacheMiss means no cached document exists for the year. Internal
	// and non-fatal: callers fall back to a remote fetch.
	ErrCacheMiss = errors.New("no cached document for year")

	// ErrParse means a year document matched none of the known element
	// shapes. Surfaced loudly so upstream format changes are not masked by
	// an empty record set.
	ErrParse = errors.New("unrecognized document shape")

	// ErrLoad means the persisted rate table is unreadable or malformed.
	ErrLoad = errors.New("rate table load failed")
)
