package treasury

import (
	"fmt"
	"strings"
	"time"

	"cloud.google.com/go/civil"
	"github.com/antchfx/xmlquery"

	"github.com/bj-liang/data-ust/internal/domain"
)

// entryDateLayout is the timestamp format used for NEW_DATE. The time
// component is always midnight and carries no timezone; only the calendar
// day is kept.
const entryDateLayout = "2006-01-02T15:04:05"

// Parse converts one year document into rate records, one per date-bearing
// entry, in document order. The feed has used two element shapes over the
// years: entries wrapped in properties elements (OData style) and entries
// wrapped directly in content elements. Parse detects which shape is
// present; a document matching neither fails with domain.ErrParse. Element
// matching ignores namespace prefixes (the feed uses m: and d:).
func Parse(xmlText string) ([]domain.RateRecord, error) {
	doc, err := xmlquery.Parse(strings.NewReader(xmlText))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrParse, err)
	}

	entries, err := selectEntries(doc)
	if err != nil {
		return nil, err
	}

	records := make([]domain.RateRecord, 0, len(entries))
	for _, entry := range entries {
		rec, err := parseEntry(entry)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

// selectEntries finds the date-bearing entry nodes, preferring the
// properties shape and falling back to the content shape.
func selectEntries(doc *xmlquery.Node) ([]*xmlquery.Node, error) {
	for _, expr := range []string{
		"//*[local-name()='properties']",
		"//*[local-name()='content']",
	} {
		entries, err := xmlquery.QueryAll(doc, expr)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrParse, err)
		}
		if len(entries) > 0 {
			return entries, nil
		}
	}
	return nil, fmt.Errorf("%w: no rate entries in document", domain.ErrParse)
}

// parseEntry extracts the date and the twelve yield fields from one entry.
// Yield fields absent from the entry stay zero, matching the coercion
// policy in domain.YieldValue.
func parseEntry(entry *xmlquery.Node) (domain.RateRecord, error) {
	var rec domain.RateRecord

	dateNode := findElement(entry, "NEW_DATE")
	if dateNode == nil {
		return rec, fmt.Errorf("%w: entry has no NEW_DATE element", domain.ErrParse)
	}
	d, err := parseEntryDate(dateNode.InnerText())
	if err != nil {
		return rec, err
	}
	rec.Date = d

	walkElements(entry, func(n *xmlquery.Node) {
		if idx := domain.YieldIndex(n.Data); idx >= 0 {
			rec.Yields[idx] = domain.YieldValue(n.InnerText())
		}
	})
	return rec, nil
}

// parseEntryDate truncates a NEW_DATE timestamp to calendar-day
// granularity.
func parseEntryDate(s string) (civil.Date, error) {
	t, err := time.Parse(entryDateLayout, strings.TrimSpace(s))
	if err != nil {
		return civil.Date{}, fmt.Errorf("%w: bad NEW_DATE %q: %v", domain.ErrParse, s, err)
	}
	return civil.DateOf(t), nil
}

// findElement returns the first descendant element whose local name matches,
// or nil.
func findElement(n *xmlquery.Node, name string) *xmlquery.Node {
	var found *xmlquery.Node
	walkElements(n, func(e *xmlquery.Node) {
		if found == nil && e.Data == name {
			found = e
		}
	})
	return found
}

// walkElements visits every descendant element of n in document order.
// Node.Data holds the local tag name, so matching is namespace-agnostic.
func walkElements(n *xmlquery.Node, visit func(*xmlquery.Node)) {
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		if child.Type == xmlquery.ElementNode {
			visit(child)
		}
		walkElements(child, visit)
	}
}
