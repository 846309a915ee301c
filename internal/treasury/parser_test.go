package treasury

import (
	"errors"
	"testing"

	"cloud.google.com/go/civil"

	"github.com/bj-liang/data-ust/internal/domain"
)

func TestParsePropertiesShape(t *testing.T) {
	records, err := Parse(propertiesFeed(sampleEntry()))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("Parse returned %d records, want 1", len(records))
	}

	rec := records[0]
	want := civil.Date{Year: 2021, Month: 1, Day: 4}
	if rec.Date != want {
		t.Errorf("record date = %v, want %v", rec.Date, want)
	}
	if got := rec.Yields[domain.YieldIndex("BC_10YEAR")]; got != 0.93 {
		t.Errorf("BC_10YEAR = %v, want 0.93", got)
	}
	if got := rec.Yields[domain.YieldIndex("BC_30YEARDISPLAY")]; got != 1.66 {
		t.Errorf("BC_30YEARDISPLAY = %v, want 1.66", got)
	}
}

func TestParseContentShape(t *testing.T) {
	records, err := Parse(contentFeed(
		feedEntry{date: "1995-06-01T00:00:00", fields: map[string]string{
			"BC_3MONTH": "5.62",
			"BC_10YEAR": "6.22",
		}},
		feedEntry{date: "1995-06-02T00:00:00", fields: map[string]string{
			"BC_3MONTH": "5.54",
			"BC_10YEAR": "6.13",
		}},
	))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("Parse returned %d records, want 2", len(records))
	}
	if got := records[1].Yields[domain.YieldIndex("BC_10YEAR")]; got != 6.13 {
		t.Errorf("second record BC_10YEAR = %v, want 6.13", got)
	}
}

func TestParseMissingMaturityDefaultsToZero(t *testing.T) {
	// The 30-year series has gaps starting 2002; empty and absent elements
	// both come back as zero, never as an error.
	records, err := Parse(propertiesFeed(feedEntry{
		date: "2002-03-01T00:00:00",
		fields: map[string]string{
			"BC_10YEAR": "4.95",
			"BC_30YEAR": "", // published but empty
			// BC_20YEAR absent entirely
		},
	}))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	rec := records[0]
	if got := rec.Yields[domain.YieldIndex("BC_30YEAR")]; got != 0 {
		t.Errorf("empty BC_30YEAR = %v, want 0", got)
	}
	if got := rec.Yields[domain.YieldIndex("BC_20YEAR")]; got != 0 {
		t.Errorf("absent BC_20YEAR = %v, want 0", got)
	}
	if got := rec.Yields[domain.YieldIndex("BC_10YEAR")]; got != 4.95 {
		t.Errorf("BC_10YEAR = %v, want 4.95", got)
	}
}

func TestParseDocumentOrderPreserved(t *testing.T) {
	// The feed is not guaranteed sorted; Parse must not reorder.
	records, err := Parse(propertiesFeed(
		feedEntry{date: "2021-01-05T00:00:00", fields: map[string]string{"BC_10YEAR": "0.96"}},
		feedEntry{date: "2021-01-04T00:00:00", fields: map[string]string{"BC_10YEAR": "0.93"}},
	))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if records[0].Date.Day != 5 || records[1].Date.Day != 4 {
		t.Errorf("Parse reordered entries: got %v, %v", records[0].Date, records[1].Date)
	}
}

func TestParseUnrecognizedShape(t *testing.T) {
	_, err := Parse(`<?xml version="1.0"?><html><body>maintenance page</body></html>`)
	if !errors.Is(err, domain.ErrParse) {
		t.Errorf("Parse returned %v, want domain.ErrParse", err)
	}
}

func TestParseBadDate(t *testing.T) {
	_, err := Parse(propertiesFeed(feedEntry{
		date:   "January 4th 2021",
		fields: map[string]string{"BC_10YEAR": "0.93"},
	}))
	if !errors.Is(err, domain.ErrParse) {
		t.Errorf("Parse returned %v, want domain.ErrParse", err)
	}
}

func TestParseEntryMissingDate(t *testing.T) {
	const doc = `<?xml version="1.0"?><feed><entry><content type="application/xml">
	<m:properties xmlns:m="urn:x"><d:BC_10YEAR xmlns:d="urn:y">0.93</d:BC_10YEAR></m:properties>
	</content></entry></feed>`
	_, err := Parse(doc)
	if !errors.Is(err, domain.ErrParse) {
		t.Errorf("Parse returned %v, want domain.ErrParse", err)
	}
}
