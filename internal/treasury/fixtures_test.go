package treasury

import (
	"fmt"
	"strings"
)

// feedEntry is one trading date worth of fixture data.
type feedEntry struct {
	date   string // NEW_DATE timestamp, e.g. "2021-01-04T00:00:00"
	fields map[string]string
}

// propertiesFeed renders entries in the OData shape the feed uses for most
// years: entry > content > m:properties > d:FIELD.
func propertiesFeed(entries ...feedEntry) string {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="utf-8" standalone="yes"?>` + "\n")
	b.WriteString(`<feed xmlns="http://www.w3.org/2005/Atom"` +
		` xmlns:d="http://schemas.microsoft.com/ado/2007/08/dataservices"` +
		` xmlns:m="http://schemas.microsoft.com/ado/2007/08/dataservices/metadata">` + "\n")
	for _, e := range entries {
		b.WriteString("  <entry>\n    <content type=\"application/xml\">\n      <m:properties>\n")
		fmt.Fprintf(&b, "        <d:NEW_DATE>%s</d:NEW_DATE>\n", e.date)
		for k, v := range e.fields {
			fmt.Fprintf(&b, "        <d:%s>%s</d:%s>\n", k, v, k)
		}
		b.WriteString("      </m:properties>\n    </content>\n  </entry>\n")
	}
	b.WriteString("</feed>\n")
	return b.String()
}

// contentFeed renders entries in the older shape: fields directly inside
// content elements, no properties wrapper.
func contentFeed(entries ...feedEntry) string {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="utf-8"?>` + "\n<feed>\n")
	for _, e := range entries {
		b.WriteString("  <entry>\n    <content type=\"application/xml\">\n")
		fmt.Fprintf(&b, "      <NEW_DATE>%s</NEW_DATE>\n", e.date)
		for k, v := range e.fields {
			fmt.Fprintf(&b, "      <%s>%s</%s>\n", k, v, k)
		}
		b.WriteString("    </content>\n  </entry>\n")
	}
	b.WriteString("</feed>\n")
	return b.String()
}

// sampleEntry mirrors the published curve for 2021-01-04.
func sampleEntry() feedEntry {
	return feedEntry{
		date: "2021-01-04T00:00:00",
		fields: map[string]string{
			"BC_1MONTH":        "0.09",
			"BC_3MONTH":        "0.09",
			"BC_6MONTH":        "0.09",
			"BC_1YEAR":         "0.10",
			"BC_2YEAR":         "0.11",
			"BC_3YEAR":         "0.16",
			"BC_5YEAR":         "0.36",
			"BC_7YEAR":         "0.64",
			"BC_10YEAR":        "0.93",
			"BC_20YEAR":        "1.46",
			"BC_30YEAR":        "1.66",
			"BC_30YEARDISPLAY": "1.66",
		},
	}
}
