// Package pipeline turns one fetched batch of flight records into the
// render-ready board: window filtering, status normalization, local-time
// conversion, ranking, and statistics.
//
// Every function here is pure. Nothing reads the clock, the environment, or
// shared state; "now" and the display timezone are passed in explicitly.
package pipeline

import (
	"strings"
	"time"
)

// timestampLayouts lists the ISO-8601 forms accepted by ParseTimestamp, most
// specific first. Go accepts a fractional-seconds field after the seconds
// even when the layout does not mention one.
var timestampLayouts = expandSeparators([]string{
	// Extended format.
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02T15:04:05Z0700",
	"2006-01-02T15:04:05Z07",
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04Z0700",
	"2006-01-02T15Z07:00",
	"2006-01-02T15Z0700",
	// Basic format, e.g. 20240701T120000Z.
	"20060102T150405Z07:00",
	"20060102T150405Z0700",
	"20060102T150405Z07",
	"20060102T1504Z07:00",
	"20060102T1504Z0700",
	"20060102T15Z0700",
	// Unqualified forms are read as UTC.
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02T15",
	"2006-01-02",
	"20060102T150405",
	"20060102T1504",
	"20060102T15",
	"20060102",
})

// expandSeparators adds a space-separated variant for every layout that
// separates date and time with 'T'.
func expandSeparators(layouts []string) []string {
	out := make([]string, 0, 2*len(layouts))
	out = append(out, layouts...)
	for _, l := range layouts {
		if strings.Contains(l, "T") {
			out = append(out, strings.Replace(l, "T", " ", 1))
		}
	}
	return out
}

// ParseTimestamp parses a raw upstream timestamp into an absolute instant in UTC.
// The second return value is false when s is empty or matches no accepted layout.
// Timestamps without a zone designator are taken to be UTC.
func ParseTimestamp(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}
