package pipeline

import (
	"fmt"
	"time"
	_ "time/tzdata" // zone database for hosts without /usr/share/zoneinfo
)

// DefaultDisplayTimezone is the zone the board is rendered in unless
// configured otherwise.
const DefaultDisplayTimezone = "America/New_York"

// NotAvailable is shown in place of a time that could not be resolved.
const NotAvailable = "N/A"

// localTimeLayout is the display format, e.g. "2024-03-10 01:59".
const localTimeLayout = "2006-01-02 15:04"

// LocalTimeConverter renders absolute timestamps as wall-clock strings in one
// fixed timezone. It holds no mutable state and is safe for concurrent use.
type LocalTimeConverter struct {
	loc *time.Location
}

// NewLocalTimeConverter loads the IANA zone named by zone.
func NewLocalTimeConverter(zone string) (*LocalTimeConverter, error) {
	loc, err := time.LoadLocation(zone)
	if err != nil {
		return nil, fmt.Errorf("pipeline.NewLocalTimeConverter: %w", err)
	}
	return &LocalTimeConverter{loc: loc}, nil
}

// Location returns the display timezone.
func (c *LocalTimeConverter) Location() *time.Location {
	return c.loc
}

// Convert returns ts as "YYYY-MM-DD HH:MM" in the display timezone together
// with the zone abbreviation in effect at that instant (EST or EDT for
// America/New_York). Absent or unparseable input yields ("N/A", "").
func (c *LocalTimeConverter) Convert(ts string) (string, string) {
	t, ok := ParseTimestamp(ts)
	if !ok {
		return NotAvailable, ""
	}
	local := t.In(c.loc)
	abbr, _ := local.Zone()
	return local.Format(localTimeLayout), abbr
}
