package zonetypes

import "time"

// PreloadedZoneRow is one row of an externally supplied zone table
// (spec.md §4.2.4, §6): CSV-with-header or in-memory table, required
// columns zone_id, type, start_time, end_time. Extra carries any
// additional columns verbatim into the resulting zone's indicator
// context.
type PreloadedZoneRow struct {
	ZoneID    int
	Type      string
	StartTime time.Time
	EndTime   time.Time
	Extra     map[string]interface{}
}
