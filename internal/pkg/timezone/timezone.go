// Package timezone centralizes every conversion between stored UTC instants
// and the fixed zone attendance screens render in. No other package does
// offset arithmetic.
package timezone

import (
	"fmt"
	"sync"
	"time"
)

// DisplayZoneName is the fixed zone all attendance timestamps are rendered
// in, regardless of server or client locale.
const DisplayZoneName = "Asia/Singapore"

var (
	displayZoneOnce sync.Once
	displayZone     *time.Location
)

// DisplayZone returns the target display zone. Falls back to a fixed UTC+8
// offset when the tz database is unavailable.
func DisplayZone() *time.Location {
	displayZoneOnce.Do(func() {
		loc, err := time.LoadLocation(DisplayZoneName)
		if err != nil {
			loc = time.FixedZone("UTC+8", 8*60*60)
		}
		displayZone = loc
	})
	return displayZone
}

// FormatTime renders a timestamp as a local time string in the display zone.
// A nil timestamp renders as an empty string.
func FormatTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.In(DisplayZone()).Format("3:04 PM")
}

// FormatDate renders a timestamp as a local date string in the display zone.
// A nil timestamp renders as an empty string.
func FormatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.In(DisplayZone()).Format("1/2/2006")
}

// Today returns the current date at midnight in the display zone.
func Today() time.Time {
	now := time.Now().In(DisplayZone())
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, DisplayZone())
}

// CombineWallClock combines the date portion of day (interpreted in the
// display zone) with a "HH:MM" wall-clock input, seconds and below zeroed,
// and returns the resulting instant in UTC.
func CombineWallClock(day time.Time, clock string) (time.Time, error) {
	parsed, err := time.Parse("15:04", clock)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid wall-clock time %q: %w", clock, err)
	}

	local := day.In(DisplayZone())
	combined := time.Date(
		local.Year(), local.Month(), local.Day(),
		parsed.Hour(), parsed.Minute(), 0, 0,
		DisplayZone(),
	)
	return combined.UTC(), nil
}
