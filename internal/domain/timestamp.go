package domain

import (
	"fmt"
	"time"
)

// TimestampLayout is the textual form of created_at cells,
// e.g. "2023-03-08 19:59:16.471152+00:00".
const TimestampLayout = "2006-01-02 15:04:05.000000-07:00"

// compactOffsetLayout accepts offsets written without a colon (+0000).
const compactOffsetLayout = "2006-01-02 15:04:05.000000-0700"

// NowUTC returns the current instant in UTC, truncated to the microsecond
// precision a created_at cell can hold.
func NowUTC() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

// FormatTimestamp serializes t for storage in a sheet cell.
// The zero time encodes as an empty cell.
func FormatTimestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(TimestampLayout)
}

// ParseTimestamp parses a created_at cell value.
func ParseTimestamp(value string) (time.Time, error) {
	t, err := time.Parse(TimestampLayout, value)
	if err == nil {
		return t, nil
	}

	if t, cerr := time.Parse(compactOffsetLayout, value); cerr == nil {
		return t, nil
	}

	return time.Time{}, fmt.Errorf("invalid timestamp %q: %w", value, err)
}
