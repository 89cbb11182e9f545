// Package biztime provides the time helpers used across the desk.
// All timestamps are stored and transported in UTC. Wire format follows
// JavaScript's Date.toISOString: millisecond precision with a literal Z.
package biztime

import (
	"fmt"
	"time"
)

// ISOLayout is the RFC 3339 layout with fixed millisecond precision.
const ISOLayout = "2006-01-02T15:04:05.000Z"

// NowUTC returns current time in UTC truncated to millisecond precision,
// so a value survives a FormatISO/ParseISO round trip unchanged.
func NowUTC() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}

// FormatISO renders t in UTC using ISOLayout.
func FormatISO(t time.Time) string {
	return t.UTC().Format(ISOLayout)
}

// ParseISO parses an RFC 3339 timestamp (with or without fractional seconds)
// and normalizes it to UTC millisecond precision.
func ParseISO(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp %q: %w", s, err)
	}
	return t.UTC().Truncate(time.Millisecond), nil
}

// UnixMilli converts t to milliseconds since epoch; zero time maps to 0.
func UnixMilli(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixMilli()
}

// FromUnixMilli converts milliseconds since epoch to a UTC time.
func FromUnixMilli(ms int64) time.Time {
	if ms == 0 {
		return time.Time{}
	}
	return time.UnixMilli(ms).UTC()
}
