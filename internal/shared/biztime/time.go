// Package biztime centralizes time handling. All storage and transport
// use UTC; implicit local timezone is prohibited.
package biztime

import "time"

// NowUTC returns the current time in UTC.
func NowUTC() time.Time {
	return time.Now().UTC()
}

// ToUTC normalizes a time value to UTC.
func ToUTC(t time.Time) time.Time {
	return t.UTC()
}

// FromUnixMilli converts a millisecond timestamp to a UTC time value.
func FromUnixMilli(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}

// Location returns the timezone scheduled jobs run in.
func Location() *time.Location {
	return time.UTC
}

// CutoffBefore returns the UTC instant the given number of minutes ago.
// The inactivity sweep compares the newest staff reply against it.
func CutoffBefore(minutes int) time.Time {
	return NowUTC().Add(-time.Duration(minutes) * time.Minute)
}
