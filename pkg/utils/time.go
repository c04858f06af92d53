package utils

import "time"

// sortableRFC3339 pins the fractional seconds to nine digits. RFC3339Nano
// strips trailing zeros, which breaks lexicographic ordering of the store's
// sort keys; a fixed-width fraction keeps string order equal to time order.
const sortableRFC3339 = "2006-01-02T15:04:05.000000000Z07:00"

// FormatRFC3339 formats a time as UTC RFC3339 with a fixed-width
// nanosecond fraction, so formatted timestamps sort as strings.
func FormatRFC3339(t time.Time) string {
	return t.UTC().Format(sortableRFC3339)
}

// ParseRFC3339 parses a time string in RFC3339 format
func ParseRFC3339(s string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, s)
}
