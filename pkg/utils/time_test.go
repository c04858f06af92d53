package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatRFC3339_FixedWidthFraction(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want string
	}{
		{"whole second", time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC), "2026-03-01T10:00:00.000000000Z"},
		{"trailing zeros kept", time.Date(2026, 3, 1, 10, 0, 0, 500000000, time.UTC), "2026-03-01T10:00:00.500000000Z"},
		{"full precision", time.Date(2026, 3, 1, 10, 0, 0, 123456789, time.UTC), "2026-03-01T10:00:00.123456789Z"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatRFC3339(tt.in))
		})
	}
}

func TestFormatRFC3339_StringOrderMatchesTimeOrder(t *testing.T) {
	// Pairs chosen so RFC3339Nano would order them wrongly: a fraction
	// that is a prefix of a longer one, and a whole second vs a fraction.
	tests := []struct {
		name    string
		earlier time.Time
		later   time.Time
	}{
		{"prefix fraction", time.Date(2026, 3, 1, 10, 0, 0, 120000000, time.UTC), time.Date(2026, 3, 1, 10, 0, 0, 123000000, time.UTC)},
		{"whole second vs fraction", time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC), time.Date(2026, 3, 1, 10, 0, 0, 500000000, time.UTC)},
		{"distinct seconds", time.Date(2026, 3, 1, 10, 0, 0, 999999999, time.UTC), time.Date(2026, 3, 1, 10, 0, 1, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Less(t, FormatRFC3339(tt.earlier), FormatRFC3339(tt.later))
		})
	}
}

func TestParseRFC3339_RoundTrip(t *testing.T) {
	in := time.Date(2026, 3, 1, 10, 0, 0, 120000000, time.UTC)

	back, err := ParseRFC3339(FormatRFC3339(in))

	require.NoError(t, err)
	assert.True(t, in.Equal(back))
}
