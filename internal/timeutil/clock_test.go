package timeutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseISO(t *testing.T) {
	t.Run("rfc3339", func(t *testing.T) {
		parsed, err := ParseISO("2023-05-15T14:00:00Z")
		require.NoError(t, err)
		assert.Equal(t, time.Date(2023, 5, 15, 14, 0, 0, 0, time.UTC), parsed.UTC())
	})

	t.Run("offset", func(t *testing.T) {
		parsed, err := ParseISO("2023-05-15T14:00:00+02:00")
		require.NoError(t, err)
		assert.Equal(t, int64(1684152000), parsed.Unix())
	})

	t.Run("no_zone", func(t *testing.T) {
		parsed, err := ParseISO("2023-05-15T14:00:00")
		require.NoError(t, err)
		assert.Equal(t, 14, parsed.Hour())
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := ParseISO("not a timestamp")
		assert.Error(t, err)
	})
}

func TestFormatISORoundTrip(t *testing.T) {
	at := time.Date(2023, 5, 15, 14, 30, 45, 0, time.UTC)
	parsed, err := ParseISO(FormatISO(at))
	require.NoError(t, err)
	assert.True(t, at.Equal(parsed))
}

func TestFormatElapsed(t *testing.T) {
	tests := []struct {
		seconds  int64
		expected string
	}{
		{0, "0s"},
		{30, "30s"},
		{59, "59s"},
		{60, "1m"},
		{90, "1m 30s"},
		{300, "5m"},
		{3540, "59m"},
		{3600, "1h"},
		{5400, "1h 30m"},
		{7200, "2h"},
		{30600, "8h 30m"},
		{-10, "0s"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatElapsed(tt.seconds))
		})
	}
}

func TestSystemClockBoundaries(t *testing.T) {
	clock, err := NewSystemClock("UTC")
	require.NoError(t, err)

	today := clock.StartOfToday()
	assert.Equal(t, 0, today.Hour())
	assert.Equal(t, 0, today.Minute())
	assert.Equal(t, 0, today.Second())

	yesterday := clock.StartOfYesterday()
	assert.Equal(t, today.AddDate(0, 0, -1), yesterday)

	last := clock.LastMinuteToday()
	assert.Equal(t, 23, last.Hour())
	assert.Equal(t, 59, last.Minute())
	assert.Equal(t, 59, last.Second())
	assert.Equal(t, today.Year(), last.Year())
}

func TestSystemClockInvalidTimezone(t *testing.T) {
	_, err := NewSystemClock("Not/AZone")
	assert.Error(t, err)
}

func TestEpochSeconds(t *testing.T) {
	clock, err := NewSystemClock("UTC")
	require.NoError(t, err)

	at := time.Date(2023, 5, 15, 14, 0, 0, 0, time.UTC)
	assert.Equal(t, int64(1684159200), clock.EpochSeconds(at))
}
