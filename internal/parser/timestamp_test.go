package parser

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var parserNow = time.Date(2023, 5, 15, 14, 0, 0, 0, time.UTC)

func TestTimestampNow(t *testing.T) {
	for _, input := range []string{"now", "NOW", "", "  "} {
		got, err := Timestamp(input, parserNow)
		require.NoError(t, err)
		assert.True(t, got.Equal(parserNow), "input %q", input)
	}
}

func TestTimestampRelative(t *testing.T) {
	got, err := Timestamp("10 minutes ago", parserNow)
	require.NoError(t, err)
	assert.True(t, got.Equal(parserNow.Add(-10*time.Minute)))
}

func TestTimestampAbsolute(t *testing.T) {
	got, err := Timestamp("2023-05-14 09:30", parserNow)
	require.NoError(t, err)
	assert.Equal(t, 2023, got.Year())
	assert.Equal(t, time.May, got.Month())
	assert.Equal(t, 14, got.Day())
	assert.Equal(t, 9, got.Hour())
	assert.Equal(t, 30, got.Minute())
}

func TestTimestampGarbage(t *testing.T) {
	_, err := Timestamp("not a moment in time at all ???", parserNow)
	assert.Error(t, err)
}

func TestDuration(t *testing.T) {
	tests := []struct {
		input string
		want  time.Duration
	}{
		{"1h30m", 90 * time.Minute},
		{"45s", 45 * time.Second},
		{" 2h ", 2 * time.Hour},
	}
	for _, tt := range tests {
		got, err := Duration(tt.input)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "input %q", tt.input)
	}
}

func TestDurationInvalid(t *testing.T) {
	_, err := Duration("ninety minutes")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "ninety minutes")
}
