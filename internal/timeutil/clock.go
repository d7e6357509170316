// Package timeutil provides the clock and calendar helpers the time entry
// lifecycle depends on. All duration arithmetic downstream is in integer
// seconds; day boundaries are computed in the configured location.
package timeutil

import (
	"fmt"
	"time"
)

// Clock supplies current time, calendar boundaries and epoch conversions.
// The time entry operations take it as a collaborator so tests can pin "now".
type Clock interface {
	// Now returns the current time in the clock's location.
	Now() time.Time
	// ParseISO parses an ISO-8601 timestamp.
	ParseISO(s string) (time.Time, error)
	// StartOfToday returns 00:00:00 of the current day.
	StartOfToday() time.Time
	// StartOfYesterday returns 00:00:00 of the previous day.
	StartOfYesterday() time.Time
	// LastMinuteToday returns 23:59:59 of the current day.
	LastMinuteToday() time.Time
	// EpochSeconds returns the UTC epoch seconds of an instant.
	EpochSeconds(t time.Time) int64
}

// SystemClock is the real Clock, reading time.Now in a fixed location.
type SystemClock struct {
	loc *time.Location
}

// NewSystemClock returns a clock for the named IANA timezone. An empty name
// selects the local timezone.
func NewSystemClock(timezone string) (*SystemClock, error) {
	if timezone == "" {
		return &SystemClock{loc: time.Local}, nil
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}
	return &SystemClock{loc: loc}, nil
}

func (c *SystemClock) Now() time.Time {
	return time.Now().In(c.loc)
}

func (c *SystemClock) ParseISO(s string) (time.Time, error) {
	return ParseISO(s)
}

func (c *SystemClock) StartOfToday() time.Time {
	now := c.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, c.loc)
}

func (c *SystemClock) StartOfYesterday() time.Time {
	return c.StartOfToday().AddDate(0, 0, -1)
}

func (c *SystemClock) LastMinuteToday() time.Time {
	now := c.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 23, 59, 59, 0, c.loc)
}

func (c *SystemClock) EpochSeconds(t time.Time) int64 {
	return t.Unix()
}

// isoLayouts are the accepted ISO-8601 shapes. The remote store emits
// RFC 3339; entries created by older clients may lack a zone offset.
var isoLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04:05.999999999",
}

// ParseISO parses an ISO-8601 timestamp string.
func ParseISO(s string) (time.Time, error) {
	var lastErr error
	for _, layout := range isoLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, fmt.Errorf("invalid ISO-8601 timestamp %q: %w", s, lastErr)
}

// FormatISO formats an instant as an ISO-8601 string for the wire.
func FormatISO(t time.Time) string {
	return t.Format(time.RFC3339)
}

// FormatElapsed formats a number of elapsed seconds in human-readable form.
func FormatElapsed(seconds int64) string {
	if seconds < 0 {
		seconds = 0
	}
	d := time.Duration(seconds) * time.Second
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
	if d < time.Hour {
		minutes := int(d.Minutes())
		secs := int(d.Seconds()) % 60
		if secs > 0 {
			return fmt.Sprintf("%dm %ds", minutes, secs)
		}
		return fmt.Sprintf("%dm", minutes)
	}

	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60

	if minutes > 0 {
		return fmt.Sprintf("%dh %dm", hours, minutes)
	}
	return fmt.Sprintf("%dh", hours)
}
