// Package parser turns the natural-language timestamp expressions accepted
// on the command line into concrete instants.
package parser

import (
	"strings"
	"time"

	"github.com/markusmobius/go-dateparser"

	"github.com/swcurran/toggl-cli/internal/errors"
)

// Timestamp parses a natural language timestamp expression such as "now",
// "10 minutes ago", "yesterday 5pm" or an ISO-8601 string.
func Timestamp(input string, now time.Time) (time.Time, error) {
	input = strings.TrimSpace(input)
	if input == "" || strings.EqualFold(input, "now") {
		return now, nil
	}

	cfg := &dateparser.Configuration{
		CurrentTime: now,
	}
	result, err := dateparser.Parse(cfg, input)
	if err != nil {
		return time.Time{}, errors.Wrapf(err, "cannot parse timestamp %q", input)
	}
	return result.Time, nil
}

// Duration parses a Go-style duration expression such as "1h30m".
func Duration(input string) (time.Duration, error) {
	d, err := time.ParseDuration(strings.TrimSpace(input))
	if err != nil {
		return 0, errors.Wrapf(err, "cannot parse duration %q", input)
	}
	return d, nil
}
