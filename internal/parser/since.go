// Package parser turns user-supplied time expressions into instants.
package parser

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/markusmobius/go-dateparser"

	"github.com/keystr/keystr/internal/errors"
)

// periodRegex matches period expressions like "this week", "last month".
var periodRegex = regexp.MustCompile(`(?i)^(this|current|last|previous)\s+(hour|day|week|month|quarter|year)$`)

// ParseSince parses the start of a stats window relative to now. It
// accepts periods ("this week", "last month"), relative phrases
// ("3 days ago") and absolute dates ("2025-01-01").
func ParseSince(input string, now time.Time) (time.Time, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return time.Time{}, errors.NewUserErrorFrom(errors.ErrInvalidSince, "empty time expression", "")
	}

	var t time.Time
	switch lower := strings.ToLower(input); {
	case lower == "today":
		t = startOfDay(now)
	case lower == "yesterday":
		t = startOfDay(now).AddDate(0, 0, -1)
	default:
		if match := periodRegex.FindStringSubmatch(input); match != nil {
			t = periodStart(now, match[1], match[2])
			break
		}

		cfg := &dateparser.Configuration{
			CurrentTime: now,
		}
		result, err := dateparser.Parse(cfg, input)
		if err != nil {
			return time.Time{}, errors.NewUserErrorFrom(errors.ErrInvalidSince,
				fmt.Sprintf("invalid time expression %q", input), "")
		}
		t = result.Time
	}

	if t.After(now) {
		return time.Time{}, errors.NewUserErrorFrom(errors.ErrInvalidSince,
			fmt.Sprintf("time expression %q is in the future", input), "")
	}
	return t, nil
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// periodStart returns the start of the current or previous period.
func periodStart(now time.Time, modifier, period string) time.Time {
	previous := strings.EqualFold(modifier, "last") || strings.EqualFold(modifier, "previous")

	var t time.Time
	switch strings.ToLower(period) {
	case "hour":
		t = time.Date(now.Year(), now.Month(), now.Day(), now.Hour(), 0, 0, 0, now.Location())
		if previous {
			t = t.Add(-time.Hour)
		}

	case "day":
		t = startOfDay(now)
		if previous {
			t = t.AddDate(0, 0, -1)
		}

	case "week":
		// Weeks start on Monday
		weekday := int(now.Weekday())
		if weekday == 0 {
			weekday = 7
		}
		t = time.Date(now.Year(), now.Month(), now.Day()-weekday+1, 0, 0, 0, 0, now.Location())
		if previous {
			t = t.AddDate(0, 0, -7)
		}

	case "month":
		t = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		if previous {
			t = t.AddDate(0, -1, 0)
		}

	case "quarter":
		quarter := (int(now.Month()) - 1) / 3
		t = time.Date(now.Year(), time.Month(quarter*3+1), 1, 0, 0, 0, 0, now.Location())
		if previous {
			t = t.AddDate(0, -3, 0)
		}

	case "year":
		t = time.Date(now.Year(), 1, 1, 0, 0, 0, 0, now.Location())
		if previous {
			t = t.AddDate(-1, 0, 0)
		}
	}

	return t
}
