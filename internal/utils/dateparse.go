package utils

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/ramanasai/tinyworkout/internal/tracker"
)

// relativePattern matches "3d", "2 weeks", "12h ago" and similar.
var relativePattern = regexp.MustCompile(`^(\d+)\s*(h|hours?|d|days?|w|weeks?|months?)(\s+ago)?$`)

// sinceLayouts are the absolute forms accepted by --since, read in the
// calendar's zone.
var sinceLayouts = []string{
	tracker.DateLayout,
	"2006-01-02 15:04",
	"Jan 2, 2006",
	"January 2, 2006",
	"Jan 2 2006",
}

// ParseSince resolves a --since value against the wall clock.
func ParseSince(input string, cal tracker.Calendar) (time.Time, error) {
	return ParseSinceAt(input, cal, time.Now())
}

// ParseSinceAt resolves a --since value relative to now. Named periods start
// at midnight of cal's zone; counted days and weeks move by calendar days.
func ParseSinceAt(input string, cal tracker.Calendar, now time.Time) (time.Time, error) {
	raw := strings.TrimSpace(input)
	input = strings.Join(strings.Fields(strings.ToLower(raw)), " ")
	if input == "" {
		return time.Time{}, fmt.Errorf("empty date input")
	}
	loc := cal.Location()
	now = now.In(loc)
	midnight := startOfDay(now)

	switch input {
	case "today":
		return midnight, nil
	case "yesterday":
		return midnight.AddDate(0, 0, -1), nil
	case "this week":
		back := (int(now.Weekday()) + 6) % 7 // days since Monday
		return midnight.AddDate(0, 0, -back), nil
	case "this month":
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc), nil
	case "this year":
		return time.Date(now.Year(), 1, 1, 0, 0, 0, 0, loc), nil
	case "last week":
		return now.AddDate(0, 0, -7), nil
	case "last month":
		return now.AddDate(0, -1, 0), nil
	}

	if m := relativePattern.FindStringSubmatch(input); m != nil {
		n, err := strconv.Atoi(m[1])
		if err != nil {
			return time.Time{}, fmt.Errorf("bad count in %q: %w", input, err)
		}
		switch m[2][0] {
		case 'h':
			return now.Add(-time.Duration(n) * time.Hour), nil
		case 'd':
			return now.AddDate(0, 0, -n), nil
		case 'w':
			return now.AddDate(0, 0, -7*n), nil
		default:
			return now.AddDate(0, -n, 0), nil
		}
	}

	if t, err := time.Parse(time.RFC3339Nano, raw); err == nil {
		return t.In(loc), nil
	}
	for _, layout := range sinceLayouts {
		if t, err := time.ParseInLocation(layout, input, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unable to parse date: %s", input)
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
