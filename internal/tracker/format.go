package tracker

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DisplayGroup is one consolidated line of the log or the queue. Offset is the
// store position of the group's first member; Count members follow it.
type DisplayGroup struct {
	Timestamp    time.Time `json:"timestamp"`
	ExerciseID   string    `json:"id"`
	DisplayTitle string    `json:"displayTitle"`
	Note         string    `json:"note,omitempty"`
	Count        int       `json:"count"`
	Offset       int       `json:"-"`
}

// member is the part of a log or queue entry the formatter reads.
type member struct {
	timestamp  time.Time
	exerciseID string
	title      string
	note       string
}

func formatGroup(offset int, run []member) DisplayGroup {
	first := run[0]
	return DisplayGroup{
		Timestamp:    first.timestamp,
		ExerciseID:   first.exerciseID,
		DisplayTitle: DisplayTitle(first.title, len(run)),
		Note:         first.note,
		Count:        len(run),
		Offset:       offset,
	}
}

// DisplayTitle scales an exercise title to count repetitions:
//
//	"8 reps dumbbell" x3 -> "3 sets, 8 reps dumbbell"
//	"500m run"        x3 -> "1.5km run"
//	"20 squats"       x3 -> "60 squats"
//	"stretch"         x3 -> "3 x stretch"
func DisplayTitle(title string, count int) string {
	if count <= 1 {
		return title
	}
	if strings.Contains(title, "reps") {
		return fmt.Sprintf("%d sets, %s", count, title)
	}
	qty, ok := leadingInt(title)
	if !ok {
		return fmt.Sprintf("%d x %s", count, title)
	}
	if strings.Contains(title, "m run") {
		meters := qty * count
		if meters >= 1000 {
			km := strconv.FormatFloat(float64(meters)/1000, 'f', -1, 64)
			return km + "km run"
		}
		return fmt.Sprintf("%dm run", meters)
	}
	unit, spaced := unitOf(title)
	if !spaced {
		return fmt.Sprintf("%d%s", qty*count, unit)
	}
	return fmt.Sprintf("%d %s", qty*count, unit)
}

// leadingInt parses the integer a title starts with, ignoring leading spaces.
func leadingInt(s string) (int, bool) {
	s = strings.TrimLeft(s, " \t")
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	start := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == start {
		return 0, false
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}

// unitOf returns what follows the quantity: the text after the first space,
// or the text after the digits when the title has no space ("5km").
func unitOf(title string) (string, bool) {
	t := strings.TrimLeft(title, " \t")
	if i := strings.Index(t, " "); i >= 0 {
		return strings.TrimSpace(t[i:]), true
	}
	return strings.TrimLeft(t, "+-0123456789"), false
}
