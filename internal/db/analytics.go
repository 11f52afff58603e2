package db

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ramanasai/tinyworkout/internal/tracker"
)

// ExerciseTotal is how often one exercise was logged in a period
type ExerciseTotal struct {
	ExerciseID   string    `json:"id"`
	Title        string    `json:"title"`
	DisplayTitle string    `json:"displayTitle"`
	Count        int       `json:"count"`
	First        time.Time `json:"first"`
	Last         time.Time `json:"last"`
}

// DayTotal is the number of entries logged on one calendar date
type DayTotal struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// ExerciseTotals sums log entries per exercise since the given instant, most
// frequent first. A zero since covers the whole log.
func (s *Store) ExerciseTotals(ctx context.Context, since time.Time) ([]ExerciseTotal, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT exercise_id, title, COUNT(*), MIN(ts), MAX(ts)
		FROM log_entries
		WHERE ts >= ?
		GROUP BY exercise_id, title
		ORDER BY COUNT(*) DESC, exercise_id ASC
	`, sinceArg(since))
	if err != nil {
		return nil, fmt.Errorf("failed to query exercise totals: %w", err)
	}
	defer rows.Close()

	var out []ExerciseTotal
	for rows.Next() {
		var t ExerciseTotal
		var first, last string
		if err := rows.Scan(&t.ExerciseID, &t.Title, &t.Count, &first, &last); err != nil {
			return nil, err
		}
		var errFirst, errLast error
		t.First, errFirst = tracker.ParseTimestamp(first)
		t.Last, errLast = tracker.ParseTimestamp(last)
		if errFirst != nil || errLast != nil {
			logrus.WithFields(logrus.Fields{"exercise": t.ExerciseID, "first": first, "last": last}).
				Warn("skipping exercise total with bad timestamp")
			continue
		}
		t.DisplayTitle = tracker.DisplayTitle(t.Title, t.Count)
		out = append(out, t)
	}
	return out, rows.Err()
}

// DayTotals counts log entries per calendar date of cal since the given
// instant, newest date first. SQLite's DATE() works in UTC, so bucketing
// happens here.
func (s *Store) DayTotals(ctx context.Context, since time.Time, cal tracker.Calendar) ([]DayTotal, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT ts FROM log_entries WHERE ts >= ?`, sinceArg(since))
	if err != nil {
		return nil, fmt.Errorf("failed to query day totals: %w", err)
	}
	defer rows.Close()

	counts := map[string]int{}
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, err
		}
		ts, err := tracker.ParseTimestamp(raw)
		if err != nil {
			continue
		}
		counts[cal.Date(ts)]++
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	out := make([]DayTotal, 0, len(counts))
	for d, n := range counts {
		out = append(out, DayTotal{Date: d, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date > out[j].Date })
	return out, nil
}

// Streak is the number of consecutive dates with activity ending today, or
// ending yesterday when nothing has been logged today yet.
func Streak(days []DayTotal, today string) int {
	active := make(map[string]bool, len(days))
	for _, d := range days {
		if d.Count > 0 {
			active[d.Date] = true
		}
	}
	day, err := time.Parse(tracker.DateLayout, today)
	if err != nil {
		return 0
	}
	if !active[today] {
		day = day.AddDate(0, 0, -1)
	}
	n := 0
	for active[day.Format(tracker.DateLayout)] {
		n++
		day = day.AddDate(0, 0, -1)
	}
	return n
}

// sinceArg formats since for comparison against the stored timestamp text,
// which sorts chronologically.
func sinceArg(since time.Time) string {
	if since.IsZero() {
		return ""
	}
	return tracker.FormatTimestamp(since)
}
