package tracker

import (
	"sort"
	"time"
)

// DaySection holds the groups of one calendar date, newest first.
type DaySection struct {
	Date   string         `json:"date"`
	Groups []DisplayGroup `json:"groups"`
}

// GroupLog consolidates log entries into date sections. Entries of one date
// join the open group when they share its exercise and note and follow its
// latest member by less than window. Sections and the groups inside them are
// ordered newest first. Offsets index entries in timestamp order, which is the
// store order of a normalized State.
func GroupLog(entries []LogEntry, cal Calendar, window time.Duration) []DaySection {
	if len(entries) == 0 {
		return nil
	}
	sorted := append([]LogEntry(nil), entries...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp.Before(sorted[j].Timestamp)
	})

	var (
		sections []DaySection
		run      []member
		runStart int
		date     string
	)
	flush := func() {
		if len(run) == 0 {
			return
		}
		sections[len(sections)-1].Groups = append(sections[len(sections)-1].Groups, formatGroup(runStart, run))
		run = nil
	}
	for i, e := range sorted {
		m := member{timestamp: e.Timestamp, exerciseID: e.ExerciseID, title: e.Title, note: e.Note}
		d := cal.Date(e.Timestamp)
		if len(sections) == 0 || d != date {
			flush()
			date = d
			sections = append(sections, DaySection{Date: d})
		}
		if len(run) > 0 && joins(run[len(run)-1], m, window) {
			run = append(run, m)
			continue
		}
		flush()
		run = []member{m}
		runStart = i
	}
	flush()

	for _, s := range sections {
		reverseGroups(s.Groups)
	}
	for i, j := 0, len(sections)-1; i < j; i, j = i+1, j-1 {
		sections[i], sections[j] = sections[j], sections[i]
	}
	return sections
}

// GroupQueue consolidates queue entries in insertion order. Adjacent entries
// merge on exercise and note alone.
func GroupQueue(queue []QueueEntry) []DisplayGroup {
	var (
		groups   []DisplayGroup
		run      []member
		runStart int
	)
	for i, q := range queue {
		m := member{exerciseID: q.ExerciseID, title: q.Title, note: q.Note}
		if len(run) > 0 && joins(run[len(run)-1], m, 0) {
			run = append(run, m)
			continue
		}
		if len(run) > 0 {
			groups = append(groups, formatGroup(runStart, run))
		}
		run = []member{m}
		runStart = i
	}
	if len(run) > 0 {
		groups = append(groups, formatGroup(runStart, run))
	}
	return groups
}

// joins reports whether next extends a group whose latest member is prev. A
// zero window disables the time check.
func joins(prev, next member, window time.Duration) bool {
	if prev.exerciseID != next.exerciseID || prev.note != next.note {
		return false
	}
	if window <= 0 {
		return true
	}
	return next.timestamp.Sub(prev.timestamp) < window
}

func reverseGroups(g []DisplayGroup) {
	for i, j := 0, len(g)-1; i < j; i, j = i+1, j-1 {
		g[i], g[j] = g[j], g[i]
	}
}
