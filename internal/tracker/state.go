package tracker

import (
	"sort"
	"time"
)

const (
	// DefaultQuota is the number of exercises added by the daily rollover.
	DefaultQuota = 10
	// DefaultOwed is the owed count of a fresh or unreadable state.
	DefaultOwed = 10
	// DefaultMergeWindow is the largest gap between two log entries that still
	// lets them share a group.
	DefaultMergeWindow = 10 * time.Minute
)

// LogEntry records one completed exercise. Title is a snapshot taken when the
// entry was created and is never re-derived from the catalog.
type LogEntry struct {
	Timestamp  time.Time `json:"timestamp"`
	ExerciseID string    `json:"id"`
	Title      string    `json:"title"`
	Note       string    `json:"note"`
}

// QueueEntry is an exercise picked for later.
type QueueEntry struct {
	ExerciseID string `json:"id"`
	Title      string `json:"title"`
	Icon       string `json:"icon,omitempty"`
	Note       string `json:"note"`
}

// State is the whole persisted aggregate.
type State struct {
	Ledger Ledger
	Log    []LogEntry
	Queue  []QueueEntry
}

// NewState returns the state of a first launch.
func NewState() *State {
	return &State{Ledger: Ledger{Owed: DefaultOwed}}
}

// Normalize restores the invariants a loaded state may violate: the log is
// sorted by timestamp and the owed count is not negative.
func (s *State) Normalize() {
	if s.Ledger.Owed < 0 {
		s.Ledger.Owed = 0
	}
	sort.SliceStable(s.Log, func(i, j int) bool {
		return s.Log[i].Timestamp.Before(s.Log[j].Timestamp)
	})
}

// Clone returns a deep copy.
func (s *State) Clone() *State {
	out := &State{Ledger: s.Ledger}
	if s.Ledger.LastCheckedDate != nil {
		d := *s.Ledger.LastCheckedDate
		out.Ledger.LastCheckedDate = &d
	}
	out.Log = append([]LogEntry(nil), s.Log...)
	out.Queue = append([]QueueEntry(nil), s.Queue...)
	return out
}

// insertLog adds e keeping the log sorted. Entries with equal timestamps keep
// insertion order.
func (s *State) insertLog(e LogEntry) {
	i := sort.Search(len(s.Log), func(i int) bool {
		return s.Log[i].Timestamp.After(e.Timestamp)
	})
	s.Log = append(s.Log, LogEntry{})
	copy(s.Log[i+1:], s.Log[i:])
	s.Log[i] = e
}
