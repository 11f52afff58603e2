package tracker

import (
	"errors"
	"strings"
	"time"

	"github.com/ramanasai/tinyworkout/internal/catalog"
)

var (
	// ErrUnknownExercise is returned when an exercise id is not in the catalog.
	ErrUnknownExercise = errors.New("unknown exercise")
	// ErrGroupNotFound is returned when a delete or commit target does not
	// resolve to entries of the store.
	ErrGroupNotFound = errors.New("group not found")
)

// Snapshot is the state a UI re-renders from after an operation.
type Snapshot struct {
	Owed  int
	Log   []LogEntry
	Queue []QueueEntry
}

// Tracker owns a State and routes every mutation through a named operation.
// Failed operations return an error and leave the state untouched. A Tracker
// is not safe for concurrent use.
type Tracker struct {
	state   *State
	catalog *catalog.Catalog
	clock   Clock
	cal     Calendar
	quota   int
	window  time.Duration
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithClock sets the clock used to stamp log entries.
func WithClock(c Clock) Option { return func(t *Tracker) { t.clock = c } }

// WithCalendar sets the calendar used for date sections and the rollover.
func WithCalendar(c Calendar) Option { return func(t *Tracker) { t.cal = c } }

// WithQuota sets the number of exercises the daily rollover adds.
func WithQuota(n int) Option { return func(t *Tracker) { t.quota = n } }

// WithMergeWindow sets the log grouping window.
func WithMergeWindow(d time.Duration) Option { return func(t *Tracker) { t.window = d } }

// New returns a Tracker over st. A nil st starts from NewState and a nil cat
// uses the built-in catalog.
func New(st *State, cat *catalog.Catalog, opts ...Option) *Tracker {
	if st == nil {
		st = NewState()
	}
	st.Normalize()
	if cat == nil {
		cat = catalog.Default()
	}
	t := &Tracker{
		state:   st,
		catalog: cat,
		clock:   SystemClock,
		cal:     NewCalendar(nil),
		quota:   DefaultQuota,
		window:  DefaultMergeWindow,
	}
	for _, o := range opts {
		o(t)
	}
	if t.window <= 0 {
		t.window = DefaultMergeWindow
	}
	if t.quota < 0 {
		t.quota = 0
	}
	return t
}

// State returns the owned aggregate for persistence.
func (t *Tracker) State() *State { return t.state }

// Catalog returns the exercise catalog.
func (t *Tracker) Catalog() *catalog.Catalog { return t.catalog }

// Calendar returns the calendar used for dates.
func (t *Tracker) Calendar() Calendar { return t.cal }

// Owed returns the current owed count.
func (t *Tracker) Owed() int { return t.state.Ledger.Owed }

// LogView returns the grouped activity log, newest first.
func (t *Tracker) LogView() []DaySection {
	return GroupLog(t.state.Log, t.cal, t.window)
}

// QueueView returns the consolidated queue in insertion order.
func (t *Tracker) QueueView() []DisplayGroup {
	return GroupQueue(t.state.Queue)
}

// LogExercise records one completion of the exercise id.
func (t *Tracker) LogExercise(id, note string) (Snapshot, error) {
	ex, ok := t.catalog.Lookup(id)
	if !ok {
		return t.snapshot(), ErrUnknownExercise
	}
	t.state.Ledger.RecordCompletion()
	t.state.insertLog(LogEntry{
		Timestamp:  t.clock.Now(),
		ExerciseID: ex.ID,
		Title:      ex.Title,
		Note:       noteFor(ex, note),
	})
	return t.snapshot(), nil
}

// DeleteMostRecentGroup removes the newest displayed log group and puts its
// exercises back on the ledger.
func (t *Tracker) DeleteMostRecentGroup() (Snapshot, error) {
	view := t.LogView()
	if len(view) == 0 || len(view[0].Groups) == 0 {
		return t.snapshot(), ErrGroupNotFound
	}
	g := view[0].Groups[0]
	log := t.state.Log
	if g.Offset < 0 || g.Offset+g.Count > len(log) || !log[g.Offset].Timestamp.Equal(g.Timestamp) {
		return t.snapshot(), ErrGroupNotFound
	}
	t.state.Log = append(log[:g.Offset:g.Offset], log[g.Offset+g.Count:]...)
	t.state.Ledger.RestoreCompletions(g.Count)
	return t.snapshot(), nil
}

// Enqueue appends the exercise id to the queue.
func (t *Tracker) Enqueue(id, note string) ([]QueueEntry, error) {
	ex, ok := t.catalog.Lookup(id)
	if !ok {
		return t.queueSnapshot(), ErrUnknownExercise
	}
	t.state.Queue = append(t.state.Queue, QueueEntry{
		ExerciseID: ex.ID,
		Title:      ex.Title,
		Icon:       ex.Icon,
		Note:       noteFor(ex, note),
	})
	return t.queueSnapshot(), nil
}

// CommitQueueGroup logs every entry of the queue group at index and removes
// them from the queue. Each logged entry pays off one owed exercise.
func (t *Tracker) CommitQueueGroup(index int) (Snapshot, error) {
	groups := t.QueueView()
	if index < 0 || index >= len(groups) {
		return t.snapshot(), ErrGroupNotFound
	}
	start := 0
	for _, g := range groups[:index] {
		start += g.Count
	}
	count := groups[index].Count
	now := t.clock.Now()
	for _, q := range t.state.Queue[start : start+count] {
		t.state.Ledger.RecordCompletion()
		t.state.insertLog(LogEntry{
			Timestamp:  now,
			ExerciseID: q.ExerciseID,
			Title:      q.Title,
			Note:       q.Note,
		})
	}
	q := t.state.Queue
	t.state.Queue = append(q[:start:start], q[start+count:]...)
	return t.snapshot(), nil
}

// noteFor keeps the note only for exercises that take one.
func noteFor(ex catalog.Exercise, note string) string {
	if !ex.HasNote {
		return ""
	}
	return strings.TrimSpace(note)
}

// ClearQueue empties the queue.
func (t *Tracker) ClearQueue() []QueueEntry {
	t.state.Queue = nil
	return t.queueSnapshot()
}

// ApplyDailyRollover adds the daily quota once per calendar date and returns
// the owed count and whether the quota was applied.
func (t *Tracker) ApplyDailyRollover(now time.Time) (int, bool) {
	applied := t.state.Ledger.ApplyRollover(t.cal.Date(now), t.quota)
	return t.state.Ledger.Owed, applied
}

// Today returns the current calendar date.
func (t *Tracker) Today() string { return t.cal.Date(t.clock.Now()) }

func (t *Tracker) snapshot() Snapshot {
	return Snapshot{
		Owed:  t.state.Ledger.Owed,
		Log:   append([]LogEntry(nil), t.state.Log...),
		Queue: t.queueSnapshot(),
	}
}

func (t *Tracker) queueSnapshot() []QueueEntry {
	return append([]QueueEntry(nil), t.state.Queue...)
}
