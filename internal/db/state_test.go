package db

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ramanasai/tinyworkout/internal/tracker"
)

func openTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "nested", "tinyworkout.db")
	s, err := OpenStore(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s, path
}

func TestStore_LoadEmpty(t *testing.T) {
	s, _ := openTestStore(t)

	st, err := s.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, tracker.DefaultOwed, st.Ledger.Owed)
	assert.Nil(t, st.Ledger.LastCheckedDate)
	assert.Empty(t, st.Log)
	assert.Empty(t, st.Queue)
}

func TestStore_SaveLoad(t *testing.T) {
	ctx := context.Background()
	s, path := openTestStore(t)

	date := "2024-03-04"
	base := time.Date(2024, 3, 4, 14, 0, 0, 250e6, time.UTC)
	st := &tracker.State{
		Ledger: tracker.Ledger{Owed: 6, LastCheckedDate: &date},
		Log: []tracker.LogEntry{
			{Timestamp: base, ExerciseID: "squats", Title: "20 squats"},
			{Timestamp: base.Add(time.Minute), ExerciseID: "dumbbell", Title: "8 reps dumbbell", Note: "20lb"},
		},
		Queue: []tracker.QueueEntry{
			{ExerciseID: "run", Title: "500m run", Icon: "run.png"},
			{ExerciseID: "barbell", Title: "5 reps barbell", Icon: "barbell.png", Note: "135"},
		},
	}
	require.NoError(t, s.Save(ctx, st))

	got, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, st, got)

	// a second save replaces everything
	st.Log = st.Log[:1]
	st.Queue = nil
	st.Ledger.Owed = 0
	require.NoError(t, s.Save(ctx, st))
	require.NoError(t, s.Close())

	reopened, err := OpenStore(path)
	require.NoError(t, err)
	defer reopened.Close()
	got, err = reopened.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, got.Ledger.Owed)
	assert.Len(t, got.Log, 1)
	assert.Empty(t, got.Queue)
}

func TestStore_SkipsBadTimestamps(t *testing.T) {
	ctx := context.Background()
	s, _ := openTestStore(t)

	_, err := s.db.Exec(`INSERT INTO log_entries(ts, exercise_id, title, note) VALUES('garbage','run','500m run','')`)
	require.NoError(t, err)
	_, err = s.db.Exec(`INSERT INTO log_entries(ts, exercise_id, title, note) VALUES('2024-03-04T14:00:00.000Z','run','500m run','')`)
	require.NoError(t, err)

	st, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, st.Log, 1)
}

func TestEnsureEntryColumns_Idempotent(t *testing.T) {
	s, _ := openTestStore(t)
	require.NoError(t, EnsureEntryColumns(s.db))

	cols, err := columns(s.db, "queue_entries")
	require.NoError(t, err)
	assert.True(t, cols["icon"])
	assert.True(t, cols["note"])
}
