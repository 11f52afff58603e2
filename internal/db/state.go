package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/ramanasai/tinyworkout/internal/tracker"
)

// Store persists the tracker state. Every Save replaces the whole aggregate.
type Store struct {
	db *sql.DB
}

// OpenStore opens the database at path.
func OpenStore(path string) (*Store, error) {
	dbh, err := Open(path)
	if err != nil {
		return nil, fmt.Errorf("open store %s: %w", path, err)
	}
	return &Store{db: dbh}, nil
}

// Close releases the database handle.
func (s *Store) Close() error { return s.db.Close() }

// Load reads the state. A database without a ledger row yields the state of
// a first launch; rows with unreadable timestamps are skipped.
func (s *Store) Load(ctx context.Context) (*tracker.State, error) {
	st := tracker.NewState()

	var owed sql.NullInt64
	var last sql.NullString
	err := s.db.QueryRowContext(ctx, `SELECT exercises_owed, last_checked_date FROM ledger WHERE id = 1`).Scan(&owed, &last)
	switch {
	case errors.Is(err, sql.ErrNoRows):
	case err != nil:
		return nil, fmt.Errorf("load ledger: %w", err)
	default:
		if owed.Valid {
			st.Ledger.Owed = int(owed.Int64)
		}
		if last.Valid {
			d := tracker.NormalizeDate(last.String)
			st.Ledger.LastCheckedDate = &d
		}
	}

	if st.Log, err = s.loadLog(ctx); err != nil {
		return nil, err
	}
	if st.Queue, err = s.loadQueue(ctx); err != nil {
		return nil, err
	}
	st.Normalize()
	return st, nil
}

func (s *Store) loadLog(ctx context.Context) ([]tracker.LogEntry, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT seq, ts, exercise_id, title, note FROM log_entries ORDER BY ts ASC, seq ASC`)
	if err != nil {
		return nil, fmt.Errorf("load log: %w", err)
	}
	defer rows.Close()

	var out []tracker.LogEntry
	for rows.Next() {
		var seq int64
		var ts string
		var e tracker.LogEntry
		if err := rows.Scan(&seq, &ts, &e.ExerciseID, &e.Title, &e.Note); err != nil {
			return nil, fmt.Errorf("scan log entry: %w", err)
		}
		if e.Timestamp, err = tracker.ParseTimestamp(ts); err != nil {
			logrus.WithFields(logrus.Fields{"seq": seq, "ts": ts}).Warn("skipping log entry with bad timestamp")
			continue
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (s *Store) loadQueue(ctx context.Context) ([]tracker.QueueEntry, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT exercise_id, title, icon, note FROM queue_entries ORDER BY seq ASC`)
	if err != nil {
		return nil, fmt.Errorf("load queue: %w", err)
	}
	defer rows.Close()

	var out []tracker.QueueEntry
	for rows.Next() {
		var q tracker.QueueEntry
		if err := rows.Scan(&q.ExerciseID, &q.Title, &q.Icon, &q.Note); err != nil {
			return nil, fmt.Errorf("scan queue entry: %w", err)
		}
		out = append(out, q)
	}
	return out, rows.Err()
}

// Save writes st in a single transaction.
func (s *Store) Save(ctx context.Context, st *tracker.State) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			err = errors.Join(err, ignoreDone(tx.Rollback()))
		}
	}()

	var last sql.NullString
	if st.Ledger.LastCheckedDate != nil {
		last = sql.NullString{String: *st.Ledger.LastCheckedDate, Valid: true}
	}
	if _, err = tx.ExecContext(ctx, `
		INSERT INTO ledger(id, exercises_owed, last_checked_date) VALUES(1, ?, ?)
		ON CONFLICT(id) DO UPDATE SET exercises_owed = excluded.exercises_owed, last_checked_date = excluded.last_checked_date`,
		st.Ledger.Owed, last); err != nil {
		return fmt.Errorf("save ledger: %w", err)
	}

	if _, err = tx.ExecContext(ctx, `DELETE FROM log_entries`); err != nil {
		return fmt.Errorf("clear log: %w", err)
	}
	for _, e := range st.Log {
		if _, err = tx.ExecContext(ctx, `INSERT INTO log_entries(ts, exercise_id, title, note) VALUES(?,?,?,?)`,
			tracker.FormatTimestamp(e.Timestamp), e.ExerciseID, e.Title, e.Note); err != nil {
			return fmt.Errorf("save log entry: %w", err)
		}
	}

	if _, err = tx.ExecContext(ctx, `DELETE FROM queue_entries`); err != nil {
		return fmt.Errorf("clear queue: %w", err)
	}
	for _, q := range st.Queue {
		if _, err = tx.ExecContext(ctx, `INSERT INTO queue_entries(exercise_id, title, icon, note) VALUES(?,?,?,?)`,
			q.ExerciseID, q.Title, q.Icon, q.Note); err != nil {
			return fmt.Errorf("save queue entry: %w", err)
		}
	}

	return tx.Commit()
}

func ignoreDone(err error) error {
	if errors.Is(err, sql.ErrTxDone) {
		return nil
	}
	return err
}
