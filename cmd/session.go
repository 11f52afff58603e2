package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/ramanasai/tinyworkout/internal/catalog"
	"github.com/ramanasai/tinyworkout/internal/db"
	"github.com/ramanasai/tinyworkout/internal/tracker"
)

// session is one loaded tracker bound to its store.
type session struct {
	store    *db.Store
	tracker  *tracker.Tracker
	rollover bool
}

// openSession loads the persisted state and applies the daily quota for today.
// The rollover is saved right away so a read-only command still records it.
func openSession(ctx context.Context) (*session, error) {
	store, err := db.OpenStore(cfg.DBPath())
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	st, err := store.Load(ctx)
	if err != nil {
		return nil, errors.Join(fmt.Errorf("load state: %w", err), store.Close())
	}

	t := tracker.New(st, catalog.New(cfg.Exercises),
		tracker.WithCalendar(tracker.NewCalendar(cfg.Location())),
		tracker.WithQuota(cfg.DailyQuota),
		tracker.WithMergeWindow(cfg.MergeWindow),
	)
	s := &session{store: store, tracker: t}

	owed, applied := t.ApplyDailyRollover(tracker.SystemClock.Now())
	if applied {
		s.rollover = true
		logrus.WithFields(logrus.Fields{"owed": owed, "date": t.Today()}).Info("daily quota applied")
		s.save(ctx)
	}
	return s, nil
}

// save persists the whole state. Failures are logged, not returned.
func (s *session) save(ctx context.Context) {
	if err := s.store.Save(ctx, s.tracker.State()); err != nil {
		logrus.WithError(err).Error("failed to save state")
	}
}

func (s *session) Close() error { return s.store.Close() }

// describe maps core failures to messages for the terminal.
func describe(err error, id string) error {
	switch {
	case errors.Is(err, tracker.ErrUnknownExercise):
		return fmt.Errorf("unknown exercise %q (see: tinyworkout exercises)", id)
	case errors.Is(err, tracker.ErrGroupNotFound):
		return fmt.Errorf("nothing to remove")
	}
	return err
}
