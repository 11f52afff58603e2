package schedule

import (
	"context"
	"strings"
	"time"

	"github.com/ramanasai/tinyworkout/internal/config"
)

// NextAt computes the next occurrence of reminder time that is on a configured workday and not a holiday.
func NextAt(now time.Time, cfg config.Config) time.Time {
	loc := cfg.Location()
	now = now.In(loc)

	// parse "HH:MM"
	hour, min := 17, 0
	if t, err := time.ParseInLocation("15:04", strings.TrimSpace(cfg.Reminder.Time), loc); err == nil {
		hour = t.Hour()
		min = t.Minute()
	}
	workdays := map[time.Weekday]bool{}
	for _, d := range cfg.Reminder.Workdays {
		if wd, ok := weekday(d); ok {
			workdays[wd] = true
		}
	}
	if len(workdays) == 0 {
		for wd := time.Sunday; wd <= time.Saturday; wd++ {
			workdays[wd] = true
		}
	}
	holidays := map[string]bool{}
	for _, h := range cfg.Reminder.Holidays {
		holidays[strings.TrimSpace(h)] = true
	}

	// candidate today at hh:mm; AddDate keeps the wall time across DST changes
	cand := time.Date(now.Year(), now.Month(), now.Day(), hour, min, 0, 0, loc)
	if !now.Before(cand) {
		cand = cand.AddDate(0, 0, 1)
	}
	for i := 0; i < 366*2; i++ {
		if workdays[cand.Weekday()] && !holidays[cand.Format("2006-01-02")] {
			return cand
		}
		cand = cand.AddDate(0, 0, 1)
	}
	return cand
}

// NextMidnight returns the start of the calendar day after now in loc, the
// moment the daily quota becomes due.
func NextMidnight(now time.Time, loc *time.Location) time.Time {
	now = now.In(loc)
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc).AddDate(0, 0, 1)
}

// Run calls f at each instant next returns until ctx is canceled.
func Run(ctx context.Context, next func(now time.Time) time.Time, f func(now time.Time)) {
	t := time.NewTimer(time.Until(next(time.Now())))
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case fired := <-t.C:
			f(fired)
			t.Reset(time.Until(next(time.Now())))
		}
	}
}

// RunConfigured runs the reminder callback at the configured schedule until ctx is canceled.
func RunConfigured(ctx context.Context, cfg config.Config, f func(now time.Time)) {
	Run(ctx, func(now time.Time) time.Time { return NextAt(now, cfg) }, f)
}

func weekday(name string) (time.Weekday, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	if len(name) > 3 {
		name = name[:3]
	}
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		if strings.ToLower(wd.String()[:3]) == name {
			return wd, true
		}
	}
	return 0, false
}
