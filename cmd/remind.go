package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ramanasai/tinyworkout/internal/notify"
	"github.com/ramanasai/tinyworkout/internal/schedule"
)

var remindNow bool

// remindCmd sends a desktop notification with the owed count at the
// configured reminder time until interrupted.
var remindCmd = &cobra.Command{
	Use:   "remind",
	Short: "Run the daily reminder in the foreground",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if remindNow {
			return remind(cmd.Context())
		}
		if !cfg.Reminder.Enabled {
			return fmt.Errorf("reminders are disabled (set reminder.enabled: true)")
		}

		ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		next := schedule.NextAt(time.Now(), cfg)
		fmt.Fprintf(cmd.OutOrStdout(), "Next reminder at %s. Ctrl+C to stop.\n", next.Format("Mon Jan 2 15:04"))
		schedule.RunConfigured(ctx, cfg, func(now time.Time) {
			if err := remind(ctx); err != nil {
				logrus.WithError(err).Error("reminder failed")
			}
		})
		return nil
	},
}

// remind applies the rollover and notifies with the current owed count.
func remind(ctx context.Context) error {
	s, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	title, msg := notify.FormatDailyPrompt(s.tracker.Owed())
	logrus.WithField("owed", s.tracker.Owed()).Info("sending reminder")
	return notify.Info(title, msg)
}

func init() {
	remindCmd.Flags().BoolVar(&remindNow, "now", false, "send one reminder immediately and exit")
}
