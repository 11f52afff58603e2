package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ramanasai/tinyworkout/internal/db"
	"github.com/ramanasai/tinyworkout/internal/tracker"
	"github.com/ramanasai/tinyworkout/internal/utils"
)

var (
	statsSince  string
	statsFormat string
)

// statsCmd summarizes the log: totals per exercise, daily counts and the
// current streak.
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Totals per exercise and the current streak",
	Long: `Examples:
	tinyworkout stats                       # whole log
	tinyworkout stats --since "this week"   # since Monday
	tinyworkout stats --format json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		loc := cfg.Location()
		var since time.Time
		if statsSince != "" {
			var err error
			since, err = utils.ParseSince(statsSince, tracker.NewCalendar(loc))
			if err != nil {
				return fmt.Errorf("invalid --since date %q: %w", statsSince, err)
			}
		}

		ctx := cmd.Context()
		s, err := openSession(ctx)
		if err != nil {
			return err
		}
		defer s.Close()

		totals, err := s.store.ExerciseTotals(ctx, since)
		if err != nil {
			return err
		}
		days, err := s.store.DayTotals(ctx, since, s.tracker.Calendar())
		if err != nil {
			return err
		}
		// The streak always looks at the whole log.
		allDays := days
		if !since.IsZero() {
			if allDays, err = s.store.DayTotals(ctx, time.Time{}, s.tracker.Calendar()); err != nil {
				return err
			}
		}

		stats := &utils.Stats{
			Streak:    db.Streak(allDays, s.tracker.Today()),
			Exercises: totals,
			Days:      days,
		}
		for _, t := range totals {
			stats.Total += t.Count
		}
		if !since.IsZero() {
			stats.Since = since.Format("2006-01-02 15:04")
		}

		renderConfig := utils.DefaultRenderConfig()
		renderConfig.Format = utils.OutputFormat(statsFormat)
		renderConfig.Location = loc
		out, err := utils.NewRenderer(renderConfig).RenderStats(stats)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), out)
		return nil
	},
}

func init() {
	statsCmd.Flags().StringVar(&statsSince, "since", "", "only entries since: today, 'this week', '30 days', 2024-03-01")
	statsCmd.Flags().StringVarP(&statsFormat, "format", "f", "default", "output format: default|json|csv")
}
