package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ramanasai/tinyworkout/internal/tracker"
	"github.com/ramanasai/tinyworkout/internal/utils"
)

var statusFormat string

// statusCmd prints the owed count and a per-exercise breakdown for today.
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Owed count and today's totals",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession(cmd.Context())
		if err != nil {
			return err
		}
		defer s.Close()

		st := s.tracker.State()
		status := &utils.Status{
			Owed:     s.tracker.Owed(),
			Date:     s.tracker.Today(),
			Today:    todayTotals(st.Log, s.tracker.Calendar(), s.tracker.Today()),
			Queued:   len(st.Queue),
			Rollover: s.rollover,
		}

		renderConfig := utils.DefaultRenderConfig()
		renderConfig.Format = utils.OutputFormat(statusFormat)
		renderConfig.MeterMax = cfg.MeterMax
		out, err := utils.NewRenderer(renderConfig).RenderStatus(status)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), out)
		return nil
	},
}

// todayTotals sums the entries of date per exercise and note, in the order
// each was first logged.
func todayTotals(log []tracker.LogEntry, cal tracker.Calendar, date string) []tracker.DisplayGroup {
	type key struct{ id, note string }
	index := map[key]int{}
	var totals []tracker.DisplayGroup
	var titles []string
	for _, e := range log {
		if cal.Date(e.Timestamp) != date {
			continue
		}
		k := key{e.ExerciseID, e.Note}
		i, ok := index[k]
		if !ok {
			i = len(totals)
			index[k] = i
			totals = append(totals, tracker.DisplayGroup{Timestamp: e.Timestamp, ExerciseID: e.ExerciseID, Note: e.Note})
			titles = append(titles, e.Title)
		}
		totals[i].Count++
	}
	for i := range totals {
		totals[i].DisplayTitle = tracker.DisplayTitle(titles[i], totals[i].Count)
	}
	return totals
}

func init() {
	statusCmd.Flags().StringVarP(&statusFormat, "format", "f", "default", "output format: default|json|quiet")
}
