package cmd

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ramanasai/tinyworkout/internal/tracker"
)

var logNote string

var logCmd = &cobra.Command{
	Use:   "log <exercise>",
	Short: "Log one completed exercise",
	Example: `  tinyworkout log squats
  tinyworkout log dumbbell -n 20lb`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		s, err := openSession(ctx)
		if err != nil {
			return err
		}
		defer s.Close()

		id := strings.ToLower(strings.TrimSpace(args[0]))
		snap, err := s.tracker.LogExercise(id, logNote)
		if err != nil {
			return describe(err, id)
		}
		s.save(ctx)

		ex, _ := s.tracker.Catalog().Lookup(id)
		logrus.WithFields(logrus.Fields{"id": id, "owed": snap.Owed}).Info("exercise logged")
		fmt.Fprintf(cmd.OutOrStdout(), "Logged %s. Owed: %d\n", ex.Title, snap.Owed)
		return nil
	},
}

var undoCmd = &cobra.Command{
	Use:   "undo",
	Short: "Remove the most recent log group and restore what it paid off",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		s, err := openSession(ctx)
		if err != nil {
			return err
		}
		defer s.Close()

		view := s.tracker.LogView()
		if len(view) == 0 {
			return describe(tracker.ErrGroupNotFound, "")
		}
		removed := view[0].Groups[0]
		snap, err := s.tracker.DeleteMostRecentGroup()
		if err != nil {
			return describe(err, "")
		}
		s.save(ctx)

		logrus.WithFields(logrus.Fields{"group": removed.DisplayTitle, "count": removed.Count}).Info("log group removed")
		fmt.Fprintf(cmd.OutOrStdout(), "Removed %s. Owed: %d\n", removed.DisplayTitle, snap.Owed)
		return nil
	},
}

func init() {
	logCmd.Flags().StringVarP(&logNote, "note", "n", "", "note for note-capable exercises (e.g. dumbbell)")
}
