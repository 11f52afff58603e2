package cmd

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ramanasai/tinyworkout/internal/tracker"
	"github.com/ramanasai/tinyworkout/internal/utils"
)

var queueNote string

// queueCmd shows the consolidated "next up" queue.
var queueCmd = &cobra.Command{
	Use:   "queue",
	Short: "Show exercises queued for later",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession(cmd.Context())
		if err != nil {
			return err
		}
		defer s.Close()
		return printQueue(cmd, s.tracker.QueueView())
	},
}

var queueAddCmd = &cobra.Command{
	Use:   "add <exercise>",
	Short: "Queue an exercise without logging it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		s, err := openSession(ctx)
		if err != nil {
			return err
		}
		defer s.Close()

		id := strings.ToLower(strings.TrimSpace(args[0]))
		if _, err := s.tracker.Enqueue(id, queueNote); err != nil {
			return describe(err, id)
		}
		s.save(ctx)
		logrus.WithField("id", id).Info("exercise queued")
		return printQueue(cmd, s.tracker.QueueView())
	},
}

var queueCommitCmd = &cobra.Command{
	Use:   "commit <n>",
	Short: "Log every exercise of the n-th queue group",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := strconv.Atoi(strings.TrimSpace(args[0]))
		if err != nil || n < 1 {
			return fmt.Errorf("invalid queue position %q", args[0])
		}

		ctx := cmd.Context()
		s, err := openSession(ctx)
		if err != nil {
			return err
		}
		defer s.Close()

		groups := s.tracker.QueueView()
		snap, err := s.tracker.CommitQueueGroup(n - 1)
		if errors.Is(err, tracker.ErrGroupNotFound) {
			return fmt.Errorf("no queue group at position %d (queue has %d)", n, len(groups))
		}
		if err != nil {
			return err
		}
		s.save(ctx)

		g := groups[n-1]
		logrus.WithFields(logrus.Fields{"group": g.DisplayTitle, "count": g.Count, "owed": snap.Owed}).Info("queue group committed")
		fmt.Fprintf(cmd.OutOrStdout(), "Logged %s. Owed: %d\n", g.DisplayTitle, snap.Owed)
		return nil
	},
}

var queueClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Empty the queue",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		s, err := openSession(ctx)
		if err != nil {
			return err
		}
		defer s.Close()

		dropped := len(s.tracker.State().Queue)
		s.tracker.ClearQueue()
		s.save(ctx)
		logrus.WithField("dropped", dropped).Info("queue cleared")
		fmt.Fprintln(cmd.OutOrStdout(), "Queue cleared.")
		return nil
	},
}

func printQueue(cmd *cobra.Command, groups []tracker.DisplayGroup) error {
	renderConfig := utils.DefaultRenderConfig()
	renderConfig.Format = utils.OutputFormat(format)
	out, err := utils.NewRenderer(renderConfig).RenderQueue(groups)
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), out)
	return nil
}

func init() {
	queueAddCmd.Flags().StringVarP(&queueNote, "note", "n", "", "note for note-capable exercises")
	queueCmd.PersistentFlags().StringVarP(&format, "format", "f", "default", "output format: default|json|quiet")
	queueCmd.AddCommand(queueAddCmd, queueCommitCmd, queueClearCmd)
}
