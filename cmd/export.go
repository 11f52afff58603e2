package cmd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ramanasai/tinyworkout/internal/tracker"
)

var exportOut string

// exportCmd writes the whole state as the JSON interchange blob.
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the state as JSON",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession(cmd.Context())
		if err != nil {
			return err
		}
		defer s.Close()

		data, err := tracker.EncodeState(s.tracker.State())
		if err != nil {
			return fmt.Errorf("encode state: %w", err)
		}
		data = append(data, '\n')
		if exportOut == "" || exportOut == "-" {
			_, err = cmd.OutOrStdout().Write(data)
			return err
		}
		if err := os.WriteFile(exportOut, data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", exportOut, err)
		}
		logrus.WithField("file", exportOut).Info("state exported")
		fmt.Fprintf(cmd.ErrOrStderr(), "Exported to %s\n", exportOut)
		return nil
	},
}

// importCmd replaces the stored state with a JSON blob. Malformed fields fall
// back to their defaults.
var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Replace the state with a JSON export",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read %s: %w", args[0], err)
		}
		st := tracker.DecodeState(data)

		ctx := cmd.Context()
		s, err := openSession(ctx)
		if err != nil {
			return err
		}
		defer s.Close()

		if err := s.store.Save(ctx, st); err != nil {
			return fmt.Errorf("save imported state: %w", err)
		}
		logrus.WithFields(logrus.Fields{
			"file":  args[0],
			"log":   len(st.Log),
			"queue": len(st.Queue),
		}).Info("state imported")
		fmt.Fprintf(cmd.OutOrStdout(), "Imported %d log entries, %d queued. Owed: %d\n",
			len(st.Log), len(st.Queue), st.Ledger.Owed)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOut, "output", "o", "", "output file (default stdout)")
}
