package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ramanasai/tinyworkout/internal/tracker"
	"github.com/ramanasai/tinyworkout/internal/ui"
)

// tuiCmd launches the Bubble Tea TUI.
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Open TUI",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI(cmd)
	},
}

func runTUI(cmd *cobra.Command) error {
	ctx := cmd.Context()
	s, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	theme := ui.ThemeByName(cfg.Theme)
	return ui.Run(ui.Options{
		Tracker:  s.tracker,
		MeterMax: cfg.MeterMax,
		Theme:    &theme,
		Save: func(st *tracker.State) error {
			return s.store.Save(ctx, st)
		},
	})
}
