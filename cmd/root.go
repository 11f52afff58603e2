package cmd

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ramanasai/tinyworkout/internal/config"
	"github.com/ramanasai/tinyworkout/internal/logging"
	"github.com/ramanasai/tinyworkout/internal/version"
)

var (
	cfgFile string
	verbose bool

	// cfg is loaded once per invocation by the root pre-run hook.
	cfg = config.Default()
)

var rootCmd = &cobra.Command{
	Use:   "tinyworkout",
	Short: "Track the exercises you owe and the ones you did",
	Long: `tinyworkout keeps a running count of owed exercises. Every day adds a
quota, every logged exercise pays one off. Run without arguments for the TUI.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if cfgFile != "" {
			cfg, err = config.LoadFile(cfgFile)
		} else {
			cfg, err = config.Load()
		}
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		logging.Setup(logging.SetupParams{
			LogFileName:   cfg.LogPath(),
			LogToStderr:   verbose,
			LogLevel:      cfg.Log.Level,
			LogFormatJSON: cfg.Log.JSON,
		})
		logrus.WithFields(logrus.Fields{
			"command": cmd.Name(),
			"version": version.GetVersion(),
		}).Debug("starting")
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI(cmd)
	},
}

func Execute() error { return rootCmd.Execute() }

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default ~/.config/tinyworkout/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "mirror logs to stderr")

	// Add commands; other files define these vars
	rootCmd.AddCommand(logCmd, undoCmd, listCmd, queueCmd, statusCmd, exercisesCmd,
		statsCmd, exportCmd, importCmd, remindCmd, tuiCmd, versionCmd)
}
