package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	goversion "go.hein.dev/go-version"

	"github.com/ramanasai/tinyworkout/internal/version"
)

var (
	versionShort  bool
	versionOutput string
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Example: `
tinyworkout version
tinyworkout version -o yaml
`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if versionOutput == "" && !versionShort {
			fmt.Fprintln(cmd.OutOrStdout(), version.GetVersionInfo())
			return
		}
		output := versionOutput
		if output == "" {
			output = "json"
		}
		info := version.Get()
		fmt.Fprint(cmd.OutOrStdout(), goversion.FuncWithOutput(versionShort, info.Version, info.Commit, info.Date, output))
	},
}

func init() {
	versionCmd.Flags().BoolVarP(&versionShort, "short", "s", false, "print just the version number")
	versionCmd.Flags().StringVarP(&versionOutput, "output", "o", "", "output format: json|yaml")
}
