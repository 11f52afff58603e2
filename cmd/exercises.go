package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ramanasai/tinyworkout/internal/catalog"
	"github.com/ramanasai/tinyworkout/internal/utils"
)

var exercisesJSON bool

var exercisesCmd = &cobra.Command{
	Use:   "exercises",
	Short: "List the exercises that can be logged",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		renderConfig := utils.DefaultRenderConfig()
		if exercisesJSON {
			renderConfig.Format = utils.FormatJSON
		}
		out, err := utils.NewRenderer(renderConfig).RenderCatalog(catalog.New(cfg.Exercises).All())
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), out)
		return nil
	},
}

func init() {
	exercisesCmd.Flags().BoolVar(&exercisesJSON, "json", false, "print as JSON")
}
