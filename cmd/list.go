package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ramanasai/tinyworkout/internal/tracker"
	"github.com/ramanasai/tinyworkout/internal/utils"
)

var (
	since   string
	limit   int
	page    int
	format  string
	noColor bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Show the grouped activity log (newest first)",
	Long: `Examples:
	tinyworkout list                              # whole log
	tinyworkout list --since yesterday            # since yesterday
	tinyworkout list --since "this week"          # since Monday
	tinyworkout list --format table --limit 50    # table format
	tinyworkout list --format csv > log.csv       # export groups as CSV`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		loc := cfg.Location()

		renderConfig := utils.DefaultRenderConfig()
		if noColor {
			renderConfig.Color = false
		}
		if format != "" {
			renderConfig.Format = utils.OutputFormat(format)
		}
		renderConfig.Location = loc
		renderConfig.MeterMax = cfg.MeterMax

		var sinceTime time.Time
		if since != "" {
			var err error
			sinceTime, err = utils.ParseSince(since, tracker.NewCalendar(loc))
			if err != nil {
				return fmt.Errorf("invalid --since date %q: %w", since, err)
			}
		}

		if limit < 0 || limit > 1000 {
			limit = 50
		}

		ctx := cmd.Context()
		s, err := openSession(ctx)
		if err != nil {
			return err
		}
		defer s.Close()

		sections := s.tracker.LogView()
		filters := map[string]string{}
		if !sinceTime.IsZero() {
			sections = utils.FilterSince(sections, sinceTime)
			filters["since"] = sinceTime.Format("2006-01-02 15:04")
		}

		total := utils.CountGroups(sections)
		pagination := utils.NewPagination(total, limit, page)
		list := &utils.LogList{
			Owed:       s.tracker.Owed(),
			Sections:   pagination.PaginateSections(sections),
			Total:      total,
			Page:       pagination.Current,
			PerPage:    pagination.PerPage,
			TotalPages: pagination.TotalPages,
			Filters:    filters,
		}

		out, err := utils.NewRenderer(renderConfig).RenderLog(list)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), out)
		return nil
	},
}

func init() {
	listCmd.Flags().StringVar(&since, "since", "", "only groups since: today, yesterday, '3 days', '2h ago', 2024-03-01")
	listCmd.Flags().IntVarP(&limit, "limit", "l", 0, "groups per page (0 = all)")
	listCmd.Flags().IntVarP(&page, "page", "p", 1, "page number (starts at 1)")
	listCmd.Flags().StringVarP(&format, "format", "f", "default", "output format: default|table|json|csv|compact|quiet")
	listCmd.Flags().BoolVar(&noColor, "no-color", false, "disable colored output")
}
