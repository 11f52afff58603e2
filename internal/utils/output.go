package utils

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/gosuri/uitable"
	"github.com/mattn/go-isatty"

	"github.com/ramanasai/tinyworkout/internal/catalog"
	"github.com/ramanasai/tinyworkout/internal/db"
	"github.com/ramanasai/tinyworkout/internal/tracker"
)

// OutputFormat represents different output formats
type OutputFormat string

const (
	FormatDefault OutputFormat = "default"
	FormatTable   OutputFormat = "table"
	FormatJSON    OutputFormat = "json"
	FormatCSV     OutputFormat = "csv"
	FormatCompact OutputFormat = "compact"
	FormatQuiet   OutputFormat = "quiet"
)

// RenderConfig contains configuration for output rendering
type RenderConfig struct {
	Format   OutputFormat
	Width    int
	MeterMax int
	Color    bool
	Location *time.Location
}

// DefaultRenderConfig returns a default render configuration
func DefaultRenderConfig() *RenderConfig {
	width := 80
	if colEnv := os.Getenv("COLUMNS"); colEnv != "" {
		if v, err := strconv.Atoi(colEnv); err == nil && v > 40 {
			width = v
		}
	}

	return &RenderConfig{
		Format:   FormatDefault,
		Width:    width,
		MeterMax: 30,
		Color:    isatty.IsTerminal(os.Stdout.Fd()) && os.Getenv("NO_COLOR") == "",
		Location: time.UTC,
	}
}

// LogList is a page of the grouped activity log
type LogList struct {
	Owed       int                  `json:"owed"`
	Sections   []tracker.DaySection `json:"sections"`
	Total      int                  `json:"total"`
	Page       int                  `json:"page,omitempty"`
	PerPage    int                  `json:"per_page,omitempty"`
	TotalPages int                  `json:"total_pages,omitempty"`
	Filters    map[string]string    `json:"filters,omitempty"`
}

// Status is the owed count plus today's totals per exercise
type Status struct {
	Owed     int                    `json:"owed"`
	Date     string                 `json:"date"`
	Today    []tracker.DisplayGroup `json:"today"`
	Queued   int                    `json:"queued"`
	Rollover bool                   `json:"rollover,omitempty"`
}

// Renderer handles output formatting
type Renderer struct {
	config *RenderConfig
	styles *Styles
}

// Styles contains lipgloss styles for different elements
type Styles struct {
	Title     lipgloss.Style
	Separator lipgloss.Style
	Meta      lipgloss.Style
	Time      lipgloss.Style
	Date      lipgloss.Style
	Exercise  lipgloss.Style
	Note      lipgloss.Style
	Count     lipgloss.Style
	Meter     lipgloss.Style
	Success   lipgloss.Style
	Warning   lipgloss.Style
}

// NewRenderer creates a new renderer with the given config
func NewRenderer(config *RenderConfig) *Renderer {
	if config == nil {
		config = DefaultRenderConfig()
	}
	if config.Location == nil {
		config.Location = time.UTC
	}
	if config.MeterMax <= 0 {
		config.MeterMax = 30
	}

	return &Renderer{
		config: config,
		styles: initStyles(config.Color),
	}
}

// initStyles initializes the style set
func initStyles(color bool) *Styles {
	styles := &Styles{}

	if color {
		styles.Title = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#A6E3A1"))
		styles.Separator = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C7086"))
		styles.Meta = lipgloss.NewStyle().Faint(true)
		styles.Time = lipgloss.NewStyle().Faint(true)
		styles.Date = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#89B4FA"))
		styles.Exercise = lipgloss.NewStyle()
		styles.Note = lipgloss.NewStyle().Faint(true).Foreground(lipgloss.Color("#CBA6F7"))
		styles.Count = lipgloss.NewStyle().Foreground(lipgloss.Color("#F9E2AF"))
		styles.Meter = lipgloss.NewStyle().Foreground(lipgloss.Color("#FAB387"))
		styles.Success = lipgloss.NewStyle().Foreground(lipgloss.Color("#A6E3A1"))
		styles.Warning = lipgloss.NewStyle().Foreground(lipgloss.Color("#F38BA8"))
	} else {
		// Monochrome styles
		styles.Title = lipgloss.NewStyle().Bold(true)
		styles.Separator = lipgloss.NewStyle()
		styles.Meta = lipgloss.NewStyle()
		styles.Time = lipgloss.NewStyle()
		styles.Date = lipgloss.NewStyle().Bold(true)
		styles.Exercise = lipgloss.NewStyle()
		styles.Note = lipgloss.NewStyle()
		styles.Count = lipgloss.NewStyle()
		styles.Meter = lipgloss.NewStyle()
		styles.Success = lipgloss.NewStyle()
		styles.Warning = lipgloss.NewStyle()
	}

	return styles
}

// RenderLog renders the grouped log according to the configured format
func (r *Renderer) RenderLog(list *LogList) (string, error) {
	switch r.config.Format {
	case FormatJSON:
		return renderJSON(list)
	case FormatCSV:
		return r.renderLogCSV(list), nil
	case FormatTable:
		return r.renderLogTable(list), nil
	case FormatCompact:
		return r.renderLogCompact(list), nil
	case FormatQuiet:
		return r.renderLogQuiet(list), nil
	default:
		return r.renderLogDefault(list), nil
	}
}

func (r *Renderer) separator() string {
	return r.styles.Separator.Render(strings.Repeat("─", min(r.config.Width, 80))) + "\n"
}

// renderLogDefault renders date headers followed by one line per group
func (r *Renderer) renderLogDefault(list *LogList) string {
	var builder strings.Builder

	builder.WriteString(r.styles.Title.Render("Activity Log"))
	builder.WriteString("  ")
	builder.WriteString(r.Meter(list.Owed))
	if since := list.Filters["since"]; since != "" {
		builder.WriteString("  ")
		builder.WriteString(r.styles.Separator.Render("since "))
		builder.WriteString(r.styles.Meta.Render(since))
	}
	builder.WriteString("\n")
	builder.WriteString(r.separator())

	if len(list.Sections) == 0 {
		builder.WriteString(r.styles.Meta.Render("No activity yet. Go do some exercises!"))
		builder.WriteString("\n")
		return builder.String()
	}

	first := list.Page <= 1
	for si, section := range list.Sections {
		builder.WriteString(r.styles.Date.Render(LongDate(section.Date)))
		builder.WriteString("\n")
		for gi, g := range section.Groups {
			builder.WriteString("  ")
			builder.WriteString(r.styles.Time.Render(g.Timestamp.In(r.config.Location).Format("03:04 PM")))
			builder.WriteString("  ")
			builder.WriteString(r.styles.Exercise.Render(g.DisplayTitle))
			if g.Note != "" {
				builder.WriteString(" ")
				builder.WriteString(r.styles.Note.Render("[" + g.Note + "]"))
			}
			if first && si == 0 && gi == 0 {
				builder.WriteString("  ")
				builder.WriteString(r.styles.Meta.Render("(undo removes this)"))
			}
			builder.WriteString("\n")
		}
	}

	if list.TotalPages > 1 {
		builder.WriteString(r.separator())
		pagination := NewPagination(list.Total, list.PerPage, list.Page)
		builder.WriteString(r.styles.Meta.Render(pagination.FormatSummary()))
		builder.WriteString("\n")
		if nav := pagination.FormatNavigation(); nav != "" {
			builder.WriteString(r.styles.Meta.Render(nav))
			builder.WriteString("\n")
		}
	}

	return builder.String()
}

// renderJSON renders any view as indented JSON
func renderJSON(v any) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return string(data) + "\n", nil
}

// renderLogCSV renders one row per group
func (r *Renderer) renderLogCSV(list *LogList) string {
	var builder strings.Builder

	builder.WriteString("date,timestamp,id,title,note,count\n")
	for _, section := range list.Sections {
		for _, g := range section.Groups {
			row := []string{
				section.Date,
				tracker.FormatTimestamp(g.Timestamp),
				escapeCSV(g.ExerciseID),
				escapeCSV(g.DisplayTitle),
				escapeCSV(g.Note),
				strconv.Itoa(g.Count),
			}
			builder.WriteString(strings.Join(row, ","))
			builder.WriteString("\n")
		}
	}

	return builder.String()
}

// renderLogTable renders groups as aligned columns
func (r *Renderer) renderLogTable(list *LogList) string {
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = uint(max(r.config.Width/3, 20))
	tbl.AddRow("DATE", "TIME", "COUNT", "EXERCISE", "NOTE")

	for _, section := range list.Sections {
		for _, g := range section.Groups {
			tbl.AddRow(
				section.Date,
				g.Timestamp.In(r.config.Location).Format("15:04"),
				g.Count,
				g.DisplayTitle,
				g.Note,
			)
		}
	}

	return tbl.String() + "\n"
}

// renderLogCompact renders one line per group with its date
func (r *Renderer) renderLogCompact(list *LogList) string {
	var builder strings.Builder

	for _, section := range list.Sections {
		for _, g := range section.Groups {
			line := fmt.Sprintf("%s %s %s",
				r.styles.Time.Render(section.Date+" "+g.Timestamp.In(r.config.Location).Format("15:04")),
				g.DisplayTitle,
				r.styles.Count.Render("x"+strconv.Itoa(g.Count)))
			if g.Note != "" {
				line += " " + r.styles.Note.Render("["+g.Note+"]")
			}
			builder.WriteString(line)
			builder.WriteString("\n")
		}
	}

	return builder.String()
}

// renderLogQuiet renders only display titles (for scripting)
func (r *Renderer) renderLogQuiet(list *LogList) string {
	var builder strings.Builder

	for _, section := range list.Sections {
		for _, g := range section.Groups {
			builder.WriteString(g.DisplayTitle)
			builder.WriteString("\n")
		}
	}

	return builder.String()
}

// RenderQueue renders the consolidated queue with 1-based positions
func (r *Renderer) RenderQueue(groups []tracker.DisplayGroup) (string, error) {
	switch r.config.Format {
	case FormatJSON:
		return renderJSON(groups)
	case FormatQuiet:
		var builder strings.Builder
		for _, g := range groups {
			builder.WriteString(g.DisplayTitle)
			builder.WriteString("\n")
		}
		return builder.String(), nil
	}

	var builder strings.Builder
	builder.WriteString(r.styles.Title.Render("Next Up"))
	builder.WriteString("\n")
	builder.WriteString(r.separator())
	if len(groups) == 0 {
		builder.WriteString(r.styles.Meta.Render("Queue is empty. Add one with: tinyworkout queue add <exercise>"))
		builder.WriteString("\n")
		return builder.String(), nil
	}
	for i, g := range groups {
		builder.WriteString(r.styles.Count.Render(fmt.Sprintf("%2d.", i+1)))
		builder.WriteString(" ")
		builder.WriteString(g.DisplayTitle)
		if g.Note != "" {
			builder.WriteString(" ")
			builder.WriteString(r.styles.Note.Render("[" + g.Note + "]"))
		}
		builder.WriteString("\n")
	}
	return builder.String(), nil
}

// RenderStatus renders the owed meter and today's totals
func (r *Renderer) RenderStatus(s *Status) (string, error) {
	if r.config.Format == FormatJSON {
		return renderJSON(s)
	}
	if r.config.Format == FormatQuiet {
		return strconv.Itoa(s.Owed) + "\n", nil
	}

	var builder strings.Builder
	builder.WriteString(r.styles.Title.Render("Today"))
	builder.WriteString("  ")
	builder.WriteString(r.styles.Meta.Render(LongDate(s.Date)))
	builder.WriteString("\n")
	builder.WriteString(r.separator())
	builder.WriteString(r.Meter(s.Owed))
	builder.WriteString("\n")
	if s.Rollover {
		builder.WriteString(r.styles.Warning.Render("A new day: daily quota added."))
		builder.WriteString("\n")
	}
	if len(s.Today) == 0 {
		builder.WriteString(r.styles.Meta.Render("Nothing logged yet today."))
		builder.WriteString("\n")
	}
	for _, g := range s.Today {
		builder.WriteString("  ")
		builder.WriteString(r.styles.Success.Render(g.DisplayTitle))
		if g.Note != "" {
			builder.WriteString(" ")
			builder.WriteString(r.styles.Note.Render("[" + g.Note + "]"))
		}
		builder.WriteString("\n")
	}
	if s.Queued > 0 {
		builder.WriteString(r.styles.Meta.Render(fmt.Sprintf("%d queued", s.Queued)))
		builder.WriteString("\n")
	}
	return builder.String(), nil
}

// Stats is the activity summary printed by `tinyworkout stats`
type Stats struct {
	Since     string             `json:"since,omitempty"`
	Streak    int                `json:"streak"`
	Total     int                `json:"total"`
	Exercises []db.ExerciseTotal `json:"exercises"`
	Days      []db.DayTotal      `json:"days"`
}

// RenderStats renders per-exercise totals, the streak and recent days
func (r *Renderer) RenderStats(s *Stats) (string, error) {
	switch r.config.Format {
	case FormatJSON:
		return renderJSON(s)
	case FormatCSV:
		var builder strings.Builder
		builder.WriteString("id,title,count,first,last\n")
		for _, e := range s.Exercises {
			row := []string{
				escapeCSV(e.ExerciseID),
				escapeCSV(e.DisplayTitle),
				strconv.Itoa(e.Count),
				tracker.FormatTimestamp(e.First),
				tracker.FormatTimestamp(e.Last),
			}
			builder.WriteString(strings.Join(row, ","))
			builder.WriteString("\n")
		}
		return builder.String(), nil
	}

	var builder strings.Builder
	builder.WriteString(r.styles.Title.Render("Stats"))
	if s.Since != "" {
		builder.WriteString("  ")
		builder.WriteString(r.styles.Meta.Render("since " + s.Since))
	}
	builder.WriteString("\n")
	builder.WriteString(r.separator())
	builder.WriteString(fmt.Sprintf("%s logged, %s day streak\n",
		r.styles.Count.Render(strconv.Itoa(s.Total)),
		r.styles.Success.Render(strconv.Itoa(s.Streak))))

	if len(s.Exercises) == 0 {
		builder.WriteString(r.styles.Meta.Render("Nothing logged in this period."))
		builder.WriteString("\n")
		return builder.String(), nil
	}
	builder.WriteString("\n")
	for _, e := range s.Exercises {
		builder.WriteString(fmt.Sprintf("  %-24s %s\n", e.DisplayTitle,
			r.styles.Meta.Render("last "+e.Last.In(r.config.Location).Format("Jan 2 15:04"))))
	}

	days := s.Days
	if len(days) > 7 {
		days = days[:7]
	}
	builder.WriteString("\n")
	for _, d := range days {
		builder.WriteString(fmt.Sprintf("  %s %s %d\n",
			r.styles.Date.Render(d.Date),
			r.styles.Meter.Render(strings.Repeat("■", min(d.Count, 30))),
			d.Count))
	}
	return builder.String(), nil
}

// RenderCatalog lists the exercises that can be logged
func (r *Renderer) RenderCatalog(list []catalog.Exercise) (string, error) {
	if r.config.Format == FormatJSON {
		return renderJSON(list)
	}
	tbl := uitable.New()
	tbl.Separator = "  "
	for _, ex := range list {
		note := ""
		if ex.HasNote {
			note = r.styles.Note.Render("(note)")
		}
		tbl.AddRow(ex.ID, ex.Title, note)
	}
	return tbl.String() + "\n", nil
}

// Meter renders the owed count with a bar scaled to MeterMax
func (r *Renderer) Meter(owed int) string {
	const cells = 20
	filled := owed * cells / r.config.MeterMax
	if filled > cells {
		filled = cells
	}
	if filled < 0 {
		filled = 0
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", cells-filled)
	return fmt.Sprintf("owed %s %s", r.styles.Count.Render(strconv.Itoa(owed)), r.styles.Meter.Render(bar))
}

// LongDate turns YYYY-MM-DD into "Monday, March 4, 2024"
func LongDate(date string) string {
	t, err := time.Parse(tracker.DateLayout, date)
	if err != nil {
		return date
	}
	return t.Format("Monday, January 2, 2006")
}

func escapeCSV(s string) string {
	if strings.Contains(s, ",") || strings.Contains(s, "\"") || strings.Contains(s, "\n") {
		s = strings.ReplaceAll(s, "\"", "\"\"")
		return "\"" + s + "\""
	}
	return s
}
