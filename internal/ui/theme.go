package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type Theme struct {
	Title    lipgloss.Style
	Label    lipgloss.Style
	Value    lipgloss.Style
	Border   lipgloss.Style
	Focus    lipgloss.Style
	Hint     lipgloss.Style
	Error    lipgloss.Style
	Success  lipgloss.Style
	Selected lipgloss.Style
	Date     lipgloss.Style
	Note     lipgloss.Style

	// MeterColor is the progress bar fill; empty uses the default gradient.
	MeterColor string
}

var DefaultTheme = Theme{
	Title:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#A6E3A1")),
	Label:    lipgloss.NewStyle().Faint(true).Foreground(lipgloss.Color("#89B4FA")),
	Value:    lipgloss.NewStyle().Foreground(lipgloss.Color("#F2CDCD")),
	Border:   lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#45475A")).Padding(0, 1),
	Focus:    lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#89B4FA")).Padding(0, 1),
	Hint:     lipgloss.NewStyle().Faint(true).Foreground(lipgloss.Color("#CBA6F7")),
	Error:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F38BA8")),
	Success:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#A6E3A1")),
	Selected: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#1E1E2E")).Background(lipgloss.Color("#89B4FA")),
	Date:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FAB387")),
	Note:     lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("#CBA6F7")),
}

var MonoTheme = Theme{
	Title:      lipgloss.NewStyle().Bold(true),
	Label:      lipgloss.NewStyle().Faint(true),
	Value:      lipgloss.NewStyle(),
	Border:     lipgloss.NewStyle().Border(lipgloss.NormalBorder()).Padding(0, 1),
	Focus:      lipgloss.NewStyle().Border(lipgloss.ThickBorder()).Padding(0, 1),
	Hint:       lipgloss.NewStyle().Faint(true),
	Error:      lipgloss.NewStyle().Bold(true),
	Success:    lipgloss.NewStyle().Bold(true),
	Selected:   lipgloss.NewStyle().Reverse(true),
	Date:       lipgloss.NewStyle().Underline(true),
	Note:       lipgloss.NewStyle().Italic(true),
	MeterColor: "#FFFFFF",
}

// ThemeByName returns the named theme; unknown names get DefaultTheme.
func ThemeByName(name string) Theme {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "mono", "monochrome", "plain":
		return MonoTheme
	default:
		return DefaultTheme
	}
}
