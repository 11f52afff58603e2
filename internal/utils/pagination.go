package utils

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/ramanasai/tinyworkout/internal/tracker"
)

// PaginationInfo contains pagination metadata
type PaginationInfo struct {
	Total      int
	PerPage    int
	Current    int
	Offset     int
	TotalPages int
}

// NewPagination creates pagination info
func NewPagination(total, perPage, current int) *PaginationInfo {
	if perPage < 1 {
		perPage = max(total, 1)
	}
	totalPages := int(math.Ceil(float64(total) / float64(perPage)))
	if totalPages == 0 {
		totalPages = 1
	}

	if current < 1 {
		current = 1
	}
	if current > totalPages {
		current = totalPages
	}

	offset := (current - 1) * perPage

	return &PaginationInfo{
		Total:      total,
		PerPage:    perPage,
		Current:    current,
		Offset:     offset,
		TotalPages: totalPages,
	}
}

// GetRange returns the range of items on the current page (1-indexed)
func (p *PaginationInfo) GetRange() (start, end int) {
	start = p.Offset + 1
	end = p.Offset + p.PerPage
	if end > p.Total {
		end = p.Total
	}
	return start, end
}

// HasNext returns true if there's a next page
func (p *PaginationInfo) HasNext() bool {
	return p.Current < p.TotalPages
}

// HasPrev returns true if there's a previous page
func (p *PaginationInfo) HasPrev() bool {
	return p.Current > 1
}

// GetNextPage returns the next page number
func (p *PaginationInfo) GetNextPage() int {
	if p.HasNext() {
		return p.Current + 1
	}
	return p.Current
}

// GetPrevPage returns the previous page number
func (p *PaginationInfo) GetPrevPage() int {
	if p.HasPrev() {
		return p.Current - 1
	}
	return p.Current
}

// FormatSummary returns a human-readable summary
func (p *PaginationInfo) FormatSummary() string {
	if p.Total == 0 {
		return "No results"
	}

	start, end := p.GetRange()
	if p.TotalPages == 1 {
		return fmt.Sprintf("Showing %d-%d of %d result%s", start, end, p.Total, plural(p.Total))
	}
	return fmt.Sprintf("Showing %d-%d of %d result%s (page %d of %d)",
		start, end, p.Total, plural(p.Total), p.Current, p.TotalPages)
}

// FormatNavigation returns navigation hints for CLI
func (p *PaginationInfo) FormatNavigation() string {
	if p.TotalPages <= 1 {
		return ""
	}

	var hints []string
	if p.HasPrev() {
		hints = append(hints, fmt.Sprintf("use --page %d for previous", p.GetPrevPage()))
	}
	if p.HasNext() {
		hints = append(hints, fmt.Sprintf("use --page %d for next", p.GetNextPage()))
	}

	return strings.Join(hints, ", ")
}

// plural returns "s" if count is not 1
func plural(count int) string {
	if count == 1 {
		return ""
	}
	return "s"
}

// PaginateSections returns the sections holding the groups of the current
// page. Groups are counted across sections, newest first, and a section is
// kept only when at least one of its groups falls on the page.
func (p *PaginationInfo) PaginateSections(sections []tracker.DaySection) []tracker.DaySection {
	var out []tracker.DaySection
	idx := 0
	end := p.Offset + p.PerPage
	for _, s := range sections {
		var groups []tracker.DisplayGroup
		for _, g := range s.Groups {
			if idx >= p.Offset && idx < end {
				groups = append(groups, g)
			}
			idx++
		}
		if len(groups) > 0 {
			out = append(out, tracker.DaySection{Date: s.Date, Groups: groups})
		}
	}
	return out
}

// CountGroups returns the number of groups across all sections
func CountGroups(sections []tracker.DaySection) int {
	n := 0
	for _, s := range sections {
		n += len(s.Groups)
	}
	return n
}

// FilterSince drops groups whose anchor is before since
func FilterSince(sections []tracker.DaySection, since time.Time) []tracker.DaySection {
	var out []tracker.DaySection
	for _, s := range sections {
		var groups []tracker.DisplayGroup
		for _, g := range s.Groups {
			if !g.Timestamp.Before(since) {
				groups = append(groups, g)
			}
		}
		if len(groups) > 0 {
			out = append(out, tracker.DaySection{Date: s.Date, Groups: groups})
		}
	}
	return out
}
