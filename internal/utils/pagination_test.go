package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPagination_Clamps(t *testing.T) {
	p := NewPagination(25, 10, 9)
	assert.Equal(t, 3, p.TotalPages)
	assert.Equal(t, 3, p.Current)
	assert.Equal(t, 20, p.Offset)

	p = NewPagination(0, 10, 1)
	assert.Equal(t, 1, p.TotalPages)
	assert.Equal(t, "No results", p.FormatSummary())

	p = NewPagination(4, 0, 1)
	assert.Equal(t, 1, p.TotalPages)
	assert.Equal(t, 4, p.PerPage)
}

func TestPagination_Navigation(t *testing.T) {
	p := NewPagination(25, 10, 2)
	assert.Equal(t, "Showing 11-20 of 25 results (page 2 of 3)", p.FormatSummary())
	assert.Equal(t, "use --page 1 for previous, use --page 3 for next", p.FormatNavigation())
}

func TestPaginateSections_SpansDates(t *testing.T) {
	sections := sampleSections()
	require.Equal(t, 3, CountGroups(sections))

	page := NewPagination(3, 2, 1).PaginateSections(sections)
	require.Len(t, page, 1)
	assert.Len(t, page[0].Groups, 2)

	page = NewPagination(3, 2, 2).PaginateSections(sections)
	require.Len(t, page, 1)
	assert.Equal(t, "2024-03-04", page[0].Date)
	assert.Equal(t, "1km run", page[0].Groups[0].DisplayTitle)
}

func TestFilterSince(t *testing.T) {
	since := time.Date(2024, 3, 5, 13, 30, 0, 0, time.UTC)
	out := FilterSince(sampleSections(), since)
	require.Len(t, out, 1)
	require.Len(t, out[0].Groups, 1)
	assert.Equal(t, "squats", out[0].Groups[0].ExerciseID)
}
