package utils

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ramanasai/tinyworkout/internal/db"
	"github.com/ramanasai/tinyworkout/internal/tracker"
)

func sampleSections() []tracker.DaySection {
	return []tracker.DaySection{
		{Date: "2024-03-05", Groups: []tracker.DisplayGroup{
			{Timestamp: time.Date(2024, 3, 5, 14, 0, 0, 0, time.UTC), ExerciseID: "squats", DisplayTitle: "60 squats", Count: 2},
			{Timestamp: time.Date(2024, 3, 5, 13, 0, 0, 0, time.UTC), ExerciseID: "other", DisplayTitle: "Other", Note: "yoga, light", Count: 1},
		}},
		{Date: "2024-03-04", Groups: []tracker.DisplayGroup{
			{Timestamp: time.Date(2024, 3, 4, 14, 0, 0, 0, time.UTC), ExerciseID: "run", DisplayTitle: "1km run", Count: 2},
		}},
	}
}

func plainRenderer(format OutputFormat) *Renderer {
	return NewRenderer(&RenderConfig{Format: format, Width: 80, MeterMax: 30, Location: time.UTC})
}

func TestRenderLog_Default(t *testing.T) {
	out, err := plainRenderer(FormatDefault).RenderLog(&LogList{Owed: 7, Sections: sampleSections(), Total: 3})
	require.NoError(t, err)

	assert.Contains(t, out, "Tuesday, March 5, 2024")
	assert.Contains(t, out, "Monday, March 4, 2024")
	assert.Contains(t, out, "02:00 PM  60 squats")
	assert.Contains(t, out, "[yoga, light]")
	assert.Contains(t, out, "owed 7")
	assert.Less(t, strings.Index(out, "March 5"), strings.Index(out, "March 4"))
	assert.Equal(t, 1, strings.Count(out, "undo removes this"))
}

func TestRenderLog_Empty(t *testing.T) {
	out, err := plainRenderer(FormatDefault).RenderLog(&LogList{Owed: 10})
	require.NoError(t, err)
	assert.Contains(t, out, "No activity yet")
}

func TestRenderLog_CSVEscapes(t *testing.T) {
	out, err := plainRenderer(FormatCSV).RenderLog(&LogList{Sections: sampleSections()})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "date,timestamp,id,title,note,count", lines[0])
	assert.Equal(t, "2024-03-05,2024-03-05T14:00:00.000Z,squats,60 squats,,2", lines[1])
	assert.Contains(t, lines[2], `"yoga, light"`)
}

func TestRenderLog_JSON(t *testing.T) {
	out, err := plainRenderer(FormatJSON).RenderLog(&LogList{Owed: 3, Sections: sampleSections(), Total: 3})
	require.NoError(t, err)

	var decoded LogList
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, 3, decoded.Owed)
	require.Len(t, decoded.Sections, 2)
	assert.Equal(t, "1km run", decoded.Sections[1].Groups[0].DisplayTitle)
}

func TestRenderLog_Quiet(t *testing.T) {
	out, err := plainRenderer(FormatQuiet).RenderLog(&LogList{Sections: sampleSections()})
	require.NoError(t, err)
	assert.Equal(t, "60 squats\nOther\n1km run\n", out)
}

func TestRenderQueue(t *testing.T) {
	groups := []tracker.DisplayGroup{
		{ExerciseID: "pushups", DisplayTitle: "40 pushups", Count: 2},
		{ExerciseID: "other", DisplayTitle: "Other", Note: "stretch", Count: 1},
	}
	out, err := plainRenderer(FormatDefault).RenderQueue(groups)
	require.NoError(t, err)
	assert.Contains(t, out, " 1. 40 pushups")
	assert.Contains(t, out, " 2. Other [stretch]")

	out, err = plainRenderer(FormatDefault).RenderQueue(nil)
	require.NoError(t, err)
	assert.Contains(t, out, "Queue is empty")
}

func TestRenderStatus_Quiet(t *testing.T) {
	out, err := plainRenderer(FormatQuiet).RenderStatus(&Status{Owed: 12, Date: "2024-03-05"})
	require.NoError(t, err)
	assert.Equal(t, "12\n", out)
}

func TestMeter_ClampsToMax(t *testing.T) {
	r := plainRenderer(FormatDefault)
	assert.Contains(t, r.Meter(45), strings.Repeat("█", 20))
	assert.Contains(t, r.Meter(0), strings.Repeat("░", 20))
	assert.Contains(t, r.Meter(15), strings.Repeat("█", 10)+strings.Repeat("░", 10))
}

func TestLongDate(t *testing.T) {
	assert.Equal(t, "Monday, March 4, 2024", LongDate("2024-03-04"))
	assert.Equal(t, "not-a-date", LongDate("not-a-date"))
}

func TestRenderStats(t *testing.T) {
	stats := &Stats{
		Streak: 3,
		Total:  4,
		Exercises: []db.ExerciseTotal{
			{ExerciseID: "run", DisplayTitle: "1.5km run", Count: 3, Last: time.Date(2024, 3, 5, 14, 0, 0, 0, time.UTC)},
			{ExerciseID: "squats", DisplayTitle: "20 squats", Count: 1, Last: time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC)},
		},
		Days: []db.DayTotal{{Date: "2024-03-05", Count: 3}, {Date: "2024-03-04", Count: 1}},
	}

	out, err := plainRenderer(FormatDefault).RenderStats(stats)
	require.NoError(t, err)
	assert.Contains(t, out, "4 logged, 3 day streak")
	assert.Contains(t, out, "1.5km run")
	assert.Contains(t, out, "2024-03-05 ■■■ 3")

	out, err = plainRenderer(FormatCSV).RenderStats(stats)
	require.NoError(t, err)
	assert.Contains(t, out, "run,1.5km run,3,")
	assert.Contains(t, out, ",2024-03-05T14:00:00.000Z\n")
}

func TestRenderLog_TableAligns(t *testing.T) {
	out, err := plainRenderer(FormatTable).RenderLog(&LogList{Sections: sampleSections()})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[0], "DATE"))
	assert.Equal(t, strings.Index(lines[0], "EXERCISE"), strings.Index(lines[1], "60 squats"))
	assert.Contains(t, lines[3], "1km run")
}
