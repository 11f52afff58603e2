package ui

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ramanasai/tinyworkout/internal/catalog"
	"github.com/ramanasai/tinyworkout/internal/tracker"
)

type fixedClock struct{ now time.Time }

func (c *fixedClock) Now() time.Time {
	c.now = c.now.Add(time.Minute)
	return c.now
}

func newTestModel(t *testing.T) (Model, *int) {
	t.Helper()
	clock := &fixedClock{now: time.Date(2024, 3, 4, 14, 0, 0, 0, time.UTC)}
	tr := tracker.New(tracker.NewState(), catalog.Default(), tracker.WithClock(clock))
	saves := 0
	m := New(Options{
		Tracker: tr,
		Save: func(*tracker.State) error {
			saves++
			return nil
		},
	})
	return m, &saves
}

func press(t *testing.T, m Model, keys ...string) Model {
	t.Helper()
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case "tab":
			msg = tea.KeyMsg{Type: tea.KeyTab}
		case "down":
			msg = tea.KeyMsg{Type: tea.KeyDown}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		next, _ := m.Update(msg)
		m = next.(Model)
	}
	return m
}

func TestModel_LogAndUndo(t *testing.T) {
	m, saves := newTestModel(t)

	m = press(t, m, "enter", "enter")
	assert.Equal(t, 8, m.t.Owed())
	assert.Equal(t, 2, *saves)
	require.Len(t, m.t.LogView(), 1)
	assert.Equal(t, "20 pushups", m.t.LogView()[0].Groups[0].DisplayTitle)

	m = press(t, m, "u")
	assert.Equal(t, 10, m.t.Owed())
	assert.Empty(t, m.t.LogView())
	assert.Equal(t, 3, *saves)
	assert.Contains(t, m.statusLine, "Removed 20 pushups")
}

func TestModel_UndoOnEmptyLogDoesNotSave(t *testing.T) {
	m, saves := newTestModel(t)
	m = press(t, m, "u")
	assert.Equal(t, 0, *saves)
	assert.Equal(t, 10, m.t.Owed())
}

func TestModel_NotePrompt(t *testing.T) {
	m, _ := newTestModel(t)
	barbell := len(catalog.Defaults) - 1
	require.True(t, catalog.Defaults[barbell].HasNote)
	for i := 0; i < barbell; i++ {
		m = press(t, m, "down")
	}

	m = press(t, m, "enter")
	assert.Equal(t, noteLog, m.pending)
	assert.Equal(t, 10, m.t.Owed(), "nothing logged before the note is submitted")

	m = press(t, m, "y", "o", "g", "a", "enter")
	assert.Equal(t, noteNone, m.pending)
	require.Len(t, m.t.State().Log, 1)
	assert.Equal(t, "yoga", m.t.State().Log[0].Note)

	m = press(t, m, "enter", "esc")
	assert.Len(t, m.t.State().Log, 1, "esc cancels the prompt")
}

func TestModel_QueueCommitAndClear(t *testing.T) {
	m, _ := newTestModel(t)

	m = press(t, m, "a", "a", "down", "a")
	require.Len(t, m.t.QueueView(), 2)
	assert.Equal(t, "20 pushups", m.t.QueueView()[0].DisplayTitle)
	assert.Equal(t, "20 squats", m.t.QueueView()[1].DisplayTitle)

	m = press(t, m, "tab", "down", "c")
	assert.Equal(t, 9, m.t.Owed())
	require.Len(t, m.t.QueueView(), 1)
	assert.Equal(t, 0, m.queueCursor)

	m = press(t, m, "x")
	assert.Empty(t, m.t.QueueView())
	assert.Equal(t, 9, m.t.Owed())
}

func TestModel_SaveFailureShowsError(t *testing.T) {
	m, _ := newTestModel(t)
	m.save = func(*tracker.State) error { return errors.New("disk full") }

	m = press(t, m, "enter")
	assert.True(t, m.statusErr)
	assert.Contains(t, m.statusLine, "disk full")
	assert.Equal(t, 9, m.t.Owed(), "the core keeps the change")
}

func TestModel_TickAppliesRollover(t *testing.T) {
	m, saves := newTestModel(t)
	now := time.Date(2024, 3, 5, 12, 0, 0, 0, time.UTC)

	next, cmd := m.Update(tickMsg{now: now})
	m = next.(Model)
	assert.NotNil(t, cmd)
	assert.Equal(t, 20, m.t.Owed())
	assert.Equal(t, 1, *saves)

	next, _ = m.Update(tickMsg{now: now.Add(time.Hour)})
	m = next.(Model)
	assert.Equal(t, 20, m.t.Owed())
	assert.Equal(t, 1, *saves)
}

func TestModel_MeterPercentCaps(t *testing.T) {
	m, _ := newTestModel(t)
	assert.InDelta(t, 10.0/30.0, m.meterPercent(), 1e-9)

	m.meterMax = 5
	assert.Equal(t, 1.0, m.meterPercent())
}

func TestModel_ViewRenders(t *testing.T) {
	m, _ := newTestModel(t)
	m = press(t, m, "enter")
	out := m.View()
	assert.Contains(t, out, "9 owed")
	assert.Contains(t, out, "Monday, March 4, 2024")
	assert.Contains(t, out, "10 pushups")
}

func TestModel_LogLinesFitWindow(t *testing.T) {
	m, _ := newTestModel(t)
	m = press(t, m, "enter")
	m.save = nil

	tiny, _ := m.Update(tea.WindowSizeMsg{Width: 12, Height: 40})
	out := tiny.(Model).renderLog()
	for _, line := range strings.Split(strings.TrimRight(out, "\n"), "\n")[1:] {
		assert.LessOrEqual(t, lipgloss.Width(line), 12)
	}
}
