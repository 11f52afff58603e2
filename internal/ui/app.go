package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
	"github.com/sirupsen/logrus"

	"github.com/ramanasai/tinyworkout/internal/catalog"
	"github.com/ramanasai/tinyworkout/internal/tracker"
	"github.com/ramanasai/tinyworkout/internal/version"
)

type focusPane int

const (
	focusExercises focusPane = iota
	focusQueue
)

// noteAction is what a submitted note is for.
type noteAction int

const (
	noteNone noteAction = iota
	noteLog
	noteEnqueue
)

// SaveFunc persists the tracker state after a mutation.
type SaveFunc func(*tracker.State) error

// Options wires a Model to its tracker and store.
type Options struct {
	Tracker  *tracker.Tracker
	Save     SaveFunc
	MeterMax int
	Theme    *Theme
}

type keyMap struct {
	Up      key.Binding
	Down    key.Binding
	Log     key.Binding
	Enqueue key.Binding
	Commit  key.Binding
	Clear   key.Binding
	Undo    key.Binding
	Switch  key.Binding
	Help    key.Binding
	Quit    key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Log:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "log")),
		Enqueue: key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "queue")),
		Commit:  key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "commit")),
		Clear:   key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "clear queue")),
		Undo:    key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "undo")),
		Switch:  key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "switch pane")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Log, k.Enqueue, k.Commit, k.Undo, k.Switch, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Switch},
		{k.Log, k.Enqueue, k.Undo},
		{k.Commit, k.Clear, k.Quit},
	}
}

type Model struct {
	t     *tracker.Tracker
	save  SaveFunc
	theme Theme

	keys  keyMap
	help  help.Model
	meter progress.Model
	note  textinput.Model

	meterMax int
	width    int
	height   int

	focus       focusPane
	exCursor    int
	queueCursor int

	// note prompt
	pending    noteAction
	pendingID  string
	statusLine string
	statusErr  bool
}

// New builds the model over an already loaded tracker.
func New(opts Options) Model {
	if opts.Tracker == nil {
		opts.Tracker = tracker.New(nil, nil)
	}
	if opts.MeterMax <= 0 {
		opts.MeterMax = 30
	}
	theme := DefaultTheme
	if opts.Theme != nil {
		theme = *opts.Theme
	}

	ni := textinput.New()
	ni.Placeholder = "What did you do? (Enter to save, Esc to cancel)"
	ni.CharLimit = 200
	ni.Width = 50

	meterOpts := []progress.Option{progress.WithWidth(40)}
	if theme.MeterColor != "" {
		meterOpts = append(meterOpts, progress.WithSolidFill(theme.MeterColor))
	} else {
		meterOpts = append(meterOpts, progress.WithDefaultGradient())
	}

	return Model{
		t:        opts.Tracker,
		save:     opts.Save,
		theme:    theme,
		keys:     defaultKeys(),
		help:     help.New(),
		meter:    progress.New(meterOpts...),
		note:     ni,
		meterMax: opts.MeterMax,
	}
}

// Run starts the full screen program.
func Run(opts Options) error {
	_, err := tea.NewProgram(New(opts), tea.WithAltScreen()).Run()
	return err
}

type tickMsg struct{ now time.Time }

// tick checks the daily rollover once a minute so a session left open past
// midnight picks up the new quota.
func tick() tea.Cmd {
	return tea.Tick(time.Minute, func(t time.Time) tea.Msg { return tickMsg{now: t} })
}

func (m Model) Init() tea.Cmd {
	return tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.meter.Width = min(max(msg.Width-30, 10), 60)
		return m, nil
	case tickMsg:
		if owed, applied := m.t.ApplyDailyRollover(msg.now); applied {
			m.persist()
			m.setStatus(fmt.Sprintf("New day: %d owed", owed), false)
		}
		return m, tick()
	case tea.KeyMsg:
		if m.pending != noteNone {
			return m.updateNote(msg)
		}
		return m.updateNormal(msg)
	}
	return m, nil
}

func (m Model) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	exercises := m.t.Catalog().All()
	queue := m.t.QueueView()

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.Switch):
		if m.focus == focusExercises {
			m.focus = focusQueue
		} else {
			m.focus = focusExercises
		}
	case key.Matches(msg, m.keys.Up):
		if m.focus == focusExercises {
			m.exCursor = max(m.exCursor-1, 0)
		} else {
			m.queueCursor = max(m.queueCursor-1, 0)
		}
	case key.Matches(msg, m.keys.Down):
		if m.focus == focusExercises {
			m.exCursor = min(m.exCursor+1, len(exercises)-1)
		} else {
			m.queueCursor = min(m.queueCursor+1, max(len(queue)-1, 0))
		}
	case key.Matches(msg, m.keys.Log):
		if m.focus == focusQueue {
			return m.commit()
		}
		return m.startExercise(exercises, noteLog)
	case key.Matches(msg, m.keys.Enqueue):
		return m.startExercise(exercises, noteEnqueue)
	case key.Matches(msg, m.keys.Commit):
		return m.commit()
	case key.Matches(msg, m.keys.Clear):
		if len(queue) > 0 {
			m.t.ClearQueue()
			m.queueCursor = 0
			m.persist()
			m.setStatus("Queue cleared", false)
		}
	case key.Matches(msg, m.keys.Undo):
		view := m.t.LogView()
		if _, err := m.t.DeleteMostRecentGroup(); err == nil {
			m.persist()
			m.setStatus("Removed "+view[0].Groups[0].DisplayTitle, false)
		}
	}
	return m, nil
}

// startExercise logs or queues the exercise under the cursor, prompting for
// a note first when the exercise takes one.
func (m Model) startExercise(exercises []catalog.Exercise, action noteAction) (tea.Model, tea.Cmd) {
	if m.exCursor < 0 || m.exCursor >= len(exercises) {
		return m, nil
	}
	ex := exercises[m.exCursor]
	if ex.HasNote {
		m.pending = action
		m.pendingID = ex.ID
		m.note.Reset()
		cmd := m.note.Focus()
		return m, cmd
	}
	m.apply(action, ex.ID, "")
	return m, nil
}

func (m Model) updateNote(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.pending = noteNone
		m.note.Blur()
		return m, nil
	case tea.KeyEnter:
		action, id, note := m.pending, m.pendingID, m.note.Value()
		m.pending = noteNone
		m.note.Blur()
		m.apply(action, id, note)
		return m, nil
	}
	var cmd tea.Cmd
	m.note, cmd = m.note.Update(msg)
	return m, cmd
}

// apply runs a log or enqueue. Core failures leave the state unchanged and
// are not shown.
func (m *Model) apply(action noteAction, id, note string) {
	switch action {
	case noteLog:
		snap, err := m.t.LogExercise(id, note)
		if err != nil {
			return
		}
		m.persist()
		ex, _ := m.t.Catalog().Lookup(id)
		m.setStatus(fmt.Sprintf("Logged %s, %d owed", ex.Title, snap.Owed), false)
	case noteEnqueue:
		if _, err := m.t.Enqueue(id, note); err != nil {
			return
		}
		m.persist()
		ex, _ := m.t.Catalog().Lookup(id)
		m.setStatus("Queued "+ex.Title, false)
	}
}

func (m Model) commit() (tea.Model, tea.Cmd) {
	groups := m.t.QueueView()
	idx := m.queueCursor
	snap, err := m.t.CommitQueueGroup(idx)
	if err != nil {
		return m, nil
	}
	m.persist()
	if remaining := len(m.t.QueueView()); m.queueCursor >= remaining {
		m.queueCursor = max(remaining-1, 0)
	}
	m.setStatus(fmt.Sprintf("Logged %s, %d owed", groups[idx].DisplayTitle, snap.Owed), false)
	return m, nil
}

func (m *Model) persist() {
	if m.save == nil {
		return
	}
	if err := m.save(m.t.State()); err != nil {
		logrus.WithError(err).Error("failed to save state")
		m.setStatus("Save failed: "+err.Error(), true)
	}
}

func (m *Model) setStatus(s string, isErr bool) {
	m.statusLine = s
	m.statusErr = isErr
}

// meterPercent is owed as a fraction of meterMax, capped at 1.
func (m Model) meterPercent() float64 {
	p := float64(m.t.Owed()) / float64(m.meterMax)
	if p > 1 {
		return 1
	}
	if p < 0 {
		return 0
	}
	return p
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.renderTopBar())
	b.WriteString("\n\n")

	left := m.renderExercises()
	right := m.renderQueue()
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, left, " ", right))
	b.WriteString("\n")

	if m.pending != noteNone {
		b.WriteString(m.theme.Label.Render("Note: "))
		b.WriteString(m.note.View())
		b.WriteString("\n")
	}

	b.WriteString(m.renderLog())
	b.WriteString("\n")

	if m.statusLine != "" {
		if m.statusErr {
			b.WriteString(m.theme.Error.Render(m.statusLine))
		} else {
			b.WriteString(m.theme.Success.Render(m.statusLine))
		}
		b.WriteString("\n")
	}
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m Model) renderTopBar() string {
	owed := m.t.Owed()
	title := m.theme.Title.Render("tinyworkout")
	ver := m.theme.Hint.Render(version.GetVersion())
	count := m.theme.Value.Render(fmt.Sprintf("%d owed", owed))
	return fmt.Sprintf("%s %s  %s  %s", title, ver, m.meter.ViewAs(m.meterPercent()), count)
}

func (m Model) renderExercises() string {
	var b strings.Builder
	b.WriteString(m.theme.Label.Render("Exercises"))
	for i, ex := range m.t.Catalog().All() {
		line := ex.Title
		if ex.Icon != "" {
			line = ex.Icon + " " + line
		}
		b.WriteString("\n")
		if i == m.exCursor && m.focus == focusExercises {
			b.WriteString(m.theme.Selected.Render("> " + line))
		} else {
			b.WriteString("  " + line)
		}
	}
	return m.panel(focusExercises).Render(b.String())
}

func (m Model) renderQueue() string {
	var b strings.Builder
	b.WriteString(m.theme.Label.Render("Next up"))
	groups := m.t.QueueView()
	if len(groups) == 0 {
		b.WriteString("\n")
		b.WriteString(m.theme.Hint.Render("press a to queue"))
	}
	for i, g := range groups {
		line := g.DisplayTitle
		if g.Note != "" {
			line += " " + m.theme.Note.Render("("+g.Note+")")
		}
		b.WriteString("\n")
		if i == m.queueCursor && m.focus == focusQueue {
			b.WriteString(m.theme.Selected.Render("> " + line))
		} else {
			b.WriteString("  " + line)
		}
	}
	return m.panel(focusQueue).Render(b.String())
}

func (m Model) panel(p focusPane) lipgloss.Style {
	if m.focus == p {
		return m.theme.Focus.Width(36)
	}
	return m.theme.Border.Width(36)
}

// renderLog shows the grouped log, trimmed to the rows the window has left.
func (m Model) renderLog() string {
	sections := m.t.LogView()
	if len(sections) == 0 {
		return m.theme.Hint.Render("No activity yet. Go do some exercises!")
	}
	maxRows := 12
	if m.height > 0 {
		maxRows = max(m.height-len(m.t.Catalog().All())-12, 4)
	}

	var b strings.Builder
	rows := 0
	loc := m.t.Calendar().Location()
	for _, s := range sections {
		if rows >= maxRows {
			break
		}
		b.WriteString(m.theme.Date.Render(longDate(s.Date)))
		b.WriteString("\n")
		rows++
		for _, g := range s.Groups {
			if rows >= maxRows {
				break
			}
			line := "  " + m.theme.Label.Render(g.Timestamp.In(loc).Format("3:04 PM")) + "  " + g.DisplayTitle
			if g.Note != "" {
				line += " " + m.theme.Note.Render("("+g.Note+")")
			}
			if m.width > 0 {
				line = truncate.StringWithTail(line, uint(m.width), "…")
			}
			b.WriteString(line)
			b.WriteString("\n")
			rows++
		}
	}
	return b.String()
}

func longDate(date string) string {
	t, err := time.Parse(tracker.DateLayout, date)
	if err != nil {
		return date
	}
	return t.Format("Monday, January 2, 2006")
}
