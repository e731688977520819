package update

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/weekplan/internal/alerts"
	"github.com/sandeepkv93/weekplan/internal/planner"
)

// NewModel wires the TUI around an injected planner, alert engine, and
// clock.
func NewModel(p *planner.Planner, engine *alerts.Engine, cfg RuntimeConfig, now func() time.Time) Model {
	if now == nil {
		now = time.Now
	}

	paletteInput := textinput.New()
	paletteInput.Placeholder = "add 18:00-19:00 Guitar practice"
	paletteInput.CharLimit = 120

	nameInput := textinput.New()
	nameInput.Placeholder = "What should we call you?"
	nameInput.CharLimit = 40

	m := Model{
		Planner:     p,
		Engine:      engine,
		Config:      cfg,
		CurrentView: ViewWeek,
		FocusedDay:  p.TodayIndex(),
		Palette:     PaletteState{Input: paletteInput},
		Onboarding:  OnboardingState{Input: nameInput},
		Keys: GlobalKeyMap{
			Week:      "1",
			Day:       "2",
			Progress:  "3",
			Templates: "4",
			Help:      "?",
			Quit:      "q",
		},
		now:         now,
		notifier:    NoopDesktopNotifier{},
		goalBars:    make(map[string]progress.Model),
		saveSpinner: spinner.New(spinner.WithSpinner(spinner.Dot)),
	}
	if cfg.DesktopNotifications {
		m.notifier = ExecDesktopNotifier{}
	}
	if !p.Settings().Onboarded {
		m.Onboarding.Active = true
		m.Onboarding.Input.Focus()
	}
	m.weekTable = newWeekTable()
	m.refreshWeekTable()
	return m
}

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.saveSpinner.Tick}
	if m.Engine != nil {
		cmds = append(cmds, waitForAlert(m.Engine.C()))
	}
	return tea.Batch(cmds...)
}

func waitForAlert(ch <-chan alerts.Alert) tea.Cmd {
	return func() tea.Msg {
		a, ok := <-ch
		if !ok {
			return nil
		}
		return AlertFiredMsg{Alert: a}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case SwitchViewMsg:
		if isValidView(msg.View) {
			m.CurrentView = msg.View
		}
		return m, nil
	case SetStatusMsg:
		m.Status = StatusBar{Text: msg.Text, IsError: msg.IsError}
		return m, nil
	case ClearStatusMsg:
		m.Status = StatusBar{}
		return m, nil
	case AppErrorMsg:
		m.LastError = msg.Err
		m.Status = StatusBar{Text: msg.Err.Error(), IsError: true}
		return m, nil
	case AlertFiredMsg:
		return m.handleAlert(msg)
	case SaveDoneMsg:
		m.saving = false
		if msg.Err != nil {
			m.Status = StatusBar{Text: fmt.Sprintf("save failed: %v", msg.Err), IsError: true}
		}
		return m, nil
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.saveSpinner, cmd = m.saveSpinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleAlert(msg AlertFiredMsg) (tea.Model, tea.Cmd) {
	n := Notification{
		Title:   msg.Alert.Title,
		Body:    msg.Alert.Body,
		FiredAt: m.now(),
	}
	m.Notifications = append(m.Notifications, n)
	if len(m.Notifications) > 5 {
		m.Notifications = m.Notifications[len(m.Notifications)-5:]
	}
	m.Status = StatusBar{Text: msg.Alert.Body}
	if m.Config.DesktopNotifications {
		_ = m.notifier.Send(n)
	}
	return m, waitForAlert(m.Engine.C())
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.Onboarding.Active {
		return m.handleOnboardingKey(msg)
	}
	if m.Palette.Open {
		return m.handlePaletteKey(msg)
	}

	switch msg.String() {
	case m.Keys.Quit, "ctrl+c":
		m.Quitting = true
		return m, tea.Quit
	case m.Keys.Week:
		m.CurrentView = ViewWeek
	case m.Keys.Day:
		m.CurrentView = ViewDay
	case m.Keys.Progress:
		m.CurrentView = ViewProgress
	case m.Keys.Templates:
		m.CurrentView = ViewTemplates
	case m.Keys.Help:
		m.HelpVisible = !m.HelpVisible
	case "/":
		m.Palette.Open = true
		m.Palette.Input.SetValue("")
		m.Palette.Input.Focus()
		return m, textinput.Blink
	case "h", "left":
		m.focusDay(m.FocusedDay - 1)
	case "l", "right":
		m.focusDay(m.FocusedDay + 1)
	case "j", "down":
		m.moveCursor(1)
	case "k", "up":
		m.moveCursor(-1)
	case " ":
		return m.toggleAtCursor()
	case "x":
		return m.deleteAtCursor()
	case "g":
		m.Planner.RegenerateDay(m.FocusedDay, nil, nil, nil)
		m.refreshWeekTable()
		m.saving = true
		m.Status = StatusBar{Text: fmt.Sprintf("regenerated %s", m.dayLabel(m.FocusedDay))}
	case "G":
		m.Planner.GenerateWeek()
		m.refreshWeekTable()
		m.saving = true
		m.Status = StatusBar{Text: "week regenerated"}
	case "e":
		completed, total := m.Planner.EndDay(m.FocusedDay)
		m.saving = true
		m.Status = StatusBar{Text: fmt.Sprintf("day closed: %d/%d done, streak %d", completed, total, m.Planner.Tracker().Streak())}
	}
	return m, nil
}

func (m Model) handleOnboardingKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.Planner.CompleteOnboarding(m.Onboarding.Input.Value())
		m.Planner.GenerateWeek()
		m.refreshWeekTable()
		m.Onboarding.Active = false
		m.saving = true
		m.Status = StatusBar{Text: fmt.Sprintf("welcome, %s - week planned", m.Planner.Settings().UserName)}
		return m, nil
	case "ctrl+c":
		m.Quitting = true
		return m, tea.Quit
	default:
		var cmd tea.Cmd
		m.Onboarding.Input, cmd = m.Onboarding.Input.Update(msg)
		return m, cmd
	}
}

func (m *Model) focusDay(day int) {
	if day < 0 {
		day = 0
	}
	if day > 6 {
		day = 6
	}
	m.FocusedDay = day
	m.Cursor = 0
}

func (m *Model) moveCursor(delta int) {
	limit := 0
	switch m.CurrentView {
	case ViewTemplates:
		limit = len(m.Planner.Settings().Templates)
		m.templateCursor = clampCursor(m.templateCursor+delta, limit)
		return
	default:
		limit = len(m.Planner.DayTasks(m.FocusedDay))
	}
	m.Cursor = clampCursor(m.Cursor+delta, limit)
}

func clampCursor(cursor, length int) int {
	if length == 0 {
		return 0
	}
	if cursor < 0 {
		return 0
	}
	if cursor >= length {
		return length - 1
	}
	return cursor
}

func (m Model) toggleAtCursor() (tea.Model, tea.Cmd) {
	tasks := m.Planner.DayTasks(m.FocusedDay)
	if m.Cursor < 0 || m.Cursor >= len(tasks) {
		return m, nil
	}
	task := tasks[m.Cursor]
	m.Planner.ToggleCompletion(m.FocusedDay, task.ID, !task.IsCompleted)
	m.refreshWeekTable()
	m.saving = true
	return m, nil
}

func (m Model) deleteAtCursor() (tea.Model, tea.Cmd) {
	tasks := m.Planner.DayTasks(m.FocusedDay)
	if m.Cursor < 0 || m.Cursor >= len(tasks) {
		return m, nil
	}
	m.Planner.DeleteTask(m.FocusedDay, tasks[m.Cursor].ID)
	m.Cursor = clampCursor(m.Cursor, len(m.Planner.DayTasks(m.FocusedDay)))
	m.refreshWeekTable()
	m.saving = true
	return m, nil
}

func isValidView(v View) bool {
	switch v {
	case ViewWeek, ViewDay, ViewProgress, ViewTemplates:
		return true
	default:
		return false
	}
}

func newWeekTable() table.Model {
	return table.New(
		table.WithColumns([]table.Column{
			{Title: "Day", Width: 12},
			{Title: "Tasks", Width: 7},
			{Title: "Done", Width: 6},
			{Title: "First", Width: 8},
			{Title: "Last", Width: 8},
		}),
		table.WithHeight(9),
	)
}

func (m *Model) refreshWeekTable() {
	rows := make([]table.Row, 0, 7)
	for day := 0; day < 7; day++ {
		tasks := m.Planner.DayTasks(day)
		done := 0
		for _, t := range tasks {
			if t.IsCompleted {
				done++
			}
		}
		first, last := "-", "-"
		if len(tasks) > 0 {
			first = tasks[0].Start.Format("15:04")
			last = tasks[len(tasks)-1].End.Format("15:04")
		}
		rows = append(rows, table.Row{
			m.dayLabel(day),
			fmt.Sprintf("%d", len(tasks)),
			fmt.Sprintf("%d", done),
			first,
			last,
		})
	}
	m.weekTable.SetRows(rows)
}

func (m Model) dayLabel(day int) string {
	return m.Planner.DayDate(day).Format("Mon Jan 2")
}
