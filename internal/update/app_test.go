package update

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/weekplan/internal/alerts"
	"github.com/sandeepkv93/weekplan/internal/model"
	"github.com/sandeepkv93/weekplan/internal/planner"
	"github.com/sandeepkv93/weekplan/internal/storage"
)

var testNow = time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)

func newTestModel(t *testing.T, onboarded bool) Model {
	t.Helper()
	state := storage.DefaultAppState()
	state.Onboarded = onboarded
	state.UserName = "Ada"
	state.WakeDefault = time.Date(2000, 1, 1, 7, 0, 0, 0, time.UTC)
	state.SleepDefault = time.Date(2000, 1, 1, 23, 0, 0, 0, time.UTC)
	state.SelectedActivities = []model.Activity{model.ActivityStudy}

	p := planner.New(planner.Config{
		Clock: func() time.Time { return testNow },
		State: state,
	})
	return NewModel(p, nil, DefaultRuntimeConfig(), func() time.Time { return testNow })
}

func pressKey(t *testing.T, m Model, key string) Model {
	t.Helper()
	var msg tea.KeyMsg
	switch key {
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		msg = tea.KeyMsg{Type: tea.KeyEsc}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
	next, _ := m.Update(msg)
	out, ok := next.(Model)
	if !ok {
		t.Fatalf("update returned %T", next)
	}
	return out
}

func TestNewModelDefaults(t *testing.T) {
	m := newTestModel(t, true)
	if m.CurrentView != ViewWeek {
		t.Fatalf("initial view = %v", m.CurrentView)
	}
	if m.FocusedDay != m.Planner.TodayIndex() {
		t.Fatalf("focused day = %d, want today %d", m.FocusedDay, m.Planner.TodayIndex())
	}
	if m.Onboarding.Active {
		t.Fatal("onboarding active for onboarded user")
	}
}

func TestViewSwitchKeys(t *testing.T) {
	m := newTestModel(t, true)
	for key, want := range map[string]View{
		"2": ViewDay,
		"3": ViewProgress,
		"4": ViewTemplates,
		"1": ViewWeek,
	} {
		m = pressKey(t, m, key)
		if m.CurrentView != want {
			t.Fatalf("key %q: view = %v, want %v", key, m.CurrentView, want)
		}
	}
}

func TestFocusDayClamps(t *testing.T) {
	m := newTestModel(t, true)
	for i := 0; i < 10; i++ {
		m = pressKey(t, m, "h")
	}
	if m.FocusedDay != 0 {
		t.Fatalf("focused day after lefts = %d", m.FocusedDay)
	}
	for i := 0; i < 10; i++ {
		m = pressKey(t, m, "l")
	}
	if m.FocusedDay != 6 {
		t.Fatalf("focused day after rights = %d", m.FocusedDay)
	}
}

func TestQuitKey(t *testing.T) {
	m := newTestModel(t, true)
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	out := next.(Model)
	if !out.Quitting {
		t.Fatal("quit key did not set quitting")
	}
	if cmd == nil {
		t.Fatal("quit key returned no command")
	}
}

func TestToggleAtCursorAwardsXP(t *testing.T) {
	m := newTestModel(t, true)
	if len(m.Planner.DayTasks(m.FocusedDay)) == 0 {
		t.Fatal("no tasks generated for today")
	}
	m = pressKey(t, m, " ")
	if got := m.Planner.Tracker().XP(); got != 10 {
		t.Fatalf("xp after toggle = %d, want 10", got)
	}
	task := m.Planner.DayTasks(m.FocusedDay)[0]
	if !task.IsCompleted {
		t.Fatal("cursor task not completed")
	}
}

func TestPaletteRunsCommand(t *testing.T) {
	m := newTestModel(t, true)
	m = pressKey(t, m, "/")
	if !m.Palette.Open {
		t.Fatal("palette did not open")
	}
	m.Palette.Input.SetValue("show progress")
	m = pressKey(t, m, "enter")
	if m.Palette.Open {
		t.Fatal("palette still open after enter")
	}
	if m.CurrentView != ViewProgress {
		t.Fatalf("view = %v, want progress", m.CurrentView)
	}
}

func TestPaletteReportsParseError(t *testing.T) {
	m := newTestModel(t, true)
	m = pressKey(t, m, "/")
	m.Palette.Input.SetValue("frobnicate")
	m = pressKey(t, m, "enter")
	if !m.Status.IsError || m.Status.Text == "" {
		t.Fatalf("status = %+v, want error", m.Status)
	}
}

func TestPaletteEscCloses(t *testing.T) {
	m := newTestModel(t, true)
	m = pressKey(t, m, "/")
	m = pressKey(t, m, "esc")
	if m.Palette.Open {
		t.Fatal("palette still open after esc")
	}
}

func TestPaletteAddCommand(t *testing.T) {
	m := newTestModel(t, true)
	before := len(m.Planner.DayTasks(m.FocusedDay))
	m = pressKey(t, m, "/")
	m.Palette.Input.SetValue("add 20:00-20:30 Call home")
	m = pressKey(t, m, "enter")
	if m.Status.IsError {
		t.Fatalf("add failed: %s", m.Status.Text)
	}
	if got := len(m.Planner.DayTasks(m.FocusedDay)); got != before+1 {
		t.Fatalf("tasks = %d, want %d", got, before+1)
	}
}

func TestOnboardingFlow(t *testing.T) {
	m := newTestModel(t, false)
	if !m.Onboarding.Active {
		t.Fatal("onboarding not active on first run")
	}
	m = pressKey(t, m, "G")
	m = pressKey(t, m, "race")
	m = pressKey(t, m, "enter")
	if m.Onboarding.Active {
		t.Fatal("onboarding still active after enter")
	}
	if got := m.Planner.Settings().UserName; got != "Grace" {
		t.Fatalf("user name = %q", got)
	}
	if !m.Planner.Settings().Onboarded {
		t.Fatal("onboarding not recorded")
	}
}

func TestAlertMsgAppendsNotification(t *testing.T) {
	m := newTestModel(t, true)
	m.Engine = alerts.NewEngine(1)
	next, cmd := m.Update(AlertFiredMsg{Alert: alerts.Alert{
		Title: "Study",
		Body:  "Starting soon (15 mins): Study",
	}})
	out := next.(Model)
	if len(out.Notifications) != 1 {
		t.Fatalf("notifications = %d", len(out.Notifications))
	}
	if out.Status.Text != "Starting soon (15 mins): Study" {
		t.Fatalf("status = %q", out.Status.Text)
	}
	if cmd == nil {
		t.Fatal("alert handling did not rearm the listener")
	}
}

func TestNotificationsCapped(t *testing.T) {
	m := newTestModel(t, true)
	m.Engine = alerts.NewEngine(1)
	for i := 0; i < 8; i++ {
		next, _ := m.Update(AlertFiredMsg{Alert: alerts.Alert{Title: "t", Body: "b"}})
		m = next.(Model)
	}
	if len(m.Notifications) != 5 {
		t.Fatalf("notifications = %d, want cap 5", len(m.Notifications))
	}
}
