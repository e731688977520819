package update

import (
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"

	"github.com/sandeepkv93/weekplan/internal/alerts"
	"github.com/sandeepkv93/weekplan/internal/planner"
)

type View string

const (
	ViewWeek      View = "Week"
	ViewDay       View = "Day"
	ViewProgress  View = "Progress"
	ViewTemplates View = "Templates"
)

type StatusBar struct {
	Text    string
	IsError bool
}

type GlobalKeyMap struct {
	Week      string
	Day       string
	Progress  string
	Templates string
	Help      string
	Quit      string
}

// Notification is one fired alert kept for on-screen display.
type Notification struct {
	Title   string
	Body    string
	FiredAt time.Time
}

type PaletteState struct {
	Open  bool
	Input textinput.Model
}

type OnboardingState struct {
	Active bool
	Input  textinput.Model
}

// Model is the bubbletea application state. The planner and alert engine are
// injected; the model never reaches for ambient globals.
type Model struct {
	Planner *planner.Planner
	Engine  *alerts.Engine
	Config  RuntimeConfig

	CurrentView View
	FocusedDay  int
	Cursor      int

	Palette       PaletteState
	Onboarding    OnboardingState
	HelpVisible   bool
	Notifications []Notification
	Status        StatusBar
	Keys          GlobalKeyMap
	Quitting      bool
	LastError     error

	now      func() time.Time
	notifier DesktopNotifier

	weekTable      table.Model
	goalBars       map[string]progress.Model
	saveSpinner    spinner.Model
	saving         bool
	templateCursor int
}

type SwitchViewMsg struct {
	View View
}

type SetStatusMsg struct {
	Text    string
	IsError bool
}

type ClearStatusMsg struct{}

type AppErrorMsg struct {
	Err error
}

// AlertFiredMsg carries one alert delivered by the engine.
type AlertFiredMsg struct {
	Alert alerts.Alert
}

// SaveDoneMsg reports a background persistence flush.
type SaveDoneMsg struct {
	Err error
}
