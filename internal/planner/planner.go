// Package planner owns the aggregate week state and wires schedule
// generation, manual edits, completion tracking, persistence, and alert
// scheduling together. Every mutating operation ends by invoking the
// injected persistence and notification hooks; the hooks are fire-and-forget
// and never affect the operation's result.
package planner

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sandeepkv93/weekplan/internal/generator"
	"github.com/sandeepkv93/weekplan/internal/model"
	"github.com/sandeepkv93/weekplan/internal/progress"
	"github.com/sandeepkv93/weekplan/internal/storage"
	"github.com/sandeepkv93/weekplan/internal/timeutil"
)

const fallbackTaskTitle = "Custom task"

var ErrInvalidDayIndex = errors.New("planner: day index must be in 0..6")

// PersistFunc receives a full state snapshot after each mutating operation.
type PersistFunc func(storage.AppState)

// NotifyFunc receives a day's task list whenever its alerts need
// rescheduling.
type NotifyFunc func(tasks []model.Task, now time.Time)

// Settings are the user-editable defaults generation runs from.
type Settings struct {
	Onboarded          bool
	UserName           string
	WakeDefault        time.Time
	SleepDefault       time.Time
	FixedActivities    []model.FixedActivity
	SelectedActivities []model.Activity
	CustomPreferences  []string
	AutoFill           bool
	Templates          []model.TaskTemplate
}

// Config assembles a Planner. Clock and NewID default to time.Now and
// uuid.NewString; nil hooks are simply skipped.
type Config struct {
	Clock   func() time.Time
	NewID   func() string
	Persist PersistFunc
	Notify  NotifyFunc
	State   storage.AppState
}

// Planner is the single owner of the current week's task map and the
// gamification tracker. It is not safe for concurrent use; the calling layer
// serializes operations.
type Planner struct {
	now     func() time.Time
	newID   func() string
	persist PersistFunc
	notify  NotifyFunc

	settings  Settings
	weekStart time.Time
	week      map[int][]model.Task

	tracker     *progress.Tracker
	goals       model.HourMap
	customGoals model.CustomHourMap
}

// New restores a planner from persisted state. When the stored week matches
// the current calendar week the stored task map is reused verbatim;
// otherwise a fresh week is generated and the stored map discarded.
func New(cfg Config) *Planner {
	now := cfg.Clock
	if now == nil {
		now = time.Now
	}
	newID := cfg.NewID
	if newID == nil {
		newID = uuid.NewString
	}

	state := cfg.State
	p := &Planner{
		now:     now,
		newID:   newID,
		persist: cfg.Persist,
		notify:  cfg.Notify,
		settings: Settings{
			Onboarded:          state.Onboarded,
			UserName:           state.UserName,
			WakeDefault:        state.WakeDefault,
			SleepDefault:       state.SleepDefault,
			FixedActivities:    state.FixedActivities,
			SelectedActivities: state.SelectedActivities,
			CustomPreferences:  state.CustomPreferences,
			AutoFill:           state.AutoFill,
			Templates:          state.Templates,
		},
		goals:       state.Goals,
		customGoals: state.CustomGoals,
	}
	if p.goals == nil {
		p.goals = make(model.HourMap)
	}
	if p.customGoals == nil {
		p.customGoals = make(model.CustomHourMap)
	}

	p.tracker = progress.NewTracker(now, progress.State{
		XP:                 state.XP,
		Streak:             state.Streak,
		LastCompletionDate: state.LastCompletionDate,
		LastWeekStart:      state.LastWeekStart,
		ByActivity:         state.Progress,
		Custom:             state.CustomProgress,
	})
	p.tracker.SetCustomTitles(p.settings.CustomPreferences)
	p.tracker.EnsureCurrentWeek()

	p.weekStart = timeutil.WeekStart(now())
	if state.CurrentWeekStart != nil && state.CurrentWeekStart.Equal(p.weekStart) && len(state.WeekTasks) > 0 {
		p.week = make(map[int][]model.Task, 7)
		for i := 0; i < 7; i++ {
			p.week[i] = state.WeekTasks[i]
		}
	} else {
		p.regenerateAll()
	}
	return p
}

// GenerateWeek regenerates all 7 days from the current defaults, replacing
// the whole task map, then persists and reschedules today's alerts.
func (p *Planner) GenerateWeek() {
	p.regenerateAll()
	p.afterMutation(p.week[p.TodayIndex()])
}

func (p *Planner) regenerateAll() {
	week := make(map[int][]model.Task, 7)
	for i := 0; i < 7; i++ {
		week[i] = p.generateDay(i, nil, nil, nil)
	}
	p.week = week
}

// RegenerateDay rebuilds a single day, optionally with an energy level and
// wake/sleep overrides, preserving the other days.
func (p *Planner) RegenerateDay(day int, energy *int, wakeOverride, sleepOverride *time.Time) {
	if day < 0 || day > 6 {
		return
	}
	p.week[day] = p.generateDay(day, energy, wakeOverride, sleepOverride)
	p.afterMutation(p.week[day])
}

func (p *Planner) generateDay(day int, energy *int, wakeOverride, sleepOverride *time.Time) []model.Task {
	return generator.Generate(generator.Input{
		Date:          p.DayDate(day),
		Weekday:       day,
		WakeDefault:   p.settings.WakeDefault,
		SleepDefault:  p.settings.SleepDefault,
		WakeOverride:  wakeOverride,
		SleepOverride: sleepOverride,
		Fixed:         p.settings.FixedActivities,
		AutoFill:      p.settings.AutoFill,
		Preferences:   p.preferenceList(),
		Energy:        energy,
		Now:           p.now(),
		NewID:         p.newID,
	})
}

// preferenceList concatenates selected built-ins ahead of custom preference
// titles; that order drives the generator's round-robin.
func (p *Planner) preferenceList() []generator.Preference {
	out := make([]generator.Preference, 0, len(p.settings.SelectedActivities)+len(p.settings.CustomPreferences))
	for _, a := range p.settings.SelectedActivities {
		activity := a
		out = append(out, generator.Preference{Title: a.Label(), Activity: &activity})
	}
	for _, title := range p.settings.CustomPreferences {
		out = append(out, generator.Preference{Title: title})
	}
	return out
}

// AddManualTask inserts a user-entered block into a day and re-sorts by
// start. Overlap with existing tasks is allowed; the user is in full
// control of manual entries. An empty title falls back to "Custom task".
func (p *Planner) AddManualTask(day int, title string, start, end time.Time, activity *model.Activity) (model.Task, error) {
	if day < 0 || day > 6 {
		return model.Task{}, ErrInvalidDayIndex
	}
	title = strings.TrimSpace(title)
	if title == "" {
		title = fallbackTaskTitle
	}
	task := model.Task{
		ID:       p.newID(),
		Title:    title,
		Start:    start,
		End:      end,
		Activity: activity,
	}
	if err := task.Validate(); err != nil {
		return model.Task{}, err
	}
	p.week[day] = append(p.week[day], task)
	model.SortTasks(p.week[day])
	p.afterMutation(p.week[day])
	return task, nil
}

// DeleteTask removes a task from a day by ID.
func (p *Planner) DeleteTask(day int, taskID string) bool {
	tasks, ok := p.week[day]
	if !ok {
		return false
	}
	for i, t := range tasks {
		if t.ID == taskID {
			p.week[day] = append(tasks[:i:i], tasks[i+1:]...)
			p.afterMutation(p.week[day])
			return true
		}
	}
	return false
}

// ToggleCompletion flips a task's completion state and routes the event
// through the tracker so XP and weekly progress stay consistent. Repeating
// the same state is a no-op.
func (p *Planner) ToggleCompletion(day int, taskID string, completed bool) bool {
	tasks, ok := p.week[day]
	if !ok {
		return false
	}
	for i := range tasks {
		if tasks[i].ID != taskID {
			continue
		}
		if tasks[i].IsCompleted == completed {
			return true
		}
		p.tracker.SetCompletion(&tasks[i], completed)
		p.persistOnly()
		return true
	}
	return false
}

// EndDay closes out a day's streak bookkeeping and reports the completion
// ratio.
func (p *Planner) EndDay(day int) (completed, total int) {
	completed, total = p.tracker.EndDay(p.week[day])
	p.persistOnly()
	return completed, total
}

// ApplyTemplate adds a block from a template starting at start, spanning the
// template's default duration.
func (p *Planner) ApplyTemplate(day int, templateID string, start time.Time) (model.Task, error) {
	for _, tpl := range p.settings.Templates {
		if tpl.ID == templateID {
			return p.AddManualTask(day, tpl.Title, start, start.Add(tpl.DefaultDuration), tpl.Activity)
		}
	}
	return model.Task{}, storage.ErrNotFound
}

// AddTemplate stores a reusable task preset.
func (p *Planner) AddTemplate(title string, duration time.Duration, activity *model.Activity) (model.TaskTemplate, error) {
	tpl := model.TaskTemplate{
		ID:              p.newID(),
		Title:           strings.TrimSpace(title),
		DefaultDuration: duration,
		Activity:        activity,
	}
	if err := tpl.Validate(); err != nil {
		return model.TaskTemplate{}, err
	}
	p.settings.Templates = append(p.settings.Templates, tpl)
	p.persistOnly()
	return tpl, nil
}

// DeleteTemplate removes a preset by ID.
func (p *Planner) DeleteTemplate(templateID string) bool {
	for i, tpl := range p.settings.Templates {
		if tpl.ID == templateID {
			p.settings.Templates = append(p.settings.Templates[:i:i], p.settings.Templates[i+1:]...)
			p.persistOnly()
			return true
		}
	}
	return false
}

// SetActivityGoal sets the weekly hour goal for a built-in activity,
// clamped into the allowed range.
func (p *Planner) SetActivityGoal(a model.Activity, hours float64) {
	p.goals[a] = model.ClampGoalHours(hours)
	p.persistOnly()
}

// SetCustomGoal sets the weekly hour goal for a custom preference title.
func (p *Planner) SetCustomGoal(title string, hours float64) {
	p.customGoals[title] = model.ClampGoalHours(hours)
	p.persistOnly()
}

// SetWakeSleep updates the default wake/sleep window.
func (p *Planner) SetWakeSleep(wake, sleep time.Time) {
	p.settings.WakeDefault = wake
	p.settings.SleepDefault = sleep
	p.persistOnly()
}

// SetAutoFill toggles free-range auto-filling for future generations.
func (p *Planner) SetAutoFill(enabled bool) {
	p.settings.AutoFill = enabled
	p.persistOnly()
}

// SetPreferences replaces the free-time preference lists and refreshes the
// tracker's custom-title membership used for progress attribution.
func (p *Planner) SetPreferences(selected []model.Activity, custom []string) {
	p.settings.SelectedActivities = selected
	p.settings.CustomPreferences = custom
	p.tracker.SetCustomTitles(custom)
	p.persistOnly()
}

// SetFixedActivities replaces the weekly commitment list.
func (p *Planner) SetFixedActivities(fixed []model.FixedActivity) {
	p.settings.FixedActivities = fixed
	p.persistOnly()
}

// CompleteOnboarding records the user's name and marks first-run setup done.
func (p *Planner) CompleteOnboarding(name string) {
	p.settings.UserName = strings.TrimSpace(name)
	p.settings.Onboarded = true
	p.persistOnly()
}

// DayDate returns the calendar date of a week day index.
func (p *Planner) DayDate(day int) time.Time {
	return p.weekStart.AddDate(0, 0, day)
}

// TodayIndex returns the week-day index of the injected clock's today,
// clamped into the current week.
func (p *Planner) TodayIndex() int {
	idx := timeutil.DaysBetween(p.weekStart, p.now())
	if idx < 0 {
		return 0
	}
	if idx > 6 {
		return 6
	}
	return idx
}

// WeekStart returns the canonical Sunday-aligned start of the active week.
func (p *Planner) WeekStart() time.Time { return p.weekStart }

// DayTasks returns a day's ordered task list.
func (p *Planner) DayTasks(day int) []model.Task { return p.week[day] }

// Settings returns the current user defaults.
func (p *Planner) Settings() Settings { return p.settings }

// Tracker exposes the gamification tracker for read access.
func (p *Planner) Tracker() *progress.Tracker { return p.tracker }

// Goals returns the weekly goal maps. Callers must treat them as read-only.
func (p *Planner) Goals() (model.HourMap, model.CustomHourMap) {
	return p.goals, p.customGoals
}

// Snapshot captures the full persistable state.
func (p *Planner) Snapshot() storage.AppState {
	trackerState := p.tracker.Snapshot()
	weekStart := p.weekStart
	week := make(map[int][]model.Task, 7)
	for i := 0; i < 7; i++ {
		week[i] = p.week[i]
	}
	return storage.AppState{
		Onboarded:          p.settings.Onboarded,
		UserName:           p.settings.UserName,
		WakeDefault:        p.settings.WakeDefault,
		SleepDefault:       p.settings.SleepDefault,
		FixedActivities:    p.settings.FixedActivities,
		SelectedActivities: p.settings.SelectedActivities,
		CustomPreferences:  p.settings.CustomPreferences,
		AutoFill:           p.settings.AutoFill,
		Templates:          p.settings.Templates,
		CurrentWeekStart:   &weekStart,
		WeekTasks:          week,
		XP:                 trackerState.XP,
		Streak:             trackerState.Streak,
		LastCompletionDate: trackerState.LastCompletionDate,
		LastWeekStart:      trackerState.LastWeekStart,
		Goals:              p.goals,
		CustomGoals:        p.customGoals,
		Progress:           trackerState.ByActivity,
		CustomProgress:     trackerState.Custom,
	}
}

func (p *Planner) afterMutation(dayTasks []model.Task) {
	p.persistOnly()
	if p.notify != nil {
		p.notify(dayTasks, p.now())
	}
}

func (p *Planner) persistOnly() {
	if p.persist != nil {
		p.persist(p.Snapshot())
	}
}
