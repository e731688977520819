// Package progress owns the planner's gamification state: weekly hour
// progress per activity bucket, experience points, and the completion
// streak. All mutation goes through the Tracker; the UI layer only reads.
package progress

import (
	"time"

	"github.com/sandeepkv93/weekplan/internal/model"
	"github.com/sandeepkv93/weekplan/internal/timeutil"
)

// CompletionXP is granted per task completion and revoked when a completion
// is toggled back off.
const CompletionXP = 10

// State is the tracker's persisted snapshot.
type State struct {
	XP                 int
	Streak             int
	LastCompletionDate *time.Time
	LastWeekStart      *time.Time
	ByActivity         model.HourMap
	Custom             model.CustomHourMap
}

// Tracker derives streaks, XP, and weekly goal progress from completion
// events. The clock is injected so week rollover and streak math are
// deterministic under test.
type Tracker struct {
	now func() time.Time

	xp                 int
	streak             int
	lastCompletionDate *time.Time
	lastWeekStart      *time.Time

	byActivity model.HourMap
	custom     model.CustomHourMap

	// customTitles is the set of user-defined preference titles; untyped
	// tasks attribute progress only when their title is a member.
	customTitles map[string]bool
}

// NewTracker builds a tracker from a persisted snapshot. A zero-value State
// yields fresh counters.
func NewTracker(now func() time.Time, state State) *Tracker {
	if now == nil {
		now = time.Now
	}
	t := &Tracker{
		now:                now,
		xp:                 state.XP,
		streak:             state.Streak,
		lastCompletionDate: state.LastCompletionDate,
		lastWeekStart:      state.LastWeekStart,
		byActivity:         state.ByActivity,
		custom:             state.Custom,
		customTitles:       make(map[string]bool),
	}
	if t.xp < 0 {
		t.xp = 0
	}
	if t.streak < 0 {
		t.streak = 0
	}
	if t.byActivity == nil {
		t.byActivity = make(model.HourMap)
	}
	if t.custom == nil {
		t.custom = make(model.CustomHourMap)
	}
	return t
}

// SetCustomTitles replaces the membership set used to attribute untyped
// tasks to custom progress buckets.
func (t *Tracker) SetCustomTitles(titles []string) {
	t.customTitles = make(map[string]bool, len(titles))
	for _, title := range titles {
		t.customTitles[title] = true
	}
}

// EnsureCurrentWeek resets both progress maps when the calendar has moved
// past the stored week watermark. It must run before any progress read or
// mutation; within one week repeated calls are no-ops.
func (t *Tracker) EnsureCurrentWeek() {
	week := timeutil.WeekStart(t.now())
	if t.lastWeekStart != nil && t.lastWeekStart.Equal(week) {
		return
	}
	t.byActivity = make(model.HourMap)
	t.custom = make(model.CustomHourMap)
	t.lastWeekStart = &week
}

// SetCompletion applies a completion toggle to the task and adjusts XP and
// the matching progress bucket. Toggling to the state the task is already in
// is a no-op, so repeated events never double-count.
func (t *Tracker) SetCompletion(task *model.Task, completed bool) {
	if task == nil || task.IsCompleted == completed {
		return
	}
	t.EnsureCurrentWeek()

	task.IsCompleted = completed
	hours := task.Duration().Hours()
	if completed {
		t.xp += CompletionXP
		t.adjustBucket(*task, hours)
		return
	}
	t.xp -= CompletionXP
	if t.xp < 0 {
		t.xp = 0
	}
	t.adjustBucket(*task, -hours)
}

// adjustBucket attributes hours typed-enum first, custom-title second;
// untyped tasks with unknown titles contribute nothing.
func (t *Tracker) adjustBucket(task model.Task, hours float64) {
	if task.Activity != nil {
		t.byActivity.Add(*task.Activity, hours)
		return
	}
	if t.customTitles[task.Title] {
		t.custom.Add(task.Title, hours)
	}
}

// EndDay closes out a day: it counts completions, advances or resets the
// streak, and stamps today as the last completion date. The task list is
// not mutated.
func (t *Tracker) EndDay(tasks []model.Task) (completed, total int) {
	total = len(tasks)
	for _, task := range tasks {
		if task.IsCompleted {
			completed++
		}
	}

	today := timeutil.Midnight(t.now())
	if completed == 0 {
		t.streak = 0
		t.lastCompletionDate = &today
		return completed, total
	}

	switch {
	case t.lastCompletionDate == nil:
		t.streak = 1
	case timeutil.DaysBetween(*t.lastCompletionDate, today) == 1:
		t.streak++
	case !timeutil.SameDay(*t.lastCompletionDate, today):
		t.streak = 1
	}
	t.lastCompletionDate = &today
	return completed, total
}

// XP returns the current experience total.
func (t *Tracker) XP() int { return t.xp }

// Streak returns the current consecutive-day completion streak.
func (t *Tracker) Streak() int { return t.streak }

// WeekProgress returns the live progress maps for the active week. Callers
// must treat them as read-only.
func (t *Tracker) WeekProgress() (model.HourMap, model.CustomHourMap) {
	t.EnsureCurrentWeek()
	return t.byActivity, t.custom
}

// Snapshot captures the tracker state for persistence.
func (t *Tracker) Snapshot() State {
	return State{
		XP:                 t.xp,
		Streak:             t.streak,
		LastCompletionDate: t.lastCompletionDate,
		LastWeekStart:      t.lastWeekStart,
		ByActivity:         t.byActivity,
		Custom:             t.custom,
	}
}
