package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/sandeepkv93/weekplan/internal/model"
)

// Persistence keys. Values are JSON documents except the scalar entries.
const (
	keyOnboarded       = "onboarded"
	keyUserName        = "user_name"
	keyWakeDefault     = "wake_default"
	keySleepDefault    = "sleep_default"
	keyFixedActivities = "fixed_activities"
	keySelected        = "selected_activities"
	keyCustomPrefs     = "custom_preferences"
	keyAutoFill        = "auto_fill"
	keyTemplates       = "task_templates"
	keyWeekStart       = "current_week_start"
	keyWeekTasks       = "week_tasks"
	keyXP              = "xp"
	keyStreak          = "streak"
	keyLastCompletion  = "last_completion_date"
	keyLastWeekStart   = "last_week_start"
	keyGoals           = "weekly_goals"
	keyCustomGoals     = "weekly_goals_custom"
	keyProgress        = "weekly_progress"
	keyCustomProgress  = "weekly_progress_custom"
)

// AppState is everything the planner persists. Loading never fails: any
// missing or undecodable entry falls back to its documented default.
type AppState struct {
	Onboarded          bool
	UserName           string
	WakeDefault        time.Time
	SleepDefault       time.Time
	FixedActivities    []model.FixedActivity
	SelectedActivities []model.Activity
	CustomPreferences  []string
	AutoFill           bool
	Templates          []model.TaskTemplate
	CurrentWeekStart   *time.Time
	WeekTasks          map[int][]model.Task
	XP                 int
	Streak             int
	LastCompletionDate *time.Time
	LastWeekStart      *time.Time
	Goals              model.HourMap
	CustomGoals        model.CustomHourMap
	Progress           model.HourMap
	CustomProgress     model.CustomHourMap
}

// DefaultAppState returns the first-run state: 07:00 wake, 23:00 sleep,
// auto-fill enabled, everything else empty.
func DefaultAppState() AppState {
	return AppState{
		WakeDefault:    time.Date(2000, time.January, 1, 7, 0, 0, 0, time.Local),
		SleepDefault:   time.Date(2000, time.January, 1, 23, 0, 0, 0, time.Local),
		AutoFill:       true,
		WeekTasks:      make(map[int][]model.Task),
		Goals:          make(model.HourMap),
		CustomGoals:    make(model.CustomHourMap),
		Progress:       make(model.HourMap),
		CustomProgress: make(model.CustomHourMap),
	}
}

// Store layers the typed planner state on top of the flat key-value
// repository.
type Store struct {
	repo Repository
}

func NewStore(repo Repository) *Store {
	return &Store{repo: repo}
}

// Load reads the full planner state, substituting defaults for anything
// absent or malformed. Deserialization failures are deliberately swallowed;
// a corrupt entry behaves exactly like a missing one.
func (s *Store) Load(ctx context.Context) AppState {
	state := DefaultAppState()

	s.loadBool(ctx, keyOnboarded, &state.Onboarded)
	s.loadString(ctx, keyUserName, &state.UserName)
	s.loadClock(ctx, keyWakeDefault, &state.WakeDefault)
	s.loadClock(ctx, keySleepDefault, &state.SleepDefault)
	s.loadBool(ctx, keyAutoFill, &state.AutoFill)
	s.loadInt(ctx, keyXP, &state.XP)
	s.loadInt(ctx, keyStreak, &state.Streak)
	state.LastCompletionDate = s.loadTimePtr(ctx, keyLastCompletion)
	state.LastWeekStart = s.loadTimePtr(ctx, keyLastWeekStart)
	state.CurrentWeekStart = s.loadTimePtr(ctx, keyWeekStart)

	if raw, err := s.repo.Get(ctx, keyFixedActivities); err == nil {
		var recs []fixedActivityRecord
		if json.Unmarshal([]byte(raw), &recs) == nil {
			out := make([]model.FixedActivity, 0, len(recs))
			ok := true
			for _, rec := range recs {
				fa, decErr := decodeFixedActivity(rec)
				if decErr != nil {
					ok = false
					break
				}
				out = append(out, fa)
			}
			if ok {
				state.FixedActivities = out
			}
		}
	}

	if raw, err := s.repo.Get(ctx, keySelected); err == nil {
		var tags []string
		if json.Unmarshal([]byte(raw), &tags) == nil {
			out := make([]model.Activity, 0, len(tags))
			for _, tag := range tags {
				if a, valid := model.ParseActivity(tag); valid {
					out = append(out, a)
				}
			}
			state.SelectedActivities = out
		}
	}

	if raw, err := s.repo.Get(ctx, keyCustomPrefs); err == nil {
		var prefs []string
		if json.Unmarshal([]byte(raw), &prefs) == nil {
			state.CustomPreferences = prefs
		}
	}

	if raw, err := s.repo.Get(ctx, keyTemplates); err == nil {
		var recs []templateRecord
		if json.Unmarshal([]byte(raw), &recs) == nil {
			out := make([]model.TaskTemplate, 0, len(recs))
			for _, rec := range recs {
				out = append(out, decodeTemplate(rec))
			}
			state.Templates = out
		}
	}

	if raw, err := s.repo.Get(ctx, keyWeekTasks); err == nil {
		if tasks, decErr := decodeWeekTasks(raw); decErr == nil {
			state.WeekTasks = tasks
		}
	}

	state.Goals = s.loadHourMap(ctx, keyGoals)
	state.Progress = s.loadHourMap(ctx, keyProgress)
	state.CustomGoals = s.loadCustomHourMap(ctx, keyCustomGoals)
	state.CustomProgress = s.loadCustomHourMap(ctx, keyCustomProgress)

	return state
}

// Save writes the full planner state back to the repository.
func (s *Store) Save(ctx context.Context, state AppState) error {
	steps := []struct {
		key   string
		value func() (string, error)
	}{
		{keyOnboarded, func() (string, error) { return strconv.FormatBool(state.Onboarded), nil }},
		{keyUserName, func() (string, error) { return state.UserName, nil }},
		{keyWakeDefault, func() (string, error) { return state.WakeDefault.Format(storedTimeLayout), nil }},
		{keySleepDefault, func() (string, error) { return state.SleepDefault.Format(storedTimeLayout), nil }},
		{keyAutoFill, func() (string, error) { return strconv.FormatBool(state.AutoFill), nil }},
		{keyXP, func() (string, error) { return strconv.Itoa(state.XP), nil }},
		{keyStreak, func() (string, error) { return strconv.Itoa(state.Streak), nil }},
		{keyLastCompletion, func() (string, error) { return formatTimePtr(state.LastCompletionDate), nil }},
		{keyLastWeekStart, func() (string, error) { return formatTimePtr(state.LastWeekStart), nil }},
		{keyWeekStart, func() (string, error) { return formatTimePtr(state.CurrentWeekStart), nil }},
		{keyFixedActivities, func() (string, error) { return marshalFixedActivities(state.FixedActivities) }},
		{keySelected, func() (string, error) { return marshalActivities(state.SelectedActivities) }},
		{keyCustomPrefs, func() (string, error) { return marshalJSON(state.CustomPreferences) }},
		{keyTemplates, func() (string, error) { return marshalTemplates(state.Templates) }},
		{keyWeekTasks, func() (string, error) { return encodeWeekTasks(state.WeekTasks) }},
		{keyGoals, func() (string, error) { return marshalJSON(state.Goals.Tags()) }},
		{keyProgress, func() (string, error) { return marshalJSON(state.Progress.Tags()) }},
		{keyCustomGoals, func() (string, error) { return marshalJSON(map[string]float64(state.CustomGoals)) }},
		{keyCustomProgress, func() (string, error) { return marshalJSON(map[string]float64(state.CustomProgress)) }},
	}
	for _, step := range steps {
		value, err := step.value()
		if err != nil {
			return fmt.Errorf("encode %s: %w", step.key, err)
		}
		if err := s.repo.Set(ctx, step.key, value); err != nil {
			return fmt.Errorf("persist %s: %w", step.key, err)
		}
	}
	return nil
}

func (s *Store) loadBool(ctx context.Context, key string, dst *bool) {
	raw, err := s.repo.Get(ctx, key)
	if err != nil {
		return
	}
	if v, parseErr := strconv.ParseBool(raw); parseErr == nil {
		*dst = v
	}
}

func (s *Store) loadString(ctx context.Context, key string, dst *string) {
	if raw, err := s.repo.Get(ctx, key); err == nil {
		*dst = raw
	}
}

func (s *Store) loadInt(ctx context.Context, key string, dst *int) {
	raw, err := s.repo.Get(ctx, key)
	if err != nil {
		return
	}
	if v, parseErr := strconv.Atoi(raw); parseErr == nil && v >= 0 {
		*dst = v
	}
}

func (s *Store) loadClock(ctx context.Context, key string, dst *time.Time) {
	raw, err := s.repo.Get(ctx, key)
	if err != nil {
		return
	}
	if v, parseErr := time.Parse(storedTimeLayout, raw); parseErr == nil {
		*dst = v
	}
}

func (s *Store) loadTimePtr(ctx context.Context, key string) *time.Time {
	raw, err := s.repo.Get(ctx, key)
	if err != nil || raw == "" {
		return nil
	}
	v, parseErr := time.Parse(storedTimeLayout, raw)
	if parseErr != nil {
		return nil
	}
	return &v
}

func (s *Store) loadHourMap(ctx context.Context, key string) model.HourMap {
	raw, err := s.repo.Get(ctx, key)
	if err != nil {
		return make(model.HourMap)
	}
	var tags map[string]float64
	if json.Unmarshal([]byte(raw), &tags) != nil {
		return make(model.HourMap)
	}
	return model.HourMapFromTags(tags)
}

func (s *Store) loadCustomHourMap(ctx context.Context, key string) model.CustomHourMap {
	raw, err := s.repo.Get(ctx, key)
	if err != nil {
		return make(model.CustomHourMap)
	}
	var out map[string]float64
	if json.Unmarshal([]byte(raw), &out) != nil || out == nil {
		return make(model.CustomHourMap)
	}
	return model.CustomHourMap(out)
}

func marshalJSON(v any) (string, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

func marshalFixedActivities(fixed []model.FixedActivity) (string, error) {
	recs := make([]fixedActivityRecord, 0, len(fixed))
	for _, fa := range fixed {
		recs = append(recs, encodeFixedActivity(fa))
	}
	return marshalJSON(recs)
}

func marshalActivities(selected []model.Activity) (string, error) {
	tags := make([]string, 0, len(selected))
	for _, a := range selected {
		tags = append(tags, string(a))
	}
	return marshalJSON(tags)
}

func marshalTemplates(templates []model.TaskTemplate) (string, error) {
	recs := make([]templateRecord, 0, len(templates))
	for _, t := range templates {
		recs = append(recs, encodeTemplate(t))
	}
	return marshalJSON(recs)
}

func encodeWeekTasks(week map[int][]model.Task) (string, error) {
	out := make(map[string][]taskRecord, len(week))
	for day, tasks := range week {
		recs := make([]taskRecord, 0, len(tasks))
		for _, t := range tasks {
			recs = append(recs, encodeTask(t))
		}
		out[strconv.Itoa(day)] = recs
	}
	return marshalJSON(out)
}

func decodeWeekTasks(raw string) (map[int][]model.Task, error) {
	var recs map[string][]taskRecord
	if err := json.Unmarshal([]byte(raw), &recs); err != nil {
		return nil, err
	}
	out := make(map[int][]model.Task, len(recs))
	for key, dayRecs := range recs {
		day, err := strconv.Atoi(key)
		if err != nil || day < 0 || day > 6 {
			continue
		}
		tasks := make([]model.Task, 0, len(dayRecs))
		for _, rec := range dayRecs {
			task, decErr := decodeTask(rec)
			if decErr != nil {
				return nil, decErr
			}
			tasks = append(tasks, task)
		}
		out[day] = tasks
	}
	return out, nil
}

func formatTimePtr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(storedTimeLayout)
}
