package generator

import (
	"fmt"
	"testing"
	"time"

	"github.com/sandeepkv93/weekplan/internal/model"
)

var (
	monday  = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC) // a Monday
	farPast = time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
)

func clock(hour, minute int) time.Time {
	return time.Date(2000, 1, 1, hour, minute, 0, 0, time.UTC)
}

func at(day time.Time, hour, minute int) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, day.Location())
}

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("task-%d", n)
	}
}

func workWeekdays(name string, startHour, endHour int) model.FixedActivity {
	fa := model.FixedActivity{ID: "fa-" + name, Name: name}
	for i := 1; i <= 5; i++ {
		fa.Days[i] = model.DaySchedule{Enabled: true, Start: clock(startHour, 0), End: clock(endHour, 0)}
	}
	return fa
}

func baseInput() Input {
	study := model.ActivityStudy
	return Input{
		Date:         monday,
		Weekday:      1,
		WakeDefault:  clock(7, 0),
		SleepDefault: clock(23, 0),
		Fixed:        []model.FixedActivity{workWeekdays("Work", 9, 17)},
		AutoFill:     true,
		Preferences:  []Preference{{Title: "Study", Activity: &study}},
		Now:          farPast,
		NewID:        sequentialIDs(),
	}
}

func TestGenerateExampleDay(t *testing.T) {
	tasks := Generate(baseInput())
	if len(tasks) == 0 {
		t.Fatal("expected tasks")
	}

	first := tasks[0]
	if first.Title != "Morning routine" {
		t.Fatalf("first task = %q, want Morning routine", first.Title)
	}
	if !first.Start.Equal(at(monday, 7, 0)) || !first.End.Equal(at(monday, 7, 45)) {
		t.Fatalf("morning routine span %s-%s", first.Start.Format("15:04"), first.End.Format("15:04"))
	}

	second := tasks[1]
	if second.Title != "Study" {
		t.Fatalf("second task = %q, want Study", second.Title)
	}
	// 90 min study scaled by the 0.7 default usage fraction.
	if second.Duration() != 63*time.Minute {
		t.Fatalf("study duration = %s, want 63m", second.Duration())
	}
	if second.Activity == nil || *second.Activity != model.ActivityStudy {
		t.Fatalf("study task not typed: %+v", second.Activity)
	}

	foundWork := false
	foundDinner := false
	for _, task := range tasks {
		if task.Title == "Work" {
			foundWork = true
			if !task.Start.Equal(at(monday, 9, 0)) || !task.End.Equal(at(monday, 17, 0)) {
				t.Fatalf("work span %s-%s", task.Start.Format("15:04"), task.End.Format("15:04"))
			}
			if task.Activity != nil {
				t.Fatal("fixed task must be untyped")
			}
		}
		if task.Title == "Dinner / Cook & eat" {
			foundDinner = true
			if h := task.Start.Hour(); h < 18 || h > 20 {
				t.Fatalf("dinner starts at hour %d", h)
			}
		}
	}
	if !foundWork {
		t.Fatal("missing work block")
	}
	if !foundDinner {
		t.Fatal("missing dinner block")
	}

	assertWellFormed(t, tasks, at(monday, 7, 0), at(monday, 23, 0))
}

func assertWellFormed(t *testing.T, tasks []model.Task, wake, sleep time.Time) {
	t.Helper()
	for i, task := range tasks {
		if !task.End.After(task.Start) {
			t.Fatalf("task %d %q has end <= start", i, task.Title)
		}
		if task.Start.Before(wake) || task.End.After(sleep) {
			t.Fatalf("task %d %q outside window", i, task.Title)
		}
		if i > 0 {
			if task.Start.Before(tasks[i-1].Start) {
				t.Fatalf("tasks not sorted at %d", i)
			}
			if task.Start.Before(tasks[i-1].End) {
				t.Fatalf("task %d %q overlaps %q", i, task.Title, tasks[i-1].Title)
			}
		}
	}
}

func TestGenerateAutoFillDisabled(t *testing.T) {
	in := baseInput()
	in.AutoFill = false

	tasks := Generate(in)
	if len(tasks) != 1 {
		t.Fatalf("expected only the fixed task, got %d", len(tasks))
	}
	if tasks[0].Title != "Work" {
		t.Fatalf("unexpected task: %q", tasks[0].Title)
	}
}

func TestGenerateNoPreferencesYieldsFixedOnly(t *testing.T) {
	in := baseInput()
	in.Preferences = nil

	tasks := Generate(in)
	if len(tasks) != 1 || tasks[0].Title != "Work" {
		t.Fatalf("expected fixed task only, got %+v", tasks)
	}
}

func TestGenerateDegenerateWindow(t *testing.T) {
	in := baseInput()
	in.WakeDefault = clock(23, 0)
	in.SleepDefault = clock(7, 0)

	if tasks := Generate(in); len(tasks) != 0 {
		t.Fatalf("expected empty list, got %d tasks", len(tasks))
	}
}

func TestGenerateWakeSleepOverrides(t *testing.T) {
	in := baseInput()
	wake := clock(10, 30)
	sleep := clock(22, 0)
	in.WakeOverride = &wake
	in.SleepOverride = &sleep

	tasks := Generate(in)
	assertWellFormed(t, tasks, at(monday, 10, 30), at(monday, 22, 0))
	// Morning routine is impossible after the 10:30 override wake.
	for _, task := range tasks {
		if task.Title == "Morning routine" {
			t.Fatal("morning routine should not fit a 10:30 wake")
		}
	}
}

func TestUsageFraction(t *testing.T) {
	cases := []struct {
		energy *int
		want   float64
	}{
		{nil, 0.7},
		{ptr(1), 0.5},
		{ptr(2), 0.7},
		{ptr(3), 0.9},
		{ptr(42), 0.7},
	}
	for _, tc := range cases {
		if got := UsageFraction(tc.energy); got != tc.want {
			t.Fatalf("UsageFraction(%v) = %v, want %v", tc.energy, got, tc.want)
		}
	}
}

func ptr(v int) *int { return &v }

func TestGenerateEnergyScalesDurations(t *testing.T) {
	in := baseInput()
	in.Fixed = nil
	in.Energy = ptr(1)

	tasks := Generate(in)
	for _, task := range tasks {
		if task.Title == "Study" {
			// 90 min at the low-energy 0.5 fraction.
			if task.Duration() != 45*time.Minute {
				t.Fatalf("study duration = %s, want 45m", task.Duration())
			}
			return
		}
	}
	t.Fatal("no study task generated")
}

func TestGenerateSpecialBlocksOncePerDay(t *testing.T) {
	// Two separate morning free ranges around a short fixed block; the
	// one-shot flags must carry across ranges.
	fa := model.FixedActivity{ID: "fa-1", Name: "Standup"}
	fa.Days[1] = model.DaySchedule{Enabled: true, Start: clock(8, 0), End: clock(8, 30)}

	in := baseInput()
	in.Fixed = []model.FixedActivity{fa}

	tasks := Generate(in)
	counts := map[string]int{}
	for _, task := range tasks {
		counts[task.Title]++
	}
	for _, title := range []string{"Morning routine", "Lunch / Break", "Dinner / Cook & eat", "Wind down"} {
		if counts[title] > 1 {
			t.Fatalf("%s emitted %d times", title, counts[title])
		}
	}
}

func TestGenerateSkipsPastBlocksToday(t *testing.T) {
	in := baseInput()
	in.Fixed = nil
	in.Now = at(monday, 12, 0)

	tasks := Generate(in)
	for _, task := range tasks {
		// Routine blocks are exempt; the anti-past rule governs the
		// preference rotation only.
		if task.Title == "Study" && !task.End.After(in.Now) {
			t.Fatalf("task %q ends at %s, entirely in the past", task.Title, task.End.Format("15:04"))
		}
	}
}

func TestGenerateRoundRobinAcrossRanges(t *testing.T) {
	study := model.ActivityStudy
	exercise := model.ActivityExercise
	in := baseInput()
	in.Preferences = []Preference{
		{Title: "Study", Activity: &study},
		{Title: "Exercise", Activity: &exercise},
		{Title: "Journaling"},
	}

	tasks := Generate(in)
	var rotation []string
	for _, task := range tasks {
		switch task.Title {
		case "Study", "Exercise", "Journaling":
			rotation = append(rotation, task.Title)
		}
	}
	if len(rotation) < 3 {
		t.Fatalf("expected at least one full rotation, got %v", rotation)
	}
	want := []string{"Study", "Exercise", "Journaling"}
	for i, title := range rotation {
		if title != want[i%3] {
			t.Fatalf("rotation[%d] = %q, want %q (full: %v)", i, title, want[i%3], rotation)
		}
	}
}

func TestGenerateFixedClippedToWindow(t *testing.T) {
	fa := model.FixedActivity{ID: "fa-1", Name: "Night shift"}
	fa.Days[1] = model.DaySchedule{Enabled: true, Start: clock(5, 0), End: clock(8, 0)}

	in := baseInput()
	in.Fixed = []model.FixedActivity{fa}
	in.AutoFill = false

	tasks := Generate(in)
	if len(tasks) != 1 {
		t.Fatalf("expected 1 task, got %d", len(tasks))
	}
	if !tasks[0].Start.Equal(at(monday, 7, 0)) {
		t.Fatalf("block not clipped to wake: starts %s", tasks[0].Start.Format("15:04"))
	}
}

func TestGenerateDisabledDayContributesNothing(t *testing.T) {
	fa := workWeekdays("Work", 9, 17)
	fa.Days[1].Enabled = false

	in := baseInput()
	in.Fixed = []model.FixedActivity{fa}
	in.AutoFill = false

	if tasks := Generate(in); len(tasks) != 0 {
		t.Fatalf("disabled day produced %d tasks", len(tasks))
	}
}

func TestGenerateDeterministic(t *testing.T) {
	a := Generate(baseInput())
	b := Generate(baseInput())
	if len(a) != len(b) {
		t.Fatalf("run lengths differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i].Title != b[i].Title || !a[i].Start.Equal(b[i].Start) || !a[i].End.Equal(b[i].End) {
			t.Fatalf("runs diverge at %d: %+v vs %+v", i, a[i], b[i])
		}
	}
}
