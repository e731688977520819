package progress

import (
	"testing"
	"time"

	"github.com/sandeepkv93/weekplan/internal/model"
	"github.com/sandeepkv93/weekplan/internal/timeutil"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func newTestTracker(now time.Time) (*Tracker, *fakeClock) {
	clock := &fakeClock{now: now}
	tracker := NewTracker(clock.Now, State{})
	return tracker, clock
}

func studyTask(d time.Duration) *model.Task {
	study := model.ActivityStudy
	start := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	return &model.Task{
		ID:       "t-1",
		Title:    "Study",
		Start:    start,
		End:      start.Add(d),
		Activity: &study,
	}
}

func TestSetCompletionAwardsXPAndProgress(t *testing.T) {
	tracker, _ := newTestTracker(time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC))
	task := studyTask(90 * time.Minute)

	tracker.SetCompletion(task, true)
	if !task.IsCompleted {
		t.Fatal("task not marked completed")
	}
	if tracker.XP() != CompletionXP {
		t.Fatalf("xp = %d, want %d", tracker.XP(), CompletionXP)
	}
	byActivity, _ := tracker.WeekProgress()
	if byActivity[model.ActivityStudy] != 1.5 {
		t.Fatalf("study progress = %v, want 1.5", byActivity[model.ActivityStudy])
	}
}

func TestSetCompletionIdempotent(t *testing.T) {
	tracker, _ := newTestTracker(time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC))
	task := studyTask(time.Hour)

	tracker.SetCompletion(task, true)
	tracker.SetCompletion(task, true)
	if tracker.XP() != CompletionXP {
		t.Fatalf("second identical toggle changed xp: %d", tracker.XP())
	}
	byActivity, _ := tracker.WeekProgress()
	if byActivity[model.ActivityStudy] != 1 {
		t.Fatalf("second identical toggle changed progress: %v", byActivity[model.ActivityStudy])
	}
}

func TestSetCompletionUndoFloorsAtZero(t *testing.T) {
	tracker, _ := newTestTracker(time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC))
	task := studyTask(time.Hour)

	tracker.SetCompletion(task, true)
	tracker.SetCompletion(task, false)
	if tracker.XP() != 0 {
		t.Fatalf("xp after undo = %d, want 0", tracker.XP())
	}
	byActivity, _ := tracker.WeekProgress()
	if byActivity[model.ActivityStudy] != 0 {
		t.Fatalf("progress after undo = %v, want 0", byActivity[model.ActivityStudy])
	}

	// Undoing an already-incomplete task stays a no-op.
	tracker.SetCompletion(task, false)
	if tracker.XP() != 0 {
		t.Fatalf("xp went negative: %d", tracker.XP())
	}
}

func TestProgressAttributionCustomTitle(t *testing.T) {
	tracker, _ := newTestTracker(time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC))
	tracker.SetCustomTitles([]string{"Guitar practice"})

	start := time.Date(2026, 3, 2, 18, 0, 0, 0, time.UTC)
	guitar := &model.Task{ID: "t-2", Title: "Guitar practice", Start: start, End: start.Add(30 * time.Minute)}
	unknown := &model.Task{ID: "t-3", Title: "Morning routine", Start: start, End: start.Add(30 * time.Minute)}

	tracker.SetCompletion(guitar, true)
	tracker.SetCompletion(unknown, true)

	_, custom := tracker.WeekProgress()
	if custom["Guitar practice"] != 0.5 {
		t.Fatalf("guitar progress = %v, want 0.5", custom["Guitar practice"])
	}
	if len(custom) != 1 {
		t.Fatalf("unmatched untyped task leaked into progress: %v", custom)
	}
	// Both completions still earn XP.
	if tracker.XP() != 2*CompletionXP {
		t.Fatalf("xp = %d, want %d", tracker.XP(), 2*CompletionXP)
	}
}

func TestEndDayStreakScenarios(t *testing.T) {
	today := time.Date(2026, 3, 4, 21, 0, 0, 0, time.UTC)
	dayTasks := func(completed bool) []model.Task {
		task := *studyTask(time.Hour)
		task.IsCompleted = completed
		return []model.Task{task}
	}

	t.Run("first completion starts streak at 1", func(t *testing.T) {
		tracker, _ := newTestTracker(today)
		done, total := tracker.EndDay(dayTasks(true))
		if done != 1 || total != 1 {
			t.Fatalf("counts = %d/%d", done, total)
		}
		if tracker.Streak() != 1 {
			t.Fatalf("streak = %d, want 1", tracker.Streak())
		}
	})

	t.Run("yesterday extends streak", func(t *testing.T) {
		yesterday := timeutil.Midnight(today.AddDate(0, 0, -1))
		tracker := NewTracker(func() time.Time { return today }, State{Streak: 3, LastCompletionDate: &yesterday})
		tracker.EndDay(dayTasks(true))
		if tracker.Streak() != 4 {
			t.Fatalf("streak = %d, want 4", tracker.Streak())
		}
	})

	t.Run("gap resets streak to 1", func(t *testing.T) {
		threeDaysAgo := timeutil.Midnight(today.AddDate(0, 0, -3))
		tracker := NewTracker(func() time.Time { return today }, State{Streak: 9, LastCompletionDate: &threeDaysAgo})
		tracker.EndDay(dayTasks(true))
		if tracker.Streak() != 1 {
			t.Fatalf("streak = %d, want 1", tracker.Streak())
		}
	})

	t.Run("second end-day today keeps streak", func(t *testing.T) {
		todayMidnight := timeutil.Midnight(today)
		tracker := NewTracker(func() time.Time { return today }, State{Streak: 5, LastCompletionDate: &todayMidnight})
		tracker.EndDay(dayTasks(true))
		if tracker.Streak() != 5 {
			t.Fatalf("streak = %d, want 5", tracker.Streak())
		}
	})

	t.Run("no completions resets to zero but stamps date", func(t *testing.T) {
		tracker, _ := newTestTracker(today)
		done, total := tracker.EndDay(dayTasks(false))
		if done != 0 || total != 1 {
			t.Fatalf("counts = %d/%d", done, total)
		}
		if tracker.Streak() != 0 {
			t.Fatalf("streak = %d, want 0", tracker.Streak())
		}
		snap := tracker.Snapshot()
		if snap.LastCompletionDate == nil || !timeutil.SameDay(*snap.LastCompletionDate, today) {
			t.Fatalf("last completion date not stamped: %v", snap.LastCompletionDate)
		}
	})
}

func TestEnsureCurrentWeekRollover(t *testing.T) {
	tracker, clock := newTestTracker(time.Date(2026, 3, 4, 12, 0, 0, 0, time.UTC))
	task := studyTask(2 * time.Hour)
	tracker.SetCompletion(task, true)

	byActivity, _ := tracker.WeekProgress()
	if byActivity[model.ActivityStudy] != 2 {
		t.Fatalf("progress = %v, want 2", byActivity[model.ActivityStudy])
	}

	// Repeated calls inside the same week change nothing.
	tracker.EnsureCurrentWeek()
	tracker.EnsureCurrentWeek()
	byActivity, _ = tracker.WeekProgress()
	if byActivity[model.ActivityStudy] != 2 {
		t.Fatalf("progress cleared within week: %v", byActivity[model.ActivityStudy])
	}

	// Crossing the week boundary clears both maps exactly once.
	clock.now = clock.now.AddDate(0, 0, 7)
	tracker.EnsureCurrentWeek()
	byActivity, custom := tracker.WeekProgress()
	if len(byActivity) != 0 || len(custom) != 0 {
		t.Fatalf("progress survived rollover: %v %v", byActivity, custom)
	}
	snap := tracker.Snapshot()
	if snap.LastWeekStart == nil || !snap.LastWeekStart.Equal(timeutil.WeekStart(clock.now)) {
		t.Fatalf("watermark not advanced: %v", snap.LastWeekStart)
	}
}

func TestNewTrackerSanitizesState(t *testing.T) {
	tracker := NewTracker(nil, State{XP: -5, Streak: -2})
	if tracker.XP() != 0 || tracker.Streak() != 0 {
		t.Fatalf("negative persisted counters survived: xp=%d streak=%d", tracker.XP(), tracker.Streak())
	}
}
