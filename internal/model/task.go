package model

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
)

var (
	ErrInvalidTaskSpan = errors.New("model: task end must be after start")
	ErrInvalidActivity = errors.New("model: invalid activity")
)

// Task is one time-blocked entry in a day's plan. Activity is nil for fixed
// commitments, routine blocks, and custom-preference blocks.
type Task struct {
	ID          string
	Title       string
	Start       time.Time
	End         time.Time
	Activity    *Activity
	IsCompleted bool
}

func (t Task) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return errors.New("model: task id is required")
	}
	if strings.TrimSpace(t.Title) == "" {
		return errors.New("model: task title is required")
	}
	if !t.End.After(t.Start) {
		return fmt.Errorf("%w: start=%s end=%s", ErrInvalidTaskSpan, t.Start.Format(time.RFC3339), t.End.Format(time.RFC3339))
	}
	if t.Activity != nil && !t.Activity.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidActivity, *t.Activity)
	}
	return nil
}

// Duration returns the task's span length.
func (t Task) Duration() time.Duration {
	return t.End.Sub(t.Start)
}

// SortTasks orders tasks ascending by start instant. The sort is stable so
// that, when starts tie, earlier-emitted tasks (fixed commitments) stay ahead
// of auto-filled ones.
func SortTasks(tasks []Task) {
	sort.SliceStable(tasks, func(i, j int) bool {
		return tasks[i].Start.Before(tasks[j].Start)
	})
}
