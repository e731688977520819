package alerts

import (
	"fmt"
	"time"

	"github.com/sandeepkv93/weekplan/internal/model"
)

// Lead times before a task's start at which an alert fires.
const (
	LeadHour    = 60 * time.Minute
	LeadFifteen = 15 * time.Minute
)

// AlertID derives the stable identity for one (task, lead) pair.
func AlertID(taskID string, lead time.Duration) string {
	return fmt.Sprintf("%s|%dm", taskID, int(lead.Minutes()))
}

// Plan computes the alerts a task list needs: one 60-minute and one
// 15-minute notice per task, keeping only triggers strictly after now.
func Plan(tasks []model.Task, now time.Time) []Alert {
	out := make([]Alert, 0, len(tasks)*2)
	for _, task := range tasks {
		for _, lead := range []struct {
			offset time.Duration
			body   string
		}{
			{LeadHour, fmt.Sprintf("In 1 hour: %s", task.Title)},
			{LeadFifteen, fmt.Sprintf("Starting soon (15 mins): %s", task.Title)},
		} {
			trigger := task.Start.Add(-lead.offset)
			if !trigger.After(now) {
				continue
			}
			out = append(out, Alert{
				ID:        AlertID(task.ID, lead.offset),
				TaskID:    task.ID,
				Title:     task.Title,
				Body:      lead.body,
				TriggerAt: trigger,
			})
		}
	}
	return out
}

// Reschedule clears the engine's pending alerts and schedules the plan for
// the given tasks. Schedule errors after a clear are reported but any
// already-accepted alerts stay queued.
func Reschedule(engine *Engine, tasks []model.Task, now time.Time) error {
	engine.Clear()
	for _, a := range Plan(tasks, now) {
		if err := engine.Schedule(a); err != nil {
			return err
		}
	}
	return nil
}
