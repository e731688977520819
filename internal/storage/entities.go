package storage

import (
	"time"

	"github.com/sandeepkv93/weekplan/internal/model"
)

const storedTimeLayout = time.RFC3339Nano

// Record types mirror the domain entities with JSON-stable field sets.
// Optional activity tags serialize as their stable string tag; an empty tag
// means "untyped".

type taskRecord struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Start     string `json:"start"`
	End       string `json:"end"`
	Activity  string `json:"activity,omitempty"`
	Completed bool   `json:"completed"`
}

type dayScheduleRecord struct {
	Enabled bool   `json:"enabled"`
	Start   string `json:"start"`
	End     string `json:"end"`
}

type fixedActivityRecord struct {
	ID   string               `json:"id"`
	Name string               `json:"name"`
	Days [7]dayScheduleRecord `json:"days"`
}

type templateRecord struct {
	ID              string `json:"id"`
	Title           string `json:"title"`
	DurationMinutes int    `json:"duration_minutes"`
	Activity        string `json:"activity,omitempty"`
}

func encodeTask(t model.Task) taskRecord {
	rec := taskRecord{
		ID:        t.ID,
		Title:     t.Title,
		Start:     t.Start.Format(storedTimeLayout),
		End:       t.End.Format(storedTimeLayout),
		Completed: t.IsCompleted,
	}
	if t.Activity != nil {
		rec.Activity = string(*t.Activity)
	}
	return rec
}

func decodeTask(rec taskRecord) (model.Task, error) {
	start, err := time.Parse(storedTimeLayout, rec.Start)
	if err != nil {
		return model.Task{}, err
	}
	end, err := time.Parse(storedTimeLayout, rec.End)
	if err != nil {
		return model.Task{}, err
	}
	task := model.Task{
		ID:          rec.ID,
		Title:       rec.Title,
		Start:       start,
		End:         end,
		IsCompleted: rec.Completed,
	}
	if a, ok := model.ParseActivity(rec.Activity); ok {
		task.Activity = &a
	}
	return task, nil
}

func encodeFixedActivity(f model.FixedActivity) fixedActivityRecord {
	rec := fixedActivityRecord{ID: f.ID, Name: f.Name}
	for i, d := range f.Days {
		rec.Days[i] = dayScheduleRecord{
			Enabled: d.Enabled,
			Start:   d.Start.Format(storedTimeLayout),
			End:     d.End.Format(storedTimeLayout),
		}
	}
	return rec
}

func decodeFixedActivity(rec fixedActivityRecord) (model.FixedActivity, error) {
	out := model.FixedActivity{ID: rec.ID, Name: rec.Name}
	for i, d := range rec.Days {
		start, err := time.Parse(storedTimeLayout, d.Start)
		if err != nil {
			return model.FixedActivity{}, err
		}
		end, err := time.Parse(storedTimeLayout, d.End)
		if err != nil {
			return model.FixedActivity{}, err
		}
		out.Days[i] = model.DaySchedule{Enabled: d.Enabled, Start: start, End: end}
	}
	return out, nil
}

func encodeTemplate(t model.TaskTemplate) templateRecord {
	rec := templateRecord{
		ID:              t.ID,
		Title:           t.Title,
		DurationMinutes: int(t.DefaultDuration / time.Minute),
	}
	if t.Activity != nil {
		rec.Activity = string(*t.Activity)
	}
	return rec
}

func decodeTemplate(rec templateRecord) model.TaskTemplate {
	out := model.TaskTemplate{
		ID:              rec.ID,
		Title:           rec.Title,
		DefaultDuration: time.Duration(rec.DurationMinutes) * time.Minute,
	}
	if a, ok := model.ParseActivity(rec.Activity); ok {
		out.Activity = &a
	}
	return out
}
