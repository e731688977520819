package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrInvalidDaySpan = errors.New("model: day schedule end must be after start")

// DaySchedule is one weekday's window for a fixed activity. When Enabled is
// false the start/end values are ignored entirely.
type DaySchedule struct {
	Enabled bool
	Start   time.Time
	End     time.Time
}

// FixedActivity is a recurring weekly commitment such as work or school. Days
// always holds 7 entries, index 0 = Sunday.
type FixedActivity struct {
	ID   string
	Name string
	Days [7]DaySchedule
}

func (f FixedActivity) Validate() error {
	if strings.TrimSpace(f.ID) == "" {
		return errors.New("model: fixed activity id is required")
	}
	if strings.TrimSpace(f.Name) == "" {
		return errors.New("model: fixed activity name is required")
	}
	for i, day := range f.Days {
		if !day.Enabled {
			continue
		}
		if !onSameClockDay(day.End).After(onSameClockDay(day.Start)) {
			return fmt.Errorf("%w: day %d", ErrInvalidDaySpan, i)
		}
	}
	return nil
}

// onSameClockDay normalizes a stored time-of-day onto a fixed reference day
// so that two clock values compare by wall-clock order only.
func onSameClockDay(clock time.Time) time.Time {
	return time.Date(2000, time.January, 1, clock.Hour(), clock.Minute(), 0, 0, time.UTC)
}
