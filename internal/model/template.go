package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrInvalidTemplateDuration = errors.New("model: template duration must be positive")

// TaskTemplate is a reusable preset for quickly adding a block to a day.
type TaskTemplate struct {
	ID              string
	Title           string
	DefaultDuration time.Duration
	Activity        *Activity
}

func (t TaskTemplate) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return errors.New("model: template id is required")
	}
	if strings.TrimSpace(t.Title) == "" {
		return errors.New("model: template title is required")
	}
	if t.DefaultDuration <= 0 {
		return fmt.Errorf("%w: %s", ErrInvalidTemplateDuration, t.DefaultDuration)
	}
	if t.Activity != nil && !t.Activity.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidActivity, *t.Activity)
	}
	return nil
}
