package views

import (
	"strings"
	"testing"
)

func TestRenderDayPanel(t *testing.T) {
	out := RenderDayPanel(DayPanelData{
		DayLabel: "Mon Mar 2",
		Tasks: []DayTaskData{
			{Title: "Morning routine", Start: "07:00", End: "07:45", Completed: true},
			{Title: "Study", Start: "07:45", End: "08:48", Activity: "study", Selected: true},
		},
	})

	for _, want := range []string{"Mon Mar 2", "[x]", "07:00-07:45", "Morning routine", "Study", "(study)"} {
		if !strings.Contains(out, want) {
			t.Errorf("day panel missing %q:\n%s", want, out)
		}
	}
}

func TestRenderDayPanelEmpty(t *testing.T) {
	out := RenderDayPanel(DayPanelData{DayLabel: "Tue Mar 3"})
	if !strings.Contains(out, "no tasks planned") {
		t.Fatalf("empty day panel:\n%s", out)
	}
}

func TestRenderProgressPanel(t *testing.T) {
	out := RenderProgressPanel(ProgressPanelData{
		XP:     120,
		Streak: 4,
		Rows: []GoalRowData{
			{Bucket: "Study", Progress: "2.5h", Goal: "8.0h", BarView: "▰▱"},
		},
	})
	for _, want := range []string{"xp 120", "streak 4", "Study", "2.5h / 8.0h"} {
		if !strings.Contains(out, want) {
			t.Errorf("progress panel missing %q:\n%s", want, out)
		}
	}
}

func TestRenderTemplatesPanelNumbersEntries(t *testing.T) {
	out := RenderTemplatesPanel(TemplatesPanelData{
		Templates: []TemplateRowData{
			{Title: "Deep work", Duration: "1h30m"},
			{Title: "Walk", Duration: "30m", Selected: true},
		},
	})
	if !strings.Contains(out, "1. Deep work (1h30m)") {
		t.Fatalf("templates panel:\n%s", out)
	}
	if !strings.Contains(out, "2. Walk (30m)") {
		t.Fatalf("templates panel:\n%s", out)
	}
}
