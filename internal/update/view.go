package update

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/progress"

	"github.com/sandeepkv93/weekplan/internal/model"
	"github.com/sandeepkv93/weekplan/internal/views"
)

const helpMarkdown = `
## Keys

| Key | Action |
| --- | ------ |
| 1-4 | switch view (week, day, progress, templates) |
| h/l | previous / next day |
| j/k | move cursor |
| space | toggle completion |
| x | delete task |
| g / G | regenerate day / week |
| e | end day (streak update) |
| / | command palette |
| q | quit |

## Commands

` + "`add [day:N] HH:MM-HH:MM title`, `done N`, `undone N`, `regen [day:N] [energy:1-3]`, `endday`, `goal <bucket> <hours>`, `template add|apply|del`, `show week|day|progress|templates`"

func (m Model) View() string {
	if m.Quitting {
		return "bye\n"
	}
	if m.Onboarding.Active {
		return views.RenderApp(views.AppData{
			Header: "weekplan",
			Body:   views.RenderOnboardingPanel(views.OnboardingPanelData{InputView: m.Onboarding.Input.View()}),
		})
	}

	body := ""
	switch m.CurrentView {
	case ViewWeek:
		body = views.RenderWeekPanel(views.WeekPanelData{
			WeekOf:    m.Planner.WeekStart().Format("Jan 2, 2006"),
			TableView: m.weekTable.View(),
		})
	case ViewDay:
		body = views.RenderDayPanel(m.dayPanelData())
	case ViewProgress:
		body = views.RenderProgressPanel(m.progressPanelData())
	case ViewTemplates:
		body = views.RenderTemplatesPanel(m.templatesPanelData())
	}

	if m.HelpVisible {
		body = views.RenderHelpPanel(views.HelpPanelData{
			CurrentView: string(m.CurrentView),
			Markdown:    views.RenderMarkdown(helpMarkdown),
		})
	}

	status := m.Status.Text
	if m.Palette.Open {
		status = "command: " + m.Palette.Input.View()
	}
	if m.saving {
		status = m.saveSpinner.View() + " saving… " + status
	}

	return views.RenderApp(views.AppData{
		Header:        m.headerLine(),
		Body:          body,
		StatusLine:    status,
		StatusIsError: m.Status.IsError,
		Footer:        "[1]week [2]day [3]progress [4]templates [?]help [q]quit",
		Notification:  m.notificationLine(),
	})
}

func (m Model) headerLine() string {
	name := m.Planner.Settings().UserName
	if name == "" {
		name = "planner"
	}
	return fmt.Sprintf("weekplan · %s · %s", name, m.dayLabel(m.FocusedDay))
}

func (m Model) notificationLine() string {
	if len(m.Notifications) == 0 {
		return ""
	}
	latest := m.Notifications[len(m.Notifications)-1]
	return fmt.Sprintf("%s %s", latest.FiredAt.Format("15:04"), latest.Body)
}

func (m Model) dayPanelData() views.DayPanelData {
	tasks := m.Planner.DayTasks(m.FocusedDay)
	rows := make([]views.DayTaskData, 0, len(tasks))
	for i, t := range tasks {
		activity := ""
		if t.Activity != nil {
			activity = string(*t.Activity)
		}
		rows = append(rows, views.DayTaskData{
			Title:     t.Title,
			Start:     t.Start.Format("15:04"),
			End:       t.End.Format("15:04"),
			Activity:  activity,
			Completed: t.IsCompleted,
			Selected:  i == m.Cursor,
		})
	}
	return views.DayPanelData{
		DayLabel: m.dayLabel(m.FocusedDay),
		Tasks:    rows,
	}
}

// progressPanelData merges goal and progress maps into display rows, one per
// bucket with a goal or any logged hours, in a stable order.
func (m Model) progressPanelData() views.ProgressPanelData {
	tracker := m.Planner.Tracker()
	byActivity, custom := tracker.WeekProgress()
	goals, customGoals := m.Planner.Goals()

	rows := make([]views.GoalRowData, 0, len(goals)+len(customGoals))
	for _, a := range model.Activities() {
		goal := goals[a]
		done := byActivity[a]
		if goal == 0 && done == 0 {
			continue
		}
		rows = append(rows, m.goalRow(a.Label(), done, goal))
	}

	customNames := make([]string, 0, len(customGoals)+len(custom))
	seen := make(map[string]bool)
	for name := range customGoals {
		customNames = append(customNames, name)
		seen[name] = true
	}
	for name := range custom {
		if !seen[name] {
			customNames = append(customNames, name)
		}
	}
	sort.Strings(customNames)
	for _, name := range customNames {
		rows = append(rows, m.goalRow(name, custom[name], customGoals[name]))
	}

	return views.ProgressPanelData{
		XP:     tracker.XP(),
		Streak: tracker.Streak(),
		Rows:   rows,
	}
}

func (m Model) goalRow(bucket string, done, goal float64) views.GoalRowData {
	bar, ok := m.goalBars[bucket]
	if !ok {
		bar = progress.New(progress.WithDefaultGradient(), progress.WithWidth(24))
		m.goalBars[bucket] = bar
	}
	ratio := 0.0
	if goal > 0 {
		ratio = done / goal
		if ratio > 1 {
			ratio = 1
		}
	}
	return views.GoalRowData{
		Bucket:   bucket,
		Progress: formatHours(done),
		Goal:     formatHours(goal),
		BarView:  bar.ViewAs(ratio),
	}
}

func (m Model) templatesPanelData() views.TemplatesPanelData {
	templates := m.Planner.Settings().Templates
	rows := make([]views.TemplateRowData, 0, len(templates))
	for i, t := range templates {
		rows = append(rows, views.TemplateRowData{
			Title:    t.Title,
			Duration: strings.TrimSuffix(t.DefaultDuration.String(), "0s"),
			Selected: i == m.templateCursor,
		})
	}
	return views.TemplatesPanelData{Templates: rows}
}
