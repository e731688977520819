package update

import (
	"fmt"
	"strconv"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/weekplan/internal/commands"
	"github.com/sandeepkv93/weekplan/internal/timeutil"
)

func (m Model) handlePaletteKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.Palette.Open = false
		m.Palette.Input.Blur()
		return m, nil
	case "enter":
		input := m.Palette.Input.Value()
		m.Palette.Open = false
		m.Palette.Input.Blur()
		return m.runCommand(input)
	default:
		var cmd tea.Cmd
		m.Palette.Input, cmd = m.Palette.Input.Update(msg)
		return m, cmd
	}
}

func (m Model) runCommand(input string) (tea.Model, tea.Cmd) {
	cmd, err := commands.Parse(input)
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m, nil
	}
	result, err := commands.Execute(cmd, m.commandHandlers())
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		m.LastError = err
		return m, nil
	}
	m.refreshWeekTable()
	m.saving = true
	m.Status = StatusBar{Text: result.Message}
	return m, nil
}

// commandHandlers binds the palette grammar to planner operations. Handlers
// run against the focused day unless the command names another one.
func (m *Model) commandHandlers() commands.Handlers {
	return commands.Handlers{
		Add: func(args commands.AddArgs) (commands.Result, error) {
			day := args.Day
			if day < 0 {
				day = m.FocusedDay
			}
			date := m.Planner.DayDate(day)
			start, err := clockOnDate(args.Start, date)
			if err != nil {
				return commands.Result{}, err
			}
			end, err := clockOnDate(args.End, date)
			if err != nil {
				return commands.Result{}, err
			}
			task, err := m.Planner.AddManualTask(day, args.Title, start, end, nil)
			if err != nil {
				return commands.Result{}, err
			}
			return commands.Result{Message: fmt.Sprintf("added %q %s-%s", task.Title, task.Start.Format("15:04"), task.End.Format("15:04"))}, nil
		},
		Toggle: func(args commands.ToggleArgs) (commands.Result, error) {
			tasks := m.Planner.DayTasks(m.FocusedDay)
			idx, err := parseListIndex(args.Target, len(tasks))
			if err != nil {
				return commands.Result{}, err
			}
			m.Planner.ToggleCompletion(m.FocusedDay, tasks[idx].ID, args.Completed)
			verb := "done"
			if !args.Completed {
				verb = "not done"
			}
			return commands.Result{Message: fmt.Sprintf("%q marked %s", tasks[idx].Title, verb)}, nil
		},
		Regen: func(args commands.RegenArgs) (commands.Result, error) {
			day := args.Day
			if day < 0 {
				day = m.FocusedDay
			}
			m.Planner.RegenerateDay(day, args.Energy, nil, nil)
			return commands.Result{Message: fmt.Sprintf("regenerated %s", m.dayLabel(day))}, nil
		},
		EndDay: func() (commands.Result, error) {
			completed, total := m.Planner.EndDay(m.FocusedDay)
			return commands.Result{Message: fmt.Sprintf("day closed: %d/%d done, streak %d", completed, total, m.Planner.Tracker().Streak())}, nil
		},
		Goal: func(args commands.GoalArgs) (commands.Result, error) {
			if a, ok := matchActivityBucket(args.Bucket); ok {
				m.Planner.SetActivityGoal(a, args.Hours)
			} else {
				m.Planner.SetCustomGoal(args.Bucket, args.Hours)
			}
			return commands.Result{Message: fmt.Sprintf("goal for %q set to %.1fh/week", args.Bucket, args.Hours)}, nil
		},
		Template: func(args commands.TemplateArgs) (commands.Result, error) {
			return m.runTemplateCommand(args)
		},
		Show: func(args commands.ShowArgs) (commands.Result, error) {
			switch args.Subject {
			case "week":
				m.CurrentView = ViewWeek
			case "day":
				m.CurrentView = ViewDay
			case "progress":
				m.CurrentView = ViewProgress
			case "templates":
				m.CurrentView = ViewTemplates
			default:
				return commands.Result{}, &commands.CommandError{
					Code:    commands.ErrCodeInvalidArgument,
					Message: fmt.Sprintf("unknown subject: %s", args.Subject),
				}
			}
			return commands.Result{Message: fmt.Sprintf("showing %s", args.Subject)}, nil
		},
	}
}

func (m *Model) runTemplateCommand(args commands.TemplateArgs) (commands.Result, error) {
	switch args.Action {
	case "add":
		tpl, err := m.Planner.AddTemplate(args.Title, time.Duration(args.Minutes)*time.Minute, nil)
		if err != nil {
			return commands.Result{}, err
		}
		return commands.Result{Message: fmt.Sprintf("template %q saved (%d min)", tpl.Title, args.Minutes)}, nil
	case "apply":
		templates := m.Planner.Settings().Templates
		idx, err := parseListIndex(args.Target, len(templates))
		if err != nil {
			return commands.Result{}, err
		}
		start, err := clockOnDate(args.Start, m.Planner.DayDate(m.FocusedDay))
		if err != nil {
			return commands.Result{}, err
		}
		task, err := m.Planner.ApplyTemplate(m.FocusedDay, templates[idx].ID, start)
		if err != nil {
			return commands.Result{}, err
		}
		return commands.Result{Message: fmt.Sprintf("added %q at %s", task.Title, task.Start.Format("15:04"))}, nil
	case "del":
		templates := m.Planner.Settings().Templates
		idx, err := parseListIndex(args.Target, len(templates))
		if err != nil {
			return commands.Result{}, err
		}
		m.Planner.DeleteTemplate(templates[idx].ID)
		return commands.Result{Message: fmt.Sprintf("template %q removed", templates[idx].Title)}, nil
	default:
		return commands.Result{}, &commands.CommandError{
			Code:    commands.ErrCodeInvalidArgument,
			Message: fmt.Sprintf("unknown template action: %s", args.Action),
		}
	}
}

func clockOnDate(clock string, date time.Time) (time.Time, error) {
	parsed, err := time.Parse("15:04", clock)
	if err != nil {
		return time.Time{}, &commands.CommandError{
			Code:    commands.ErrCodeInvalidArgument,
			Message: fmt.Sprintf("bad time %q, expected HH:MM", clock),
		}
	}
	return timeutil.OnDate(parsed, date), nil
}

func parseListIndex(target string, length int) (int, error) {
	n, err := strconv.Atoi(target)
	if err != nil || n < 1 || n > length {
		return 0, &commands.CommandError{
			Code:    commands.ErrCodeInvalidArgument,
			Message: fmt.Sprintf("no entry %q", target),
		}
	}
	return n - 1, nil
}
