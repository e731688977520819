package views

import (
	"fmt"
	"strings"
)

type WeekPanelData struct {
	WeekOf    string
	TableView string
}

type DayTaskData struct {
	Title     string
	Start     string
	End       string
	Activity  string
	Completed bool
	Selected  bool
}

type DayPanelData struct {
	DayLabel string
	Tasks    []DayTaskData
}

type GoalRowData struct {
	Bucket   string
	Progress string
	Goal     string
	BarView  string
}

type ProgressPanelData struct {
	XP     int
	Streak int
	Rows   []GoalRowData
}

type TemplateRowData struct {
	Title    string
	Duration string
	Selected bool
}

type TemplatesPanelData struct {
	Templates []TemplateRowData
}

type OnboardingPanelData struct {
	InputView string
}

type HelpPanelData struct {
	CurrentView string
	Markdown    string
}

func RenderWeekPanel(data WeekPanelData) string {
	var b strings.Builder
	fmt.Fprintf(&b, "week of %s\n", data.WeekOf)
	b.WriteString("actions: [h/l]day [2]day view [g]regen day [G]regen week [/]command\n")
	b.WriteString(data.TableView)
	return strings.TrimSpace(b.String())
}

func RenderDayPanel(data DayPanelData) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", data.DayLabel)
	b.WriteString("actions: [j/k]move [space]toggle [x]delete [e]end day\n")
	if len(data.Tasks) == 0 {
		b.WriteString("no tasks planned · [g] to generate, [/] to add")
		return b.String()
	}
	for _, t := range data.Tasks {
		mark := "[ ]"
		if t.Completed {
			mark = "[x]"
		}
		line := fmt.Sprintf("%s %s-%s  %s", mark, t.Start, t.End, t.Title)
		if t.Activity != "" {
			line += fmt.Sprintf("  (%s)", t.Activity)
		}
		switch {
		case t.Selected:
			line = selectedStyle.Render("> " + line)
		case t.Completed:
			line = "  " + struckStyle.Render(line)
		default:
			line = "  " + line
		}
		b.WriteString(line + "\n")
	}
	return strings.TrimSpace(b.String())
}

func RenderProgressPanel(data ProgressPanelData) string {
	var b strings.Builder
	fmt.Fprintf(&b, "xp %d · streak %d\n", data.XP, data.Streak)
	if len(data.Rows) == 0 {
		b.WriteString("no weekly goals yet · set one with /goal")
		return b.String()
	}
	for _, row := range data.Rows {
		fmt.Fprintf(&b, "%-18s %s %s / %s\n", row.Bucket, row.BarView, row.Progress, row.Goal)
	}
	return strings.TrimSpace(b.String())
}

func RenderTemplatesPanel(data TemplatesPanelData) string {
	var b strings.Builder
	b.WriteString("templates:\n")
	b.WriteString("actions: /template add <min> <title> · /template apply <n> <HH:MM> · /template del <n>\n")
	if len(data.Templates) == 0 {
		b.WriteString("no templates saved")
		return b.String()
	}
	for i, t := range data.Templates {
		line := fmt.Sprintf("%d. %s (%s)", i+1, t.Title, t.Duration)
		if t.Selected {
			line = selectedStyle.Render("> " + line)
		} else {
			line = "  " + line
		}
		b.WriteString(line + "\n")
	}
	return strings.TrimSpace(b.String())
}

func RenderOnboardingPanel(data OnboardingPanelData) string {
	var b strings.Builder
	b.WriteString("welcome to weekplan\n\n")
	b.WriteString(data.InputView + "\n\n")
	b.WriteString("press [enter] to plan your first week")
	return b.String()
}

func RenderHelpPanel(data HelpPanelData) string {
	var b strings.Builder
	fmt.Fprintf(&b, "help (%s view)\n", data.CurrentView)
	b.WriteString(data.Markdown)
	return strings.TrimSpace(b.String())
}
