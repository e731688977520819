// Package views renders display-ready data structs into terminal output. It
// knows nothing about the tea model; the update layer prepares plain data and
// the functions here only style and arrange it.
package views

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

// AppData is the full frame: a header, one body panel, and the status and
// footer chrome below it.
type AppData struct {
	Header        string
	Body          string
	StatusLine    string
	StatusIsError bool
	Footer        string
	Notification  string
}

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	okStatusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	badStatus     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("1"))
	frameStyle    = lipgloss.NewStyle().Border(lipgloss.NormalBorder()).Padding(0, 2)
	hintStyle     = lipgloss.NewStyle().Faint(true)
	toastStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1).Foreground(lipgloss.Color("3"))
	struckStyle   = lipgloss.NewStyle().Faint(true).Strikethrough(true)
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("5"))
)

const frameWidth = 80

func RenderApp(data AppData) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(data.Header))
	b.WriteByte('\n')
	b.WriteString(frameStyle.Width(frameWidth).Render(data.Body))
	b.WriteByte('\n')
	if data.StatusIsError {
		b.WriteString(badStatus.Render(data.StatusLine))
	} else {
		b.WriteString(okStatusStyle.Render(data.StatusLine))
	}
	if data.Notification != "" {
		b.WriteByte('\n')
		b.WriteString(toastStyle.Render(data.Notification))
	}
	if data.Footer != "" {
		b.WriteByte('\n')
		b.WriteString(hintStyle.Render(data.Footer))
	}
	return b.String()
}

func RenderMarkdown(md string) string {
	if strings.TrimSpace(md) == "" {
		return ""
	}
	out, err := glamour.Render(md, "dark")
	if err != nil {
		return md
	}
	return strings.TrimSpace(out)
}
