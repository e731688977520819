package commands

import (
	"fmt"
	"strconv"
	"strings"
)

type Type string

const (
	TypeAdd      Type = "add"
	TypeDone     Type = "done"
	TypeUndone   Type = "undone"
	TypeRegen    Type = "regen"
	TypeEndDay   Type = "endday"
	TypeGoal     Type = "goal"
	TypeTemplate Type = "template"
	TypeShow     Type = "show"
)

type ErrorCode string

const (
	ErrCodeEmptyInput      ErrorCode = "empty_input"
	ErrCodeUnknownCommand  ErrorCode = "unknown_command"
	ErrCodeInvalidArgument ErrorCode = "invalid_argument"
	ErrCodeHandlerMissing  ErrorCode = "handler_missing"
)

type CommandError struct {
	Code    ErrorCode
	Message string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// AddArgs describes a manual task entry: `add [day:N] HH:MM-HH:MM title...`.
// Day defaults to -1, meaning the currently focused day.
type AddArgs struct {
	Day   int
	Start string
	End   string
	Title string
}

// ToggleArgs targets a task by its list position on the focused day.
type ToggleArgs struct {
	Target    string
	Completed bool
}

// RegenArgs describes a day regeneration: `regen [day:N] [energy:1-3]`.
type RegenArgs struct {
	Day    int
	Energy *int
}

// GoalArgs sets a weekly hour goal: `goal <bucket> <hours>`.
type GoalArgs struct {
	Bucket string
	Hours  float64
}

// TemplateArgs drives the template library:
// `template add <minutes> <title...>`, `template apply <n> HH:MM`,
// `template del <n>`.
type TemplateArgs struct {
	Action  string
	Target  string
	Minutes int
	Start   string
	Title   string
}

type ShowArgs struct {
	Subject string
}

type Command struct {
	Type     Type
	Raw      string
	Add      *AddArgs
	Toggle   *ToggleArgs
	Regen    *RegenArgs
	Goal     *GoalArgs
	Template *TemplateArgs
	Show     *ShowArgs
}

func Parse(input string) (Command, error) {
	raw := strings.TrimSpace(input)
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}
	if strings.HasPrefix(raw, "/") {
		raw = strings.TrimSpace(strings.TrimPrefix(raw, "/"))
	}
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}

	parts := strings.Fields(raw)
	head := strings.ToLower(parts[0])
	args := parts[1:]

	switch Type(head) {
	case TypeAdd:
		return parseAdd(input, args)
	case TypeDone:
		return parseToggle(input, args, true)
	case TypeUndone:
		return parseToggle(input, args, false)
	case TypeRegen:
		return parseRegen(input, args)
	case TypeEndDay:
		return Command{Type: TypeEndDay, Raw: input}, nil
	case TypeGoal:
		return parseGoal(input, args)
	case TypeTemplate:
		return parseTemplate(input, args)
	case TypeShow:
		return parseShow(input, args)
	default:
		return Command{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unsupported command: %s", head)}
	}
}

func parseAdd(raw string, args []string) (Command, error) {
	day := -1
	if len(args) > 0 && strings.HasPrefix(strings.ToLower(args[0]), "day:") {
		parsed, ok := parseDayIndex(args[0])
		if !ok {
			return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "day must be 0..6"}
		}
		day = parsed
		args = args[1:]
	}
	if len(args) < 2 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "add requires a time span and a title"}
	}
	start, end, ok := parseSpan(args[0])
	if !ok {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "time span must look like 09:00-10:30"}
	}
	title := strings.TrimSpace(strings.Join(args[1:], " "))
	return Command{Type: TypeAdd, Raw: raw, Add: &AddArgs{Day: day, Start: start, End: end, Title: title}}, nil
}

func parseToggle(raw string, args []string, completed bool) (Command, error) {
	if len(args) == 0 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "toggle requires a task number"}
	}
	t := TypeDone
	if !completed {
		t = TypeUndone
	}
	return Command{Type: t, Raw: raw, Toggle: &ToggleArgs{Target: strings.ToLower(args[0]), Completed: completed}}, nil
}

func parseRegen(raw string, args []string) (Command, error) {
	out := RegenArgs{Day: -1}
	for _, arg := range args {
		lower := strings.ToLower(arg)
		switch {
		case strings.HasPrefix(lower, "day:"):
			parsed, ok := parseDayIndex(arg)
			if !ok {
				return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "day must be 0..6"}
			}
			out.Day = parsed
		case strings.HasPrefix(lower, "energy:"):
			v, err := strconv.Atoi(strings.TrimPrefix(lower, "energy:"))
			if err != nil || v < 1 || v > 3 {
				return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "energy must be 1, 2, or 3"}
			}
			out.Energy = &v
		default:
			return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("unknown regen option: %s", arg)}
		}
	}
	return Command{Type: TypeRegen, Raw: raw, Regen: &out}, nil
}

func parseGoal(raw string, args []string) (Command, error) {
	if len(args) < 2 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "goal requires a bucket and hours"}
	}
	hours, err := strconv.ParseFloat(args[len(args)-1], 64)
	if err != nil || hours < 0 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "hours must be a non-negative number"}
	}
	bucket := strings.Join(args[:len(args)-1], " ")
	return Command{Type: TypeGoal, Raw: raw, Goal: &GoalArgs{Bucket: bucket, Hours: hours}}, nil
}

func parseTemplate(raw string, args []string) (Command, error) {
	if len(args) == 0 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "template requires an action"}
	}
	action := strings.ToLower(args[0])
	rest := args[1:]
	switch action {
	case "add":
		if len(rest) < 2 {
			return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "template add requires minutes and a title"}
		}
		minutes, err := strconv.Atoi(rest[0])
		if err != nil || minutes <= 0 {
			return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "minutes must be a positive number"}
		}
		title := strings.TrimSpace(strings.Join(rest[1:], " "))
		return Command{Type: TypeTemplate, Raw: raw, Template: &TemplateArgs{Action: action, Minutes: minutes, Title: title}}, nil
	case "apply":
		if len(rest) < 2 {
			return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "template apply requires a template number and a start time"}
		}
		return Command{Type: TypeTemplate, Raw: raw, Template: &TemplateArgs{Action: action, Target: rest[0], Start: rest[1]}}, nil
	case "del":
		if len(rest) < 1 {
			return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "template del requires a template number"}
		}
		return Command{Type: TypeTemplate, Raw: raw, Template: &TemplateArgs{Action: action, Target: rest[0]}}, nil
	default:
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("unknown template action: %s", action)}
	}
}

func parseShow(raw string, args []string) (Command, error) {
	if len(args) == 0 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "show requires a subject"}
	}
	return Command{Type: TypeShow, Raw: raw, Show: &ShowArgs{Subject: strings.ToLower(args[0])}}, nil
}

func parseDayIndex(arg string) (int, bool) {
	v, err := strconv.Atoi(strings.TrimPrefix(strings.ToLower(arg), "day:"))
	if err != nil || v < 0 || v > 6 {
		return 0, false
	}
	return v, true
}

func parseSpan(arg string) (string, string, bool) {
	parts := strings.SplitN(arg, "-", 2)
	if len(parts) != 2 {
		return "", "", false
	}
	start := strings.TrimSpace(parts[0])
	end := strings.TrimSpace(parts[1])
	if !looksLikeClock(start) || !looksLikeClock(end) {
		return "", "", false
	}
	return start, end, true
}

func looksLikeClock(s string) bool {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return false
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return false
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return false
	}
	return true
}
