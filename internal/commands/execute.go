package commands

import "fmt"

type Result struct {
	Message string
}

type Handlers struct {
	Add      func(AddArgs) (Result, error)
	Toggle   func(ToggleArgs) (Result, error)
	Regen    func(RegenArgs) (Result, error)
	EndDay   func() (Result, error)
	Goal     func(GoalArgs) (Result, error)
	Template func(TemplateArgs) (Result, error)
	Show     func(ShowArgs) (Result, error)
}

func Execute(cmd Command, handlers Handlers) (Result, error) {
	switch cmd.Type {
	case TypeAdd:
		if handlers.Add == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "add handler not configured"}
		}
		return handlers.Add(*cmd.Add)
	case TypeDone, TypeUndone:
		if handlers.Toggle == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "toggle handler not configured"}
		}
		return handlers.Toggle(*cmd.Toggle)
	case TypeRegen:
		if handlers.Regen == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "regen handler not configured"}
		}
		return handlers.Regen(*cmd.Regen)
	case TypeEndDay:
		if handlers.EndDay == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "endday handler not configured"}
		}
		return handlers.EndDay()
	case TypeGoal:
		if handlers.Goal == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "goal handler not configured"}
		}
		return handlers.Goal(*cmd.Goal)
	case TypeTemplate:
		if handlers.Template == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "template handler not configured"}
		}
		return handlers.Template(*cmd.Template)
	case TypeShow:
		if handlers.Show == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "show handler not configured"}
		}
		return handlers.Show(*cmd.Show)
	default:
		return Result{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unknown command type: %s", cmd.Type)}
	}
}
