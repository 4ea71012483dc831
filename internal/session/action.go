package session

import "strings"

// Action is what the user chose to do after a fetch
type Action int

const (
	ActionInvalid Action = iota
	ActionContinue
	ActionSearch
	ActionQuit
)

func (a Action) String() string {
	switch a {
	case ActionContinue:
		return "continue"
	case ActionSearch:
		return "search"
	case ActionQuit:
		return "quit"
	default:
		return "invalid"
	}
}

// ParseAction maps free-form input to an Action, ignoring case and
// surrounding whitespace. Anything unrecognized is ActionInvalid.
func ParseAction(input string) Action {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "yes", "y", "continue", "c":
		return ActionContinue
	case "search", "s", "find":
		return ActionSearch
	case "no", "n", "quit", "q", "exit":
		return ActionQuit
	default:
		return ActionInvalid
	}
}
