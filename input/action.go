package input

import (
	"fmt"
	"strings"

	"github.com/lixenwraith/term-snake/core"
)

// Action is the semantic meaning of a key press
type Action uint8

const (
	ActionNone Action = iota
	ActionUp
	ActionDown
	ActionLeft
	ActionRight
	ActionQuit
)

var actionNames = map[string]Action{
	"none":  ActionNone,
	"up":    ActionUp,
	"down":  ActionDown,
	"left":  ActionLeft,
	"right": ActionRight,
	"quit":  ActionQuit,
}

// ParseAction resolves a case-insensitive action name
func ParseAction(s string) (Action, error) {
	a, ok := actionNames[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return ActionNone, fmt.Errorf("unknown action %q", s)
	}
	return a, nil
}

func (a Action) String() string {
	for name, v := range actionNames {
		if v == a {
			return name
		}
	}
	return fmt.Sprintf("Action(%d)", uint8(a))
}

// Direction returns the heading requested by a movement action
func (a Action) Direction() (core.Direction, bool) {
	switch a {
	case ActionUp:
		return core.DirUp, true
	case ActionDown:
		return core.DirDown, true
	case ActionLeft:
		return core.DirLeft, true
	case ActionRight:
		return core.DirRight, true
	}
	return 0, false
}

// Key is one resolved key press
type Key struct {
	Action Action
	Name   string // terminal key name or the typed rune, for logging
}
