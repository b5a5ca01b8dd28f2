package core

import (
	"fmt"
	"strings"
)

// Action is an input intent, independent of the key or button that caused it.
type Action int

const (
	ActionNone    Action = iota
	ActionJump           // Flap
	ActionRestart        // Start over after a game over
	ActionConfirm        // Menu selection
	ActionBack           // Leave the game for the menu
	ActionQuit           // End the session

	numActions
)

var actionNames = [numActions]string{
	ActionNone:    "none",
	ActionJump:    "jump",
	ActionRestart: "restart",
	ActionConfirm: "confirm",
	ActionBack:    "back",
	ActionQuit:    "quit",
}

func (a Action) valid() bool {
	return a >= 0 && a < numActions
}

// String returns the lowercase name of the action.
func (a Action) String() string {
	if !a.valid() {
		return "unknown"
	}
	return actionNames[a]
}

// ParseAction is the inverse of Action.String.
func ParseAction(name string) (Action, bool) {
	for a, n := range actionNames {
		if n == name {
			return Action(a), true
		}
	}
	return ActionNone, false
}

// MarshalText encodes the action by name, so recordings stay readable.
func (a Action) MarshalText() ([]byte, error) {
	if !a.valid() {
		return nil, fmt.Errorf("core: unknown action %d", int(a))
	}
	return []byte(actionNames[a]), nil
}

// UnmarshalText decodes an action name written by MarshalText.
func (a *Action) UnmarshalText(text []byte) error {
	parsed, ok := ParseAction(string(text))
	if !ok {
		return fmt.Errorf("core: unknown action %q", text)
	}
	*a = parsed
	return nil
}

// InputFrame is the set of actions delivered to one simulation tick. Pressing
// the same key twice within a tick counts once. The zero value is empty and
// frames are plain values, so copying one snapshots it.
type InputFrame struct {
	bits uint16
}

// NewInputFrame returns an empty frame.
func NewInputFrame() InputFrame {
	return InputFrame{}
}

// Set adds an action. ActionNone and unknown actions are ignored.
func (f *InputFrame) Set(a Action) {
	if a.valid() && a != ActionNone {
		f.bits |= 1 << a
	}
}

// Has reports whether the frame contains a.
func (f InputFrame) Has(a Action) bool {
	return a.valid() && f.bits&(1<<a) != 0
}

// Empty reports whether the frame has no actions.
func (f InputFrame) Empty() bool {
	return f.bits == 0
}

// Clear removes every action.
func (f *InputFrame) Clear() {
	f.bits = 0
}

// Actions lists the frame's actions in declaration order.
func (f InputFrame) Actions() []Action {
	var out []Action
	for a := ActionNone + 1; a < numActions; a++ {
		if f.Has(a) {
			out = append(out, a)
		}
	}
	return out
}

// String joins the action names with "+", or returns "none".
func (f InputFrame) String() string {
	actions := f.Actions()
	if len(actions) == 0 {
		return ActionNone.String()
	}
	names := make([]string, len(actions))
	for i, a := range actions {
		names[i] = a.String()
	}
	return strings.Join(names, "+")
}
