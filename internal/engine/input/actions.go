package input

import "github.com/veandco/go-sdl2/sdl"

// Action is what a key does in the viewer.
type Action int

const (
	ActionNone Action = iota
	ActionForward
	ActionBackward
	ActionLeft
	ActionRight
	ActionUp
	ActionDown
	ActionReset
	ActionScreenshot
	ActionQuit
)

var actionNames = [...]string{
	ActionNone:       "none",
	ActionForward:    "forward",
	ActionBackward:   "backward",
	ActionLeft:       "left",
	ActionRight:      "right",
	ActionUp:         "up",
	ActionDown:       "down",
	ActionReset:      "reset",
	ActionScreenshot: "screenshot",
	ActionQuit:       "quit",
}

func (a Action) String() string {
	if a < 0 || int(a) >= len(actionNames) {
		return "unknown"
	}
	return actionNames[a]
}

// held reports whether the action is a direction that stays active while
// its key is down.
func (a Action) held() bool {
	return a >= ActionForward && a <= ActionDown
}

var keyActions = map[sdl.Scancode]Action{
	sdl.SCANCODE_W:      ActionForward,
	sdl.SCANCODE_UP:     ActionForward,
	sdl.SCANCODE_S:      ActionBackward,
	sdl.SCANCODE_DOWN:   ActionBackward,
	sdl.SCANCODE_A:      ActionLeft,
	sdl.SCANCODE_D:      ActionRight,
	sdl.SCANCODE_R:      ActionUp,
	sdl.SCANCODE_F:      ActionDown,
	sdl.SCANCODE_SPACE:  ActionReset,
	sdl.SCANCODE_F12:    ActionScreenshot,
	sdl.SCANCODE_ESCAPE: ActionQuit,
}

// ActionForKey maps a scancode to its viewer action.
func ActionForKey(sc sdl.Scancode) Action {
	return keyActions[sc]
}
