package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/neon-runner/internal/core"
)

// gameKeys binds key names to in-game actions. Quit is handled separately
// so MapKey can report it.
var gameKeys = map[string]core.Action{
	"a": core.ActionLeft, "left": core.ActionLeft, "h": core.ActionLeft,
	"d": core.ActionRight, "right": core.ActionRight, "l": core.ActionRight,
	"w": core.ActionUp, "up": core.ActionUp, "k": core.ActionUp,
	"s": core.ActionDown, "down": core.ActionDown, "j": core.ActionDown,
	"enter": core.ActionConfirm, " ": core.ActionConfirm,
	"b": core.ActionBack, "esc": core.ActionBack,
	"p": core.ActionPause,
	"o": core.ActionSettings,
	"r": core.ActionRestart,
}

// KeyMapper translates Bubble Tea input into core actions.
type KeyMapper struct {
	bindings map[string]core.Action
}

// NewKeyMapper returns a mapper with the default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{bindings: gameKeys}
}

func isQuitKey(k string) bool {
	return k == "ctrl+c" || k == "q"
}

// MapKey returns the action bound to msg (ActionNone when unbound) and
// whether the key asks to quit.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (core.Action, bool) {
	k := msg.String()
	if isQuitKey(k) {
		return core.ActionQuit, true
	}
	return km.bindings[k], false
}

// MapKeyToFrame updates an input frame based on a key message.
// Returns true if the key was a quit request.
func (km *KeyMapper) MapKeyToFrame(msg tea.KeyMsg, frame *core.InputFrame) bool {
	action, isQuit := km.MapKey(msg)
	if action != core.ActionNone {
		frame.Set(action)
	}
	return isQuit
}

// MapMouse turns a left-button mouse message into a pointer update.
// Returns false for messages that do not move the drag target.
func (km *KeyMapper) MapMouse(msg tea.MouseMsg, frame *core.InputFrame) bool {
	if msg.Button != tea.MouseButtonLeft && msg.Action != tea.MouseActionRelease {
		return false
	}
	switch msg.Action {
	case tea.MouseActionPress, tea.MouseActionMotion:
		frame.SetPointer(msg.X, true)
	case tea.MouseActionRelease:
		frame.SetPointer(msg.X, false)
	default:
		return false
	}
	return true
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionLeft
	MenuActionRight
	MenuActionSelect
	MenuActionBack
	MenuActionScoreboard
	MenuActionQuit
)

// menuActions lifts the game bindings that mean something on a menu.
var menuActions = map[core.Action]MenuAction{
	core.ActionUp:      MenuActionUp,
	core.ActionDown:    MenuActionDown,
	core.ActionLeft:    MenuActionLeft,
	core.ActionRight:   MenuActionRight,
	core.ActionConfirm: MenuActionSelect,
	core.ActionBack:    MenuActionBack,
}

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	k := msg.String()
	switch {
	case isQuitKey(k):
		return MenuActionQuit
	case k == "tab":
		return MenuActionScoreboard
	}
	return menuActions[km.bindings[k]]
}
