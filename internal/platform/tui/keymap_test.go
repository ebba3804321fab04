package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/neon-runner/internal/core"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestMapKey(t *testing.T) {
	km := NewKeyMapper()
	tests := []struct {
		name   string
		msg    tea.KeyMsg
		action core.Action
		quit   bool
	}{
		{"a steers left", runeKey('a'), core.ActionLeft, false},
		{"arrow steers left", tea.KeyMsg{Type: tea.KeyLeft}, core.ActionLeft, false},
		{"d steers right", runeKey('d'), core.ActionRight, false},
		{"l steers right", runeKey('l'), core.ActionRight, false},
		{"enter confirms", tea.KeyMsg{Type: tea.KeyEnter}, core.ActionConfirm, false},
		{"esc goes back", tea.KeyMsg{Type: tea.KeyEsc}, core.ActionBack, false},
		{"p pauses", runeKey('p'), core.ActionPause, false},
		{"o opens settings", runeKey('o'), core.ActionSettings, false},
		{"r restarts", runeKey('r'), core.ActionRestart, false},
		{"q quits", runeKey('q'), core.ActionQuit, true},
		{"ctrl+c quits", tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit, true},
		{"unbound", runeKey('z'), core.ActionNone, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			action, quit := km.MapKey(tc.msg)
			if action != tc.action || quit != tc.quit {
				t.Errorf("MapKey(%q) = %v, %v; expected %v, %v", tc.msg.String(), action, quit, tc.action, tc.quit)
			}
		})
	}
}

func TestMapMouse(t *testing.T) {
	km := NewKeyMapper()
	frame := core.NewInputFrame()

	press := tea.MouseMsg{X: 12, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress}
	if !km.MapMouse(press, &frame) {
		t.Fatal("left press should set the pointer")
	}
	if p := frame.Pointer; p.X != 12 || !p.Engaged || !p.Set {
		t.Errorf("after press: %+v", p)
	}

	frame.Clear()
	drag := tea.MouseMsg{X: 20, Button: tea.MouseButtonLeft, Action: tea.MouseActionMotion}
	km.MapMouse(drag, &frame)
	if p := frame.Pointer; p.X != 20 || !p.Engaged {
		t.Errorf("after drag: %+v", p)
	}

	release := tea.MouseMsg{X: 21, Button: tea.MouseButtonNone, Action: tea.MouseActionRelease}
	if !km.MapMouse(release, &frame) {
		t.Fatal("release should update the pointer")
	}
	if frame.Pointer.Engaged {
		t.Error("release should disengage the pointer")
	}

	wheel := tea.MouseMsg{X: 5, Button: tea.MouseButtonWheelUp, Action: tea.MouseActionPress}
	if km.MapMouse(wheel, &frame) {
		t.Error("wheel events should be ignored")
	}
}

func TestMapKeyToMenuAction(t *testing.T) {
	km := NewKeyMapper()
	tests := map[string]struct {
		msg  tea.KeyMsg
		want MenuAction
	}{
		"up":     {runeKey('k'), MenuActionUp},
		"down":   {tea.KeyMsg{Type: tea.KeyDown}, MenuActionDown},
		"left":   {runeKey('h'), MenuActionLeft},
		"right":  {tea.KeyMsg{Type: tea.KeyRight}, MenuActionRight},
		"select": {tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, MenuActionSelect},
		"scores": {tea.KeyMsg{Type: tea.KeyTab}, MenuActionScoreboard},
		"back":   {runeKey('b'), MenuActionBack},
		"quit":   {runeKey('q'), MenuActionQuit},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			if got := km.MapKeyToMenuAction(tc.msg); got != tc.want {
				t.Errorf("MapKeyToMenuAction(%q) = %v, expected %v", tc.msg.String(), got, tc.want)
			}
		})
	}
}
