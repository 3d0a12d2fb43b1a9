package gui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/qnkhuat/blockfall/pkg/event"
)

type Keybinding struct {
	k tcell.Key
	r rune
	m tcell.ModMask

	a event.GameAction
}

var keybindings = []*Keybinding{
	{k: tcell.KeyLeft, a: event.ActionMoveLeft},
	{k: tcell.KeyRight, a: event.ActionMoveRight},
	{k: tcell.KeyDown, a: event.ActionSoftDrop},
	{k: tcell.KeyUp, a: event.ActionRotateCW},
	{r: 'z', a: event.ActionRotateCCW},
	{r: 'Z', a: event.ActionRotateCCW},
	{r: ' ', a: event.ActionHardDrop},
	{r: 'p', a: event.ActionTogglePause},
	{r: 'P', a: event.ActionTogglePause},
}

var quitBindings = []*Keybinding{
	{k: tcell.KeyEscape},
	{k: tcell.KeyCtrlC},
	{r: 'q'},
	{r: 'Q'},
}

func (b *Keybinding) matches(ev *tcell.EventKey) bool {
	if b.k != 0 && b.k != ev.Key() {
		return false
	} else if b.r != 0 && (ev.Key() != tcell.KeyRune || b.r != ev.Rune()) {
		return false
	} else if b.m != 0 && b.m != ev.Modifiers() {
		return false
	}

	return true
}

// ActionFor maps a key press to a game command. Unbound keys map to
// ActionUnknown.
func ActionFor(ev *tcell.EventKey) event.GameAction {
	for _, bind := range keybindings {
		if bind.matches(ev) {
			return bind.a
		}
	}

	return event.ActionUnknown
}

func IsQuit(ev *tcell.EventKey) bool {
	for _, bind := range quitBindings {
		if bind.matches(ev) {
			return true
		}
	}

	return false
}
