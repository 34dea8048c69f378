package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/gdamore/tcell/v2"
)

// action is what a key press means to the dashboard and the picker.
type action int

const (
	actNone action = iota
	actUp
	actDown
	actQuit
	actFolders
	actConfirm
)

// KeyMap defines the fixed keybindings.
type KeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Quit    key.Binding
	Folders key.Binding
	Confirm key.Binding
}

// DefaultKeyMap returns the keybindings. They are not configurable.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Up: key.NewBinding(
			key.WithKeys("k"),
			key.WithHelp("k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j"),
			key.WithHelp("j", "down"),
		),
		// Raw mode delivers ctrl+c as a key, not a signal.
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Folders: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "folders"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open folder"),
		),
	}
}

// resolve maps a key event onto an action.
func (k *KeyMap) resolve(ev *tcell.EventKey) action {
	kp := keyPress{ev}
	switch {
	case key.Matches(kp, k.Up):
		return actUp
	case key.Matches(kp, k.Down):
		return actDown
	case key.Matches(kp, k.Quit):
		return actQuit
	case key.Matches(kp, k.Folders):
		return actFolders
	case key.Matches(kp, k.Confirm):
		return actConfirm
	}
	return actNone
}

// keyPress names a tcell key event the way bubbles bindings spell keys.
type keyPress struct {
	ev *tcell.EventKey
}

func (k keyPress) String() string {
	switch k.ev.Key() {
	case tcell.KeyRune:
		return string(k.ev.Rune())
	case tcell.KeyEnter:
		return "enter"
	case tcell.KeyEscape:
		return "esc"
	case tcell.KeyUp:
		return "up"
	case tcell.KeyDown:
		return "down"
	case tcell.KeyCtrlC:
		return "ctrl+c"
	}
	return strings.ToLower(k.ev.Name())
}
