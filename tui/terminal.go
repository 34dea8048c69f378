package tui

import (
	"fmt"
	"sync"

	"github.com/gdamore/tcell/v2"
)

// newScreen is swapped for a simulation screen in tests.
var newScreen = tcell.NewScreen

// Terminal owns the process-wide screen. It is acquired once by
// OpenTerminal and released once by Release, however many exit paths
// call it.
type Terminal struct {
	screen  tcell.Screen
	release sync.Once
}

// OpenTerminal switches the terminal to raw, no-echo, full-screen mode.
func OpenTerminal() (*Terminal, error) {
	screen, err := newScreen()
	if err != nil {
		return nil, fmt.Errorf("creating screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("initializing screen: %w", err)
	}
	screen.SetStyle(BaseStyle)
	screen.HideCursor()
	screen.Clear()
	return &Terminal{screen: screen}, nil
}

// Screen returns the underlying tcell screen.
func (t *Terminal) Screen() tcell.Screen { return t.screen }

// Size returns the terminal size in columns and lines.
func (t *Terminal) Size() (cols, lines int) { return t.screen.Size() }

// Release restores the terminal. Calls after the first are no-ops.
func (t *Terminal) Release() {
	t.release.Do(t.screen.Fini)
}
