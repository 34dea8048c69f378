package tui

import (
	"context"
	"errors"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/bassamadnan/vimail/mail"
)

// newTestScreen returns an initialized w x h simulation screen.
func newTestScreen(t *testing.T, w, h int) tcell.SimulationScreen {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	if err := s.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	s.SetSize(w, h)
	t.Cleanup(s.Fini)
	return s
}

// openTestTerminal opens a Terminal backed by a w x h simulation screen.
func openTestTerminal(t *testing.T, w, h int) (*Terminal, tcell.SimulationScreen) {
	t.Helper()
	sim := tcell.NewSimulationScreen("UTF-8")
	orig := newScreen
	newScreen = func() (tcell.Screen, error) { return sim, nil }
	t.Cleanup(func() { newScreen = orig })

	term, err := OpenTerminal()
	if err != nil {
		t.Fatalf("OpenTerminal() error = %v", err)
	}
	sim.SetSize(w, h)
	t.Cleanup(term.Release)
	return term, sim
}

// readRow returns n cells of screen row y starting at column x.
func readRow(s tcell.Screen, x, y, n int) string {
	r := make([]rune, 0, n)
	for i := 0; i < n; i++ {
		ch, _, _, _ := s.GetContent(x+i, y)
		if ch == 0 {
			ch = ' '
		}
		r = append(r, ch)
	}
	return string(r)
}

func cellStyle(s tcell.Screen, x, y int) tcell.Style {
	_, _, style, _ := s.GetContent(x, y)
	return style
}

func injectRunes(s tcell.SimulationScreen, keys string) {
	for _, r := range keys {
		s.InjectKey(tcell.KeyRune, r, tcell.ModNone)
	}
}

var errFetch = errors.New("connection reset")

// fakeSource serves canned folders and messages.
type fakeSource struct {
	folders  []string
	messages map[string][]mail.Message
	listErr  error
	fetchErr map[string]error

	fetched []string
	listed  int
}

func (f *fakeSource) ListFolders(ctx context.Context) ([]string, error) {
	f.listed++
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.folders, nil
}

func (f *fakeSource) Fetch(ctx context.Context, folder string) ([]mail.Message, error) {
	f.fetched = append(f.fetched, folder)
	if err := f.fetchErr[folder]; err != nil {
		return nil, err
	}
	return f.messages[folder], nil
}

func subjects(subjects ...string) []mail.Message {
	msgs := make([]mail.Message, len(subjects))
	for i, s := range subjects {
		msgs[i] = mail.Message{
			Subject: s,
			From:    "from-" + s,
			To:      "to-" + s,
			Body:    "body of " + s,
		}
	}
	return msgs
}
