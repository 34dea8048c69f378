package tui

import (
	"context"
	"errors"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/google/go-cmp/cmp"

	"github.com/bassamadnan/vimail/mail"
)

// At 80x24 the list interior starts at (1, 1) and is 18 wide; the content
// interior starts at (21, 7).
const (
	listX, listY       = 1, 1
	listWidth          = 18
	contentX, contentY = 21, 7
)

func newTestDashboard(t *testing.T, src *fakeSource, opts Options) (*Dashboard, tcell.SimulationScreen) {
	t.Helper()
	term, sim := openTestTerminal(t, 80, 24)
	if opts.Folder == "" {
		opts.Folder = "INBOX"
	}
	return NewDashboard(term, src, opts), sim
}

func selectedRow(t *testing.T, s tcell.Screen, rows int) int {
	t.Helper()
	sel := -1
	for i := 0; i < rows; i++ {
		if cellStyle(s, listX, listY+i) == SelectedHeaderStyle {
			if sel != -1 {
				t.Fatalf("rows %d and %d both highlighted", sel, i)
			}
			sel = i
		}
	}
	return sel
}

func TestDashboardNavigation(t *testing.T) {
	src := &fakeSource{messages: map[string][]mail.Message{"INBOX": subjects("A", "B", "C")}}
	d, sim := newTestDashboard(t, src, Options{})
	ctx := context.Background()

	d.bind(ctx, "INBOX")
	d.render()

	steps := []struct {
		act  action
		want int
		body string
	}{
		{actNone, 0, "body of A"},
		{actDown, 1, "body of B"},
		{actDown, 2, "body of C"},
		{actDown, 2, "body of C"},
		{actUp, 1, "body of B"},
		{actUp, 0, "body of A"},
		{actUp, 0, "body of A"},
	}
	for i, step := range steps {
		if !d.handle(ctx, step.act) {
			t.Fatalf("step %d: handle(%v) ended the session", i, step.act)
		}
		d.render()
		if got := d.Current(); got != step.want {
			t.Errorf("step %d: Current() = %d, want %d", i, got, step.want)
		}
		if got := selectedRow(t, sim, 3); got != step.want {
			t.Errorf("step %d: highlighted row = %d, want %d", i, got, step.want)
		}
		if got := readRow(sim, contentX, contentY, len(step.body)); got != step.body {
			t.Errorf("step %d: content = %q, want %q", i, got, step.body)
		}
	}
}

func TestDashboardRunQuits(t *testing.T) {
	src := &fakeSource{messages: map[string][]mail.Message{"INBOX": subjects("A", "B", "C")}}
	d, sim := newTestDashboard(t, src, Options{})

	injectRunes(sim, "jjjxq")
	if err := d.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if got := d.Current(); got != 2 {
		t.Errorf("Current() = %d, want 2", got)
	}
	if diff := cmp.Diff([]string{"INBOX"}, src.fetched); diff != "" {
		t.Errorf("fetched folders mismatch (-want +got):\n%s", diff)
	}
}

func TestDashboardRunCtrlCQuits(t *testing.T) {
	src := &fakeSource{}
	d, sim := newTestDashboard(t, src, Options{})

	sim.InjectKey(tcell.KeyCtrlC, 0, tcell.ModCtrl)
	if err := d.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
}

func TestDashboardRunReleasesTerminal(t *testing.T) {
	cs := useCountingScreen(t)
	term, err := OpenTerminal()
	if err != nil {
		t.Fatalf("OpenTerminal() error = %v", err)
	}
	cs.SetSize(80, 24)
	d := NewDashboard(term, &fakeSource{}, Options{Folder: "INBOX"})

	injectRunes(cs, "q")
	if err := d.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	// The caller's deferred release is a no-op.
	term.Release()
	if cs.finis != 1 {
		t.Errorf("Fini called %d times, want 1", cs.finis)
	}
}

func TestDashboardRunCancelled(t *testing.T) {
	cs := useCountingScreen(t)
	term, err := OpenTerminal()
	if err != nil {
		t.Fatalf("OpenTerminal() error = %v", err)
	}
	cs.SetSize(80, 24)
	d := NewDashboard(term, &fakeSource{}, Options{Folder: "INBOX"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := d.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Run() error = %v, want %v", err, context.Canceled)
	}
	if cs.finis != 1 {
		t.Errorf("Fini called %d times, want 1", cs.finis)
	}
}

func TestDashboardFetchErrorShowsEmptyList(t *testing.T) {
	src := &fakeSource{
		messages: map[string][]mail.Message{"INBOX": subjects("A")},
		fetchErr: map[string]error{"INBOX": errFetch},
	}
	d, sim := newTestDashboard(t, src, Options{})
	ctx := context.Background()

	d.bind(ctx, "INBOX")
	d.render()

	if got := d.Records().Len(); got != 0 {
		t.Errorf("Records().Len() = %d, want 0", got)
	}
	if got := d.Folder(); got != "INBOX" {
		t.Errorf("Folder() = %q, want %q", got, "INBOX")
	}
	// Navigation is a no-op and nothing is highlighted or shown.
	for _, a := range []action{actDown, actUp, actDown} {
		if !d.handle(ctx, a) {
			t.Fatalf("handle(%v) ended the session", a)
		}
		d.render()
	}
	if got := d.Current(); got != 0 {
		t.Errorf("Current() = %d, want 0", got)
	}
	if got := selectedRow(t, sim, 3); got != -1 {
		t.Errorf("highlighted row = %d, want none", got)
	}
	if got := readRow(sim, listX, listY, listWidth); got != blank(listWidth) {
		t.Errorf("list row 0 = %q, want blank", got)
	}
	if got := readRow(sim, contentX, contentY, 10); got != blank(10) {
		t.Errorf("content = %q, want blank", got)
	}
}

func TestDashboardPickFolder(t *testing.T) {
	src := &fakeSource{
		folders:  []string{"INBOX", "Sent", "Archive"},
		messages: map[string][]mail.Message{
			"INBOX":   subjects("A", "B", "C"),
			"Archive": subjects("old"),
		},
	}
	d, sim := newTestDashboard(t, src, Options{})
	ctx := context.Background()
	d.bind(ctx, "INBOX")
	d.handle(ctx, actDown)

	injectRunes(sim, "jj")
	sim.InjectKey(tcell.KeyEnter, 0, tcell.ModNone)
	if !d.handle(ctx, actFolders) {
		t.Fatal("picking a folder ended the session")
	}
	d.render()

	if got := d.Folder(); got != "Archive" {
		t.Errorf("Folder() = %q, want %q", got, "Archive")
	}
	if got := d.Current(); got != 0 {
		t.Errorf("Current() = %d, want 0", got)
	}
	if got := d.Records().Len(); got != 1 {
		t.Errorf("Records().Len() = %d, want 1", got)
	}
	if got, want := readRow(sim, 0, 0, 12), "┌──Archive──"; got != want {
		t.Errorf("list border = %q, want %q", got, want)
	}
	if got, want := readRow(sim, contentX, contentY, 11), "body of old"; got != want {
		t.Errorf("content = %q, want %q", got, want)
	}
	if src.listed != 1 {
		t.Errorf("ListFolders called %d times, want 1", src.listed)
	}
}

func TestDashboardPickerQuit(t *testing.T) {
	tests := []struct {
		name      string
		quitExits bool
	}{
		{"quit exits session", true},
		{"quit closes picker", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := &fakeSource{
				folders:  []string{"INBOX", "Sent"},
				messages: map[string][]mail.Message{"INBOX": subjects("A", "B")},
			}
			d, sim := newTestDashboard(t, src, Options{PickerQuitExits: tt.quitExits})
			ctx := context.Background()
			d.bind(ctx, "INBOX")
			d.handle(ctx, actDown)

			injectRunes(sim, "jq")
			if cont := d.handle(ctx, actFolders); cont == tt.quitExits {
				t.Fatalf("handle(actFolders) continue = %v, want %v", cont, !tt.quitExits)
			}

			if got := d.Folder(); got != "INBOX" {
				t.Errorf("Folder() = %q, want %q", got, "INBOX")
			}
			if got := d.Current(); got != 1 {
				t.Errorf("Current() = %d, want 1", got)
			}
			if diff := cmp.Diff([]string{"INBOX"}, src.fetched); diff != "" {
				t.Errorf("fetched folders mismatch (-want +got):\n%s", diff)
			}
			if !tt.quitExits {
				if got := d.listPane.Title(); got != "INBOX" {
					t.Errorf("list title = %q, want %q", got, "INBOX")
				}
			}
		})
	}
}

func TestDashboardListFoldersError(t *testing.T) {
	src := &fakeSource{
		listErr:  errors.New("LIST failed"),
		messages: map[string][]mail.Message{"INBOX": subjects("A")},
	}
	d, sim := newTestDashboard(t, src, Options{})
	ctx := context.Background()
	d.bind(ctx, "INBOX")

	// The picker opens empty; enter has nothing to pick, q closes it.
	sim.InjectKey(tcell.KeyEnter, 0, tcell.ModNone)
	injectRunes(sim, "q")
	if !d.handle(ctx, actFolders) {
		t.Fatal("closing an empty picker ended the session")
	}
	if got := d.Folder(); got != "INBOX" {
		t.Errorf("Folder() = %q, want %q", got, "INBOX")
	}
}
