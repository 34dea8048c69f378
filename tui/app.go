package tui

import (
	"context"
	"log/slog"

	"github.com/gdamore/tcell/v2"

	"github.com/bassamadnan/vimail/mail"
)

// Options configures a Dashboard.
type Options struct {
	// Folder is bound when the dashboard starts.
	Folder string

	// PickerQuitExits makes the quit key inside the folder picker end the
	// whole session instead of only closing the picker.
	PickerQuitExits bool

	Logger *slog.Logger
}

// Dashboard is the root of the UI. It owns the panes, the bound folder's
// records, the folder list and the selection.
type Dashboard struct {
	term   *Terminal
	source mail.Source
	opts   Options
	logger *slog.Logger
	keys   *KeyMap

	listPane *Pane
	list     *ListView
	detail   *DetailView

	folder  string
	folders []string
	records *Records
	cur     cursor
}

// NewDashboard lays the panes out on term. The terminal stays owned by the
// caller; Run releases it when the session ends.
func NewDashboard(term *Terminal, src mail.Source, opts Options) *Dashboard {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	screen := term.Screen()
	layout := NewLayout(term.Size())

	listPane := NewPane(screen, layout.List, opts.Folder)
	d := &Dashboard{
		term:     term,
		source:   src,
		opts:     opts,
		logger:   logger,
		keys:     DefaultKeyMap(),
		listPane: listPane,
		list:     NewListView(listPane),
		detail: NewDetailView(
			NewPane(screen, layout.LeftHeader, "From"),
			NewPane(screen, layout.RightHeader, "To"),
			NewPane(screen, layout.Header, "Subject"),
			NewPane(screen, layout.Content, "Content"),
		),
		records: &Records{},
	}
	logger.Debug("created app windows", "list", layout.List, "content", layout.Content)
	return d
}

// Run binds the initial folder and processes key presses until quit.
// The terminal is released on every way out, including panics. A
// cancelled ctx ends the session and is reported as the returned error.
func (d *Dashboard) Run(ctx context.Context) error {
	defer d.term.Release()

	stop := context.AfterFunc(ctx, func() {
		_ = d.term.Screen().PostEvent(tcell.NewEventInterrupt(ctx.Err()))
	})
	defer stop()

	d.logger.Info("running application", "folder", d.opts.Folder)
	d.loadFolders(ctx)
	d.bind(ctx, d.opts.Folder)

	for {
		d.render()
		if !d.handle(ctx, d.nextAction()) {
			break
		}
	}

	d.logger.Info("quitting app")
	return ctx.Err()
}

// handle dispatches one action and reports whether the loop continues.
func (d *Dashboard) handle(ctx context.Context, a action) bool {
	switch a {
	case actUp:
		d.cur.up()
	case actDown:
		d.cur.down()
	case actQuit:
		return false
	case actFolders:
		return d.pickFolder(ctx)
	}
	return true
}

// pickFolder runs the folder picker over the list pane and rebinds the
// records when a folder is chosen.
func (d *Dashboard) pickFolder(ctx context.Context) bool {
	if d.folders == nil {
		d.loadFolders(ctx)
	}

	picker := NewFolderPicker(d.listPane, d.folders)
	name, ok := picker.Run(d.nextAction)

	if !ok {
		if d.opts.PickerQuitExits || ctx.Err() != nil {
			return false
		}
		d.listPane.SetTitle(d.folder)
		return true
	}
	d.bind(ctx, name)
	return true
}

// bind makes folder the active collection. A failed fetch leaves the
// dashboard running with no records.
func (d *Dashboard) bind(ctx context.Context, folder string) {
	msgs, err := d.source.Fetch(ctx, folder)
	if err != nil {
		d.logger.Warn("fetching folder failed", "folder", folder, "error", err)
		msgs = nil
	}
	d.folder = folder
	d.records = NewRecords(msgs)
	_, h := d.listPane.Interior()
	d.cur = newCursor(d.records.Len(), h)
	d.listPane.SetTitle(folder)
	d.logger.Info("fetched messages", "folder", folder, "count", d.records.Len())
}

func (d *Dashboard) loadFolders(ctx context.Context) {
	folders, err := d.source.ListFolders(ctx)
	if err != nil {
		d.logger.Warn("listing folders failed", "error", err)
		return
	}
	d.folders = folders
	d.logger.Debug("listed folders", "count", len(folders))
}

func (d *Dashboard) render() {
	d.list.Render(d.records, d.cur.pos)
	if d.cur.empty() {
		d.detail.Render(nil)
		return
	}
	d.detail.Render(d.records.At(d.cur.pos))
}

// nextAction blocks for the next key press. Resizes only resync the
// screen; the layout is fixed for the session.
func (d *Dashboard) nextAction() action {
	screen := d.term.Screen()
	for {
		switch ev := screen.PollEvent().(type) {
		case nil:
			return actQuit
		case *tcell.EventInterrupt:
			return actQuit
		case *tcell.EventResize:
			screen.Sync()
		case *tcell.EventKey:
			return d.keys.resolve(ev)
		}
	}
}

// Folder returns the bound folder name.
func (d *Dashboard) Folder() string { return d.folder }

// Current returns the selected record index.
func (d *Dashboard) Current() int { return d.cur.pos }

// Records returns the bound folder's records.
func (d *Dashboard) Records() *Records { return d.records }
