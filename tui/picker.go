package tui

type pickerState int

const (
	pickerBrowsing pickerState = iota
	pickerSelected
	pickerCancelled
)

const foldersTitle = "Folders"

// FolderPicker is a modal list of folder names drawn over the list pane.
type FolderPicker struct {
	pane    *Pane
	folders []string
	cur     cursor
	state   pickerState
}

// NewFolderPicker creates a picker over folders. The pane is borrowed;
// its previous contents are overwritten while the picker is open.
func NewFolderPicker(pane *Pane, folders []string) *FolderPicker {
	return &FolderPicker{pane: pane, folders: folders}
}

// open resets the picker for a new session.
func (fp *FolderPicker) open() {
	_, h := fp.pane.Interior()
	fp.cur = newCursor(len(fp.folders), h)
	fp.state = pickerBrowsing
	fp.pane.SetTitle(foldersTitle)
}

// Render draws the visible folder names with the cursor highlighted.
func (fp *FolderPicker) Render() {
	w, h := fp.pane.Interior()
	fp.pane.ClearInterior(0, 0, h, w)
	for i := 0; i < fp.cur.shown; i++ {
		drawRow(fp.pane, i, fp.folders[i], "", i == fp.cur.pos)
	}
	fp.pane.Show()
}

// handle applies one action and returns the resulting state.
func (fp *FolderPicker) handle(a action) pickerState {
	switch a {
	case actUp:
		fp.cur.up()
	case actDown:
		fp.cur.down()
	case actQuit:
		fp.state = pickerCancelled
	case actConfirm:
		if !fp.cur.empty() {
			fp.state = pickerSelected
		}
	}
	return fp.state
}

// Selected returns the highlighted folder name.
func (fp *FolderPicker) Selected() string {
	if fp.cur.empty() {
		return ""
	}
	return fp.folders[fp.cur.pos]
}

// Run opens the picker and reads actions from next until a folder is
// chosen or the picker is cancelled.
func (fp *FolderPicker) Run(next func() action) (string, bool) {
	fp.open()
	for fp.state == pickerBrowsing {
		fp.Render()
		fp.handle(next())
	}
	if fp.state == pickerSelected {
		return fp.Selected(), true
	}
	return "", false
}
