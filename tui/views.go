package tui

// ListView renders records as a single-selection list in one pane.
type ListView struct {
	pane *Pane
}

// NewListView creates a list view drawing into pane.
func NewListView(pane *Pane) *ListView {
	return &ListView{pane: pane}
}

// Shown returns how many of total rows fit in the pane.
func (lv *ListView) Shown(total int) int {
	_, h := lv.pane.Interior()
	return shownCount(total, h)
}

// Render draws the first visible records, highlighting current. Records
// past the pane height are never drawn.
func (lv *ListView) Render(records *Records, current int) {
	w, h := lv.pane.Interior()
	lv.pane.ClearInterior(0, 0, h, w)
	for i := 0; i < lv.Shown(records.Len()); i++ {
		rec := records.At(i)
		drawRow(lv.pane, i, rec.Header, rec.LeftHeader, i == current)
	}
	lv.pane.Show()
}

// drawRow draws one list row: a bold header, then the secondary field in
// the remaining space, padded to the full width so a highlight bar is
// continuous. An empty secondary with no separator gives a single-field
// row.
func drawRow(p *Pane, row int, header, secondary string, selected bool) {
	w, _ := p.Interior()
	base, bold := rowStyles(selected)

	head, tail := header, ""
	if secondary != "" {
		head, tail = formatRow(header, secondary, w)
	} else {
		head = clip(header, w)
	}
	col := p.Print(row, 0, head, bold)
	col = p.Print(row, col, tail, base)
	p.Fill(row, col, w-col, base)
}

// DetailView renders the fields of one record into four panes.
type DetailView struct {
	leftHeader  *Pane
	rightHeader *Pane
	header      *Pane
	content     *Pane
}

// NewDetailView creates a detail view over the four field panes.
func NewDetailView(leftHeader, rightHeader, header, content *Pane) *DetailView {
	return &DetailView{
		leftHeader:  leftHeader,
		rightHeader: rightHeader,
		header:      header,
		content:     content,
	}
}

// Render paginates each field of rec into its pane. A nil record clears
// all four panes.
func (dv *DetailView) Render(rec *Record) {
	if rec == nil {
		rec = &Record{}
	}
	dv.leftHeader.WriteText(rec.LeftHeader)
	dv.rightHeader.WriteText(rec.RightHeader)
	dv.header.WriteText(rec.Header)
	dv.content.WriteText(rec.Content)
}
