package tui

import (
	"unicode"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

// TitleOffset is the column of the pane title on the top border.
const TitleOffset = 3

// Rect is the outer rectangle of a pane in screen cells.
type Rect struct {
	X, Y          int
	Width, Height int
}

// clampTo shrinks r so it fits inside a cols x lines screen.
func (r Rect) clampTo(cols, lines int) Rect {
	r.X = min(max(r.X, 0), max(cols, 0))
	r.Y = min(max(r.Y, 0), max(lines, 0))
	r.Width = min(max(r.Width, 0), cols-r.X)
	r.Height = min(max(r.Height, 0), lines-r.Y)
	return r
}

// Pane is a bordered, titled viewport onto the screen. All coordinates
// taken by its drawing methods are relative to the interior, which starts
// one cell inside the border.
type Pane struct {
	box    *tview.Box
	screen tcell.Screen
	rect   Rect
	title  string
}

// NewPane draws an empty bordered pane. Geometry that does not fit the
// terminal is clamped; a pane with no room for an interior simply draws
// nothing inside it.
func NewPane(screen tcell.Screen, r Rect, title string) *Pane {
	cols, lines := screen.Size()
	r = r.clampTo(cols, lines)
	p := &Pane{
		box: tview.NewBox().
			SetBorder(true).
			SetBackgroundColor(tcell.ColorDefault).
			SetBorderColor(tcell.ColorDefault),
		screen: screen,
		rect:   r,
		title:  title,
	}
	p.box.SetRect(r.X, r.Y, r.Width, r.Height)
	p.drawBorder()
	p.ClearInterior(0, 0, p.rect.Height, p.rect.Width)
	p.Show()
	return p
}

// Rect returns the clamped outer rectangle.
func (p *Pane) Rect() Rect { return p.rect }

// Title returns the title currently drawn on the border.
func (p *Pane) Title() string { return p.title }

// Interior returns the usable width and height inside the border.
func (p *Pane) Interior() (width, height int) {
	return max(p.rect.Width-2, 0), max(p.rect.Height-2, 0)
}

// SetTitle redraws the border with a new title. The interior is left to
// the next render.
func (p *Pane) SetTitle(title string) {
	p.title = title
	p.drawBorder()
	p.Show()
}

// drawBorder draws the frame with tview and the title at TitleOffset.
// The title never overwrites the top-right corner.
func (p *Pane) drawBorder() {
	r := p.rect
	if r.Width == 0 || r.Height == 0 {
		return
	}
	p.box.Draw(p.screen)
	if p.title == "" {
		return
	}
	tview.Print(p.screen, "[::b]"+tview.Escape(p.title), r.X+TitleOffset, r.Y,
		r.Width-TitleOffset-1, tview.AlignLeft, tcell.ColorDefault)
}

// ClearInterior blanks rows x cols interior cells starting at (row, col).
// The rectangle is clipped to the interior.
func (p *Pane) ClearInterior(row, col, rows, cols int) {
	w, h := p.Interior()
	row, col = max(row, 0), max(col, 0)
	endRow, endCol := min(row+rows, h), min(col+cols, w)
	for y := row; y < endRow; y++ {
		for x := col; x < endCol; x++ {
			p.screen.SetContent(p.rect.X+1+x, p.rect.Y+1+y, ' ', nil, BaseStyle)
		}
	}
}

// Print draws text on an interior row starting at col, clipped at the
// right edge. It returns the column after the last drawn cell.
func (p *Pane) Print(row, col int, text string, style tcell.Style) int {
	w, h := p.Interior()
	if row < 0 || row >= h || col < 0 {
		return col
	}
	for _, ch := range text {
		if col >= w {
			break
		}
		// A tab or carriage return would move the terminal cursor.
		if unicode.IsControl(ch) {
			ch = ' '
		}
		p.screen.SetContent(p.rect.X+1+col, p.rect.Y+1+row, ch, nil, style)
		col++
	}
	return col
}

// Fill paints n blank cells in style starting at (row, col).
func (p *Pane) Fill(row, col, n int, style tcell.Style) {
	w, h := p.Interior()
	if row < 0 || row >= h {
		return
	}
	for x := max(col, 0); x < min(col+n, w); x++ {
		p.screen.SetContent(p.rect.X+1+x, p.rect.Y+1+row, ' ', nil, style)
	}
}

// WriteText clears the interior and lays text out with Paginate.
func (p *Pane) WriteText(text string) {
	w, h := p.Interior()
	p.ClearInterior(0, 0, h, w)
	for i, line := range Paginate(text, w, h) {
		p.Print(i, 0, line, DetailTextStyle)
	}
	p.Show()
}

// Show flushes pending cells to the terminal. tcell only sends cells
// that changed, so flushing after one pane leaves the others untouched.
func (p *Pane) Show() {
	p.screen.Show()
}
