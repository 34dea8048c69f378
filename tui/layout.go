package tui

const (
	splitRatio   = 4
	headerHeight = 3
)

// Layout holds the outer rectangles of the five dashboard panes.
type Layout struct {
	List        Rect
	LeftHeader  Rect
	RightHeader Rect
	Header      Rect
	Content     Rect
}

// NewLayout splits a cols x lines terminal: the list takes a quarter of the
// width on the left, the right side stacks from/to side by side, then the
// subject, then the body in whatever height is left. Dimensions never go
// negative.
func NewLayout(cols, lines int) Layout {
	cols, lines = max(cols, 0), max(lines, 0)

	leftWidth := cols / splitRatio
	rightWidth := cols - leftWidth
	smallWidth := rightWidth / 2

	return Layout{
		List:        Rect{X: 0, Y: 0, Width: leftWidth, Height: lines},
		LeftHeader:  Rect{X: leftWidth, Y: 0, Width: smallWidth, Height: headerHeight},
		RightHeader: Rect{X: leftWidth + smallWidth, Y: 0, Width: smallWidth, Height: headerHeight},
		Header:      Rect{X: leftWidth, Y: headerHeight, Width: rightWidth, Height: headerHeight},
		Content:     Rect{X: leftWidth, Y: 2 * headerHeight, Width: rightWidth, Height: max(lines-2*headerHeight, 0)},
	}
}
