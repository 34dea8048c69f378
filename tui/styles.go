package tui

import "github.com/gdamore/tcell/v2"

var (
	// General
	BaseStyle = tcell.StyleDefault

	// List rows. The selected row keeps reverse video across the whole
	// width, the header stays bold in both states.
	RowStyle            = tcell.StyleDefault
	RowHeaderStyle      = RowStyle.Bold(true)
	SelectedRowStyle    = tcell.StyleDefault.Reverse(true)
	SelectedHeaderStyle = SelectedRowStyle.Bold(true)

	// Detail panes
	DetailTextStyle = tcell.StyleDefault
)

// rowStyles returns the base and header style for a list row.
func rowStyles(selected bool) (base, header tcell.Style) {
	if selected {
		return SelectedRowStyle, SelectedHeaderStyle
	}
	return RowStyle, RowHeaderStyle
}
