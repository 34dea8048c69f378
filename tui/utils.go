package tui

import "strings"

// clip shortens s to at most maxLen runes. Unlike a display ellipsis it
// never adds characters, so the result always fits the cells it was
// measured against.
func clip(s string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen])
}

// formatRow lays out a two-part list label inside width cells.
// The header is kept whole whenever it fits; the secondary field is
// sacrificed first. tail carries its own leading separator space and is
// empty when the header fills the row.
func formatRow(header, secondary string, width int) (head, tail string) {
	if width <= 0 {
		return "", ""
	}
	hl := len([]rune(header))
	if hl >= width {
		return clip(header, width), ""
	}
	return header, " " + clip(secondary, width-hl-1)
}

// Paginate maps text onto a width x height block of screen rows.
// Lines are hard-wrapped at width runes and anything past height rows is
// dropped.
func Paginate(text string, width, height int) []string {
	if width <= 0 || height <= 0 || text == "" {
		return nil
	}

	text = strings.ReplaceAll(text, "\r\n", "\n")
	lines := strings.Split(text, "\n")
	// A terminating newline ends the last line, it does not open a new one.
	if len(lines) > 1 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}

	rows := make([]string, 0, min(height, len(lines)))
	for _, line := range lines {
		r := []rune(line)
		for len(r) > width {
			if len(rows) == height {
				return rows
			}
			rows = append(rows, string(r[:width]))
			r = r[width:]
		}
		if len(rows) == height {
			return rows
		}
		rows = append(rows, string(r))
	}
	return rows
}
