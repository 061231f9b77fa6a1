package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// renderPopup frames popup and centres it over base, which is first fitted
// to the terminal. Canvas cells outside the frame stay visible.
func renderPopup(base, popup string, width, height int) string {
	if width <= 0 || height <= 0 {
		return base + "\n\n" + popup
	}
	frame := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorAccent).
		Padding(1, 2).
		Render(popup)
	frameRows := splitLines(frame)
	frameWidth := maxLineWidth(frameRows)

	rows := splitLines(fitCanvas(base, width, height))
	top := max((height-len(frameRows))/2, 0)
	left := max((width-frameWidth)/2, 0)
	for i, line := range frameRows {
		if top+i >= len(rows) {
			break
		}
		rows[top+i] = spliceRow(rows[top+i], padRight(line, frameWidth), left)
	}
	return strings.Join(rows, "\n")
}

// spliceRow replaces the cells of row starting at column col with patch.
// Styling in the kept cells on either side survives.
func spliceRow(row, patch string, col int) string {
	head := padRight(ansi.Truncate(row, col, ""), col)
	tail := ansi.TruncateLeft(row, col+ansi.StringWidth(patch), "")
	return head + patch + tail
}

// fitCanvas pads or cuts s to exactly height lines of width columns.
func fitCanvas(s string, width, height int) string {
	lines := splitLines(s)
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	for i := range lines {
		lines[i] = padRight(lines[i], width)
	}
	return strings.Join(lines, "\n")
}

// splitLines never returns an empty slice.
func splitLines(s string) []string {
	if s == "" {
		return []string{""}
	}
	return strings.Split(s, "\n")
}

// maxLineWidth is the cell width of the widest line.
func maxLineWidth(lines []string) int {
	m := 0
	for _, line := range lines {
		if w := ansi.StringWidth(line); w > m {
			m = w
		}
	}
	return m
}

// padRight widens s to width cells. Wider strings are returned as is.
func padRight(s string, width int) string {
	if gap := width - ansi.StringWidth(s); gap > 0 {
		return s + strings.Repeat(" ", gap)
	}
	return s
}
