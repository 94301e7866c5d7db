package tui

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// overlayAt draws overlay over base with its top-left corner at column x,
// row y. Rows outside base are appended.
func overlayAt(base, overlay string, x, y int) string {
	baseLines := strings.Split(base, "\n")
	overlayLines := strings.Split(overlay, "\n")
	overlayWidth := maxLineWidth(overlayLines)
	for len(baseLines) < y+len(overlayLines) {
		baseLines = append(baseLines, "")
	}
	for i, line := range overlayLines {
		row := y + i
		target := baseLines[row]
		left := ansi.Truncate(target, x, "")
		if w := ansi.StringWidth(left); w < x {
			left += strings.Repeat(" ", x-w)
		}
		right := ansi.TruncateLeft(target, x+overlayWidth, "")
		baseLines[row] = left + padRightANSI(line, overlayWidth) + right
	}
	return strings.Join(baseLines, "\n")
}

// overlayTopRight pins overlay to the right edge of a width-wide canvas.
func overlayTopRight(base, overlay string, y, width, margin int) string {
	w := maxLineWidth(strings.Split(overlay, "\n"))
	x := max(0, width-w-margin)
	return overlayAt(base, overlay, x, y)
}

func maxLineWidth(lines []string) int {
	maxWidth := 0
	for _, line := range lines {
		if w := ansi.StringWidth(line); w > maxWidth {
			maxWidth = w
		}
	}
	return maxWidth
}

func padRightANSI(s string, width int) string {
	s = ansi.Truncate(s, width, "")
	w := ansi.StringWidth(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}
