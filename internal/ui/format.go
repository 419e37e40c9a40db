package ui

import (
	"fmt"
	"strings"
)

// truncate shortens s to max runes, marking the cut with an ellipsis.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max < 2 {
		return string(runes[:max])
	}
	return string(runes[:max-1]) + "…"
}

// padRight pads s with spaces to width runes, truncating when longer.
func padRight(s string, width int) string {
	s = truncate(s, width)
	if n := width - len([]rune(s)); n > 0 {
		return s + strings.Repeat(" ", n)
	}
	return s
}

// padLeft right-aligns s in width runes.
func padLeft(s string, width int) string {
	s = truncate(s, width)
	if n := width - len([]rune(s)); n > 0 {
		return strings.Repeat(" ", n) + s
	}
	return s
}

// formatCPU renders a CPU percentage for table cells.
func formatCPU(percent float64) string {
	return fmt.Sprintf("%.1f%%", percent)
}
