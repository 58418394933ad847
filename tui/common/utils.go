package common

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// SingleLine collapses whitespace runs, newlines included, into single
// spaces so an item fits one listing row.
func SingleLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Clip shortens s to width terminal cells, marking the cut with an
// ellipsis.
func Clip(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return ansi.Truncate(s, width, "…")
}
