package render

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// GridConfig configures Grid.
type GridConfig struct {
	// Total width available. Zero or less means 80.
	Width int
	// Number of spaces before each column.
	Padding int
}

// Grid lays out names in columns of a uniform width: the display width of the
// widest name across all groups. Names are right-aligned in their columns. As
// many columns as fit within the width are used, but always at least one.
//
// Each non-empty group starts on a new row and is separated from the previous
// group by a blank line. Lines have no trailing spaces and the result has no
// trailing newline. Grid returns "" if there are no names at all.
func Grid(groups [][]string, cfg GridConfig) string {
	colWidth := 0
	for _, group := range groups {
		for _, name := range group {
			if w := runewidth.StringWidth(name); w > colWidth {
				colWidth = w
			}
		}
	}
	if colWidth == 0 {
		return ""
	}
	width := cfg.Width
	if width <= 0 {
		width = 80
	}
	padding := cfg.Padding
	if padding < 0 {
		padding = 0
	}
	cols := width / (colWidth + padding)
	if cols < 1 {
		cols = 1
	}
	pad := strings.Repeat(" ", padding)

	var blocks []string
	for _, group := range groups {
		if len(group) == 0 {
			continue
		}
		var lines []string
		for i := 0; i < len(group); i += cols {
			var sb strings.Builder
			for _, name := range group[i:minInt(i+cols, len(group))] {
				sb.WriteString(pad)
				sb.WriteString(runewidth.FillLeft(name, colWidth))
			}
			lines = append(lines, strings.TrimRight(sb.String(), " "))
		}
		blocks = append(blocks, strings.Join(lines, "\n"))
	}
	return strings.Join(blocks, "\n\n")
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
