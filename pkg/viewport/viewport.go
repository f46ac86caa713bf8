// Package viewport computes the visible window of a text buffer for a given
// terminal size and scroll offset.
package viewport

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// statusRows is the number of terminal rows reserved for the prompt line.
const statusRows = 1

// Size is a terminal size in cells.
type Size struct {
	Rows    int
	Columns int
}

// Height returns the number of content rows, leaving room for the prompt.
func (s Size) Height() int {
	return max(1, s.Rows-statusRows)
}

// Width returns the number of usable content columns.
func (s Size) Width() int {
	return max(1, s.Columns-1)
}

// Geometry describes a buffer of Lines shown through a Height x Width window.
type Geometry struct {
	Lines  int
	Height int
	Width  int
}

// New returns the [Geometry] of a buffer with the given line count.
func New(lines int, size Size) Geometry {
	return Geometry{
		Lines:  lines,
		Height: size.Height(),
		Width:  size.Width(),
	}
}

// Bottom returns the last row offset at which the final line is still visible.
func (g Geometry) Bottom() int {
	return max(0, g.Lines-g.Height)
}

// FitsOneScreen reports whether the whole buffer fits in the window.
func (g Geometry) FitsOneScreen() bool {
	return g.Lines <= g.Height
}

// Split splits a buffer into lines. A single trailing newline terminates the
// last line instead of starting a new, empty one.
func Split(content string) []string {
	content = strings.TrimSuffix(content, "\n")

	return strings.Split(content, "\n")
}

// Window returns lines [row, row+height) of the buffer, each clipped to the
// columns [col, col+width). Clipping never splits an escape sequence.
func Window(lines []string, row, col int, g Geometry) []string {
	row = max(0, row)
	col = max(0, col)

	if row >= len(lines) {
		return []string{}
	}

	end := min(len(lines), row+g.Height)
	window := make([]string, 0, end-row)

	for _, line := range lines[row:end] {
		window = append(window, ansi.Cut(line, col, col+g.Width))
	}

	return window
}

// Pad prepends blank rows so that the window is at least height rows tall.
func Pad(window []string, height int) []string {
	missing := height - len(window)
	if missing <= 0 {
		return window
	}

	padded := make([]string, missing, height)

	return append(padded, window...)
}
