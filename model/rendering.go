package model

import "strings"

const (
	// LiveGlyph is the two-character rendering of a live cell.
	LiveGlyph = "+ "
	// DeadGlyph is the two-character rendering of a dead cell.
	DeadGlyph = "  "
)

// RenderGrid renders one line per row, each cell as the live or dead glyph, each row ending in a newline
func RenderGrid(g *Grid, live, dead string) string {
	var b strings.Builder
	b.Grow(g.rows * (g.cols*max(len(live), len(dead)) + 1))
	for row := range g.cells {
		for _, alive := range g.cells[row] {
			if alive {
				b.WriteString(live)
			} else {
				b.WriteString(dead)
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}
