package model

import (
	"math/rand/v2"
	"slices"

	"github.com/pkg/errors"
)

// patternDef describes a built-in seed as a board size and its live cells
type patternDef struct {
	rows, cols int
	live       [][2]int
}

var patterns = map[string]patternDef{
	// period-15 oscillator, the classic demo seed
	"pentadecathlon": {
		rows: 19, cols: 20,
		live: [][2]int{
			{8, 7}, {8, 12},
			{9, 5}, {9, 6}, {9, 8}, {9, 9}, {9, 10}, {9, 11}, {9, 13}, {9, 14},
			{10, 7}, {10, 12},
		},
	},
	"blinker": {
		rows: 5, cols: 5,
		live: [][2]int{{2, 1}, {2, 2}, {2, 3}},
	},
	"block": {
		rows: 4, cols: 4,
		live: [][2]int{{1, 1}, {1, 2}, {2, 1}, {2, 2}},
	},
	"glider": {
		rows: 10, cols: 10,
		live: [][2]int{{1, 2}, {2, 3}, {3, 1}, {3, 2}, {3, 3}},
	},
	"empty": {rows: 10, cols: 10},
}

// PatternNames returns the names of the built-in patterns in sorted order
func PatternNames() []string {
	names := make([]string, 0, len(patterns))
	for name := range patterns {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Pattern returns a fresh grid holding the named built-in pattern
func Pattern(name string) (*Grid, error) {
	def, ok := patterns[name]
	if !ok {
		return nil, errors.Wrapf(ErrInvalidSeed, "[Pattern] unknown pattern %q", name)
	}
	g, err := NewGrid(def.rows, def.cols)
	if err != nil {
		return nil, err
	}
	for _, rc := range def.live {
		g.Set(rc[0], rc[1], true)
	}
	return g, nil
}

// Place stamps the live and dead cells of pattern onto dst with its top-left corner at (row, col).
// Cells falling outside dst are clipped.
func Place(dst, pattern *Grid, row, col int) {
	for r := range pattern.cells {
		for c, alive := range pattern.cells[r] {
			dst.Set(row+r, col+c, alive)
		}
	}
}

// Random fills a new grid so that each cell is alive with the given probability.
// The same seed always produces the same grid.
func Random(rows, cols int, density float64, seed int64) (*Grid, error) {
	if density < 0 || density > 1 {
		return nil, errors.Errorf("[Random] density must be within [0,1], got %v", density)
	}
	g, err := NewGrid(rows, cols)
	if err != nil {
		return nil, err
	}
	rng := rand.New(rand.NewPCG(uint64(seed), 0))
	for r := range g.cells {
		for c := range g.cells[r] {
			g.cells[r][c] = rng.Float64() < density
		}
	}
	return g, nil
}
