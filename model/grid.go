package model

import (
	"crypto/md5"
	"fmt"

	"github.com/pkg/errors"

	"github.com/sheikhrachel/lifegrid/rules"
)

// ErrInvalidSeed is returned when a seed matrix is empty or not rectangular.
var ErrInvalidSeed = errors.New("invalid seed")

// Grid is a fixed-size rectangular board of cells, indexed by (row, col)
type Grid struct {
	rows  int
	cols  int
	cells [][]bool
}

// NewGrid creates an all-dead grid with the specified dimensions
func NewGrid(rows, cols int) (*Grid, error) {
	if rows < 1 || cols < 1 {
		return nil, errors.Wrapf(ErrInvalidSeed, "[NewGrid] dimensions must be at least 1x1, got %dx%d", rows, cols)
	}
	g := &Grid{}
	g.Reset(rows, cols)
	return g, nil
}

// FromCells copies a boolean seed matrix into a new grid
func FromCells(seed [][]bool) (*Grid, error) {
	cols, err := seedWidth(len(seed), func(i int) int { return len(seed[i]) })
	if err != nil {
		return nil, errors.WithMessage(err, "[FromCells]")
	}
	g := &Grid{}
	g.Reset(len(seed), cols)
	for row := range seed {
		copy(g.cells[row], seed[row])
	}
	return g, nil
}

// FromBinary copies a 0/1 seed matrix into a new grid; 1 is alive, any value other than 0 or 1 is rejected
func FromBinary(seed [][]int) (*Grid, error) {
	cols, err := seedWidth(len(seed), func(i int) int { return len(seed[i]) })
	if err != nil {
		return nil, errors.WithMessage(err, "[FromBinary]")
	}
	g := &Grid{}
	g.Reset(len(seed), cols)
	for row := range seed {
		for col, v := range seed[row] {
			if v != 0 && v != 1 {
				return nil, errors.Wrapf(ErrInvalidSeed, "[FromBinary] cell (%d,%d) is %d, want 0 or 1", row, col, v)
			}
			g.cells[row][col] = v == 1
		}
	}
	return g, nil
}

// seedWidth checks that a seed has at least one row, that rows are non-empty and all share one length
func seedWidth(rows int, rowLen func(i int) int) (int, error) {
	if rows == 0 {
		return 0, errors.Wrap(ErrInvalidSeed, "seed has no rows")
	}
	cols := rowLen(0)
	if cols == 0 {
		return 0, errors.Wrap(ErrInvalidSeed, "seed rows are empty")
	}
	for i := 1; i < rows; i++ {
		if n := rowLen(i); n != cols {
			return 0, errors.Wrapf(ErrInvalidSeed, "row %d has %d cells, want %d", i, n, cols)
		}
	}
	return cols, nil
}

// Rows returns the number of rows of the grid
func (g *Grid) Rows() int {
	return g.rows
}

// Cols returns the number of columns of the grid
func (g *Grid) Cols() int {
	return g.cols
}

// Reset resizes the grid to new dimensions and kills every cell.
// All rows share one backing slice, so the grid can never become jagged.
func (g *Grid) Reset(rows, cols int) {
	g.rows = rows
	g.cols = cols

	if len(g.cells) != rows || (rows > 0 && cap(g.cells[0]) != cols) {
		backing := make([]bool, rows*cols)
		g.cells = make([][]bool, rows)
		for row := range g.cells {
			start := row * cols
			g.cells[row] = backing[start : start+cols : start+cols]
		}
		return
	}
	g.Clear()
}

// Clear kills all cells
func (g *Grid) Clear() {
	for row := range g.cells {
		clear(g.cells[row])
	}
}

// Set sets a cell to alive (true) or dead (false); positions outside the grid are ignored
func (g *Grid) Set(row, col int, alive bool) {
	if g.inBounds(row, col) {
		g.cells[row][col] = alive
	}
}

// Alive returns the state of a cell; positions outside the grid are dead
func (g *Grid) Alive(row, col int) bool {
	if !g.inBounds(row, col) {
		return false
	}
	return g.cells[row][col]
}

func (g *Grid) inBounds(row, col int) bool {
	return row >= 0 && row < g.rows && col >= 0 && col < g.cols
}

// Cells returns a deep copy of the cell matrix
func (g *Grid) Cells() [][]bool {
	out := make([][]bool, g.rows)
	for row := range g.cells {
		out[row] = append([]bool(nil), g.cells[row]...)
	}
	return out
}

// Clone returns an independent copy of the grid
func (g *Grid) Clone() *Grid {
	c := &Grid{}
	c.Reset(g.rows, g.cols)
	for row := range g.cells {
		copy(c.cells[row], g.cells[row])
	}
	return c
}

// Equal reports whether both grids have the same dimensions and cell states
func (g *Grid) Equal(other *Grid) bool {
	if other == nil || g.rows != other.rows || g.cols != other.cols {
		return false
	}
	for row := range g.cells {
		for col := range g.cells[row] {
			if g.cells[row][col] != other.cells[row][col] {
				return false
			}
		}
	}
	return true
}

// CountNeighbors counts living neighbors among the 8 surrounding cells.
// Positions outside the grid contribute nothing; the window is clamped to the grid bounds.
func (g *Grid) CountNeighbors(row, col int) int {
	count := 0

	minRow := max(0, row-1)
	maxRow := min(g.rows-1, row+1)
	minCol := max(0, col-1)
	maxCol := min(g.cols-1, col+1)

	for nr := minRow; nr <= maxRow; nr++ {
		for nc := minCol; nc <= maxCol; nc++ {
			if nr == row && nc == col {
				continue
			}
			if g.cells[nr][nc] {
				count++
			}
		}
	}

	return count
}

// NextInto writes the next generation of g into dst, which must have the same dimensions.
// Only g is read, so no cell is ever computed against an already-updated neighbor.
func (g *Grid) NextInto(dst *Grid) {
	if dst.rows != g.rows || dst.cols != g.cols {
		dst.Reset(g.rows, g.cols)
	}
	for row := 0; row < g.rows; row++ {
		for col := 0; col < g.cols; col++ {
			dst.cells[row][col] = rules.NextState(g.cells[row][col], g.CountNeighbors(row, col))
		}
	}
}

// CountLivingCells returns the total number of living cells
func (g *Grid) CountLivingCells() (count int) {
	for row := range g.cells {
		for _, alive := range g.cells[row] {
			if alive {
				count++
			}
		}
	}
	return
}

// Hash returns an MD5 digest of the grid dimensions and cell states
func (g *Grid) Hash() string {
	h := md5.New()
	fmt.Fprintf(h, "%dx%d:", g.rows, g.cols)
	buf := make([]byte, g.cols)
	for row := range g.cells {
		for col, alive := range g.cells[row] {
			buf[col] = 0
			if alive {
				buf[col] = 1
			}
		}
		h.Write(buf)
	}
	return fmt.Sprintf("%x", h.Sum(nil))
}
