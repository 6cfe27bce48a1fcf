package model

import "github.com/pkg/errors"

// Engine owns the current generation of a grid and advances it one generation at a time.
//
// The installed grid is replaced wholesale on every Step: the next generation is computed
// into a spare buffer from the pool and only then swapped in, so a partially computed
// generation is never observable. An Engine is driven by one goroutine at a time.
type Engine struct {
	cur        *Grid
	pool       *GridPool
	generation int
}

// NewEngine creates an engine seeded with a copy of the given matrix
func NewEngine(seed [][]bool) (*Engine, error) {
	g, err := FromCells(seed)
	if err != nil {
		return nil, errors.WithMessage(err, "[NewEngine]")
	}
	return newEngine(g), nil
}

// NewEngineFromGrid creates an engine seeded with a copy of the given grid
func NewEngineFromGrid(seed *Grid) (*Engine, error) {
	if seed == nil || seed.rows < 1 || seed.cols < 1 {
		return nil, errors.Wrap(ErrInvalidSeed, "[NewEngineFromGrid] seed grid is empty")
	}
	return newEngine(seed.Clone()), nil
}

func newEngine(g *Grid) *Engine {
	return &Engine{cur: g, pool: NewGridPool()}
}

// Step computes and installs the next generation
func (e *Engine) Step() {
	next := e.pool.Get(e.cur.rows, e.cur.cols)
	e.cur.NextInto(next)

	prev := e.cur
	e.cur = next
	e.pool.Put(prev)
	e.generation++
}

// Render returns the current generation as text, one line per row
func (e *Engine) Render() string {
	return RenderGrid(e.cur, LiveGlyph, DeadGlyph)
}

// Generation returns the number of steps taken since construction
func (e *Engine) Generation() int {
	return e.generation
}

// Population returns the number of living cells in the current generation
func (e *Engine) Population() int {
	return e.cur.CountLivingCells()
}

// Rows returns the number of rows of the grid
func (e *Engine) Rows() int {
	return e.cur.rows
}

// Cols returns the number of columns of the grid
func (e *Engine) Cols() int {
	return e.cur.cols
}

// Grid returns a copy of the current generation
func (e *Engine) Grid() *Grid {
	return e.cur.Clone()
}

// Hash returns a digest of the current generation
func (e *Engine) Hash() string {
	return e.cur.Hash()
}
