package rules

const (
	// BirthNeighbors is the live neighbor count that brings a dead cell to life.
	BirthNeighbors = 3
	// SurviveNeighbors is the extra live neighbor count that keeps a live cell alive.
	SurviveNeighbors = 2
)

/*
NextState applies Conway's Game of Life rules (B3/S23) to a single cell.

A cell with exactly three live neighbors is alive in the next generation, a live cell with
exactly two live neighbors stays alive, and every other cell is dead.
*/
func NextState(alive bool, neighbors int) bool {
	return neighbors == BirthNeighbors || (alive && neighbors == SurviveNeighbors)
}
