package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/pkg/errors"

	"github.com/sheikhrachel/lifegrid/model"
	"github.com/sheikhrachel/lifegrid/runner"
	"github.com/sheikhrachel/lifegrid/utils"
)

// random boards fall back to this size when rows/cols are not configured
const (
	defaultRandomRows = 30
	defaultRandomCols = 60
)

// randomPattern selects a random board instead of a built-in pattern
const randomPattern = "random"

// ExitError carries the process exit code for a failed run
type ExitError struct {
	Code    int
	Message string
}

func (e *ExitError) Error() string {
	return e.Message
}

// buildSeed resolves the starting grid: an inline seed wins over a seed file,
// which wins over the named pattern
func buildSeed(config utils.Config) (*model.Grid, error) {
	var (
		seed *model.Grid
		err  error
	)
	switch {
	case len(config.Seed) > 0:
		seed, err = model.FromBinary(config.Seed)
	case config.SeedFile != "":
		seed, err = model.LoadSeedFile(config.SeedFile)
	case config.Pattern == randomPattern:
		rows, cols := config.Rows, config.Cols
		if rows == 0 {
			rows = defaultRandomRows
		}
		if cols == 0 {
			cols = defaultRandomCols
		}
		return model.Random(rows, cols, config.RandomDensity, config.RandomSeed)
	default:
		seed, err = model.Pattern(config.Pattern)
	}
	if err != nil {
		return nil, errors.WithMessage(err, "[buildSeed]")
	}
	return centerOn(seed, config.Rows, config.Cols)
}

// centerOn places seed in the middle of a rows x cols board when that board is larger
func centerOn(seed *model.Grid, rows, cols int) (*model.Grid, error) {
	rows, cols = max(rows, seed.Rows()), max(cols, seed.Cols())
	if rows == seed.Rows() && cols == seed.Cols() {
		return seed, nil
	}
	board, err := model.NewGrid(rows, cols)
	if err != nil {
		return nil, errors.WithMessage(err, "[centerOn]")
	}
	model.Place(board, seed, (rows-seed.Rows())/2, (cols-seed.Cols())/2)
	return board, nil
}

// newEngine builds an engine from the configured seed
func newEngine(config utils.Config) (*model.Engine, error) {
	seed, err := buildSeed(config)
	if err != nil {
		return nil, err
	}
	return model.NewEngineFromGrid(seed)
}

// reseeder returns the interactive reseed action. Random boards draw a new seed each time.
func reseeder(config utils.Config) func() (*model.Engine, error) {
	return func() (*model.Engine, error) {
		if config.Pattern == randomPattern {
			config.RandomSeed++
		}
		return newEngine(config)
	}
}

// logWriter keeps log records off the screen while the interactive UI owns the terminal
func logWriter(config utils.Config) io.Writer {
	if config.Interactive {
		return io.Discard
	}
	return os.Stderr
}

func engineOptions(config utils.Config) runner.Options {
	return runner.Options{
		Interval:       time.Duration(config.FrameInterval),
		MaxGenerations: config.MaxGenerations,
		StopWhenStable: config.StopWhenStable,
		HistoryDepth:   config.HistoryDepth,
	}
}

// displayGameInfo shows the initial game information
func displayGameInfo(w io.Writer, config utils.Config, eng *model.Engine) {
	limit := "until interrupted"
	if config.MaxGenerations > 0 {
		limit = fmt.Sprintf("%d generations", config.MaxGenerations)
	}
	fmt.Fprintf(w, "Grid: %dx%d | Initial living cells: %d | Interval: %v | Running %s\n",
		eng.Rows(), eng.Cols(), eng.Population(), time.Duration(config.FrameInterval), limit)
	fmt.Fprintln(w, "Press Ctrl+C to exit gracefully")
	fmt.Fprintln(w)
}

// displaySummary prints the final stats of a finished run
func displaySummary(w io.Writer, result runner.Result) {
	fmt.Fprintf(w, "\nStopped: %s after %d generations in %.1f seconds\n",
		result.Reason, result.Generations, result.Stats.Runtime().Seconds())
	if result.Period > 0 {
		fmt.Fprintf(w, "Detected cycle with period %d\n", result.Period)
	}
	fmt.Fprintf(w, "Average: %.1f gen/sec, %.1f avg population, %d peak population\n",
		result.Stats.GenerationsPerSecond, result.Stats.AveragePopulation, result.Stats.PeakPopulation)
}
