// Package runner drives a model.Engine at a fixed pace.
//
// The engine is owned by a single producer goroutine which renders a frame, hands it to the
// display goroutine over a channel, waits for the next tick and steps. The caller decides how
// long a run lasts through the context, a generation limit or stop-when-stable.
package runner

import (
	"context"
	"log/slog"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/sheikhrachel/lifegrid/model"
	"github.com/sheikhrachel/lifegrid/utils"
)

// StopReason explains why a run ended
type StopReason string

const (
	ReasonCancelled      StopReason = "cancelled"
	ReasonMaxGenerations StopReason = "max generations reached"
	ReasonStable         StopReason = "stable"
	ReasonExtinct        StopReason = "extinct"
)

// Frame is one rendered generation handed to a Display
type Frame struct {
	Generation int
	Population int
	Cells      int
	Text       string
	Grid       *model.Grid
	// Period is the cycle length closed by this generation, 0 when no cycle was detected
	Period int
}

// Density returns the share of live cells in percent
func (f Frame) Density() float64 {
	if f.Cells == 0 {
		return 0
	}
	return float64(f.Population) / float64(f.Cells) * 100
}

// Display consumes rendered frames
type Display interface {
	Show(frame Frame) error
}

// DisplayFunc adapts a function to the Display interface
type DisplayFunc func(frame Frame) error

func (f DisplayFunc) Show(frame Frame) error { return f(frame) }

// Options controls pacing and termination of a run
type Options struct {
	Interval time.Duration
	// MaxGenerations stops the run after that generation is shown; 0 runs until cancelled
	MaxGenerations int
	StopWhenStable bool
	HistoryDepth   int
}

// Result summarizes a finished run
type Result struct {
	Generations int
	Reason      StopReason
	Period      int
	Stats       *utils.Stats
}

// Run shows the current generation, then alternates waiting, stepping and showing until the run ends.
// Cancelling ctx ends the run normally with ReasonCancelled; a display error aborts it.
func Run(ctx context.Context, eng *model.Engine, opts Options, display Display, logger *slog.Logger) (Result, error) {
	if eng == nil || display == nil {
		return Result{}, errors.New("[Run] engine and display are required")
	}
	if logger == nil {
		logger = slog.Default()
	}

	var (
		result   = Result{Reason: ReasonCancelled, Stats: utils.NewStats()}
		frames   = make(chan Frame)
		eg, gctx = errgroup.WithContext(ctx)
	)

	logger.Info("simulation started",
		"rows", eng.Rows(), "cols", eng.Cols(), "population", eng.Population(),
		"interval", opts.Interval, "max_generations", opts.MaxGenerations)

	// producer: the only goroutine touching the engine
	eg.Go(func() error {
		defer close(frames)

		var (
			history *model.History
			wait    = newPacer(opts.Interval)
		)
		defer wait.stop()
		if opts.StopWhenStable {
			history = model.NewHistory(opts.HistoryDepth)
		}

		for {
			frame := Frame{
				Generation: eng.Generation(),
				Population: eng.Population(),
				Cells:      eng.Rows() * eng.Cols(),
				Text:       eng.Render(),
				Grid:       eng.Grid(),
			}
			if history != nil {
				frame.Period = history.Record(eng.Hash())
			}

			select {
			case frames <- frame:
			case <-gctx.Done():
				return nil
			}

			switch {
			case opts.MaxGenerations > 0 && frame.Generation >= opts.MaxGenerations:
				result.Reason = ReasonMaxGenerations
			case history != nil && frame.Population == 0:
				result.Reason = ReasonExtinct
			case frame.Period > 0:
				result.Reason = ReasonStable
				result.Period = frame.Period
			}
			if result.Reason != ReasonCancelled {
				return nil
			}

			if !wait.next(gctx) {
				return nil
			}
			eng.Step()
		}
	})

	// consumer: shows frames in order
	eg.Go(func() error {
		last := time.Now()
		for frame := range frames {
			result.Stats.Update(frame.Generation, frame.Population, time.Since(last))
			last = time.Now()

			logger.Debug("generation", "generation", frame.Generation, "population", frame.Population, "period", frame.Period)
			if err := display.Show(frame); err != nil {
				return errors.Wrapf(err, "[Run] failed to display generation %d", frame.Generation)
			}
		}
		return nil
	})

	if err := eg.Wait(); err != nil {
		logger.Error("simulation aborted", "error", err, "generation", eng.Generation())
		return result, err
	}

	result.Generations = eng.Generation()
	logger.Info("simulation stopped",
		"reason", string(result.Reason), "generations", result.Generations, "period", result.Period,
		"avg_population", result.Stats.AveragePopulation, "runtime", result.Stats.Runtime().Round(time.Millisecond))
	return result, nil
}

// pacer waits for the next frame tick; a non-positive interval never waits
type pacer struct {
	ticker *time.Ticker
}

func newPacer(interval time.Duration) *pacer {
	if interval <= 0 {
		return &pacer{}
	}
	return &pacer{ticker: time.NewTicker(interval)}
}

// next blocks until the next tick and reports false if ctx ended first
func (p *pacer) next(ctx context.Context) bool {
	if p.ticker == nil {
		return ctx.Err() == nil
	}
	select {
	case <-p.ticker.C:
		return true
	case <-ctx.Done():
		return false
	}
}

func (p *pacer) stop() {
	if p.ticker != nil {
		p.ticker.Stop()
	}
}
