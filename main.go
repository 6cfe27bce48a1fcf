// Command lifegrid runs Conway's Game of Life in the terminal.
//
// Configuration is layered: built-in defaults, then a JSON file (config.json, or the file named by
// LIFEGRID_CONFIG), then LIFEGRID_* environment variables (a .env file in the working directory is
// loaded first), then command line flags.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/integrii/flaggy"
	"github.com/pkg/errors"

	"github.com/sheikhrachel/lifegrid/model"
	"github.com/sheikhrachel/lifegrid/runner"
	"github.com/sheikhrachel/lifegrid/utils"
	"github.com/sheikhrachel/lifegrid/view"
)

const defaultConfigFile = "config.json"

func main() {
	slog.SetDefault(utils.NewLogger("info", "text", os.Stderr))

	// Handle Ctrl+C gracefully
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := run(ctx, os.Stdout, os.Args[1:])
	stop()

	if err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			fmt.Fprintln(os.Stderr, exitErr.Message)
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run loads the configuration, then drives the simulation until it stops or ctx is cancelled
func run(ctx context.Context, outW io.Writer, args []string) error {
	config, err := loadConfig(args)
	if err != nil {
		return &ExitError{Code: 2, Message: err.Error()}
	}

	logger := utils.NewLogger(config.LogLevel, config.LogFormat, logWriter(config))
	eng, err := newEngine(config)
	if err != nil {
		return &ExitError{Code: 2, Message: err.Error()}
	}

	if config.Interactive {
		ui := view.NewConsoleUI(eng, time.Duration(config.FrameInterval), reseeder(config), logger)
		return ui.Start(ctx)
	}

	displayGameInfo(outW, config, eng)
	terminal := view.NewTerminal(outW, config.ClearScreen, config.Color, true)
	result, err := runner.Run(ctx, eng, engineOptions(config), terminal, logger)
	if err != nil {
		return err
	}
	displaySummary(outW, result)
	return nil
}

// loadConfig layers defaults, the JSON file, the environment and finally the flags in args
func loadConfig(args []string) (utils.Config, error) {
	if err := utils.LoadDotEnv(".env"); err != nil {
		return utils.Config{}, err
	}

	config := utils.DefaultConfig()
	path, explicit := os.LookupEnv(utils.EnvPrefix + "CONFIG")
	if !explicit {
		path = defaultConfigFile
	}
	if _, statErr := os.Stat(path); statErr == nil || explicit {
		var err error
		if config, err = utils.LoadConfig(path); err != nil {
			return config, err
		}
	}
	if err := config.ApplyEnv(os.LookupEnv); err != nil {
		return config, err
	}

	if err := parseFlags(&config, args); err != nil {
		return config, err
	}
	return config, config.Validate()
}

// parseFlags overrides config with the flags present in args; flag defaults show the current values
func parseFlags(config *utils.Config, args []string) error {
	var (
		interval = time.Duration(config.FrameInterval)
		noClear  bool
	)

	parser := flaggy.NewParser("lifegrid")
	parser.Description = "Conway's Game of Life on a fixed, non-wrapping board"
	parser.ShowHelpOnUnexpected = false
	flags := newFlagSet(parser)

	flags.String(&config.Pattern, "p", "pattern",
		"Built-in pattern ["+strings.Join(append(model.PatternNames(), randomPattern), "|")+"]")
	flags.String(&config.SeedFile, "f", "seed-file", "Plaintext seed file, overrides the pattern")
	flags.Int(&config.Rows, "y", "rows", "Board rows; patterns are centered on a larger board")
	flags.Int(&config.Cols, "x", "cols", "Board columns; patterns are centered on a larger board")
	flags.Float64(&config.RandomDensity, "d", "density", "Share of live cells for the random pattern")
	flags.Int64(&config.RandomSeed, "", "random-seed", "Seed for the random pattern")
	flags.Duration(&interval, "i", "interval", "Interval between generations, for example 800ms")
	flags.Int(&config.MaxGenerations, "m", "max-generations", "Stop after this generation, 0 runs until interrupted")
	flags.Bool(&config.StopWhenStable, "s", "stable", "Stop once the board repeats a recent generation")
	flags.Int(&config.HistoryDepth, "", "history", "Generations remembered for cycle detection")
	flags.Bool(&config.Color, "c", "color", "Colorize live cells")
	flags.Bool(&noClear, "", "no-clear", "Do not clear the screen between frames")
	flags.Bool(&config.Interactive, "n", "interactive", "Start interactive mode")
	flags.String(&config.LogLevel, "", "log-level", "Log level [debug|info|warn|error]")
	flags.String(&config.LogFormat, "", "log-format", "Log format [text|json]")

	if err := flags.checkArgs(args); err != nil {
		return err
	}
	if err := parser.ParseArgs(args); err != nil {
		return errors.Wrap(err, "[parseFlags] failed to parse arguments")
	}

	config.FrameInterval = utils.Duration(interval)
	if noClear {
		config.ClearScreen = false
	}
	return nil
}

// flagSet registers flags on a flaggy parser and remembers their names,
// so arguments flaggy would skip are reported instead
type flagSet struct {
	parser *flaggy.Parser
	// takesValue is keyed by short and long flag name
	takesValue map[string]bool
}

func newFlagSet(parser *flaggy.Parser) *flagSet {
	// flaggy's built-in help and version flags
	return &flagSet{parser: parser, takesValue: map[string]bool{"h": false, "help": false, "version": false}}
}

func (f *flagSet) add(short, long string, value bool) {
	if short != "" {
		f.takesValue[short] = value
	}
	f.takesValue[long] = value
}

func (f *flagSet) String(v *string, short, long, descr string) {
	f.parser.String(v, short, long, descr)
	f.add(short, long, true)
}

func (f *flagSet) Int(v *int, short, long, descr string) {
	f.parser.Int(v, short, long, descr)
	f.add(short, long, true)
}

func (f *flagSet) Int64(v *int64, short, long, descr string) {
	f.parser.Int64(v, short, long, descr)
	f.add(short, long, true)
}

func (f *flagSet) Float64(v *float64, short, long, descr string) {
	f.parser.Float64(v, short, long, descr)
	f.add(short, long, true)
}

func (f *flagSet) Duration(v *time.Duration, short, long, descr string) {
	f.parser.Duration(v, short, long, descr)
	f.add(short, long, true)
}

func (f *flagSet) Bool(v *bool, short, long, descr string) {
	f.parser.Bool(v, short, long, descr)
	f.add(short, long, false)
}

// checkArgs rejects unknown flags and positional arguments
func (f *flagSet) checkArgs(args []string) error {
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" || !strings.HasPrefix(arg, "-") || len(arg) == 1 {
			return errors.Errorf("[parseFlags] unexpected argument %q", arg)
		}
		name, _, inline := strings.Cut(strings.TrimLeft(arg, "-"), "=")
		value, known := f.takesValue[name]
		if !known {
			return errors.Errorf("[parseFlags] unknown flag %q", arg)
		}
		if value && !inline {
			if i+1 >= len(args) {
				return errors.Errorf("[parseFlags] flag %q needs a value", arg)
			}
			i++
		}
	}
	return nil
}
