package main

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sheikhrachel/lifegrid/utils"
)

func TestRun_MaxGenerations(t *testing.T) {
	var out bytes.Buffer
	args := []string{"--pattern", "blinker", "--max-generations", "2", "--interval", "1ms", "--no-clear", "--log-level", "error"}

	require.NoError(t, run(context.Background(), &out, args))

	output := out.String()
	assert.Equal(t, 3, strings.Count(output, "Gen: "), "generations 0, 1 and 2 are shown")
	assert.Contains(t, output, "Grid: 5x5 | Initial living cells: 3")
	assert.Contains(t, output, "Stopped: max generations reached after 2 generations")
	assert.NotContains(t, output, "\033[2J")
}

func TestRun_StopWhenStable(t *testing.T) {
	var out bytes.Buffer
	args := []string{"--pattern", "block", "--stable", "--interval", "1ms", "--no-clear", "--log-level", "error"}

	require.NoError(t, run(context.Background(), &out, args))
	assert.Contains(t, out.String(), "Stopped: stable after 1 generations")
	assert.Contains(t, out.String(), "Detected cycle with period 1")
}

func TestRun_ConfigFileFromEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"seed": [[0,1,0],[0,1,0],[0,1,0]], "max_generations": 1, "frame_interval": "1ms", "clear_screen": false, "log_level": "error"}`), 0o600))
	t.Setenv(utils.EnvPrefix+"CONFIG", path)

	var out bytes.Buffer
	require.NoError(t, run(context.Background(), &out, nil))
	assert.Contains(t, out.String(), "+ + + \n", "the vertical blinker turns horizontal")
}

func TestRun_Errors(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		message string
	}{
		{"unknown pattern", []string{"--pattern", "nope"}, "unknown pattern"},
		{"density out of range", []string{"--pattern", "random", "--density", "2"}, "random_density"},
		{"bad log level", []string{"--log-level", "loud"}, "log_level"},
		{"missing seed file", []string{"--seed-file", "does-not-exist.cells"}, "does-not-exist.cells"},
		{"misspelled flag", []string{"--max-generation", "2", "--no-clear"}, `unknown flag "--max-generation"`},
		{"unknown short flag", []string{"-z"}, `unknown flag "-z"`},
		{"positional argument", []string{"--pattern", "block", "extra"}, `unexpected argument "extra"`},
		{"missing value", []string{"--no-clear", "--rows"}, `flag "--rows" needs a value`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := run(context.Background(), &bytes.Buffer{}, tt.args)
			require.Error(t, err)

			var exitErr *ExitError
			require.True(t, errors.As(err, &exitErr), "expected an ExitError, got %T", err)
			assert.Equal(t, 2, exitErr.Code)
			assert.Contains(t, exitErr.Message, tt.message)
		})
	}
}

func TestRun_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	require.NoError(t, run(ctx, &out, []string{"--no-clear", "--log-level", "error"}))
	assert.Contains(t, out.String(), "Running until interrupted")
}

func TestParseFlags_AcceptedForms(t *testing.T) {
	t.Parallel()

	config := utils.DefaultConfig()
	args := []string{"-p", "glider", "--rows=12", "-x", "14", "--random-seed", "7", "--stable", "--no-clear", "-i", "5ms"}
	require.NoError(t, parseFlags(&config, args))

	assert.Equal(t, "glider", config.Pattern)
	assert.Equal(t, 12, config.Rows)
	assert.Equal(t, 14, config.Cols)
	assert.Equal(t, int64(7), config.RandomSeed)
	assert.True(t, config.StopWhenStable)
	assert.False(t, config.ClearScreen)
	assert.Equal(t, utils.Duration(5*time.Millisecond), config.FrameInterval)
}

func TestLogWriter(t *testing.T) {
	t.Parallel()

	config := utils.DefaultConfig()
	assert.Equal(t, os.Stderr, logWriter(config))

	config.Interactive = true
	assert.Equal(t, io.Discard, logWriter(config), "the interactive UI owns the terminal")
}

func TestBuildSeed(t *testing.T) {
	t.Parallel()

	t.Run("pattern centered on a larger board", func(t *testing.T) {
		t.Parallel()
		config := utils.DefaultConfig()
		config.Pattern, config.Rows, config.Cols = "block", 8, 10

		seed, err := buildSeed(config)
		require.NoError(t, err)
		assert.Equal(t, 8, seed.Rows())
		assert.Equal(t, 10, seed.Cols())
		assert.Equal(t, 4, seed.CountLivingCells())
		assert.True(t, seed.Alive(3, 4))
		assert.True(t, seed.Alive(4, 5))
	})

	t.Run("smaller board keeps the pattern size", func(t *testing.T) {
		t.Parallel()
		config := utils.DefaultConfig()
		config.Rows, config.Cols = 2, 2

		seed, err := buildSeed(config)
		require.NoError(t, err)
		assert.Equal(t, 19, seed.Rows())
		assert.Equal(t, 20, seed.Cols())
	})

	t.Run("inline seed wins", func(t *testing.T) {
		t.Parallel()
		config := utils.DefaultConfig()
		config.Seed = [][]int{{1, 0}, {0, 1}}
		config.SeedFile = "ignored.cells"

		seed, err := buildSeed(config)
		require.NoError(t, err)
		assert.Equal(t, 2, seed.Rows())
		assert.Equal(t, 2, seed.CountLivingCells())
	})

	t.Run("random uses the default size", func(t *testing.T) {
		t.Parallel()
		config := utils.DefaultConfig()
		config.Pattern = randomPattern

		seed, err := buildSeed(config)
		require.NoError(t, err)
		assert.Equal(t, defaultRandomRows, seed.Rows())
		assert.Equal(t, defaultRandomCols, seed.Cols())
	})
}

func TestReseeder_RandomDrawsNewBoards(t *testing.T) {
	t.Parallel()

	config := utils.DefaultConfig()
	config.Pattern, config.Rows, config.Cols, config.RandomDensity = randomPattern, 20, 20, 0.5

	reseed := reseeder(config)
	first, err := reseed()
	require.NoError(t, err)
	second, err := reseed()
	require.NoError(t, err)
	assert.NotEqual(t, first.Hash(), second.Hash())
}
