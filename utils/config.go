package utils

import (
	"encoding/json"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
)

// EnvPrefix prefixes every environment variable that overrides the configuration
const EnvPrefix = "LIFEGRID_"

// Duration is a time.Duration that reads and writes as a string such as "800ms" in JSON
type Duration time.Duration

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

func (d *Duration) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		// plain numbers are nanoseconds
		var n int64
		if nerr := json.Unmarshal(data, &n); nerr != nil {
			return errors.Wrapf(err, "[Duration.UnmarshalJSON] invalid duration: %s", data)
		}
		*d = Duration(n)
		return nil
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return errors.Wrapf(err, "[Duration.UnmarshalJSON] invalid duration: %+v", s)
	}
	*d = Duration(parsed)
	return nil
}

// Config holds the configuration for a simulation run
type Config struct {
	Pattern       string  `json:"pattern"`
	SeedFile      string  `json:"seed_file"`
	Seed          [][]int `json:"seed,omitempty"`
	Rows          int     `json:"rows"`
	Cols          int     `json:"cols"`
	RandomDensity float64 `json:"random_density"`
	RandomSeed    int64   `json:"random_seed"`

	FrameInterval  Duration `json:"frame_interval"`
	MaxGenerations int      `json:"max_generations"`
	StopWhenStable bool     `json:"stop_when_stable"`
	HistoryDepth   int      `json:"history_depth"`

	ClearScreen bool `json:"clear_screen"`
	Color       bool `json:"color"`
	Interactive bool `json:"interactive"`

	LogLevel  string `json:"log_level"`
	LogFormat string `json:"log_format"`
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Pattern:        "pentadecathlon",
		RandomDensity:  0.15,
		RandomSeed:     42,
		FrameInterval:  Duration(800 * time.Millisecond),
		MaxGenerations: 0, // run until interrupted
		StopWhenStable: false,
		HistoryDepth:   5,
		ClearScreen:    true,
		Color:          false,
		Interactive:    false,
		LogLevel:       "info",
		LogFormat:      "text",
	}
}

// LoadConfig loads configuration from JSON file on top of the defaults
func LoadConfig(filename string) (Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(filename)
	if err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] failed to read file: %+v", filename)
	}

	if err = json.Unmarshal(data, &config); err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] failed to unmarshal data from file: %+v", filename)
	}

	return config, nil
}

// LoadDotEnv loads variables from the given .env files into the process environment.
// Missing files are skipped; existing environment variables are never overwritten.
func LoadDotEnv(filenames ...string) error {
	for _, filename := range filenames {
		if _, err := os.Stat(filename); os.IsNotExist(err) {
			continue
		}
		if err := godotenv.Load(filename); err != nil {
			return errors.Wrapf(err, "[LoadDotEnv] failed to load file: %+v", filename)
		}
	}
	return nil
}

// ApplyEnv overrides configuration fields from LIFEGRID_* variables found through lookup
func (c *Config) ApplyEnv(lookup func(key string) (string, bool)) error {
	str := func(name string, dst *string) {
		if v, ok := lookup(EnvPrefix + name); ok {
			*dst = v
		}
	}
	integer := func(name string, dst *int) error {
		v, ok := lookup(EnvPrefix + name)
		if !ok {
			return nil
		}
		parsed, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return errors.Wrapf(err, "[ApplyEnv] invalid %s%s", EnvPrefix, name)
		}
		*dst = parsed
		return nil
	}
	boolean := func(name string, dst *bool) error {
		v, ok := lookup(EnvPrefix + name)
		if !ok {
			return nil
		}
		parsed, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return errors.Wrapf(err, "[ApplyEnv] invalid %s%s", EnvPrefix, name)
		}
		*dst = parsed
		return nil
	}

	str("PATTERN", &c.Pattern)
	str("SEED_FILE", &c.SeedFile)
	str("LOG_LEVEL", &c.LogLevel)
	str("LOG_FORMAT", &c.LogFormat)

	if v, ok := lookup(EnvPrefix + "FRAME_INTERVAL"); ok {
		parsed, err := time.ParseDuration(strings.TrimSpace(v))
		if err != nil {
			return errors.Wrapf(err, "[ApplyEnv] invalid %sFRAME_INTERVAL", EnvPrefix)
		}
		c.FrameInterval = Duration(parsed)
	}
	if v, ok := lookup(EnvPrefix + "RANDOM_DENSITY"); ok {
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return errors.Wrapf(err, "[ApplyEnv] invalid %sRANDOM_DENSITY", EnvPrefix)
		}
		c.RandomDensity = parsed
	}

	for name, dst := range map[string]*int{
		"ROWS":            &c.Rows,
		"COLS":            &c.Cols,
		"MAX_GENERATIONS": &c.MaxGenerations,
		"HISTORY_DEPTH":   &c.HistoryDepth,
	} {
		if err := integer(name, dst); err != nil {
			return err
		}
	}
	for name, dst := range map[string]*bool{
		"STOP_WHEN_STABLE": &c.StopWhenStable,
		"CLEAR_SCREEN":     &c.ClearScreen,
		"COLOR":            &c.Color,
		"INTERACTIVE":      &c.Interactive,
	} {
		if err := boolean(name, dst); err != nil {
			return err
		}
	}
	return nil
}

// Validate reports the first invalid setting
func (c Config) Validate() error {
	switch {
	case c.FrameInterval <= 0:
		return errors.Errorf("[Validate] frame_interval must be positive, got %v", time.Duration(c.FrameInterval))
	case c.MaxGenerations < 0:
		return errors.Errorf("[Validate] max_generations must not be negative, got %d", c.MaxGenerations)
	case c.HistoryDepth < 0:
		return errors.Errorf("[Validate] history_depth must not be negative, got %d", c.HistoryDepth)
	case c.RandomDensity < 0 || c.RandomDensity > 1:
		return errors.Errorf("[Validate] random_density must be within [0,1], got %v", c.RandomDensity)
	case c.Rows < 0 || c.Cols < 0:
		return errors.Errorf("[Validate] rows and cols must not be negative, got %dx%d", c.Rows, c.Cols)
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return errors.Errorf("[Validate] log_level must be one of debug, info, warn, error, got %q", c.LogLevel)
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return errors.Errorf("[Validate] log_format must be text or json, got %q", c.LogFormat)
	}
	return nil
}
