// SPDX-License-Identifier: MIT

// Package config loads the settings of the ziptie command from a YAML file,
// an optional .env file and ZIPTIE_* environment variables, in that order
// of increasing precedence.
package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/ziptie/logging"
	"github.com/katalvlaran/ziptie/ziptie"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("config: invalid")

// Environment variable names.
const (
	EnvName        = "ZIPTIE_NAME"
	EnvLevel       = "ZIPTIE_LEVEL"
	EnvMaxCables   = "ZIPTIE_MAX_CABLES"
	EnvInput       = "ZIPTIE_INPUT"
	EnvSnapshotDB  = "ZIPTIE_SNAPSHOT_PATH"
	EnvMovieStills = "ZIPTIE_MOVIE_STILLS"
)

// Config is the full command configuration.
type Config struct {
	Name              string   `yaml:"name"`
	Level             int      `yaml:"level"`
	MaxCables         int      `yaml:"max_cables"`
	ActivityThreshold float64  `yaml:"activity_threshold"`
	Input             string   `yaml:"input"`          // vector file; empty or "-" reads stdin
	DescribeEvery     int      `yaml:"describe_every"` // print the listing every N steps; 0 = only at the end
	Snapshot          Snapshot `yaml:"snapshot"`
	Movie             Movie    `yaml:"movie"`
}

// Snapshot configures the SQLite snapshot store.
type Snapshot struct {
	Path  string `yaml:"path"`  // database file; empty disables snapshots
	Every int    `yaml:"every"` // save every N steps; 0 = only at the end
}

// Movie configures rendering of a stills directory with ffmpeg.
type Movie struct {
	StillsDir string `yaml:"stills_dir"` // empty disables rendering
	Pattern   string `yaml:"pattern"`
	FPS       int    `yaml:"fps"`
	Output    string `yaml:"output"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Name:              ziptie.DefaultName,
		Level:             ziptie.DefaultLevel,
		MaxCables:         64,
		ActivityThreshold: ziptie.DefaultActivityThreshold,
		Input:             "-",
	}
}

// Load builds a Config from Default, the YAML file at path (skipped when
// path is empty), a .env file in the working directory if present, and
// ZIPTIE_* variables. The result is validated.
func Load(path string) (Config, error) {
	cfg, err := LoadUnvalidated(path)
	if err != nil {
		return Config{}, err
	}
	if err = cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// LoadUnvalidated is Load without the final Validate, for callers that
// apply further overrides (command-line flags) and validate afterwards.
// Malformed environment values are still reported.
func LoadUnvalidated(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}

	logging.Debug("config", "loaded name=%s level=%d max_cables=%d", cfg.Name, cfg.Level, cfg.MaxCables)
	return cfg, nil
}

// applyEnv overrides fields from ZIPTIE_* variables.
func (c *Config) applyEnv() error {
	if v := os.Getenv(EnvName); v != "" {
		c.Name = v
	}
	if v := os.Getenv(EnvInput); v != "" {
		c.Input = v
	}
	if v := os.Getenv(EnvSnapshotDB); v != "" {
		c.Snapshot.Path = v
	}
	if v := os.Getenv(EnvMovieStills); v != "" {
		c.Movie.StillsDir = v
	}
	for _, iv := range []struct {
		env string
		dst *int
	}{
		{EnvLevel, &c.Level},
		{EnvMaxCables, &c.MaxCables},
	} {
		v := os.Getenv(iv.env)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s=%q: %w", iv.env, v, ErrInvalid)
		}
		*iv.dst = n
	}

	return nil
}

// Validate checks the fields the engine and command rely on.
func (c Config) Validate() error {
	switch {
	case c.MaxCables <= 0:
		return fmt.Errorf("max_cables %d must be > 0: %w", c.MaxCables, ErrInvalid)
	case c.Level < 0:
		return fmt.Errorf("level %d must be >= 0: %w", c.Level, ErrInvalid)
	case math.IsNaN(c.ActivityThreshold) || c.ActivityThreshold < 0 || c.ActivityThreshold > 1:
		return fmt.Errorf("activity_threshold %v must be in [0,1]: %w", c.ActivityThreshold, ErrInvalid)
	case c.DescribeEvery < 0:
		return fmt.Errorf("describe_every %d must be >= 0: %w", c.DescribeEvery, ErrInvalid)
	case c.Snapshot.Every < 0:
		return fmt.Errorf("snapshot.every %d must be >= 0: %w", c.Snapshot.Every, ErrInvalid)
	case c.Movie.FPS < 0:
		return fmt.Errorf("movie.fps %d must be >= 0: %w", c.Movie.FPS, ErrInvalid)
	}

	return nil
}

// ZipTieOptions returns the engine options described by c.
func (c Config) ZipTieOptions() []ziptie.Option {
	return []ziptie.Option{
		ziptie.WithName(c.Name),
		ziptie.WithLevel(c.Level),
		ziptie.WithActivityThreshold(c.ActivityThreshold),
	}
}
