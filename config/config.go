// Package config loads lanelife settings.
//
// Priority: environment > file > defaults. Files are YAML.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/sbl8/lanelife/kernels"
	"github.com/sbl8/lanelife/life"
)

// Config is the top-level configuration.
type Config struct {
	// Board is the grid size of every simulated board.
	Board BoardConfig `yaml:"board"`

	// Run controls how many boards advance and for how long.
	Run RunConfig `yaml:"run"`

	// Log controls the slog handler.
	Log LogConfig `yaml:"log"`

	// Metrics controls the Prometheus endpoint.
	Metrics MetricsConfig `yaml:"metrics"`
}

// BoardConfig is the grid size.
type BoardConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// RunConfig controls a simulation batch.
type RunConfig struct {
	Generations int    `yaml:"generations"`
	Boards      int    `yaml:"boards"`
	Workers     int    `yaml:"workers"`
	Seed        uint64 `yaml:"seed"`
	Kernel      string `yaml:"kernel"`
}

// LogConfig selects log level and format.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// MetricsConfig holds the metrics listen address. Empty disables serving.
type MetricsConfig struct {
	Addr string `yaml:"addr"`
}

// Default returns the default configuration.
func Default() Config {
	return Config{
		Board: BoardConfig{
			Width:  256,
			Height: 256,
		},
		Run: RunConfig{
			Generations: 100,
			Boards:      1,
			Workers:     0, // GOMAXPROCS
			Seed:        1,
			Kernel:      kernels.Default,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads configuration from path, which may be empty, and applies
// environment overrides.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		if err := loadFile(path, &cfg); err != nil {
			return cfg, fmt.Errorf("load config file: %w", err)
		}
	}

	if err := loadEnv(&cfg); err != nil {
		return cfg, fmt.Errorf("load config env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

func loadEnv(cfg *Config) error {
	ints := []struct {
		key string
		dst *int
	}{
		{"LANELIFE_WIDTH", &cfg.Board.Width},
		{"LANELIFE_HEIGHT", &cfg.Board.Height},
		{"LANELIFE_GENERATIONS", &cfg.Run.Generations},
		{"LANELIFE_BOARDS", &cfg.Run.Boards},
		{"LANELIFE_WORKERS", &cfg.Run.Workers},
	}
	for _, e := range ints {
		v := os.Getenv(e.key)
		if v == "" {
			continue
		}
		i, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", e.key, err)
		}
		*e.dst = i
	}

	if v := os.Getenv("LANELIFE_SEED"); v != "" {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return fmt.Errorf("LANELIFE_SEED: %w", err)
		}
		cfg.Run.Seed = seed
	}
	if v := os.Getenv("LANELIFE_KERNEL"); v != "" {
		cfg.Run.Kernel = v
	}
	if v := os.Getenv("LANELIFE_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("LANELIFE_LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
	if v := os.Getenv("LANELIFE_METRICS_ADDR"); v != "" {
		cfg.Metrics.Addr = v
	}
	return nil
}

// Validate checks the configuration for values no run could use.
func (c Config) Validate() error {
	var errs []error
	if c.Board.Width < life.MinWidth {
		errs = append(errs, fmt.Errorf("board.width must be >= %d, got %d", life.MinWidth, c.Board.Width))
	}
	if c.Board.Height < life.MinHeight {
		errs = append(errs, fmt.Errorf("board.height must be >= %d, got %d", life.MinHeight, c.Board.Height))
	}
	if c.Run.Generations < 0 {
		errs = append(errs, fmt.Errorf("run.generations must be >= 0, got %d", c.Run.Generations))
	}
	if c.Run.Boards < 1 {
		errs = append(errs, fmt.Errorf("run.boards must be >= 1, got %d", c.Run.Boards))
	}
	if c.Run.Workers < 0 {
		errs = append(errs, fmt.Errorf("run.workers must be >= 0, got %d", c.Run.Workers))
	}
	if _, err := kernels.Lookup(c.Run.Kernel); err != nil {
		errs = append(errs, err)
	}
	if _, err := parseLevel(c.Log.Level); err != nil {
		errs = append(errs, err)
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("log.format must be text or json, got %q", c.Log.Format))
	}
	return errors.Join(errs...)
}
