// Package config loads settings shared by the gridpath binaries.
//
// Precedence, lowest first: built-in defaults, an optional YAML file, the
// PORT environment variable (server address only), then command-line flags
// applied by the caller.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig classifies every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// Error wraps a load or validation failure with the file it came from.
type Error struct {
	Op   string
	Path string
	Err  error
}

func (e *Error) Error() string {
	base := e.Op
	if e.Path != "" {
		base += fmt.Sprintf(" (path=%s)", e.Path)
	}
	if e.Err != nil {
		base += fmt.Sprintf(": %v", e.Err)
	}
	return base
}

func (e *Error) Unwrap() error { return e.Err }

type Config struct {
	Grid   GridConfig   `yaml:"grid"`
	Server ServerConfig `yaml:"server"`
	Log    LogConfig    `yaml:"log"`
	Search SearchConfig `yaml:"search"`
}

type GridConfig struct {
	Rows int `yaml:"rows"`
	Cols int `yaml:"cols"`
	// MaxCells bounds grids created through the server; 0 disables the limit.
	MaxCells int `yaml:"max_cells"`
}

type ServerConfig struct {
	Addr string `yaml:"addr"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type SearchConfig struct {
	// Workers is the SearchAll pool size; 0 means one per CPU.
	Workers int `yaml:"workers"`
}

// Default mirrors the original demo: a 10×10 grid.
func Default() Config {
	return Config{
		Grid:   GridConfig{Rows: 10, Cols: 10, MaxCells: 1 << 20},
		Server: ServerConfig{Addr: ":8080"},
		Log:    LogConfig{Level: "info", Format: "text"},
	}
}

// Load reads path over the defaults. An empty path skips the file.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return Config{}, &Error{Op: "config.load", Path: path, Err: err}
		}
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return Config{}, &Error{Op: "config.load", Path: path, Err: fmt.Errorf("%w: %v", ErrInvalidConfig, err)}
		}
	}

	if port := os.Getenv("PORT"); port != "" {
		cfg.Server.Addr = ":" + port
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, &Error{Op: "config.validate", Path: path, Err: err}
	}
	return cfg, nil
}

// Validate checks the ranges and enumerations.
func (c Config) Validate() error {
	var errs []error
	if c.Grid.Rows < 0 || c.Grid.Cols < 0 {
		errs = append(errs, fmt.Errorf("%w: grid dimensions must be non-negative (rows=%d cols=%d)", ErrInvalidConfig, c.Grid.Rows, c.Grid.Cols))
	}
	if c.Grid.MaxCells < 0 {
		errs = append(errs, fmt.Errorf("%w: grid.max_cells must be non-negative", ErrInvalidConfig))
	}
	if c.Grid.MaxCells > 0 && c.Grid.Rows > 0 && c.Grid.Cols > c.Grid.MaxCells/c.Grid.Rows {
		errs = append(errs, fmt.Errorf("%w: default grid %d×%d exceeds grid.max_cells=%d", ErrInvalidConfig, c.Grid.Rows, c.Grid.Cols, c.Grid.MaxCells))
	}
	if c.Search.Workers < 0 {
		errs = append(errs, fmt.Errorf("%w: search.workers must be non-negative", ErrInvalidConfig))
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("%w: log.format %q (want text or json)", ErrInvalidConfig, c.Log.Format))
	}
	switch strings.ToLower(c.Log.Level) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal", "panic":
	default:
		errs = append(errs, fmt.Errorf("%w: log.level %q", ErrInvalidConfig, c.Log.Level))
	}
	return errors.Join(errs...)
}
