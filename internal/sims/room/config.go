package room

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"roomsim/internal/core"
)

// ErrInvalidConfig wraps every configuration validation failure.
var ErrInvalidConfig = errors.New("invalid room config")

// Config is the parameter record for a single run.
type Config struct {
	// DirtFraction is the share of tiles that start dirty, in [0, 1].
	DirtFraction float64 `json:"dirt" yaml:"dirt"`
	Width        int     `json:"width" yaml:"width"`
	Height       int     `json:"height" yaml:"height"`
	// MaxSteps caps the run length.
	MaxSteps int `json:"steps" yaml:"steps"`
	Cleaners int `json:"cleaners" yaml:"cleaners"`

	Seed int64 `json:"seed" yaml:"seed"`

	// Start is the cell every cleaner starts on. Nil selects (1,1), pulled
	// back onto the grid when it is narrower or shorter than two cells.
	Start *core.Pos `json:"start,omitempty" yaml:"start,omitempty"`
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		DirtFraction: 0.2,
		Width:        10,
		Height:       10,
		MaxSteps:     500,
		Cleaners:     100,
		Seed:         42,
	}
}

// TotalTiles is the number of tiles, one per cell.
func (c Config) TotalTiles() int { return c.Width * c.Height }

// InitialDirty is the number of tiles that start dirty.
func (c Config) InitialDirty() int {
	return int(float64(c.TotalTiles()) * c.DirtFraction)
}

// StartPos resolves the cleaners' starting cell.
func (c Config) StartPos() core.Pos {
	if c.Start != nil {
		return *c.Start
	}
	return core.Pos{X: min(1, c.Width-1), Y: min(1, c.Height-1)}
}

// Validate reports every problem with the configuration at once.
func (c Config) Validate() error {
	var errs []error
	bad := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidConfig}, args...)...))
	}
	if c.Width <= 0 {
		bad("width must be positive, got %d", c.Width)
	}
	if c.Height <= 0 {
		bad("height must be positive, got %d", c.Height)
	}
	if c.Width > 0 && c.Height > 0 && c.Width > core.MaxCells/c.Height {
		bad("room %dx%d exceeds %d cells", c.Width, c.Height, core.MaxCells)
	}
	if c.MaxSteps <= 0 {
		bad("steps must be positive, got %d", c.MaxSteps)
	}
	if c.Cleaners < 0 {
		bad("cleaners must not be negative, got %d", c.Cleaners)
	}
	if math.IsNaN(c.DirtFraction) || c.DirtFraction < 0 || c.DirtFraction > 1 {
		bad("dirt must be within [0,1], got %v", c.DirtFraction)
	}
	if c.Start != nil && c.Width > 0 && c.Height > 0 {
		s := *c.Start
		if s.X < 0 || s.X >= c.Width || s.Y < 0 || s.Y >= c.Height {
			bad("start (%d,%d) outside %dx%d grid", s.X, s.Y, c.Width, c.Height)
		}
	}
	return errors.Join(errs...)
}

// FromMap populates the config from a string map (flag-style key/value
// pairs). Unknown keys are ignored; malformed values are errors.
func FromMap(cfg map[string]string) (Config, error) {
	c := DefaultConfig()
	if cfg == nil {
		return c, nil
	}
	var errs []error
	parseInt := func(key string, dst *int) {
		v, ok := cfg[key]
		if !ok {
			return
		}
		parsed, err := strconv.Atoi(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("%w: %s=%q is not an integer", ErrInvalidConfig, key, v))
			return
		}
		*dst = parsed
	}

	parseInt("w", &c.Width)
	parseInt("h", &c.Height)
	parseInt("steps", &c.MaxSteps)
	parseInt("cleaners", &c.Cleaners)
	if v, ok := cfg["dirt"]; ok {
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil {
			errs = append(errs, fmt.Errorf("%w: dirt=%q is not a number", ErrInvalidConfig, v))
		} else {
			c.DirtFraction = parsed
		}
	}
	if v, ok := cfg["seed"]; ok {
		parsed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			errs = append(errs, fmt.Errorf("%w: seed=%q is not an integer", ErrInvalidConfig, v))
		} else {
			c.Seed = parsed
		}
	}
	_, hasX := cfg["start_x"]
	_, hasY := cfg["start_y"]
	if hasX || hasY {
		start := c.StartPos()
		parseInt("start_x", &start.X)
		parseInt("start_y", &start.Y)
		c.Start = &start
	}
	return c, errors.Join(errs...)
}

// LoadConfig reads a YAML parameter file. Fields missing from the file keep
// their defaults.
func LoadConfig(path string) (Config, error) {
	c := DefaultConfig()
	raw, err := os.ReadFile(path)
	if err != nil {
		return c, err
	}
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return c, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}
