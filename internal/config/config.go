// Package config holds the tunable repair and grouping thresholds,
// loadable from a TOML file so tuning does not require a rebuild.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/askhade/lekha/internal/cue"
	"github.com/askhade/lekha/internal/segment"
)

// Normalize carries the per-granularity sequence repair constants.
type Normalize struct {
	BackTolerance   float64 `toml:"back_tolerance"`
	MinDuration     float64 `toml:"min_duration"`
	MaxDuration     float64 `toml:"max_duration"`
	ClampedDuration float64 `toml:"clamped_duration"`
}

// Grouping carries the caption grouping heuristics.
type Grouping struct {
	PauseGap float64 `toml:"pause_gap"`
	MaxChars int     `toml:"max_chars"`
	SoftGap  float64 `toml:"soft_gap"`
}

// Config is the full threshold file.
type Config struct {
	Line     Normalize `toml:"line"`
	Word     Normalize `toml:"word"`
	Grouping Grouping  `toml:"grouping"`
}

// Default mirrors the built-in constants of the segment and cue
// packages.
func Default() Config {
	line := segment.DefaultLimits(segment.Line)
	word := segment.DefaultLimits(segment.Word)
	th := cue.DefaultThresholds()
	return Config{
		Line:     fromLimits(line),
		Word:     fromLimits(word),
		Grouping: Grouping{PauseGap: th.PauseGap, MaxChars: th.MaxChars, SoftGap: th.SoftGap},
	}
}

// Load reads a TOML threshold file, keeping defaults for any table the
// file omits. A missing path is not an error; Default is returned.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, fmt.Errorf("config file not found: %s", path)
		}
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	for _, n := range []Normalize{c.Line, c.Word} {
		if n.MinDuration <= 0 {
			return fmt.Errorf("min_duration must be positive, got %v", n.MinDuration)
		}
		if n.BackTolerance < 0 {
			return fmt.Errorf("back_tolerance must not be negative, got %v", n.BackTolerance)
		}
	}
	if c.Grouping.MaxChars <= 0 {
		return fmt.Errorf("grouping max_chars must be positive, got %d", c.Grouping.MaxChars)
	}
	return nil
}

// Limits converts the granularity's table to segment repair constants.
func (c Config) Limits(g segment.Granularity) segment.Limits {
	n := c.Line
	if g == segment.Word {
		n = c.Word
	}
	return segment.Limits{
		BackTolerance:   n.BackTolerance,
		MinDuration:     n.MinDuration,
		MaxDuration:     n.MaxDuration,
		ClampedDuration: n.ClampedDuration,
	}
}

// Thresholds converts the grouping table to cue thresholds.
func (c Config) Thresholds() cue.Thresholds {
	return cue.Thresholds{
		PauseGap: c.Grouping.PauseGap,
		MaxChars: c.Grouping.MaxChars,
		SoftGap:  c.Grouping.SoftGap,
	}
}

func fromLimits(l segment.Limits) Normalize {
	return Normalize{
		BackTolerance:   l.BackTolerance,
		MinDuration:     l.MinDuration,
		MaxDuration:     l.MaxDuration,
		ClampedDuration: l.ClampedDuration,
	}
}
