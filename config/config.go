package config

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/tsawler/gridmark/detect"
)

const (
	// Default detector thresholds.
	DefaultInkThreshold    = 128
	DefaultMinLineFraction = 0.4
	DefaultMinSpacingPx    = 5

	// EnvPrefix is the prefix for environment variable overrides, e.g.
	// GRIDMARK_INK_THRESHOLD.
	EnvPrefix = "GRIDMARK"
)

// Settings holds the tunable extraction parameters.
type Settings struct {
	// InkThreshold is the grayscale cutoff below which a pixel counts
	// as ink (0-255).
	InkThreshold int

	// MinLineFraction is the fraction of a region a line must span to
	// be detected (0-1).
	MinLineFraction float64

	// MinSpacingPx is the minimum pixel spacing between distinct
	// detected lines.
	MinSpacingPx int
}

// DefaultSettings returns the built-in defaults.
func DefaultSettings() Settings {
	return Settings{
		InkThreshold:    DefaultInkThreshold,
		MinLineFraction: DefaultMinLineFraction,
		MinSpacingPx:    DefaultMinSpacingPx,
	}
}

// Load resolves settings from defaults, the environment, and an
// optional config file, in ascending precedence. An empty path skips
// the file layer.
func Load(path string) (Settings, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	v.SetDefault("ink_threshold", DefaultInkThreshold)
	v.SetDefault("min_line_fraction", DefaultMinLineFraction)
	v.SetDefault("min_spacing_px", DefaultMinSpacingPx)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Settings{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	s := Settings{
		InkThreshold:    v.GetInt("ink_threshold"),
		MinLineFraction: v.GetFloat64("min_line_fraction"),
		MinSpacingPx:    v.GetInt("min_spacing_px"),
	}
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// Validate checks that every setting is in its legal range.
func (s Settings) Validate() error {
	if s.InkThreshold < 0 || s.InkThreshold > 255 {
		return fmt.Errorf("ink_threshold must be in [0,255], got %d", s.InkThreshold)
	}
	if s.MinLineFraction <= 0 || s.MinLineFraction > 1 {
		return fmt.Errorf("min_line_fraction must be in (0,1], got %v", s.MinLineFraction)
	}
	if s.MinSpacingPx < 1 {
		return fmt.Errorf("min_spacing_px must be positive, got %d", s.MinSpacingPx)
	}
	return nil
}

// DetectorConfig maps the settings onto detector thresholds.
func (s Settings) DetectorConfig() detect.Config {
	cfg := detect.DefaultConfig()
	cfg.InkThreshold = uint8(s.InkThreshold)
	cfg.MinLineFraction = s.MinLineFraction
	cfg.MinSpacingPx = s.MinSpacingPx
	return cfg
}
