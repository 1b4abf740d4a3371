// Package config provides configuration loading for the backdrop.
// It supports loading from YAML files and environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/olivierh59500/particle-backdrop/internal/logging"
	"github.com/olivierh59500/particle-backdrop/internal/palette"
	"gopkg.in/yaml.v3"
)

// Config contains all backdrop settings.
type Config struct {
	Window      WindowConfig      `yaml:"window"`
	Particles   ParticlesConfig   `yaml:"particles"`
	Connections ConnectionsConfig `yaml:"connections"`
	Palette     PaletteConfig     `yaml:"palette"`
	Backdrop    BackdropConfig    `yaml:"backdrop"`
	Logging     LoggingConfig     `yaml:"logging"`

	// Seed seeds the random source. Zero picks a seed from the clock.
	Seed int64 `yaml:"seed"`
}

// WindowConfig configures the surface and, for the window host, the window.
type WindowConfig struct {
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	Title     string `yaml:"title"`
	TPS       int    `yaml:"tps"`
	Resizable bool   `yaml:"resizable"`

	// Background is the color the surface is cleared to.
	Background string `yaml:"background"`
}

// ParticlesConfig configures particle creation.
type ParticlesConfig struct {
	// Divisor is the surface width per initial particle, and per unit of
	// connection distance.
	Divisor    float64 `yaml:"divisor"`
	MaxCount   int     `yaml:"max_count"`
	RadiusMin  float64 `yaml:"radius_min"`
	RadiusSpan float64 `yaml:"radius_span"`
	Speed      float64 `yaml:"speed"`
	ClickSpeed float64 `yaml:"click_speed"`
	ClickBurst int     `yaml:"click_burst"`
}

// ConnectionsConfig configures the lines between nearby particles.
type ConnectionsConfig struct {
	MaxDistance float64 `yaml:"max_distance"`
	MaxOpacity  float64 `yaml:"max_opacity"`
	LineWidth   float64 `yaml:"line_width"`
}

// PaletteConfig selects the theme. An empty Theme picks one at random.
type PaletteConfig struct {
	Theme string `yaml:"theme"`
}

// BackdropConfig configures the noise tint painted under the particles.
type BackdropConfig struct {
	Enabled  bool    `yaml:"enabled"`
	Scale    float64 `yaml:"scale"`
	Strength float64 `yaml:"strength"`
}

// LoggingConfig configures log verbosity.
type LoggingConfig struct {
	// Level is "info" (default), "debug", "trace", "warn" or "error".
	Level string `yaml:"level"`
}

// Default returns a Config with the stock backdrop settings.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Width:      1024,
			Height:     768,
			Title:      "Particle Backdrop",
			TPS:        60,
			Resizable:  true,
			Background: "#0B0C10",
		},
		Particles: ParticlesConfig{
			Divisor:    10,
			MaxCount:   100,
			RadiusMin:  1,
			RadiusSpan: 3,
			Speed:      0.5,
			ClickSpeed: 1,
			ClickBurst: 5,
		},
		Connections: ConnectionsConfig{
			MaxDistance: 100,
			MaxOpacity:  0.2,
			LineWidth:   0.5,
		},
		Backdrop: BackdropConfig{
			Enabled:  false,
			Scale:    0.004,
			Strength: 0.15,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// DefaultPath returns the per-user config file location.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "particle-backdrop", "config.yaml"), nil
}

// Load loads configuration from path, or from DefaultPath when path is
// empty and that file exists, then applies environment overrides.
// Order: defaults -> config file -> environment variables
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		if p, err := DefaultPath(); err == nil {
			if _, statErr := os.Stat(p); statErr == nil {
				path = p
			}
		}
	}

	if path != "" {
		fileConfig, err := LoadFromFile(path)
		if err != nil {
			return nil, fmt.Errorf("loading config file: %w", err)
		}
		cfg = fileConfig
	}

	applyEnvOverrides(cfg)

	return cfg, nil
}

// LoadFromFile loads configuration from a specific YAML file. Keys absent
// from the file keep their defaults.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}
	return cfg, nil
}

// Validate checks that the configuration is usable. It reports every
// problem found, not just the first.
func (c *Config) Validate() error {
	var errs []error

	if c.Window.Width < 0 || c.Window.Height < 0 {
		errs = append(errs, fmt.Errorf("window size must be non-negative, got %dx%d", c.Window.Width, c.Window.Height))
	}
	if c.Window.TPS <= 0 {
		errs = append(errs, fmt.Errorf("tps must be positive, got %d", c.Window.TPS))
	}
	if _, err := palette.ParseRGBA(c.Window.Background); err != nil {
		errs = append(errs, fmt.Errorf("invalid background: %w", err))
	}

	p := c.Particles
	if p.Divisor <= 0 {
		errs = append(errs, fmt.Errorf("divisor must be positive, got %v", p.Divisor))
	}
	if p.MaxCount < 0 {
		errs = append(errs, fmt.Errorf("max_count must be non-negative, got %d", p.MaxCount))
	}
	if p.RadiusMin <= 0 {
		errs = append(errs, fmt.Errorf("radius_min must be positive, got %v", p.RadiusMin))
	}
	if p.RadiusSpan < 0 {
		errs = append(errs, fmt.Errorf("radius_span must be non-negative, got %v", p.RadiusSpan))
	}
	if p.Speed < 0 || p.ClickSpeed < 0 {
		errs = append(errs, fmt.Errorf("speeds must be non-negative, got %v and %v", p.Speed, p.ClickSpeed))
	}
	if p.ClickBurst < 0 {
		errs = append(errs, fmt.Errorf("click_burst must be non-negative, got %d", p.ClickBurst))
	}

	l := c.Connections
	if l.MaxDistance < 0 {
		errs = append(errs, fmt.Errorf("max_distance must be non-negative, got %v", l.MaxDistance))
	}
	if l.MaxOpacity < 0 || l.MaxOpacity > 1 {
		errs = append(errs, fmt.Errorf("max_opacity must be between 0 and 1, got %v", l.MaxOpacity))
	}
	if l.LineWidth <= 0 {
		errs = append(errs, fmt.Errorf("line_width must be positive, got %v", l.LineWidth))
	}

	if c.Palette.Theme != "" {
		if _, err := palette.Lookup(c.Palette.Theme); err != nil {
			errs = append(errs, err)
		}
	}

	if c.Backdrop.Scale <= 0 {
		errs = append(errs, fmt.Errorf("backdrop scale must be positive, got %v", c.Backdrop.Scale))
	}
	if c.Backdrop.Strength < 0 || c.Backdrop.Strength > 1 {
		errs = append(errs, fmt.Errorf("backdrop strength must be between 0 and 1, got %v", c.Backdrop.Strength))
	}

	if !logging.ValidLevel(c.Logging.Level) {
		errs = append(errs, fmt.Errorf("invalid log level: %s (valid: info, debug, trace, warn, error)", c.Logging.Level))
	}

	return errors.Join(errs...)
}

// applyEnvOverrides applies environment variable overrides to the config.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("BACKDROP_WIDTH"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Window.Width = n
		}
	}
	if v := os.Getenv("BACKDROP_HEIGHT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Window.Height = n
		}
	}
	if v := os.Getenv("BACKDROP_THEME"); v != "" {
		cfg.Palette.Theme = v
	}
	if v := os.Getenv("BACKDROP_SEED"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.Seed = n
		}
	}
	if v := os.Getenv("BACKDROP_NOISE"); v != "" {
		cfg.Backdrop.Enabled = v == "true" || v == "1"
	}
	if v := os.Getenv("BACKDROP_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
}
