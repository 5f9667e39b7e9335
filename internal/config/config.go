// Package config loads settings from NEURON_* environment variables with an
// optional TOML file on top.
package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/kelseyhightower/envconfig"

	"github.com/wlmath-dwl/neuron/internal/engine"
)

const envPrefix = "NEURON"

// Hover modes.
const (
	HoverAuto = "auto"
	HoverOn   = "on"
	HoverOff  = "off"
)

type Config struct {
	Port           int    `envconfig:"PORT" default:"8080" toml:"port"`
	AllowedOrigins string `envconfig:"ALLOWED_ORIGINS" default:"localhost:5173,localhost:3000" toml:"allowed_origins"`
	LogLevel       string `envconfig:"LOG_LEVEL" default:"info" toml:"log_level"`

	UndoLimit int     `envconfig:"UNDO_LIMIT" default:"50" toml:"undo_limit"`
	ZoomStep  float64 `envconfig:"ZOOM_STEP" default:"0.05" toml:"zoom_step"`
	Density   float64 `envconfig:"DENSITY" default:"0.01" toml:"density"`
	// Debug draws the coordinate grid.
	Debug    bool     `envconfig:"DEBUG" default:"true" toml:"debug"`
	Hover    string   `envconfig:"HOVER" default:"auto" toml:"hover"`
	ViewDrag bool     `envconfig:"VIEW_DRAG" default:"true" toml:"view_drag"`
	Zoom     bool     `envconfig:"ZOOM" default:"true" toml:"zoom"`
	Layers   []string `envconfig:"LAYERS" default:"line,point" toml:"layers"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(envPrefix, &cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadFile loads the environment and then overlays the TOML file at path.
// Keys missing from the file keep their environment or default value.
func LoadFile(path string) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(envPrefix, &cfg); err != nil {
		return nil, err
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("load config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("load config %s: %w", path, err)
	}
	return &cfg, nil
}

// Validate rejects values the engine cannot run with.
func (c *Config) Validate() error {
	if c.UndoLimit <= 0 {
		return fmt.Errorf("undo limit must be positive, got %d", c.UndoLimit)
	}
	if c.ZoomStep <= 0 || c.ZoomStep >= 1 {
		return fmt.Errorf("zoom step must be in (0, 1), got %v", c.ZoomStep)
	}
	if c.Density <= 0 {
		return fmt.Errorf("density must be positive, got %v", c.Density)
	}
	switch c.Hover {
	case HoverAuto, HoverOn, HoverOff:
	default:
		return fmt.Errorf("hover must be %s, %s or %s, got %q", HoverAuto, HoverOn, HoverOff, c.Hover)
	}
	if len(c.Layers) == 0 {
		return fmt.Errorf("at least one layer is required")
	}
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	return nil
}

// SlogLevel returns the configured log level, info if it does not parse.
func (c *Config) SlogLevel() slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return l
}

// Origins returns the allowed websocket origin patterns.
func (c *Config) Origins() []string {
	var out []string
	for _, o := range strings.Split(c.AllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

// Engine maps the settings onto an engine configuration.
func (c *Config) Engine() engine.Config {
	ec := engine.DefaultConfig()
	ec.Zoom = c.Zoom
	ec.ViewDrag = c.ViewDrag
	ec.Debug = c.Debug
	ec.UndoLimit = c.UndoLimit
	ec.ZoomStep = c.ZoomStep
	ec.Density = c.Density
	ec.Layers = append([]string(nil), c.Layers...)
	switch c.Hover {
	case HoverOn:
		on := true
		ec.Hover = &on
	case HoverOff:
		off := false
		ec.Hover = &off
	}
	return ec
}

// EngineOptions returns the engine options for these settings.
func (c *Config) EngineOptions() []engine.Option {
	return []engine.Option{engine.WithConfig(c.Engine())}
}
