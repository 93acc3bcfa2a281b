package config

import (
	"errors"
	"fmt"
	"os"
	"slices"

	"github.com/san-kum/chargefield/internal/electro"
	"github.com/san-kum/chargefield/internal/session"
	"github.com/san-kum/chargefield/internal/viz"
	"gopkg.in/yaml.v3"
)

const (
	DefaultPreset        = "dipole"
	DefaultTheme         = "cyberpunk"
	DefaultWidth         = 72
	DefaultHeight        = 28
	DefaultContourLevels = 20
	DefaultWorkers       = 4
)

// ErrInvalidConfig is wrapped by every validation and decode failure.
var ErrInvalidConfig = errors.New("config: invalid configuration")

type Config struct {
	Preset   string         `yaml:"preset,omitempty"`
	Charges  []ChargeConfig `yaml:"charges"`
	Grid     GridConfig     `yaml:"grid"`
	Controls ControlsConfig `yaml:"controls"`
	Render   RenderConfig   `yaml:"render"`
}

// ChargeConfig is one (magnitude in C, x, y in m) entry.
type ChargeConfig struct {
	Q float64 `yaml:"q"`
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

type GridConfig struct {
	Size   float64 `yaml:"size"`
	Points int     `yaml:"points"`
}

// ControlsConfig bounds the two sliders: magnitude in nC, position in m.
type ControlsConfig struct {
	MagnitudeMin float64 `yaml:"magnitude_min"`
	MagnitudeMax float64 `yaml:"magnitude_max"`
	XMin         float64 `yaml:"x_min"`
	XMax         float64 `yaml:"x_max"`
}

type RenderConfig struct {
	Theme         string `yaml:"theme"`
	Width         int    `yaml:"width"`
	Height        int    `yaml:"height"`
	ContourLevels int    `yaml:"contour_levels"`
	Workers       int    `yaml:"workers"`
}

func DefaultConfig() *Config {
	c := session.DefaultControls()
	return &Config{
		Preset:  DefaultPreset,
		Charges: GetPreset(DefaultPreset),
		Grid: GridConfig{
			Size:   electro.DefaultGridSize,
			Points: electro.DefaultGridPoints,
		},
		Controls: ControlsConfig{
			MagnitudeMin: c.MagnitudeMin,
			MagnitudeMax: c.MagnitudeMax,
			XMin:         c.XMin,
			XMax:         c.XMax,
		},
		Render: RenderConfig{
			Theme:         DefaultTheme,
			Width:         DefaultWidth,
			Height:        DefaultHeight,
			ContourLevels: DefaultContourLevels,
			Workers:       DefaultWorkers,
		},
	}
}

// Load reads a yaml file over the defaults. A file that names a preset but
// lists no charges takes the preset's charges; a file that names neither
// yields an empty charge set.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	cfg.Preset = ""
	cfg.Charges = nil
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidConfig, path, err)
	}
	if len(cfg.Charges) == 0 && cfg.Preset != "" {
		if err := cfg.ApplyPreset(cfg.Preset); err != nil {
			return nil, err
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ApplyPreset replaces the charge list with the named preset.
func (c *Config) ApplyPreset(name string) error {
	charges := GetPreset(name)
	if charges == nil {
		return fmt.Errorf("%w: unknown preset %q (available: %v)", ErrInvalidConfig, name, ListPresets())
	}
	c.Preset = name
	c.Charges = charges
	return nil
}

func (c *Config) Validate() error {
	for i, ch := range c.Charges {
		if err := electro.NewCharge(ch.Q, ch.X, ch.Y).Validate(); err != nil {
			return fmt.Errorf("%w: charges[%d]: %v", ErrInvalidConfig, i, err)
		}
	}
	if err := c.GridSpec().Validate(); err != nil {
		return fmt.Errorf("%w: grid: %v", ErrInvalidConfig, err)
	}
	if err := c.SessionControls().Validate(); err != nil {
		return fmt.Errorf("%w: controls: %v", ErrInvalidConfig, err)
	}
	if c.Render.Width < 8 || c.Render.Height < 4 {
		return fmt.Errorf("%w: render: canvas %dx%d too small", ErrInvalidConfig, c.Render.Width, c.Render.Height)
	}
	if !slices.Contains(viz.ThemeNames(), c.Render.Theme) {
		return fmt.Errorf("%w: render: unknown theme %q (available: %v)", ErrInvalidConfig, c.Render.Theme, viz.ThemeNames())
	}
	if c.Render.ContourLevels < 0 || c.Render.Workers < 0 {
		return fmt.Errorf("%w: render: negative contour_levels or workers", ErrInvalidConfig)
	}
	return nil
}

func (c *Config) ChargeList() []electro.Charge {
	out := make([]electro.Charge, len(c.Charges))
	for i, ch := range c.Charges {
		out[i] = electro.NewCharge(ch.Q, ch.X, ch.Y)
	}
	return out
}

func (c *Config) GridSpec() electro.GridSpec {
	return electro.GridSpec{Size: c.Grid.Size, Points: c.Grid.Points}
}

func (c *Config) SessionControls() session.Controls {
	return session.Controls{
		MagnitudeMin: c.Controls.MagnitudeMin,
		MagnitudeMax: c.Controls.MagnitudeMax,
		XMin:         c.Controls.XMin,
		XMax:         c.Controls.XMax,
	}
}
