package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig marks a configuration rejected before any sequence work
// begins.
var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	ShortDir    string
	LongDir     string
	AudioPath   string
	OutputVideo string

	// Timing knobs for the sequence builder.
	LongDuration       float64
	ShortStartDuration float64
	ShortEndDuration   float64
	ShortAcceleration  float64

	Width  int
	Height int
	FPS    int
	DPI    int

	Workers      int
	VideoEncoder string
	Quality      int

	PlanInput  string
	PlanOutput string
	QRLink     string

	ShowStats    bool
	BuildVersion string
}

// Preset is the YAML shape of a timing preset file. Zero values mean "keep
// the current value".
type Preset struct {
	LongDuration       float64 `yaml:"long_duration"`
	ShortStartDuration float64 `yaml:"short_start_duration"`
	ShortEndDuration   float64 `yaml:"short_end_duration"`
	ShortAcceleration  float64 `yaml:"short_acceleration"`
	Width              int     `yaml:"width"`
	Height             int     `yaml:"height"`
	FPS                int     `yaml:"fps"`
}

// Validate rejects non-positive timing parameters once, before any sequence
// work begins.
func (c *Config) Validate() error {
	if c.LongDuration <= 0 {
		return fmt.Errorf("%w: long duration must be positive, got %f", ErrInvalidConfig, c.LongDuration)
	}
	if c.ShortStartDuration <= 0 {
		return fmt.Errorf("%w: short start duration must be positive, got %f", ErrInvalidConfig, c.ShortStartDuration)
	}
	if c.ShortEndDuration <= 0 {
		return fmt.Errorf("%w: short end duration must be positive, got %f", ErrInvalidConfig, c.ShortEndDuration)
	}
	if c.ShortAcceleration <= 0 {
		return fmt.Errorf("%w: short acceleration must be positive, got %f", ErrInvalidConfig, c.ShortAcceleration)
	}
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: frame size must be positive, got %dx%d", ErrInvalidConfig, c.Width, c.Height)
	}
	return nil
}

// ApplyPreset overlays non-zero values from a YAML preset file.
func (c *Config) ApplyPreset(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var p Preset
	if err := yaml.Unmarshal(data, &p); err != nil {
		return fmt.Errorf("parse preset %s: %w", path, err)
	}

	if p.LongDuration > 0 {
		c.LongDuration = p.LongDuration
	}
	if p.ShortStartDuration > 0 {
		c.ShortStartDuration = p.ShortStartDuration
	}
	if p.ShortEndDuration > 0 {
		c.ShortEndDuration = p.ShortEndDuration
	}
	if p.ShortAcceleration > 0 {
		c.ShortAcceleration = p.ShortAcceleration
	}
	if p.Width > 0 {
		c.Width = p.Width
	}
	if p.Height > 0 {
		c.Height = p.Height
	}
	if p.FPS > 0 {
		c.FPS = p.FPS
	}
	return nil
}
