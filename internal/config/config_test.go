package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func validConfig() *Config {
	return &Config{
		LongDuration:       3.0,
		ShortStartDuration: 0.5,
		ShortEndDuration:   0.1,
		ShortAcceleration:  1.0,
		Width:              1920,
		Height:             1080,
	}
}

func TestValidate(t *testing.T) {
	if err := validConfig().Validate(); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero long duration", func(c *Config) { c.LongDuration = 0 }},
		{"negative short start", func(c *Config) { c.ShortStartDuration = -0.5 }},
		{"zero short end", func(c *Config) { c.ShortEndDuration = 0 }},
		{"negative acceleration", func(c *Config) { c.ShortAcceleration = -1 }},
		{"zero width", func(c *Config) { c.Width = 0 }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := validConfig()
			tc.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestApplyPreset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "preset.yaml")
	data := []byte("long_duration: 5.0\nshort_start_duration: 1.5\nfps: 24\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg := validConfig()
	cfg.FPS = 30
	if err := cfg.ApplyPreset(path); err != nil {
		t.Fatalf("ApplyPreset failed: %v", err)
	}

	if cfg.LongDuration != 5.0 {
		t.Errorf("long duration not applied: %f", cfg.LongDuration)
	}
	if cfg.ShortStartDuration != 1.5 {
		t.Errorf("short start not applied: %f", cfg.ShortStartDuration)
	}
	if cfg.FPS != 24 {
		t.Errorf("fps not applied: %d", cfg.FPS)
	}
	// Fields absent from the preset keep their values.
	if cfg.ShortEndDuration != 0.1 {
		t.Errorf("short end should be untouched: %f", cfg.ShortEndDuration)
	}
}

func TestApplyPresetMissingFile(t *testing.T) {
	cfg := validConfig()
	if err := cfg.ApplyPreset(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing preset file")
	}
}
