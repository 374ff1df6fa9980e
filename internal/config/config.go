// Package config handles editor configuration loading and management.
package config

import (
	"path/filepath"
	"time"
)

// Config holds all editor settings.
type Config struct {
	Window  WindowConfig  `yaml:"window"`
	Editor  EditorConfig  `yaml:"editor"`
	Export  ExportConfig  `yaml:"export"`
	Session SessionConfig `yaml:"session"`
	Logging LoggingConfig `yaml:"logging"`

	// Startup files from the command line, never read from YAML.
	OpenPalette string `yaml:"-"`
	OpenRefs    string `yaml:"-"`
}

// WindowConfig holds display settings.
type WindowConfig struct {
	Width  int  `yaml:"width"`
	Height int  `yaml:"height"`
	VSync  bool `yaml:"vsync"`
}

// EditorConfig holds editing behavior.
type EditorConfig struct {
	PlaybackInterval   time.Duration `yaml:"playback_interval"`
	ConfirmDestructive bool          `yaml:"confirm_destructive"`
}

// ExportConfig holds sprite strip export settings.
type ExportConfig struct {
	Scale int `yaml:"scale"` // nearest-neighbor upscale factor, 1 = native
}

// SessionConfig controls state persistence between runs.
type SessionConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"` // empty = ConfigDir()/session.json.gz
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Width:  640,
			Height: 360,
			VSync:  true,
		},
		Editor: EditorConfig{
			PlaybackInterval:   150 * time.Millisecond,
			ConfirmDestructive: true,
		},
		Export: ExportConfig{
			Scale: 1,
		},
		Session: SessionConfig{
			Enabled: true,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// SessionPath returns the session file location.
func (c *Config) SessionPath() string {
	if c.Session.Path != "" {
		return c.Session.Path
	}
	return filepath.Join(ConfigDir(), "session.json.gz")
}
