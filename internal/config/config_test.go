package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Window.Width != 640 {
		t.Errorf("expected width 640, got %d", cfg.Window.Width)
	}
	if cfg.Window.Height != 360 {
		t.Errorf("expected height 360, got %d", cfg.Window.Height)
	}
	if !cfg.Window.VSync {
		t.Error("expected vsync to be true by default")
	}

	if cfg.Editor.PlaybackInterval != 150*time.Millisecond {
		t.Errorf("expected playback interval 150ms, got %v", cfg.Editor.PlaybackInterval)
	}
	if !cfg.Editor.ConfirmDestructive {
		t.Error("expected confirm_destructive to be true by default")
	}

	if cfg.Export.Scale != 1 {
		t.Errorf("expected export scale 1, got %d", cfg.Export.Scale)
	}
	if !cfg.Session.Enabled {
		t.Error("expected session persistence to be enabled by default")
	}

	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "" {
		t.Errorf("expected empty log file, got %s", cfg.Logging.LogFile)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("expected defaults to validate, got %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
window:
  width: 1024
  height: 600
  vsync: false

editor:
  playback_interval: 80ms
  confirm_destructive: false

export:
  scale: 8

session:
  enabled: false
  path: /tmp/pxref-session.json.gz

logging:
  level: "debug"
  log_file: "pxref.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Window.Width != 1024 || cfg.Window.Height != 600 {
		t.Errorf("expected 1024x600, got %dx%d", cfg.Window.Width, cfg.Window.Height)
	}
	if cfg.Window.VSync {
		t.Error("expected vsync to be false")
	}
	if cfg.Editor.PlaybackInterval != 80*time.Millisecond {
		t.Errorf("expected 80ms, got %v", cfg.Editor.PlaybackInterval)
	}
	if cfg.Editor.ConfirmDestructive {
		t.Error("expected confirm_destructive to be false")
	}
	if cfg.Export.Scale != 8 {
		t.Errorf("expected scale 8, got %d", cfg.Export.Scale)
	}
	if cfg.Session.Enabled {
		t.Error("expected session to be disabled")
	}
	if cfg.SessionPath() != "/tmp/pxref-session.json.gz" {
		t.Errorf("expected explicit session path, got %s", cfg.SessionPath())
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "pxref.log" {
		t.Errorf("expected log file 'pxref.log', got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFilePartial(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte("export:\n  scale: 2\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if cfg.Export.Scale != 2 {
		t.Errorf("expected scale 2, got %d", cfg.Export.Scale)
	}
	if cfg.Window.Width != 640 {
		t.Errorf("expected untouched width 640, got %d", cfg.Window.Width)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "invalid.yaml")

	invalidYAML := `
window:
  width: not a number
  invalid syntax here
`
	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	if err := loadFromFile(cfg, "/nonexistent/path/config.yaml"); err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"zero width", func(c *Config) { c.Window.Width = 0 }},
		{"zero scale", func(c *Config) { c.Export.Scale = 0 }},
		{"huge scale", func(c *Config) { c.Export.Scale = 65 }},
		{"zero interval", func(c *Config) { c.Editor.PlaybackInterval = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()
	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}
	if !strings.Contains(strings.ToLower(dir), "pxref") {
		t.Errorf("expected pxref in config dir, got %s", dir)
	}
}

func TestSessionPathDefault(t *testing.T) {
	cfg := Default()
	if filepath.Base(cfg.SessionPath()) != "session.json.gz" {
		t.Errorf("expected session.json.gz, got %s", cfg.SessionPath())
	}
}

func TestFindConfigFile(t *testing.T) {
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	tmpDir := t.TempDir()
	os.Chdir(tmpDir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "xdg"))

	if path := findConfigFile(); path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	configPath := filepath.Join(tmpDir, "pxref.yaml")
	if err := os.WriteFile(configPath, []byte("window:\n  width: 800\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	if path := findConfigFile(); path == "" {
		t.Error("expected to find pxref.yaml in current directory")
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*Config)
		teardown func()
	}{
		{
			name:  "debug flag",
			setup: func() { *flagDebug = true },
			verify: func(cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
			teardown: func() { *flagDebug = false },
		},
		{
			name:  "startup files",
			setup: func() { *flagPalette = "p.png"; *flagRefs = "walk.pxref" },
			verify: func(cfg *Config) {
				if cfg.OpenPalette != "p.png" || cfg.OpenRefs != "walk.pxref" {
					t.Errorf("expected startup files, got %q %q", cfg.OpenPalette, cfg.OpenRefs)
				}
			},
			teardown: func() { *flagPalette = ""; *flagRefs = "" },
		},
		{
			name:  "scale flag",
			setup: func() { *flagScale = 4 },
			verify: func(cfg *Config) {
				if cfg.Export.Scale != 4 {
					t.Errorf("expected scale 4, got %d", cfg.Export.Scale)
				}
			},
			teardown: func() { *flagScale = 0 },
		},
		{
			name:  "no-session flag",
			setup: func() { *flagNoSession = true },
			verify: func(cfg *Config) {
				if cfg.Session.Enabled {
					t.Error("expected session to be disabled")
				}
			},
			teardown: func() { *flagNoSession = false },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			defer tt.teardown()

			cfg := Default()
			applyFlags(cfg)
			tt.verify(cfg)
		})
	}
}

func TestSaveTo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.yaml")

	cfg := Default()
	cfg.Export.Scale = 3
	cfg.OpenRefs = "ignored.pxref"
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("failed to save config: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read saved config: %v", err)
	}
	if strings.Contains(string(data), "ignored.pxref") {
		t.Error("expected startup files to be excluded from YAML")
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("failed to reload config: %v", err)
	}
	if loaded.Export.Scale != 3 {
		t.Errorf("expected scale 3, got %d", loaded.Export.Scale)
	}
	if loaded.Editor.PlaybackInterval != 150*time.Millisecond {
		t.Errorf("expected interval to survive, got %v", loaded.Editor.PlaybackInterval)
	}
}
