package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Graphics.Width != 1024 || cfg.Graphics.Height != 1024 {
		t.Errorf("expected 1024x1024, got %dx%d", cfg.Graphics.Width, cfg.Graphics.Height)
	}
	if cfg.Graphics.Fullscreen {
		t.Error("expected fullscreen to be false by default")
	}
	if cfg.Graphics.FOV != 45 || cfg.Graphics.Near != 0.1 || cfg.Graphics.Far != 100 {
		t.Errorf("unexpected projection %v/%v/%v", cfg.Graphics.FOV, cfg.Graphics.Near, cfg.Graphics.Far)
	}

	if cfg.Camera.MoveSpeed != 0.1 {
		t.Errorf("expected move speed 0.1, got %f", cfg.Camera.MoveSpeed)
	}
	if cfg.Camera.TurnSpeed != 0.05 {
		t.Errorf("expected turn speed 0.05, got %f", cfg.Camera.TurnSpeed)
	}
	if cfg.Camera.TickRate != 60 {
		t.Errorf("expected tick rate 60, got %d", cfg.Camera.TickRate)
	}
	if cfg.Camera.PitchLimit != 0 {
		t.Errorf("expected unlimited pitch, got %f", cfg.Camera.PitchLimit)
	}

	if cfg.Scene.Layout != "" {
		t.Errorf("expected built-in layout, got %s", cfg.Scene.Layout)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults do not validate: %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
graphics:
  width: 1920
  height: 1080
  fullscreen: true
  vsync: false
  fov: 60

camera:
  move_speed: 0.25
  tick_rate: 120
  pitch_limit: 89

scene:
  asset_dir: "textures"
  layout: "castle.yaml"

logging:
  level: "debug"
  log_file: "castle.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Graphics.Width != 1920 || cfg.Graphics.Height != 1080 {
		t.Errorf("expected 1920x1080, got %dx%d", cfg.Graphics.Width, cfg.Graphics.Height)
	}
	if !cfg.Graphics.Fullscreen {
		t.Error("expected fullscreen to be true")
	}
	if cfg.Graphics.VSync {
		t.Error("expected vsync to be false")
	}
	if cfg.Graphics.FOV != 60 {
		t.Errorf("expected fov 60, got %v", cfg.Graphics.FOV)
	}
	// Not in the file: default kept.
	if cfg.Graphics.Far != 100 {
		t.Errorf("expected default far 100, got %v", cfg.Graphics.Far)
	}

	if cfg.Camera.MoveSpeed != 0.25 || cfg.Camera.TickRate != 120 || cfg.Camera.PitchLimit != 89 {
		t.Errorf("unexpected camera config %+v", cfg.Camera)
	}
	if cfg.Camera.TurnSpeed != 0.05 {
		t.Errorf("expected default turn speed, got %v", cfg.Camera.TurnSpeed)
	}

	if cfg.Scene.AssetDir != "textures" || cfg.Scene.Layout != "castle.yaml" {
		t.Errorf("unexpected scene config %+v", cfg.Scene)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.LogFile != "castle.log" {
		t.Errorf("unexpected logging config %+v", cfg.Logging)
	}
}

func TestLoadFromTOML(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.toml")

	tomlContent := `
[graphics]
width = 800
height = 600
multisample = 0

[camera]
turn_speed = 0.1

[logging]
level = "warn"
`
	if err := os.WriteFile(configPath, []byte(tomlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Graphics.Width != 800 || cfg.Graphics.Height != 600 {
		t.Errorf("expected 800x600, got %dx%d", cfg.Graphics.Width, cfg.Graphics.Height)
	}
	if cfg.Graphics.Multisample != 0 {
		t.Errorf("expected multisample 0, got %d", cfg.Graphics.Multisample)
	}
	if cfg.Camera.TurnSpeed != 0.1 {
		t.Errorf("expected turn speed 0.1, got %v", cfg.Camera.TurnSpeed)
	}
	if cfg.Camera.MoveSpeed != 0.1 {
		t.Errorf("expected default move speed, got %v", cfg.Camera.MoveSpeed)
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("expected level warn, got %s", cfg.Logging.Level)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"config.yaml", "graphics:\n  width: not a number\n  invalid syntax here\n"},
		{"config.toml", "[graphics\nwidth = 1\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			configPath := filepath.Join(t.TempDir(), tt.name)
			if err := os.WriteFile(configPath, []byte(tt.content), 0644); err != nil {
				t.Fatalf("failed to write test config: %v", err)
			}
			if err := loadFromFile(Default(), configPath); err == nil {
				t.Error("expected error loading invalid config, got nil")
			}
		})
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	err := loadFromFile(cfg, "/nonexistent/path/config.yaml")
	if err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		want   string
	}{
		{"zero width", func(c *Config) { c.Graphics.Width = 0 }, "window size"},
		{"negative multisample", func(c *Config) { c.Graphics.Multisample = -1 }, "multisample"},
		{"flat fov", func(c *Config) { c.Graphics.FOV = 180 }, "fov"},
		{"far before near", func(c *Config) { c.Graphics.Far = 0.05 }, "near < far"},
		{"zero tick rate", func(c *Config) { c.Camera.TickRate = 0 }, "tick_rate"},
		{"negative speed", func(c *Config) { c.Camera.MoveSpeed = -1 }, "negative"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()

	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	tmpDir := t.TempDir()
	os.Chdir(tmpDir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "xdg"))
	t.Setenv("HOME", filepath.Join(tmpDir, "home"))

	if path := findConfigFile(); path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	if err := os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte("[graphics]\nwidth = 800\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}
	if path := findConfigFile(); filepath.Base(path) != "config.toml" {
		t.Errorf("expected to find config.toml, got %q", path)
	}

	// YAML wins when both exist.
	if err := os.WriteFile(filepath.Join(tmpDir, "config.yaml"), []byte("graphics:\n  width: 800\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}
	if path := findConfigFile(); filepath.Base(path) != "config.yaml" {
		t.Errorf("expected to find config.yaml, got %q", path)
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*testing.T, *Config)
		teardown func()
	}{
		{
			name:  "debug flag",
			setup: func() { *flagDebug = true },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
			teardown: func() { *flagDebug = false },
		},
		{
			name:  "fullscreen flag",
			setup: func() { *flagFullscreen = true },
			verify: func(t *testing.T, cfg *Config) {
				if !cfg.Graphics.Fullscreen {
					t.Error("expected fullscreen to be true with fullscreen flag")
				}
			},
			teardown: func() { *flagFullscreen = false },
		},
		{
			name: "width and height flags",
			setup: func() {
				*flagWidth = 2560
				*flagHeight = 1440
			},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Graphics.Width != 2560 || cfg.Graphics.Height != 1440 {
					t.Errorf("expected 2560x1440, got %dx%d", cfg.Graphics.Width, cfg.Graphics.Height)
				}
			},
			teardown: func() {
				*flagWidth = 0
				*flagHeight = 0
			},
		},
		{
			name: "scene flags",
			setup: func() {
				*flagAssets = "/srv/textures"
				*flagLayout = "my.yaml"
			},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Scene.AssetDir != "/srv/textures" || cfg.Scene.Layout != "my.yaml" {
					t.Errorf("unexpected scene config %+v", cfg.Scene)
				}
			},
			teardown: func() {
				*flagAssets = ""
				*flagLayout = ""
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			defer tt.teardown()

			cfg := Default()
			applyFlags(cfg)
			tt.verify(t, cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")

	yamlContent := `
graphics:
  width: 1600
  height: 900
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	*flagWidth = 1920
	defer func() {
		*flagConfig = ""
		*flagWidth = 0
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Graphics.Width != 1920 {
		t.Errorf("expected width 1920 from flag, got %d", cfg.Graphics.Width)
	}
	if cfg.Graphics.Height != 900 {
		t.Errorf("expected height 900 from file, got %d", cfg.Graphics.Height)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte("camera:\n  tick_rate: 0\n"), 0644); err != nil {
		t.Fatal(err)
	}

	*flagConfig = configPath
	defer func() { *flagConfig = "" }()

	if _, err := Load(); err == nil {
		t.Error("expected invalid config to be rejected")
	}
}

func TestSaveToRoundTrip(t *testing.T) {
	for _, name := range []string{"out.yaml", "out.toml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "nested", name)

			cfg := Default()
			cfg.Graphics.Width = 640
			cfg.Scene.Layout = "courtyard.yaml"
			if err := cfg.SaveTo(path); err != nil {
				t.Fatalf("SaveTo: %v", err)
			}

			loaded := &Config{}
			if err := loadFromFile(loaded, path); err != nil {
				t.Fatalf("loading saved config: %v", err)
			}
			if *loaded != *cfg {
				t.Errorf("round trip mismatch:\n got  %+v\n want %+v", *loaded, *cfg)
			}
		})
	}
}
